package binary

import "errors"

// MaxKeyLen is the maximum encodable block key length in bytes.
const MaxKeyLen = 40

// Sentinel errors for the codec layer. storage/binary has no knowledge of
// entities or the store, so these stay local to this package; models
// wraps/propagates them rather than duplicating the definitions.
var (
	// ErrShortRead is returned when a read consumed fewer bytes than
	// requested because the stream ran out of data.
	ErrShortRead = errors.New("short read")

	// ErrSectionProtocol is returned when a block, section, or array read
	// or write violates the framing, key-identity, or traversal contract.
	ErrSectionProtocol = errors.New("section protocol violation")

	// ErrInvalidKeyLength is returned when a block key exceeds MaxKeyLen.
	ErrInvalidKeyLength = errors.New("block key length out of bounds")

	// ErrUnsupportedIndexWidth is returned when a decoded array advertises
	// the reserved 64-bit sparse-index flag bit.
	ErrUnsupportedIndexWidth = errors.New("64-bit sparse index is reserved and unsupported")
)
