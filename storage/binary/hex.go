package binary

import (
	"encoding/hex"
	"fmt"
)

// FormatUUID renders a 16-byte UUID as the canonical
// xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx form, dashes at byte offsets 4/6/8/10.
func FormatUUID(b [16]byte) string {
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}

// FormatHash renders a 32-byte hash as 64 lowercase hex chars, no separators.
func FormatHash(b [32]byte) string {
	return hex.EncodeToString(b[:])
}

// ParseHash parses a 64-char lowercase hex string into a 32-byte hash.
func ParseHash(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(b) != 32 {
		return out, fmt.Errorf("hash hex must decode to 32 bytes, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}
