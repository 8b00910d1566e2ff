package models

// ValidationErrorKind is a bitmask member of the closed error-kind set an
// entity's validate() may report.
type ValidationErrorKind uint64

const (
	NoError         ValidationErrorKind = 0x00
	InvalidCount    ValidationErrorKind = 0x01 // an invalid size of lists etc
	NullNotAllowed  ValidationErrorKind = 0x02 // an object is empty/null, and this is not allowed
	MissingObject   ValidationErrorKind = 0x04 // a required object is missing
	InvalidObject   ValidationErrorKind = 0x08 // an object is invalid or used in an invalid way
	InvalidSetup    ValidationErrorKind = 0x10 // the set up of an object or system is invalid
	InvalidValue    ValidationErrorKind = 0x20 // a value or index is out of bounds or not allowed
)

// ValidationIssue is one reported invariant violation.
type ValidationIssue struct {
	Kind    ValidationErrorKind
	Context string // field/key path, e.g. "Edges[3]" or "Roots"
	Message string
}

// Validator accumulates invariant violations without aborting the pass
// that discovered them -- a single violation never short-circuits the
// rest of a validate() call. A validator with a non-zero error count fails
// the surrounding write.
type Validator struct {
	issues []ValidationIssue
	ids    ValidationErrorKind
}

// Report records one violation and continues; callers keep validating after
// calling this.
func (v *Validator) Report(kind ValidationErrorKind, context, message string) {
	v.issues = append(v.issues, ValidationIssue{Kind: kind, Context: context, Message: message})
	v.ids |= kind
}

// ErrorCount returns the number of reported issues.
func (v *Validator) ErrorCount() int { return len(v.issues) }

// ErrorKinds returns the OR of every reported kind.
func (v *Validator) ErrorKinds() ValidationErrorKind { return v.ids }

// Issues returns the accumulated issues in report order.
func (v *Validator) Issues() []ValidationIssue { return v.issues }

// HasKind reports whether any reported issue carries the given kind.
func (v *Validator) HasKind(kind ValidationErrorKind) bool { return v.ids&kind != 0 }

// Reset clears the accumulator for reuse across validation passes.
func (v *Validator) Reset() {
	v.issues = v.issues[:0]
	v.ids = NoError
}

// Ok reports whether no issues have been recorded.
func (v *Validator) Ok() bool { return len(v.issues) == 0 }
