package imageprocessor

import "fmt"

// DecodeError marks a source image that could not be decoded. Callers skip
// the single source file and continue.
type DecodeError struct {
	Filename string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Filename, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError marks a single failed variant. Callers skip the variant and
// keep producing its siblings.
type EncodeError struct {
	Spec VariantSpec
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode variant %s: %v", e.Spec, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
