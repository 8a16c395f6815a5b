package block

import "fmt"

// StructuralError reports a document that violates a block invariant.
// It is never repaired automatically.
type StructuralError struct {
	Index  int
	Kind   Kind
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("block %d (%s): %s", e.Index, e.Kind, e.Reason)
}

// DecodeError reports a serialized block that does not match the wire contract.
type DecodeError struct {
	Index int
	Type  string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode block %d (type %q): %v", e.Index, e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
