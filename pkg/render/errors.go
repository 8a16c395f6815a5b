package render

import "fmt"

// RenderError reports a document that cannot be rendered as stored.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render document: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
