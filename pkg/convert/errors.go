package convert

import "fmt"

// InputNotFoundError reports a missing input file or directory. Always fatal.
type InputNotFoundError struct {
	Path string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("convert: input not found: %s", e.Path)
}

// OutputWriteError reports a filesystem or permission failure on the output
// side. Always fatal, even during batch conversion.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("convert: write %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error {
	return e.Err
}
