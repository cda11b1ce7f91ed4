package record

import "fmt"

// ParseError reports malformed input. Single-file conversions fail fast on
// it; batch conversion records it and continues with the next file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("record: parse %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("record: parse: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
