package compress

import (
	"errors"
	"fmt"
)

// ErrInvalidReference is returned when a match refers to bytes before the
// start of the output.
var ErrInvalidReference = errors.New("compress: back-reference before start of output")

// TableError reports a Huffman table that cannot decode anything.
type TableError struct {
	Table  string // "length", "literal" or "distance"
	Reason string
}

func (e *TableError) Error() string {
	return fmt.Sprintf("compress: invalid %s table: %s", e.Table, e.Reason)
}
