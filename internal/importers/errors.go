package importers

import (
	"errors"
	"fmt"
)

// ErrEmptyInput indicates the sheet export contained no parseable lines.
var ErrEmptyInput = errors.New("sheet export is empty")

// ErrNoChapters indicates parsing succeeded but no row survived validation.
// Callers must treat this as fatal rather than committing an empty chapter
// list over good prior data.
var ErrNoChapters = errors.New("no valid chapter rows in sheet export")

// MissingRequiredFieldError indicates the header row lacks every accepted
// alias of a required column.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("sheet header is missing required column %q", e.Field)
}
