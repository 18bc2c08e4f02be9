package validate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchemaNotFound is returned when no candidate path for a local
	// schema reference exists.
	ErrSchemaNotFound = errors.New("schema not found")
	// ErrUnsupportedRef is returned for references that are neither http(s)
	// URLs nor local paths, e.g. file:// URLs.
	ErrUnsupportedRef = errors.New("unsupported schema reference")
)

// Error describes why a pack failed validation. The pack path is kept for
// callers but left out of the message, which is printed after it.
type Error struct {
	// Path is the pack file.
	Path string
	// Entry locates a pipeline entry, e.g. "pre_acquisition_pipeline[2] (disk_space_check)".
	Entry string
	// Key is the offending key, if any.
	Key string
	// Reason is a short description of the failure.
	Reason string
	// Expected lists the accepted types of a mismatched key.
	Expected []string
	// Actual is the runtime type of a mismatched key.
	Actual string
	// Err is the underlying cause, e.g. a resolution or parse error.
	Err error
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Entry != "" {
		sb.WriteString(e.Entry)
		sb.WriteString(": ")
	}
	switch {
	case len(e.Expected) > 0:
		fmt.Fprintf(&sb, "key %q expected type %s, got %s", e.Key, strings.Join(e.Expected, "|"), e.Actual)
	case e.Key != "":
		fmt.Fprintf(&sb, "%s %q", e.Reason, e.Key)
	default:
		sb.WriteString(e.Reason)
	}
	if e.Err != nil {
		if e.Reason != "" || len(e.Expected) > 0 {
			sb.WriteString(": ")
		}
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

// at returns err as an *Error located at path and entry. Other errors are
// wrapped.
func at(err error, path, entry string) *Error {
	var ve *Error
	if errors.As(err, &ve) {
		out := *ve
		out.Path = path
		if entry != "" {
			out.Entry = entry
		}
		return &out
	}
	return &Error{Path: path, Entry: entry, Err: err}
}
