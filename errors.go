package htmlprint

import "errors"

// Sentinel errors returned by the library.
var (
	// ErrClosed is returned when attempting to use a closed [Converter].
	ErrClosed = errors.New("htmlprint: converter is closed")

	// ErrNoDirectory is returned when the destination's parent directory
	// does not exist and directory creation is disabled.
	ErrNoDirectory = errors.New("htmlprint: destination directory does not exist")

	// ErrInvalidPage is returned for a [PageConfig] that cannot be printed.
	ErrInvalidPage = errors.New("htmlprint: invalid page configuration")

	// ErrUnknownEncoding is returned for an [Encoding] outside the supported set.
	ErrUnknownEncoding = errors.New("htmlprint: unknown encoding")

	// ErrInvalidUTF8 is returned when rendered markup is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("htmlprint: markup is not valid UTF-8")
)

// SerializeError reports that content could not be turned into text
// under the requested encoding. The PDF writer was not called.
type SerializeError struct {
	Encoding Encoding
	Err      error
}

func (e *SerializeError) Error() string {
	return "htmlprint: serializing as " + e.Encoding.String() + ": " + e.Err.Error()
}

func (e *SerializeError) Unwrap() error { return e.Err }

// WriteError reports that the PDF writer failed for the given destination.
// Err is the writer's error, untouched.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return "htmlprint: writing " + e.Path + ": " + e.Err.Error()
}

func (e *WriteError) Unwrap() error { return e.Err }
