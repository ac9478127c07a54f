package codec

import "fmt"

// DecodingError reports that a byte stream is not a canonical encoding:
// trailing bytes, a malformed length prefix, out-of-order dictionary
// keys, or an unrecognized tag byte.
type DecodingError struct {
	Msg string
}

func (e *DecodingError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return "codec: " + e.Msg
}

func decodingErrorf(format string, args ...any) error {
	return &DecodingError{Msg: fmt.Sprintf(format, args...)}
}
