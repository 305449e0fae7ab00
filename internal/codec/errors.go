package codec

import (
	"errors"
	"fmt"
)

var errEmptyPayload = errors.New("empty payload")

// ErrNegativeUnsigned is wrapped by the *DecodeError DecodeUnsigned returns
// when a payload holds a negative number for an unsigned field.
var ErrNegativeUnsigned = errors.New("negative value for unsigned field")

// DecodeError reports bytes that do not decode into the expected shape. It
// aborts only the one decode attempt that produced it.
type DecodeError struct {
	Codec  string
	Target string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: cannot decode payload into %s: %v", e.Codec, e.Target, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
