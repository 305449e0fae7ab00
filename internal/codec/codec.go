// Package codec provides the binary payload formats used to move tasks and
// events across the host boundary. Both formats are field-tagged and ignore
// unknown fields on decode, so a payload written by an older or newer
// revision of a type still decodes into the fields both revisions share.
package codec

import (
	"fmt"
	"strings"
)

// Codec marshals Go values into an opaque byte payload and back.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Names of the built-in codecs, as accepted by ByName.
const (
	NameMsgPack = "msgpack"
	NameCBOR    = "cbor"
)

// ByName returns the built-in codec with the given name.
func ByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameMsgPack:
		return MsgPack(), nil
	case NameCBOR:
		return CBOR()
	default:
		return nil, fmt.Errorf("unknown codec %q: must be '%s' or '%s'", name, NameMsgPack, NameCBOR)
	}
}

// Encode marshals v with c, wrapping failures with the codec and type name.
func Encode(c Codec, v any) ([]byte, error) {
	data, err := c.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode %T: %w", c.Name(), v, err)
	}
	return data, nil
}

// Decode unmarshals data into v with c. Any failure, including an empty
// payload, is returned as a *DecodeError.
func Decode(c Codec, data []byte, v any) error {
	if len(data) == 0 {
		return &DecodeError{Codec: c.Name(), Target: fmt.Sprintf("%T", v), Err: errEmptyPayload}
	}
	if err := c.Unmarshal(data, v); err != nil {
		return &DecodeError{Codec: c.Name(), Target: fmt.Sprintf("%T", v), Err: err}
	}
	return nil
}
