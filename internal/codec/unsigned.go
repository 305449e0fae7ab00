package codec

import (
	"fmt"
	"math/big"
)

// DecodeUnsigned is Decode for targets with unsigned integer fields. Left to
// themselves the codecs disagree on a negative number bound for an unsigned
// field (msgpack wraps it, CBOR refuses it), so the payload is first checked
// for negative values under keys and any hit is returned as a *DecodeError
// wrapping ErrNegativeUnsigned.
func DecodeUnsigned(c Codec, data []byte, v any, keys ...string) error {
	if len(data) == 0 {
		return Decode(c, data, v)
	}
	var fields map[string]any
	if err := c.Unmarshal(data, &fields); err != nil {
		return &DecodeError{Codec: c.Name(), Target: fmt.Sprintf("%T", v), Err: err}
	}
	for _, key := range keys {
		if val, ok := fields[key]; ok && isNegative(val) {
			return &DecodeError{
				Codec:  c.Name(),
				Target: fmt.Sprintf("%T", v),
				Err:    fmt.Errorf("%w: %s = %v", ErrNegativeUnsigned, key, val),
			}
		}
	}
	return Decode(c, data, v)
}

func isNegative(v any) bool {
	switch n := v.(type) {
	case int:
		return n < 0
	case int8:
		return n < 0
	case int16:
		return n < 0
	case int32:
		return n < 0
	case int64:
		return n < 0
	case float32:
		return n < 0
	case float64:
		return n < 0
	case big.Int:
		return n.Sign() < 0
	case *big.Int:
		return n.Sign() < 0
	default:
		return false
	}
}
