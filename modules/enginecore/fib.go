package enginecore

import (
	"github.com/specialistvlad/enginecore/internal/codec"
	"github.com/specialistvlad/enginecore/internal/ident"
	"github.com/specialistvlad/enginecore/internal/task"
)

// FibID identifies the Fibonacci task.
var FibID = ident.ID(ModID, "fib")

// FibTask computes the Iter-th Fibonacci number into Result. Values above
// Iter 93 overflow uint64 and wrap. A payload with a negative iter or result
// is rejected whatever the codec.
type FibTask struct {
	Iter   uint64 `msgpack:"iter" cbor:"iter"`
	Result uint64 `msgpack:"result" cbor:"result"`
}

func (t *FibTask) ID() ident.Identifier { return FibID }

func (t *FibTask) Clone() task.Task {
	c := *t
	return &c
}

func (t *FibTask) RunCPU() {
	var a, b uint64 = 0, 1
	for i := uint64(0); i < t.Iter; i++ {
		a, b = b, a+b
	}
	t.Result = a
}

func (t *FibTask) ToBytes(c codec.Codec) ([]byte, error) {
	return codec.Encode(c, t)
}

func (t *FibTask) FromBytes(c codec.Codec, data []byte) (task.Task, error) {
	out := &FibTask{}
	if err := codec.DecodeUnsigned(c, data, out, "iter", "result"); err != nil {
		return nil, err
	}
	return out, nil
}
