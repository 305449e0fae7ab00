// Package task defines the contract a unit of deferrable CPU work must
// satisfy to be registered, transported and executed by the host, and the
// host-side registry that stores one template per task identifier.
package task

import (
	"github.com/specialistvlad/enginecore/internal/codec"
	"github.com/specialistvlad/enginecore/internal/ident"
)

// Task is a polymorphic, serializable unit of synchronous work.
//
// Implementations must satisfy the round-trip law: FromBytes(c, ToBytes(c))
// on the same concrete type with the same codec yields a value equivalent to the original, and ID()
// is stable across Clone and serialization.
type Task interface {
	// ID returns the identifier the task is registered under.
	ID() ident.Identifier

	// Clone returns an independent copy; mutating it never affects the
	// receiver. The host clones a registered template per execution.
	Clone() Task

	// RunCPU performs the work on the calling goroutine, storing the result
	// in the receiver. It must be bounded and must not block on I/O.
	RunCPU()

	// ToBytes serializes the task state with c. Tasks never pick a codec
	// themselves; the host passes the one it was configured with.
	ToBytes(c codec.Codec) ([]byte, error)

	// FromBytes decodes a new task of the receiver's concrete type. The
	// receiver acts as a factory and is not modified. Malformed input returns
	// a *codec.DecodeError.
	FromBytes(c codec.Codec, data []byte) (Task, error)
}
