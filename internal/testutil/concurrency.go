package testutil

import (
	"sync"
	"time"

	"github.com/specialistvlad/enginecore/internal/codec"
	"github.com/specialistvlad/enginecore/internal/ident"
	"github.com/specialistvlad/enginecore/internal/task"
)

// TrackedID identifies TrackedTask.
var TrackedID = ident.ID("testutil", "tracked")

// Tracker records how many TrackedTask instances ran at the same time.
type Tracker struct {
	mu       sync.Mutex
	inFlight int
	peak     int
	runs     int
	sleep    time.Duration
}

// NewTracker returns a tracker whose tasks sleep for d while running.
func NewTracker(d time.Duration) *Tracker {
	return &Tracker{sleep: d}
}

// Peak is the highest number of concurrently running tasks observed.
func (tr *Tracker) Peak() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.peak
}

// Runs is the number of completed tasks.
func (tr *Tracker) Runs() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.runs
}

// Template returns a TrackedTask bound to tr, ready for registration.
func (tr *Tracker) Template() *TrackedTask {
	return &TrackedTask{tracker: tr}
}

// TrackedTask is a task that sleeps inside RunCPU and reports to its Tracker.
type TrackedTask struct {
	Tag  string `msgpack:"tag" cbor:"tag"`
	Seen int    `msgpack:"seen" cbor:"seen"`

	tracker *Tracker
}

var _ task.Task = (*TrackedTask)(nil)

func (t *TrackedTask) ID() ident.Identifier { return TrackedID }

func (t *TrackedTask) Clone() task.Task {
	c := *t
	return &c
}

func (t *TrackedTask) RunCPU() {
	tr := t.tracker
	tr.mu.Lock()
	tr.inFlight++
	if tr.inFlight > tr.peak {
		tr.peak = tr.inFlight
	}
	t.Seen = tr.inFlight
	tr.mu.Unlock()

	time.Sleep(tr.sleep)

	tr.mu.Lock()
	tr.inFlight--
	tr.runs++
	tr.mu.Unlock()
}

func (t *TrackedTask) ToBytes(c codec.Codec) ([]byte, error) { return codec.Encode(c, t) }

func (t *TrackedTask) FromBytes(c codec.Codec, data []byte) (task.Task, error) {
	out := &TrackedTask{tracker: t.tracker}
	if err := codec.Decode(c, data, out); err != nil {
		return nil, err
	}
	return out, nil
}
