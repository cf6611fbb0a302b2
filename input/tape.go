package input

import "sort"

// Key identifies one of the five discrete inputs on a tape.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyKick
)

// TapeEvent is a single press or release at an absolute simulation time.
type TapeEvent struct {
	At      float64
	Key     Key
	Pressed bool
}

// TapeData is the serializable form of a recorded input tape.
type TapeData struct {
	Name   string
	Events []TapeEvent
}

// Tape replays recorded press/release events deterministically: feeding it
// the same Advance sequence always yields the same input states.
type Tape struct {
	data   TapeData
	cursor int
	state  State
}

// NewTape builds a replay source. Events are sorted by timestamp so tapes
// assembled by hand behave like recorded ones.
func NewTape(data TapeData) *Tape {
	sort.SliceStable(data.Events, func(i, j int) bool {
		return data.Events[i].At < data.Events[j].At
	})
	return &Tape{data: data}
}

func (t *Tape) Direction() Direction { return t.state.Direction() }
func (t *Tape) Kick() bool           { return t.state.Kick }

func (t *Tape) Advance(_, simTime float64) {
	for t.cursor < len(t.data.Events) && t.data.Events[t.cursor].At <= simTime {
		ev := t.data.Events[t.cursor]
		t.apply(ev.Key, ev.Pressed)
		t.cursor++
	}
}

func (t *Tape) Reset() {
	t.cursor = 0
	t.state = State{}
}

func (t *Tape) apply(k Key, pressed bool) {
	switch k {
	case KeyUp:
		t.state.Up = pressed
	case KeyDown:
		t.state.Down = pressed
	case KeyLeft:
		t.state.Left = pressed
	case KeyRight:
		t.state.Right = pressed
	case KeyKick:
		t.state.Kick = pressed
	}
}

// Recorder wraps any Source and writes its press/release edges to a tape
// while passing the input through unchanged.
type Recorder struct {
	Wrapped Source

	events []TapeEvent
	last   State
}

func NewRecorder(wrapped Source) *Recorder {
	return &Recorder{Wrapped: wrapped}
}

func (r *Recorder) Direction() Direction { return r.Wrapped.Direction() }
func (r *Recorder) Kick() bool           { return r.Wrapped.Kick() }

func (r *Recorder) Advance(dt, simTime float64) {
	r.Wrapped.Advance(dt, simTime)

	cur := FromDirection(r.Wrapped.Direction())
	cur.Kick = r.Wrapped.Kick()

	r.edge(KeyUp, r.last.Up, cur.Up, simTime)
	r.edge(KeyDown, r.last.Down, cur.Down, simTime)
	r.edge(KeyLeft, r.last.Left, cur.Left, simTime)
	r.edge(KeyRight, r.last.Right, cur.Right, simTime)
	r.edge(KeyKick, r.last.Kick, cur.Kick, simTime)
	r.last = cur
}

func (r *Recorder) edge(k Key, was, is bool, at float64) {
	if was != is {
		r.events = append(r.events, TapeEvent{At: at, Key: k, Pressed: is})
	}
}

func (r *Recorder) Reset() {
	r.Wrapped.Reset()
	r.events = nil
	r.last = State{}
}

// Tape returns the recording so far.
func (r *Recorder) Tape(name string) TapeData {
	events := make([]TapeEvent, len(r.events))
	copy(events, r.events)
	return TapeData{Name: name, Events: events}
}
