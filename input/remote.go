package input

import "sync"

// Remote adapts input messages arriving over the network into a Source. The
// websocket router goroutine calls Set; the simulation goroutine reads it on
// its own tick, so the latest-wins cell is mutex-protected.
type Remote struct {
	mu    sync.Mutex
	state State
}

func NewRemote() *Remote {
	return &Remote{}
}

// Set stores the most recent input state received from the client.
func (r *Remote) Set(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

func (r *Remote) Direction() Direction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Direction()
}

func (r *Remote) Kick() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Kick
}

func (r *Remote) Advance(_, _ float64) {}

func (r *Remote) Reset() {
	r.mu.Lock()
	r.state = State{}
	r.mu.Unlock()
}
