package messages

import "github.com/openpitch/kickoff-mp/input"

// PlayerInput is sent from client to server when the sampled state changes,
// on a bounded heartbeat, and always immediately on kick press/release. The
// sequence number ties a server acknowledgement back to the predicted tick
// it covers.
type PlayerInput struct {
	Sequence  uint32 // Incrementing ID for reconciliation
	Up        bool
	Down      bool
	Left      bool
	Right     bool
	Kick      bool
	Timestamp int64 // Client timestamp (Unix ms)

	// Advisory charge state from the client's prediction. The authority
	// derives the real charge from kick hold time; these are carried for
	// spectator display only.
	ChargingKick bool
	KickCharge   float64
}

// FromState builds the wire form of one sampled input state.
func FromState(seq uint32, s input.State, ts int64) PlayerInput {
	return PlayerInput{
		Sequence:  seq,
		Up:        s.Up,
		Down:      s.Down,
		Left:      s.Left,
		Right:     s.Right,
		Kick:      s.Kick,
		Timestamp: ts,
	}
}

// State converts the wire form back into a simulation input state.
func (p PlayerInput) State() input.State {
	return input.State{
		Up:    p.Up,
		Down:  p.Down,
		Left:  p.Left,
		Right: p.Right,
		Kick:  p.Kick,
	}
}
