package input

// CommandOp is the kind of one patrol command.
type CommandOp int

const (
	OpWait CommandOp = iota
	OpMove
	OpKick
)

// Command is one entry of a scripted patrol timeline: move in a direction,
// hold the kick key, or stand still, each for Duration seconds.
type Command struct {
	Op       CommandOp
	Dir      Direction // OpMove only
	Duration float64
}

// Patrol replays an ordered command list, optionally looping forever. A
// finished non-looping patrol reports neutral input.
type Patrol struct {
	Commands []Command
	Loop     bool

	idx       int
	remaining float64
	done      bool
}

// NewPatrol returns a patrol source positioned at the first command.
func NewPatrol(commands []Command, loop bool) *Patrol {
	p := &Patrol{Commands: commands, Loop: loop}
	p.Reset()
	return p
}

func (p *Patrol) current() (Command, bool) {
	if p.done || p.idx >= len(p.Commands) {
		return Command{}, false
	}
	return p.Commands[p.idx], true
}

func (p *Patrol) Direction() Direction {
	if cmd, ok := p.current(); ok && cmd.Op == OpMove {
		return cmd.Dir
	}
	return DirNone
}

func (p *Patrol) Kick() bool {
	cmd, ok := p.current()
	return ok && cmd.Op == OpKick
}

func (p *Patrol) Advance(dt, _ float64) {
	if p.done || len(p.Commands) == 0 {
		return
	}
	p.remaining -= dt
	for p.remaining <= 0 {
		p.idx++
		if p.idx >= len(p.Commands) {
			if !p.Loop || p.cycleDuration() <= 0 {
				// A loop of zero-duration commands can never consume time.
				p.done = true
				return
			}
			p.idx = 0
		}
		p.remaining += p.Commands[p.idx].Duration
	}
}

func (p *Patrol) cycleDuration() float64 {
	var total float64
	for _, cmd := range p.Commands {
		total += cmd.Duration
	}
	return total
}

func (p *Patrol) Reset() {
	p.idx = 0
	p.done = len(p.Commands) == 0
	if !p.done {
		p.remaining = p.Commands[0].Duration
	}
}
