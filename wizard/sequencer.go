// Package wizard holds the state of multi-step forms (lease creation,
// application setup) while a user walks through them.
package wizard

// Step is one named screen of a wizard. Steps are fixed when the wizard is
// built and never change afterwards.
type Step struct {
	ID    string
	Label string
	Index int
}

// Sequencer owns the ordered steps of a wizard and the current-step pointer.
// It knows nothing about form contents; gating on validity happens in Session.
type Sequencer struct {
	steps   []Step
	current int
}

// NewSequencer copies steps and assigns each its position in the sequence.
func NewSequencer(steps []Step) *Sequencer {
	s := &Sequencer{steps: make([]Step, len(steps))}
	for i, st := range steps {
		st.Index = i
		s.steps[i] = st
	}
	return s
}

// Current returns the zero-based index of the active step.
func (s *Sequencer) Current() int {
	return s.current
}

// Step returns the active step, or the zero Step when there are no steps.
func (s *Sequencer) Step() Step {
	if len(s.steps) == 0 {
		return Step{}
	}
	return s.steps[s.current]
}

// Steps returns a copy of the full step list.
func (s *Sequencer) Steps() []Step {
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

func (s *Sequencer) Len() int {
	return len(s.steps)
}

// LastIndex returns the index of the final step (0 for an empty sequence).
func (s *Sequencer) LastIndex() int {
	if len(s.steps) == 0 {
		return 0
	}
	return len(s.steps) - 1
}

func (s *Sequencer) IsFirst() bool {
	return s.current == 0
}

func (s *Sequencer) IsLast() bool {
	return s.current == s.LastIndex()
}

// Next advances by exactly one step. It does nothing on the last step.
func (s *Sequencer) Next() {
	if s.current < s.LastIndex() {
		s.current++
	}
}

// Previous moves back by exactly one step. It does nothing on the first step.
func (s *Sequencer) Previous() {
	if s.current > 0 {
		s.current--
	}
}

// JumpTo moves straight to index, clamping stale or out-of-range values to
// the nearest valid bound. Step validity is not consulted.
func (s *Sequencer) JumpTo(index int) {
	switch {
	case index < 0:
		s.current = 0
	case index > s.LastIndex():
		s.current = s.LastIndex()
	default:
		s.current = index
	}
}

// IndexOf returns the position of the step with the given id, or -1.
func (s *Sequencer) IndexOf(id string) int {
	for _, st := range s.steps {
		if st.ID == id {
			return st.Index
		}
	}
	return -1
}
