package wizard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIncomplete is returned when a submission is attempted while some
	// step still has missing required fields.
	ErrIncomplete = errors.New("wizard: required fields missing")

	// ErrUnknownField is returned when a form field name maps to no setter.
	ErrUnknownField = errors.New("wizard: unknown field")
)

// Validator reports the missing required fields of one step. An empty
// result means the user may move forward. Validators only look at the
// fields their own step edits.
type Validator[S any] func(S) []string

// Session couples a Sequencer with a Store and the per-step validators.
// Next is guarded by the current step's validator; Previous and JumpTo are not.
type Session[S any] struct {
	ID         string
	seq        *Sequencer
	store      *Store[S]
	validators map[string]Validator[S]
}

func NewSession[S any](id string, steps []Step, initial S, validators map[string]Validator[S]) *Session[S] {
	return &Session[S]{
		ID:         id,
		seq:        NewSequencer(steps),
		store:      NewStore(initial),
		validators: validators,
	}
}

// State returns the current form snapshot.
func (s *Session[S]) State() S {
	return s.store.Get()
}

// Apply writes one or more field updates.
func (s *Session[S]) Apply(updates ...Update[S]) {
	s.store.Update(updates...)
}

func (s *Session[S]) Current() int {
	return s.seq.Current()
}

func (s *Session[S]) CurrentStep() Step {
	return s.seq.Step()
}

func (s *Session[S]) Steps() []Step {
	return s.seq.Steps()
}

func (s *Session[S]) IsFirst() bool {
	return s.seq.IsFirst()
}

func (s *Session[S]) IsLast() bool {
	return s.seq.IsLast()
}

// IssuesFor returns the missing fields of the step with the given id.
func (s *Session[S]) IssuesFor(stepID string) []string {
	v, ok := s.validators[stepID]
	if !ok || v == nil {
		return nil
	}
	return v(s.store.Get())
}

// Issues returns the missing fields of the current step.
func (s *Session[S]) Issues() []string {
	return s.IssuesFor(s.seq.Step().ID)
}

// CanProceed reports whether Next would move forward from the current step.
func (s *Session[S]) CanProceed() bool {
	return len(s.Issues()) == 0
}

// Next advances one step when the current step is valid. It reports whether
// the pointer moved.
func (s *Session[S]) Next() bool {
	if !s.CanProceed() {
		return false
	}
	before := s.seq.Current()
	s.seq.Next()
	return s.seq.Current() != before
}

func (s *Session[S]) Previous() {
	s.seq.Previous()
}

// JumpTo moves directly to index regardless of the validity of the steps in
// between. This mirrors clicking a step in the progress indicator.
func (s *Session[S]) JumpTo(index int) {
	s.seq.JumpTo(index)
}

// JumpToStep moves to the step with the given id; unknown ids are ignored.
func (s *Session[S]) JumpToStep(id string) {
	if i := s.seq.IndexOf(id); i >= 0 {
		s.seq.JumpTo(i)
	}
}

// FirstInvalid returns the first step, in order, whose validator reports
// missing fields.
func (s *Session[S]) FirstInvalid() (Step, []string, bool) {
	for _, st := range s.seq.Steps() {
		if issues := s.IssuesFor(st.ID); len(issues) > 0 {
			return st, issues, true
		}
	}
	return Step{}, nil, false
}

// ValidateAll checks every step. It is the gate in front of submission.
func (s *Session[S]) ValidateAll() error {
	st, issues, found := s.FirstInvalid()
	if !found {
		return nil
	}
	return fmt.Errorf("%w: %s (%s)", ErrIncomplete, st.Label, strings.Join(issues, ", "))
}
