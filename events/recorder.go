package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Recorder is an in-memory Publisher that keeps every envelope it receives.
type Recorder struct {
	mu        sync.Mutex
	envelopes []Envelope
	Err       error
}

func (r *Recorder) Publish(_ context.Context, subject, recordID string, payload any) error {
	if r.Err != nil {
		return r.Err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.envelopes = append(r.envelopes, Envelope{
		ID:       fmt.Sprintf("rec-%d", len(r.envelopes)+1),
		Subject:  subject,
		RecordID: recordID,
		Payload:  raw,
	})
	return nil
}

// Envelopes returns a copy of everything published so far.
func (r *Recorder) Envelopes() []Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Envelope, len(r.envelopes))
	copy(out, r.envelopes)
	return out
}
