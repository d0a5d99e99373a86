// Package events hands completed wizard submissions to downstream
// consumers over NATS JetStream.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	streamName = "propertydesk_submissions"

	SubjectLeaseSubmitted       = "propertydesk.lease.submitted"
	SubjectApplicationSubmitted = "propertydesk.application.submitted"
)

// Envelope wraps every submission published to the stream.
type Envelope struct {
	ID          string          `json:"id"`
	Subject     string          `json:"subject"`
	RecordID    string          `json:"record_id"`
	SubmittedAt time.Time       `json:"submitted_at"`
	Payload     json.RawMessage `json:"payload"`
}

// Publisher delivers a submission snapshot.
type Publisher interface {
	Publish(ctx context.Context, subject, recordID string, payload any) error
}

// Options selects between a remote server and an embedded one.
type Options struct {
	URL      string // empty starts an embedded in-process server
	StoreDir string
}

// Bus is a JetStream-backed Publisher.
type Bus struct {
	ns     *server.Server
	nc     *nats.Conn
	js     jetstream.JetStream
	stream jetstream.Stream
	now    func() time.Time
}

// Start connects to NATS, starting an embedded server when no URL is set,
// and makes sure the submissions stream exists.
func Start(ctx context.Context, opts Options) (*Bus, error) {
	b := &Bus{now: time.Now}

	if opts.URL == "" {
		ns, err := startEmbedded(opts.StoreDir)
		if err != nil {
			return nil, err
		}
		b.ns = ns
		nc, err := nats.Connect("", nats.InProcessServer(ns))
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("connect in-process: %w", err)
		}
		b.nc = nc
	} else {
		nc, err := nats.Connect(opts.URL, nats.Name("propertydesk"))
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", opts.URL, err)
		}
		b.nc = nc
	}

	js, err := jetstream.New(b.nc)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("create jetstream: %w", err)
	}
	b.js = js

	stream, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"propertydesk.>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   90 * 24 * time.Hour,
	})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("setup stream: %w", err)
	}
	b.stream = stream
	return b, nil
}

func startEmbedded(storeDir string) (*server.Server, error) {
	ns, err := server.NewServer(&server.Options{
		JetStream:  true,
		StoreDir:   storeDir,
		DontListen: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create nats server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(4 * time.Second) {
		ns.Shutdown()
		return nil, errors.New("nats server failed to start within timeout")
	}
	return ns, nil
}

// Publish marshals payload into an Envelope and publishes it. The envelope
// id doubles as the JetStream message id so retries are deduplicated.
func (b *Bus) Publish(ctx context.Context, subject, recordID string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	env := Envelope{
		ID:          uuid.NewString(),
		Subject:     subject,
		RecordID:    recordID,
		SubmittedAt: b.now().UTC(),
		Payload:     raw,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	if _, err := b.js.Publish(ctx, subject, data, jetstream.WithMsgID(env.ID)); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// Read returns up to max envelopes on subject from the start of the stream.
func (b *Bus) Read(ctx context.Context, subject string, max int) ([]Envelope, error) {
	cons, err := b.stream.OrderedConsumer(ctx, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{subject},
		DeliverPolicy:  jetstream.DeliverAllPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("create consumer: %w", err)
	}

	batch, err := cons.FetchNoWait(max)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	var out []Envelope
	for msg := range batch.Messages() {
		var env Envelope
		if err := json.Unmarshal(msg.Data(), &env); err != nil {
			log.Printf("events: skipping malformed message on %s: %v", msg.Subject(), err)
			continue
		}
		out = append(out, env)
	}
	if err := batch.Error(); err != nil {
		return out, fmt.Errorf("fetch: %w", err)
	}
	return out, nil
}

// Close drains the connection and stops the embedded server, if any.
func (b *Bus) Close() error {
	if b.nc != nil {
		drained := make(chan error, 1)
		go func() { drained <- b.nc.Drain() }()

		select {
		case err := <-drained:
			if err != nil {
				log.Printf("events: drain failed, forcing close: %v", err)
				b.nc.Close()
			}
		case <-time.After(2 * time.Second):
			log.Printf("events: drain timed out, forcing close")
			b.nc.Close()
		}
	}

	if b.ns != nil {
		b.ns.Shutdown()

		done := make(chan struct{})
		go func() {
			b.ns.WaitForShutdown()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			return errors.New("nats server shutdown timed out")
		}
	}
	return nil
}
