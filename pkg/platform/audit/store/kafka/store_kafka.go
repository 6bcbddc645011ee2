// Package kafka ships audit events to a Kafka topic so external compliance
// tooling can consume them.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "member-gateway/pkg/platform/audit"
)

// Store produces audit events as JSON records. ListAll is not supported; a
// broker is a sink, not a queryable store.
type Store struct {
	client *kgo.Client
	topic  string
}

// NewStore connects to the given brokers (comma separated) and produces to
// topic.
func NewStore(brokers, topic string) (*Store, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(strings.Split(brokers, ",")...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create kafka client: %w", err)
	}
	return &Store{client: client, topic: topic}, nil
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not encode audit event: %w", err)
	}
	record := &kgo.Record{
		Key:   []byte(event.Action),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("could not produce audit event: %w", err)
	}
	return nil
}

func (s *Store) ListAll(context.Context) ([]audit.Event, error) {
	return nil, fmt.Errorf("kafka audit store is write-only")
}

// Close flushes buffered records and releases the client.
func (s *Store) Close() {
	s.client.Close()
}
