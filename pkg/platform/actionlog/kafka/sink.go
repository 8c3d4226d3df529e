// Package kafka forwards action-log entries to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/twmb/franz-go/pkg/kgo"

	"debatetab/pkg/platform/actionlog"
)

// Producer is the subset of *kgo.Client the sink uses.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Sink implements actionlog.Store by producing one record per entry, keyed
// by tournament so a tournament's history stays ordered within a partition.
type Sink struct {
	producer Producer
	topic    string
}

func NewSink(producer Producer, topic string) *Sink {
	return &Sink{producer: producer, topic: topic}
}

func (s *Sink) Append(ctx context.Context, entry actionlog.Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal action log entry: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(strconv.FormatInt(int64(entry.TournamentID), 10)),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "type", Value: []byte(entry.Type)},
		},
	}
	if err := s.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce action log entry: %w", err)
	}
	return nil
}
