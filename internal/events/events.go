package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	TypeNumberClaimed = "number.claimed"
	TypeNumberPaid    = "number.paid"
)

type NumberEvent struct {
	Type        string    `json:"type"`
	EventID     string    `json:"event_id"`
	Number      int       `json:"number"`
	Status      string    `json:"status"`
	PaymentType string    `json:"payment_type,omitempty"`
	At          time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, evt NumberEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes registry events keyed by event id and number, so all
// events of one raffle number land on the same partition.
type KafkaPublisher struct {
	w messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			// Publish runs on the request path; flush every message right away.
			BatchSize:    1,
			BatchTimeout: 10 * time.Millisecond,
			WriteTimeout: 5 * time.Second,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt NumberEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.EventID + ":" + strconv.Itoa(evt.Number)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(evt.Type)},
		},
		Time: evt.At,
	}

	if err = p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("p.w.WriteMessages -> %w", err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, evt NumberEvent) error {
	zap.L().Debug("event not published, no broker configured", zap.String("type", evt.Type), zap.Int("number", evt.Number))
	return nil
}

func (NopPublisher) Close() error {
	return nil
}

// NewPublisher returns a Kafka publisher, or a no-op one when brokers is empty.
func NewPublisher(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return NopPublisher{}
	}

	return NewKafkaPublisher(brokers, topic)
}
