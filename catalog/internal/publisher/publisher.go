package publisher

import (
	"context"

	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/Astemirdum/library-catalog/catalog/internal/model"
	cb "github.com/Astemirdum/library-catalog/pkg/circuit_breaker"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Publisher interface {
	Publish(ctx context.Context, event model.LendingEvent) error
}

func NewKafkaPublisher(producer sarama.SyncProducer, topic string, breaker cb.CircuitBreaker) Publisher {
	return &kafkaPublisher{
		producer: producer,
		topic:    topic,
		breaker:  breaker,
	}
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	breaker  cb.CircuitBreaker
}

// Publish sends the event keyed by ISBN so every event of a title lands on one partition.
func (p *kafkaPublisher) Publish(ctx context.Context, event model.LendingEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal lending event")
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.ISBN),
		Value: sarama.ByteEncoder(data),
	}
	err = p.breaker.Call(func() error {
		_, _, err := p.producer.SendMessage(msg)
		return err
	})
	if err != nil {
		return errors.Wrapf(err, "publish %s event", event.Type)
	}
	return nil
}

func NewNopPublisher() Publisher {
	return nopPublisher{}
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, model.LendingEvent) error { return nil }
