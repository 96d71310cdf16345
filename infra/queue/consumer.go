package queue

import (
	"context"
	"crypto/tls"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/sundaymarket/shop_service/internal/interfaces"
)

type Consumer struct {
	Reader      *kafka.Reader
	Handler     interfaces.ConsumerHandler
	ServiceName string
}

func NewConsumer(broker, topic, groupID, username, password string, handler interfaces.ConsumerHandler) *Consumer {
	cfg := kafka.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	}

	if username != "" {
		cfg.Dialer = &kafka.Dialer{
			Timeout:   10 * time.Second,
			DualStack: true,
			TLS:       &tls.Config{},
			SASLMechanism: plain.Mechanism{
				Username: username,
				Password: password,
			},
		}
	}

	return &Consumer{
		Reader:      kafka.NewReader(cfg),
		Handler:     handler,
		ServiceName: "Mail Sender",
	}
}

func (c *Consumer) Listen(ctx context.Context) {
	for {
		msg, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[%s] read error: %v", c.ServiceName, err)
			continue
		}

		if err := c.Handler.HandleMessage(msg.Key, msg.Value); err != nil {
			log.Printf("[%s] handler error: %v", c.ServiceName, err)
		}
	}
}
