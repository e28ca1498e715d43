package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"user-service/internal/entity"
)

// Writer is the subset of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Publisher emits user lifecycle events to the user topic.
type Publisher struct {
	writer Writer
}

func NewPublisher(writer Writer) *Publisher {
	return &Publisher{writer: writer}
}

// PublishUserEvent writes one event for a user. The key encodes the action,
// e.g. user-created-42 or user-deleted-42; the value is the user JSON, which
// never contains the password hash.
func (p *Publisher) PublishUserEvent(ctx context.Context, user *entity.User, action string) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("user-%s-%d", action, user.ID)),
		Value: userJSON,
	}

	return p.writer.WriteMessages(ctx, msg)
}
