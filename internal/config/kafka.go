package config

import (
	"github.com/segmentio/kafka-go"
)

// NewKafkaWriter builds a writer for the user event topic.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{}, // Balancer for selecting partition
		AllowAutoTopicCreation: true,
	}
}
