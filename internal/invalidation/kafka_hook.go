package invalidation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
)

// ProducerConfig contains configuration for the Kafka invalidation producer
type ProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	Timeout          time.Duration
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
}

// DefaultProducerConfig returns a default producer configuration
func DefaultProducerConfig(brokers []string, topic string) *ProducerConfig {
	return &ProducerConfig{
		Brokers:          brokers,
		Topic:            topic,
		RetryMax:         3,
		Timeout:          10 * time.Second,
		RequiredAcks:     sarama.WaitForAll, // Wait for all in-sync replicas
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
	}
}

// KafkaHook publishes invalidation messages to Kafka so caches outside
// this process can react to booking state changes.
type KafkaHook struct {
	producer sarama.SyncProducer
	config   *ProducerConfig
}

// NewKafkaHook creates a Kafka-backed invalidation hook
func NewKafkaHook(config *ProducerConfig) (*KafkaHook, error) {
	saramaConfig := sarama.NewConfig()

	// Producer configuration
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = config.Timeout
	saramaConfig.Producer.Idempotent = config.IdempotentWrites

	// Enable idempotent producer
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keys messages by event so per-event ordering holds
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("📤 Kafka invalidation producer created successfully")
	return &KafkaHook{
		producer: producer,
		config:   config,
	}, nil
}

// Invalidate publishes a single invalidation message to Kafka
func (kh *KafkaHook) Invalidate(ctx context.Context, eventID string, scope Scope) error {
	msg := NewMessage(eventID, scope)

	messageBytes, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal invalidation message: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     kh.config.Topic,
		Key:       sarama.StringEncoder(eventID),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   kh.createHeaders(msg),
		Timestamp: msg.OccurredAt,
	}

	partition, offset, err := kh.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send invalidation to Kafka: %w", err)
	}

	log.Printf("📤 Invalidation published to Kafka - Topic: %s, Partition: %d, Offset: %d, Event: %s, Scope: %s",
		kh.config.Topic, partition, offset, eventID, scope)

	return nil
}

// createHeaders creates Kafka headers for invalidation messages
func (kh *KafkaHook) createHeaders(msg *Message) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("invalidation_id"), Value: []byte(msg.ID.String())},
		{Key: []byte("event_id"), Value: []byte(msg.EventID)},
		{Key: []byte("scope"), Value: []byte(msg.Scope)},
		{Key: []byte("version"), Value: []byte("1.0")},
		{Key: []byte("producer"), Value: []byte(msg.Source)},
		{Key: []byte("occurred_at"), Value: []byte(msg.OccurredAt.Format(time.RFC3339))},
	}
}

// Close closes the Kafka producer
func (kh *KafkaHook) Close() error {
	if kh.producer != nil {
		if err := kh.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
		log.Printf("📤 Kafka invalidation producer closed")
	}
	return nil
}

// HealthCheck validates the producer is usable
func (kh *KafkaHook) HealthCheck(ctx context.Context) error {
	if kh.producer == nil {
		return fmt.Errorf("health check failed - producer is nil")
	}
	if kh.config.Topic == "" {
		return fmt.Errorf("health check failed - invalidation topic not configured")
	}
	return nil
}
