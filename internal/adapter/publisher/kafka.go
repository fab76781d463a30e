package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"

	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/hitulnayakpara1412/TradingApp/internal/domain/model"
	"github.com/hitulnayakpara1412/TradingApp/internal/domain/port"
)

// KafkaPublisher emits every applied tick to a Kafka topic, keyed by
// symbol so per-symbol ordering is preserved within a partition.
type KafkaPublisher struct {
	writer *kafkaGo.Writer
}

func NewKafkaPublisher(brokerURL, topic string) (*KafkaPublisher, error) {
	if err := ensureTopic(brokerURL, topic); err != nil {
		return nil, err
	}

	writer := &kafkaGo.Writer{
		Addr:     kafkaGo.TCP(brokerURL),
		Topic:    topic,
		Balancer: &kafkaGo.Hash{},
	}
	return &KafkaPublisher{writer: writer}, nil
}

var _ port.FeedPublisher = (*KafkaPublisher)(nil)

func (p *KafkaPublisher) PublishTick(ctx context.Context, event model.FeedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal feed event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafkaGo.Message{
		Key:   []byte(event.Symbol),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("failed to publish feed event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// ensureTopic creates the topic through the controller broker so the
// first publish does not race topic auto-creation.
func ensureTopic(brokerURL, topic string) error {
	conn, err := kafkaGo.Dial("tcp", brokerURL)
	if err != nil {
		return fmt.Errorf("failed to dial kafka: %w", err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("failed to get kafka controller: %w", err)
	}

	controllerConn, err := kafkaGo.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return fmt.Errorf("failed to connect to kafka controller: %w", err)
	}
	defer controllerConn.Close()

	err = controllerConn.CreateTopics(kafkaGo.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create kafka topic: %w", err)
	}
	return nil
}
