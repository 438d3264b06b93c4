package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"cko-gateway/internal/config"
	"cko-gateway/internal/domain"
	"cko-gateway/pkg/e"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	publishedEventsCounter prometheus.Counter
	publishErrorsCounter   prometheus.Counter
)

func init() {
	publishedEventsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kafka_producer_published_events_total",
		Help: "Total number of payment events published to Kafka",
	})

	publishErrorsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kafka_producer_publish_errors_total",
		Help: "Total number of payment events that failed to publish",
	})
}

// Producer publishes a processed-payment event for every persisted
// record. Records carry only the masked card tail, so events are safe
// to fan out.
type Producer struct {
	topic    string
	producer sarama.SyncProducer
	logger   *slog.Logger
}

func NewProducer(cfg config.KafkaConfig, logger *slog.Logger) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.BrokerList, saramaConfig)
	if err != nil {
		return nil, e.Wrap("kafka.NewProducer", err)
	}

	return &Producer{
		topic:    cfg.Topic,
		producer: producer,
		logger:   logger,
	}, nil
}

func (p *Producer) PublishProcessed(_ context.Context, record domain.PaymentRecord) error {
	value, err := json.Marshal(record)
	if err != nil {
		publishErrorsCounter.Inc()
		return e.Wrap("kafka.PublishProcessed", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(record.ID),
		Value: sarama.ByteEncoder(value),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		publishErrorsCounter.Inc()
		return e.Wrap("kafka.PublishProcessed", err)
	}

	publishedEventsCounter.Inc()
	p.logger.Debug("payment event published",
		slog.String("payment_id", record.ID),
		slog.Int64("partition", int64(partition)),
		slog.Int64("offset", offset),
	)

	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
