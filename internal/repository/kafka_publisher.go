package repository

import (
	"context"

	"PricePulse/internal/domain/models"
	domrepo "PricePulse/internal/domain/repository"
	pkgkafka "PricePulse/pkg/kafka"
)

// KafkaPublisher implements Publisher for Kafka.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) domrepo.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func recordPayload(r *models.HistoryRecord) map[string]interface{} {
	return map[string]interface{}{
		"id":                r.ID,
		"product_id":        r.ProductID,
		"product_name":      r.ProductName,
		"base_price":        r.BasePrice,
		"category":          r.Category,
		"past_sales_volume": r.PastSalesVolume,
		"discount":          r.Discount,
		"expected_revenue":  r.ExpectedRevenue,
		"final_price":       r.FinalPrice,
		"confidence":        string(r.Confidence),
		"created_at":        r.CreatedAt.UTC(),
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, r *models.HistoryRecord) error {
	return p.producer.Publish(ctx, p.topic, []byte(r.ProductID), recordPayload(r))
}

func (p *KafkaPublisher) PublishBatch(ctx context.Context, recs []*models.HistoryRecord) error {
	if len(recs) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(recs))
	for i, r := range recs {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(r.ProductID),
			Value: recordPayload(r),
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
