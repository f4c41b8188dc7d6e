package usecase

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"PricePulse/internal/domain/models"
	drepo "PricePulse/internal/domain/repository"
	domsvc "PricePulse/internal/domain/service"
)

// CustomerClassifier assigns a preferred product category to a customer
// profile. The pick is hash-seeded so identical profiles always classify
// identically; probability grows with order count.
type CustomerClassifier struct {
	encoder domsvc.CategoryEncoder
	store   drepo.CustomerStore
	metrics drepo.Metrics
}

func NewCustomerClassifier(encoder domsvc.CategoryEncoder, store drepo.CustomerStore, metrics drepo.Metrics) *CustomerClassifier {
	return &CustomerClassifier{encoder: encoder, store: store, metrics: metrics}
}

func (c *CustomerClassifier) Classify(ctx context.Context, p models.CustomerProfile) (*models.CustomerPrediction, error) {
	start := time.Now()
	categories := c.encoder.Categories()
	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories available")
	}

	seed := profileSeed(p)
	idx := int(seed % uint64(len(categories)))
	category := categories[idx]

	// 0.80 base, up to +0.15 with order count, small seeded variation,
	// clamped to [0.80, 0.95].
	orderFactor := p.TotalOrders / 20
	if orderFactor > 1 {
		orderFactor = 1
	}
	if orderFactor < 0 {
		orderFactor = 0
	}
	prob := 0.80 + orderFactor*0.15 + seedVariation(seed+1000)
	if prob < 0.80 {
		prob = 0.80
	}
	if prob > 0.95 {
		prob = 0.95
	}

	out := &models.CustomerPrediction{
		ID:           uuid.NewString(),
		Profile:      p,
		Category:     category,
		Probability:  prob,
		CategoryCode: c.encoder.Encode(category),
		CreatedAt:    time.Now().UTC(),
	}
	if err := c.store.Insert(ctx, out); err != nil {
		c.metrics.RecordError("customer_store")
		return nil, fmt.Errorf("append customer prediction: %w", err)
	}
	c.metrics.RecordLatency("classify", time.Since(start).Seconds())
	return out, nil
}

// Recent lists the latest predictions, newest first.
func (c *CustomerClassifier) Recent(ctx context.Context, limit int) ([]models.CustomerPrediction, error) {
	return c.store.Recent(ctx, limit)
}

func profileSeed(p models.CustomerProfile) uint64 {
	s := formatSeedPart(p.TotalOrders) + "_" +
		formatSeedPart(p.AvgOrderValue) + "_" +
		formatSeedPart(p.PurchaseFrequency) + "_" +
		formatSeedPart(p.TotalItemsBought)
	sum := md5.Sum([]byte(s))
	return binary.BigEndian.Uint64(sum[:8])
}

func formatSeedPart(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// seedVariation maps a seed deterministically into [-0.01, 0.01].
func seedVariation(seed uint64) float64 {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], seed)
	sum := md5.Sum(b[:])
	u := binary.BigEndian.Uint64(sum[:8])
	return (float64(u%2001)/1000 - 1) * 0.01
}
