package usecase

import (
	"context"
	"errors"
	"sync"

	"PricePulse/internal/domain/models"
)

// fakeHistoryStore serves canned history and records inserts in memory.
type fakeHistoryStore struct {
	mu          sync.Mutex
	sameName    []models.HistoryRecord
	sales       []float64
	prices      []float64
	inserted    []*models.HistoryRecord
	failRead    bool
	failWrite   bool
	salesReads  int
	pricesReads int
}

func (f *fakeHistoryStore) Insert(ctx context.Context, rec *models.HistoryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return errors.New("store down")
	}
	f.inserted = append(f.inserted, rec)
	return nil
}

func (f *fakeHistoryStore) InsertBatch(ctx context.Context, recs []*models.HistoryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return errors.New("store down")
	}
	f.inserted = append(f.inserted, recs...)
	return nil
}

func (f *fakeHistoryStore) SameName(ctx context.Context, productName, excludeProductID string, limit int) ([]models.HistoryRecord, error) {
	if f.failRead {
		return nil, errors.New("store down")
	}
	if len(f.sameName) > limit {
		return f.sameName[:limit], nil
	}
	return f.sameName, nil
}

func (f *fakeHistoryStore) CategorySales(ctx context.Context, category string) ([]float64, error) {
	f.mu.Lock()
	f.salesReads++
	f.mu.Unlock()
	if f.failRead {
		return nil, errors.New("store down")
	}
	return f.sales, nil
}

func (f *fakeHistoryStore) CategoryPrices(ctx context.Context, category string) ([]float64, error) {
	f.mu.Lock()
	f.pricesReads++
	f.mu.Unlock()
	if f.failRead {
		return nil, errors.New("store down")
	}
	return f.prices, nil
}

func (f *fakeHistoryStore) Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.HistoryRecord, 0, len(f.inserted))
	for i := len(f.inserted) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *f.inserted[i])
	}
	return out, nil
}

func (f *fakeHistoryStore) Health(ctx context.Context) error { return nil }
func (f *fakeHistoryStore) Close() error                     { return nil }

func (f *fakeHistoryStore) insertedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inserted)
}

func (f *fakeHistoryStore) setFailWrite(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWrite = fail
}

// fakePublisher records published history records.
type fakePublisher struct {
	mu        sync.Mutex
	published []*models.HistoryRecord
	fail      bool
}

func (f *fakePublisher) Publish(ctx context.Context, rec *models.HistoryRecord) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, rec)
	return nil
}

func (f *fakePublisher) PublishBatch(ctx context.Context, recs []*models.HistoryRecord) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, recs...)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func (f *fakePublisher) publishedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.published)
}

// fakeMetrics swallows everything.
type fakeMetrics struct {
	mu     sync.Mutex
	errors map[string]int
}

func (m *fakeMetrics) RecordOptimization(category, confidence string) {}
func (m *fakeMetrics) RecordDiscount(category string, pct float64)    {}
func (m *fakeMetrics) RecordRecordWritten(backend, category string)   {}
func (m *fakeMetrics) RecordLatency(op string, seconds float64)       {}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.errors == nil {
		m.errors = make(map[string]int)
	}
	m.errors[kind]++
}

// fakeEncoder is a fixed category table.
type fakeEncoder struct {
	categories []string
}

func (e *fakeEncoder) Encode(category string) int {
	for i, c := range e.categories {
		if c == category {
			return i
		}
	}
	return 0
}

func (e *fakeEncoder) Categories() []string { return e.categories }

// fakeRevenueScorer returns canned estimates or fails.
type fakeRevenueScorer struct {
	fail  bool
	calls int
}

func (s *fakeRevenueScorer) EstimateBatch(ctx context.Context, productID string, rows [][]float64) ([]float64, error) {
	s.calls++
	if s.fail {
		return nil, errors.New("scorer down")
	}
	out := make([]float64, len(rows))
	for i := range rows {
		out[i] = 100
	}
	return out, nil
}

// fakeChurnScorer returns a fixed risk.
type fakeChurnScorer struct {
	risk       float64
	prediction int
	fail       bool
	calls      int
}

func (s *fakeChurnScorer) Assess(ctx context.Context, in models.ChurnInput) (float64, int, error) {
	s.calls++
	if s.fail {
		return 0, 0, errors.New("scorer down")
	}
	return s.risk, s.prediction, nil
}

// fakeChurnStore keeps assessments in memory.
type fakeChurnStore struct {
	mu       sync.Mutex
	inserted []*models.ChurnAssessment
}

func (f *fakeChurnStore) Insert(ctx context.Context, a *models.ChurnAssessment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, a)
	return nil
}

func (f *fakeChurnStore) Recent(ctx context.Context, limit int) ([]models.ChurnAssessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.ChurnAssessment, 0, len(f.inserted))
	for i := len(f.inserted) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *f.inserted[i])
	}
	return out, nil
}

// fakeCustomerStore keeps predictions in memory.
type fakeCustomerStore struct {
	mu       sync.Mutex
	inserted []*models.CustomerPrediction
}

func (f *fakeCustomerStore) Insert(ctx context.Context, p *models.CustomerPrediction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, p)
	return nil
}

func (f *fakeCustomerStore) Recent(ctx context.Context, limit int) ([]models.CustomerPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.CustomerPrediction, 0, len(f.inserted))
	for i := len(f.inserted) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *f.inserted[i])
	}
	return out, nil
}
