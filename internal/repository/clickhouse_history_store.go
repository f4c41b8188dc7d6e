package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"PricePulse/internal/domain/models"
	domrepo "PricePulse/internal/domain/repository"
	pkgch "PricePulse/pkg/clickhouse"
	applogger "PricePulse/pkg/logger"
)

const historyTable = "pricepulse.pricing_history"

// CHHistoryStore implements HistoryStore backed by ClickHouse.
type CHHistoryStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHHistoryStore(ch *pkgch.Client) *CHHistoryStore {
	return &CHHistoryStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHHistoryStore) SetLogger(l *applogger.Logger) { s.l = l }

var _ domrepo.HistoryStore = (*CHHistoryStore)(nil)

func (s *CHHistoryStore) Insert(ctx context.Context, rec *models.HistoryRecord) error {
	return s.InsertBatch(ctx, []*models.HistoryRecord{rec})
}

func (s *CHHistoryStore) InsertBatch(ctx context.Context, recs []*models.HistoryRecord) error {
	if len(recs) == 0 {
		return nil
	}
	start := time.Now()
	// Multi-row VALUES to reduce round-trips. Chunk size tuned to 2000 rows.
	const chunkSize = 2000
	for lo := 0; lo < len(recs); lo += chunkSize {
		hi := lo + chunkSize
		if hi > len(recs) {
			hi = len(recs)
		}
		values := make([]string, 0, hi-lo)
		args := make([]interface{}, 0, (hi-lo)*11)
		for _, r := range recs[lo:hi] {
			if r == nil || r.ProductID == "" {
				continue
			}
			id := r.ID
			if id == "" {
				id = uuid.NewString()
			}
			created := r.CreatedAt
			if created.IsZero() {
				created = time.Now().UTC()
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				id,
				r.ProductID,
				r.ProductName,
				r.BasePrice,
				r.Category,
				r.PastSalesVolume,
				r.Discount,
				r.ExpectedRevenue,
				r.FinalPrice,
				string(r.Confidence),
				created,
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (id, product_id, product_name, base_price, category, past_sales_volume, discount, expected_revenue, final_price, confidence, created_at) VALUES %s",
			historyTable, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse history insert error",
					applogger.Int("rows", hi-lo),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("insert history: %w", err)
		}
	}
	if s.l != nil {
		s.l.Info("clickhouse history insert ok",
			applogger.Int("rows", len(recs)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (s *CHHistoryStore) SameName(ctx context.Context, productName, excludeProductID string, limit int) ([]models.HistoryRecord, error) {
	start := time.Now()
	const qtpl = `
        SELECT id, product_id, product_name, base_price, category, past_sales_volume, discount, expected_revenue, final_price, confidence, created_at
        FROM %s
        WHERE product_name = ? AND product_id != ?
        ORDER BY created_at DESC
        LIMIT ?
    `
	q := fmt.Sprintf(qtpl, historyTable)
	rows, err := s.db.QueryContext(ctx, q, productName, excludeProductID, limit)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse same_name query error",
				applogger.String("product_name", productName),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("same name history: %w", err)
	}
	defer rows.Close()

	out := make([]models.HistoryRecord, 0, limit)
	for rows.Next() {
		r, err := scanHistoryRecord(rows)
		if err != nil {
			if s.l != nil {
				s.l.Error("clickhouse same_name scan error",
					applogger.String("product_name", productName),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan history: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse same_name ok",
			applogger.String("product_name", productName),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHHistoryStore) CategorySales(ctx context.Context, category string) ([]float64, error) {
	return s.distinctColumn(ctx, "past_sales_volume", category)
}

func (s *CHHistoryStore) CategoryPrices(ctx context.Context, category string) ([]float64, error) {
	return s.distinctColumn(ctx, "base_price", category)
}

func (s *CHHistoryStore) distinctColumn(ctx context.Context, column, category string) ([]float64, error) {
	start := time.Now()
	q := fmt.Sprintf("SELECT DISTINCT %s FROM %s WHERE category = ? AND %s > 0", column, historyTable, column)
	rows, err := s.db.QueryContext(ctx, q, category)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse category distinct query error",
				applogger.String("column", column),
				applogger.String("category", category),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("category %s: %w", column, err)
	}
	defer rows.Close()

	out := make([]float64, 0, 64)
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", column, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse category distinct ok",
			applogger.String("column", column),
			applogger.String("category", category),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHHistoryStore) Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	start := time.Now()
	const qtpl = `
        SELECT id, product_id, product_name, base_price, category, past_sales_volume, discount, expected_revenue, final_price, confidence, created_at
        FROM %s
        ORDER BY created_at DESC
        LIMIT ?
    `
	q := fmt.Sprintf(qtpl, historyTable)
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse recent query error",
				applogger.Int("limit", limit),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("recent history: %w", err)
	}
	defer rows.Close()

	out := make([]models.HistoryRecord, 0, limit)
	for rows.Next() {
		r, err := scanHistoryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse recent ok",
			applogger.Int("limit", limit),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHHistoryStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHHistoryStore) Close() error {
	return nil // Managed by pkg
}

func scanHistoryRecord(rows *sql.Rows) (models.HistoryRecord, error) {
	var r models.HistoryRecord
	var confidence string
	if err := rows.Scan(
		&r.ID,
		&r.ProductID,
		&r.ProductName,
		&r.BasePrice,
		&r.Category,
		&r.PastSalesVolume,
		&r.Discount,
		&r.ExpectedRevenue,
		&r.FinalPrice,
		&confidence,
		&r.CreatedAt,
	); err != nil {
		return models.HistoryRecord{}, err
	}
	r.Confidence = models.Confidence(confidence)
	return r, nil
}
