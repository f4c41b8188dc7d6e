package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"PricePulse/internal/domain/models"
	domrepo "PricePulse/internal/domain/repository"
	pkgch "PricePulse/pkg/clickhouse"
	applogger "PricePulse/pkg/logger"
)

const (
	churnTable    = "pricepulse.churn_assessments"
	customerTable = "pricepulse.customer_predictions"
)

// CHChurnStore persists churn assessments in ClickHouse.
type CHChurnStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHChurnStore(ch *pkgch.Client) *CHChurnStore {
	return &CHChurnStore{db: ch.DB()}
}

func (s *CHChurnStore) SetLogger(l *applogger.Logger) { s.l = l }

var _ domrepo.ChurnStore = (*CHChurnStore)(nil)

func (s *CHChurnStore) Insert(ctx context.Context, a *models.ChurnAssessment) error {
	start := time.Now()
	id := a.ID
	if id == "" {
		id = uuid.NewString()
	}
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	q := fmt.Sprintf("INSERT INTO %s (id, customer_id, risk, prediction, risk_level, created_at) VALUES (?, ?, ?, ?, ?, ?)", churnTable)
	if _, err := s.db.ExecContext(ctx, q, id, a.CustomerID, a.Risk, int32(a.Prediction), a.RiskLevel, created); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse churn insert error",
				applogger.String("customer_id", a.CustomerID),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("insert churn: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse churn insert ok",
			applogger.String("customer_id", a.CustomerID),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (s *CHChurnStore) Recent(ctx context.Context, limit int) ([]models.ChurnAssessment, error) {
	q := fmt.Sprintf("SELECT id, customer_id, risk, prediction, risk_level, created_at FROM %s ORDER BY created_at DESC LIMIT ?", churnTable)
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse churn recent query error", applogger.Error(err))
		}
		return nil, fmt.Errorf("recent churn: %w", err)
	}
	defer rows.Close()

	out := make([]models.ChurnAssessment, 0, limit)
	for rows.Next() {
		var a models.ChurnAssessment
		var prediction int32
		if err := rows.Scan(&a.ID, &a.CustomerID, &a.Risk, &prediction, &a.RiskLevel, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan churn: %w", err)
		}
		a.Prediction = int(prediction)
		out = append(out, a)
	}
	return out, rows.Err()
}

// CHCustomerStore persists customer category predictions in ClickHouse.
type CHCustomerStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHCustomerStore(ch *pkgch.Client) *CHCustomerStore {
	return &CHCustomerStore{db: ch.DB()}
}

func (s *CHCustomerStore) SetLogger(l *applogger.Logger) { s.l = l }

var _ domrepo.CustomerStore = (*CHCustomerStore)(nil)

func (s *CHCustomerStore) Insert(ctx context.Context, p *models.CustomerPrediction) error {
	start := time.Now()
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	q := fmt.Sprintf("INSERT INTO %s (id, total_orders, purchase_frequency, avg_order_value, last_purchase_days_ago, total_items_bought, category, probability, category_code, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", customerTable)
	if _, err := s.db.ExecContext(ctx, q,
		id,
		p.Profile.TotalOrders,
		p.Profile.PurchaseFrequency,
		p.Profile.AvgOrderValue,
		p.Profile.LastPurchaseDaysAgo,
		p.Profile.TotalItemsBought,
		p.Category,
		p.Probability,
		int32(p.CategoryCode),
		created,
	); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse customer insert error",
				applogger.String("category", p.Category),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("insert customer prediction: %w", err)
	}
	if s.l != nil {
		s.l.Info("clickhouse customer insert ok",
			applogger.String("category", p.Category),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (s *CHCustomerStore) Recent(ctx context.Context, limit int) ([]models.CustomerPrediction, error) {
	q := fmt.Sprintf("SELECT id, total_orders, purchase_frequency, avg_order_value, last_purchase_days_ago, total_items_bought, category, probability, category_code, created_at FROM %s ORDER BY created_at DESC LIMIT ?", customerTable)
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse customer recent query error", applogger.Error(err))
		}
		return nil, fmt.Errorf("recent customer predictions: %w", err)
	}
	defer rows.Close()

	out := make([]models.CustomerPrediction, 0, limit)
	for rows.Next() {
		var p models.CustomerPrediction
		var code int32
		if err := rows.Scan(
			&p.ID,
			&p.Profile.TotalOrders,
			&p.Profile.PurchaseFrequency,
			&p.Profile.AvgOrderValue,
			&p.Profile.LastPurchaseDaysAgo,
			&p.Profile.TotalItemsBought,
			&p.Category,
			&p.Probability,
			&code,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer prediction: %w", err)
		}
		p.CategoryCode = int(code)
		out = append(out, p)
	}
	return out, rows.Err()
}
