package models

import "time"

// Confidence rates how decisively the best grid candidate beat the runner-up.
type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// TemporalContext carries the calendar features fed to the revenue model.
// DayOfWeek is Monday=0..Sunday=6; Weekend is 0/1.
type TemporalContext struct {
	Month     int
	DayOfWeek int
	Weekend   int
}

// PricingRequest is the input to one optimization run.
type PricingRequest struct {
	ProductID       string
	ProductName     string
	BasePrice       float64
	Category        string
	PastSalesVolume float64
	Temporal        *TemporalContext // nil means "use current date"
}

// PricingResult is the outcome of one optimization run.
// FinalPrice is always BasePrice * (1 - Discount/100).
type PricingResult struct {
	ProductID       string     `json:"product_id"`
	ProductName     string     `json:"product_name"`
	Discount        float64    `json:"discount"`
	ExpectedRevenue float64    `json:"expected_revenue"`
	FinalPrice      float64    `json:"final_price"`
	Confidence      Confidence `json:"confidence"`
}

// HistoryRecord is an immutable, previously computed pricing result.
// Written exactly once per successful optimization, never mutated.
type HistoryRecord struct {
	ID              string     `json:"id"`
	ProductID       string     `json:"product_id"`
	ProductName     string     `json:"product_name"`
	BasePrice       float64    `json:"base_price"`
	Category        string     `json:"category"`
	PastSalesVolume float64    `json:"past_sales_volume"`
	Discount        float64    `json:"discount"`
	ExpectedRevenue float64    `json:"expected_revenue"`
	FinalPrice      float64    `json:"final_price"`
	Confidence      Confidence `json:"confidence"`
	CreatedAt       time.Time  `json:"created_at"`
}

// SameNameStats summarizes historical records sharing the product name,
// capped at the 50 most recent and excluding the current product id.
type SameNameStats struct {
	Count    int
	Sales    []float64 // positive historical sales volumes
	Prices   []float64 // positive historical base prices
	SalesAvg float64
	SalesMin float64
	SalesMax float64
	PriceAvg float64
	PriceMax float64
}

// CategoryStats holds the percentile ranks of the current product within
// its category's history. Both default to 50 when no history exists.
type CategoryStats struct {
	SalesPercentile float64
	PricePercentile float64
}

// ChurnInput describes a customer for churn assessment.
type ChurnInput struct {
	CustomerID         string
	LastPurchaseDate   string // YYYY-MM-DD
	TotalOrders        int
	AvgGapDays         float64
	TotalSpend         float64
	SpendTrend         string // increasing, stable, decreasing
	DaysSinceLastOrder int
	CategoryPreference string
}

// ChurnAssessment is a churn risk evaluation result.
type ChurnAssessment struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Risk       float64   `json:"risk"`
	Prediction int       `json:"prediction"` // 1 = expected to churn
	RiskLevel  string    `json:"risk_level"`
	CreatedAt  time.Time `json:"created_at"`
}

// CustomerProfile describes purchase behavior for category classification.
type CustomerProfile struct {
	TotalOrders         float64 `json:"total_orders"`
	PurchaseFrequency   float64 `json:"purchase_frequency"`
	AvgOrderValue       float64 `json:"avg_order_value"`
	LastPurchaseDaysAgo float64 `json:"last_purchase_days_ago"`
	TotalItemsBought    float64 `json:"total_items_bought"`
}

// CustomerPrediction is a classified preferred category with probability.
type CustomerPrediction struct {
	ID           string          `json:"id"`
	Profile      CustomerProfile `json:"profile"`
	Category     string          `json:"predicted_category"`
	Probability  float64         `json:"prediction_probability"`
	CategoryCode int             `json:"predicted_category_encoded"`
	CreatedAt    time.Time       `json:"created_at"`
}
