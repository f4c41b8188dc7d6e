package models

// Requests for pricing HTTP endpoints. Defined in domain for consistency and reuse.

type OptimizeRequest struct {
	ProductID       string   `json:"product_id" validate:"required"`
	ProductName     string   `json:"product_name" validate:"required"`
	BasePrice       float64  `json:"base_price" validate:"gte=0"`
	Category        string   `json:"category" validate:"required"`
	PastSalesVolume float64  `json:"past_sales_volume" validate:"gte=0"`
	Month           *int     `json:"month,omitempty" validate:"omitempty,gte=1,lte=12"`
	DayOfWeek       *int     `json:"day_of_week,omitempty" validate:"omitempty,gte=0,lte=6"`
	IsWeekend       *int     `json:"is_weekend,omitempty" validate:"omitempty,oneof=0 1"`
}

type HistoryListRequest struct {
	Limit int `query:"limit" json:"limit" default:"100" validate:"gte=1,lte=1000"`
}

type ChurnAssessRequest struct {
	CustomerID         string  `json:"customer_id" validate:"required"`
	LastPurchaseDate   string  `json:"last_purchase_date" validate:"required"`
	TotalOrders        int     `json:"total_orders" validate:"gte=0"`
	AvgGapDays         float64 `json:"avg_gap_days" validate:"gte=0"`
	TotalSpend         float64 `json:"total_spend" validate:"gte=0"`
	SpendTrend         string  `json:"spend_trend" validate:"oneof=increasing stable decreasing"`
	DaysSinceLastOrder int     `json:"days_since_last_order" validate:"gte=0"`
	CategoryPreference string  `json:"category_preference" validate:"required"`
}

type ClassifyRequest struct {
	TotalOrders         float64 `json:"total_orders" validate:"gte=0"`
	PurchaseFrequency   float64 `json:"purchase_frequency" validate:"gte=0"`
	AvgOrderValue       float64 `json:"avg_order_value" validate:"gte=0"`
	LastPurchaseDaysAgo float64 `json:"last_purchase_days_ago" validate:"gte=0"`
	TotalItemsBought    float64 `json:"total_items_bought" validate:"gte=0"`
}
