package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BenjaminAliagaMardones/sistemashooper/internal/services"
)

// DashboardStore aggregates per-tenant order data for the dashboard endpoints.
type DashboardStore struct{ DB *gorm.DB }

func NewDashboardStore(db *gorm.DB) *DashboardStore { return &DashboardStore{DB: db} }

// Metrics are the monthly aggregates shown on the dashboard.
type Metrics struct {
	Month          int     `json:"month"`
	Year           int     `json:"year"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalProfit    float64 `json:"total_profit"`
	OrderCount     int64   `json:"order_count"`
	TicketPromedio float64 `json:"ticket_promedio"`
}

// Metrics aggregates revenue, profit, order count and average ticket for the
// given month. Filtering happens in SQL on the order's business date.
func (s *DashboardStore) Metrics(userID uuid.UUID, month, year int) (*Metrics, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var agg struct {
		TotalRevenue float64
		TotalProfit  float64
		OrderCount   int64
	}
	err := s.DB.Table("orders").
		Select("COALESCE(SUM(total_amount), 0) AS total_revenue, COALESCE(SUM(total_profit), 0) AS total_profit, COUNT(id) AS order_count").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	m := &Metrics{
		Month:        month,
		Year:         year,
		TotalRevenue: services.RoundCents(agg.TotalRevenue),
		TotalProfit:  services.RoundCents(agg.TotalProfit),
		OrderCount:   agg.OrderCount,
	}
	if agg.OrderCount > 0 {
		m.TicketPromedio = services.RoundCents(agg.TotalRevenue / float64(agg.OrderCount))
	}
	return m, nil
}

// BestClient is one row of the spend ranking.
type BestClient struct {
	ClientID    uuid.UUID `gorm:"column:client_id" json:"client_id"`
	Name        string    `gorm:"column:name" json:"name"`
	LastName    string    `gorm:"column:last_name" json:"last_name"`
	Email       string    `gorm:"column:email" json:"email"`
	TotalOrders int64     `gorm:"column:total_orders" json:"total_orders"`
	TotalSpent  float64   `gorm:"column:total_spent" json:"total_spent"`
}

// BestClients ranks the user's clients by total spend descending. Clients
// without orders are included with zeros (LEFT JOIN), and ties break on
// client id ascending so the ordering is deterministic.
func (s *DashboardStore) BestClients(userID uuid.UUID, limit int) ([]BestClient, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []BestClient
	err := s.DB.Table("clients").
		Select("clients.id AS client_id, clients.name AS name, clients.last_name AS last_name, clients.email AS email, COUNT(orders.id) AS total_orders, COALESCE(SUM(orders.total_amount), 0) AS total_spent").
		Joins("LEFT JOIN orders ON orders.client_id = clients.id").
		Where("clients.user_id = ?", userID).
		Group("clients.id, clients.name, clients.last_name, clients.email").
		Order("total_spent DESC, clients.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].TotalSpent = services.RoundCents(rows[i].TotalSpent)
	}
	return rows, nil
}
