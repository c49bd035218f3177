package inventory

import (
	"sort"
	"time"

	"github.com/fairyhunter13/salon-management-service/internal/model"
	"github.com/fairyhunter13/salon-management-service/internal/store"
)

// OrderStats aggregates one order status bucket.
type OrderStats struct {
	Status      model.OrderStatus `json:"status"`
	Count       int               `json:"count"`
	TotalAmount float64           `json:"total_amount"`
}

// ProductStats aggregates the current stock position.
type ProductStats struct {
	TotalProducts int   `json:"total_products"`
	TotalStock    int64 `json:"total_stock"`
	LowStock      int   `json:"low_stock"`
}

// MonthlyRevenue aggregates delivered-order revenue for one month.
type MonthlyRevenue struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// Statistics is the reporting roll-up served to admins. Read-only; nothing
// here participates in lifecycle decisions.
type Statistics struct {
	Orders   []OrderStats   `json:"orders"`
	Products ProductStats   `json:"products"`
	Revenue  []MonthlyRevenue `json:"revenue"`
}

// Statistics computes order, stock, and revenue roll-ups, optionally limited
// to orders created within [from, to]. Cancelled orders are excluded from the
// status buckets; revenue counts delivered orders only.
func (s *Service) Statistics(from, to time.Time) Statistics {
	orders := s.orders.List(store.OrderFilter{From: from, To: to})

	byStatus := make(map[model.OrderStatus]*OrderStats)
	byMonth := make(map[[2]int]*MonthlyRevenue)
	for _, o := range orders {
		if o.Status != model.OrderCancelled {
			st, ok := byStatus[o.Status]
			if !ok {
				st = &OrderStats{Status: o.Status}
				byStatus[o.Status] = st
			}
			st.Count++
			st.TotalAmount += o.TotalAmount
		}
		if o.Status == model.OrderDelivered {
			key := [2]int{o.CreatedAt.Year(), int(o.CreatedAt.Month())}
			mr, ok := byMonth[key]
			if !ok {
				mr = &MonthlyRevenue{Year: key[0], Month: key[1]}
				byMonth[key] = mr
			}
			mr.Revenue += o.TotalAmount
			mr.Orders++
		}
	}

	stats := Statistics{}
	for _, st := range byStatus {
		stats.Orders = append(stats.Orders, *st)
	}
	sort.Slice(stats.Orders, func(i, j int) bool { return stats.Orders[i].Status < stats.Orders[j].Status })
	for _, mr := range byMonth {
		stats.Revenue = append(stats.Revenue, *mr)
	}
	sort.Slice(stats.Revenue, func(i, j int) bool {
		if stats.Revenue[i].Year != stats.Revenue[j].Year {
			return stats.Revenue[i].Year < stats.Revenue[j].Year
		}
		return stats.Revenue[i].Month < stats.Revenue[j].Month
	})

	for _, p := range s.products.List(store.ProductFilter{}) {
		stats.Products.TotalProducts++
		stats.Products.TotalStock += p.Stock
		if p.Stock < s.lowStockMark {
			stats.Products.LowStock++
		}
	}
	return stats
}
