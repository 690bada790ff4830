package relation

import (
	"biowearth/internal/model"
	"biowearth/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	dashboardChartSize = 7
	dashboardTaskSize  = 5
)

// ChartPoint is one bar of the dashboard revenue chart.
type ChartPoint struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// Stats feeds the overview screen.
type Stats struct {
	Products      int             `json:"products"`
	ActiveClients int             `json:"activeClients"`
	PendingTasks  int             `json:"pendingTasks"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	Chart         []ChartPoint    `json:"chart"`
	UpcomingTasks []model.Task    `json:"upcomingTasks"`
}

// DashboardStats counts products, Active clients and open tasks, and sums
// sellingPrice·moq over every sales quote regardless of status.
func DashboardStats(s *repository.Snapshot) Stats {
	st := Stats{Products: len(s.Products), Chart: []ChartPoint{}, UpcomingTasks: []model.Task{}}
	for _, c := range s.Clients {
		if c.Status == model.StatusActive {
			st.ActiveClients++
		}
	}
	for _, t := range s.Tasks {
		if t.Completed() {
			continue
		}
		st.PendingTasks++
		if len(st.UpcomingTasks) < dashboardTaskSize {
			st.UpcomingTasks = append(st.UpcomingTasks, t)
		}
	}
	for i, q := range s.QuotesSent {
		value := q.SellingPrice.Decimal().Mul(q.MOQ.Decimal())
		st.TotalRevenue = st.TotalRevenue.Add(value)
		if i < dashboardChartSize {
			st.Chart = append(st.Chart, ChartPoint{Name: q.QuoteID, Value: value})
		}
	}
	return st
}
