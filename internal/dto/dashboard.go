package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Additional-Code/stockflow/internal/report"
)

// StatusCountResponse is one bar of the status breakdown.
type StatusCountResponse struct {
	Status string  `json:"status"`
	Count  int     `json:"count"`
	Share  float64 `json:"share"`
}

// EmployeeStatResponse is one row of the employee table. A nil average means
// the employee has no completed jobs.
type EmployeeStatResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	TotalJobs          int             `json:"total_jobs"`
	CompletedJobs      int             `json:"completed_jobs"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	AvgCompletionHours *float64        `json:"avg_completion_hours"`
	CompletionRate     float64         `json:"completion_rate"`
}

// MaterialStatResponse is one bar of the material usage chart.
type MaterialStatResponse struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Usage   int             `json:"usage"`
	Revenue decimal.Decimal `json:"revenue"`
	Share   float64         `json:"share"`
}

// DashboardResponse is the overview page payload.
type DashboardResponse struct {
	TotalOrders        int                    `json:"total_orders"`
	Statuses           []StatusCountResponse  `json:"statuses"`
	TotalRevenue       decimal.Decimal        `json:"total_revenue"`
	AvgCompletionHours *float64               `json:"avg_completion_hours"`
	CompletionRate     float64                `json:"completion_rate"`
	Employees          []EmployeeStatResponse `json:"employees"`
	Materials          []MaterialStatResponse `json:"materials"`
	BestEmployee       *EmployeeStatResponse  `json:"best_employee"`
	FastestEmployee    *EmployeeStatResponse  `json:"fastest_employee"`
	MostUsedMaterial   *MaterialStatResponse  `json:"most_used_material"`
}

// NewDashboardResponse maps a dashboard.
func NewDashboardResponse(d report.Dashboard) DashboardResponse {
	resp := DashboardResponse{
		TotalOrders:        d.TotalOrders,
		Statuses:           make([]StatusCountResponse, 0, len(d.Statuses)),
		TotalRevenue:       d.TotalRevenue,
		AvgCompletionHours: hours(d.AverageCompletionTime),
		CompletionRate:     round2(d.CompletionRate),
		Employees:          make([]EmployeeStatResponse, 0, len(d.Employees)),
		Materials:          make([]MaterialStatResponse, 0, len(d.Materials)),
	}
	for _, s := range d.Statuses {
		resp.Statuses = append(resp.Statuses, StatusCountResponse{Status: string(s.Status), Count: s.Count, Share: round2(s.Share)})
	}
	for _, e := range d.Employees {
		resp.Employees = append(resp.Employees, newEmployeeStat(e))
	}
	for _, m := range d.Materials {
		resp.Materials = append(resp.Materials, newMaterialStat(m))
	}
	if d.BestEmployee != nil {
		best := newEmployeeStat(*d.BestEmployee)
		resp.BestEmployee = &best
	}
	if d.FastestEmployee != nil {
		fastest := newEmployeeStat(*d.FastestEmployee)
		resp.FastestEmployee = &fastest
	}
	if d.MostUsedMaterial != nil {
		most := newMaterialStat(*d.MostUsedMaterial)
		resp.MostUsedMaterial = &most
	}
	return resp
}

func newEmployeeStat(s report.EmployeeStat) EmployeeStatResponse {
	return EmployeeStatResponse{
		ID:                 s.Employee.ID,
		Name:               s.Employee.Name,
		TotalJobs:          s.TotalJobs,
		CompletedJobs:      s.CompletedJobs,
		TotalRevenue:       s.TotalRevenue,
		AvgCompletionHours: hours(s.AvgCompletionTime),
		CompletionRate:     round2(s.CompletionRate),
	}
}

func newMaterialStat(s report.MaterialStat) MaterialStatResponse {
	return MaterialStatResponse{
		Code:    s.Material.Code,
		Name:    s.Material.Name,
		Usage:   s.Usage,
		Revenue: s.Revenue,
		Share:   round2(s.Share),
	}
}

func hours(d report.NullDuration) *float64 {
	if !d.Valid {
		return nil
	}
	h := round2(d.Hours())
	return &h
}

func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
