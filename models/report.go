package models

import (
	"context"
	"fmt"
	"time"

	"github.com/mmdatafocus/shoptrack_backend/config"
	"github.com/mmdatafocus/shoptrack_backend/utils"
	"github.com/shopspring/decimal"
)

type DailySalesEntry struct {
	Date         string          `json:"date"`
	InvoiceCount int             `json:"invoice_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

type MonthlySalesEntry struct {
	Month        string          `json:"month"`
	InvoiceCount int             `json:"invoice_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

const maxDailyReportDays = 366

// GetDailySales returns per-day invoice counts and revenue for the window
// ending today, inclusive. Days with no sales appear with zero values so the
// series has no gaps. Archived invoices are excluded.
//
// The window and the buckets are both computed in UTC: the mysql driver
// stores created_at in UTC (parseTime with the default loc), so grouping on
// the stored value and filtering with a UTC boundary agree on day edges.
// DATE_FORMAT keeps the grouped key a plain calendar-date string; a bare
// DATE() would come back through the driver as time.Time and never match
// the window keys.
func GetDailySales(ctx context.Context, days int) ([]*DailySalesEntry, error) {
	if days <= 0 || days > maxDailyReportDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", utils.ErrInvalidInput, maxDailyReportDays)
	}
	db := config.GetDB()

	now := time.Now().UTC()
	since := utils.TruncateToDay(now).AddDate(0, 0, -(days - 1))

	var rows []*DailySalesEntry
	err := db.WithContext(ctx).Model(&SaleInvoice{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS date, COUNT(*) AS invoice_count, COALESCE(SUM(total_amount), 0) AS total_amount").
		Where("is_active = ? AND created_at >= ?", true, since).
		Group("DATE_FORMAT(created_at, '%Y-%m-%d')").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return FillDailyWindow(rows, days, now), nil
}

// FillDailyWindow pads a sparse day-keyed series out to exactly days entries
// ending at today's date, oldest first. Rows outside the window are dropped.
func FillDailyWindow(rows []*DailySalesEntry, days int, today time.Time) []*DailySalesEntry {
	byDate := make(map[string]*DailySalesEntry, len(rows))
	for _, row := range rows {
		byDate[row.Date] = row
	}
	start := utils.TruncateToDay(today).AddDate(0, 0, -(days - 1))
	out := make([]*DailySalesEntry, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		if row, ok := byDate[date]; ok {
			out = append(out, row)
		} else {
			out = append(out, &DailySalesEntry{Date: date, InvoiceCount: 0, TotalAmount: decimal.Zero})
		}
	}
	return out
}

// GetMonthlySales returns per-month invoice counts and revenue over all
// recorded history, oldest month first. Months with no sales are simply
// absent; a monthly series has no natural window to pad against.
func GetMonthlySales(ctx context.Context) ([]*MonthlySalesEntry, error) {
	db := config.GetDB()

	var rows []*MonthlySalesEntry
	err := db.WithContext(ctx).Model(&SaleInvoice{}).
		Select("DATE_FORMAT(created_at, '%Y-%m') AS month, COUNT(*) AS invoice_count, COALESCE(SUM(total_amount), 0) AS total_amount").
		Where("is_active = ?", true).
		Group("DATE_FORMAT(created_at, '%Y-%m')").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
