package service

import (
	"testing"
	"time"

	"github.com/swiftkart/storefront/internal/domain"
)

func orderAt(amount float64, ps domain.PaymentStatus, date time.Time) *domain.Order {
	return &domain.Order{
		Amount:        amount,
		PaymentStatus: ps,
		Status:        domain.OrderStatusPlaced,
		Date:          date,
	}
}

func TestBuildSalesReportEmpty(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	report := BuildSalesReport(nil, RangeAllTime(), now)

	if report.TotalRevenue != 0 {
		t.Errorf("total revenue = %v, want 0", report.TotalRevenue)
	}
	if report.PaidOrders != 0 || report.PendingPayments != 0 {
		t.Errorf("counts = %d/%d, want 0/0", report.PaidOrders, report.PendingPayments)
	}
	if len(report.Monthly) != 0 {
		t.Errorf("monthly buckets = %d, want 0", len(report.Monthly))
	}
	if len(report.Daily) != 30 {
		t.Fatalf("daily buckets = %d, want 30", len(report.Daily))
	}
	for _, d := range report.Daily {
		if d.Revenue != 0 {
			t.Errorf("daily bucket %s = %v, want 0", d.Date, d.Revenue)
		}
	}
}

func TestBuildSalesReportRevenueSelection(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	orders := []*domain.Order{
		orderAt(100, domain.PaymentStatusPaid, now.AddDate(0, 0, -1)),
		orderAt(50, domain.PaymentStatusRefunded, now.AddDate(0, 0, -2)),
		orderAt(999, domain.PaymentStatusPending, now.AddDate(0, 0, -1)),
		orderAt(999, domain.PaymentStatusFailed, now.AddDate(0, 0, -1)),
	}

	report := BuildSalesReport(orders, RangeAllTime(), now)

	if report.TotalRevenue != 150 {
		t.Errorf("total revenue = %v, want 150 (paid + refunded only)", report.TotalRevenue)
	}
	if report.PaidOrders != 1 {
		t.Errorf("paid orders = %d, want 1", report.PaidOrders)
	}
	if report.PendingPayments != 1 {
		t.Errorf("pending payments = %d, want 1", report.PendingPayments)
	}
}

func TestBuildSalesReportTodayFilter(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	orders := []*domain.Order{
		orderAt(99.99, domain.PaymentStatusPaid, now.Add(-2*time.Hour)),
		orderAt(42, domain.PaymentStatusPaid, now.AddDate(0, 0, -3)),
	}

	report := BuildSalesReport(orders, RangeToday(now), now)

	if report.TotalRevenue != 99.99 {
		t.Errorf("total revenue = %v, want 99.99", report.TotalRevenue)
	}
	if report.PaidOrders != 1 {
		t.Errorf("paid orders = %d, want 1", report.PaidOrders)
	}
}

func TestBuildSalesReportDailyWindowAndMonthly(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	// 40 days old: outside the 30-day daily window, inside its month bucket
	old := orderAt(200, domain.PaymentStatusPaid, now.AddDate(0, 0, -40))
	recent := orderAt(75, domain.PaymentStatusPaid, now.AddDate(0, 0, -1))

	report := BuildSalesReport([]*domain.Order{old, recent}, RangeAllTime(), now)

	if report.TotalRevenue != 275 {
		t.Errorf("total revenue = %v, want 275", report.TotalRevenue)
	}

	var dailySum float64
	for _, d := range report.Daily {
		dailySum += d.Revenue
	}
	if dailySum != 75 {
		t.Errorf("daily series sum = %v, want 75 (40-day-old order excluded)", dailySum)
	}

	// old order dates to 2026-07-19
	wantMonths := map[string]float64{"2026-07": 200, "2026-08": 75}
	if len(report.Monthly) != len(wantMonths) {
		t.Fatalf("monthly buckets = %d, want %d", len(report.Monthly), len(wantMonths))
	}
	for _, m := range report.Monthly {
		if wantMonths[m.Month] != m.Revenue {
			t.Errorf("month %s = %v, want %v", m.Month, m.Revenue, wantMonths[m.Month])
		}
	}
	// chronological ordering
	if report.Monthly[0].Month != "2026-07" || report.Monthly[1].Month != "2026-08" {
		t.Errorf("monthly buckets out of order: %v", report.Monthly)
	}
}

func TestBuildSalesReportMonthBoundary(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	orders := []*domain.Order{
		orderAt(10, domain.PaymentStatusPaid, time.Date(2026, 2, 28, 23, 0, 0, 0, time.UTC)),
		orderAt(20, domain.PaymentStatusPaid, time.Date(2026, 3, 1, 1, 0, 0, 0, time.UTC)),
	}

	report := BuildSalesReport(orders, RangeThisMonth(now), now)

	if report.TotalRevenue != 20 {
		t.Errorf("this-month revenue = %v, want 20", report.TotalRevenue)
	}

	all := BuildSalesReport(orders, RangeAllTime(), now)
	if all.TotalRevenue != 30 {
		t.Errorf("all-time revenue = %v, want 30", all.TotalRevenue)
	}
	if len(all.Monthly) != 2 {
		t.Errorf("monthly buckets = %d, want 2 across the boundary", len(all.Monthly))
	}
}

func TestParseDateRange(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) // a Friday

	week, err := ParseDateRange("week", "", "", now)
	if err != nil {
		t.Fatalf("week: %v", err)
	}
	if week.From.Weekday() != time.Monday {
		t.Errorf("week starts %v, want Monday", week.From.Weekday())
	}

	custom, err := ParseDateRange("custom", "2026-01-01", "2026-01-31", now)
	if err != nil {
		t.Fatalf("custom: %v", err)
	}
	if !custom.Contains(time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)) {
		t.Error("custom to-date should be inclusive of the named day")
	}
	if custom.Contains(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("custom range should exclude the day after to")
	}

	if _, err := ParseDateRange("fortnight", "", "", now); err == nil {
		t.Error("unknown keyword should fail")
	}
	if _, err := ParseDateRange("custom", "", "", now); err == nil {
		t.Error("custom without bounds should fail")
	}
}
