package service

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/swiftkart/storefront/internal/domain"
	"github.com/swiftkart/storefront/pkg/errors"
)

const dailyWindowDays = 30

// DateRange is a half-open interval [From, To). Zero bounds are open,
// so the zero DateRange means all time.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To) {
		return false
	}
	return true
}

// RangeAllTime covers every order.
func RangeAllTime() DateRange {
	return DateRange{}
}

// RangeToday covers the calendar day containing now.
func RangeToday(now time.Time) DateRange {
	start := startOfDay(now)
	return DateRange{From: start, To: start.AddDate(0, 0, 1)}
}

// RangeThisWeek covers the calendar week containing now, starting
// Monday.
func RangeThisWeek(now time.Time) DateRange {
	day := startOfDay(now)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	start := day.AddDate(0, 0, -offset)
	return DateRange{From: start, To: start.AddDate(0, 0, 7)}
}

// RangeThisMonth covers the calendar month containing now.
func RangeThisMonth(now time.Time) DateRange {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return DateRange{From: start, To: start.AddDate(0, 1, 0)}
}

// RangeBetween covers [from, to) explicitly.
func RangeBetween(from, to time.Time) DateRange {
	return DateRange{From: from, To: to}
}

// ParseDateRange maps a range keyword (all, today, week, month,
// custom) to a DateRange. Custom requires at least one bound in
// YYYY-MM-DD form; to is inclusive of the named day.
func ParseDateRange(keyword, from, to string, now time.Time) (DateRange, error) {
	switch keyword {
	case "", "all":
		return RangeAllTime(), nil
	case "today":
		return RangeToday(now), nil
	case "week":
		return RangeThisWeek(now), nil
	case "month":
		return RangeThisMonth(now), nil
	case "custom":
		if from == "" && to == "" {
			return DateRange{}, &errors.ErrValidation{Message: "custom range requires from or to"}
		}
		var rng DateRange
		if from != "" {
			t, err := time.ParseInLocation("2006-01-02", from, now.Location())
			if err != nil {
				return DateRange{}, &errors.ErrValidation{Message: "invalid from date: " + from}
			}
			rng.From = t
		}
		if to != "" {
			t, err := time.ParseInLocation("2006-01-02", to, now.Location())
			if err != nil {
				return DateRange{}, &errors.ErrValidation{Message: "invalid to date: " + to}
			}
			rng.To = t.AddDate(0, 0, 1)
		}
		return rng, nil
	default:
		return DateRange{}, &errors.ErrValidation{Message: "invalid range: " + keyword}
	}
}

// SalesReport aggregates revenue over a set of orders. Revenue counts
// orders whose payment status is paid or refunded; refunded orders
// were paid once and stay in the series.
type SalesReport struct {
	TotalRevenue    float64         `json:"totalRevenue"`
	PaidOrders      int             `json:"paidOrders"`
	PendingPayments int             `json:"pendingPayments"`
	Monthly         []MonthlyBucket `json:"monthly"`
	Daily           []DailyBucket   `json:"daily"`
}

// MonthlyBucket is revenue for one calendar month, keyed YYYY-MM.
type MonthlyBucket struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// DailyBucket is revenue for one calendar day, keyed YYYY-MM-DD.
type DailyBucket struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// BuildSalesReport computes the full report over the given orders,
// restricted to rng. The daily series always holds exactly 30
// buckets for the trailing window ending on now's day, zero-filled
// for days without revenue; orders outside the window still count
// toward totals and monthly buckets when inside rng.
func BuildSalesReport(orders []*domain.Order, rng DateRange, now time.Time) SalesReport {
	report := SalesReport{}

	today := startOfDay(now)
	windowStart := today.AddDate(0, 0, -(dailyWindowDays - 1))
	dailyRevenue := make(map[string]float64, dailyWindowDays)
	monthlyRevenue := make(map[string]float64)

	for _, order := range orders {
		if !rng.Contains(order.Date) {
			continue
		}

		switch order.PaymentStatus {
		case domain.PaymentStatusPaid:
			report.PaidOrders++
		case domain.PaymentStatusPending:
			report.PendingPayments++
		}

		if !order.PaymentStatus.CountsAsRevenue() {
			continue
		}

		report.TotalRevenue += order.Amount
		monthlyRevenue[order.Date.Format("2006-01")] += order.Amount

		day := startOfDay(order.Date)
		if !day.Before(windowStart) && !day.After(today) {
			dailyRevenue[day.Format("2006-01-02")] += order.Amount
		}
	}

	months := make([]string, 0, len(monthlyRevenue))
	for m := range monthlyRevenue {
		months = append(months, m)
	}
	sort.Strings(months)
	report.Monthly = make([]MonthlyBucket, len(months))
	for i, m := range months {
		report.Monthly[i] = MonthlyBucket{Month: m, Revenue: monthlyRevenue[m]}
	}

	report.Daily = make([]DailyBucket, dailyWindowDays)
	for i := 0; i < dailyWindowDays; i++ {
		key := windowStart.AddDate(0, 0, i).Format("2006-01-02")
		report.Daily[i] = DailyBucket{Date: key, Revenue: dailyRevenue[key]}
	}

	return report
}

// SellerSalesReport builds the report for one seller's orders in the
// given range. The range restriction is pushed into the repository
// query so the full order history never leaves the store.
func (s *orderService) SellerSalesReport(ctx context.Context, sellerID primitive.ObjectID, rng DateRange) (*SalesReport, error) {
	productIDs, err := s.repos.Product.ListIDsBySellerID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	orders, err := s.repos.Order.ListByProductIDsInRange(ctx, productIDs, rng.From, rng.To)
	if err != nil {
		return nil, err
	}

	report := BuildSalesReport(orders, rng, time.Now())

	s.logger.Debug("Sales report built",
		zap.String("seller_id", sellerID.Hex()),
		zap.Int("order_count", len(orders)),
		zap.Float64("total_revenue", report.TotalRevenue),
	)

	return &report, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
