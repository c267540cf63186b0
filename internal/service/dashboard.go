package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shutterdesk/studio/internal/domain/model"
	"github.com/shutterdesk/studio/internal/store"
	"golang.org/x/sync/errgroup"
)

// trendLabel is the comparison period shown on every stat card.
const trendLabel = "from last month"

// Trend is the month-over-month change shown under a stat card value.
type Trend struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// String renders the trend as "+12% from last month".
func (t Trend) String() string {
	sign := "+"
	if t.Value < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%d%% %s", sign, abs(t.Value), t.Label)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// StatCard is one dashboard tile.
type StatCard struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Trend *Trend `json:"trend,omitempty"`
	// TrendText is Trend rendered for display.
	TrendText string `json:"trend_text,omitempty"`
}

func card(title, value string, trend *Trend) StatCard {
	c := StatCard{Title: title, Value: value, Trend: trend}
	if trend != nil {
		c.TrendText = trend.String()
	}
	return c
}

// Overview is the dashboard payload.
type Overview struct {
	Cards       []StatCard `json:"cards"`
	Stale       bool       `json:"stale,omitempty"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// DashboardOptions wires the stores the dashboard reads.
type DashboardOptions struct {
	Jobs         *store.Store[*model.Job]
	Invoices     *store.Store[*model.Invoice]
	Transactions *store.Store[*model.Transaction]
	Gallery      *store.Store[*model.GalleryImage]
	Now          func() time.Time
}

// DashboardService builds the dashboard stat cards.
type DashboardService struct {
	opts DashboardOptions
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(opts DashboardOptions) *DashboardService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &DashboardService{opts: opts}
}

// Overview loads every collection concurrently and summarises them. A collection that fails
// with nothing cached fails the overview; stale collections mark it stale.
func (s *DashboardService) Overview(ctx context.Context) (Overview, error) {
	var (
		jobs         store.Snapshot[*model.Job]
		invoices     store.Snapshot[*model.Invoice]
		transactions store.Snapshot[*model.Transaction]
		gallery      store.Snapshot[*model.GalleryImage]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { jobs, err = load(gctx, s.opts.Jobs); return })
	g.Go(func() (err error) { invoices, err = load(gctx, s.opts.Invoices); return })
	g.Go(func() (err error) { transactions, err = load(gctx, s.opts.Transactions); return })
	g.Go(func() (err error) { gallery, err = load(gctx, s.opts.Gallery); return })
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	now := s.opts.Now().UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)
	period := func(t time.Time) int {
		switch {
		case !t.Before(thisMonth):
			return 0
		case !t.Before(lastMonth):
			return 1
		default:
			return -1
		}
	}

	var open, jobsNow, jobsPrev int
	for _, j := range jobs.Data {
		if j.Status == model.JobStatusOpen {
			open++
		}
		switch period(j.CreatedAt) {
		case 0:
			jobsNow++
		case 1:
			jobsPrev++
		}
	}

	var revenueNow, revenuePrev float64
	for _, t := range transactions.Data {
		if t.Type != model.TransactionIncome {
			continue
		}
		switch period(t.TransactionDate) {
		case 0:
			revenueNow += t.Amount
		case 1:
			revenuePrev += t.Amount
		}
	}

	var outstanding float64
	var overdue int
	for _, inv := range invoices.Data {
		outstanding += inv.Outstanding()
		if inv.IsOverdue(now) {
			overdue++
		}
	}

	var uploadsNow, uploadsPrev int
	for _, img := range gallery.Data {
		switch period(img.CreatedAt) {
		case 0:
			uploadsNow++
		case 1:
			uploadsPrev++
		}
	}

	return Overview{
		Cards: []StatCard{
			card("Open Jobs", strconv.Itoa(open), trend(float64(jobsNow), float64(jobsPrev))),
			card("Revenue", money(revenueNow), trend(revenueNow, revenuePrev)),
			card("Outstanding Invoices", money(outstanding), nil),
			card("Overdue Invoices", strconv.Itoa(overdue), nil),
			card("Gallery Images", strconv.Itoa(len(gallery.Data)), trend(float64(uploadsNow), float64(uploadsPrev))),
		},
		Stale:       jobs.Err != nil || invoices.Err != nil || transactions.Err != nil || gallery.Err != nil,
		GeneratedAt: now,
	}, nil
}

func load[T any](ctx context.Context, st *store.Store[T]) (store.Snapshot[T], error) {
	if st == nil {
		return store.Snapshot[T]{}, nil
	}
	snap := st.Get(ctx)
	if err := ctx.Err(); err != nil {
		return snap, err
	}
	if snap.Err != nil && !snap.HasData() {
		return snap, loadError(st.Key(), snap.Err)
	}
	return snap, nil
}

// trend is the rounded percent change from prev to cur. With no previous activity any
// current activity counts as +100%.
func trend(cur, prev float64) *Trend {
	var pct float64
	switch {
	case prev == 0 && cur == 0:
		pct = 0
	case prev == 0:
		pct = 100
	default:
		pct = (cur - prev) / math.Abs(prev) * 100
	}
	return &Trend{Value: int(math.Round(pct)), Label: trendLabel}
}

func money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}
