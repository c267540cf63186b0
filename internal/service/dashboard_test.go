package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shutterdesk/studio/internal/core"
	"github.com/shutterdesk/studio/internal/domain/model"
	"github.com/shutterdesk/studio/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTrend_String(t *testing.T) {
	assert.Equal(t, "+12% from last month", Trend{Value: 12, Label: trendLabel}.String())
	assert.Equal(t, "-8% from last month", Trend{Value: -8, Label: trendLabel}.String())
	assert.Equal(t, "+0% from last month", Trend{Value: 0, Label: trendLabel}.String())
}

func TestTrend_Percent(t *testing.T) {
	assert.Equal(t, 50, trend(150, 100).Value)
	assert.Equal(t, -25, trend(75, 100).Value)
	assert.Equal(t, 100, trend(3, 0).Value)
	assert.Equal(t, 0, trend(0, 0).Value)
}

type dashboardRepos struct {
	jobs         *mocks.MockJobRepository
	invoices     *mocks.MockInvoiceRepository
	transactions *mocks.MockTransactionRepository
	gallery      *mocks.MockGalleryImageRepository
}

func newDashboardRepos(t *testing.T) (dashboardRepos, core.Repositories) {
	ctrl := gomock.NewController(t)
	r := dashboardRepos{
		jobs:         mocks.NewMockJobRepository(ctrl),
		invoices:     mocks.NewMockInvoiceRepository(ctrl),
		transactions: mocks.NewMockTransactionRepository(ctrl),
		gallery:      mocks.NewMockGalleryImageRepository(ctrl),
	}
	return r, core.Repositories{Jobs: r.jobs, Invoices: r.invoices, Transactions: r.transactions, Gallery: r.gallery}
}

func TestDashboardService_Overview(t *testing.T) {
	r, repos := newDashboardRepos(t)
	svcs := newServices(t, repos)

	thisMonth := time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

	r.jobs.EXPECT().List(gomock.Any()).Return([]*model.Job{
		{ID: "1", Status: model.JobStatusOpen, CreatedAt: thisMonth},
		{ID: "2", Status: model.JobStatusOpen, CreatedAt: thisMonth},
		{ID: "3", Status: model.JobStatusFilled, CreatedAt: lastMonth},
		{ID: "4", Status: model.JobStatusClosed, CreatedAt: lastMonth},
	}, nil)
	r.transactions.EXPECT().List(gomock.Any()).Return([]*model.Transaction{
		{ID: "t1", Type: model.TransactionIncome, Amount: 1120, TransactionDate: thisMonth},
		{ID: "t2", Type: model.TransactionIncome, Amount: 1000, TransactionDate: lastMonth},
		{ID: "t3", Type: model.TransactionExpense, Amount: 500, TransactionDate: thisMonth},
	}, nil)
	r.invoices.EXPECT().List(gomock.Any()).Return([]*model.Invoice{
		{ID: "i1", Amount: 1000, AmountPaid: 250, Status: model.InvoiceStatusPending, DueDate: lastMonth},
		{ID: "i2", Amount: 300, AmountPaid: 300, Status: model.InvoiceStatusPaid, DueDate: lastMonth},
	}, nil)
	r.gallery.EXPECT().List(gomock.Any()).Return([]*model.GalleryImage{
		{ID: "g1", CreatedAt: thisMonth},
	}, nil)

	ov, err := svcs.Dashboard.Overview(context.Background())
	require.NoError(t, err)
	assert.False(t, ov.Stale)
	require.Len(t, ov.Cards, 5)

	byTitle := map[string]StatCard{}
	for _, c := range ov.Cards {
		byTitle[c.Title] = c
	}
	assert.Equal(t, "2", byTitle["Open Jobs"].Value)
	assert.Equal(t, "+0% from last month", byTitle["Open Jobs"].TrendText)
	assert.Equal(t, "$1120.00", byTitle["Revenue"].Value)
	assert.Equal(t, "+12% from last month", byTitle["Revenue"].TrendText)
	assert.Equal(t, "$750.00", byTitle["Outstanding Invoices"].Value)
	assert.Nil(t, byTitle["Outstanding Invoices"].Trend)
	assert.Equal(t, "1", byTitle["Overdue Invoices"].Value)
	assert.Equal(t, "1", byTitle["Gallery Images"].Value)
	assert.Equal(t, "+100% from last month", byTitle["Gallery Images"].TrendText)
}

func TestDashboardService_OverviewFailsWithoutData(t *testing.T) {
	r, repos := newDashboardRepos(t)
	svcs := newServices(t, repos)

	r.jobs.EXPECT().List(gomock.Any()).Return(nil, errors.New("backend down")).AnyTimes()
	r.transactions.EXPECT().List(gomock.Any()).Return(nil, nil).AnyTimes()
	r.invoices.EXPECT().List(gomock.Any()).Return(nil, nil).AnyTimes()
	r.gallery.EXPECT().List(gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := svcs.Dashboard.Overview(context.Background())
	assert.ErrorContains(t, err, "backend down")
}
