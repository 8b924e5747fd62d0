package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetperformersmap/tips-api/pkg/config"
	"github.com/streetperformersmap/tips-api/pkg/models"
	"github.com/streetperformersmap/tips-api/pkg/payments"
)

type fakeService struct {
	tx        *models.Transaction
	result    *payments.ReconcileResult
	report    *payments.SweepReport
	err       error
	olderThan time.Duration
}

func (f *fakeService) GetTransaction(ctx context.Context, paymentIntentID string) (*models.Transaction, error) {
	return f.tx, f.err
}

func (f *fakeService) Reconcile(ctx context.Context, paymentIntentID string) (*payments.ReconcileResult, error) {
	return f.result, f.err
}

func (f *fakeService) SweepPending(ctx context.Context, olderThan time.Duration) (*payments.SweepReport, error) {
	f.olderThan = olderThan
	return f.report, f.err
}

func run(t *testing.T, svc *fakeService, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	orig := newService
	newService = func(context.Context) (tipsService, *config.Config, error) { return svc, cfg, nil }
	t.Cleanup(func() { newService = orig })

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReconcileCmd(t *testing.T) {
	svc := &fakeService{result: &payments.ReconcileResult{
		PaymentIntentID: "pi_1",
		PreviousStatus:  models.PENDING,
		Status:          models.COMPLETED,
		Changed:         true,
		Message:         "status updated to: completed",
	}}

	out, err := run(t, svc, nil, "reconcile", "pi_1")

	require.NoError(t, err)
	assert.Contains(t, out, "Payment intent: pi_1")
	assert.Contains(t, out, "Changed:      true")
	assert.Contains(t, out, "status updated to: completed")
}

func TestReconcileCmd_Error(t *testing.T) {
	svc := &fakeService{err: errors.New("boom")}

	_, err := run(t, svc, nil, "reconcile", "pi_1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reconcile failed: boom")
}

func TestReconcileCmd_RequiresIntentID(t *testing.T) {
	_, err := run(t, &fakeService{}, nil, "reconcile")
	require.Error(t, err)
}

func TestSweepCmd(t *testing.T) {
	report := &payments.SweepReport{
		Checked:      3,
		Completed:    1,
		Failed:       1,
		StillPending: 0,
		Errors:       []payments.SweepFailure{{PaymentIntentID: "pi_3", Reason: "provider down"}},
	}

	t.Run("Uses configured age by default", func(t *testing.T) {
		svc := &fakeService{report: report}
		cfg := &config.Config{Reconcile: config.ReconcileConfig{PendingAfter: time.Hour}}

		out, err := run(t, svc, cfg, "sweep")

		require.NoError(t, err)
		assert.Equal(t, time.Hour, svc.olderThan)
		assert.Contains(t, out, "Checked:       3")
		assert.Contains(t, out, "pi_3: provider down")
	})

	t.Run("Flag overrides configuration", func(t *testing.T) {
		svc := &fakeService{report: report}
		cfg := &config.Config{Reconcile: config.ReconcileConfig{PendingAfter: time.Hour}}

		_, err := run(t, svc, cfg, "sweep", "--older-than", "5m")

		require.NoError(t, err)
		assert.Equal(t, 5*time.Minute, svc.olderThan)
	})
}

func TestShowCmd(t *testing.T) {
	svc := &fakeService{tx: &models.Transaction{
		Id:              "tx-1",
		PaymentIntentId: "pi_1",
		PerformerId:     "performer-1",
		PerformanceId:   "performance-1",
		Currency:        "usd",
		Amount:          500,
		ProcessingFee:   45,
		NetAmount:       455,
		Status:          models.PENDING,
	}}

	out, err := run(t, svc, nil, "show", "pi_1")

	require.NoError(t, err)
	assert.Contains(t, out, `"pi_1"`)
	assert.Contains(t, out, `"pending"`)
}
