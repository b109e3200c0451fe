package service

import (
	"context"
	"testing"
	"time"

	"github.com/hugohenrick/loja-colchoes/internal/domain/customer"
	"github.com/hugohenrick/loja-colchoes/internal/domain/payment"
	"github.com/hugohenrick/loja-colchoes/pkg/apperror"
	"github.com/hugohenrick/loja-colchoes/pkg/logger"
	"github.com/hugohenrick/loja-colchoes/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPaymentFixture cria um pedido com um plano de 3 parcelas de
// 100.00 a partir de 10/01/2024 e retorna o id do plano
func newPaymentFixture(t *testing.T) (*PaymentService, *memUnitOfWork, *metrics.Metrics, int64) {
	t.Helper()
	uow := newMemUnitOfWork()
	uow.state.customers[1] = customer.StatusActive
	uow.state.products[5] = true

	orders := NewOrderService(uow, logger.NewNop(), nil)
	o, err := orders.CreateOrder(context.Background(), 1, []LineItemInput{{
		ProductID: 5,
		Quantity:  1,
		UnitPrice: dec("300"),
		PaymentTerms: &payment.Terms{
			TotalAmount:      dec("300"),
			StartDate:        time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
			InstallmentCount: 3,
		},
	}})
	require.NoError(t, err)

	m := metrics.New("test")
	svc := NewPaymentService(uow, logger.NewNop(), m)
	svc.now = func() time.Time { return time.Date(2024, time.March, 1, 15, 0, 0, 0, time.UTC) }
	return svc, uow, m, o.Items[0].PaymentPlan.ID
}

func statuses(t *testing.T, uow *memUnitOfWork) []payment.Status {
	t.Helper()
	var out []payment.Status
	for _, inst := range uow.state.installments() {
		out = append(out, inst.Status)
	}
	return out
}

func TestUpdateInstallmentStatus_ChangesOnlyTarget(t *testing.T) {
	svc, uow, m, planID := newPaymentFixture(t)

	inst, err := svc.UpdateInstallmentStatus(context.Background(), planID, 2, "Paid")
	require.NoError(t, err)

	assert.Equal(t, payment.StatusPaid, inst.Status)
	assert.Equal(t, []payment.Status{payment.StatusPending, payment.StatusPaid, payment.StatusPending}, statuses(t, uow))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StatusTransitions.WithLabelValues("pending", "paid")))
}

func TestUpdateInstallmentStatus_AnyTransitionIsAllowed(t *testing.T) {
	svc, uow, _, planID := newPaymentFixture(t)
	ctx := context.Background()

	for _, status := range []string{"paid", "pending", "cancelled", "paid", "refunded", "pendente"} {
		_, err := svc.UpdateInstallmentStatus(ctx, planID, 1, status)
		require.NoError(t, err, status)
	}
	assert.Equal(t, payment.StatusPending, statuses(t, uow)[0])
}

func TestUpdateInstallmentStatus_UnknownKeyLeavesEverythingUnchanged(t *testing.T) {
	svc, uow, _, planID := newPaymentFixture(t)
	ctx := context.Background()
	before := statuses(t, uow)

	_, err := svc.UpdateInstallmentStatus(ctx, planID+10, 2, "paid")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.UpdateInstallmentStatus(ctx, planID, 4, "paid")
	assert.ErrorIs(t, err, payment.ErrInstallmentNotFound)

	assert.Equal(t, before, statuses(t, uow))
}

func TestUpdateInstallmentStatus_InvalidArguments(t *testing.T) {
	svc, uow, _, planID := newPaymentFixture(t)
	ctx := context.Background()

	_, err := svc.UpdateInstallmentStatus(ctx, 0, 1, "paid")
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = svc.UpdateInstallmentStatus(ctx, planID, 0, "paid")
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	_, err = svc.UpdateInstallmentStatus(ctx, planID, 1, "quitada")
	assert.ErrorIs(t, err, payment.ErrInvalidStatus)

	assert.NotContains(t, statuses(t, uow), payment.Status("quitada"))
}

func TestGetPlan_DerivedAggregates(t *testing.T) {
	svc, _, _, planID := newPaymentFixture(t)
	ctx := context.Background()

	_, err := svc.UpdateInstallmentStatus(ctx, planID, 2, "paid")
	require.NoError(t, err)
	_, err = svc.UpdateInstallmentStatus(ctx, planID, 3, "cancelled")
	require.NoError(t, err)

	plan, err := svc.GetPlan(ctx, planID)
	require.NoError(t, err)
	assert.Equal(t, "100", plan.AmountPending().String())
	assert.Equal(t, "100", plan.AmountPaid().String())
	assert.Equal(t, "100", plan.AmountCancelled().String())

	_, err = svc.GetPlan(ctx, planID+1)
	assert.ErrorIs(t, err, payment.ErrPlanNotFound)
}

func TestListOverdue_DefaultsToToday(t *testing.T) {
	svc, _, _, planID := newPaymentFixture(t)
	ctx := context.Background()

	// vencimentos: 10/01, 10/02 e 10/03; hoje é 01/03
	overdue, err := svc.ListOverdue(ctx, time.Time{}, 0, 0)
	require.NoError(t, err)
	require.Len(t, overdue, 2)
	assert.Equal(t, 1, overdue[0].SequenceNumber)

	_, err = svc.UpdateInstallmentStatus(ctx, planID, 1, "paid")
	require.NoError(t, err)

	overdue, err = svc.ListOverdue(ctx, time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), 10, 0)
	require.NoError(t, err)
	require.Len(t, overdue, 2)
	assert.Equal(t, 2, overdue[0].SequenceNumber)
	assert.Equal(t, 3, overdue[1].SequenceNumber)
}
