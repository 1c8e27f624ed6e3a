package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/gestio-app/gestio/internal/utils"
	"github.com/gestio-app/gestio/pkg/user"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func setup() (*ServiceImpl, context.Context) {
	clock := utils.NewMockClock()
	clock.SetNow(testNow)
	service := NewService(NewStubRepository(), clock)
	ctx := user.WithUser(context.Background(), user.User{Id: 1})
	return service, ctx
}

func draft(number string) Invoice {
	return Invoice{
		InvoiceNumber: number,
		ClientId:      1,
		IssueDate:     testNow,
		DueDate:       testNow.Add(14 * 24 * time.Hour),
		Subtotal:      1000,
		Total:         1190,
	}
}

func TestCreateInvoice(t *testing.T) {
	service, ctx := setup()

	t.Run("should default status to draft", func(t *testing.T) {
		// when
		created, err := service.Create(ctx, draft("INV-001"))

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusDraft, created.Status)
		assert.Nil(t, created.PaidAt)
	})

	t.Run("should reject a due date before the issue date", func(t *testing.T) {
		// given
		invalid := draft("INV-002")
		invalid.DueDate = invalid.IssueDate.Add(-24 * time.Hour)

		// when
		_, err := service.Create(ctx, invalid)

		// then
		assert.ErrorIs(t, err, ErrInvoiceDataInvalid)
	})

	t.Run("should keep line items", func(t *testing.T) {
		// given
		withItems := draft("INV-003")
		withItems.Items = []Item{
			{Description: "Development", Quantity: 10, UnitPrice: 100, Amount: 1000},
		}

		// when
		created, err := service.Create(ctx, withItems)

		// then
		assert.NoError(t, err)
		assert.Len(t, created.Items, 1)
		assert.Equal(t, created.Id, created.Items[0].InvoiceId)
	})
}

func TestMarkInvoicePaid(t *testing.T) {
	t.Run("should stamp paidAt and default paidAmount to the total", func(t *testing.T) {
		service, ctx := setup()

		// given
		created, err := service.Create(ctx, draft("INV-001"))
		assert.NoError(t, err)

		// when
		created.Status = StatusPaid
		paid, err := service.Update(ctx, created)

		// then
		assert.NoError(t, err)
		assert.NotNil(t, paid.PaidAt)
		assert.Equal(t, testNow, *paid.PaidAt)
		assert.NotNil(t, paid.PaidAmount)
		assert.Equal(t, 1190.0, *paid.PaidAmount)
	})

	t.Run("should not overwrite payment fields on later updates", func(t *testing.T) {
		service, ctx := setup()

		// given
		created, err := service.Create(ctx, draft("INV-001"))
		assert.NoError(t, err)
		created.Status = StatusPaid
		paid, err := service.Update(ctx, created)
		assert.NoError(t, err)

		// when
		paid.Notes = "settled by bank transfer"
		again, err := service.Update(ctx, paid)

		// then
		assert.NoError(t, err)
		assert.Equal(t, *paid.PaidAt, *again.PaidAt)
		assert.Equal(t, *paid.PaidAmount, *again.PaidAmount)
	})
}

func TestListInvoices(t *testing.T) {
	service, ctx := setup()

	// given
	first := draft("INV-001")
	first.Status = StatusSent
	_, err := service.Create(ctx, first)
	assert.NoError(t, err)
	second := draft("INV-002")
	second.Status = StatusSent
	second.ClientId = 2
	_, err = service.Create(ctx, second)
	assert.NoError(t, err)
	third := draft("INV-003")
	third.Status = StatusPaid
	_, err = service.Create(ctx, third)
	assert.NoError(t, err)

	t.Run("should filter by status", func(t *testing.T) {
		// when
		sent, err := service.GetByStatus(ctx, StatusSent)

		// then
		assert.NoError(t, err)
		assert.Len(t, sent, 2)
	})

	t.Run("should reject an unknown status filter", func(t *testing.T) {
		// when
		_, err := service.GetByStatus(ctx, "unpaid")

		// then
		assert.ErrorIs(t, err, ErrInvoiceDataInvalid)
	})

	t.Run("should filter by client", func(t *testing.T) {
		// when
		forClient, err := service.GetByClient(ctx, 2)

		// then
		assert.NoError(t, err)
		assert.Len(t, forClient, 1)
		assert.Equal(t, "INV-002", forClient[0].InvoiceNumber)
	})

	t.Run("should count pending as sent invoices", func(t *testing.T) {
		// when
		pending, err := service.CountPending(ctx)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 2, pending)
	})
}
