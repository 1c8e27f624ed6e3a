package contract

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

func TestCreateContract(t *testing.T) {
	service, ctx := setup()

	t.Run("should default status to draft", func(t *testing.T) {
		// when
		created, err := service.Create(ctx, Contract{Title: "Maintenance retainer", ClientId: 1})

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusDraft, created.Status)
		assert.Nil(t, created.SignedAt)
	})

	t.Run("should reject an end date before the start date", func(t *testing.T) {
		// given
		start := testNow
		end := testNow.Add(-24 * time.Hour)

		// when
		_, err := service.Create(ctx, Contract{Title: "Broken", ClientId: 1, StartDate: &start, EndDate: &end})

		// then
		assert.ErrorIs(t, err, ErrContractDataInvalid)
	})
}

func TestSignContract(t *testing.T) {
	t.Run("should not sign with only one signature", func(t *testing.T) {
		service, ctx := setup()

		// given
		created, err := service.Create(ctx, Contract{Title: "Retainer", ClientId: 1, Status: StatusSent})
		assert.NoError(t, err)

		// when
		created.SignedByClient = true
		updated, err := service.Update(ctx, created)

		// then
		assert.NoError(t, err)
		assert.Nil(t, updated.SignedAt)
		assert.Equal(t, StatusSent, updated.Status)
	})

	t.Run("should stamp signedAt and status once both parties sign", func(t *testing.T) {
		service, ctx := setup()

		// given
		created, err := service.Create(ctx, Contract{Title: "Retainer", ClientId: 1, Status: StatusSent})
		assert.NoError(t, err)

		// when
		created.SignedByClient = true
		created.SignedByMe = true
		signed, err := service.Update(ctx, created)

		// then
		assert.NoError(t, err)
		assert.Equal(t, StatusSigned, signed.Status)
		assert.NotNil(t, signed.SignedAt)
		assert.Equal(t, testNow, *signed.SignedAt)
	})

	t.Run("should keep the first signedAt on later updates", func(t *testing.T) {
		service, ctx := setup()

		// given
		created, err := service.Create(ctx, Contract{
			Title:          "Retainer",
			ClientId:       1,
			SignedByClient: true,
			SignedByMe:     true,
		})
		assert.NoError(t, err)
		assert.NotNil(t, created.SignedAt)

		// when
		created.Terms = "net 30"
		updated, err := service.Update(ctx, created)

		// then
		assert.NoError(t, err)
		assert.Equal(t, *created.SignedAt, *updated.SignedAt)
	})
}
