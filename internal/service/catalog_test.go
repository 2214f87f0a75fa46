package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"admissions/internal/apperr"
	"admissions/internal/model"
	repoMocks "admissions/internal/repository/mocks"
)

func TestCatalogService_FeeStructure(t *testing.T) {
	repo := new(repoMocks.MockCatalogRepository)
	repo.On("FeeItems", mock.Anything, "trade-1").Return([]model.FeeItem{
		{ID: "fee-1", FeeType: "tuition", Amount: model.Rupees(2000), IsActive: true},
		{ID: "fee-2", FeeType: "legacy", Amount: model.Rupees(9999), IsActive: false},
		{ID: "fee-3", FeeType: "exam", Amount: model.Rupees(500), IsActive: true},
	}, nil)

	fs, err := NewCatalogService(repo).FeeStructure(context.Background(), "trade-1")

	require.NoError(t, err)
	assert.Equal(t, model.Rupees(2500), fs.TotalAmount)
	require.Len(t, fs.Items, 2)
	assert.Equal(t, "fee-3", fs.Items[1].ID)
	repo.AssertExpectations(t)
}

func TestCatalogService_RequiresParent(t *testing.T) {
	svc := NewCatalogService(new(repoMocks.MockCatalogRepository))
	ctx := context.Background()

	_, err := svc.States(ctx, "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.Cities(ctx, " ")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.Trades(ctx, "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.FeeStructure(ctx, "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
