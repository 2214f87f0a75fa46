package service

import (
	"context"

	"admissions/internal/billing"
	"admissions/internal/model"
	"admissions/internal/repository"
)

// FeeCalculator derives the payable total from a trade's fee schedule.
type FeeCalculator struct {
	catalog repository.CatalogRepository
}

func NewFeeCalculator(catalog repository.CatalogRepository) *FeeCalculator {
	return &FeeCalculator{catalog: catalog}
}

// Total returns the sum of active fee items for tradeID, or zero when no trade is set.
func (f *FeeCalculator) Total(ctx context.Context, tradeID *string) (model.Money, error) {
	if tradeID == nil || *tradeID == "" {
		return 0, nil
	}
	items, err := f.catalog.FeeItems(ctx, *tradeID)
	if err != nil {
		return 0, err
	}
	return billing.FeeTotal(items), nil
}

// ActiveItems returns the active fee lines of tradeID.
func (f *FeeCalculator) ActiveItems(ctx context.Context, tradeID string) ([]model.FeeItem, error) {
	items, err := f.catalog.FeeItems(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	active := make([]model.FeeItem, 0, len(items))
	for _, it := range items {
		if it.IsActive {
			active = append(active, it)
		}
	}
	return active, nil
}
