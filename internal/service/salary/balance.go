package salary

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/shopspring/decimal"
)

// SlipBalanceResolver reads the carry-forward from the previous month's stored slip.
type SlipBalanceResolver struct {
	slipRepo salary.SlipRepository
}

func NewPriorBalanceResolver(slipRepo salary.SlipRepository) salary.PriorBalanceResolver {
	return &SlipBalanceResolver{slipRepo: slipRepo}
}

func (r *SlipBalanceResolver) PriorBalance(ctx context.Context, tenantID, workerID string, month, year int) (decimal.Decimal, error) {
	prevMonth, prevYear := salary.PreviousPeriod(month, year)

	prev, err := r.slipRepo.GetByPeriod(ctx, tenantID, workerID, prevMonth, prevYear)
	if errors.Is(err, salary.ErrSlipNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load previous slip: %w", err)
	}
	return salary.CarryForward(prev.ClosingBalance), nil
}
