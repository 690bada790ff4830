package calc

import (
	"fmt"

	"biowearth/internal/model"

	"github.com/shopspring/decimal"
)

var milestoneTolerance = decimal.NewFromFloat(0.1)

// MilestoneError rejects an order whose payment milestones do not add up to 100%.
type MilestoneError struct {
	Sum decimal.Decimal
}

func (e *MilestoneError) Error() string {
	return fmt.Sprintf("Payment milestones must sum to 100%%. Current sum: %s%%", e.Sum.String())
}

// MilestoneSum adds every milestone percent, non-numeric ones counting as 0.
func MilestoneSum(terms []model.PaymentTerm) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range terms {
		sum = sum.Add(t.Percent.Decimal())
	}
	return sum
}

// ValidateMilestones accepts the terms iff |sum - 100| <= 0.1.
// An order without terms sums to 0 and is rejected.
func ValidateMilestones(terms []model.PaymentTerm) error {
	sum := MilestoneSum(terms)
	if sum.Sub(hundred).Abs().GreaterThan(milestoneTolerance) {
		return &MilestoneError{Sum: sum}
	}
	return nil
}
