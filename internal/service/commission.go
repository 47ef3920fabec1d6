package service

import (
	"github.com/shopspring/decimal"

	"rental-booking-backend/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// CommissionLine pairs a booking line amount with its resolved rental item.
type CommissionLine struct {
	Item   *domain.RentalItem
	Qty    int32
	Amount decimal.Decimal
}

// ComputeCommissions aggregates owner commission per supplier across a
// booking's lines: amount * percent / 100 for every third-party line with
// a supplier, a positive commission percent, and a positive amount.
// Aggregates that end up non-positive are dropped. Amounts stay unrounded;
// two-decimal rounding happens once, at journal posting, so accumulation
// does not compound rounding error.
func ComputeCommissions(lines []CommissionLine) map[int32]decimal.Decimal {
	commissions := make(map[int32]decimal.Decimal)
	for _, line := range lines {
		it := line.Item
		if it == nil || !it.IsRentalItem || !it.IsThirdParty || it.SupplierID == nil {
			continue
		}
		if !it.OwnerCommissionPercent.IsPositive() || !line.Amount.IsPositive() {
			continue
		}
		amount := line.Amount.Mul(it.OwnerCommissionPercent).Div(oneHundred)
		commissions[*it.SupplierID] = commissions[*it.SupplierID].Add(amount)
	}
	for supplier, amount := range commissions {
		if !amount.IsPositive() {
			delete(commissions, supplier)
		}
	}
	return commissions
}

// TotalCommission sums a per-supplier commission aggregate.
func TotalCommission(commissions map[int32]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range commissions {
		total = total.Add(amount)
	}
	return total
}

// ComputeDefaultDeposit suggests a caution deposit for a booking: the
// maximum per-unit suggested deposit across its rental items, or fallback
// when no item specifies one. Callers must not overwrite an explicitly
// entered deposit with this default.
func ComputeDefaultDeposit(lines []CommissionLine, fallback decimal.Decimal) decimal.Decimal {
	deposit := decimal.Zero
	for _, line := range lines {
		if line.Item == nil || !line.Item.IsRentalItem {
			continue
		}
		if line.Item.SuggestedCautionDeposit.GreaterThan(deposit) {
			deposit = line.Item.SuggestedCautionDeposit
		}
	}
	if deposit.IsZero() {
		return fallback
	}
	return deposit
}
