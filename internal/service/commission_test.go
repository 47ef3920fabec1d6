package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"rental-booking-backend/internal/domain"
)

func thirdPartyLine(code string, supplierID int32, pct, amount int64) CommissionLine {
	item := approvedItem(code)
	item.IsThirdParty = true
	item.SupplierID = &supplierID
	item.OwnerCommissionPercent = decimal.NewFromInt(pct)
	return CommissionLine{Item: item, Qty: 1, Amount: decimal.NewFromInt(amount)}
}

func TestComputeCommissions(t *testing.T) {
	t.Run("Percent of line amount per supplier", func(t *testing.T) {
		commissions := ComputeCommissions([]CommissionLine{
			thirdPartyLine("DRS-001", 5, 25, 6000),
		})
		assert.Len(t, commissions, 1)
		assert.True(t, commissions[5].Equal(decimal.NewFromInt(1500)), "got %s", commissions[5])
	})

	t.Run("Lines aggregate per supplier", func(t *testing.T) {
		commissions := ComputeCommissions([]CommissionLine{
			thirdPartyLine("DRS-001", 5, 25, 6000),
			thirdPartyLine("ORN-001", 5, 10, 2000),
			thirdPartyLine("ACC-001", 8, 50, 1000),
		})
		assert.Len(t, commissions, 2)
		assert.True(t, commissions[5].Equal(decimal.NewFromInt(1700)))
		assert.True(t, commissions[8].Equal(decimal.NewFromInt(500)))
	})

	t.Run("Own items earn nothing", func(t *testing.T) {
		line := CommissionLine{Item: approvedItem("DRS-001"), Qty: 1, Amount: decimal.NewFromInt(6000)}
		assert.Empty(t, ComputeCommissions([]CommissionLine{line}))
	})

	t.Run("Missing supplier skipped", func(t *testing.T) {
		line := thirdPartyLine("DRS-001", 5, 25, 6000)
		line.Item.SupplierID = nil
		assert.Empty(t, ComputeCommissions([]CommissionLine{line}))
	})

	t.Run("Zero percent skipped", func(t *testing.T) {
		assert.Empty(t, ComputeCommissions([]CommissionLine{thirdPartyLine("DRS-001", 5, 0, 6000)}))
	})

	t.Run("Zero amount skipped", func(t *testing.T) {
		assert.Empty(t, ComputeCommissions([]CommissionLine{thirdPartyLine("DRS-001", 5, 25, 0)}))
	})

	t.Run("Fractional percent stays exact", func(t *testing.T) {
		line := thirdPartyLine("DRS-001", 5, 0, 1000)
		line.Item.OwnerCommissionPercent = decimal.RequireFromString("12.5")
		commissions := ComputeCommissions([]CommissionLine{line})
		assert.True(t, commissions[5].Equal(decimal.NewFromInt(125)))
	})
}

func TestTotalCommission(t *testing.T) {
	total := TotalCommission(map[int32]decimal.Decimal{
		5: decimal.NewFromInt(1500),
		8: decimal.NewFromInt(500),
	})
	assert.True(t, total.Equal(decimal.NewFromInt(2000)))
	assert.True(t, TotalCommission(nil).IsZero())
}

func TestComputeDefaultDeposit(t *testing.T) {
	fallback := decimal.NewFromInt(5000)

	t.Run("Maximum suggested deposit wins", func(t *testing.T) {
		a := approvedItem("DRS-001")
		a.SuggestedCautionDeposit = decimal.NewFromInt(8000)
		b := approvedItem("ORN-001")
		b.SuggestedCautionDeposit = decimal.NewFromInt(3000)

		deposit := ComputeDefaultDeposit([]CommissionLine{
			{Item: a, Qty: 1, Amount: decimal.NewFromInt(6000)},
			{Item: b, Qty: 1, Amount: decimal.NewFromInt(2000)},
		}, fallback)
		assert.True(t, deposit.Equal(decimal.NewFromInt(8000)))
	})

	t.Run("Fallback when nothing suggested", func(t *testing.T) {
		item := approvedItem("DRS-001")
		item.SuggestedCautionDeposit = decimal.Zero

		deposit := ComputeDefaultDeposit([]CommissionLine{
			{Item: item, Qty: 1, Amount: decimal.NewFromInt(6000)},
		}, fallback)
		assert.True(t, deposit.Equal(fallback))
	})

	t.Run("Non-rental lines ignored", func(t *testing.T) {
		item := &domain.RentalItem{Code: "SVC-001", SuggestedCautionDeposit: decimal.NewFromInt(9000)}

		deposit := ComputeDefaultDeposit([]CommissionLine{
			{Item: item, Qty: 1, Amount: decimal.NewFromInt(500)},
		}, fallback)
		assert.True(t, deposit.Equal(fallback))
	})
}
