package sales

import (
	"github.com/shopspring/decimal"

	"github.com/tmekonnen/stockroom-backend/pkg/money"
)

type saleTotals struct {
	SubTotal     decimal.Decimal
	TaxAmount    decimal.Decimal
	GrandTotal   decimal.Decimal
	AmountChange decimal.Decimal
}

// computeTotals derives every monetary field of a sale from its line totals.
// It is a pure function called once before persistence; totals are never
// recomputed after the sale commits.
func computeTotals(lineTotals []decimal.Decimal, taxPercentage, amountPaid decimal.Decimal) saleTotals {
	subTotal := decimal.Zero
	for _, total := range lineTotals {
		subTotal = subTotal.Add(total)
	}
	subTotal = money.Round2(subTotal)

	taxAmount := money.TaxAmount(subTotal, taxPercentage)
	grandTotal := money.Round2(subTotal.Add(taxAmount))

	return saleTotals{
		SubTotal:     subTotal,
		TaxAmount:    taxAmount,
		GrandTotal:   grandTotal,
		AmountChange: money.ChangeDue(amountPaid, grandTotal),
	}
}
