package domain

import (
	"github.com/shopspring/decimal"
)

// Money is an amount with its currency as returned by the config service.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
}

// CashInRule is the fee rule for deposits: a percentage capped at Max.
type CashInRule struct {
	Percents decimal.Decimal `json:"percents"`
	Max      Money           `json:"max"`
}

// NaturalCashOutRule is the fee rule for withdrawals by individuals.
// WeekLimit is the free allowance per user per ISO week.
type NaturalCashOutRule struct {
	Percents  decimal.Decimal `json:"percents"`
	WeekLimit Money           `json:"week_limit"`
}

// JuridicalCashOutRule is the fee rule for withdrawals by companies:
// a percentage with a floor at Min.
type JuridicalCashOutRule struct {
	Percents decimal.Decimal `json:"percents"`
	Min      Money           `json:"min"`
}

// CashOutRules groups the two cash-out rules.
type CashOutRules struct {
	Natural   NaturalCashOutRule   `json:"natural"`
	Juridical JuridicalCashOutRule `json:"juridical"`
}

// FeeConfig is the complete fee configuration for one run. It is loaded
// once and only read afterwards.
type FeeConfig struct {
	CashIn  CashInRule   `json:"cashin"`
	CashOut CashOutRules `json:"cashout"`
}
