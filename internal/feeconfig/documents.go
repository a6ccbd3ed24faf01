package feeconfig

import (
	"github.com/shopspring/decimal"

	"github.com/dvloznov/commission-fees/internal/domain"
)

// Wire shapes of the three configuration documents. Pointers tell a
// missing field apart from zero.

type moneyDoc struct {
	Amount   *decimal.Decimal `json:"amount" validate:"required,nonnegative_decimal"`
	Currency string           `json:"currency"`
}

func (m *moneyDoc) toDomain() domain.Money {
	return domain.Money{Amount: *m.Amount, Currency: m.Currency}
}

type cashInDoc struct {
	Percents *decimal.Decimal `json:"percents" validate:"required,nonnegative_decimal"`
	Max      *moneyDoc        `json:"max" validate:"required"`
}

type naturalDoc struct {
	Percents  *decimal.Decimal `json:"percents" validate:"required,nonnegative_decimal"`
	WeekLimit *moneyDoc        `json:"week_limit" validate:"required"`
}

type juridicalDoc struct {
	Percents *decimal.Decimal `json:"percents" validate:"required,nonnegative_decimal"`
	Min      *moneyDoc        `json:"min" validate:"required"`
}

func assemble(cashIn *cashInDoc, natural *naturalDoc, juridical *juridicalDoc) *domain.FeeConfig {
	return &domain.FeeConfig{
		CashIn: domain.CashInRule{
			Percents: *cashIn.Percents,
			Max:      cashIn.Max.toDomain(),
		},
		CashOut: domain.CashOutRules{
			Natural: domain.NaturalCashOutRule{
				Percents:  *natural.Percents,
				WeekLimit: natural.WeekLimit.toDomain(),
			},
			Juridical: domain.JuridicalCashOutRule{
				Percents: *juridical.Percents,
				Min:      juridical.Min.toDomain(),
			},
		},
	}
}
