package fees

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/commission-fees/internal/domain"
)

// FeePlaces is the number of decimal places every fee is rounded to.
const FeePlaces = 2

// weeklyAllowanceBase is subtracted from an operation that crosses the
// weekly limit while the week's earlier total is still below it. It is
// fixed at 1000 and does not follow the configured week_limit.
var weeklyAllowanceBase = decimal.NewFromInt(1000)

var hundred = decimal.NewFromInt(100)

// Calculator computes commission fees for single transactions against a
// shared configuration and weekly groups. It holds no mutable state.
type Calculator struct {
	cfg    *domain.FeeConfig
	groups *WeeklyGroups
	log    zerolog.Logger
}

// NewCalculator creates a Calculator. groups must be built from the same
// transaction list the calculator is used on.
func NewCalculator(cfg *domain.FeeConfig, groups *WeeklyGroups, log zerolog.Logger) *Calculator {
	return &Calculator{
		cfg:    cfg,
		groups: groups,
		log:    log,
	}
}

// ComputeFee returns the fee for tx formatted with exactly two decimals.
func ComputeFee(tx domain.Transaction, cfg *domain.FeeConfig, groups *WeeklyGroups) (string, error) {
	return NewCalculator(cfg, groups, zerolog.Nop()).ComputeFee(tx)
}

// ComputeFee returns the fee for tx formatted with exactly two decimals.
func (c *Calculator) ComputeFee(tx domain.Transaction) (string, error) {
	fee, err := c.Fee(tx)
	if err != nil {
		return "", err
	}
	return fee.StringFixed(FeePlaces), nil
}

// Fee returns the unrounded fee for tx.
func (c *Calculator) Fee(tx domain.Transaction) (decimal.Decimal, error) {
	if tx.Operation.Currency != domain.CommissionCurrency {
		return decimal.Zero, nil
	}

	if c.cfg == nil {
		return decimal.Zero, &domain.ConfigError{Section: "fee config", Rule: "missing"}
	}

	switch tx.Type {
	case domain.OperationCashIn:
		return c.cashIn(tx.Operation.Amount), nil
	case domain.OperationCashOut:
		if tx.UserType == domain.UserTypeJuridical {
			return c.juridicalCashOut(tx.Operation.Amount), nil
		}
		return c.naturalCashOut(tx)
	default:
		c.log.Warn().
			Str("user_id", string(tx.UserID)).
			Str("type", string(tx.Type)).
			Msg("Unknown operation type, no commission applied")
		return decimal.Zero, nil
	}
}

func (c *Calculator) cashIn(amount decimal.Decimal) decimal.Decimal {
	rule := c.cfg.CashIn
	return decimal.Min(percentOf(amount, rule.Percents), rule.Max.Amount)
}

func (c *Calculator) juridicalCashOut(amount decimal.Decimal) decimal.Decimal {
	rule := c.cfg.CashOut.Juridical
	return decimal.Max(percentOf(amount, rule.Percents), rule.Min.Amount)
}

func (c *Calculator) naturalCashOut(tx domain.Transaction) (decimal.Decimal, error) {
	rule := c.cfg.CashOut.Natural
	bucket := c.groups.Bucket(tx.UserID, tx.Date)

	// Position is matched by date only; with several operations on the
	// same day all of them see the total before the first one.
	pos := -1
	for i := range bucket {
		if bucket[i].Date == tx.Date {
			pos = i
			break
		}
	}
	if pos < 0 {
		return decimal.Zero, &domain.ValidationError{Index: -1, Field: "date", Rule: "weekly_group"}
	}

	totalToDate := decimal.Zero
	for _, prev := range bucket[:pos] {
		totalToDate = totalToDate.Add(prev.Operation.Amount)
	}

	amount := tx.Operation.Amount
	if totalToDate.Add(amount).LessThan(rule.WeekLimit.Amount) {
		return decimal.Zero, nil
	}

	taxable := amount
	if totalToDate.LessThan(weeklyAllowanceBase) {
		taxable = amount.Sub(weeklyAllowanceBase)
	}

	fee := percentOf(taxable, rule.Percents)
	if fee.IsNegative() {
		return decimal.Zero, nil
	}
	return fee, nil
}

func percentOf(amount, percents decimal.Decimal) decimal.Decimal {
	return amount.Mul(percents).Div(hundred)
}
