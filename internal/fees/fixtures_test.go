package fees

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/commission-fees/internal/domain"
)

func testConfig() *domain.FeeConfig {
	return &domain.FeeConfig{
		CashIn: domain.CashInRule{
			Percents: decimal.RequireFromString("0.03"),
			Max:      domain.Money{Amount: decimal.NewFromInt(5), Currency: "EUR"},
		},
		CashOut: domain.CashOutRules{
			Natural: domain.NaturalCashOutRule{
				Percents:  decimal.RequireFromString("0.3"),
				WeekLimit: domain.Money{Amount: decimal.NewFromInt(1000), Currency: "EUR"},
			},
			Juridical: domain.JuridicalCashOutRule{
				Percents: decimal.RequireFromString("0.3"),
				Min:      domain.Money{Amount: decimal.RequireFromString("0.5"), Currency: "EUR"},
			},
		},
	}
}

func date(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	if err != nil {
		t.Fatalf("civil.ParseDate(%q): %v", s, err)
	}
	return d
}

func tx(t *testing.T, day string, user domain.UserID, userType domain.UserType, opType domain.OperationType, amount, currency string) domain.Transaction {
	t.Helper()
	return domain.Transaction{
		UserID:   user,
		Date:     date(t, day),
		UserType: userType,
		Type:     opType,
		Operation: domain.Operation{
			Amount:   decimal.RequireFromString(amount),
			Currency: currency,
		},
	}
}

// referenceTransactions is the nine-operation batch whose expected fees are
// in referenceFees.
func referenceTransactions(t *testing.T) []domain.Transaction {
	t.Helper()
	return []domain.Transaction{
		tx(t, "2016-01-05", "1", domain.UserTypeNatural, domain.OperationCashIn, "200.00", "EUR"),
		tx(t, "2016-01-06", "2", domain.UserTypeJuridical, domain.OperationCashOut, "300.00", "EUR"),
		tx(t, "2016-01-06", "1", domain.UserTypeNatural, domain.OperationCashOut, "30000", "EUR"),
		tx(t, "2016-01-07", "1", domain.UserTypeNatural, domain.OperationCashOut, "1000.00", "EUR"),
		tx(t, "2016-01-07", "1", domain.UserTypeNatural, domain.OperationCashOut, "100.00", "EUR"),
		tx(t, "2016-01-10", "1", domain.UserTypeNatural, domain.OperationCashOut, "100.00", "EUR"),
		tx(t, "2016-01-10", "2", domain.UserTypeJuridical, domain.OperationCashIn, "1000000.00", "EUR"),
		tx(t, "2016-01-10", "3", domain.UserTypeNatural, domain.OperationCashOut, "1000.00", "EUR"),
		tx(t, "2016-02-15", "1", domain.UserTypeNatural, domain.OperationCashOut, "300.00", "EUR"),
	}
}

var referenceFees = []string{"0.06", "0.90", "87.00", "3.00", "0.30", "0.30", "5.00", "0.00", "0.00"}
