package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// CommissionCurrency is the only currency commission is charged in.
// Operations in any other currency are free.
const CommissionCurrency = "EUR"

// UserType identifies the kind of account holder.
type UserType string

const (
	UserTypeNatural   UserType = "natural"
	UserTypeJuridical UserType = "juridical"
)

// OperationType identifies the direction of an operation.
type OperationType string

const (
	OperationCashIn  OperationType = "cash_in"
	OperationCashOut OperationType = "cash_out"
)

// UserID is the account holder identifier. Input files carry it either as
// a JSON number or a JSON string; both decode to the same value.
type UserID string

// UnmarshalJSON accepts `1`, `"1"` and `"abc"`.
func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("user_id: %w", err)
		}
		*id = UserID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user_id: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

// Operation is the money part of a transaction.
type Operation struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// Transaction is one input record. It is never modified after loading.
type Transaction struct {
	UserID   UserID        `json:"user_id"`
	Date     civil.Date    `json:"date"`
	UserType UserType      `json:"user_type"`
	Type     OperationType `json:"type"`

	Operation Operation `json:"operation"`
}

// IsNaturalCashOut reports whether the transaction takes part in the
// weekly free allowance.
func (t Transaction) IsNaturalCashOut() bool {
	return t.UserType == UserTypeNatural && t.Type == OperationCashOut
}
