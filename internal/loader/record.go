package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/commission-fees/internal/domain"
	"github.com/dvloznov/commission-fees/internal/validator"
)

// record is the wire shape of one transaction. Pointers tell a missing
// field apart from a zero value.
type record struct {
	UserID    domain.UserID    `json:"user_id" validate:"required"`
	Date      string           `json:"date" validate:"required,datetime=2006-01-02"`
	UserType  string           `json:"user_type" validate:"required,oneof=natural juridical"`
	Type      string           `json:"type" validate:"required"`
	Operation *operationRecord `json:"operation" validate:"required"`
}

type operationRecord struct {
	Amount   *decimal.Decimal `json:"amount" validate:"required,nonnegative_decimal"`
	Currency string           `json:"currency" validate:"required,iso4217"`
}

// Decode parses a JSON array of transactions. source only labels errors.
// Syntax errors yield *domain.ParseError; well-formed records with wrong
// or missing fields yield *domain.ValidationError.
func Decode(source string, data []byte) ([]domain.Transaction, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &domain.ParseError{Source: source, Err: err}
	}

	result := make([]domain.Transaction, 0, len(raw))
	for i, item := range raw {
		tx, err := decodeRecord(i, item)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}

	return result, nil
}

func decodeRecord(index int, data json.RawMessage) (domain.Transaction, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return domain.Transaction{}, &domain.ValidationError{Index: index, Field: typeErr.Field, Rule: "type"}
		}
		// amount and user_id decoders report their own errors
		return domain.Transaction{}, &domain.ValidationError{Index: index, Field: fieldFromDecodeError(err), Rule: "decode"}
	}

	failure, err := validator.Struct(rec)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("validate transaction %d: %w", index, err)
	}
	if failure != nil {
		return domain.Transaction{}, &domain.ValidationError{Index: index, Field: failure.Field, Rule: failure.Rule}
	}

	date, err := civil.ParseDate(rec.Date)
	if err != nil {
		return domain.Transaction{}, &domain.ValidationError{Index: index, Field: "date", Rule: "datetime"}
	}

	return domain.Transaction{
		UserID:   rec.UserID,
		Date:     date,
		UserType: domain.UserType(rec.UserType),
		Type:     domain.OperationType(rec.Type),
		Operation: domain.Operation{
			Amount:   *rec.Operation.Amount,
			Currency: rec.Operation.Currency,
		},
	}, nil
}

func fieldFromDecodeError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "user_id"):
		return "user_id"
	case strings.Contains(msg, "decimal"):
		return "operation.amount"
	default:
		return ""
	}
}
