package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvloznov/commission-fees/internal/domain"
	"github.com/dvloznov/commission-fees/internal/logger"
)

// MockStorageService is a mock implementation of gcs.StorageService for testing.
type MockStorageService struct {
	UploadFileFunc   func(ctx context.Context, bucketName, objectName, filePath string) error
	FetchFromGCSFunc func(ctx context.Context, gcsURI string) ([]byte, error)
}

func (m *MockStorageService) UploadFile(ctx context.Context, bucketName, objectName, filePath string) error {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, bucketName, objectName, filePath)
	}
	return nil
}

func (m *MockStorageService) FetchFromGCS(ctx context.Context, gcsURI string) ([]byte, error) {
	if m.FetchFromGCSFunc != nil {
		return m.FetchFromGCSFunc(ctx, gcsURI)
	}
	return []byte("[]"), nil
}

const sampleFile = `[
	{ "date": "2016-01-05", "user_id": 1, "user_type": "natural", "type": "cash_in", "operation": { "amount": 200.00, "currency": "EUR" } },
	{ "date": "2016-01-06", "user_id": "2", "user_type": "juridical", "type": "cash_out", "operation": { "amount": "300.00", "currency": "EUR" } }
]`

func testContext() context.Context {
	return logger.WithContext(context.Background(), logger.NewWithWriter(&bytes.Buffer{}))
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_LocalFile(t *testing.T) {
	txs, err := New(nil).Load(testContext(), writeFile(t, sampleFile))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, domain.UserID("1"), txs[0].UserID)
	assert.Equal(t, civil.Date{Year: 2016, Month: 1, Day: 5}, txs[0].Date)
	assert.Equal(t, domain.UserTypeNatural, txs[0].UserType)
	assert.Equal(t, domain.OperationCashIn, txs[0].Type)
	assert.Equal(t, "200", txs[0].Operation.Amount.String())
	assert.Equal(t, "EUR", txs[0].Operation.Currency)

	assert.Equal(t, domain.UserID("2"), txs[1].UserID)
	assert.Equal(t, domain.UserTypeJuridical, txs[1].UserType)
	assert.Equal(t, "300", txs[1].Operation.Amount.String())
}

func TestLoad_NoSource(t *testing.T) {
	_, err := New(nil).Load(testContext(), "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := New(nil).Load(testContext(), filepath.Join(t.TempDir(), "non_existent_file.json"))
	assert.True(t, errors.Is(err, domain.ErrFileNotFound), "got %v", err)
}

func TestLoad_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "plain text", content: "test file"},
		{name: "empty file", content: ""},
		{name: "truncated array", content: `[{"date": "2016-01-05"`},
		{name: "object instead of array", content: `{"date": "2016-01-05"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(nil).Load(testContext(), writeFile(t, tt.content))

			var parseErr *domain.ParseError
			require.True(t, errors.As(err, &parseErr), "expected ParseError, got %v", err)
		})
	}
}

func TestLoad_EmptyArray(t *testing.T) {
	txs, err := New(nil).Load(testContext(), writeFile(t, "[]"))
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestLoad_FromStorage(t *testing.T) {
	var requested string
	storage := &MockStorageService{
		FetchFromGCSFunc: func(ctx context.Context, gcsURI string) ([]byte, error) {
			requested = gcsURI
			return []byte(sampleFile), nil
		},
	}

	txs, err := New(storage).Load(testContext(), "gs://fees/input.json")
	require.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Equal(t, "gs://fees/input.json", requested)
}

func TestLoad_FromStorageErrors(t *testing.T) {
	storage := &MockStorageService{
		FetchFromGCSFunc: func(ctx context.Context, gcsURI string) ([]byte, error) {
			return nil, domain.ErrFileNotFound
		},
	}

	_, err := New(storage).Load(testContext(), "gs://fees/absent.json")
	assert.True(t, errors.Is(err, domain.ErrFileNotFound))

	_, err = New(nil).Load(testContext(), "gs://fees/input.json")
	assert.Error(t, err)
}

func TestDecode_Validation(t *testing.T) {
	valid := map[string]interface{}{
		"date":      "2016-01-05",
		"user_id":   1,
		"user_type": "natural",
		"type":      "cash_out",
		"operation": map[string]interface{}{"amount": 10, "currency": "EUR"},
	}

	tests := []struct {
		name      string
		mutate    func(m map[string]interface{})
		wantField string
		wantRule  string
	}{
		{
			name:      "missing user_id",
			mutate:    func(m map[string]interface{}) { delete(m, "user_id") },
			wantField: "user_id",
			wantRule:  "required",
		},
		{
			name:      "bad date",
			mutate:    func(m map[string]interface{}) { m["date"] = "05/01/2016" },
			wantField: "date",
			wantRule:  "datetime",
		},
		{
			name:      "unknown user type",
			mutate:    func(m map[string]interface{}) { m["user_type"] = "robot" },
			wantField: "user_type",
			wantRule:  "oneof",
		},
		{
			name:      "missing type",
			mutate:    func(m map[string]interface{}) { delete(m, "type") },
			wantField: "type",
			wantRule:  "required",
		},
		{
			name:      "missing operation",
			mutate:    func(m map[string]interface{}) { delete(m, "operation") },
			wantField: "operation",
			wantRule:  "required",
		},
		{
			name: "missing amount",
			mutate: func(m map[string]interface{}) {
				m["operation"] = map[string]interface{}{"currency": "EUR"}
			},
			wantField: "operation.amount",
			wantRule:  "required",
		},
		{
			name: "negative amount",
			mutate: func(m map[string]interface{}) {
				m["operation"] = map[string]interface{}{"amount": -1, "currency": "EUR"}
			},
			wantField: "operation.amount",
			wantRule:  "nonnegative_decimal",
		},
		{
			name: "non numeric amount",
			mutate: func(m map[string]interface{}) {
				m["operation"] = map[string]interface{}{"amount": "lots", "currency": "EUR"}
			},
			wantField: "operation.amount",
			wantRule:  "decode",
		},
		{
			name: "unknown currency",
			mutate: func(m map[string]interface{}) {
				m["operation"] = map[string]interface{}{"amount": 1, "currency": "XYZ"}
			},
			wantField: "operation.currency",
			wantRule:  "iso4217",
		},
		{
			name:      "user type of wrong JSON type",
			mutate:    func(m map[string]interface{}) { m["user_type"] = 5 },
			wantField: "user_type",
			wantRule:  "type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := make(map[string]interface{}, len(valid))
			for k, v := range valid {
				rec[k] = v
			}
			tt.mutate(rec)

			first, err := json.Marshal(valid)
			require.NoError(t, err)
			second, err := json.Marshal(rec)
			require.NoError(t, err)

			_, err = Decode("test", []byte("["+string(first)+","+string(second)+"]"))

			var valErr *domain.ValidationError
			require.True(t, errors.As(err, &valErr), "expected ValidationError, got %v", err)
			assert.Equal(t, 1, valErr.Index)
			assert.Equal(t, tt.wantField, valErr.Field)
			assert.Equal(t, tt.wantRule, valErr.Rule)
		})
	}
}

func TestDecode_UnknownOperationTypeIsAccepted(t *testing.T) {
	txs, err := Decode("test", []byte(`[{"date":"2016-01-05","user_id":1,"user_type":"natural","type":"transfer","operation":{"amount":1,"currency":"EUR"}}]`))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, domain.OperationType("transfer"), txs[0].Type)
}
