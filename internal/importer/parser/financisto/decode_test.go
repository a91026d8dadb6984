package financisto_test

import (
	"strconv"
	"testing"

	"github.com/envelope-zero/financisto2bluecoins/internal/importer/parser/financisto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transactionFields() map[string]string {
	return map[string]string{
		"_id":                  "10",
		"parent_id":            "0",
		"from_account_id":      "1",
		"to_account_id":        "0",
		"category_id":          "4",
		"project_id":           "0",
		"location_id":          "0",
		"payee_id":             "0",
		"from_amount":          "-1250",
		"to_amount":            "0",
		"original_currency_id": "1",
		"original_from_amount": "0",
		"datetime":             "1580000000000",
		"note":                 "Lunch",
		"latitude":             "25.03",
		"longitude":            "121.56",
		"accuracy":             "0.0",
		"is_ccard_payment":     "0",
		"is_template":          "0",
		"last_recurrence":      "0",
		"updated_on":           "1580000000000",
	}
}

func TestDecodeSample(t *testing.T) {
	backup, err := financisto.Parse(testFile(t, "sample.backup"))
	require.Nil(t, err)

	data, err := financisto.Decode(backup.Records)
	require.Nil(t, err)

	assert.Len(t, data.Currencies, 2)
	assert.Len(t, data.Accounts, 3)
	assert.Len(t, data.Categories, 6)
	assert.Len(t, data.Transactions, 10, "locations must be skipped")

	assert.Equal(t, "TWD", data.Currencies[1].Name)
	assert.True(t, data.Currencies[1].IsDefault)
	assert.Equal(t, "BANK", data.Accounts[0].Type)
	assert.Equal(t, int64(494750), data.Accounts[0].TotalAmount)
	assert.Nil(t, data.Accounts[0].Note)
	assert.Equal(t, "收入", data.Categories[0].Title)
	assert.Equal(t, 104, data.Transactions[5].ParentID)
	assert.Equal(t, 1, data.Transactions[8].IsTemplate)
}

func TestDecodeTransaction(t *testing.T) {
	transaction, err := financisto.DecodeTransaction(transactionFields())
	require.Nil(t, err)

	assert.Equal(t, 10, transaction.ID)
	assert.Equal(t, int64(-1250), transaction.FromAmount)
	assert.Equal(t, int64(1580000000000), transaction.DateTime)
	assert.Equal(t, 25.03, transaction.Latitude)
	require.NotNil(t, transaction.Note)
	assert.Equal(t, "Lunch", *transaction.Note)
	assert.Nil(t, transaction.Status)
	assert.False(t, transaction.IsTransfer())
}

func TestDecodeIdempotent(t *testing.T) {
	fields := transactionFields()

	first, err := financisto.DecodeTransaction(fields)
	require.Nil(t, err)

	second, err := financisto.DecodeTransaction(fields)
	require.Nil(t, err)

	assert.Equal(t, first, second)
}

func TestDecodeOptionalFields(t *testing.T) {
	fields := transactionFields()
	delete(fields, "note")
	fields["status"] = "RC"

	transaction, err := financisto.DecodeTransaction(fields)
	require.Nil(t, err)
	assert.Nil(t, transaction.Note)
	require.NotNil(t, transaction.Status)
	assert.Equal(t, "RC", *transaction.Status)
}

func TestDecodeFail(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value *string // nil removes the field
		err   error
	}{
		{"Missing amount", "from_amount", nil, financisto.ErrFieldMissing},
		{"Missing id", "_id", nil, financisto.ErrFieldMissing},
		{"Non numeric amount", "from_amount", ptr("12.50"), strconv.ErrSyntax},
		{"Identifier out of range", "from_account_id", ptr("4294967296"), strconv.ErrRange},
		{"Non numeric coordinate", "latitude", ptr("north"), strconv.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := transactionFields()
			if tt.value == nil {
				delete(fields, tt.field)
			} else {
				fields[tt.field] = *tt.value
			}

			_, err := financisto.DecodeTransaction(fields)
			assert.ErrorIs(t, err, tt.err)

			var decodeErr *financisto.DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, "transactions", decodeErr.Entity)
			assert.Equal(t, tt.field, decodeErr.Field)
		})
	}
}

func TestDecodeFailFromBackup(t *testing.T) {
	backup, err := financisto.Parse(testFile(t, "corrupt-field.backup"))
	require.Nil(t, err)

	_, err = financisto.Decode(backup.Records)

	var decodeErr *financisto.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "_id", decodeErr.Field)
	assert.Contains(t, err.Error(), "could not decode transactions")
}

func TestDecodeCategory(t *testing.T) {
	category, err := financisto.DecodeCategory(map[string]string{
		"_id":              "3",
		"title":            "Food",
		"left":             "5",
		"right":            "10",
		"type":             "0",
		"last_location_id": "0",
		"last_project_id":  "0",
		"is_active":        "1",
		"updated_on":       "0",
	})
	require.Nil(t, err)

	assert.Equal(t, 5, category.Width())
	assert.True(t, category.Contains(financisto.Category{Left: 6, Right: 7}))
	assert.False(t, category.Contains(financisto.Category{Left: 5, Right: 10}), "Containment is strict")
	assert.False(t, category.Contains(financisto.Category{Left: 11, Right: 12}))
}

func ptr(s string) *string {
	return &s
}
