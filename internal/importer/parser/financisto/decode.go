package financisto

import (
	"strconv"
)

// Decode converts all records of a backup into typed entities.
//
// Records of entities that are not needed for a migration, e.g. locations
// or projects, are skipped.
func Decode(records []Record) (Data, error) {
	var data Data

	for _, record := range records {
		switch record.Entity {
		case EntityCurrency:
			currency, err := DecodeCurrency(record.Fields)
			if err != nil {
				return Data{}, err
			}
			data.Currencies = append(data.Currencies, currency)

		case EntityAccount:
			account, err := DecodeAccount(record.Fields)
			if err != nil {
				return Data{}, err
			}
			data.Accounts = append(data.Accounts, account)

		case EntityCategory:
			category, err := DecodeCategory(record.Fields)
			if err != nil {
				return Data{}, err
			}
			data.Categories = append(data.Categories, category)

		case EntityTransaction:
			transaction, err := DecodeTransaction(record.Fields)
			if err != nil {
				return Data{}, err
			}
			data.Transactions = append(data.Transactions, transaction)
		}
	}

	return data, nil
}

func DecodeCurrency(fields map[string]string) (Currency, error) {
	d := decoder{entity: EntityCurrency, fields: fields}

	currency := Currency{
		ID:               d.i32("_id"),
		Name:             d.str("name"),
		Title:            d.str("title"),
		Symbol:           d.str("symbol"),
		SymbolFormat:     d.str("symbol_format"),
		Decimals:         d.i32("decimals"),
		DecimalSeparator: d.optional("decimal_separator"),
		GroupSeparator:   d.optional("group_separator"),
		IsActive:         d.flag("is_active"),
		IsDefault:        d.flag("is_default"),
		UpdatedOn:        d.i64("updated_on"),
	}

	if d.err != nil {
		return Currency{}, d.err
	}
	return currency, nil
}

func DecodeAccount(fields map[string]string) (Account, error) {
	d := decoder{entity: EntityAccount, fields: fields}

	account := Account{
		ID:                  d.i32("_id"),
		Title:               d.str("title"),
		Type:                d.str("type"),
		CurrencyID:          d.i32("currency_id"),
		CreationDate:        d.i64("creation_date"),
		LastTransactionDate: d.i64("last_transaction_date"),
		TotalAmount:         d.i64("total_amount"),
		TotalLimit:          d.i64("total_limit"),
		PaymentDay:          d.i32("payment_day"),
		ClosingDay:          d.i32("closing_day"),
		SortOrder:           d.i32("sort_order"),
		LastAccountID:       d.i32("last_account_id"),
		LastCategoryID:      d.i32("last_category_id"),
		IsActive:            d.flag("is_active"),
		IsIncludeIntoTotals: d.flag("is_include_into_totals"),
		Note:                d.optional("note"),
		Issuer:              d.optional("issuer"),
		CardIssuer:          d.optional("card_issuer"),
		UpdatedOn:           d.i64("updated_on"),
	}

	if d.err != nil {
		return Account{}, d.err
	}
	return account, nil
}

func DecodeCategory(fields map[string]string) (Category, error) {
	d := decoder{entity: EntityCategory, fields: fields}

	category := Category{
		ID:             d.i32("_id"),
		Title:          d.str("title"),
		Left:           d.i32("left"),
		Right:          d.i32("right"),
		Type:           d.i32("type"),
		LastLocationID: d.i32("last_location_id"),
		LastProjectID:  d.i32("last_project_id"),
		IsActive:       d.flag("is_active"),
		UpdatedOn:      d.i64("updated_on"),
	}

	if d.err != nil {
		return Category{}, d.err
	}
	return category, nil
}

func DecodeTransaction(fields map[string]string) (Transaction, error) {
	d := decoder{entity: EntityTransaction, fields: fields}

	transaction := Transaction{
		ID:                 d.i32("_id"),
		ParentID:           d.i32("parent_id"),
		FromAccountID:      d.i32("from_account_id"),
		ToAccountID:        d.i32("to_account_id"),
		CategoryID:         d.i32("category_id"),
		ProjectID:          d.i32("project_id"),
		LocationID:         d.i32("location_id"),
		PayeeID:            d.i32("payee_id"),
		FromAmount:         d.i64("from_amount"),
		ToAmount:           d.i64("to_amount"),
		OriginalCurrencyID: d.i32("original_currency_id"),
		OriginalFromAmount: d.i64("original_from_amount"),
		DateTime:           d.i64("datetime"),
		Note:               d.optional("note"),
		Provider:           d.optional("provider"),
		TemplateName:       d.optional("template_name"),
		Status:             d.optional("status"),
		Latitude:           d.f64("latitude"),
		Longitude:          d.f64("longitude"),
		Accuracy:           d.f64("accuracy"),
		IsCCardPayment:     d.flag("is_ccard_payment"),
		IsTemplate:         d.i32("is_template"),
		LastRecurrence:     d.i64("last_recurrence"),
		UpdatedOn:          d.i64("updated_on"),
	}

	if d.err != nil {
		return Transaction{}, d.err
	}
	return transaction, nil
}

// decoder reads typed values from the fields of one record.
//
// The first failure is kept in err, all later reads return zero values.
type decoder struct {
	entity string
	fields map[string]string
	err    error
}

func (d *decoder) fail(field string, err error) {
	if d.err == nil {
		d.err = &DecodeError{Entity: d.entity, Field: field, Err: err}
	}
}

func (d *decoder) lookup(field string) (string, bool) {
	if d.err != nil {
		return "", false
	}

	value, ok := d.fields[field]
	if !ok {
		d.fail(field, ErrFieldMissing)
	}
	return value, ok
}

func (d *decoder) str(field string) string {
	value, _ := d.lookup(field)
	return value
}

func (d *decoder) optional(field string) *string {
	value, ok := d.fields[field]
	if !ok {
		return nil
	}
	return &value
}

func (d *decoder) i64(field string) int64 {
	value, ok := d.lookup(field)
	if !ok {
		return 0
	}

	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		d.fail(field, err)
	}
	return i
}

// i32 parses identifiers and small counters, which are 32 bit wide in the
// Financisto database.
func (d *decoder) i32(field string) int {
	value, ok := d.lookup(field)
	if !ok {
		return 0
	}

	i, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		d.fail(field, err)
	}
	return int(i)
}

func (d *decoder) f64(field string) float64 {
	value, ok := d.lookup(field)
	if !ok {
		return 0
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		d.fail(field, err)
	}
	return f
}

func (d *decoder) flag(field string) bool {
	return d.i32(field) != 0
}
