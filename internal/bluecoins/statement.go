package bluecoins

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the format of the date column of transactions.
const DateFormat = "2006-01-02 15:04:05"

// null is the SQL NULL literal.
const null = "NULL"

// Statement is a single SQL statement inserting one row.
type Statement string

var (
	accountColumns = []string{
		"accountsTableID", "accountName", "accountTypeID", "accountHidden", "accountCurrency",
		"accountConversionRateNew", "currencyChanged", "creditLimit", "cutOffDa", "creditCardDueDate",
		"cashBasedAccounts", "accountSelectorVisibility", "accountsExtraColumnInt1", "accountsExtraColumnInt2",
		"accountsExtraColumnString1", "accountsExtraColumnString2",
	}

	itemColumns = []string{"itemTableID", "itemName", "itemAutoFillVisibility"}

	transactionColumns = []string{
		"transactionsTableID", "itemID", "amount", "transactionCurrency", "conversionRateNew", "date",
		"transactionTypeID", "categoryID", "accountID", "notes", "status", "accountReference", "accountPairID",
		"uidPairID", "deletedTransaction", "newSplitTransactionID", "transferGroupID", "reminderTransaction",
		"reminderGroupID", "reminderFrequency", "reminderRepeatEvery", "reminderEndingType", "reminderStartDate",
		"reminderEndDate", "reminderAfterNoOfOccurences", "reminderAutomaticLogTransaction",
		"reminderRepeatByDayOfMonth", "reminderExcludeWeekend", "reminderWeekDayMoveSetting", "reminderUnbilled",
		"creditCardInstallment", "reminderVersion", "dataExtraColumnString1",
	}

	parentCategoryColumns = []string{
		"parentCategoryTableID", "parentCategoryName", "categoryGroupID", "budgetAmountCategoryParent",
		"budgetCustomSetupParent", "budgetPeriodCategoryParent", "budgetEnabledCategoryParent",
		"categoryParentExtraColumnInt1", "categoryParentExtraColumnInt2", "categoryParentExtraColumnString1",
		"categoryParentExtraColumnString2",
	}

	childCategoryColumns = []string{
		"categoryTableID", "childCategoryName", "parentCategoryID", "budgetAmount", "budgetCustomSetup",
		"budgetPeriod", "budgetEnabledCategoryChild", "childCategoryIcon", "categorySelectorVisibility",
		"categoryExtraColumnInt1", "categoryExtraColumnInt2", "categoryExtraColumnString1",
		"categoryExtraColumnString2",
	}

	// Reminders are not migrated, all reminder columns of a transaction are NULL.
	reminderValues = repeat(null, 16)
)

type Account struct {
	ID       int
	Name     string
	TypeID   string
	Currency string
}

func (a Account) Statement() Statement {
	return insert(TableAccounts, accountColumns,
		quote(strconv.Itoa(a.ID)), quote(a.Name), quote(a.TypeID), quote("0"), quote(a.Currency),
		quote("1.0"), null, quote("0"), quote("0"), quote("0"), quote("0"), quote("0"),
		null, null, null, null,
	)
}

type Item struct {
	ID   int64
	Name string
}

func (i Item) Statement() Statement {
	return insert(TableItems, itemColumns, quote(strconv.FormatInt(i.ID, 10)), quote(i.Name), quote("0"))
}

// Transaction is a row of the transactions table.
//
// Amount has six implied decimal digits.
type Transaction struct {
	ID               int64
	ItemID           int64
	Amount           int64
	Currency         string
	Date             time.Time
	TypeID           int
	CategoryID       int
	AccountID        int
	Notes            string
	Status           int
	AccountReference int
	AccountPairID    int
	UIDPairID        int64
	SplitID          int64 // newSplitTransactionID
	TransferGroupID  int64
}

func (t Transaction) Statement() Statement {
	values := []string{
		quote(strconv.FormatInt(t.ID, 10)),
		quote(strconv.FormatInt(t.ItemID, 10)),
		quote(strconv.FormatInt(t.Amount, 10)),
		quote(t.Currency),
		quote("1"),
		quote(t.Date.Format(DateFormat)),
		quote(strconv.Itoa(t.TypeID)),
		quote(strconv.Itoa(t.CategoryID)),
		quote(strconv.Itoa(t.AccountID)),
		quote(t.Notes),
		quote(strconv.Itoa(t.Status)),
		quote(strconv.Itoa(t.AccountReference)),
		quote(strconv.Itoa(t.AccountPairID)),
		quote(strconv.FormatInt(t.UIDPairID, 10)),
		quote(strconv.Itoa(transactionDeletedFlag)),
		quote(strconv.FormatInt(t.SplitID, 10)),
		quote(strconv.FormatInt(t.TransferGroupID, 10)),
	}

	return insert(TableTransactions, transactionColumns, append(values, reminderValues...)...)
}

// ParentCategory is a category group entry.
type ParentCategory struct {
	ID      int
	Name    string
	GroupID string
}

func (p ParentCategory) Statement() Statement {
	return insert(TableParentCategories, parentCategoryColumns,
		quote(strconv.Itoa(p.ID)), quote(p.Name), quote(p.GroupID),
		null, null, null, quote("1"), null, null, null, null,
	)
}

// ChildCategory is the category transactions are assigned to.
type ChildCategory struct {
	ID       int
	Name     string
	ParentID int
}

func (c ChildCategory) Statement() Statement {
	return insert(TableChildCategories, childCategoryColumns,
		quote(strconv.Itoa(c.ID)), quote(c.Name), quote(strconv.Itoa(c.ParentID)),
		quote("0"), null, quote("3"), quote("1"), null, quote("0"), null, null, null, null,
	)
}

// Write writes the statements to w, separated by newlines.
func Write(w io.Writer, statements []Statement) error {
	for i, s := range statements {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return fmt.Errorf("could not write statements: %w", err)
			}
		}

		if _, err := io.WriteString(w, string(s)); err != nil {
			return fmt.Errorf("could not write statements: %w", err)
		}
	}

	return nil
}

// Escape escapes single quotes for use in an SQL string literal.
func Escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func quote(s string) string {
	return "'" + Escape(s) + "'"
}

func insert(table string, columns []string, values ...string) Statement {
	if len(columns) != len(values) {
		panic(fmt.Sprintf("%s: %d columns but %d values", table, len(columns), len(values)))
	}

	var b strings.Builder
	b.WriteString(`INSERT INTO "`)
	b.WriteString(table)
	b.WriteString(`" (`)
	for i, c := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(`"`)
		b.WriteString(c)
		b.WriteString(`"`)
	}
	b.WriteString(") VALUES (")
	b.WriteString(strings.Join(values, ", "))
	b.WriteString(");")

	return Statement(b.String())
}

func repeat(s string, n int) []string {
	r := make([]string, n)
	for i := range r {
		r[i] = s
	}
	return r
}
