// Package bluecoins renders rows of the Bluecoins database as SQL statements.
package bluecoins

// Tables of the Bluecoins database.
const (
	TableAccounts         = "ACCOUNTSTABLE"
	TableItems            = "ITEMTABLE"
	TableTransactions     = "TRANSACTIONSTABLE"
	TableParentCategories = "PARENTCATEGORYTABLE"
	TableChildCategories  = "CHILDCATEGORYTABLE"
)

// Transaction types.
const (
	TypeNewAccount = 2
	TypeExpense    = 3
	TypeIncome     = 4
	TypeTransfer   = 5
)

// Categories that exist in every Bluecoins database.
const (
	CategoryNewAccount = 2
	CategoryTransfer   = 3
)

// Items that exist in every Bluecoins database.
const (
	ItemUnnamedExpense int64 = 2
	ItemUnnamedIncome  int64 = 3
)

// Item IDs 5 to 40 are reserved for the items named after accounts,
// items created for transactions start after that.
const (
	FirstAccountItemID int64 = 5
	LastReservedItemID int64 = 40
)

// Fallbacks for values that cannot be mapped.
const (
	DefaultCurrency      = "TWD"
	DefaultAccountType   = ""
	DefaultCategoryGroup = "3"
)

// Value of the deletedTransaction column for every migrated transaction.
const transactionDeletedFlag = 6

// Status of migrated transactions.
const (
	StatusNone       = 0
	StatusNewAccount = 2
)

// Account references of transaction rows.
const (
	ReferenceSimple     = 1
	ReferenceTransferTo = 2
	ReferenceNewAccount = 3
)

// accountTypes maps Financisto account types to Bluecoins account types.
var accountTypes = map[string]string{
	"ASSET":       "15",
	"BANK":        "3",
	"CREDIT_CARD": "8",
	"DEBIT_CARD":  "8",
	"CASH":        "4",
	"ELECTRONIC":  "15",
	"OTHER":       "15",
}

// categoryGroups maps category titles to Bluecoins category groups.
var categoryGroups = map[string]string{
	"收入": "2",
}

// AccountType returns the account type for a Financisto account type.
//
// Unknown types are mapped to DefaultAccountType.
func AccountType(kind string) string {
	if t, ok := accountTypes[kind]; ok {
		return t
	}
	return DefaultAccountType
}

// CategoryGroup returns the category group for the title of a parent category.
func CategoryGroup(title string) string {
	if g, ok := categoryGroups[title]; ok {
		return g
	}
	return DefaultCategoryGroup
}
