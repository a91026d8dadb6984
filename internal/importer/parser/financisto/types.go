package financisto

// Package is the application package written to the PACKAGE header of a backup.
const Package = "ru.orangesoftware.financisto"

// Entity names as written in the $ENTITY line of a backup block.
const (
	EntityCurrency    = "currency"
	EntityAccount     = "account"
	EntityCategory    = "category"
	EntityTransaction = "transactions"
)

// Record is one $ENTITY block of a backup.
type Record struct {
	Entity string
	Fields map[string]string
}

// Backup is the tokenized content of a backup file.
type Backup struct {
	Header  map[string]string // PACKAGE, VERSION_CODE, VERSION_NAME, DATABASE_VERSION
	Records []Record
}

// Data holds all decoded entities of a backup, in backup order.
type Data struct {
	Currencies   []Currency
	Accounts     []Account
	Categories   []Category
	Transactions []Transaction
}

type Currency struct {
	ID               int
	Name             string
	Title            string
	Symbol           string
	SymbolFormat     string
	Decimals         int
	DecimalSeparator *string
	GroupSeparator   *string
	IsActive         bool
	IsDefault        bool
	UpdatedOn        int64
}

type Account struct {
	ID                  int
	Title               string
	Type                string
	CurrencyID          int
	CreationDate        int64 // milliseconds since the epoch
	LastTransactionDate int64
	TotalAmount         int64 // two implied decimal digits
	TotalLimit          int64
	PaymentDay          int
	ClosingDay          int
	SortOrder           int
	LastAccountID       int
	LastCategoryID      int
	IsActive            bool
	IsIncludeIntoTotals bool
	Note                *string
	Issuer              *string
	CardIssuer          *string
	UpdatedOn           int64
}

// Category is a node of the nested set category tree.
type Category struct {
	ID             int
	Title          string
	Left           int
	Right          int
	Type           int
	LastLocationID int
	LastProjectID  int
	IsActive       bool
	UpdatedOn      int64
}

// Width is the size of the nested set interval. Leaves have a width of 1.
func (c Category) Width() int {
	return c.Right - c.Left
}

// Contains reports if the interval of c strictly contains the interval of other.
func (c Category) Contains(other Category) bool {
	return c.Left < other.Left && other.Right < c.Right
}

type Transaction struct {
	ID                 int
	ParentID           int // 0 unless this is part of a split
	FromAccountID      int
	ToAccountID        int // 0 unless this is a transfer
	CategoryID         int
	ProjectID          int
	LocationID         int
	PayeeID            int
	FromAmount         int64 // two implied decimal digits
	ToAmount           int64
	OriginalCurrencyID int
	OriginalFromAmount int64
	DateTime           int64 // milliseconds since the epoch
	Note               *string
	Provider           *string
	TemplateName       *string
	Status             *string
	Latitude           float64
	Longitude          float64
	Accuracy           float64
	IsCCardPayment     bool
	IsTemplate         int // 1 for templates, 2 for scheduled transactions
	LastRecurrence     int64
	UpdatedOn          int64
}

// IsTransfer reports if the transaction moves money between two accounts.
func (t Transaction) IsTransfer() bool {
	return t.ToAccountID != 0
}
