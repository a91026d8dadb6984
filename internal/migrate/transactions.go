package migrate

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/envelope-zero/financisto2bluecoins/internal/bluecoins"
	"github.com/envelope-zero/financisto2bluecoins/internal/importer/parser/financisto"
	"github.com/rs/zerolog/log"
)

const (
	// LotteryAccountID is the account that lottery tickets are booked on.
	// Its transactions carry the ticket number as note.
	LotteryAccountID = 33

	// LotteryItem is the item for lottery tickets.
	LotteryItem = "運動彩券"

	// TransferItem is the item for all transfers.
	TransferItem = "轉帳"

	// amountScale converts Financisto amounts with two implied decimal
	// digits to Bluecoins amounts with six implied decimal digits.
	amountScale = 10000
)

var ErrAmountOverflow = errors.New("amount is too large")

// TransactionStats counts what happened to the transactions of a backup.
type TransactionStats struct {
	Simple        int `json:"simple"`        // Income and expense transactions
	Transfers     int `json:"transfers"`     // Transfers, each migrated as two rows
	SplitParents  int `json:"splitParents"`  // Transactions that have been split
	SplitChildren int `json:"splitChildren"` // Parts of split transactions
	Templates     int `json:"templates"`     // Skipped templates
	Orphans       int `json:"orphans"`       // Split parts whose parent is missing, skipped
	Collisions    int `json:"collisions"`    // Transactions that could not use their time as ID
}

// TransactionResult is the outcome of Transactions.
type TransactionResult struct {
	Statements []bluecoins.Statement
	Stats      TransactionStats

	// Items are the labels of all created items, in creation order.
	Items []string

	// Amounts is the sum of all migrated amounts per account ID,
	// with six implied decimal digits.
	Amounts map[int]int64
}

// Transactions migrates transactions.
//
// Transactions are migrated in the order of the backup. Templates are
// skipped. Transfers create two rows, one per account. Split transactions
// create one row per part, the parts are migrated with their parent.
// Everything else creates a single row.
//
// The first time a label is used, an item is created for it. Its statement
// directly precedes the transaction that uses it.
func Transactions(transactions []financisto.Transaction, currencies []financisto.Currency, opts Options) (TransactionResult, error) {
	run := transactionRun{
		loc:          opts.location(),
		currencies:   newCurrencyIndex(currencies),
		items:        newItemRegistry(opts.lastItemID()),
		keys:         newKeyAllocator(opts.ReservedKeys),
		children:     make(map[int][]financisto.Transaction),
		splitParents: make(map[int]struct{}),
		amounts:      make(map[int]int64),
	}

	for _, transaction := range transactions {
		if transaction.ParentID != 0 && transaction.IsTemplate == 0 {
			run.children[transaction.ParentID] = append(run.children[transaction.ParentID], transaction)
		}
	}

	for _, transaction := range transactions {
		var err error

		switch {
		case transaction.IsTemplate != 0:
			run.stats.Templates++
		case transaction.IsTransfer():
			err = run.transfer(transaction)
		case transaction.ParentID != 0:
			// Migrated together with the parent
		case len(run.children[transaction.ID]) > 0:
			err = run.split(transaction)
		default:
			err = run.simple(transaction)
		}

		if err != nil {
			return TransactionResult{}, fmt.Errorf("transaction %d: %w", transaction.ID, err)
		}
	}

	run.countOrphans()
	run.stats.Collisions = run.keys.collisions

	return TransactionResult{
		Statements: run.statements,
		Stats:      run.stats,
		Items:      run.items.created,
		Amounts:    run.amounts,
	}, nil
}

type transactionRun struct {
	loc          *time.Location
	currencies   currencyIndex
	items        *itemRegistry
	keys         *keyAllocator
	children     map[int][]financisto.Transaction // by parent ID
	splitParents map[int]struct{}
	statements   []bluecoins.Statement
	amounts      map[int]int64
	stats        TransactionStats
}

// item returns the ID of the item for label, emitting it if it is new.
func (r *transactionRun) item(label string) int64 {
	id, created := r.items.get(label)
	if created != nil {
		r.statements = append(r.statements, created.Statement())
	}
	return id
}

// noteItem returns the item and the notes for a transaction.
func (r *transactionRun) noteItem(transaction financisto.Transaction) (int64, string) {
	if transaction.Note == nil {
		if transaction.FromAmount >= 0 {
			return bluecoins.ItemUnnamedIncome, ""
		}
		return bluecoins.ItemUnnamedExpense, ""
	}

	note := *transaction.Note

	// Known labels win over the lottery rule
	if id, ok := r.items.lookup(note); ok {
		return id, ""
	}

	// Lottery tickets are booked with their number as note
	if transaction.FromAccountID == LotteryAccountID {
		if _, err := strconv.ParseInt(note, 10, 32); err == nil {
			return r.item(LotteryItem), note
		}
	}

	return r.item(note), ""
}

func (r *transactionRun) row(row bluecoins.Transaction) {
	r.amounts[row.AccountID] += row.Amount
	r.statements = append(r.statements, row.Statement())
}

func (r *transactionRun) simple(transaction financisto.Transaction) error {
	amount, err := scale(transaction.FromAmount)
	if err != nil {
		return err
	}

	itemID, notes := r.noteItem(transaction)
	key := r.keys.reserve(transaction.DateTime, 1)

	r.row(bluecoins.Transaction{
		ID:               key,
		ItemID:           itemID,
		Amount:           amount,
		Currency:         r.currencies.nameOrDefault(transaction.OriginalCurrencyID),
		Date:             timestamp(transaction.DateTime, r.loc),
		TypeID:           direction(transaction.FromAmount),
		CategoryID:       transaction.CategoryID,
		AccountID:        transaction.FromAccountID,
		Notes:            notes,
		Status:           bluecoins.StatusNone,
		AccountReference: bluecoins.ReferenceSimple,
		AccountPairID:    transaction.FromAccountID,
		UIDPairID:        key,
	})

	r.stats.Simple++
	return nil
}

// transfer migrates a transfer into one row for the source and one
// for the target account. Both rows reference each other.
func (r *transactionRun) transfer(transaction financisto.Transaction) error {
	from, err := scale(transaction.FromAmount)
	if err != nil {
		return err
	}

	to, err := scale(transaction.ToAmount)
	if err != nil {
		return err
	}

	itemID := r.item(TransferItem)
	key := r.keys.reserve(transaction.DateTime, 2)
	currency := r.currencies.nameOrDefault(transaction.OriginalCurrencyID)
	date := timestamp(transaction.DateTime, r.loc)
	notes := optional(transaction.Note)

	r.row(bluecoins.Transaction{
		ID:               key,
		ItemID:           itemID,
		Amount:           from,
		Currency:         currency,
		Date:             date,
		TypeID:           bluecoins.TypeTransfer,
		CategoryID:       bluecoins.CategoryTransfer,
		AccountID:        transaction.FromAccountID,
		Notes:            notes,
		Status:           bluecoins.StatusNone,
		AccountReference: bluecoins.ReferenceSimple,
		AccountPairID:    transaction.ToAccountID,
		UIDPairID:        key + 1,
		TransferGroupID:  key,
	})

	r.row(bluecoins.Transaction{
		ID:               key + 1,
		ItemID:           itemID,
		Amount:           to,
		Currency:         currency,
		Date:             date,
		TypeID:           bluecoins.TypeTransfer,
		CategoryID:       bluecoins.CategoryTransfer,
		AccountID:        transaction.ToAccountID,
		Notes:            notes,
		Status:           bluecoins.StatusNone,
		AccountReference: bluecoins.ReferenceTransferTo,
		AccountPairID:    transaction.FromAccountID,
		UIDPairID:        key,
		TransferGroupID:  key,
	})

	r.stats.Transfers++
	return nil
}

// split migrates the parts of a split transaction. The parent itself
// only provides the item, the date and the direction of its parts.
func (r *transactionRun) split(parent financisto.Transaction) error {
	r.splitParents[parent.ID] = struct{}{}
	r.stats.SplitParents++

	// Parts that are transfers have been migrated as transfers
	parts := make([]financisto.Transaction, 0, len(r.children[parent.ID]))
	for _, child := range r.children[parent.ID] {
		if !child.IsTransfer() {
			parts = append(parts, child)
		}
	}

	if len(parts) == 0 {
		return nil
	}

	slices.SortStableFunc(parts, func(a, b financisto.Transaction) int {
		return cmp.Compare(a.DateTime, b.DateTime)
	})

	amounts := make([]int64, len(parts))
	for i, part := range parts {
		amount, err := scale(part.FromAmount)
		if err != nil {
			return fmt.Errorf("split part %d: %w", part.ID, err)
		}
		amounts[i] = amount
	}

	itemID, _ := r.noteItem(parent)
	anchor := r.keys.reserve(parent.DateTime, int64(len(parts))+1)
	date := timestamp(parent.DateTime, r.loc)
	typeID := direction(parent.FromAmount)

	for i, part := range parts {
		key := anchor + int64(i) + 1

		r.row(bluecoins.Transaction{
			ID:               key,
			ItemID:           itemID,
			Amount:           amounts[i],
			Currency:         r.currencies.nameOrDefault(part.OriginalCurrencyID),
			Date:             date,
			TypeID:           typeID,
			CategoryID:       part.CategoryID,
			AccountID:        part.FromAccountID,
			Notes:            optional(part.Note),
			Status:           bluecoins.StatusNone,
			AccountReference: bluecoins.ReferenceSimple,
			AccountPairID:    part.FromAccountID,
			UIDPairID:        key,
			SplitID:          anchor,
		})
	}

	r.stats.SplitChildren += len(parts)
	return nil
}

// countOrphans counts the split parts that have not been migrated
// because their parent was not migrated as split transaction.
func (r *transactionRun) countOrphans() {
	for parentID, children := range r.children {
		if _, ok := r.splitParents[parentID]; ok {
			continue
		}

		for _, child := range children {
			if child.IsTransfer() {
				continue
			}

			r.stats.Orphans++
			log.Warn().Int("transaction", child.ID).Int("parent", parentID).Msg("skipping split part without parent")
		}
	}
}

// direction is the Bluecoins transaction type for an amount.
func direction(amount int64) int {
	if amount >= 0 {
		return bluecoins.TypeIncome
	}
	return bluecoins.TypeExpense
}

func scale(amount int64) (int64, error) {
	if amount > math.MaxInt64/amountScale || amount < math.MinInt64/amountScale {
		return 0, fmt.Errorf("%w: %d", ErrAmountOverflow, amount)
	}
	return amount * amountScale, nil
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
