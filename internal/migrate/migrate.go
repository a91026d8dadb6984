// Package migrate converts decoded Financisto entities into Bluecoins statements.
//
// Every function in this package is a pure transformation. All state, e.g.
// the items created so far or the transaction IDs in use, lives for the
// duration of a single call.
package migrate

import (
	"fmt"
	"slices"
	"time"

	"github.com/envelope-zero/financisto2bluecoins/internal/bluecoins"
	"github.com/envelope-zero/financisto2bluecoins/internal/importer/parser/financisto"
)

// Options configure a migration.
type Options struct {
	// Location is the time zone dates are written in. Defaults to time.Local.
	Location *time.Location

	// LastItemID is the highest item ID in use before transactions are migrated.
	// Defaults to bluecoins.LastReservedItemID.
	LastItemID int64

	// ReservedKeys are transaction IDs that must not be used for migrated transactions.
	ReservedKeys []int64
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

func (o Options) lastItemID() int64 {
	if o.LastItemID < bluecoins.LastReservedItemID {
		return bluecoins.LastReservedItemID
	}
	return o.LastItemID
}

// Result is the outcome of a full migration.
type Result struct {
	Statements []bluecoins.Statement
	Summary    Summary
}

// Run migrates accounts, categories and transactions, in this order.
func Run(data financisto.Data, opts Options) (Result, error) {
	accounts, err := Accounts(data.Accounts, data.Currencies, opts)
	if err != nil {
		return Result{}, fmt.Errorf("could not migrate accounts: %w", err)
	}

	placements := Flatten(data.Categories)
	categories := categoryStatements(placements)

	// The transactions created for accounts use the account ID as key
	// and their items must not be reused for transactions.
	transactionOpts := opts
	transactionOpts.LastItemID = max(opts.lastItemID(), lastAccountItemID(len(data.Accounts)))
	transactionOpts.ReservedKeys = slices.Clone(opts.ReservedKeys)
	for _, account := range data.Accounts {
		transactionOpts.ReservedKeys = append(transactionOpts.ReservedKeys, int64(account.ID))
	}

	transactions, err := Transactions(data.Transactions, data.Currencies, transactionOpts)
	if err != nil {
		return Result{}, fmt.Errorf("could not migrate transactions: %w", err)
	}

	summary := Summary{
		Accounts:     len(data.Accounts),
		Items:        len(transactions.Items),
		Transactions: transactions.Stats,
		Balances:     balances(data.Accounts, data.Currencies, transactions.Amounts),
		SimilarItems: similarItems(transactions.Items),
	}

	for _, p := range placements {
		if p.TopLevel {
			summary.ParentCategories++
		}
	}
	summary.ChildCategories = len(placements)

	return Result{
		Statements: slices.Concat(accounts, categories, transactions.Statements),
		Summary:    summary,
	}, nil
}

// timestamp converts milliseconds since the epoch to a time in loc.
func timestamp(milliseconds int64, loc *time.Location) time.Time {
	return time.UnixMilli(milliseconds).In(loc)
}
