package migrate

import (
	"errors"
	"fmt"

	"github.com/envelope-zero/financisto2bluecoins/internal/bluecoins"
	"github.com/envelope-zero/financisto2bluecoins/internal/importer/parser/financisto"
)

var ErrCurrencyNotFound = errors.New("currency does not exist")

// Accounts migrates accounts.
//
// For every account, three statements are created: the account, an item
// with the name of the account and an empty transaction at the creation time
// of the account. Bluecoins expects every account to have at least one
// transaction.
func Accounts(accounts []financisto.Account, currencies []financisto.Currency, opts Options) ([]bluecoins.Statement, error) {
	index := newCurrencyIndex(currencies)
	loc := opts.location()

	statements := make([]bluecoins.Statement, 0, 3*len(accounts))
	itemID := bluecoins.FirstAccountItemID

	for _, account := range accounts {
		currency, ok := index.name(account.CurrencyID)
		if !ok {
			return nil, fmt.Errorf("account %d: %w: %d", account.ID, ErrCurrencyNotFound, account.CurrencyID)
		}

		statements = append(statements,
			bluecoins.Account{
				ID:       account.ID,
				Name:     account.Title,
				TypeID:   bluecoins.AccountType(account.Type),
				Currency: currency,
			}.Statement(),
			bluecoins.Item{
				ID:   itemID,
				Name: account.Title,
			}.Statement(),
			bluecoins.Transaction{
				ID:               int64(account.ID),
				ItemID:           itemID,
				Currency:         currency,
				Date:             timestamp(account.CreationDate, loc),
				TypeID:           bluecoins.TypeNewAccount,
				CategoryID:       bluecoins.CategoryNewAccount,
				AccountID:        account.ID,
				Status:           bluecoins.StatusNewAccount,
				AccountReference: bluecoins.ReferenceNewAccount,
				AccountPairID:    account.ID,
				UIDPairID:        account.CreationDate,
			}.Statement(),
		)

		itemID++
	}

	return statements, nil
}

// lastAccountItemID is the highest item ID Accounts uses for n accounts.
func lastAccountItemID(n int) int64 {
	return bluecoins.FirstAccountItemID + int64(n) - 1
}
