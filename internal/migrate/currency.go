package migrate

import (
	"github.com/envelope-zero/financisto2bluecoins/internal/bluecoins"
	"github.com/envelope-zero/financisto2bluecoins/internal/importer/parser/financisto"
)

// currencyIndex maps currency IDs to the ISO 4217 code stored as currency name.
type currencyIndex map[int]string

func newCurrencyIndex(currencies []financisto.Currency) currencyIndex {
	index := make(currencyIndex, len(currencies))
	for _, c := range currencies {
		// The first currency wins if an ID is used twice
		if _, ok := index[c.ID]; !ok {
			index[c.ID] = c.Name
		}
	}
	return index
}

func (c currencyIndex) name(id int) (string, bool) {
	name, ok := c[id]
	return name, ok
}

// nameOrDefault returns the name of the currency or bluecoins.DefaultCurrency
// if the currency does not exist.
//
// Transactions in Financisto backups can reference deleted currencies.
func (c currencyIndex) nameOrDefault(id int) string {
	if name, ok := c[id]; ok {
		return name
	}
	return bluecoins.DefaultCurrency
}
