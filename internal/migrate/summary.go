package migrate

import (
	"fmt"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/envelope-zero/financisto2bluecoins/internal/importer/parser/financisto"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	// similarityThreshold is the highest relative edit distance at which
	// two items are reported as similar.
	similarityThreshold = 0.25

	// similarityMinLength is the minimal length in runes of items compared.
	similarityMinLength = 4

	// similarityMaxItems is the number of items above which items are not compared.
	similarityMaxItems = 2000
)

// Summary describes a migration.
type Summary struct {
	Accounts         int              `json:"accounts"`
	ParentCategories int              `json:"parentCategories"`
	ChildCategories  int              `json:"childCategories"`
	Items            int              `json:"items"` // Items created for transactions
	Transactions     TransactionStats `json:"transactions"`
	Balances         []Balance        `json:"balances"`
	SimilarItems     []SimilarItems   `json:"similarItems"`
}

// Balance compares the balance of an account after migration with the
// total that Financisto stored for it.
type Balance struct {
	AccountID int             `json:"accountId"`
	Account   string          `json:"account"`
	Currency  string          `json:"currency"`
	Symbol    string          `json:"symbol"`
	Migrated  decimal.Decimal `json:"migrated"`
	Expected  decimal.Decimal `json:"expected"`
}

// Matches reports if the migrated balance equals the expected one.
func (b Balance) Matches() bool {
	return b.Migrated.Equal(b.Expected)
}

// SimilarItems are two items with labels that only differ slightly,
// indicating a typo in one of them.
type SimilarItems struct {
	A        string `json:"a"`
	B        string `json:"b"`
	Distance int    `json:"distance"`
}

func balances(accounts []financisto.Account, currencies []financisto.Currency, amounts map[int]int64) []Balance {
	index := newCurrencyIndex(currencies)
	result := make([]Balance, 0, len(accounts))

	for _, account := range accounts {
		name := index.nameOrDefault(account.CurrencyID)

		b := Balance{
			AccountID: account.ID,
			Account:   account.Title,
			Currency:  name,
			Migrated:  decimal.New(amounts[account.ID], -6),
			Expected:  decimal.New(account.TotalAmount, -2),
		}

		if cur, err := currency.ParseISO(name); err == nil {
			b.Symbol = fmt.Sprint(currency.Symbol(cur))
		}

		if !b.Matches() {
			log.Warn().Int("account", b.AccountID).Str("migrated", b.Migrated.String()).Str("expected", b.Expected.String()).Msg("balance does not match")
		}

		result = append(result, b)
	}

	return result
}

func similarItems(labels []string) []SimilarItems {
	if len(labels) > similarityMaxItems {
		log.Debug().Int("items", len(labels)).Msg("too many items to check for similar ones")
		return nil
	}

	similar := make([]SimilarItems, 0)
	for i, a := range labels {
		lengthA := utf8.RuneCountInString(a)
		if lengthA < similarityMinLength {
			continue
		}

		for _, b := range labels[i+1:] {
			lengthB := utf8.RuneCountInString(b)
			if lengthB < similarityMinLength {
				continue
			}

			longest := float64(max(lengthA, lengthB))

			// The distance is at least the difference in length
			if float64(abs(lengthA-lengthB))/longest >= similarityThreshold {
				continue
			}

			distance := levenshtein.ComputeDistance(a, b)
			if float64(distance)/longest < similarityThreshold {
				similar = append(similar, SimilarItems{A: a, B: b, Distance: distance})
			}
		}
	}

	return similar
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
