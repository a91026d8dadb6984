package migrate

import "github.com/envelope-zero/financisto2bluecoins/internal/bluecoins"

// itemRegistry hands out one item per distinct label.
type itemRegistry struct {
	last    int64
	ids     map[string]int64
	created []string
}

func newItemRegistry(last int64) *itemRegistry {
	return &itemRegistry{
		last: last,
		ids:  make(map[string]int64),
	}
}

// lookup returns the ID of an existing item.
func (r *itemRegistry) lookup(label string) (int64, bool) {
	id, ok := r.ids[label]
	return id, ok
}

// get returns the ID of the item with the label. If the item does
// not exist yet, it is created and returned as second value.
func (r *itemRegistry) get(label string) (int64, *bluecoins.Item) {
	if id, ok := r.lookup(label); ok {
		return id, nil
	}

	r.last++
	r.ids[label] = r.last
	r.created = append(r.created, label)

	return r.last, &bluecoins.Item{ID: r.last, Name: label}
}
