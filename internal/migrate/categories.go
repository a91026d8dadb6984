package migrate

import (
	"cmp"
	"slices"

	"github.com/envelope-zero/financisto2bluecoins/internal/bluecoins"
	"github.com/envelope-zero/financisto2bluecoins/internal/importer/parser/financisto"
)

// Placement is the position of a category in the two level Bluecoins taxonomy.
type Placement struct {
	Category financisto.Category

	// TopLevel categories are migrated as parent category and as child
	// category of themselves, so that transactions referencing them stay valid.
	TopLevel bool

	// ParentID is the parent category. For top level categories, this is
	// the ID of the category itself.
	ParentID int
}

// Flatten places every category of a nested set tree into a two level taxonomy.
//
// A category is top level if it has children or if no other category contains
// it. All other categories are placed below the top level category that
// contains them. Deeper trees are flattened: if multiple top level categories
// contain a category, the one that comes first in the backup is its parent.
//
// Placements are returned in the order of the categories.
func Flatten(categories []financisto.Category) []Placement {
	// Sweep the categories in nested set order, keeping the chain of
	// containing categories on a stack. Every stack frame knows the
	// containing category with the lowest index.
	type frame struct {
		index    int // of the category in categories
		minIndex int // lowest index of this category and everything containing it
	}

	order := make([]int, len(categories))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if c := cmp.Compare(categories[a].Left, categories[b].Left); c != 0 {
			return c
		}
		return cmp.Compare(categories[b].Right, categories[a].Right)
	})

	placements := make([]Placement, len(categories))
	stack := make([]frame, 0, 8)

	for _, i := range order {
		category := categories[i]

		for len(stack) > 0 && !categories[stack[len(stack)-1].index].Contains(category) {
			stack = stack[:len(stack)-1]
		}

		placement := Placement{Category: category, ParentID: category.ID}
		minIndex := i

		if len(stack) == 0 || category.Width() > 1 {
			placement.TopLevel = true
		}

		if len(stack) > 0 {
			top := stack[len(stack)-1]
			minIndex = min(i, top.minIndex)

			if !placement.TopLevel {
				placement.ParentID = categories[top.minIndex].ID
			}
		}

		placements[i] = placement
		stack = append(stack, frame{index: i, minIndex: minIndex})
	}

	return placements
}

// Categories migrates categories.
//
// Top level categories come first, in the order of the backup, each as parent
// category followed by a child category with the same ID. All other categories
// follow as child categories.
func Categories(categories []financisto.Category) []bluecoins.Statement {
	return categoryStatements(Flatten(categories))
}

func categoryStatements(placements []Placement) []bluecoins.Statement {
	statements := make([]bluecoins.Statement, 0, len(placements)*2)

	for _, p := range placements {
		if !p.TopLevel {
			continue
		}

		statements = append(statements,
			bluecoins.ParentCategory{
				ID:      p.Category.ID,
				Name:    p.Category.Title,
				GroupID: bluecoins.CategoryGroup(p.Category.Title),
			}.Statement(),
			bluecoins.ChildCategory{
				ID:       p.Category.ID,
				Name:     p.Category.Title,
				ParentID: p.Category.ID,
			}.Statement(),
		)
	}

	for _, p := range placements {
		if p.TopLevel {
			continue
		}

		statements = append(statements, bluecoins.ChildCategory{
			ID:       p.Category.ID,
			Name:     p.Category.Title,
			ParentID: p.ParentID,
		}.Statement())
	}

	return statements
}
