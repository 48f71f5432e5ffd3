package ledger

import "strings"

// DefaultCategories is the fixed default category list, always present in the
// category universe and always first, in this order.
var DefaultCategories = []string{
	"Transporte",
	"Skincare",
	"Salud",
	"Entretenimiento",
	"Comida",
	"Efectivo",
	"Otros",
}

// Categories returns the ordered, duplicate-free union of the default
// categories, every distinct expense category in first-seen order, and every
// budget category not already present. budgetCategories must be passed in a
// deterministic order; the store supplies them sorted by name.
func Categories(entries []Entry, budgetCategories []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(DefaultCategories))

	add := func(category string) {
		category = strings.TrimSpace(category)
		if category == "" || seen[category] {
			return
		}
		seen[category] = true
		result = append(result, category)
	}

	for _, category := range DefaultCategories {
		add(category)
	}
	for _, e := range entries {
		if exp, ok := e.(Expense); ok && exp.Category != "" {
			add(exp.Category)
		}
	}
	for _, category := range budgetCategories {
		add(category)
	}

	return result
}
