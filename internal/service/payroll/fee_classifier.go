package payroll

import (
	"strings"

	"github.com/uchiyama0208/nightbase-sub008/internal/domain/order"
	"github.com/uchiyama0208/nightbase-sub008/internal/domain/payroll"
)

const (
	termInHouse    = "場内"
	termNomination = "指名"
	termCompanion  = "同伴"
)

type classificationRule struct {
	match    func(label string) bool
	category payroll.FeeCategory
}

func contains(term string) func(string) bool {
	return func(label string) bool { return strings.Contains(label, term) }
}

// Evaluated top to bottom. "場内指名" also contains the nomination term, so in-house must come first.
var classificationRules = []classificationRule{
	{match: contains(termInHouse), category: payroll.FeeCategoryInHouse},
	{match: contains(termNomination), category: payroll.FeeCategoryNomination},
	{match: contains(termCompanion), category: payroll.FeeCategoryCompanion},
}

// ClassifyLabel returns the fee category of a menu category name or free-text item label.
func ClassifyLabel(label string) payroll.FeeCategory {
	for _, rule := range classificationRules {
		if rule.match(label) {
			return rule.category
		}
	}
	return payroll.FeeCategoryStore
}

// ClassifyOrder classifies an order line by its menu category, falling back to
// the line's own label when the menu has no category.
func ClassifyOrder(line order.OrderLine, menu *order.Menu) payroll.FeeCategory {
	if menu != nil && menu.CategoryName != nil && strings.TrimSpace(*menu.CategoryName) != "" {
		return ClassifyLabel(*menu.CategoryName)
	}
	return ClassifyLabel(line.ItemName)
}
