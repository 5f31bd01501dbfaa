package models

import "strings"

// BudgetRange is a decimal-as-string budget pair
type BudgetRange struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// budgetLabels is the canonical legacy label table. Older clients sent these
// labels instead of an explicit min/max pair.
var budgetLabels = []struct {
	label string
	rng   BudgetRange
}{
	{"Under $15,000", BudgetRange{Min: "0", Max: "15000"}},
	{"$15,000 - $35,000", BudgetRange{Min: "15000", Max: "35000"}},
	{"$35,000 - $65,000", BudgetRange{Min: "35000", Max: "65000"}},
	{"$65,000 - $100,000", BudgetRange{Min: "65000", Max: "100000"}},
	{"Over $100,000", BudgetRange{Min: "100000", Max: "999999"}},
}

var budgetByKey = func() map[string]BudgetRange {
	m := make(map[string]BudgetRange, len(budgetLabels))
	for _, b := range budgetLabels {
		m[budgetKey(b.label)] = b.rng
	}
	return m
}()

// BudgetLabels lists the canonical labels in ascending order.
func BudgetLabels() []string {
	labels := make([]string, len(budgetLabels))
	for i, b := range budgetLabels {
		labels[i] = b.label
	}
	return labels
}

// ParseBudgetRange maps a legacy budget label to its range. Matching ignores
// whitespace and case, so "$15,000-$35,000" and "$15,000 - $35,000" are the
// same label. Unknown labels map to (0, 0).
func ParseBudgetRange(label string) BudgetRange {
	if r, ok := budgetByKey[budgetKey(label)]; ok {
		return r
	}
	return BudgetRange{Min: "0", Max: "0"}
}

func budgetKey(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), ""))
}
