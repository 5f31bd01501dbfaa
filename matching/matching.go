// Package matching pairs renovation projects with contractors from a fixed
// sample list and shapes the per-user dashboard. Matching is plain equality on
// renovation type plus postcode membership; there is no ranking.
package matching

import (
	"strconv"
	"strings"

	"github.com/craftly-living/backend/models"
	"github.com/dustin/go-humanize"
)

const (
	StatusMatched   = "Matches Found"
	StatusSearching = "Finding Matches"

	budgetNotSpecified = "Budget not specified"
)

type Contractor struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Rating       float64  `json:"rating"`
	Specialties  []string `json:"specialties"`
	Location     string   `json:"location"`
	PriceRange   string   `json:"priceRange"`
	ResponseTime string   `json:"responseTime"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	Image        string   `json:"image"`
}

// Rule offers Contractors to projects whose renovation type is in
// RenovationTypes and whose postcode is in Postcodes.
type Rule struct {
	RenovationTypes []string
	Postcodes       []string
	Contractors     []Contractor
}

func (r Rule) matches(project models.RenovationProject) bool {
	return contains(r.RenovationTypes, project.RenovationType) && contains(r.Postcodes, project.Postcode)
}

type Matcher struct {
	rules []Rule
}

func NewMatcher(rules ...Rule) *Matcher {
	return &Matcher{rules: rules}
}

// NewSampleMatcher returns a Matcher over the built-in North Shore sample contractors.
func NewSampleMatcher() *Matcher {
	return NewMatcher(SampleRules()...)
}

// Match returns the contractors of every rule the project satisfies, in rule
// order. A contractor offered by more than one rule appears once.
func (m *Matcher) Match(project models.RenovationProject) []Contractor {
	matches := []Contractor{}
	seen := map[int64]bool{}
	for _, rule := range m.rules {
		if !rule.matches(project) {
			continue
		}
		for _, c := range rule.Contractors {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			matches = append(matches, c)
		}
	}
	return matches
}

func StatusText(matches []Contractor) string {
	if len(matches) > 0 {
		return StatusMatched
	}
	return StatusSearching
}

// FormatBudget renders a stored budget pair as "$15,000 - $35,000". Cents are
// dropped. Either bound missing gives "Budget not specified".
func FormatBudget(min, max *string) string {
	if min == nil || max == nil || *min == "" || *max == "" {
		return budgetNotSpecified
	}
	lo, ok := wholeDollars(*min)
	if !ok {
		return budgetNotSpecified
	}
	hi, ok := wholeDollars(*max)
	if !ok {
		return budgetNotSpecified
	}
	return "$" + humanize.Comma(lo) + " - $" + humanize.Comma(hi)
}

func wholeDollars(decimal string) (int64, bool) {
	whole, _, _ := strings.Cut(strings.TrimSpace(decimal), ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
