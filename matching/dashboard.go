package matching

import "github.com/craftly-living/backend/models"

// ProjectView is one dashboard card: the stored project plus its display
// budget, match status and matched contractors.
type ProjectView struct {
	models.RenovationProject
	BudgetLabel string       `json:"budgetLabel"`
	Status      string       `json:"status"`
	Matches     []Contractor `json:"matches"`
}

// BuildDashboard keeps the order of projects.
func (m *Matcher) BuildDashboard(projects []*models.RenovationProject) []ProjectView {
	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		if p == nil {
			continue
		}
		matches := m.Match(*p)
		views = append(views, ProjectView{
			RenovationProject: *p,
			BudgetLabel:       FormatBudget(p.BudgetMin, p.BudgetMax),
			Status:            StatusText(matches),
			Matches:           matches,
		})
	}
	return views
}
