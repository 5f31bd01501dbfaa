package onboarding

import "github.com/craftly-living/backend/models"

// Choice is one selectable answer of a single-select step.
type Choice struct {
	Value       string
	Label       string
	Description string
}

// BudgetRange is a budget answer and the bounds submitted for it.
type BudgetRange struct {
	Value string
	Label string
	Min   string
	Max   string
}

func RenovationTypes() []Choice {
	return []Choice{
		{Value: models.RenovationKitchen, Label: "Kitchen"},
		{Value: models.RenovationBathroom, Label: "Bathroom"},
		{Value: models.RenovationBedroom, Label: "Bedroom"},
		{Value: models.RenovationLivingRoom, Label: "Living Room"},
		{Value: models.RenovationFullHome, Label: "Full Home"},
		{Value: models.RenovationOther, Label: "Other"},
	}
}

func BudgetRanges() []BudgetRange {
	return []BudgetRange{
		{Value: "5000-15000", Label: "$5,000 - $15,000", Min: "5000", Max: "15000"},
		{Value: "15000-30000", Label: "$15,000 - $30,000", Min: "15000", Max: "30000"},
		{Value: "30000-50000", Label: "$30,000 - $50,000", Min: "30000", Max: "50000"},
		{Value: "50000-100000", Label: "$50,000 - $100,000", Min: "50000", Max: "100000"},
		{Value: "100000+", Label: "$100,000+", Min: "100000", Max: "500000"},
	}
}

func Styles() []Choice {
	return []Choice{
		{Value: models.StyleModern, Label: "Modern", Description: "Clean lines, minimalist aesthetic"},
		{Value: models.StyleTraditional, Label: "Traditional", Description: "Classic, timeless design"},
		{Value: models.StyleContemporary, Label: "Contemporary", Description: "Current trends, sleek finishes"},
		{Value: models.StyleRustic, Label: "Rustic", Description: "Natural materials, cozy feel"},
		{Value: models.StyleIndustrial, Label: "Industrial", Description: "Raw materials, urban aesthetic"},
		{Value: models.StyleScandinavian, Label: "Scandinavian", Description: "Light colors, functional design"},
	}
}

func Timelines() []Choice {
	return []Choice{
		{Value: models.TimelineASAP, Label: "ASAP", Description: "Start within 2 weeks"},
		{Value: models.TimelineOneToThree, Label: "1-3 Months", Description: "Flexible start date"},
		{Value: models.TimelineThreeToSix, Label: "3-6 Months", Description: "Planning phase"},
		{Value: models.TimelineSixMonthsPlus, Label: "6+ Months", Description: "Future project"},
	}
}

func findChoice(choices []Choice, value string) (Choice, bool) {
	for _, c := range choices {
		if c.Value == value {
			return c, true
		}
	}
	return Choice{}, false
}

func findBudget(value string) (BudgetRange, bool) {
	for _, b := range BudgetRanges() {
		if b.Value == value {
			return b, true
		}
	}
	return BudgetRange{}, false
}
