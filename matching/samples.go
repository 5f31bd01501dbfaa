package matching

import "github.com/craftly-living/backend/models"

// SampleRules is the fixed contractor list shown until real builder matching exists.
func SampleRules() []Rule {
	return []Rule{
		{
			RenovationTypes: []string{models.RenovationKitchen},
			Postcodes:       []string{"2060", "2065", "2070"},
			Contractors: []Contractor{
				{
					ID:           1,
					Name:         "North Shore Kitchen Masters",
					Rating:       4.9,
					Specialties:  []string{"Kitchen", "Modern", "Contemporary"},
					Location:     "North Sydney, NSW",
					PriceRange:   "$30,000 - $70,000",
					ResponseTime: "Within 2 hours",
					Phone:        "+61 2 9234 5678",
					Email:        "hello@northshorekitchens.com.au",
					Image:        "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
				},
				{
					ID:           4,
					Name:         "Harbour City Constructions",
					Rating:       4.6,
					Specialties:  []string{"Kitchen", "Bathroom", "Extension"},
					Location:     "Neutral Bay, North Shore",
					PriceRange:   "$25,000 - $50,000",
					ResponseTime: "Within 3 hours",
					Phone:        "+61 2 9456 7890",
					Email:        "info@harbourcityconstructions.com.au",
					Image:        "https://images.unsplash.com/photo-1519085360753-af0119f7cbe7?w=150&h=150&fit=crop&crop=face",
				},
			},
		},
	}
}
