package onboarding

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/craftly-living/backend/errs"
	"github.com/craftly-living/backend/models"
	"github.com/craftly-living/backend/validation"
)

const (
	BuilderCreatedMessage = "Your builder profile has been created successfully. We'll review your application and contact you soon."
	BuilderFailedMessage  = "Failed to create builder profile. Please try again."
)

// ServiceAreas are the regions a builder can say they cover.
func ServiceAreas() []string {
	return []string{
		"North Sydney",
		"Northern Beaches",
		"Eastern Suburbs",
		"Inner West",
		"Western Sydney",
		"South Sydney",
		"Central Coast",
		"Blue Mountains",
	}
}

func Specialties() []string {
	return []string{
		"Kitchen Renovation",
		"Bathroom Renovation",
		"Home Extensions",
		"Complete Home Renovation",
		"Plumbing",
		"Electrical",
		"Carpentry",
		"Painting",
		"Tiling",
		"Flooring",
		"Roofing",
		"Landscaping",
	}
}

// BuilderSubmitter creates the builder profile. *client.Client satisfies it.
type BuilderSubmitter interface {
	CreateBuilder(ctx context.Context, input models.BuilderInput) (*models.Builder, error)
}

// BuilderForm holds the signup answers as typed. Optional text fields left
// blank are sent as null.
type BuilderForm struct {
	BusinessName     string
	ContactName      string
	Email            string
	Phone            string
	ABN              string
	BusinessAddress  string
	ServiceAreas     []string
	Specialties      []string
	YearsExperience  int
	InsuranceDetails string
	LicenseNumber    string
	WebsiteURL       string
	ProfileImageURL  string
	PortfolioImages  []string
	Description      string
	PriceRangeMin    string
	PriceRangeMax    string
}

// NewBuilderForm returns an empty form with one year of experience, the
// lowest accepted value.
func NewBuilderForm() BuilderForm {
	return BuilderForm{YearsExperience: 1}
}

// Check applies the signup rules and reports every violated field at once.
// The server re-validates the submitted input.
func (f BuilderForm) Check() error {
	var fields []errs.FieldError
	minLength := func(field, value string, n int, message string) {
		if utf8.RuneCountInString(strings.TrimSpace(value)) < n {
			fields = append(fields, errs.FieldError{Field: field, Message: message})
		}
	}

	minLength("businessName", f.BusinessName, 2, "Business name must be at least 2 characters")
	minLength("contactName", f.ContactName, 2, "Contact name must be at least 2 characters")
	if !validation.ValidEmail(strings.TrimSpace(f.Email)) {
		fields = append(fields, errs.FieldError{Field: "email", Message: "Please enter a valid email address"})
	}
	minLength("phone", f.Phone, 10, "Please enter a valid phone number")
	minLength("businessAddress", f.BusinessAddress, 5, "Please enter your business address")
	if len(f.ServiceAreas) == 0 {
		fields = append(fields, errs.FieldError{Field: "serviceAreas", Message: "Please select at least one service area"})
	}
	if len(f.Specialties) == 0 {
		fields = append(fields, errs.FieldError{Field: "specialties", Message: "Please select at least one specialty"})
	}
	if f.YearsExperience < 1 {
		fields = append(fields, errs.FieldError{Field: "yearsExperience", Message: "Years of experience must be at least 1"})
	}
	if site := strings.TrimSpace(f.WebsiteURL); site != "" && !validation.ValidWebURL(site) {
		fields = append(fields, errs.FieldError{Field: "websiteUrl", Message: "Please enter a valid website URL"})
	}
	minLength("description", f.Description, 50, "Description must be at least 50 characters")

	if len(fields) > 0 {
		return errs.NewValidationError("Invalid builder data", fields)
	}
	return nil
}

// Input builds the create payload: text is trimmed, the email lower-cased and
// blank optional fields become nil.
func (f BuilderForm) Input() models.BuilderInput {
	portfolio := f.PortfolioImages
	if portfolio == nil {
		portfolio = []string{}
	}
	optional := func(s string) *string {
		s = strings.TrimSpace(s)
		return models.NullIfEmpty(&s)
	}

	return models.BuilderInput{
		BusinessName:     strings.TrimSpace(f.BusinessName),
		ContactName:      strings.TrimSpace(f.ContactName),
		Email:            strings.ToLower(strings.TrimSpace(f.Email)),
		Phone:            strings.TrimSpace(f.Phone),
		ABN:              optional(f.ABN),
		BusinessAddress:  strings.TrimSpace(f.BusinessAddress),
		ServiceAreas:     append([]string(nil), f.ServiceAreas...),
		Specialties:      append([]string(nil), f.Specialties...),
		YearsExperience:  f.YearsExperience,
		InsuranceDetails: optional(f.InsuranceDetails),
		LicenseNumber:    optional(f.LicenseNumber),
		WebsiteURL:       optional(f.WebsiteURL),
		ProfileImageURL:  optional(f.ProfileImageURL),
		PortfolioImages:  append([]string{}, portfolio...),
		Description:      strings.TrimSpace(f.Description),
		PriceRangeMin:    optional(f.PriceRangeMin),
		PriceRangeMax:    optional(f.PriceRangeMax),
	}
}

// BuilderSignup submits builder forms one at a time.
type BuilderSignup struct {
	submitter BuilderSubmitter

	mu         sync.Mutex
	submitting bool
}

func NewBuilderSignup(submitter BuilderSubmitter) *BuilderSignup {
	return &BuilderSignup{submitter: submitter}
}

func (s *BuilderSignup) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Submit checks form and creates the profile. A call made while another is in
// flight gets ErrSubmitInProgress.
func (s *BuilderSignup) Submit(ctx context.Context, form BuilderForm) (*models.Builder, error) {
	if err := form.Check(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	s.submitting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	return s.submitter.CreateBuilder(ctx, form.Input())
}
