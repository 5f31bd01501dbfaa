package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/craftly-living/backend/errs"
	"github.com/craftly-living/backend/models"
	"github.com/craftly-living/backend/validation"
)

type builderRecorder struct {
	inputs []models.BuilderInput
	err    error
}

func (r *builderRecorder) CreateBuilder(_ context.Context, in models.BuilderInput) (*models.Builder, error) {
	r.inputs = append(r.inputs, in)
	if r.err != nil {
		return nil, r.err
	}
	b := in.Record()
	b.ID = 3
	return &b, nil
}

type blockingBuilderSubmitter struct {
	entered chan struct{}
	release chan struct{}
}

func (s *blockingBuilderSubmitter) CreateBuilder(_ context.Context, in models.BuilderInput) (*models.Builder, error) {
	s.entered <- struct{}{}
	<-s.release
	b := in.Record()
	return &b, nil
}

func completeBuilderForm() BuilderForm {
	f := NewBuilderForm()
	f.BusinessName = "Harbour City Constructions"
	f.ContactName = "Sam Lee"
	f.Email = "  Sam@HarbourCity.example.com "
	f.Phone = "0294567890"
	f.ABN = "   "
	f.BusinessAddress = "1 Military Rd, Neutral Bay NSW"
	f.ServiceAreas = []string{"North Sydney", "Northern Beaches"}
	f.Specialties = []string{"Kitchen Renovation"}
	f.YearsExperience = 12
	f.Description = "Quality kitchens and bathrooms across the lower North Shore since 2012."
	f.PriceRangeMin = "20000"
	return f
}

func TestBuilderOptionLists(t *testing.T) {
	if got := len(ServiceAreas()); got != 8 {
		t.Errorf("service areas = %d, want 8", got)
	}
	specialties := Specialties()
	if len(specialties) != 12 || specialties[0] != "Kitchen Renovation" || specialties[11] != "Landscaping" {
		t.Errorf("specialties = %v", specialties)
	}
}

func TestBuilderFormCheck(t *testing.T) {
	if err := completeBuilderForm().Check(); err != nil {
		t.Fatalf("complete form rejected: %v", err)
	}

	tests := []struct {
		name  string
		edit  func(*BuilderForm)
		field string
	}{
		{"short business name", func(f *BuilderForm) { f.BusinessName = "A" }, "businessName"},
		{"short contact name", func(f *BuilderForm) { f.ContactName = " B " }, "contactName"},
		{"bad email", func(f *BuilderForm) { f.Email = "sam at example" }, "email"},
		{"short phone", func(f *BuilderForm) { f.Phone = "12345" }, "phone"},
		{"short address", func(f *BuilderForm) { f.BusinessAddress = "1 St" }, "businessAddress"},
		{"no service area", func(f *BuilderForm) { f.ServiceAreas = nil }, "serviceAreas"},
		{"no specialty", func(f *BuilderForm) { f.Specialties = []string{} }, "specialties"},
		{"no experience", func(f *BuilderForm) { f.YearsExperience = 0 }, "yearsExperience"},
		{"bad website", func(f *BuilderForm) { f.WebsiteURL = "harbourcity" }, "websiteUrl"},
		{"short description", func(f *BuilderForm) { f.Description = "We build things." }, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := completeBuilderForm()
			tt.edit(&f)
			err := f.Check()
			fields := errs.ValidationFields(err)
			if len(fields) != 1 || fields[0].Field != tt.field {
				t.Fatalf("Check() fields = %+v, want only %s", fields, tt.field)
			}
		})
	}

	empty := NewBuilderForm().Check()
	if got := len(errs.ValidationFields(empty)); got != 8 {
		t.Errorf("empty form reported %d fields, want 8: %+v", got, errs.ValidationFields(empty))
	}
}

func TestBuilderFormInputPassesServerValidation(t *testing.T) {
	in := completeBuilderForm().Input()
	if in.Email != "sam@harbourcity.example.com" {
		t.Errorf("email = %q, want trimmed and lower-cased", in.Email)
	}
	if in.ABN != nil || in.WebsiteURL != nil || in.PriceRangeMax != nil {
		t.Errorf("blank optionals not nil: %+v", in)
	}
	if in.PriceRangeMin == nil || *in.PriceRangeMin != "20000" {
		t.Errorf("priceRangeMin = %v", in.PriceRangeMin)
	}
	if in.PortfolioImages == nil {
		t.Error("portfolioImages should be an empty list")
	}

	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := validation.ValidateBuilderInput(context.Background(), raw); err != nil {
		t.Fatalf("server rejected the composed input: %v", err)
	}
}

func TestBuilderSignupSubmit(t *testing.T) {
	rec := &builderRecorder{}
	s := NewBuilderSignup(rec)

	bad := completeBuilderForm()
	bad.Description = ""
	if _, err := s.Submit(context.Background(), bad); !errs.IsValidation(err) {
		t.Fatalf("Submit(invalid) = %v, want validation error", err)
	}
	if len(rec.inputs) != 0 {
		t.Fatal("invalid form reached the submitter")
	}

	b, err := s.Submit(context.Background(), completeBuilderForm())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if b.ID != 3 || b.Rating != models.DefaultBuilderRating || len(rec.inputs) != 1 {
		t.Errorf("builder = %+v, inputs = %d", b, len(rec.inputs))
	}

	rec.err = errs.NewAlreadyExists("Builder", "Builder with this email already exists")
	if _, err := s.Submit(context.Background(), completeBuilderForm()); !errs.IsConflict(err) {
		t.Errorf("Submit(duplicate) = %v, want the submitter's conflict", err)
	}
	if s.Submitting() {
		t.Error("submitting flag left set after a failed submit")
	}
}

func TestBuilderSignupRejectsConcurrentSubmit(t *testing.T) {
	sub := &blockingBuilderSubmitter{entered: make(chan struct{}), release: make(chan struct{})}
	s := NewBuilderSignup(sub)

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), completeBuilderForm())
		done <- err
	}()

	<-sub.entered
	if !s.Submitting() {
		t.Error("submitting flag not set during the request")
	}
	if _, err := s.Submit(context.Background(), completeBuilderForm()); !errors.Is(err, ErrSubmitInProgress) {
		t.Errorf("second Submit = %v, want ErrSubmitInProgress", err)
	}

	close(sub.release)
	if err := <-done; err != nil {
		t.Fatalf("first Submit: %v", err)
	}
}
