package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/craftly-living/backend/client"
	"github.com/craftly-living/backend/errs"
	"github.com/craftly-living/backend/models"
	"github.com/craftly-living/backend/onboarding"
)

func builder(ctx context.Context, p prompter, c *client.Client, args []string) error {
	if len(args) > 0 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid builder id %q", args[0])
		}
		b, err := c.GetBuilder(ctx, id)
		if err != nil {
			return fmt.Errorf("load builder %d: %w", id, err)
		}
		printBuilderProfile(p.out, b)
		return nil
	}

	b, err := runBuilderSignup(ctx, p, onboarding.NewBuilderSignup(c))
	if err != nil {
		return err
	}
	printBuilderProfile(p.out, b)
	return nil
}

type builderQuestion struct {
	field   string
	prompt  string
	options []string
	set     func(f *onboarding.BuilderForm, answer string) error
}

func builderQuestions() []builderQuestion {
	text := func(field, prompt string, set func(*onboarding.BuilderForm, string)) builderQuestion {
		return builderQuestion{field: field, prompt: prompt, set: func(f *onboarding.BuilderForm, answer string) error {
			set(f, answer)
			return nil
		}}
	}
	areas, specialties := onboarding.ServiceAreas(), onboarding.Specialties()

	return []builderQuestion{
		text("businessName", "Business name: ", func(f *onboarding.BuilderForm, v string) { f.BusinessName = v }),
		text("contactName", "Contact name: ", func(f *onboarding.BuilderForm, v string) { f.ContactName = v }),
		text("email", "Email: ", func(f *onboarding.BuilderForm, v string) { f.Email = v }),
		text("phone", "Phone: ", func(f *onboarding.BuilderForm, v string) { f.Phone = v }),
		text("abn", "ABN (optional): ", func(f *onboarding.BuilderForm, v string) { f.ABN = v }),
		text("businessAddress", "Business address: ", func(f *onboarding.BuilderForm, v string) { f.BusinessAddress = v }),
		{
			field:   "serviceAreas",
			prompt:  "Service areas, numbers separated by commas: ",
			options: areas,
			set: func(f *onboarding.BuilderForm, answer string) error {
				picked, err := pickMany(answer, areas)
				f.ServiceAreas = picked
				return err
			},
		},
		{
			field:   "specialties",
			prompt:  "Specialties, numbers separated by commas: ",
			options: specialties,
			set: func(f *onboarding.BuilderForm, answer string) error {
				picked, err := pickMany(answer, specialties)
				f.Specialties = picked
				return err
			},
		},
		{
			field:  "yearsExperience",
			prompt: "Years of experience: ",
			set: func(f *onboarding.BuilderForm, answer string) error {
				years, err := strconv.Atoi(answer)
				if err != nil {
					return errors.New("Please enter a whole number of years")
				}
				f.YearsExperience = years
				return nil
			},
		},
		text("licenseNumber", "License number (optional): ", func(f *onboarding.BuilderForm, v string) { f.LicenseNumber = v }),
		text("insuranceDetails", "Insurance details (optional): ", func(f *onboarding.BuilderForm, v string) { f.InsuranceDetails = v }),
		text("websiteUrl", "Website (optional): ", func(f *onboarding.BuilderForm, v string) { f.WebsiteURL = v }),
		text("description", "Describe your business (at least 50 characters): ", func(f *onboarding.BuilderForm, v string) { f.Description = v }),
		text("priceRangeMin", "Typical minimum job price (optional): ", func(f *onboarding.BuilderForm, v string) { f.PriceRangeMin = v }),
		text("priceRangeMax", "Typical maximum job price (optional): ", func(f *onboarding.BuilderForm, v string) { f.PriceRangeMax = v }),
	}
}

// runBuilderSignup asks every signup question, repeating one until its answer
// passes the form rules, then submits the profile.
func runBuilderSignup(ctx context.Context, p prompter, s *onboarding.BuilderSignup) (*models.Builder, error) {
	fmt.Fprintln(p.out, "\n🔨 Join Craftly Living as a builder")

	form := onboarding.NewBuilderForm()
	for _, q := range builderQuestions() {
		if err := askBuilderQuestion(p, &form, q); err != nil {
			return nil, err
		}
	}

	fmt.Fprintln(p.out, "\n⏳ Creating your builder profile...")
	b, err := s.Submit(ctx, form)
	if err != nil {
		var apiErr *client.Error
		if !errors.As(err, &apiErr) && !errs.IsValidation(err) {
			fmt.Fprintf(p.out, "⚠️  %s\n", onboarding.BuilderFailedMessage)
		}
		printStepError(p.out, err)
		return nil, fmt.Errorf("create builder profile: %w", err)
	}
	fmt.Fprintf(p.out, "✅ %s\n", onboarding.BuilderCreatedMessage)
	return b, nil
}

func askBuilderQuestion(p prompter, form *onboarding.BuilderForm, q builderQuestion) error {
	if len(q.options) > 0 {
		fmt.Fprintln(p.out)
		for i, option := range q.options {
			fmt.Fprintf(p.out, "  %d) %s\n", i+1, option)
		}
	}
	for {
		answer, err := p.ask(q.prompt)
		if err != nil {
			return err
		}
		if err := q.set(form, answer); err != nil {
			fmt.Fprintf(p.out, "⚠️  %v\n", err)
			continue
		}
		if msg := fieldMessage(form.Check(), q.field); msg != "" {
			fmt.Fprintf(p.out, "⚠️  %s\n", msg)
			continue
		}
		return nil
	}
}

// pickMany turns "1, 3" into the matching options. A blank answer picks none.
func pickMany(answer string, options []string) ([]string, error) {
	var picked []string
	seen := map[int]bool{}
	for _, part := range strings.Split(answer, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > len(options) {
			return nil, errors.New("Please enter one of the listed numbers.")
		}
		if !seen[n] {
			seen[n] = true
			picked = append(picked, options[n-1])
		}
	}
	return picked, nil
}

func fieldMessage(err error, field string) string {
	for _, f := range errs.ValidationFields(err) {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

func printBuilderProfile(out io.Writer, b *models.Builder) {
	rating, err := strconv.ParseFloat(b.Rating, 64)
	if err != nil {
		rating = 0
	}
	status := "pending verification"
	if b.Verified {
		status = "verified"
	}

	fmt.Fprintf(out, "\n🏗️  %s (#%d)\n", b.BusinessName, b.ID)
	fmt.Fprintf(out, "   %s · ⭐ %.1f (%d reviews) · %s\n", b.ContactName, rating, b.TotalReviews, status)
	fmt.Fprintf(out, "   📧 %s  📞 %s\n", b.Email, b.Phone)
	fmt.Fprintf(out, "   📍 %s\n", b.BusinessAddress)
	fmt.Fprintf(out, "   %d years in the industry\n", b.YearsExperience)
	fmt.Fprintf(out, "   Specialties: %s\n", strings.Join(b.Specialties, ", "))
	fmt.Fprintf(out, "   Service areas: %s\n", strings.Join(b.ServiceAreas, ", "))
}
