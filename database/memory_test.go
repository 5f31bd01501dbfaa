package database

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/craftly-living/backend/errs"
	"github.com/craftly-living/backend/models"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

func builderInput(email string) models.BuilderInput {
	return models.BuilderInput{
		BusinessName:    "North Shore Kitchens",
		ContactName:     "Sam Builder",
		Email:           email,
		Phone:           "0412345678",
		BusinessAddress: "1 Miller St, North Sydney NSW",
		ServiceAreas:    []string{"North Sydney"},
		Specialties:     []string{"Kitchen Renovation", "Tiling"},
		YearsExperience: 12,
		Description:     "Family-run kitchen specialists covering the lower North Shore since 2010.",
	}
}

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	created, err := store.CreateUser(ctx, models.NewUser{Username: "demo", Password: "hash"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("first user id = %d, want 1", created.ID)
	}

	byID, err := store.GetUser(ctx, created.ID)
	if err != nil || byID.Username != "demo" {
		t.Fatalf("GetUser = %+v, %v", byID, err)
	}
	byName, err := store.GetUserByUsername(ctx, "demo")
	if err != nil || byName.ID != created.ID {
		t.Fatalf("GetUserByUsername = %+v, %v", byName, err)
	}

	if _, err := store.GetUser(ctx, 42); !errs.IsNotFound(err) {
		t.Errorf("GetUser(42) error = %v, want not found", err)
	}
	if _, err := store.GetUserByUsername(ctx, "nobody"); !errs.IsNotFound(err) {
		t.Errorf("GetUserByUsername(nobody) error = %v, want not found", err)
	}

	_, err = store.CreateUser(ctx, models.NewUser{Username: "demo", Password: "other"})
	if !errs.IsConflict(err) || !errs.IsAlreadyExists(err) {
		t.Fatalf("duplicate CreateUser error = %v, want conflict", err)
	}
}

func TestMemoryRenovationProjects(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	inputs := []models.RenovationProjectInput{
		{UserID: int64Ptr(1), RenovationType: "kitchen", Postcode: "2060", BudgetMin: strPtr("15000"), BudgetMax: strPtr("35000"), Style: "modern", Timeline: "asap"},
		{RenovationType: "bathroom", Postcode: "2000", Style: "rustic", Timeline: "3-6_months"},
		{UserID: int64Ptr(1), RenovationType: "bedroom", Postcode: "2065", Style: "traditional", Timeline: "1-3_months", Urgency: strPtr("high")},
		{UserID: int64Ptr(2), RenovationType: "other", Postcode: "2070", Style: "industrial", Timeline: "6+_months"},
	}
	for i, in := range inputs {
		p, err := store.CreateRenovationProject(ctx, in)
		if err != nil {
			t.Fatalf("CreateRenovationProject[%d]: %v", i, err)
		}
		if p.ID != int64(i+1) {
			t.Errorf("project id = %d, want %d", p.ID, i+1)
		}
		if p.CreatedAt.IsZero() || p.CreatedAt.Location().String() != "UTC" {
			t.Errorf("createdAt = %v, want a UTC timestamp", p.CreatedAt)
		}
	}

	all, err := store.GetRenovationProjectsByUser(ctx, nil)
	if err != nil {
		t.Fatalf("GetRenovationProjectsByUser(nil): %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("len(all) = %d, want 4", len(all))
	}
	for i, p := range all {
		if p.ID != int64(i+1) {
			t.Errorf("all[%d].ID = %d, want ascending ids", i, p.ID)
		}
	}

	mine, err := store.GetRenovationProjectsByUser(ctx, int64Ptr(1))
	if err != nil {
		t.Fatalf("GetRenovationProjectsByUser(1): %v", err)
	}
	if len(mine) != 2 || mine[0].ID != 1 || mine[1].ID != 3 {
		t.Fatalf("user 1 projects = %+v, want ids 1 and 3", mine)
	}
	if *mine[0].BudgetMin != "15000" || *mine[0].BudgetMax != "35000" {
		t.Errorf("budget = %s-%s, want 15000-35000", *mine[0].BudgetMin, *mine[0].BudgetMax)
	}

	none, err := store.GetRenovationProjectsByUser(ctx, int64Ptr(99))
	if err != nil {
		t.Fatalf("GetRenovationProjectsByUser(99): %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("unknown user projects = %#v, want empty non-nil slice", none)
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	p, err := store.CreateRenovationProject(ctx, models.RenovationProjectInput{
		RenovationType: "kitchen", Postcode: "2060", Style: "modern", Timeline: "asap", Urgency: strPtr("high"),
	})
	if err != nil {
		t.Fatalf("CreateRenovationProject: %v", err)
	}
	*p.Urgency = "changed"
	p.Postcode = "9999"

	stored, _ := store.GetRenovationProjectsByUser(ctx, nil)
	if stored[0].Postcode != "2060" || *stored[0].Urgency != "high" {
		t.Errorf("stored project mutated through returned pointer: %+v", stored[0])
	}

	b, err := store.CreateBuilder(ctx, builderInput("a@example.com"))
	if err != nil {
		t.Fatalf("CreateBuilder: %v", err)
	}
	b.ServiceAreas[0] = "Nowhere"

	again, _ := store.GetBuilder(ctx, b.ID)
	if again.ServiceAreas[0] != "North Sydney" {
		t.Errorf("stored builder mutated through returned slice: %v", again.ServiceAreas)
	}
}

func TestMemoryBuilders(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	first, err := store.CreateBuilder(ctx, builderInput("hello@northshore.com.au"))
	if err != nil {
		t.Fatalf("CreateBuilder: %v", err)
	}
	if first.ID != 1 || first.Verified || first.Rating != models.DefaultBuilderRating || first.TotalReviews != 0 {
		t.Errorf("defaults not applied: %+v", first)
	}
	if first.PortfolioImages == nil || len(first.PortfolioImages) != 0 {
		t.Errorf("portfolioImages = %#v, want empty list", first.PortfolioImages)
	}
	if !first.CreatedAt.Equal(first.UpdatedAt) {
		t.Errorf("createdAt %v != updatedAt %v", first.CreatedAt, first.UpdatedAt)
	}

	_, err = store.CreateBuilder(ctx, builderInput("hello@northshore.com.au"))
	if !errs.IsConflict(err) {
		t.Fatalf("duplicate email error = %v, want conflict", err)
	}
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) || apiErr.Message() != "Builder with this email already exists" {
		t.Errorf("conflict message = %v", err)
	}

	second, err := store.CreateBuilder(ctx, builderInput("info@harbourcity.com.au"))
	if err != nil {
		t.Fatalf("CreateBuilder(second): %v", err)
	}
	if second.ID != 2 {
		t.Errorf("second id = %d, want 2 (a rejected insert must not consume an id)", second.ID)
	}

	got, err := store.GetBuilderByEmail(ctx, "info@harbourcity.com.au")
	if err != nil || got.ID != second.ID {
		t.Fatalf("GetBuilderByEmail = %+v, %v", got, err)
	}
	if _, err := store.GetBuilderByEmail(ctx, "missing@example.com"); !errs.IsNotFound(err) {
		t.Errorf("GetBuilderByEmail(missing) error = %v, want not found", err)
	}
	if _, err := store.GetBuilder(ctx, 999999); !errs.IsNotFound(err) {
		t.Errorf("GetBuilder(999999) error = %v, want not found", err)
	}

	all, err := store.GetAllBuilders(ctx)
	if err != nil {
		t.Fatalf("GetAllBuilders: %v", err)
	}
	if len(all) != 2 || all[0].ID != 1 || all[1].ID != 2 {
		t.Errorf("GetAllBuilders = %+v, want ids 1, 2", all)
	}
}

func TestMemoryConcurrentDuplicateBuilders(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.CreateBuilder(ctx, builderInput("race@example.com"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errs.IsConflict(err):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 || conflicts != attempts-1 {
		t.Errorf("succeeded=%d conflicts=%d, want exactly one success", succeeded, conflicts)
	}
}

func TestMemoryCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemory().GetAllBuilders(ctx)
	if !errs.IsStorage(err) {
		t.Errorf("error = %v, want storage error", err)
	}
	if errs.StatusCode(err) != 500 {
		t.Errorf("status = %d, want 500", errs.StatusCode(err))
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		check      func(error) bool
	}{
		{"record not found", gorm.ErrRecordNotFound, 404, errs.IsNotFound},
		{"translated duplicate", gorm.ErrDuplicatedKey, 400, errs.IsConflict},
		{"driver duplicate message", errors.New(`ERROR: duplicate key value violates unique constraint "idx_builders_email"`), 400, errs.IsConflict},
		{"connection failure", errors.New("failed to connect: connection refused"), 500, errs.IsStorage},
		{"anything else", errors.New("syntax error at or near"), 500, errs.IsStorage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err, "create", "Builder", builderEmailMessage)
			if !tt.check(got) {
				t.Errorf("translate(%v) = %v, wrong class", tt.err, got)
			}
			if errs.StatusCode(got) != tt.wantStatus {
				t.Errorf("status = %d, want %d", errs.StatusCode(got), tt.wantStatus)
			}
			if tt.wantStatus == 400 {
				var apiErr *errs.ApiErr
				if errors.As(got, &apiErr) && apiErr.Message() != builderEmailMessage {
					t.Errorf("message = %q, want %q", apiErr.Message(), builderEmailMessage)
				}
			}
		})
	}

	if translate(nil, "find", "Builder", "") != nil {
		t.Error("translate(nil) should be nil")
	}
}
