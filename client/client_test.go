package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/craftly-living/backend/api"
	"github.com/craftly-living/backend/database"
	"github.com/craftly-living/backend/models"
)

func strPtr(s string) *string { return &s }

func newTestClient(t *testing.T) (*Client, *database.Memory) {
	t.Helper()
	store := database.NewMemory()
	srv := httptest.NewServer(api.NewRouter(store))

	c, err := New(srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		c.Close()
		srv.Close()
	})
	return c, store
}

func builderInput(email string) models.BuilderInput {
	return models.BuilderInput{
		BusinessName:    "Harbour City Constructions",
		ContactName:     "Alex Chen",
		Email:           email,
		Phone:           "+61 2 9456 7890",
		BusinessAddress: "12 Military Rd, Neutral Bay NSW 2089",
		ServiceAreas:    []string{"North Sydney"},
		Specialties:     []string{"Kitchen Renovation", "Bathroom Renovation"},
		YearsExperience: 8,
		Description:     "Kitchen, bathroom and extension work across the North Shore and Inner West.",
		PriceRangeMin:   strPtr("25000"),
		PriceRangeMax:   strPtr("50000"),
	}
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	if _, err := New("not a url", nil); err == nil {
		t.Fatal("expected an error for an invalid base url")
	}
}

func TestProjects(t *testing.T) {
	ctx := context.Background()
	c, store := newTestClient(t)
	if _, err := store.CreateUser(ctx, models.NewUser{Username: "demo", Password: "hash"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	userID := int64(1)
	created, err := c.CreateRenovationProject(ctx, models.RenovationProjectInput{
		UserID:         &userID,
		RenovationType: "kitchen",
		Postcode:       "2070",
		BudgetMin:      strPtr("35000"),
		BudgetMax:      strPtr("65000"),
		Style:          "contemporary",
		Timeline:       "1-3_months",
	})
	if err != nil {
		t.Fatalf("CreateRenovationProject: %v", err)
	}
	if created.ID != 1 || *created.BudgetMax != "65000" {
		t.Errorf("created = %+v", created)
	}

	all, err := c.ListRenovationProjects(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("ListRenovationProjects = %v, %v", all, err)
	}
	mine, err := c.UserRenovationProjects(ctx, userID)
	if err != nil || len(mine) != 1 {
		t.Fatalf("UserRenovationProjects = %v, %v", mine, err)
	}

	views, err := c.Dashboard(ctx, userID)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if len(views) != 1 || views[0].Status != "Matches Found" || views[0].BudgetLabel != "$35,000 - $65,000" {
		t.Errorf("views = %+v", views)
	}
}

func TestValidationErrorsAreTyped(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.CreateRenovationProject(context.Background(), models.RenovationProjectInput{RenovationType: "kitchen"})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "Invalid project data" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if apiErr.Field("postcode") == "" {
		t.Errorf("details %+v missing postcode", apiErr.Details)
	}
}

func TestBuilders(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	created, err := c.CreateBuilder(ctx, builderInput("Info@HarbourCity.com.au"))
	if err != nil {
		t.Fatalf("CreateBuilder: %v", err)
	}
	if created.Email != "info@harbourcity.com.au" {
		t.Errorf("email = %q", created.Email)
	}

	_, err = c.CreateBuilder(ctx, builderInput("info@harbourcity.com.au"))
	if !IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("duplicate error = %v, want 400", err)
	}

	got, err := c.GetBuilder(ctx, created.ID)
	if err != nil || got.BusinessName != "Harbour City Constructions" {
		t.Fatalf("GetBuilder = %+v, %v", got, err)
	}
	if _, err := c.GetBuilder(ctx, 999999); !IsStatus(err, http.StatusNotFound) {
		t.Errorf("GetBuilder(999999) error = %v, want 404", err)
	}

	found, err := c.FindBuilderByEmail(ctx, "info@harbourcity.com.au")
	if err != nil || found == nil || found.ID != created.ID {
		t.Fatalf("FindBuilderByEmail = %+v, %v", found, err)
	}
	missing, err := c.FindBuilderByEmail(ctx, "nobody@example.com")
	if err != nil || missing != nil {
		t.Errorf("FindBuilderByEmail(missing) = %+v, %v", missing, err)
	}

	list, err := c.ListBuilders(ctx)
	if err != nil || len(list) != 1 {
		t.Errorf("ListBuilders = %v, %v", list, err)
	}
}

func TestHealth(t *testing.T) {
	c, _ := newTestClient(t)
	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}

func TestErrorWithoutJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := New(srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	err = c.Health(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadGateway || apiErr.Message != "Bad Gateway" {
		t.Errorf("error = %#v", err)
	}
}
