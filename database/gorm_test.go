package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/craftly-living/backend/errs"
	"github.com/craftly-living/backend/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openSQLite runs the gorm repositories over a throwaway sqlite file with
// the same schema Migrate builds for Postgres.
func openSQLite(t *testing.T) (Database, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "craftly.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return New(db), db
}

func conflictMessage(err error) string {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return ""
}

func TestDatabaseUsers(t *testing.T) {
	ctx := context.Background()
	store, _ := openSQLite(t)

	user, err := store.CreateUser(ctx, models.NewUser{Username: "demo", Password: "hash"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("CreateUser did not assign an id")
	}

	got, err := store.GetUserByUsername(ctx, "demo")
	if err != nil || got.ID != user.ID || got.Password != "hash" {
		t.Fatalf("GetUserByUsername = %+v, %v", got, err)
	}

	_, err = store.CreateUser(ctx, models.NewUser{Username: "demo", Password: "other"})
	if !errs.IsConflict(err) || errs.StatusCode(err) != 400 {
		t.Fatalf("duplicate username = %v, want 400 conflict", err)
	}
	if msg := conflictMessage(err); msg != usernameTakenMessage {
		t.Errorf("conflict message = %q, want %q", msg, usernameTakenMessage)
	}

	_, err = store.GetUser(ctx, 999999)
	if !errs.IsNotFound(err) || errs.StatusCode(err) != 404 {
		t.Fatalf("GetUser(999999) = %v, want 404 not found", err)
	}
	if _, err := store.GetUserByUsername(ctx, "nobody"); !errs.IsNotFound(err) {
		t.Fatalf("GetUserByUsername(nobody) = %v, want not found", err)
	}
}

func TestDatabaseRenovationProjects(t *testing.T) {
	ctx := context.Background()
	store, _ := openSQLite(t)

	for _, name := range []string{"alex", "jordan"} {
		if _, err := store.CreateUser(ctx, models.NewUser{Username: name, Password: "hash"}); err != nil {
			t.Fatalf("CreateUser(%s): %v", name, err)
		}
	}

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
		if p.ID != int64(i+1) || p.CreatedAt.IsZero() {
			t.Errorf("project %d = %+v", i, p)
		}
	}

	all, err := store.GetRenovationProjectsByUser(ctx, nil)
	if err != nil {
		t.Fatalf("GetRenovationProjectsByUser(nil): %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("all projects = %d, want 4", len(all))
	}
	for i, p := range all {
		if p.ID != int64(i+1) {
			t.Errorf("all[%d].ID = %d, want ascending ids", i, p.ID)
		}
	}
	if all[0].BudgetMin == nil || *all[0].BudgetMin != "15000" || *all[0].BudgetMax != "35000" {
		t.Errorf("stored budget = %v-%v, want 15000-35000 as written", all[0].BudgetMin, all[0].BudgetMax)
	}
	if all[1].UserID != nil || all[1].BudgetMin != nil {
		t.Errorf("anonymous project = %+v, want null user and budget", all[1])
	}

	mine, err := store.GetRenovationProjectsByUser(ctx, int64Ptr(1))
	if err != nil {
		t.Fatalf("GetRenovationProjectsByUser(1): %v", err)
	}
	if len(mine) != 2 || mine[0].RenovationType != "kitchen" || mine[1].RenovationType != "bedroom" {
		t.Errorf("user 1 projects = %+v", mine)
	}

	none, err := store.GetRenovationProjectsByUser(ctx, int64Ptr(42))
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("unknown user = %v, %v, want empty non-nil slice", none, err)
	}
}

func TestDatabaseBuilders(t *testing.T) {
	ctx := context.Background()
	store, _ := openSQLite(t)

	created, err := store.CreateBuilder(ctx, builderInput("dup@example.com"))
	if err != nil {
		t.Fatalf("CreateBuilder: %v", err)
	}
	if created.Rating != models.DefaultBuilderRating || created.Verified || created.TotalReviews != 0 {
		t.Errorf("moderation defaults = %+v", created)
	}

	_, err = store.CreateBuilder(ctx, builderInput("dup@example.com"))
	if !errs.IsConflict(err) || errs.StatusCode(err) != 400 {
		t.Fatalf("duplicate email = %v, want 400 conflict", err)
	}
	if msg := conflictMessage(err); msg != builderEmailMessage {
		t.Errorf("conflict message = %q, want %q", msg, builderEmailMessage)
	}

	second, err := store.CreateBuilder(ctx, builderInput("second@example.com"))
	if err != nil {
		t.Fatalf("CreateBuilder(second): %v", err)
	}

	got, err := store.GetBuilder(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetBuilder: %v", err)
	}
	if len(got.Specialties) != 2 || got.Specialties[1] != "Tiling" || got.PortfolioImages == nil {
		t.Errorf("decoded lists = %v / %v", got.Specialties, got.PortfolioImages)
	}
	if got.Rating != "0.0" {
		t.Errorf("rating = %q, want 0.0", got.Rating)
	}

	byEmail, err := store.GetBuilderByEmail(ctx, "second@example.com")
	if err != nil || byEmail.ID != second.ID {
		t.Fatalf("GetBuilderByEmail = %+v, %v", byEmail, err)
	}

	if _, err := store.GetBuilder(ctx, 999999); !errs.IsNotFound(err) || errs.StatusCode(err) != 404 {
		t.Fatalf("GetBuilder(999999) = %v, want 404 not found", err)
	}
	if _, err := store.GetBuilderByEmail(ctx, "nobody@example.com"); !errs.IsNotFound(err) {
		t.Fatalf("GetBuilderByEmail(nobody) = %v, want not found", err)
	}

	all, err := store.GetAllBuilders(ctx)
	if err != nil {
		t.Fatalf("GetAllBuilders: %v", err)
	}
	if len(all) != 2 || all[0].ID != created.ID || all[1].ID != second.ID {
		t.Errorf("all builders = %+v", all)
	}
}

func TestDatabaseMalformedListReadsEmpty(t *testing.T) {
	ctx := context.Background()
	store, db := openSQLite(t)

	created, err := store.CreateBuilder(ctx, builderInput("garbage@example.com"))
	if err != nil {
		t.Fatalf("CreateBuilder: %v", err)
	}
	if err := db.Exec("UPDATE builders SET service_areas = ? WHERE id = ?", "garbage", created.ID).Error; err != nil {
		t.Fatalf("corrupt service_areas: %v", err)
	}

	got, err := store.GetBuilder(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetBuilder: %v", err)
	}
	if got.ServiceAreas == nil || len(got.ServiceAreas) != 0 {
		t.Errorf("service areas = %#v, want empty list", got.ServiceAreas)
	}
	if len(got.Specialties) != 2 {
		t.Errorf("specialties = %v, untouched column should still decode", got.Specialties)
	}
}
