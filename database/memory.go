package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/craftly-living/backend/errs"
	"github.com/craftly-living/backend/models"
)

// Memory is a process-local Storage used by tests and by tooling that runs
// without Postgres. It mirrors the gorm backend: sequential ids from 1, UTC
// timestamps, unique usernames and builder emails. Callers never share memory
// with the store; records are copied on the way in and out.
type Memory struct {
	mu sync.RWMutex

	users    map[int64]models.User
	projects map[int64]models.RenovationProject
	builders map[int64]models.Builder

	usernames     map[string]int64
	builderEmails map[string]int64

	nextUserID    int64
	nextProjectID int64
	nextBuilderID int64

	now func() time.Time
}

var _ Storage = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		users:         map[int64]models.User{},
		projects:      map[int64]models.RenovationProject{},
		builders:      map[int64]models.Builder{},
		usernames:     map[string]int64{},
		builderEmails: map[string]int64{},
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (m *Memory) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageError("find", "User", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, errs.NewNotFound("User")
	}
	return &user, nil
}

func (m *Memory) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageError("find", "User", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.usernames[username]
	if !ok {
		return nil, errs.NewNotFound("User")
	}
	user := m.users[id]
	return &user, nil
}

func (m *Memory) CreateUser(ctx context.Context, input models.NewUser) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageError("create", "User", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.usernames[input.Username]; taken {
		return nil, errs.NewAlreadyExists("User", usernameTakenMessage)
	}

	m.nextUserID++
	user := models.User{ID: m.nextUserID, Username: input.Username, Password: input.Password}
	m.users[user.ID] = user
	m.usernames[user.Username] = user.ID
	return &user, nil
}

func (m *Memory) CreateRenovationProject(ctx context.Context, input models.RenovationProjectInput) (*models.RenovationProject, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageError("create", "renovation project", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextProjectID++
	project := copyProject(input.Record())
	project.ID = m.nextProjectID
	project.CreatedAt = m.now()
	m.projects[project.ID] = project

	out := copyProject(project)
	return &out, nil
}

func (m *Memory) GetRenovationProjectsByUser(ctx context.Context, userID *int64) ([]*models.RenovationProject, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageError("find", "renovation projects", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	projects := []*models.RenovationProject{}
	for _, p := range m.projects {
		if userID != nil && (p.UserID == nil || *p.UserID != *userID) {
			continue
		}
		project := copyProject(p)
		projects = append(projects, &project)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects, nil
}

func (m *Memory) CreateBuilder(ctx context.Context, input models.BuilderInput) (*models.Builder, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageError("create", "Builder", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.builderEmails[input.Email]; taken {
		return nil, errs.NewAlreadyExists("Builder", builderEmailMessage)
	}

	m.nextBuilderID++
	builder := copyBuilder(input.Record())
	builder.ID = m.nextBuilderID
	builder.CreatedAt = m.now()
	builder.UpdatedAt = builder.CreatedAt
	m.builders[builder.ID] = builder
	m.builderEmails[builder.Email] = builder.ID

	out := copyBuilder(builder)
	return &out, nil
}

func (m *Memory) GetBuilder(ctx context.Context, id int64) (*models.Builder, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageError("find", "Builder", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	builder, ok := m.builders[id]
	if !ok {
		return nil, errs.NewNotFound("Builder")
	}
	out := copyBuilder(builder)
	return &out, nil
}

func (m *Memory) GetBuilderByEmail(ctx context.Context, email string) (*models.Builder, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageError("find", "Builder", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.builderEmails[email]
	if !ok {
		return nil, errs.NewNotFound("Builder")
	}
	out := copyBuilder(m.builders[id])
	return &out, nil
}

func (m *Memory) GetAllBuilders(ctx context.Context) ([]*models.Builder, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStorageError("find", "builders", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	builders := make([]*models.Builder, 0, len(m.builders))
	for _, b := range m.builders {
		builder := copyBuilder(b)
		builders = append(builders, &builder)
	}
	sort.Slice(builders, func(i, j int) bool { return builders[i].ID < builders[j].ID })
	return builders, nil
}

func copyProject(p models.RenovationProject) models.RenovationProject {
	p.UserID = copyPtr(p.UserID)
	p.BudgetMin = copyPtr(p.BudgetMin)
	p.BudgetMax = copyPtr(p.BudgetMax)
	p.Urgency = copyPtr(p.Urgency)
	p.AdditionalNotes = copyPtr(p.AdditionalNotes)
	p.User = nil
	return p
}

func copyBuilder(b models.Builder) models.Builder {
	b.ABN = copyPtr(b.ABN)
	b.InsuranceDetails = copyPtr(b.InsuranceDetails)
	b.LicenseNumber = copyPtr(b.LicenseNumber)
	b.WebsiteURL = copyPtr(b.WebsiteURL)
	b.ProfileImageURL = copyPtr(b.ProfileImageURL)
	b.PriceRangeMin = copyPtr(b.PriceRangeMin)
	b.PriceRangeMax = copyPtr(b.PriceRangeMax)
	b.ServiceAreas = models.NewEncodedList(b.ServiceAreas)
	b.Specialties = models.NewEncodedList(b.Specialties)
	b.PortfolioImages = models.NewEncodedList(b.PortfolioImages)
	return b
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
