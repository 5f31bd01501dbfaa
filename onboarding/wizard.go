// Package onboarding drives the five-step homeowner onboarding flow: renovation
// type, postcode, budget, style and timeline. Steps are strictly linear. The
// final step submits the composed project through a Submitter.
package onboarding

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/craftly-living/backend/errs"
	"github.com/craftly-living/backend/models"
)

type Step int

const (
	StepRenovationType Step = iota + 1
	StepPostcode
	StepBudget
	StepStyle
	StepTimeline
)

const TotalSteps = int(StepTimeline)

func (s Step) String() string {
	switch s {
	case StepRenovationType:
		return "renovation type"
	case StepPostcode:
		return "postcode"
	case StepBudget:
		return "budget"
	case StepStyle:
		return "style"
	case StepTimeline:
		return "timeline"
	}
	return "unknown"
}

var (
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	ErrNotFinalStep     = errors.New("submit is only available on the final step")
	ErrFinalStep        = errors.New("already on the final step, submit instead")
)

// Submitter creates the project. *client.Client satisfies it.
type Submitter interface {
	CreateRenovationProject(ctx context.Context, input models.RenovationProjectInput) (*models.RenovationProject, error)
}

// Answers are the raw values collected so far. Budget holds a BudgetRange value.
type Answers struct {
	RenovationType  string
	Postcode        string
	Budget          string
	Style           string
	Timeline        string
	Urgency         string
	AdditionalNotes string
}

// Wizard is safe for concurrent use. Nothing is persisted; a new Wizard starts
// empty on step 1.
type Wizard struct {
	submitter Submitter
	userID    *int64

	mu         sync.Mutex
	step       Step
	answers    Answers
	submitting bool
}

// NewWizard returns a wizard whose submissions are attributed to userID, or to
// no user when userID is nil.
func NewWizard(submitter Submitter, userID *int64) *Wizard {
	var owner *int64
	if userID != nil {
		id := *userID
		owner = &id
	}
	return &Wizard{submitter: submitter, userID: owner, step: StepRenovationType}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Progress is the completion percentage shown alongside the step number.
func (w *Wizard) Progress() int {
	return int(w.Step()) * 100 / TotalSteps
}

func (w *Wizard) Answers() Answers {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.answers
}

func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// Update applies fn to the collected answers. Answers can change at any step;
// they are validated on Next and Submit.
func (w *Wizard) Update(fn func(*Answers)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(&w.answers)
}

// Next advances one step when the current step is complete. On the final step
// it returns ErrFinalStep.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step == StepTimeline {
		return ErrFinalStep
	}
	if fields := checkStep(w.step, w.answers); len(fields) > 0 {
		return errs.NewValidationError("Step "+w.step.String()+" is incomplete", fields)
	}
	w.step++
	return nil
}

// Previous goes back one step without validation. It is a no-op on step 1.
func (w *Wizard) Previous() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step > StepRenovationType {
		w.step--
	}
}

// Reset clears every answer and returns to step 1.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.step = StepRenovationType
	w.answers = Answers{}
}

// Submit validates every step, composes the project and sends it. Only one
// submission runs at a time; a concurrent call gets ErrSubmitInProgress. The
// request is bounded only by ctx.
func (w *Wizard) Submit(ctx context.Context) (*models.RenovationProject, error) {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if w.step != StepTimeline {
		w.mu.Unlock()
		return nil, ErrNotFinalStep
	}
	var fields []errs.FieldError
	for step := StepRenovationType; step <= StepTimeline; step++ {
		fields = append(fields, checkStep(step, w.answers)...)
	}
	if len(fields) > 0 {
		w.mu.Unlock()
		return nil, errs.NewValidationError("Invalid project data", fields)
	}
	input := w.compose()
	w.submitting = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.submitting = false
		w.mu.Unlock()
	}()

	return w.submitter.CreateRenovationProject(ctx, input)
}

// compose must be called with mu held.
func (w *Wizard) compose() models.RenovationProjectInput {
	a := w.answers
	input := models.RenovationProjectInput{
		RenovationType:  a.RenovationType,
		Postcode:        strings.TrimSpace(a.Postcode),
		Style:           a.Style,
		Timeline:        a.Timeline,
		Urgency:         models.NullIfEmpty(&a.Urgency),
		AdditionalNotes: models.NullIfEmpty(&a.AdditionalNotes),
	}
	if budget, ok := findBudget(a.Budget); ok {
		input.BudgetMin = &budget.Min
		input.BudgetMax = &budget.Max
	}
	if w.userID != nil {
		id := *w.userID
		input.UserID = &id
	}
	return input
}

func checkStep(step Step, a Answers) []errs.FieldError {
	switch step {
	case StepRenovationType:
		if _, ok := findChoice(RenovationTypes(), a.RenovationType); !ok {
			return []errs.FieldError{{Field: "renovationType", Message: "Please select a renovation type"}}
		}
	case StepPostcode:
		if strings.TrimSpace(a.Postcode) == "" {
			return []errs.FieldError{{Field: "postcode", Message: "Please enter your postcode"}}
		}
	case StepBudget:
		if _, ok := findBudget(a.Budget); a.Budget != "" && !ok {
			return []errs.FieldError{{Field: "budget", Message: "Please select a budget range"}}
		}
	case StepStyle:
		if _, ok := findChoice(Styles(), a.Style); !ok {
			return []errs.FieldError{{Field: "style", Message: "Please select a style"}}
		}
	case StepTimeline:
		if _, ok := findChoice(Timelines(), a.Timeline); !ok {
			return []errs.FieldError{{Field: "timeline", Message: "Please select a timeline"}}
		}
	}
	return nil
}
