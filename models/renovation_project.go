package models

import (
	"strings"
	"time"
)

// RenovationProject is a homeowner's submitted renovation request. Budget
// bounds are kept as the validated decimal text, so reads return exactly the
// string that was written.
type RenovationProject struct {
	ID              int64     `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement"`
	UserID          *int64    `json:"userId" db:"user_id" gorm:"column:user_id;index:idx_renovation_projects_user_id"`
	RenovationType  string    `json:"renovationType" db:"renovation_type" gorm:"column:renovation_type;type:text;not null"`
	Postcode        string    `json:"postcode" db:"postcode" gorm:"column:postcode;type:text;not null"`
	BudgetMin       *string   `json:"budgetMin" db:"budget_min" gorm:"column:budget_min;type:text"`
	BudgetMax       *string   `json:"budgetMax" db:"budget_max" gorm:"column:budget_max;type:text"`
	Style           string    `json:"style" db:"style" gorm:"column:style;type:text;not null"`
	Timeline        string    `json:"timeline" db:"timeline" gorm:"column:timeline;type:text;not null"`
	Urgency         *string   `json:"urgency" db:"urgency" gorm:"column:urgency;type:text"`
	AdditionalNotes *string   `json:"additionalNotes" db:"additional_notes" gorm:"column:additional_notes;type:text"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at" gorm:"column:created_at;not null;autoCreateTime"`

	User *User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:SET NULL"`
}

func (RenovationProject) TableName() string {
	return "renovation_projects"
}

// RenovationProjectInput is the validated, normalized create input. Every
// optional field is nil rather than empty.
type RenovationProjectInput struct {
	UserID          *int64  `json:"userId,omitempty"`
	RenovationType  string  `json:"renovationType"`
	Postcode        string  `json:"postcode"`
	BudgetMin       *string `json:"budgetMin,omitempty"`
	BudgetMax       *string `json:"budgetMax,omitempty"`
	Style           string  `json:"style"`
	Timeline        string  `json:"timeline"`
	Urgency         *string `json:"urgency,omitempty"`
	AdditionalNotes *string `json:"additionalNotes,omitempty"`
}

// Record builds the row to insert. ID and CreatedAt are left to the backend.
func (in RenovationProjectInput) Record() RenovationProject {
	return RenovationProject{
		UserID:          in.UserID,
		RenovationType:  in.RenovationType,
		Postcode:        in.Postcode,
		BudgetMin:       in.BudgetMin,
		BudgetMax:       in.BudgetMax,
		Style:           in.Style,
		Timeline:        in.Timeline,
		Urgency:         in.Urgency,
		AdditionalNotes: in.AdditionalNotes,
	}
}

// ProjectForm is the payload accepted by the create endpoint. It may carry
// either an explicit budget pair or a legacy Budget label.
type ProjectForm struct {
	RenovationType  string  `json:"renovationType"`
	Postcode        string  `json:"postcode"`
	Budget          *string `json:"budget"`
	BudgetMin       *string `json:"budgetMin"`
	BudgetMax       *string `json:"budgetMax"`
	Style           string  `json:"style"`
	Timeline        string  `json:"timeline"`
	Urgency         *string `json:"urgency"`
	AdditionalNotes *string `json:"additionalNotes"`
	UserID          *int64  `json:"userId"`
}

// Input resolves the form into a create input: the budget label is parsed only
// when neither explicit bound is given, userId is kept only when positive and
// empty optional strings become nil.
func (f ProjectForm) Input() RenovationProjectInput {
	budgetMin := NullIfEmpty(f.BudgetMin)
	budgetMax := NullIfEmpty(f.BudgetMax)
	if label := NullIfEmpty(f.Budget); label != nil && budgetMin == nil && budgetMax == nil {
		r := ParseBudgetRange(*label)
		budgetMin, budgetMax = &r.Min, &r.Max
	}

	in := RenovationProjectInput{
		RenovationType:  f.RenovationType,
		Postcode:        f.Postcode,
		BudgetMin:       budgetMin,
		BudgetMax:       budgetMax,
		Style:           f.Style,
		Timeline:        f.Timeline,
		Urgency:         NullIfEmpty(f.Urgency),
		AdditionalNotes: NullIfEmpty(f.AdditionalNotes),
	}
	if f.UserID != nil && *f.UserID > 0 {
		id := *f.UserID
		in.UserID = &id
	}
	return in
}

// NullIfEmpty maps nil and blank strings to nil.
func NullIfEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}
