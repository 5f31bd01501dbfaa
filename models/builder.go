package models

import "time"

// Builder is a contractor profile. ServiceAreas, Specialties and
// PortfolioImages are stored as JSON text and surface as arrays.
type Builder struct {
	ID               int64       `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement"`
	BusinessName     string      `json:"businessName" db:"business_name" gorm:"column:business_name;type:text;not null"`
	ContactName      string      `json:"contactName" db:"contact_name" gorm:"column:contact_name;type:text;not null"`
	Email            string      `json:"email" db:"email" gorm:"column:email;type:text;not null;uniqueIndex:idx_builders_email"`
	Phone            string      `json:"phone" db:"phone" gorm:"column:phone;type:text;not null"`
	ABN              *string     `json:"abn" db:"abn" gorm:"column:abn;type:text"`
	BusinessAddress  string      `json:"businessAddress" db:"business_address" gorm:"column:business_address;type:text;not null"`
	ServiceAreas     EncodedList `json:"serviceAreas" db:"service_areas" gorm:"column:service_areas;type:text;not null"`
	Specialties      EncodedList `json:"specialties" db:"specialties" gorm:"column:specialties;type:text;not null"`
	YearsExperience  int         `json:"yearsExperience" db:"years_experience" gorm:"column:years_experience;type:integer;not null"`
	InsuranceDetails *string     `json:"insuranceDetails" db:"insurance_details" gorm:"column:insurance_details;type:text"`
	LicenseNumber    *string     `json:"licenseNumber" db:"license_number" gorm:"column:license_number;type:text"`
	WebsiteURL       *string     `json:"websiteUrl" db:"website_url" gorm:"column:website_url;type:text"`
	ProfileImageURL  *string     `json:"profileImageUrl" db:"profile_image_url" gorm:"column:profile_image_url;type:text"`
	PortfolioImages  EncodedList `json:"portfolioImages" db:"portfolio_images" gorm:"column:portfolio_images;type:text"`
	Description      string      `json:"description" db:"description" gorm:"column:description;type:text;not null"`
	PriceRangeMin    *string     `json:"priceRangeMin" db:"price_range_min" gorm:"column:price_range_min;type:text"`
	PriceRangeMax    *string     `json:"priceRangeMax" db:"price_range_max" gorm:"column:price_range_max;type:text"`
	Verified         bool        `json:"verified" db:"verified" gorm:"column:verified;not null;default:false"`
	Rating           string      `json:"rating" db:"rating" gorm:"column:rating;type:text;not null;default:'0.0'"`
	TotalReviews     int         `json:"totalReviews" db:"total_reviews" gorm:"column:total_reviews;type:integer;not null;default:0"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at" gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt        time.Time   `json:"updatedAt" db:"updated_at" gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (Builder) TableName() string {
	return "builders"
}

// Defaults for fields owned by the (future) moderation and review process.
const (
	DefaultBuilderRating       = "0.0"
	DefaultBuilderTotalReviews = 0
)

// BuilderInput is the validated, normalized create input for a Builder.
type BuilderInput struct {
	BusinessName     string   `json:"businessName"`
	ContactName      string   `json:"contactName"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	ABN              *string  `json:"abn"`
	BusinessAddress  string   `json:"businessAddress"`
	ServiceAreas     []string `json:"serviceAreas"`
	Specialties      []string `json:"specialties"`
	YearsExperience  int      `json:"yearsExperience"`
	InsuranceDetails *string  `json:"insuranceDetails"`
	LicenseNumber    *string  `json:"licenseNumber"`
	WebsiteURL       *string  `json:"websiteUrl"`
	ProfileImageURL  *string  `json:"profileImageUrl"`
	PortfolioImages  []string `json:"portfolioImages"`
	Description      string   `json:"description"`
	PriceRangeMin    *string  `json:"priceRangeMin"`
	PriceRangeMax    *string  `json:"priceRangeMax"`
}

// Record builds the row to insert with moderation fields at their defaults.
func (in BuilderInput) Record() Builder {
	portfolio := in.PortfolioImages
	if portfolio == nil {
		portfolio = []string{}
	}
	return Builder{
		BusinessName:     in.BusinessName,
		ContactName:      in.ContactName,
		Email:            in.Email,
		Phone:            in.Phone,
		ABN:              in.ABN,
		BusinessAddress:  in.BusinessAddress,
		ServiceAreas:     NewEncodedList(in.ServiceAreas),
		Specialties:      NewEncodedList(in.Specialties),
		YearsExperience:  in.YearsExperience,
		InsuranceDetails: in.InsuranceDetails,
		LicenseNumber:    in.LicenseNumber,
		WebsiteURL:       in.WebsiteURL,
		ProfileImageURL:  in.ProfileImageURL,
		PortfolioImages:  NewEncodedList(portfolio),
		Description:      in.Description,
		PriceRangeMin:    in.PriceRangeMin,
		PriceRangeMax:    in.PriceRangeMax,
		Verified:         false,
		Rating:           DefaultBuilderRating,
		TotalReviews:     DefaultBuilderTotalReviews,
	}
}
