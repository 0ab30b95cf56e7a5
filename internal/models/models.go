package models

import (
	"strings"
	"time"
)

// ColumnCount is the fixed width of a Jadarat export row.
const ColumnCount = 18

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderBoth   Gender = "both"
)

// Genders lists the accepted values in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderBoth}

// ParseGender accepts the English codes and the Arabic labels used by the
// Jadarat export.
func ParseGender(raw string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "ذكر":
		return GenderMale, true
	case "female", "أنثى", "انثى":
		return GenderFemale, true
	case "both", "كلا الجنسين":
		return GenderBoth, true
	}
	return "", false
}

func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	case GenderBoth:
		return "Both"
	}
	return string(g)
}

// JobPosting is one row of the dataset. Field order follows the CSV columns.
type JobPosting struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"-"`

	JobTitle               string `gorm:"not null" json:"job_title"`
	PostingDate            string `json:"posting_date"`
	JobDescription         string `gorm:"type:text" json:"job_description"`
	Duties                 string `gorm:"type:text" json:"duties"`
	CompanyName            string `gorm:"index" json:"company_name"`
	EstablishmentNumber    string `json:"establishment_number"`
	CompanyType            string `json:"company_type"`
	CompanySize            string `json:"company_size"`
	EconomicActivity       string `json:"economic_activity"`
	RequiredQualifications string `gorm:"type:text" json:"required_qualifications"`
	Region                 string `gorm:"index" json:"region"`
	City                   string `json:"city"`
	Benefits               string `gorm:"type:text" json:"benefits"`
	ContractType           string `json:"contract_type"`
	Openings               int    `json:"openings"`
	PostingNumber          string `json:"posting_number"`
	ExperienceYears        int    `gorm:"index" json:"experience_years"`
	Gender                 Gender `gorm:"type:varchar(16);index" json:"gender"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}
