package models

import "gorm.io/gorm"

// Resume represents a stored resume document. Ownership is enforced at the
// service layer: every read and write is keyed by (id, user_id) jointly.
type Resume struct {
	ID     string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID string `json:"user_id" gorm:"index;type:varchar(36)"`

	Title      string `json:"title" gorm:"type:varchar(200)" validate:"required,min=1,max=200"`
	Template   string `json:"template" gorm:"type:varchar(50);default:modern"`
	ColorTheme string `json:"color_theme" gorm:"type:varchar(50);default:blue"`

	Content string `json:"content"`
	Summary string `json:"summary"`

	PersonalInfo   *PersonalInfo   `json:"personal_info" gorm:"serializer:json"`
	Education      []Education     `json:"education" gorm:"serializer:json"`
	Experience     []Experience    `json:"experience" gorm:"serializer:json"`
	Skills         []Skill         `json:"skills" gorm:"serializer:json"`
	Projects       []Project       `json:"projects" gorm:"serializer:json"`
	Certifications []Certification `json:"certifications" gorm:"serializer:json"`
	Languages      []Language      `json:"languages" gorm:"serializer:json"`

	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// PersonalInfo is the contact block of a resume.
type PersonalInfo struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Location     string `json:"location"`
	Website      string `json:"website"`
	LinkedIn     string `json:"linkedin"`
	GitHub       string `json:"github"`
	Portfolio    string `json:"portfolio"`
	ProfileImage string `json:"profile_image"`
}

// Education is a single education entry.
type Education struct {
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	Institution  string `json:"institution"`
	Location     string `json:"location"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Grade        string `json:"grade"`
	Description  string `json:"description"`
}

// Experience is a single work-history entry.
type Experience struct {
	JobTitle     string   `json:"job_title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	IsCurrentJob bool     `json:"is_current_job"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

// Skill is a single skill entry.
type Skill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Level    string `json:"level"`
}

// Project is a single project entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	URL          string   `json:"url"`
	Technologies []string `json:"technologies"`
	Highlights   []string `json:"highlights"`
}

// Certification is a single certification entry.
type Certification struct {
	Name          string `json:"name"`
	Issuer        string `json:"issuer"`
	IssueDate     string `json:"issue_date"`
	ExpiryDate    string `json:"expiry_date"`
	CredentialID  string `json:"credential_id"`
	CredentialURL string `json:"credential_url"`
}

// Language is a single language entry.
type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}
