// Package domain provides the portfolio records served by the public API
// and the query schemas and page filters built on top of them.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ID is a record identifier. The backend sends numeric ids for most records
// and string ids for synthetic ones, so both encodings are accepted.
type ID string

// UnmarshalJSON accepts JSON strings and numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as a string.
func (id ID) String() string {
	return string(id)
}

// Category is a project category.
type Category struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Technology is an entry of the technology catalogue.
type Technology struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
	Level       string `json:"level,omitempty"`
	Proficiency int    `json:"proficiency,omitempty"`
	WebsiteURL  string `json:"website_url,omitempty"`
	IsFeatured  bool   `json:"is_featured,omitempty"`
}

// ProjectImage is one gallery image attached to a project.
type ProjectImage struct {
	ID      ID     `json:"id"`
	Image   string `json:"image"`
	Caption string `json:"caption,omitempty"`
}

// Project is a portfolio project.
type Project struct {
	ID                ID             `json:"id"`
	Title             string         `json:"title"`
	Slug              string         `json:"slug"`
	ShortDescription  string         `json:"short_description,omitempty"`
	LongDescription   string         `json:"long_description,omitempty"`
	Status            string         `json:"status,omitempty"`
	Category          *Category      `json:"category,omitempty"`
	Tags              []string       `json:"tags,omitempty"`
	Features          []string       `json:"features,omitempty"`
	Technologies      []Technology   `json:"technologies,omitempty"`
	FeaturedImage     string         `json:"featured_image,omitempty"`
	Images            []ProjectImage `json:"images,omitempty"`
	GithubURL         string         `json:"github_url,omitempty"`
	DemoURL           string         `json:"demo_url,omitempty"`
	DocumentationURL  string         `json:"documentation_url,omitempty"`
	InstallationGuide string         `json:"installation_guide,omitempty"`
	IsFeatured        bool           `json:"is_featured"`
	IsPublic          bool           `json:"is_public,omitempty"`
	StartDate         string         `json:"start_date,omitempty"`
	CompletionDate    string         `json:"completion_date,omitempty"`
	UpdatedAt         string         `json:"updated_at,omitempty"`
}

// TechnologyNames returns the names of the project's technologies.
func (p Project) TechnologyNames() []string {
	names := make([]string, 0, len(p.Technologies))
	for _, t := range p.Technologies {
		if t.Name != "" {
			names = append(names, t.Name)
		}
	}
	return names
}

// CategoryName returns the project's category name or "".
func (p Project) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// IsCompleted reports whether the project status is completed.
func (p Project) IsCompleted() bool {
	return strings.EqualFold(p.Status, ProjectStatusCompleted)
}

// ProjectStatusCompleted is the status of finished projects.
const ProjectStatusCompleted = "completed"

// ProjectPage is the envelope returned by the project list endpoint.
type ProjectPage struct {
	Items []Project `json:"items"`
	Total int       `json:"total"`
}

// Experience is a work experience entry.
type Experience struct {
	ID               ID       `json:"id"`
	Position         string   `json:"position"`
	Company          string   `json:"company"`
	CompanyLogo      string   `json:"company_logo,omitempty"`
	Location         string   `json:"location,omitempty"`
	ExperienceType   string   `json:"experience_type"`
	EmploymentType   string   `json:"employment_type,omitempty"`
	Description      string   `json:"description,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	SkillsGained     []string `json:"skills_gained,omitempty"`
	Technologies     []string `json:"technologies,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	Duration         string   `json:"duration,omitempty"`
	IsCurrent        bool     `json:"is_current"`
	IsFeatured       bool     `json:"is_featured"`
}

// Experience types offered as filter buttons.
const (
	ExperienceFullTime   = "full_time"
	ExperienceContract   = "contract"
	ExperienceFreelance  = "freelance"
	ExperienceInternship = "internship"
)

// ExperienceTypes lists the experience filter values in display order.
var ExperienceTypes = []string{ExperienceFullTime, ExperienceContract, ExperienceFreelance, ExperienceInternship}

// Education is an education entry.
type Education struct {
	ID              ID       `json:"id"`
	Degree          string   `json:"degree"`
	Institution     string   `json:"institution"`
	InstitutionLogo string   `json:"institution_logo,omitempty"`
	FieldOfStudy    string   `json:"field_of_study,omitempty"`
	EducationType   string   `json:"education_type"`
	Location        string   `json:"location,omitempty"`
	Description     string   `json:"description,omitempty"`
	Achievements    []string `json:"achievements,omitempty"`
	Courses         []string `json:"courses,omitempty"`
	GradeValue      float64  `json:"grade_value,omitempty"`
	FormattedGrade  string   `json:"formatted_grade,omitempty"`
	DurationYears   float64  `json:"duration_years,omitempty"`
	ThesisURL       string   `json:"thesis_url,omitempty"`
	TranscriptURL   string   `json:"transcript_url,omitempty"`
	StartDate       string   `json:"start_date,omitempty"`
	EndDate         string   `json:"end_date,omitempty"`
	IsCurrent       bool     `json:"is_current"`
	IsFeatured      bool     `json:"is_featured"`
}

// Education types offered as filter buttons.
const (
	EducationBachelors     = "bachelors"
	EducationMasters       = "masters"
	EducationPhD           = "phd"
	EducationCertification = "certification"
)

// EducationTypes lists the education filter values in display order.
var EducationTypes = []string{EducationBachelors, EducationMasters, EducationPhD, EducationCertification}

// HighGradeThreshold is the grade_value counted as a distinction.
const HighGradeThreshold = 90

// Theme holds the colours picked in the site settings.
type Theme struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	DarkMode       bool   `json:"dark_mode"`
}

// SiteInfo is the "site" block of the settings.
type SiteInfo struct {
	Name                string `json:"name"`
	Tagline             string `json:"tagline,omitempty"`
	Logo                string `json:"logo,omitempty"`
	MyImage             string `json:"my_image,omitempty"`
	SelfDescription     string `json:"self_description,omitempty"`
	SelfLongDescription string `json:"self_long_description,omitempty"`
	ContactEmail        string `json:"contact_email,omitempty"`
	ContactPhone        string `json:"contact_phone,omitempty"`
	Location            string `json:"location,omitempty"`
}

// SEOSettings holds metadata used for page titles.
type SEOSettings struct {
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
	MetaKeywords    string `json:"meta_keywords,omitempty"`
}

// SiteSettings is the aggregate returned by the all-settings endpoint.
type SiteSettings struct {
	Site   SiteInfo          `json:"site"`
	Theme  Theme             `json:"theme"`
	Social map[string]string `json:"social,omitempty"`
	SEO    SEOSettings       `json:"seo,omitempty"`
}

// Maintenance is the maintenance-mode status.
type Maintenance struct {
	MaintenanceMode    bool   `json:"maintenance_mode"`
	MaintenanceMessage string `json:"maintenance_message,omitempty"`
	SiteName           string `json:"site_name,omitempty"`
}

// DefaultMaintenanceMessage is shown when the backend sends none.
const DefaultMaintenanceMessage = "We are performing scheduled maintenance. Please check back soon."

// Message returns the maintenance message or the default one.
func (m Maintenance) Message() string {
	if strings.TrimSpace(m.MaintenanceMessage) == "" {
		return DefaultMaintenanceMessage
	}
	return m.MaintenanceMessage
}

// RotatingTexts configures the hero typewriter.
type RotatingTexts struct {
	HeroTexts    []string `json:"hero_texts"`
	TypingSpeed  int      `json:"typing_speed"`
	DelaySeconds float64  `json:"delay_seconds"`
}

// Stats are the headline counters of the home page.
type Stats struct {
	Projects     int `json:"projects"`
	Technologies int `json:"technologies"`
	Experience   int `json:"years_experience"`
	Clients      int `json:"clients,omitempty"`
}

// Home is the aggregate returned by the home endpoint.
type Home struct {
	Stats               Stats        `json:"stats"`
	FeaturedProjects    []Project    `json:"featured_projects,omitempty"`
	FeaturedExperiences []Experience `json:"featured_experiences,omitempty"`
	FeaturedEducation   []Education  `json:"featured_education,omitempty"`
	FeaturedTechnology  []Technology `json:"featured_technologies,omitempty"`
}

// Resume is an uploaded CV.
type Resume struct {
	ID        ID     `json:"id"`
	Title     string `json:"title"`
	FileName  string `json:"file_name,omitempty"`
	IsPrimary bool   `json:"is_primary"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// ContactMessage is the payload of the contact form.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SocialLink is a non-empty social profile from the settings.
type SocialLink struct {
	Platform string
	Name     string
	URL      string
}

var socialNames = map[string]string{
	"github":    "GitHub",
	"linkedin":  "LinkedIn",
	"twitter":   "Twitter",
	"facebook":  "Facebook",
	"instagram": "Instagram",
	"youtube":   "YouTube",
	"discord":   "Discord",
	"globe":     "Website",
}

// SocialLinks returns the configured social profiles sorted by platform,
// skipping blank URLs.
func (s SiteSettings) SocialLinks() []SocialLink {
	platforms := make([]string, 0, len(s.Social))
	for platform, url := range s.Social {
		if strings.TrimSpace(url) != "" {
			platforms = append(platforms, platform)
		}
	}
	sort.Strings(platforms)

	links := make([]SocialLink, 0, len(platforms))
	for _, platform := range platforms {
		name, ok := socialNames[platform]
		if !ok {
			name = strings.ToUpper(platform[:1]) + platform[1:]
		}
		links = append(links, SocialLink{Platform: platform, Name: name, URL: s.Social[platform]})
	}
	return links
}
