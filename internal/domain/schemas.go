package domain

import "github.com/cristianoliveira/folio/internal/query"

// Field names shared by the schemas and the page filters.
const (
	FieldTitle            = "title"
	FieldSlug             = "slug"
	FieldShortDescription = "short_description"
	FieldTags             = "tags"
	FieldTechnology       = "technology"
	FieldCategory         = "category"
	FieldStatus           = "status"
	FieldFeatured         = "is_featured"
	FieldCurrent          = "is_current"
	FieldStartDate        = "start_date"
	FieldEndDate          = "end_date"
	FieldCompletionDate   = "completion_date"

	FieldPosition       = "position"
	FieldCompany        = "company"
	FieldDescription    = "description"
	FieldLocation       = "location"
	FieldExperienceType = "experience_type"

	FieldDegree        = "degree"
	FieldInstitution   = "institution"
	FieldFieldOfStudy  = "field_of_study"
	FieldEducationType = "education_type"
	FieldGradeValue    = "grade_value"
)

func optionalString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// ProjectSchema describes the queryable fields of a Project.
func ProjectSchema() *query.Schema[Project] {
	return query.NewSchema[Project]().
		Field(FieldTitle, func(p Project) any { return p.Title }).
		Field(FieldSlug, func(p Project) any { return p.Slug }).
		Field(FieldShortDescription, func(p Project) any { return p.ShortDescription }).
		Field(FieldTags, func(p Project) any { return p.Tags }).
		Field(FieldTechnology, func(p Project) any { return p.TechnologyNames() }).
		Field(FieldCategory, func(p Project) any { return optionalString(p.CategoryName()) }).
		Field(FieldStatus, func(p Project) any { return optionalString(p.Status) }).
		Field(FieldFeatured, func(p Project) any { return p.IsFeatured }).
		Field(FieldStartDate, func(p Project) any { return optionalString(p.StartDate) }).
		Field(FieldCompletionDate, func(p Project) any { return optionalString(p.CompletionDate) })
}

// ExperienceSchema describes the queryable fields of an Experience.
func ExperienceSchema() *query.Schema[Experience] {
	return query.NewSchema[Experience]().
		Field(FieldPosition, func(e Experience) any { return e.Position }).
		Field(FieldCompany, func(e Experience) any { return e.Company }).
		Field(FieldDescription, func(e Experience) any { return e.Description }).
		Field(FieldLocation, func(e Experience) any { return optionalString(e.Location) }).
		Field(FieldExperienceType, func(e Experience) any { return optionalString(e.ExperienceType) }).
		Field(FieldTechnology, func(e Experience) any { return e.Technologies }).
		Field(FieldFeatured, func(e Experience) any { return e.IsFeatured }).
		Field(FieldCurrent, func(e Experience) any { return e.IsCurrent }).
		Field(FieldStartDate, func(e Experience) any { return optionalString(e.StartDate) }).
		Field(FieldEndDate, func(e Experience) any { return optionalString(e.EndDate) })
}

// EducationSchema describes the queryable fields of an Education entry.
func EducationSchema() *query.Schema[Education] {
	return query.NewSchema[Education]().
		Field(FieldDegree, func(e Education) any { return e.Degree }).
		Field(FieldInstitution, func(e Education) any { return e.Institution }).
		Field(FieldFieldOfStudy, func(e Education) any { return e.FieldOfStudy }).
		Field(FieldDescription, func(e Education) any { return e.Description }).
		Field(FieldLocation, func(e Education) any { return optionalString(e.Location) }).
		Field(FieldEducationType, func(e Education) any { return optionalString(e.EducationType) }).
		Field(FieldFeatured, func(e Education) any { return e.IsFeatured }).
		Field(FieldCurrent, func(e Education) any { return e.IsCurrent }).
		Field(FieldGradeValue, func(e Education) any {
			if e.GradeValue == 0 {
				return nil
			}
			return e.GradeValue
		}).
		Field(FieldStartDate, func(e Education) any { return optionalString(e.StartDate) }).
		Field(FieldEndDate, func(e Education) any { return optionalString(e.EndDate) })
}
