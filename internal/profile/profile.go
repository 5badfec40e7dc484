// Package profile defines the structured candidate profile extracted from a
// resume, the JSON Schema derived from it and the validator that turns raw
// model output into a Profile.
package profile

// Profile is the validated result of one extraction.
//
// Shape:
//
//	{
//	  "basics": {"firstName", "lastName", "email?", "phone?", "address?", "linkedin?", "github?", "website?"},
//	  "education": [{"school", "degree?", "start?", "end?"}],
//	  "experience": [{"company", "title?", "start?", "end?", "bullets": []}],
//	  "projects": [{"name", "description?", "skills": []}],
//	  "skills": []
//	}
type Profile struct {
	Basics     Basics       `json:"basics" desc:"Contact block of the candidate."`
	Education  []Education  `json:"education" validate:"dive" desc:"Degrees and schools in resume order."`
	Experience []Experience `json:"experience" validate:"dive" desc:"Employment history in resume order."`
	Projects   []Project    `json:"projects" validate:"dive" desc:"Personal or professional projects."`
	Skills     []string     `json:"skills" desc:"Skills as written in the resume."`
}

// Basics is the contact block. Only the names are required.
type Basics struct {
	FirstName string  `json:"firstName" validate:"required" desc:"Given name."`
	LastName  string  `json:"lastName" validate:"required" desc:"Family name."`
	Email     *string `json:"email" validate:"omitnil,email" desc:"Email address."`
	Phone     *string `json:"phone" desc:"Phone number as written."`
	Address   *string `json:"address" desc:"Postal address or city."`
	LinkedIn  *string `json:"linkedin" desc:"LinkedIn profile handle or URL."`
	GitHub    *string `json:"github" desc:"GitHub handle or URL."`
	Website   *string `json:"website" validate:"omitnil,url" desc:"Personal website URL."`
}

// Education is one school entry. Dates are free text copied from the resume
// ("Jan 2023 - Present").
type Education struct {
	School string  `json:"school" desc:"School or university name."`
	Degree *string `json:"degree" desc:"Degree or programme."`
	Start  *string `json:"start" desc:"Start date as written."`
	End    *string `json:"end" desc:"End date as written."`
}

// Experience is one position held, with its bullet lines.
type Experience struct {
	Company string   `json:"company" desc:"Employer name."`
	Title   *string  `json:"title" desc:"Job title."`
	Start   *string  `json:"start" desc:"Start date as written."`
	End     *string  `json:"end" desc:"End date as written."`
	Bullets []string `json:"bullets" desc:"Responsibility or achievement lines."`
}

// Project is a named project and the skills it used.
type Project struct {
	Name        string   `json:"name" desc:"Project name."`
	Description *string  `json:"description" desc:"Short description."`
	Skills      []string `json:"skills" desc:"Technologies used."`
}

// Normalize replaces nil slices with empty ones at every level so the
// profile always serializes arrays as [].
func (p *Profile) Normalize() {
	p.Skills = nonNil(p.Skills)
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	for i := range p.Experience {
		p.Experience[i].Bullets = nonNil(p.Experience[i].Bullets)
	}
	for i := range p.Projects {
		p.Projects[i].Skills = nonNil(p.Projects[i].Skills)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
