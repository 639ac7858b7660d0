// Package score computes the completeness badge shown next to the preview.
// The weights are a user-visible contract; changing one changes every
// stored resume's score.
package score

import (
	"strings"
	"unicode/utf8"

	"resume-builder/resume/contract"
	"resume-builder/resume/model"
)

const (
	contactFieldPoints = 4

	experienceBase        = 10
	experienceSecondEntry = 5
	experienceDescription = 10
	experienceCap         = 25

	educationPoints = 15

	skillsFull     = 15
	skillsPartial  = 8
	skillsFullFrom = 3

	summaryFull     = 15
	summaryPartial  = 8
	summaryFullFrom = 50

	languagesPoints      = 2
	certificationsPoints = 3
	awardsPoints         = 3
	websitesPoints       = 2
	referencesPoints     = 2
	hobbiesPoints        = 2
	customPoints         = 2
	extrasCap            = 10

	MaxScore = 100
)

// Breakdown is the per-component contribution to the total.
type Breakdown struct {
	Contact    int `json:"contact"`
	Experience int `json:"experience"`
	Education  int `json:"education"`
	Skills     int `json:"skills"`
	Summary    int `json:"summary"`
	Extras     int `json:"extras"`
	Total      int `json:"total"`
}

// Score returns the completeness score in [0,100].
func Score(data model.ResumeData) int {
	return Compute(data).Total
}

// Compute returns the score with its per-component breakdown.
func Compute(data model.ResumeData) Breakdown {
	b := Breakdown{
		Contact:    contactScore(data.Contact),
		Experience: experienceScore(data.Experiences),
		Education:  educationScore(data.Educations),
		Skills:     skillsScore(data.Skills),
		Summary:    summaryScore(data.Summary),
		Extras:     extrasScore(data.Finalize),
	}
	total := b.Contact + b.Experience + b.Education + b.Skills + b.Summary + b.Extras
	if total < 0 {
		total = 0
	}
	if total > MaxScore {
		total = MaxScore
	}
	b.Total = total
	return b
}

func contactScore(c model.ContactInfo) int {
	points := 0
	for _, field := range []string{c.FirstName, c.LastName, c.DesiredJobTitle, c.Phone, c.Email} {
		if contract.HasValue(field) {
			points += contactFieldPoints
		}
	}
	return points
}

func experienceScore(items []model.Experience) int {
	if len(items) == 0 {
		return 0
	}
	points := experienceBase
	if len(items) >= 2 {
		points += experienceSecondEntry
	}
	for _, item := range items {
		if contract.HasValue(item.Description) {
			points += experienceDescription
			break
		}
	}
	return min(points, experienceCap)
}

func educationScore(items []model.Education) int {
	if len(items) > 0 {
		return educationPoints
	}
	return 0
}

func skillsScore(items []model.Skill) int {
	switch {
	case len(items) >= skillsFullFrom:
		return skillsFull
	case len(items) > 0:
		return skillsPartial
	}
	return 0
}

// Summary length counts characters of the trimmed text.
func summaryScore(summary string) int {
	if !contract.HasValue(summary) {
		return 0
	}
	if utf8.RuneCountInString(strings.TrimSpace(summary)) >= summaryFullFrom {
		return summaryFull
	}
	return summaryPartial
}

func extrasScore(f model.FinalizeOptions) int {
	points := 0
	if len(f.Languages) > 0 {
		points += languagesPoints
	}
	if len(f.Certifications) > 0 {
		points += certificationsPoints
	}
	if len(f.Awards) > 0 {
		points += awardsPoints
	}
	if len(f.Websites) > 0 {
		points += websitesPoints
	}
	if len(f.References) > 0 {
		points += referencesPoints
	}
	if len(f.Hobbies) > 0 {
		points += hobbiesPoints
	}
	if len(f.CustomSections) > 0 {
		points += customPoints
	}
	return min(points, extrasCap)
}
