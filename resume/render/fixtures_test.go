package render

import (
	"strings"
	"testing"

	"resume-builder/resume/model"
)

func sampleResume(templateID string) model.ResumeData {
	data := model.NewResumeData(templateID)
	data.Contact = model.ContactInfo{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		DesiredJobTitle: "Analyst",
		Phone:           "+44 20 7946 0000",
		Email:           "ada@example.com",
	}
	data.Summary = "Mathematician who wrote the first published algorithm for a machine."
	data.Experiences = []model.Experience{
		{
			ID:          "exp-1",
			JobTitle:    "Analyst",
			Employer:    "Analytical Engine Co",
			Location:    "London",
			StartDate:   "1842",
			EndDate:     "1843",
			Description: "Translated the Menabrea memoir.\nAdded notes A to G.",
		},
		{
			ID:           "exp-2",
			JobTitle:     "Consultant",
			Employer:     "Babbage Labs",
			StartDate:    "1843",
			IsCurrentJob: true,
		},
	}
	data.Educations = []model.Education{
		{ID: "edu-1", Degree: "Private tutoring", School: "Home", StartDate: "1828", EndDate: "1835"},
	}
	data.Skills = []model.Skill{
		{ID: "s-1", Name: "Mathematics", Level: model.SkillExpert, ShowLevel: true},
		{ID: "s-2", Name: "Poetry", Level: model.SkillBeginner},
	}
	data.Finalize.Languages = []model.Language{{ID: "l-1", Name: "French", Proficiency: model.ProficiencyFluent}}
	data.Finalize.Certifications = []model.Certification{{ID: "c-1", Name: "Royal Society Reader", Issuer: "Royal Society", Date: "1840"}}
	data.Finalize.Awards = []model.Award{{ID: "a-1", Title: "Ada Lovelace Day", Issuer: "Everyone", Date: "2009"}}
	data.Finalize.Websites = []model.Website{{ID: "w-1", Label: "Notes", URL: "https://example.com/notes"}}
	data.Finalize.References = []model.Reference{{ID: "r-1", Name: "Charles Babbage", Position: "Inventor", Company: "Difference Engine", Email: "cb@example.com"}}
	data.Finalize.Hobbies = []model.Hobby{{ID: "h-1", Name: "Horse riding"}}
	data.Finalize.CustomSections = []model.CustomSection{{ID: "x-1", SectionName: "Publications", Description: "Sketch of the Analytical Engine"}}
	return data
}

// longResume produces enough entries to overflow one A4 page.
func longResume(templateID string) model.ResumeData {
	data := sampleResume(templateID)
	body := strings.Repeat("Designed and documented numerical procedures for mechanical computation. ", 6)
	for i := 0; i < 14; i++ {
		data.Experiences = append(data.Experiences, model.Experience{
			ID:          model.NewID(),
			JobTitle:    "Engineer",
			Employer:    "Engine Works",
			StartDate:   "1850",
			EndDate:     "1851",
			Description: body,
		})
	}
	return data
}

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q", needle)
	}
}

func assertNotContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Fatalf("expected output not to contain %q", needle)
	}
}
