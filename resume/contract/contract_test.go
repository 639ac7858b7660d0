package contract

import (
	"reflect"
	"testing"

	"resume-builder/resume/model"
)

func TestActiveUsesNonEmptyRule(t *testing.T) {
	t.Parallel()

	data := model.NewResumeData("classic")
	data.Summary = "   \n\t"
	if got := Active(data); len(got) != 0 {
		t.Fatalf("expected no active sections for blank data, got %v", got)
	}

	data.Summary = "Engineer"
	data.Skills = []model.Skill{{ID: "s1", Name: "Go"}}
	data.Finalize.Websites = []model.Website{{ID: "w1", Label: "Blog"}}

	want := []SectionID{SectionSummary, SectionSkills, SectionWebsites}
	if got := Active(data); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestActiveIsIdempotentUnderAddRemove(t *testing.T) {
	t.Parallel()

	data := model.NewResumeData("modern")
	data.Experiences = []model.Experience{{ID: "e1", JobTitle: "Engineer"}}
	before := Active(data)

	data.Finalize.Hobbies = append(data.Finalize.Hobbies, model.Hobby{ID: "h1", Name: "Chess"})
	if !Visible(SectionHobbies, data) {
		t.Fatalf("expected hobbies visible after add")
	}
	data.Finalize.Hobbies = data.Finalize.Hobbies[:0]

	if after := Active(data); !reflect.DeepEqual(before, after) {
		t.Fatalf("expected %v after add/remove, got %v", before, after)
	}
}

func TestOrderedHarvardPutsEducationFirstAndDropsSummary(t *testing.T) {
	t.Parallel()

	data := model.NewResumeData("harvard")
	data.Summary = "A long enough summary"
	data.Experiences = []model.Experience{{ID: "e1"}}
	data.Educations = []model.Education{{ID: "d1"}}

	got := Ordered(model.LayoutHarvard, data)
	want := []SectionID{SectionEducation, SectionExperience}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got = Ordered(model.LayoutClassic, data)
	want = []SectionID{SectionSummary, SectionExperience, SectionEducation}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestOrderUnknownLayoutFallsBackToClassic(t *testing.T) {
	t.Parallel()

	if got, want := Order(model.Layout("mystery")), Order(model.LayoutClassic); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected classic order %v, got %v", want, got)
	}
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		build func(*model.ResumeData)
		want  int
	}{
		{name: "empty", build: func(*model.ResumeData) {}, want: 1},
		{name: "page one only", build: func(d *model.ResumeData) {
			d.Finalize.Languages = []model.Language{{ID: "l1", Name: "French"}}
			d.Finalize.Certifications = []model.Certification{{ID: "c1", Name: "CKA"}}
			d.Finalize.Websites = []model.Website{{ID: "w1", URL: "https://example.com"}}
		}, want: 1},
		{name: "references", build: func(d *model.ResumeData) {
			d.Finalize.References = []model.Reference{{ID: "r1", Name: "Jane"}}
		}, want: 2},
		{name: "hobbies", build: func(d *model.ResumeData) {
			d.Finalize.Hobbies = []model.Hobby{{ID: "h1", Name: "Sailing"}}
		}, want: 2},
		{name: "awards", build: func(d *model.ResumeData) {
			d.Finalize.Awards = []model.Award{{ID: "a1", Title: "MVP"}}
		}, want: 2},
		{name: "custom", build: func(d *model.ResumeData) {
			d.Finalize.CustomSections = []model.CustomSection{{ID: "c1", SectionName: "Volunteering"}}
		}, want: 2},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			data := model.NewResumeData("classic")
			tc.build(&data)
			if got := TotalPages(data); got != tc.want {
				t.Fatalf("expected %d pages, got %d", tc.want, got)
			}
		})
	}
}

func TestOnPageReferencesOnly(t *testing.T) {
	t.Parallel()

	data := model.NewResumeData("classic")
	data.Experiences = []model.Experience{{ID: "e1"}}
	data.Finalize.Languages = []model.Language{{ID: "l1"}}
	data.Finalize.References = []model.Reference{{ID: "r1", Name: "Jane"}}

	if got, want := OnPage(model.LayoutClassic, data, 2), []SectionID{SectionReferences}; !reflect.DeepEqual(got, want) {
		t.Fatalf("page 2: expected %v, got %v", want, got)
	}
	if got, want := OnPage(model.LayoutClassic, data, 1), []SectionID{SectionExperience, SectionLanguages}; !reflect.DeepEqual(got, want) {
		t.Fatalf("page 1: expected %v, got %v", want, got)
	}
}

func TestEverySectionHasTitleAndPage(t *testing.T) {
	t.Parallel()

	for _, id := range All() {
		if Title(id) == string(id) {
			t.Fatalf("section %s has no display title", id)
		}
		if p := PageOf(id); p < 1 || p > MaxPages {
			t.Fatalf("section %s assigned to page %d", id, p)
		}
	}
}
