package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ResumeData is the canonical resume payload consumed by every renderer.
// Renderers treat it as read-only; callers replace the whole value on edit.
type ResumeData struct {
	TemplateID  string          `json:"templateId"`
	Contact     ContactInfo     `json:"contact"`
	Experiences []Experience    `json:"experiences"`
	Educations  []Education     `json:"educations"`
	Skills      []Skill         `json:"skills"`
	Summary     string          `json:"summary"`
	Finalize    FinalizeOptions `json:"finalize"`
}

// ContactInfo holds the header fields. All of them may be blank.
type ContactInfo struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	DesiredJobTitle string `json:"desiredJobTitle"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
}

// FullName joins first and last name, skipping blanks.
func (c ContactInfo) FullName() string {
	parts := make([]string, 0, 2)
	for _, part := range []string{c.FirstName, c.LastName} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}

// Experience represents a work history entry. Dates are free text.
type Experience struct {
	ID           string `json:"id"`
	JobTitle     string `json:"jobTitle"`
	Employer     string `json:"employer"`
	Location     string `json:"location"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	IsCurrentJob bool   `json:"isCurrentJob"`
	Description  string `json:"description"`
}

// Education represents an education entry.
type Education struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	School      string `json:"school"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
)

// Valid reports whether the level is one of the known values.
func (l SkillLevel) Valid() bool {
	switch l {
	case SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert:
		return true
	}
	return false
}

type Skill struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Level     SkillLevel `json:"level"`
	ShowLevel bool       `json:"showLevel"`
}

type Proficiency string

const (
	ProficiencyBasic          Proficiency = "Basic"
	ProficiencyConversational Proficiency = "Conversational"
	ProficiencyFluent         Proficiency = "Fluent"
	ProficiencyNative         Proficiency = "Native"
)

func (p Proficiency) Valid() bool {
	switch p {
	case ProficiencyBasic, ProficiencyConversational, ProficiencyFluent, ProficiencyNative:
		return true
	}
	return false
}

// FinalizeOptions is the bag of optional list sections.
type FinalizeOptions struct {
	Languages      []Language      `json:"languages"`
	Certifications []Certification `json:"certifications"`
	Awards         []Award         `json:"awards"`
	Websites       []Website       `json:"websites"`
	References     []Reference     `json:"references"`
	Hobbies        []Hobby         `json:"hobbies"`
	CustomSections []CustomSection `json:"customSections"`
}

type Language struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Proficiency Proficiency `json:"proficiency"`
}

type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

type Award struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

type Website struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Reference struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Company  string `json:"company"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type Hobby struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CustomSection struct {
	ID          string `json:"id"`
	SectionName string `json:"sectionName"`
	Description string `json:"description"`
}

// NewResumeData returns an empty resume bound to templateID.
// Lists are non-nil so the stored JSON carries [] rather than null.
func NewResumeData(templateID string) ResumeData {
	return ResumeData{
		TemplateID:  templateID,
		Experiences: []Experience{},
		Educations:  []Education{},
		Skills:      []Skill{},
		Finalize: FinalizeOptions{
			Languages:      []Language{},
			Certifications: []Certification{},
			Awards:         []Award{},
			Websites:       []Website{},
			References:     []Reference{},
			Hobbies:        []Hobby{},
			CustomSections: []CustomSection{},
		},
	}
}

// NewID returns a fresh list entity id.
func NewID() string {
	return uuid.NewString()
}

// Validate checks list id uniqueness and enum values.
func (d ResumeData) Validate() error {
	if err := uniqueIDs("experiences", collectIDs(d.Experiences, func(e Experience) string { return e.ID })); err != nil {
		return err
	}
	if err := uniqueIDs("educations", collectIDs(d.Educations, func(e Education) string { return e.ID })); err != nil {
		return err
	}
	if err := uniqueIDs("skills", collectIDs(d.Skills, func(s Skill) string { return s.ID })); err != nil {
		return err
	}
	for i, skill := range d.Skills {
		if skill.Level != "" && !skill.Level.Valid() {
			return fmt.Errorf("skills[%d].level %q is not a known level", i, skill.Level)
		}
	}
	f := d.Finalize
	if err := uniqueIDs("finalize.languages", collectIDs(f.Languages, func(l Language) string { return l.ID })); err != nil {
		return err
	}
	for i, lang := range f.Languages {
		if lang.Proficiency != "" && !lang.Proficiency.Valid() {
			return fmt.Errorf("finalize.languages[%d].proficiency %q is not a known proficiency", i, lang.Proficiency)
		}
	}
	checks := []struct {
		field string
		ids   []string
	}{
		{"finalize.certifications", collectIDs(f.Certifications, func(c Certification) string { return c.ID })},
		{"finalize.awards", collectIDs(f.Awards, func(a Award) string { return a.ID })},
		{"finalize.websites", collectIDs(f.Websites, func(w Website) string { return w.ID })},
		{"finalize.references", collectIDs(f.References, func(r Reference) string { return r.ID })},
		{"finalize.hobbies", collectIDs(f.Hobbies, func(h Hobby) string { return h.ID })},
		{"finalize.customSections", collectIDs(f.CustomSections, func(c CustomSection) string { return c.ID })},
	}
	for _, check := range checks {
		if err := uniqueIDs(check.field, check.ids); err != nil {
			return err
		}
	}
	return nil
}

var errDuplicateID = errors.New("duplicate id")

func collectIDs[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, id(item))
	}
	return out
}

// uniqueIDs ignores blank ids; only repeated non-blank ids are rejected.
func uniqueIDs(field string, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for i, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%s[%d]: %w %q", field, i, errDuplicateID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
