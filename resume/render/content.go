package render

import (
	"strings"

	"resume-builder/resume/contract"
	"resume-builder/resume/model"
)

// blockKind decides how a section is laid out and how much room the
// print path reserves for it.
type blockKind int

const (
	kindParagraph blockKind = iota
	kindEntries
	kindList
)

// entry is one renderable item inside a section.
type entry struct {
	Title    string
	Subtitle string
	Meta     string
	Body     string
}

// block is a section's content projected once from ResumeData and
// consumed by every renderer.
type block struct {
	ID      contract.SectionID
	Title   string
	Kind    blockKind
	Entries []entry
}

// header holds the contact lines shown at the top of page one.
type header struct {
	Name     string
	JobTitle string
	Contact  string
}

const (
	presentLabel  = "Present"
	dateSeparator = " – "
	metaSeparator = " · "
)

func buildHeader(c model.ContactInfo) header {
	return header{
		Name:     c.FullName(),
		JobTitle: strings.TrimSpace(c.DesiredJobTitle),
		Contact:  joinNonBlank(metaSeparator, c.Phone, c.Email),
	}
}

// buildBlocks projects the given sections, in order. Custom sections
// expand into one block each, titled by their own name.
func buildBlocks(ids []contract.SectionID, data model.ResumeData) []block {
	out := make([]block, 0, len(ids))
	for _, id := range ids {
		out = append(out, buildBlock(id, data)...)
	}
	return out
}

func buildBlock(id contract.SectionID, data model.ResumeData) []block {
	b := block{ID: id, Title: contract.Title(id)}
	f := data.Finalize
	switch id {
	case contract.SectionSummary:
		b.Kind = kindParagraph
		b.Entries = []entry{{Body: strings.TrimSpace(data.Summary)}}
	case contract.SectionExperience:
		b.Kind = kindEntries
		for _, e := range data.Experiences {
			b.Entries = append(b.Entries, entry{
				Title:    e.JobTitle,
				Subtitle: joinNonBlank(", ", e.Employer, e.Location),
				Meta:     dateRange(e.StartDate, e.EndDate, e.IsCurrentJob),
				Body:     normalizeNewlines(e.Description),
			})
		}
	case contract.SectionEducation:
		b.Kind = kindEntries
		for _, e := range data.Educations {
			b.Entries = append(b.Entries, entry{
				Title:    e.Degree,
				Subtitle: joinNonBlank(", ", e.School, e.Location),
				Meta:     dateRange(e.StartDate, e.EndDate, false),
				Body:     normalizeNewlines(e.Description),
			})
		}
	case contract.SectionSkills:
		b.Kind = kindList
		for _, s := range data.Skills {
			meta := ""
			if s.ShowLevel {
				meta = string(s.Level)
			}
			b.Entries = append(b.Entries, entry{Title: s.Name, Meta: meta})
		}
	case contract.SectionLanguages:
		b.Kind = kindList
		for _, l := range f.Languages {
			b.Entries = append(b.Entries, entry{Title: l.Name, Meta: string(l.Proficiency)})
		}
	case contract.SectionCertifications:
		b.Kind = kindList
		for _, c := range f.Certifications {
			b.Entries = append(b.Entries, entry{Title: c.Name, Subtitle: joinNonBlank(", ", c.Issuer, c.Date)})
		}
	case contract.SectionAwards:
		b.Kind = kindList
		for _, a := range f.Awards {
			b.Entries = append(b.Entries, entry{Title: a.Title, Subtitle: joinNonBlank(", ", a.Issuer, a.Date)})
		}
	case contract.SectionWebsites:
		b.Kind = kindList
		for _, w := range f.Websites {
			title := strings.TrimSpace(w.Label)
			if title == "" {
				title = strings.TrimSpace(w.URL)
				b.Entries = append(b.Entries, entry{Title: title})
				continue
			}
			b.Entries = append(b.Entries, entry{Title: title, Subtitle: strings.TrimSpace(w.URL)})
		}
	case contract.SectionReferences:
		b.Kind = kindList
		for _, r := range f.References {
			b.Entries = append(b.Entries, entry{
				Title:    r.Name,
				Subtitle: joinNonBlank(", ", r.Position, r.Company),
				Meta:     joinNonBlank(metaSeparator, r.Email, r.Phone),
			})
		}
	case contract.SectionHobbies:
		b.Kind = kindList
		for _, h := range f.Hobbies {
			b.Entries = append(b.Entries, entry{Title: h.Name})
		}
	case contract.SectionCustom:
		out := make([]block, 0, len(f.CustomSections))
		for _, c := range f.CustomSections {
			title := strings.TrimSpace(c.SectionName)
			if title == "" {
				title = contract.Title(contract.SectionCustom)
			}
			out = append(out, block{
				ID:      id,
				Title:   title,
				Kind:    kindParagraph,
				Entries: []entry{{Body: normalizeNewlines(c.Description)}},
			})
		}
		return out
	}
	return []block{b}
}

// listLine flattens a list entry into one line of text.
func (e entry) listLine() string {
	line := strings.TrimSpace(e.Title)
	if meta := strings.TrimSpace(e.Meta); meta != "" && e.Subtitle == "" {
		if line == "" {
			return meta
		}
		return line + " (" + meta + ")"
	}
	return joinNonBlank(metaSeparator, line, e.Subtitle, e.Meta)
}

func dateRange(start, end string, current bool) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if current {
		end = presentLabel
	}
	switch {
	case start != "" && end != "":
		return start + dateSeparator + end
	case start != "":
		return start
	}
	return end
}

func joinNonBlank(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, sep)
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimRight(s, " \n\t")
}
