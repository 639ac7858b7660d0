package model

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema []byte

var ErrInvalidResume = errors.New("invalid resume payload")

var (
	schemaOnce   sync.Once
	schemaLoaded *gojsonschema.Schema
	schemaErr    error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schemaLoaded, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(resumeSchema))
	})
	return schemaLoaded, schemaErr
}

// DecodeResumeData strictly decodes a payload: schema check, JSON decode,
// then id and enum validation. Errors wrap ErrInvalidResume.
func DecodeResumeData(raw []byte) (ResumeData, error) {
	schema, err := compiledSchema()
	if err != nil {
		return ResumeData{}, fmt.Errorf("load resume schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return ResumeData{}, fmt.Errorf("%w: %v", ErrInvalidResume, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return ResumeData{}, fmt.Errorf("%w: %s", ErrInvalidResume, strings.Join(msgs, "; "))
	}

	var data ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return ResumeData{}, fmt.Errorf("%w: %v", ErrInvalidResume, err)
	}
	if err := data.Validate(); err != nil {
		return ResumeData{}, fmt.Errorf("%w: %v", ErrInvalidResume, err)
	}
	return data, nil
}

// RecoverResumeData never fails. It salvages whatever fields of a stored
// payload are well-formed and reports what it dropped. A payload that is
// not JSON at all yields an empty resume on the first catalog template.
func RecoverResumeData(raw []byte) (ResumeData, []string) {
	if data, err := DecodeResumeData(raw); err == nil {
		return data, nil
	}

	fallbackTemplate := catalog[0].ID
	if !gjson.ValidBytes(raw) {
		return NewResumeData(fallbackTemplate), []string{"payload is not valid JSON"}
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return NewResumeData(fallbackTemplate), []string{"payload is not a JSON object"}
	}

	var problems []string
	data := NewResumeData(fallbackTemplate)

	if tid := root.Get("templateId"); tid.Type == gjson.String {
		data.TemplateID = tid.String()
	} else {
		problems = append(problems, "templateId missing or not a string")
	}
	if contact := root.Get("contact"); contact.IsObject() {
		data.Contact = ContactInfo{
			FirstName:       stringField(contact, "firstName", &problems),
			LastName:        stringField(contact, "lastName", &problems),
			DesiredJobTitle: stringField(contact, "desiredJobTitle", &problems),
			Phone:           stringField(contact, "phone", &problems),
			Email:           stringField(contact, "email", &problems),
		}
	} else if contact.Exists() {
		problems = append(problems, "contact is not an object")
	}
	data.Summary = stringField(root, "summary", &problems)

	data.Experiences = salvageList[Experience](root, "experiences", &problems)
	data.Educations = salvageList[Education](root, "educations", &problems)
	data.Skills = salvageList(root, "skills", &problems, func(s Skill) bool { return s.Level == "" || s.Level.Valid() })

	finalize := root.Get("finalize")
	if finalize.Exists() && !finalize.IsObject() {
		problems = append(problems, "finalize is not an object")
	}
	data.Finalize.Languages = salvageList(finalize, "languages", &problems, func(l Language) bool { return l.Proficiency == "" || l.Proficiency.Valid() })
	data.Finalize.Certifications = salvageList[Certification](finalize, "certifications", &problems)
	data.Finalize.Awards = salvageList[Award](finalize, "awards", &problems)
	data.Finalize.Websites = salvageList[Website](finalize, "websites", &problems)
	data.Finalize.References = salvageList[Reference](finalize, "references", &problems)
	data.Finalize.Hobbies = salvageList[Hobby](finalize, "hobbies", &problems)
	data.Finalize.CustomSections = salvageList[CustomSection](finalize, "customSections", &problems)

	if err := data.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	return data, problems
}

func stringField(obj gjson.Result, key string, problems *[]string) string {
	v := obj.Get(key)
	if !v.Exists() || v.Type == gjson.Null {
		return ""
	}
	if v.Type != gjson.String {
		*problems = append(*problems, key+" is not a string")
		return ""
	}
	return v.String()
}

// salvageList decodes each element of obj[key] independently and keeps
// the ones that decode and pass every accept check.
func salvageList[T any](obj gjson.Result, key string, problems *[]string, accept ...func(T) bool) []T {
	out := []T{}
	v := obj.Get(key)
	if !v.Exists() || v.Type == gjson.Null {
		return out
	}
	if !v.IsArray() {
		*problems = append(*problems, key+" is not an array")
		return out
	}
	for i, elem := range v.Array() {
		var item T
		if !elem.IsObject() {
			*problems = append(*problems, fmt.Sprintf("%s[%d] is not an object", key, i))
			continue
		}
		if err := json.Unmarshal([]byte(elem.Raw), &item); err != nil {
			*problems = append(*problems, fmt.Sprintf("%s[%d]: %v", key, i, err))
			continue
		}
		ok := true
		for _, fn := range accept {
			if !fn(item) {
				ok = false
				break
			}
		}
		if !ok {
			*problems = append(*problems, fmt.Sprintf("%s[%d] has an unknown enum value", key, i))
			continue
		}
		out = append(out, item)
	}
	return out
}

// RecoverDesignOptions decodes stored design options, falling back to
// defaults on malformed input, and always returns normalized values.
func RecoverDesignOptions(raw []byte) DesignOptions {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return DefaultDesignOptions()
	}
	root := gjson.ParseBytes(raw)
	opts := DesignOptions{}
	if v := root.Get("fontFamily"); v.Type == gjson.String {
		opts.FontFamily = v.String()
	}
	if v := root.Get("fontSize"); v.Type == gjson.Number {
		opts.FontSize = v.Float()
	}
	if v := root.Get("sectionSpacing"); v.Type == gjson.Number {
		opts.SectionSpacing = v.Float()
	} else {
		opts.SectionSpacing = -1
	}
	if v := root.Get("paragraphSpacing"); v.Type == gjson.Number {
		opts.ParagraphSpacing = v.Float()
	} else {
		opts.ParagraphSpacing = -1
	}
	if v := root.Get("lineSpacing"); v.Type == gjson.Number {
		opts.LineSpacing = v.Float()
	}
	return opts.Normalize()
}
