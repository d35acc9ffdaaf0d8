package editor

import (
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cast"

	"portfolio/internal/domain"
	"portfolio/internal/schema"
)

// RequiredMessage is shown under a required field whose value is empty.
const RequiredMessage = "This field is required"

// FieldState is one rendered form control: the descriptor, the effective
// value for the active locale and the validation message, if any.
type FieldState struct {
	Descriptor schema.FieldDescriptor `json:"descriptor"`
	Value      any                    `json:"value"`
	Error      string                 `json:"error,omitempty"`
}

// Form is the inspector view of one section.
type Form struct {
	SectionID string             `json:"sectionId"`
	Type      domain.SectionType `json:"type"`
	Locale    domain.Locale      `json:"locale"`
	Effects   domain.Effects     `json:"effects"`
	Fields    []FieldState       `json:"fields"`
}

// Valid reports whether no field carries an error. Validation is advisory:
// an invalid form never blocks a write.
func (f Form) Valid() bool {
	return !lo.SomeBy(f.Fields, func(fs FieldState) bool { return fs.Error != "" })
}

// Errors maps field keys to their validation message.
func (f Form) Errors() map[string]string {
	out := make(map[string]string)
	for _, fs := range f.Fields {
		if fs.Error != "" {
			out[fs.Descriptor.Key] = fs.Error
		}
	}
	return out
}

// Field returns the state of the field with key.
func (f Form) Field(key string) (FieldState, bool) {
	return lo.Find(f.Fields, func(fs FieldState) bool { return fs.Descriptor.Key == key })
}

// BuildForm derives the form of sec under sch for locale. It does not need
// a store, so the CLI can validate documents that were never loaded.
func BuildForm(sec domain.Section, sch schema.SectionSchema, locale domain.Locale) Form {
	form := Form{
		SectionID: sec.ID,
		Type:      sec.Type,
		Locale:    locale,
		Effects:   sec.Effects,
		Fields:    make([]FieldState, 0, len(sch.Fields)),
	}
	for _, fd := range sch.Fields {
		v := EffectiveValue(fd, sec.Data[fd.Key], locale)
		fs := FieldState{Descriptor: fd, Value: v}
		if fd.Required && isEmpty(v) {
			fs.Error = RequiredMessage
		}
		form.Fields = append(form.Fields, fs)
	}
	return form
}

// EffectiveValue turns a stored value into what the control displays:
//
//	text, textarea  string, the slot of locale
//	select          string, the stored value or the first option
//	switch          bool, false when unset
//	chips           []string, empty when unset
//	image           *domain.ImageValue, nil when unset
func EffectiveValue(fd schema.FieldDescriptor, stored any, locale domain.Locale) any {
	switch fd.Kind {
	case schema.KindText, schema.KindTextarea:
		return domain.Localized(stored).Get(locale)
	case schema.KindSelect:
		if s := cast.ToString(stored); s != "" {
			return s
		}
		return fd.DefaultOption()
	case schema.KindSwitch:
		return cast.ToBool(stored)
	case schema.KindChips:
		return chips(stored)
	case schema.KindImage:
		if img, ok := domain.Image(stored); ok {
			return &img
		}
		return (*domain.ImageValue)(nil)
	}
	return stored
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case bool:
		return !t
	case []string:
		return len(t) == 0
	case *domain.ImageValue:
		return t == nil || t.URL == ""
	}
	return false
}

// chips reads a stored chip list. Non-string entries are dropped.
func chips(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string{}, t...)
	case []any:
		return lo.FilterMap(t, func(item any, _ int) (string, bool) {
			s, ok := item.(string)
			return s, ok
		})
	}
	return []string{}
}
