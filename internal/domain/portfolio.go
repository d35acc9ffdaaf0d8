package domain

import (
	"errors"
	"fmt"

	"github.com/spf13/cast"
)

// SectionType is the closed set of section kinds a page can contain.
type SectionType string

const (
	SectionHero     SectionType = "hero"
	SectionAbout    SectionType = "about"
	SectionSkills   SectionType = "skills"
	SectionProjects SectionType = "projects"
	SectionContact  SectionType = "contact"
)

// SectionTypes lists every section type in library order.
var SectionTypes = []SectionType{SectionHero, SectionAbout, SectionSkills, SectionProjects, SectionContact}

var ErrUnknownSectionType = errors.New("unknown section type")

// ParseSectionType rejects any tag outside the closed enumeration.
func ParseSectionType(s string) (SectionType, error) {
	t := SectionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSectionType, s)
	}
	return t, nil
}

// Valid reports whether t is one of the known section types.
func (t SectionType) Valid() bool {
	switch t {
	case SectionHero, SectionAbout, SectionSkills, SectionProjects, SectionContact:
		return true
	}
	return false
}

// Effects configures the visual effects applied to a section.
type Effects struct {
	Parallax float64 `json:"parallax"` // 0-1 intensity
	Blur     bool    `json:"blur"`
	Has3D    bool    `json:"has3d"`
}

// Section is one typed content block of the page.
// Data maps field keys to JSON-normal values (see Normalize).
type Section struct {
	ID      string         `json:"id"`
	Type    SectionType    `json:"type"`
	Data    map[string]any `json:"data"`
	Effects Effects        `json:"effects"`
}

type ThemeMode string

const (
	ThemeDark  ThemeMode = "dark"
	ThemeLight ThemeMode = "light"
)

type Theme struct {
	PrimaryColor string    `json:"primaryColor"`
	Mode         ThemeMode `json:"mode"`
}

// Portfolio is the root document edited by the builder.
type Portfolio struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Sections       []Section `json:"sections"`
	Theme          Theme     `json:"theme"`
	EnabledLocales []Locale  `json:"enabledLocales"`
	DefaultLocale  Locale    `json:"defaultLocale"`
}

// PortfolioPatch is a partial Portfolio. Nil fields are left untouched.
type PortfolioPatch struct {
	ID             *string    `json:"id,omitempty"`
	Name           *string    `json:"name,omitempty"`
	Sections       *[]Section `json:"sections,omitempty"`
	Theme          *Theme     `json:"theme,omitempty"`
	EnabledLocales *[]Locale  `json:"enabledLocales,omitempty"`
	DefaultLocale  *Locale    `json:"defaultLocale,omitempty"`
}

// Apply shallow-merges the non-nil fields of patch into p.
func (patch PortfolioPatch) Apply(p *Portfolio) {
	if patch.ID != nil {
		p.ID = *patch.ID
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Sections != nil {
		p.Sections = *patch.Sections
	}
	if patch.Theme != nil {
		p.Theme = *patch.Theme
	}
	if patch.EnabledLocales != nil {
		p.EnabledLocales = *patch.EnabledLocales
	}
	if patch.DefaultLocale != nil {
		p.DefaultLocale = *patch.DefaultLocale
	}
}

// Empty reports whether the patch changes nothing.
func (patch PortfolioPatch) Empty() bool {
	return patch.ID == nil && patch.Name == nil && patch.Sections == nil &&
		patch.Theme == nil && patch.EnabledLocales == nil && patch.DefaultLocale == nil
}

// SectionIndex returns the position of the section with id, or -1.
func (p *Portfolio) SectionIndex(id string) int {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

// ImageValue references an uploaded or remote image.
type ImageValue struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Value converts img into the JSON-normal form stored in Section.Data.
func (img ImageValue) Value() map[string]any {
	v := map[string]any{"id": img.ID, "url": img.URL}
	if img.Alt != "" {
		v["alt"] = img.Alt
	}
	return v
}

// Image reads an ImageValue out of a Section.Data value. It reports false
// for nil, non-object values and images without a URL.
func Image(v any) (ImageValue, bool) {
	switch t := v.(type) {
	case ImageValue:
		return t, t.URL != ""
	case *ImageValue:
		if t != nil {
			return *t, t.URL != ""
		}
	case map[string]any:
		img := ImageValue{
			ID:  cast.ToString(t["id"]),
			URL: cast.ToString(t["url"]),
			Alt: cast.ToString(t["alt"]),
		}
		return img, img.URL != ""
	}
	return ImageValue{}, false
}

type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"` // 0-100
}

type Project struct {
	ID          string          `json:"id"`
	Title       LocalizedString `json:"title"`
	Description LocalizedString `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Link        string          `json:"link"`
}

type SocialLinks struct {
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
}

// Typed views of Section.Data per section type. The store keeps Data
// generic; these are decoded on demand (see DecodeData).

type HeroData struct {
	Headline    LocalizedString `json:"headline"`
	Subheadline LocalizedString `json:"subheadline"`
	CTAButton   LocalizedString `json:"ctaButton"`
}

type AboutData struct {
	Title     LocalizedString `json:"title"`
	Paragraph LocalizedString `json:"paragraph"`
	Avatar    *ImageValue     `json:"avatar,omitempty"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Tags      []string        `json:"tags,omitempty"`
	Layout    string          `json:"layout,omitempty"`
}

type SkillsData struct {
	Title  LocalizedString `json:"title"`
	Skills []Skill         `json:"skills"`
}

type ProjectsData struct {
	Title    LocalizedString `json:"title"`
	Projects []Project       `json:"projects"`
}

type ContactData struct {
	Title       LocalizedString `json:"title"`
	Email       string          `json:"email"`
	SocialLinks SocialLinks     `json:"socialLinks"`
}
