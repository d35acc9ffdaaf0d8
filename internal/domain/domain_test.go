package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocale(t *testing.T) {
	l, err := ParseLocale(" UA ")
	require.NoError(t, err)
	assert.Equal(t, LocaleUA, l)

	_, err = ParseLocale("de")
	assert.ErrorIs(t, err, ErrUnknownLocale)
}

func TestParseSectionType(t *testing.T) {
	for _, st := range SectionTypes {
		got, err := ParseSectionType(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}
	_, err := ParseSectionType("gallery")
	assert.ErrorIs(t, err, ErrUnknownSectionType)
}

func TestLocalized(t *testing.T) {
	s := Localized(map[string]any{"en": "Hi", "ua": "Привіт"})
	assert.Equal(t, "Hi", s.Get(LocaleEN))
	assert.Equal(t, "Привіт", s.Get(LocaleUA))
	assert.Empty(t, s.Get(LocalePL))
	assert.Empty(t, s.Get("de"))

	s = s.With(LocalePL, "Cześć")
	assert.Equal(t, map[string]any{"en": "Hi", "ua": "Привіт", "ru": "", "pl": "Cześć"}, s.Value())

	assert.Equal(t, LocalizedString{}, Localized("plain"))
	assert.Equal(t, LocalizedString{}, Localized(nil))
}

func TestImage(t *testing.T) {
	img, ok := Image(map[string]any{"id": "a", "url": "blob:a", "alt": "me"})
	assert.True(t, ok)
	assert.Equal(t, ImageValue{ID: "a", URL: "blob:a", Alt: "me"}, img)

	_, ok = Image(map[string]any{"id": "a"})
	assert.False(t, ok)
	_, ok = Image(nil)
	assert.False(t, ok)

	assert.NotContains(t, ImageValue{ID: "a", URL: "u"}.Value(), "alt")
}

func TestClone_Independent(t *testing.T) {
	p := Portfolio{
		ID:             "p",
		EnabledLocales: []Locale{LocaleEN},
		Sections: []Section{{
			ID:   "s",
			Type: SectionAbout,
			Data: map[string]any{
				"title": map[string]any{"en": "About"},
				"tags":  []any{"Go"},
			},
		}},
	}
	c := p.Clone()
	c.EnabledLocales[0] = LocalePL
	c.Sections[0].Data["title"].(map[string]any)["en"] = "changed"
	c.Sections[0].Data["tags"].([]any)[0] = "Rust"

	assert.Equal(t, LocaleEN, p.EnabledLocales[0])
	assert.Equal(t, "About", p.Sections[0].Data["title"].(map[string]any)["en"])
	assert.Equal(t, "Go", p.Sections[0].Data["tags"].([]any)[0])
}

func TestTreeRoundTrip(t *testing.T) {
	p := Portfolio{
		ID:            "p",
		Name:          "Jane",
		DefaultLocale: LocaleEN,
		Sections:      []Section{{ID: "h", Type: SectionHero, Data: map[string]any{"headline": map[string]any{"en": "Hi"}}}},
	}
	tree, err := p.Tree()
	require.NoError(t, err)
	assert.Equal(t, "Jane", tree["name"])

	back, err := PortfolioFromTree(tree)
	require.NoError(t, err)
	assert.Equal(t, p.Sections[0].Data, back.Sections[0].Data)
	assert.Equal(t, p.Name, back.Name)
}

func TestDecodeData(t *testing.T) {
	hero, err := DecodeData[HeroData](map[string]any{"headline": map[string]any{"en": "Hi"}})
	require.NoError(t, err)
	assert.Equal(t, "Hi", hero.Headline.EN)
}

func TestPatch(t *testing.T) {
	assert.True(t, PortfolioPatch{}.Empty())

	name := "New"
	p := Portfolio{Name: "Old", ID: "p"}
	PortfolioPatch{Name: &name}.Apply(&p)
	assert.Equal(t, "New", p.Name)
	assert.Equal(t, "p", p.ID)
	assert.Equal(t, -1, p.SectionIndex("missing"))
}

func TestParseDeviceView(t *testing.T) {
	v, err := ParseDeviceView("Mobile")
	require.NoError(t, err)
	assert.Equal(t, DeviceMobile, v)

	_, err = ParseDeviceView("watch")
	assert.ErrorIs(t, err, ErrUnknownDeviceView)
}
