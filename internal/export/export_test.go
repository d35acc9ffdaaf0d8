package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/blob"
	"portfolio/internal/domain"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func samplePortfolio(avatarURL string) domain.Portfolio {
	return domain.Portfolio{
		ID:   "p",
		Name: "Jane Doe",
		Sections: []domain.Section{
			{ID: "hero", Type: domain.SectionHero, Data: map[string]any{
				"headline":  domain.LocalizedString{EN: "Hello", UA: "Привіт"}.Value(),
				"ctaButton": domain.LocalizedString{UA: "Далі"}.Value(),
			}},
			{ID: "about", Type: domain.SectionAbout, Data: map[string]any{
				"title":     domain.LocalizedString{UA: "Про мене"}.Value(),
				"paragraph": domain.LocalizedString{UA: "Я пишу **Go** <script>alert(1)</script>"}.Value(),
				"avatar":    domain.ImageValue{ID: "a", URL: avatarURL, Alt: "me"}.Value(),
				"tags":      []any{"go", "sql"},
				"layout":    "stacked",
			}},
			{ID: "contact", Type: domain.SectionContact, Data: map[string]any{
				"title": domain.LocalizedString{UA: "Контакти"}.Value(),
				"email": "jane@example.com",
				"socialLinks": map[string]any{
					"github":  "https://github.com/jane",
					"twitter": "javascript:alert(1)",
				},
			}},
		},
		Theme:          domain.Theme{PrimaryColor: "#10b981", Mode: domain.ThemeDark},
		EnabledLocales: []domain.Locale{domain.LocaleEN, domain.LocaleUA},
		DefaultLocale:  domain.LocaleUA,
	}
}

func render(t *testing.T, x *Exporter, p domain.Portfolio) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, x.Render(&buf, p))
	return buf.String()
}

func TestRender_DefaultLocaleDocument(t *testing.T) {
	images := blob.NewRegistry()
	obj, err := images.Create(pngHeader)
	require.NoError(t, err)

	html := render(t, New(images), samplePortfolio(obj.URL))

	assert.Contains(t, html, `<html lang="ua">`)
	assert.Contains(t, html, "<title>Jane Doe</title>")
	assert.Contains(t, html, "Привіт")
	assert.NotContains(t, html, "Hello", "only the default locale is exported")
	assert.Contains(t, html, "<strong>Go</strong>", "paragraphs are markdown")
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "data:image/png;base64,")
	assert.Contains(t, html, `alt="me"`)
	assert.Contains(t, html, "https://github.com/jane")
	assert.NotContains(t, html, "javascript:")
	assert.Contains(t, html, "layout-stacked")

	hero := strings.Index(html, `id="hero"`)
	about := strings.Index(html, `id="about"`)
	contact := strings.Index(html, `id="contact"`)
	assert.True(t, hero < about && about < contact, "sections keep their order")
}

func TestRender_ReleasedImageLeftOut(t *testing.T) {
	images := blob.NewRegistry()
	obj, err := images.Create(pngHeader)
	require.NoError(t, err)
	images.Release(obj.URL)

	html := render(t, New(images), samplePortfolio(obj.URL))
	assert.NotContains(t, html, "<img")
	assert.NotContains(t, html, obj.URL)
}

func TestRender_RemoteImage(t *testing.T) {
	html := render(t, New(nil), samplePortfolio("https://cdn.example.com/me.png"))
	assert.Contains(t, html, `src="https://cdn.example.com/me.png"`)
}

func TestRender_UnknownSectionType(t *testing.T) {
	p := samplePortfolio("")
	p.Sections = append(p.Sections, domain.Section{ID: "x", Type: "gallery"})
	err := New(nil).Render(&bytes.Buffer{}, p)
	assert.ErrorIs(t, err, domain.ErrUnknownSectionType)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Jane Doe", "jane-doe-portfolio.html"},
		{"My  Great\tSite", "my--great-site-portfolio.html"},
		{"a/b", "a-b-portfolio.html"},
		{"", "-portfolio.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(domain.Portfolio{Name: tt.name}))
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := New(nil).WriteFile(dir, samplePortfolio(""))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "jane-doe-portfolio.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
}
