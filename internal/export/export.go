// Package export renders a Portfolio into a standalone HTML document.
//
// The page uses the portfolio's default locale. Textarea content is treated
// as Markdown; live transient images are inlined as data URLs and released
// ones are left out.
package export

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"portfolio/internal/blob"
	"portfolio/internal/domain"
)

//go:embed page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "page.html.tmpl"))

// ImageResolver resolves transient image URLs.
type ImageResolver interface {
	Resolve(url string) (blob.Object, bool)
}

// Exporter renders portfolios. It is safe for concurrent use.
type Exporter struct {
	md     goldmark.Markdown
	images ImageResolver
}

// New creates an Exporter. images may be nil, in which case every
// transient image is treated as missing.
func New(images ImageResolver) *Exporter {
	return &Exporter{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		images: images,
	}
}

// FileName returns the download name of p's export: the lowercased name with
// every whitespace character replaced by a dash, plus "-portfolio.html".
func FileName(p domain.Portfolio) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '/' || r == '\\' {
			return '-'
		}
		return r
	}, strings.ToLower(p.Name))
	return name + "-portfolio.html"
}

// Render writes the HTML document for p to w.
func (x *Exporter) Render(w io.Writer, p domain.Portfolio) error {
	lang := p.DefaultLocale
	if lang == "" {
		lang = domain.LocaleEN
	}
	data := pageData{
		Lang:         string(lang),
		Title:        p.Name,
		PrimaryColor: p.Theme.PrimaryColor,
		Mode:         string(p.Theme.Mode),
	}
	if data.PrimaryColor == "" {
		data.PrimaryColor = "#8b5cf6"
	}
	for i, sec := range p.Sections {
		view, err := x.section(sec, lang)
		if err != nil {
			return fmt.Errorf("export section %s: %w", sec.ID, err)
		}
		if i+1 < len(p.Sections) {
			view.NextID = p.Sections[i+1].ID
		}
		data.Sections = append(data.Sections, view)
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// WriteFile renders p into dir under FileName(p) and returns the path.
func (x *Exporter) WriteFile(dir string, p domain.Portfolio) (string, error) {
	var buf bytes.Buffer
	if err := x.Render(&buf, p); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName(p))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// ── views ──────────────────────────────────────────────────

type pageData struct {
	Lang         string
	Title        string
	PrimaryColor string
	Mode         string
	Sections     []sectionView
}

type sectionView struct {
	ID      string
	Type    string
	NextID  string
	Effects domain.Effects

	Title    string
	Body     template.HTML
	CTA      string
	Image    *imageView
	Tags     []string
	Layout   string
	Skills   []domain.Skill
	Projects []projectView
	Email    string
	Links    []linkView
}

type imageView struct {
	Src template.URL
	Alt string
}

type projectView struct {
	Title       string
	Description template.HTML
	Image       template.URL
	Link        template.URL
}

type linkView struct {
	Name string
	URL  template.URL
}

func (x *Exporter) section(sec domain.Section, l domain.Locale) (sectionView, error) {
	v := sectionView{ID: sec.ID, Type: string(sec.Type), Effects: sec.Effects}
	var err error
	switch sec.Type {
	case domain.SectionHero:
		var d domain.HeroData
		if d, err = domain.DecodeData[domain.HeroData](sec.Data); err != nil {
			return v, err
		}
		v.Title = d.Headline.Get(l)
		v.CTA = d.CTAButton.Get(l)
		v.Body, err = x.markdown(d.Subheadline.Get(l))
	case domain.SectionAbout:
		var d domain.AboutData
		if d, err = domain.DecodeData[domain.AboutData](sec.Data); err != nil {
			return v, err
		}
		v.Title = d.Title.Get(l)
		v.Tags = d.Tags
		v.Layout = d.Layout
		if v.Layout == "" {
			v.Layout = "left-image"
		}
		if d.Avatar != nil {
			if src := x.imageURL(d.Avatar.URL); src != "" {
				v.Image = &imageView{Src: src, Alt: d.Avatar.Alt}
			}
		} else if src := x.imageURL(d.ImageURL); src != "" {
			v.Image = &imageView{Src: src}
		}
		v.Body, err = x.markdown(d.Paragraph.Get(l))
	case domain.SectionSkills:
		var d domain.SkillsData
		if d, err = domain.DecodeData[domain.SkillsData](sec.Data); err != nil {
			return v, err
		}
		v.Title = d.Title.Get(l)
		v.Skills = d.Skills
	case domain.SectionProjects:
		var d domain.ProjectsData
		if d, err = domain.DecodeData[domain.ProjectsData](sec.Data); err != nil {
			return v, err
		}
		v.Title = d.Title.Get(l)
		for _, p := range d.Projects {
			desc, err := x.markdown(p.Description.Get(l))
			if err != nil {
				return v, err
			}
			v.Projects = append(v.Projects, projectView{
				Title:       p.Title.Get(l),
				Description: desc,
				Image:       x.imageURL(p.ImageURL),
				Link:        webURL(p.Link),
			})
		}
	case domain.SectionContact:
		var d domain.ContactData
		if d, err = domain.DecodeData[domain.ContactData](sec.Data); err != nil {
			return v, err
		}
		v.Title = d.Title.Get(l)
		v.Email = d.Email
		for _, link := range []linkView{
			{Name: "GitHub", URL: webURL(d.SocialLinks.GitHub)},
			{Name: "LinkedIn", URL: webURL(d.SocialLinks.LinkedIn)},
			{Name: "Twitter", URL: webURL(d.SocialLinks.Twitter)},
		} {
			if link.URL != "" {
				v.Links = append(v.Links, link)
			}
		}
	default:
		return v, fmt.Errorf("%w: %q", domain.ErrUnknownSectionType, sec.Type)
	}
	return v, err
}

func (x *Exporter) markdown(src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := x.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// imageURL inlines live transient images and drops released ones.
func (x *Exporter) imageURL(url string) template.URL {
	if !blob.IsBlobURL(url) {
		return webURL(url)
	}
	if x.images == nil {
		return ""
	}
	obj, ok := x.images.Resolve(url)
	if !ok {
		return ""
	}
	return template.URL("data:" + obj.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(obj.Data))
}

// webURL passes through http(s) and relative URLs only.
func webURL(url string) template.URL {
	url = strings.TrimSpace(url)
	lower := strings.ToLower(url)
	switch {
	case url == "":
		return ""
	case strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "http://"):
		return template.URL(url)
	case strings.Contains(lower, ":"):
		return ""
	}
	return template.URL(url)
}
