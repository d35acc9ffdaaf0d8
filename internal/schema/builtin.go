package schema

import "portfolio/internal/domain"

func builtins() []SectionSchema {
	return []SectionSchema{heroSchema, aboutSchema, skillsSchema, projectsSchema, contactSchema}
}

var heroSchema = SectionSchema{
	Type: domain.SectionHero,
	Fields: []FieldDescriptor{
		{Key: "headline", Kind: KindText, Label: "Headline", Required: true, Placeholder: "e.g. Hi, I'm Alex"},
		{Key: "subheadline", Kind: KindTextarea, Label: "Subheadline", Placeholder: "One sentence about what you do"},
		{Key: "ctaButton", Kind: KindText, Label: "Button Text", Placeholder: "e.g. See my work"},
	},
}

var aboutSchema = SectionSchema{
	Type: domain.SectionAbout,
	Fields: []FieldDescriptor{
		{Key: "title", Kind: KindText, Label: "Title", Required: true, Placeholder: "e.g. About Me"},
		{Key: "paragraph", Kind: KindTextarea, Label: "Paragraph", Required: true, Placeholder: "Tell your story..."},
		{Key: "avatar", Kind: KindImage, Label: "Avatar", Help: "Recommended 800x800"},
		{Key: "tags", Kind: KindChips, Label: "Tags", Placeholder: "Add tags and press Enter"},
		{
			Key:   "layout",
			Kind:  KindSelect,
			Label: "Layout",
			Options: []Option{
				{Value: "left-image", Label: "Image Left"},
				{Value: "right-image", Label: "Image Right"},
				{Value: "stacked", Label: "Stacked"},
			},
		},
	},
}

var skillsSchema = SectionSchema{
	Type: domain.SectionSkills,
	Fields: []FieldDescriptor{
		{Key: "title", Kind: KindText, Label: "Title", Required: true, Placeholder: "e.g. Skills"},
	},
}

var projectsSchema = SectionSchema{
	Type: domain.SectionProjects,
	Fields: []FieldDescriptor{
		{Key: "title", Kind: KindText, Label: "Title", Required: true, Placeholder: "e.g. Selected Work"},
	},
}

var contactSchema = SectionSchema{
	Type: domain.SectionContact,
	Fields: []FieldDescriptor{
		{Key: "title", Kind: KindText, Label: "Title", Required: true, Placeholder: "e.g. Get in touch"},
	},
}
