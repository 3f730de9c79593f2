package models

// TemplateOption is one entry of the fixed presentation-template catalog.
type TemplateOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var templates = []TemplateOption{
	{Value: "template1", Label: "Classic"},
	{Value: "template2", Label: "Polaroid"},
	{Value: "template3", Label: "Vinyl"},
	{Value: "template4", Label: "Letter"},
	{Value: "template5", Label: "Neon"},
}

// Templates returns the catalog used to populate the template selector.
func Templates() []TemplateOption {
	out := make([]TemplateOption, len(templates))
	copy(out, templates)
	return out
}

// ValidTemplate reports whether value names a catalog template.
func ValidTemplate(value string) bool {
	for _, t := range templates {
		if t.Value == value {
			return true
		}
	}
	return false
}
