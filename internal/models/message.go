package models

// Message is one persisted entry in the message store, keyed by a
// store-generated push id. URL fields stay "" until a file is uploaded
// for the matching slot.
type Message struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Template   string `json:"template"`
	Enabled    bool   `json:"enabled"`
	Mute       bool   `json:"mute"`
	MediaURL   string `json:"mediaUrl"`
	AudioURL   string `json:"audioUrl"`
	SrtContent string `json:"srtContent"`
}

// Partial is a merge patch for Update: only the named fields are written,
// everything else at the key keeps its stored value.
type Partial map[string]any

// ApplyPartial merges a patch into an in-memory message, mirroring what the
// store-side merge does to the persisted document. Unknown keys are ignored.
func ApplyPartial(m *Message, p Partial) {
	for k, v := range p {
		switch k {
		case "name":
			if s, ok := v.(string); ok {
				m.Name = s
			}
		case "template":
			if s, ok := v.(string); ok {
				m.Template = s
			}
		case "enabled":
			if b, ok := v.(bool); ok {
				m.Enabled = b
			}
		case "mute":
			if b, ok := v.(bool); ok {
				m.Mute = b
			}
		case "mediaUrl":
			if s, ok := v.(string); ok {
				m.MediaURL = s
			}
		case "audioUrl":
			if s, ok := v.(string); ok {
				m.AudioURL = s
			}
		case "srtContent":
			if s, ok := v.(string); ok {
				m.SrtContent = s
			}
		}
	}
}
