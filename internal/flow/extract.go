package flow

import (
	"fmt"
	"strings"
)

// Interaction is the normalized, human-readable representation of one step
// or captured event. Never mutated after creation.
type Interaction struct {
	Kind    string `json:"type"`
	Action  string `json:"action"`
	Details string `json:"details,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Extract walks the flow once and maps each step, then each captured event,
// to at most one interaction. Steps always precede events in the output;
// the capture format carries no timestamps, so true chronology cannot be
// reconstructed.
func Extract(f *Flow) []Interaction {
	var out []Interaction

	for _, s := range f.Steps {
		if in, ok := stepInteraction(s); ok {
			out = append(out, in)
		}
	}
	for _, e := range f.CapturedEvents {
		if in, ok := eventInteraction(e); ok {
			out = append(out, in)
		}
	}
	return out
}

func stepInteraction(s Step) (Interaction, bool) {
	switch s.Type {
	case StepChapter:
		// Closing "thank you" chapters add nothing to the narrative.
		if s.Title == "" || strings.Contains(strings.ToLower(s.Title), "thank you") {
			return Interaction{}, false
		}
		return Interaction{
			Kind:    "chapter",
			Action:  "Started section: " + s.Title,
			Details: s.Subtitle,
		}, true

	case StepImage:
		// The first hotspot label is usually the most descriptive name
		// for what was clicked.
		if len(s.Hotspots) > 0 && s.Hotspots[0].Label != "" {
			label := strings.TrimSpace(strings.ReplaceAll(s.Hotspots[0].Label, "*", ""))
			return Interaction{
				Kind:   "click",
				Action: label,
				URL:    s.PageContext.URL,
			}, true
		}
		if s.ClickContext.Text != "" || s.ClickContext.ElementType != "" {
			action := "Clicked " + s.ClickContext.ElementType
			if s.ClickContext.Text != "" {
				action += ": " + s.ClickContext.Text
			}
			return Interaction{
				Kind:   "click",
				Action: action,
				URL:    s.PageContext.URL,
			}, true
		}
		return Interaction{}, false

	case StepVideo:
		// Motion is already captured through events.
		return Interaction{}, false

	default:
		if s.Title == "" {
			return Interaction{}, false
		}
		return Interaction{
			Kind:    strings.ToLower(s.Type),
			Action:  fmt.Sprintf("Interacted with %s: %s", s.Type, s.Title),
			Details: s.Subtitle,
		}, true
	}
}

func eventInteraction(e Event) (Interaction, bool) {
	switch e.Type {
	case "typing":
		return Interaction{
			Kind:    "typing",
			Action:  "Typed search query",
			Details: "User entered text in search field",
		}, true
	case "scrolling":
		return Interaction{
			Kind:    "scroll",
			Action:  "Scrolled page to view more content",
			Details: "User browsed through available options",
		}, true
	case "dragging":
		return Interaction{
			Kind:    "drag",
			Action:  "Dragged element",
			Details: "User performed drag interaction",
		}, true
	case "click":
		return Interaction{
			Kind:    "click",
			Action:  "Clicked on page",
			Details: "User performed click interaction",
		}, true
	default:
		return Interaction{}, false
	}
}
