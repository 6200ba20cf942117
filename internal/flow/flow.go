// Package flow handles loading and representation of recorded flow documents.
package flow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Step types that receive dedicated extraction handling.
const (
	StepChapter = "CHAPTER"
	StepImage   = "IMAGE"
	StepVideo   = "VIDEO"
)

// Flow is a recorded user-interaction session exported by the capture tool.
// Immutable once loaded.
type Flow struct {
	Name           string  `json:"name" yaml:"name"`
	Description    string  `json:"description" yaml:"description"`
	UseCase        string  `json:"useCase" yaml:"useCase"`
	CreatedWith    string  `json:"createdWith" yaml:"createdWith"`
	UploadID       string  `json:"uploadId" yaml:"uploadId"`
	Steps          []Step  `json:"steps" yaml:"steps"`
	CapturedEvents []Event `json:"capturedEvents" yaml:"capturedEvents"`
}

// Step is one discrete recorded unit within a flow: a chapter marker, a
// captured screen state at time of click, or a video segment.
type Step struct {
	Type         string       `json:"type" yaml:"type"`
	Title        string       `json:"title" yaml:"title"`
	Subtitle     string       `json:"subtitle" yaml:"subtitle"`
	Hotspots     []Hotspot    `json:"hotspots" yaml:"hotspots"`
	ClickContext ClickContext `json:"clickContext" yaml:"clickContext"`
	PageContext  PageContext  `json:"pageContext" yaml:"pageContext"`
}

// Hotspot is an annotated interactive region within an IMAGE step.
type Hotspot struct {
	Label string `json:"label" yaml:"label"`
}

// ClickContext describes the DOM element a click landed on.
type ClickContext struct {
	Text        string `json:"text" yaml:"text"`
	ElementType string `json:"elementType" yaml:"elementType"`
}

// PageContext describes the page a step was captured on.
type PageContext struct {
	URL string `json:"url" yaml:"url"`
}

// Event is a low-level interaction signal (typing, scrolling, dragging,
// clicking) not tied to a specific step. Only the kind is recorded.
type Event struct {
	Type string `json:"type" yaml:"type"`
}

// Load reads and decodes a flow document. JSON is the conventional export
// format; .yaml/.yml files are accepted as well.
func Load(path string) (*Flow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read flow: %w", err)
	}

	var f Flow
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse flow yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse flow json: %w", err)
		}
	}
	return &f, nil
}
