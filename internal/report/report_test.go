package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arunjmoorthy/flowlens/internal/flow"
)

func sampleFlow() *flow.Flow {
	return &flow.Flow{
		Name:        "Target Shopping Flow",
		UseCase:     "ecommerce",
		CreatedWith: "Arcade",
		UploadID:    "abc123",
		Steps:       []flow.Step{{Type: "CHAPTER"}, {Type: "IMAGE"}, {Type: "VIDEO"}},
	}
}

func sampleInteractions() []flow.Interaction {
	return []flow.Interaction{
		{Kind: "chapter", Action: "Started section: Find a product", Details: "Search and browse"},
		{Kind: "click", Action: "Add to Cart"},
	}
}

func TestCompose_Sections(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)
	doc := Compose(sampleFlow(), sampleInteractions(), "A fine summary.", "flow_social_media_x.png", now)

	for _, want := range []string{
		"# Flow Analysis Report",
		"**Flow Name:** Target Shopping Flow",
		"**Generated:** August 29, 2026 at 2:30 PM",
		"## Overview\n\nA fine summary.",
		"1. **Started section: Find a product**",
		"   - _Search and browse_",
		"2. **Add to Cart**",
		"## Key Insights",
		"![Flow Social Media Image](./flow_social_media_x.png)",
		"- **Total Steps:** 3",
		"- **User Interactions:** 2",
		"- **Flow Type:** ecommerce",
		"- **Created With:** Arcade",
		"[View on Arcade](https://app.arcade.software/share/abc123)",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestCompose_NoDetailsNoIndentLine(t *testing.T) {
	doc := Compose(sampleFlow(), []flow.Interaction{{Kind: "click", Action: "Add to Cart"}}, "s", "i.png", time.Now())
	if strings.Contains(doc, "   - __") {
		t.Error("expected no empty details line")
	}
}

func TestCompose_MissingMetadataFallsBackToUnknown(t *testing.T) {
	f := &flow.Flow{Name: "Bare"}
	doc := Compose(f, nil, "s", "i.png", time.Now())
	if !strings.Contains(doc, "- **Flow Type:** Unknown") {
		t.Error("expected Unknown flow type")
	}
	if !strings.Contains(doc, "- **Created With:** Unknown") {
		t.Error("expected Unknown created-with")
	}
	if strings.Contains(doc, "## Resources") {
		t.Error("expected no resources section without an upload id")
	}
}

func TestSiblingPath(t *testing.T) {
	cases := []struct {
		in, ext, want string
	}{
		{"FLOW_REPORT.md", ".html", "FLOW_REPORT.html"},
		{filepath.Join("out", "report.md"), ".docx", filepath.Join("out", "report.docx")},
		{"noext", ".html", "noext.html"},
	}
	for _, tc := range cases {
		if got := SiblingPath(tc.in, tc.ext); got != tc.want {
			t.Errorf("SiblingPath(%q, %q) = %q, want %q", tc.in, tc.ext, got, tc.want)
		}
	}
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	if err := WriteHTML("# Title\n\nSome **bold** text.\n", path); err != nil {
		t.Fatalf("WriteHTML failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read html: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("expected rendered markdown, got %s", html)
	}
	if !strings.Contains(html, "<!DOCTYPE html>") {
		t.Error("expected standalone html page")
	}
}

func TestWriteDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.docx")
	err := WriteDocx(sampleFlow(), sampleInteractions(), "A fine summary.", path)
	if err != nil {
		t.Fatalf("WriteDocx failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat docx: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty docx file")
	}
}
