// Package analyze runs the flow analysis pipeline: extraction, AI summary,
// illustrative image, and report composition.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/arunjmoorthy/flowlens/internal/cache"
	"github.com/arunjmoorthy/flowlens/internal/config"
	"github.com/arunjmoorthy/flowlens/internal/flow"
	"github.com/arunjmoorthy/flowlens/internal/openai"
	"github.com/arunjmoorthy/flowlens/internal/report"
)

// Analyzer drives a single analysis run.
type Analyzer struct {
	cfg    config.Config
	client *openai.Client
	cache  *cache.Store
	log    *slog.Logger
}

func NewAnalyzer(cfg config.Config, client *openai.Client, store *cache.Store, log *slog.Logger) *Analyzer {
	return &Analyzer{
		cfg:    cfg,
		client: client,
		cache:  store,
		log:    log,
	}
}

type summaryEntry struct {
	Summary string `json:"summary"`
}

type imageEntry struct {
	ImageURL string `json:"image_url"`
}

// Run executes the whole pipeline and writes the report. Nothing is written
// until every stage has succeeded.
func (a *Analyzer) Run(ctx context.Context) (string, error) {
	f, err := flow.Load(a.cfg.FlowPath)
	if err != nil {
		return "", err
	}
	a.log.Info("loaded flow", "name", f.Name, "steps", len(f.Steps), "events", len(f.CapturedEvents))

	interactions := flow.Extract(f)
	a.log.Info("extracted interactions", "count", len(interactions))

	summary, err := a.Summarize(ctx, f.Name, interactions)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}

	imagePath, err := a.Illustrate(ctx, f.Name, summary)
	if err != nil {
		return "", fmt.Errorf("illustrate: %w", err)
	}

	doc := report.Compose(f, interactions, summary, filepath.Base(imagePath), time.Now())
	if err := os.WriteFile(a.cfg.ReportPath, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	if a.cfg.ExportHTML {
		htmlPath := report.SiblingPath(a.cfg.ReportPath, ".html")
		if err := report.WriteHTML(doc, htmlPath); err != nil {
			return "", fmt.Errorf("write html report: %w", err)
		}
		a.log.Info("wrote html report", "path", htmlPath)
	}
	if a.cfg.ExportDocx {
		docxPath := report.SiblingPath(a.cfg.ReportPath, ".docx")
		if err := report.WriteDocx(f, interactions, summary, docxPath); err != nil {
			return "", fmt.Errorf("write docx report: %w", err)
		}
		a.log.Info("wrote docx report", "path", docxPath)
	}

	return a.cfg.ReportPath, nil
}

// Summarize returns the AI summary for the extracted interactions, consulting
// the cache first. Cached text is returned verbatim.
func (a *Analyzer) Summarize(ctx context.Context, flowName string, interactions []flow.Interaction) (string, error) {
	key, err := cache.Key(map[string]any{
		"task":         "summary",
		"flow_name":    flowName,
		"interactions": interactions,
	})
	if err != nil {
		return "", err
	}

	var entry summaryEntry
	hit, err := a.cache.Get(key, &entry)
	if err != nil {
		return "", err
	}
	if hit {
		a.log.Info("using cached summary", "key", key)
		return entry.Summary, nil
	}

	a.log.Info("generating summary", "model", a.cfg.ChatModel)
	summary, err := a.client.Complete(ctx, summarySystem, BuildSummaryPrompt(flowName, interactions))
	if err != nil {
		return "", err
	}

	if err := a.cache.Put(key, summaryEntry{Summary: summary}); err != nil {
		return "", err
	}
	return summary, nil
}

// Illustrate returns the local path of the generated social image. A cached
// image URL is only reused if it still answers a liveness probe; hosted
// references expire after about a day, so a hit has to be re-validated every
// time.
func (a *Analyzer) Illustrate(ctx context.Context, flowName, summary string) (string, error) {
	key, err := cache.Key(map[string]any{
		"task":      "image",
		"flow_name": flowName,
		"summary":   summary,
	})
	if err != nil {
		return "", err
	}

	var entry imageEntry
	hit, err := a.cache.Get(key, &entry)
	if err != nil {
		return "", err
	}

	imageURL := ""
	if hit && a.client.ProbeURL(ctx, entry.ImageURL) {
		a.log.Info("using cached image url", "key", key)
		imageURL = entry.ImageURL
	} else {
		if hit {
			a.log.Info("cached image url expired, regenerating", "key", key)
		}
		a.log.Info("generating image", "model", a.cfg.ImageModel)
		imageURL, err = a.client.GenerateImage(ctx, BuildImagePrompt(flowName))
		if err != nil {
			return "", err
		}
		if err := a.cache.Put(key, imageEntry{ImageURL: imageURL}); err != nil {
			return "", err
		}
	}

	data, err := a.client.Download(ctx, imageURL)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("flow_social_media_%s.png", time.Now().Format("20060102_150405"))
	path := filepath.Join(filepath.Dir(a.cfg.ReportPath), filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	a.log.Info("saved image", "path", path, "bytes", len(data))
	return path, nil
}
