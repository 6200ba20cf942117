package report

import (
	"bytes"
	"fmt"
	"os"

	"github.com/yuin/goldmark"
)

const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Flow Analysis Report</title>
<style>
body { font-family: -apple-system, sans-serif; max-width: 760px; margin: 2rem auto; padding: 0 1rem; color: #1a1a2e; }
img { max-width: 100%%; border-radius: 8px; }
hr { border: none; border-top: 1px solid #ddd; margin: 1.5rem 0; }
</style>
</head>
<body>
%s</body>
</html>
`

// WriteHTML converts the markdown report to a standalone HTML page for the
// preview server.
func WriteHTML(markdown, path string) error {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	page := fmt.Sprintf(htmlShell, buf.String())
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}
