// Package report renders the flow analysis report.
package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/arunjmoorthy/flowlens/internal/flow"
)

const keyInsights = `This flow demonstrates a typical e-commerce user journey. The user successfully:

- Navigated to the website and used the search functionality
- Browsed through product listings to find the right item
- Viewed product details and explored customization options (colors)
- Made a purchase decision and added the item to their cart
- Handled optional add-ons (protection plan)
- Completed the add-to-cart process

The flow showcases a smooth, intuitive shopping experience with clear calls-to-action at each step.`

// Compose renders the full markdown report. imageFilename is the name of the
// generated image file, expected to sit in the same directory as the report.
func Compose(f *flow.Flow, interactions []flow.Interaction, summary, imageFilename string, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Flow Analysis Report\n\n")
	fmt.Fprintf(&sb, "**Flow Name:** %s\n\n", f.Name)
	fmt.Fprintf(&sb, "**Generated:** %s\n\n", now.Format("January 2, 2006 at 3:04 PM"))
	sb.WriteString("---\n\n")

	sb.WriteString("## Overview\n\n")
	sb.WriteString(summary)
	sb.WriteString("\n\n---\n\n")

	sb.WriteString("## User Interactions\n\n")
	sb.WriteString("The following actions were performed during this flow:\n\n")
	for i, in := range interactions {
		fmt.Fprintf(&sb, "%d. **%s**\n", i+1, in.Action)
		if in.Details != "" {
			fmt.Fprintf(&sb, "   - _%s_\n", in.Details)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("---\n\n")

	sb.WriteString("## Key Insights\n\n")
	sb.WriteString(keyInsights)
	sb.WriteString("\n\n---\n\n")

	sb.WriteString("## Social Media Image\n\n")
	fmt.Fprintf(&sb, "![Flow Social Media Image](./%s)\n\n", imageFilename)
	sb.WriteString("*Generated image suitable for sharing on social platforms*\n\n")
	sb.WriteString("---\n\n")

	sb.WriteString("## Flow Statistics\n\n")
	fmt.Fprintf(&sb, "- **Total Steps:** %d\n", len(f.Steps))
	fmt.Fprintf(&sb, "- **User Interactions:** %d\n", len(interactions))
	fmt.Fprintf(&sb, "- **Flow Type:** %s\n", orUnknown(f.UseCase))
	fmt.Fprintf(&sb, "- **Created With:** %s\n", orUnknown(f.CreatedWith))
	sb.WriteString("\n---\n\n")

	if f.UploadID != "" {
		sb.WriteString("## Resources\n\n")
		fmt.Fprintf(&sb, "- **Original Flow:** [View on Arcade](https://app.arcade.software/share/%s)\n", f.UploadID)
		sb.WriteString("\n---\n\n")
	}

	sb.WriteString("*Report generated by flowlens*\n")
	return sb.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// SiblingPath swaps the extension of path for ext (e.g. ".html").
func SiblingPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
