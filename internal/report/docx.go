package report

import (
	"fmt"
	"os"

	"github.com/fumiama/go-docx"

	"github.com/arunjmoorthy/flowlens/internal/flow"
)

// WriteDocx renders a Word version of the report for operators who need to
// paste it into documents. It mirrors the markdown layout minus the image
// embed.
func WriteDocx(f *flow.Flow, interactions []flow.Interaction, summary, path string) error {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText("Flow Analysis Report").Size("36").Bold()
	doc.AddParagraph().AddText("Flow Name: " + f.Name).Bold()
	doc.AddParagraph()

	doc.AddParagraph().AddText("Overview").Size("28").Bold()
	doc.AddParagraph().AddText(summary)
	doc.AddParagraph()

	doc.AddParagraph().AddText("User Interactions").Size("28").Bold()
	for i, in := range interactions {
		doc.AddParagraph().AddText(fmt.Sprintf("%d. %s", i+1, in.Action))
		if in.Details != "" {
			doc.AddParagraph().AddText("    " + in.Details).Italic()
		}
	}
	doc.AddParagraph()

	doc.AddParagraph().AddText("Flow Statistics").Size("28").Bold()
	doc.AddParagraph().AddText(fmt.Sprintf("Total Steps: %d", len(f.Steps)))
	doc.AddParagraph().AddText(fmt.Sprintf("User Interactions: %d", len(interactions)))
	doc.AddParagraph().AddText("Flow Type: " + orUnknown(f.UseCase))

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create docx: %w", err)
	}
	defer out.Close()
	if _, err := doc.WriteTo(out); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
