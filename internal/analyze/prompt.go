package analyze

import (
	"fmt"
	"strings"

	"github.com/arunjmoorthy/flowlens/internal/flow"
)

const summarySystem = "You are an expert at analyzing user behavior and creating clear, engaging summaries of user flows."

const summaryTemplate = `Analyze this user flow recording and provide a comprehensive summary.

Flow Name: %s

User Actions:
%s

Please provide:
1. A clear, 2-3 sentence summary of what the user was trying to accomplish
2. The key steps they took to achieve this goal
3. Any notable patterns or insights about their behavior

Write in a friendly, professional tone suitable for a product demo or tutorial.`

// BuildSummaryPrompt renders the summary prompt with a numbered list of the
// extracted actions.
func BuildSummaryPrompt(flowName string, interactions []flow.Interaction) string {
	var sb strings.Builder
	for i, in := range interactions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, in.Action)
	}
	return fmt.Sprintf(summaryTemplate, flowName, strings.TrimRight(sb.String(), "\n"))
}

const imageTemplate = `Create a modern, eye-catching social media image for a product tutorial.

Theme: %s

The image should:
- Feature a clean, modern e-commerce interface design
- Show a shopping journey with visual elements like a search bar, product cards, and a shopping cart
- Use a vibrant color scheme with blues, reds, and whites
- Include abstract representations of user interactions (clicks, selections)
- Have a professional, engaging look suitable for social media
- Show the concept of online shopping made easy
- No text in the image

Style: Modern, minimal, professional, engaging, suitable for LinkedIn or Twitter`

// BuildImagePrompt renders the image-generation prompt for a flow.
func BuildImagePrompt(flowName string) string {
	return fmt.Sprintf(imageTemplate, flowName)
}
