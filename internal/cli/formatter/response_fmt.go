package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rapport/internal/assistant"
	"github.com/charmbracelet/glamour"
)

// defaultWrap is the word-wrap width for rendered messages.
const defaultWrap = 80

// Markdown renders assistant messages. Messages use light markdown
// (bold labels, bullet lists); plain mode returns them unchanged.
type Markdown struct {
	renderer *glamour.TermRenderer
}

// NewMarkdown returns a renderer that wraps at width. With plain set, or
// when the glamour renderer cannot be built, text passes through as-is.
func NewMarkdown(width int, plain bool) *Markdown {
	if plain {
		return &Markdown{}
	}
	if width <= 0 {
		width = defaultWrap
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &Markdown{}
	}
	return &Markdown{renderer: r}
}

func (m *Markdown) Render(text string) string {
	if m == nil || m.renderer == nil || text == "" {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// FormatResponse renders an assistant response: the intent line, the
// message, then any suggested actions and ranked guesses.
func FormatResponse(resp assistant.Response, md *Markdown) string {
	var b strings.Builder

	meta := []string{StylePurple.Render(string(resp.Intent))}
	if resp.Confidence > 0 {
		meta = append(meta, Dim(fmt.Sprintf("%d%% confident", resp.Confidence)))
	}
	if resp.Sentiment != "" {
		meta = append(meta, SentimentStyle(resp.Sentiment).Render(string(resp.Sentiment)))
	}
	if resp.TimeEstimate != "" {
		meta = append(meta, Dim("~"+resp.TimeEstimate))
	}
	b.WriteString(strings.Join(meta, Dim(" · ")))
	b.WriteString("\n\n")
	b.WriteString(md.Render(resp.Message))
	b.WriteString("\n")

	if len(resp.Guesses) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Did you mean"))
		b.WriteString("\n")
		for i, g := range resp.Guesses {
			b.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, g.Description, Dim(fmt.Sprintf("(%d%%)", g.Confidence))))
		}
	}

	if len(resp.SuggestedActions) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Next steps"))
		b.WriteString("\n")
		for _, a := range resp.SuggestedActions {
			b.WriteString(StyleHeader.Render("→ ") + a + "\n")
		}
	}
	return b.String()
}
