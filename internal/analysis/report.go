package analysis

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/spacesedan/stockpulse/internal/models"
)

var (
	blue  = lipgloss.Color("#3B82F6")
	green = lipgloss.Color("#10B981")
)

// Reporter prints one block per reported symbol. Colors are dropped when w
// is not a terminal.
type Reporter struct {
	w      io.Writer
	symbol lipgloss.Style
	label  lipgloss.Style
}

func NewReporter(w io.Writer) *Reporter {
	r := lipgloss.NewRenderer(w)
	return &Reporter{
		w:      w,
		symbol: r.NewStyle().Foreground(blue).Bold(true),
		label:  r.NewStyle().Foreground(green).Bold(true),
	}
}

func (r *Reporter) Report(symbol string, decision models.StockDecision) {
	fmt.Fprintf(r.w, "%s\n%s\n%s\n\n",
		r.symbol.Render("Stock: "+symbol),
		fmt.Sprintf("Average Sentiment Score: %.4f", decision.Score),
		r.label.Render("Overall Sentiment: "+string(decision.Label)),
	)
}
