package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"viagens/internal/chat"
	"viagens/internal/core"
	"viagens/internal/lodging"
)

var (
	ColorBorder = lipgloss.Color("#282726")
	ColorText   = lipgloss.Color("#FFFCF0")
	ColorMuted  = lipgloss.Color("#6F6E69")
	ColorAccent = lipgloss.Color("#3AA99F")
	ColorGreen  = lipgloss.Color("#879A39")
	ColorOrange = lipgloss.Color("#DA702C")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(ColorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	moneyStyle  = lipgloss.NewStyle().Foreground(ColorGreen)
	warnStyle   = lipgloss.NewStyle().Foreground(ColorOrange)
	dimStyle    = lipgloss.NewStyle().Foreground(ColorBorder)
)

// Table is a bordered text table. The first column is left aligned, the
// others right aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title in a rounded box.
func RenderTitle(title string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)
	return box.Render(titleStyle.Render(title))
}

func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right) + "\n")
	}
	line := func(cells []string, style lipgloss.Style, header bool) {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if i == 0 || header {
				b.WriteString(style.Render(" " + cell + pad + " "))
			} else {
				b.WriteString(style.Render(" " + pad + cell + " "))
			}
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│") + "\n")
	}

	rule("╭", "┬", "╮")
	if len(t.Headers) > 0 {
		line(t.Headers, headerStyle, true)
		rule("├", "┼", "┤")
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}
		line(row, valueStyle, false)
	}
	rule("╰", "┴", "╯")
	return b.String()
}

// RenderLedger renders the entries followed by the total.
func RenderLedger(entries []core.BudgetEntry, total float64) string {
	t := Table{
		Title:   "ORÇAMENTO",
		Headers: []string{"Descrição", "Categoria", "Data", "Valor", "ID"},
	}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{e.Description, string(e.Category), e.Date, core.FormatBRL(e.Total), e.ID})
	}
	t.Rows = append(t.Rows, []string{"---"}, []string{"Total", "", "", core.FormatBRL(total), ""})
	return RenderTable(t)
}

// RenderSummary renders per-category totals.
func RenderSummary(s core.LedgerSummary) string {
	t := Table{Title: "POR CATEGORIA", Headers: []string{"Categoria", "Valor"}}
	for _, c := range s.ByCategory {
		t.Rows = append(t.Rows, []string{string(c.Category), core.FormatBRL(c.Amount)})
	}
	return RenderTable(t) + fmt.Sprintf("  %d lançamentos, total %s\n",
		s.Count, moneyStyle.Render(core.FormatBRL(s.Total)))
}

// RenderStays renders ranked lodging, one table per region.
func RenderStays(sections []lodging.Section) string {
	if len(sections) == 0 {
		return mutedStyle.Render("  Nenhuma hospedagem com nota mínima.") + "\n"
	}
	var b strings.Builder
	for _, s := range sections {
		t := Table{
			Title:   fmt.Sprintf("%s (%s)", s.Region.Name, s.Region.City),
			Headers: []string{"Hospedagem", "Nota", "Diária", "Total", "ID"},
		}
		for _, o := range s.Options {
			name := o.Name
			if o.Preferred {
				name += " ★"
			}
			t.Rows = append(t.Rows, []string{
				name,
				fmt.Sprintf("%.1f", o.Rating),
				core.FormatBRL(o.PricePerNight),
				core.FormatBRL(o.PriceTotal),
				o.ID,
			})
		}
		b.WriteString(RenderTable(t))
		if s.Region.Safety != "" {
			b.WriteString("  " + warnStyle.Render(s.Region.Safety) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderReply renders one chat turn.
func RenderReply(m chat.Message) string {
	who := "você"
	style := valueStyle
	if m.Role == chat.RoleModel {
		who = "VIAgens"
		style = headerStyle
	}
	return style.Render(who+":") + " " + m.Text + "\n"
}
