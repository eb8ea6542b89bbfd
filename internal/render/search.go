package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mesh-intelligence/liuren/internal/search"
	"github.com/mesh-intelligence/liuren/pkg/types"
)

// Matches writes reverse search results, one per line.
func (r *Renderer) Matches(w io.Writer, target types.PillarLabels, matches []search.Match) error {
	var sb strings.Builder
	sb.WriteString(r.Theme.Title.Render("搜索：" + target.String()) + "\n")
	if len(matches) == 0 {
		sb.WriteString("未找到匹配日期\n")
	} else {
		fmt.Fprintf(&sb, "找到 %d 個匹配日期：\n", len(matches))
		for _, m := range matches {
			fmt.Fprintf(&sb, "  %s (農曆 %s)\n", m.SolarText, m.LunarText)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// PairRow is one row of the sexagenary table.
type PairRow struct {
	Index int    `json:"index" yaml:"index"`
	Label string `json:"label" yaml:"label"`
	Code  string `json:"code" yaml:"code"`
}

// PairRows lists the sixty pairs in cycle order, 1-based.
func PairRows() []PairRow {
	pairs := types.Pairs()
	rows := make([]PairRow, len(pairs))
	for i, p := range pairs {
		rows[i] = PairRow{Index: i + 1, Label: p.Label(), Code: p.Code()}
	}
	return rows
}

// Pairs writes the sexagenary table with numeric codes.
func (r *Renderer) Pairs(w io.Writer) error {
	t := table.New().
		Headers("#", "干支", "代碼").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.Theme.Title.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, row := range PairRows() {
		t.Row(strconv.Itoa(row.Index), row.Label, row.Code)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// Progress draws a search progress bar on a writer, usually stderr.
type Progress struct {
	w   io.Writer
	bar progress.Model
}

// NewProgress returns a progress bar width cells wide.
func NewProgress(w io.Writer, width int) *Progress {
	return &Progress{
		w:   w,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(width)),
	}
}

// Report redraws the bar at fraction f. It ends the line at 1.
// Report satisfies search.ProgressFunc.
func (p *Progress) Report(f float64) {
	fmt.Fprint(p.w, "\r"+p.bar.ViewAs(f))
	if f >= 1 {
		fmt.Fprintln(p.w)
	}
}
