package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/liuren/internal/cast"
	"github.com/mesh-intelligence/liuren/internal/mansion"
	"github.com/mesh-intelligence/liuren/pkg/types"
)

const rule = "---------------------------------------------"

// Renderer writes human-readable output.
type Renderer struct {
	Theme Theme
}

// New returns a Renderer with theme.
func New(theme Theme) *Renderer {
	return &Renderer{Theme: theme}
}

// Reading writes a full cast. A reading without a board shows placeholders
// for every board field.
func (r *Renderer) Reading(w io.Writer, rd *cast.Reading) error {
	info := rd.Calendar
	b := rd.Board

	var sb strings.Builder
	sb.WriteString(r.Theme.Title.Render("【六壬排盤】") + "\n")
	sb.WriteString(checkLine(info) + "\n")
	fmt.Fprintf(&sb, "公曆：%s | 農曆：%s\n", info.SolarText, info.LunarText)
	fmt.Fprintf(&sb, "格局：%s\n", first(formation(b)))
	fmt.Fprintf(&sb, "旬空：%s | 日馬：%s\n", orPlaceholder(info.DayVoid), orPlaceholder(dayHorse(b)))
	sb.WriteString(rule + "\n")

	var tr types.Transmissions
	if b != nil {
		tr = b.Transmissions
	}
	sb.WriteString(r.Theme.Section.Render("【三傳】") + "　　　　　　" + r.Theme.Section.Render("【四課】") + "\n")
	fmt.Fprintf(&sb, "初傳：%s　　　　　%s\n", pad(strings.Join(tr.Initial, ""), 3), courseRow(b, 0))
	fmt.Fprintf(&sb, "中傳：%s　　　　　%s\n", pad(strings.Join(tr.Middle, ""), 3), courseRow(b, 1))
	fmt.Fprintf(&sb, "末傳：%s\n", strings.Join(tr.Final, ""))
	sb.WriteString(rule + "\n")

	m := rd.Mansions
	sb.WriteString(r.Theme.Section.Render("【用禽】") + "\n")
	fmt.Fprintf(&sb, "地禽：%s (主) VS %s (客) | 天禽：%s\n", m.Home, m.Away, m.Sky)
	fmt.Fprintf(&sb, "%s | 起宿：%s\n", m.Weekday, m.Origin)
	sb.WriteString(rule + "\n")

	sb.WriteString(r.Theme.Section.Render("【天地盤】") + "\n")
	sb.WriteString(plateGrid(b))
	sb.WriteString(r.Theme.Faint.Render("request "+rd.RequestID) + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// Pillars writes the calendar check for one instant.
func (r *Renderer) Pillars(w io.Writer, info types.CalendarInfo) error {
	var sb strings.Builder
	sb.WriteString(r.Theme.Title.Render(checkLine(info)) + "\n")
	fmt.Fprintf(&sb, "公曆：%s\n", info.SolarText)
	fmt.Fprintf(&sb, "農曆：%s\n", info.LunarText)
	fmt.Fprintf(&sb, "月份：%s | 旬空：%s\n", orPlaceholder(info.LunarMonth), orPlaceholder(info.DayVoid))
	_, err := io.WriteString(w, sb.String())
	return err
}

func checkLine(info types.CalendarInfo) string {
	return fmt.Sprintf("核對：%s (%s)", info.Pillars, orPlaceholder(info.SolarTerm))
}

func formation(b *types.Board) []string {
	if b == nil {
		return nil
	}
	return b.Formation
}

func dayHorse(b *types.Board) string {
	if b == nil {
		return ""
	}
	return b.DayHorse
}

func first(s []string) string {
	if len(s) == 0 {
		return mansion.Placeholder
	}
	return s[0]
}

func orPlaceholder(s string) string {
	if s == "" {
		return mansion.Placeholder
	}
	return s
}

// pad right-fills s with full-width spaces to n runes.
func pad(s string, n int) string {
	if k := len([]rune(s)); k < n {
		s += strings.Repeat("　", n-k)
	}
	return s
}

// courseRow lays out one row of the four courses, fourth course first.
func courseRow(b *types.Board, pos int) string {
	cells := make([]string, 0, len(types.CourseNames))
	for i := len(types.CourseNames) - 1; i >= 0; i-- {
		c := b.CourseCell(types.CourseNames[i], pos)
		if c == "" {
			c = " "
		}
		cells = append(cells, c)
	}
	return strings.Join(cells, " ")
}

// plateGrid draws the twelve palaces around the board, each as the heaven
// general followed by the heaven plate branch standing over that earth branch.
func plateGrid(b *types.Board) string {
	cell := func(branch string) string {
		var g, p string
		if b != nil {
			g, p = b.Generals[branch], b.Plate[branch]
		}
		if g == "" {
			g = "  "
		}
		if p == "" {
			p = "  "
		}
		return g + p
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "　　%s %s %s %s\n", cell("巳"), cell("午"), cell("未"), cell("申"))
	fmt.Fprintf(&sb, "　　%s 　　　　 %s\n", cell("辰"), cell("酉"))
	fmt.Fprintf(&sb, "　　%s 　　　　 %s\n", cell("卯"), cell("戌"))
	fmt.Fprintf(&sb, "　　%s %s %s %s\n", cell("寅"), cell("丑"), cell("子"), cell("亥"))
	return sb.String()
}
