package page

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

var (
	rateLineRe  = regexp.MustCompile(`^\s*(.+?):\s*(.+)`)
	aprPrefixRe = regexp.MustCompile(`(?i)^APR:\s*`)
)

// RateRow is one parsed "Label: rate | APR: apr" line.
type RateRow struct {
	Product string
	// Info is everything after the label, as typed.
	Info string
	Rate string
	APR  string
}

// ParseRates reads one row per "Label: value" line. Blank and malformed lines
// are skipped.
func ParseRates(rates string) []RateRow {
	var rows []RateRow
	for _, line := range strings.Split(rates, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := rateLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		info := strings.TrimSpace(m[2])
		parts := strings.Split(info, "|")
		row := RateRow{
			Product: strings.TrimSpace(m[1]),
			Info:    info,
			Rate:    strings.TrimSpace(parts[0]),
		}
		if len(parts) > 1 {
			row.APR = aprPrefixRe.ReplaceAllString(strings.TrimSpace(parts[1]), "")
		}
		rows = append(rows, row)
	}
	return rows
}

// RateTable renders the three-column table of the rate page, or "" when no
// line parses.
func RateTable(rates string) (string, error) {
	rows := ParseRates(rates)
	if len(rows) == 0 {
		return "", nil
	}
	return execute("ratetable", struct{ Rows []RateRow }{rows})
}

// RateBox renders the compact two-column box used inside newsletters.
func (b *Builder) RateBox(rates string) (string, error) {
	rows := ParseRates(rates)
	if len(rows) == 0 {
		return "", nil
	}
	return execute("ratebox", struct {
		Rows      []RateRow
		FirstName string
	}{rows, b.profile.FirstName()})
}

type badge struct {
	Label      string
	Color      string
	Background string
	Icon       string
}

var badges = map[string]badge{
	"down":     {Label: "Rates Dropped", Color: "#059669", Background: "#ECFDF5", Icon: "&#8595;"},
	"up":       {Label: "Rates Went Up", Color: "#DC2626", Background: "#FEF2F2", Icon: "&#8593;"},
	"flat":     {Label: "Rates Unchanged", Color: "#6B7280", Background: "#F3F4F6", Icon: "&#8596;"},
	"volatile": {Label: "Rates Mixed", Color: "#D97706", Background: "#FFFBEB", Icon: "&#8597;"},
}

// DirectionBadge renders the weekly movement pill. Unknown directions render
// nothing.
func DirectionBadge(direction string) (string, error) {
	b, ok := badges[direction]
	if !ok {
		return "", nil
	}
	return execute("badge", b)
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
