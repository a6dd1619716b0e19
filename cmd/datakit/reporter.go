package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/rmckay/datakit/internal/runner"
	"github.com/rmckay/datakit/internal/stats"
)

// formatStat renders a statistic with up to four decimals, trimming
// trailing zeros so integers stay integers.
func formatStat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// formatSummaryTable renders one summary as an aligned two-column table.
func formatSummaryTable(source string, dropped int, s *stats.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Source: %s\n", source)
	if dropped > 0 {
		fmt.Fprintf(&b, "Dropped (non-numeric): %d\n", dropped)
	}
	b.WriteString("\n")

	rows := [][2]string{
		{"count", strconv.Itoa(s.Count)},
		{"sum", formatStat(s.Sum)},
		{"mean", formatStat(s.Mean)},
		{"median", formatStat(s.Median)},
		{"mode", formatStat(s.Mode)},
		{"min", formatStat(s.Min)},
		{"max", formatStat(s.Max)},
		{"range", formatStat(s.Range)},
		{"variance", formatStat(s.Variance)},
		{"std dev", formatStat(s.StdDev)},
	}
	if s.Detailed != nil {
		rows = append(rows,
			[2]string{"q1", formatStat(s.Detailed.Q1)},
			[2]string{"q3", formatStat(s.Detailed.Q3)},
			[2]string{"iqr", formatStat(s.Detailed.IQR)},
			[2]string{"skewness", formatMaybe(s.Detailed.Skewness)},
			[2]string{"kurtosis", formatMaybe(s.Detailed.Kurtosis)},
		)
	}

	labelWidth := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r[0]); w > labelWidth {
			labelWidth = w
		}
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%s  %s\n", padRight(r[0], labelWidth), r[1])
	}

	return b.String()
}

// formatMaybe renders an optional statistic; undefined values (zero
// standard deviation) show as a dash.
func formatMaybe(v *float64) string {
	if v == nil {
		return "—"
	}
	return formatStat(*v)
}

// formatJobTable renders a batch outcome, one row per source.
func formatJobTable(outcome *runner.JobOutcome) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Job: %s\n", outcome.JobName)
	fmt.Fprintf(&b, "Sources: %d total, %d ok, %d no data, %d failed\n\n",
		len(outcome.Sources), outcome.Succeeded, outcome.NoData, outcome.Errors)

	nameWidth := len("SOURCE")
	for _, so := range outcome.Sources {
		if w := runewidth.StringWidth(so.Name); w > nameWidth {
			nameWidth = w
		}
	}

	const colWidth = 10
	fmt.Fprintf(&b, "%s  %s  %s  %s  %s  %s\n",
		padRight("SOURCE", nameWidth),
		padRight("STATUS", colWidth),
		padRight("COUNT", colWidth),
		padRight("MEAN", colWidth),
		padRight("MEDIAN", colWidth),
		"STDDEV")

	for _, so := range outcome.Sources {
		count, mean, median, stddev := "—", "—", "—", "—"
		status := string(so.Status)
		if so.Summary != nil {
			count = strconv.Itoa(so.Summary.Count)
			mean = formatStat(so.Summary.Mean)
			median = formatStat(so.Summary.Median)
			stddev = formatStat(so.Summary.StdDev)
		}
		fmt.Fprintf(&b, "%s  %s  %s  %s  %s  %s\n",
			padRight(so.Name, nameWidth),
			padRight(status, colWidth),
			padRight(count, colWidth),
			padRight(mean, colWidth),
			padRight(median, colWidth),
			stddev)
	}

	return b.String()
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
