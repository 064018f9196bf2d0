// Package output renders check results as coloured text, JSON or HTML.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwalton/go-supportscolor"
	"github.com/ryanuber/columnize"

	"github.com/vertti/deploycheck/pkg/check"
)

// Formats accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatHTML = "html"
)

var (
	green  = "\033[32m"
	yellow = "\033[33m"
	red    = "\033[31m"
	dim    = "\033[2m"
	reset  = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, yellow, red, dim, reset = "", "", "", "", ""
	}
}

// Render writes r to w in the given format.
func Render(w io.Writer, format string, r Report) error {
	switch format {
	case FormatText, "":
		return Text(w, r)
	case FormatJSON:
		return JSON(w, r)
	case FormatHTML:
		return HTML(w, r)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Text writes one block per result followed by a summary table.
func Text(w io.Writer, r Report) error {
	for _, res := range r.Results {
		if err := printView(w, res); err != nil {
			return err
		}
	}

	s := r.Summary
	table := formatKV([]string{
		fmt.Sprintf("Passed|%d", s.Pass),
		fmt.Sprintf("Warnings|%d", s.Warn),
		fmt.Sprintf("Failed|%d", s.Fail),
		fmt.Sprintf("Total|%d", s.Total),
	})
	_, err := fmt.Fprintf(w, "\n%s\n", table)
	return err
}

// PrintResult writes a single result the same way Text does.
func PrintResult(w io.Writer, r check.Result) error {
	return printView(w, ResultView{
		Name:    r.Name,
		Status:  string(r.Status),
		Message: r.Message,
		Details: r.Details,
	})
}

func printView(w io.Writer, r ResultView) error {
	color := red
	switch check.Status(r.Status) {
	case check.StatusPass:
		color = green
	case check.StatusWarn:
		color = yellow
	}

	prefix := fmt.Sprintf("[%s]", r.Status)
	indent := strings.Repeat(" ", len(prefix)+1)

	line := fmt.Sprintf("%s%s%s %s", color, prefix, reset, r.Name)
	if r.Message != "" {
		line += fmt.Sprintf(" %s(%s)%s", dim, r.Message, reset)
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, d := range r.Details {
		if _, err := fmt.Fprintf(w, "%s%s\n", indent, formatLabel(d)); err != nil {
			return err
		}
	}
	return nil
}

// formatLabel dims the label portion of "label: value" strings.
func formatLabel(s string) string {
	if dim == "" {
		return s
	}
	label, value, found := strings.Cut(s, ": ")
	if !found {
		return s
	}
	return fmt.Sprintf("%s%s:%s %s", dim, label, reset, value)
}

func formatKV(in []string) string {
	conf := columnize.DefaultConfig()
	conf.Glue = " = "
	return columnize.Format(in, conf)
}
