package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const nameWidth = 28

// cellText pads or truncates s to exactly w terminal columns.
func cellText(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

// writeRow prints one table line: rank, name padded to nameWidth, then
// right-aligned numeric columns.
func writeRow(w io.Writer, rank, name string, cols ...string) {
	var b strings.Builder
	fmt.Fprintf(&b, "%4s  %s", rank, cellText(name, nameWidth))
	for _, c := range cols {
		fmt.Fprintf(&b, "  %6s", c)
	}
	fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
}

func score(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
