package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the synthmc banner followed by the version line.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"                 _   _                   ", "#34d399"},
		{"  ___ _   _ _ __ | |_| |__  _ __ ___   ___", "#10b981"},
		{" / __| | | | '_ \\| __| '_ \\| '_ ` _ \\ / __|", "#059669"},
		{" \\__ \\ |_| | | | | |_| | | | | | | | | (__", "#84cc16"},
		{" |___/\\__, |_| |_|\\__|_| |_|_| |_| |_|\\___|", "#65a30d"},
		{"      |___/                               ", "#4d7c0f"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintf(w, "  %s\n\n", termenv.String("version "+version).Faint())
}
