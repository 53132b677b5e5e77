package options

import (
	"fmt"
	"io"
	"strings"
)

// Usage returns the option as shown in help output, e.g. "-techlib <path>".
func (o Option) Usage() string {
	return strings.TrimSpace(o.Name + " " + o.Arg)
}

// WriteHelp writes the usage line, summary and the option reference for the pass name.
func WriteHelp(w io.Writer, name, summary string) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n    %s [options]\n\n", name)
	if summary != "" {
		sb.WriteString(strings.TrimRight(summary, "\n"))
		sb.WriteString("\n\n")
	}
	for _, o := range table {
		fmt.Fprintf(&sb, "    %s\n", o.Usage())
		for _, line := range strings.Split(o.Help, "\n") {
			fmt.Fprintf(&sb, "        %s\n", line)
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
