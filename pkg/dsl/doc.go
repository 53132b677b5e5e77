/*
Package dsl provides a fluent builder for pipeline templates.

Templates are declared in Go and validated once, when Build is called:

	tmpl := dsl.New("example")

	tmpl.Stage("begin").
		Run("read_verilog", "-lib cells.v").
		RunFunc("hierarchy", func(c domain.Config) string { return "-top " + c.Top })

	tmpl.Stage("opt").
		RunIf(func(c domain.Config) bool { return !c.NoShare }, "(unless -noshare)", "share", "")

	t, err := tmpl.Build()
*/
package dsl
