/*
Package synthmc runs the synth_mc synthesis script, which maps a design onto
Minecraft logic gates, as a staged pipeline.

The pass is expressed as a fixed template of labelled stages (begin, coarse, fine
and check). Each stage holds steps, and each step is one external command with
arguments resolved from the option tokens. Some steps are conditional. Conditions
are evaluated once, when the pipeline is built, and the result is shared by the
executor and by describe mode, so "run it" and "explain it" can never disagree.

# Concept

The engine owns no design state. Every step is handed to a Host (see pkg/ports),
which runs it against the design it manages. The default Host runs each pass in a
fresh yosys process and carries the design between passes as an RTLIL checkpoint.

# Usage

	eng := synthmc.New(synthmc.WithLogger(logger))

	// Explain what would run.
	_ = eng.Describe(os.Stdout, []string{"-flatten"})

	// Run a slice of the script.
	report, err := eng.Synthesize(ctx, []string{"-top", "cpu", "-run", "coarse:fine"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(report.Commands())
*/
package synthmc
