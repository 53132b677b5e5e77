// Package synth declares the synth_mc synthesis template, which maps a design
// onto Minecraft logic gates using the MCPNR technology library.
package synth

import (
	"fmt"
	"strings"

	"github.com/aretw0/synthmc/pkg/domain"
	"github.com/aretw0/synthmc/pkg/dsl"
	"github.com/aretw0/synthmc/pkg/pipeline"
)

// Name is the pass name. It also heads every run log.
const Name = "synth_mc"

// Summary heads the help text.
const Summary = "This command runs synthesis to minecraft logic gates. This command does not\n" +
	"operate on partly selected designs."

// ScriptIntro introduces the stage listing in the help text.
const ScriptIntro = "The following commands are executed by this synthesis command:"

// Technology library files, relative to Config.Techlib.
const (
	CellsSim = "cells_sim.v"
	Liberty  = "minecraft.lib"
)

// Template is the synth_mc pipeline: begin, coarse, fine and check.
var Template = newTemplate()

func newTemplate() *pipeline.Template {
	b := dsl.New(Name)

	b.Stage(domain.LabelBegin).
		RunFunc("read_verilog", func(c domain.Config) string { return "-lib " + techfile(c, CellsSim) }).
		RunFunc("hierarchy", hierarchyArgs).
		Synopsis("-check [-top <top> | -auto-top]")

	b.Stage(domain.LabelCoarse).
		Run("proc", "").
		RunIf(flatten, "(if -flatten)", "flatten", "").
		Run("opt_expr", "").
		Run("opt_clean", "").
		Run("check", "").
		Run("opt", "-nodffe -nosdff").
		RunFunc("fsm", func(c domain.Config) string { return strings.TrimSpace(c.FSMOptions()) }).
		When(fsm, "(unless -nofsm)").
		Run("opt", "").
		Run("wreduce", "").
		Run("peepopt", "").
		Run("opt_clean", "").
		Run("alumacc", "").
		RunIf(share, "(unless -noshare)", "share", "").
		Run("opt", "").
		RunFunc("memory", func(c domain.Config) string { return "-nomap" + c.MemoryOptions() }).
		Run("opt_clean", "")

	b.Stage(domain.LabelFine).
		Run("opt", "-fast -full").
		Run("memory_map", "").
		Run("opt", "-full").
		Run("techmap", "").
		Run("opt", "-fast").
		RunFunc("dfflibmap", libertyArgs).
		Run("opt", "-fast").
		RunFunc("abc", libertyArgs).
		Run("opt", "-fast")

	b.Stage(domain.LabelCheck).
		Run("stat", "").
		Run("check", "")

	return b.MustBuild()
}

// Build resolves the synth_mc template against cfg.
func Build(cfg domain.Config) *pipeline.Pipeline {
	return Template.Build(cfg)
}

func hierarchyArgs(c domain.Config) string {
	switch {
	case c.Top != "":
		return fmt.Sprintf("-check -top %s", c.Top)
	case c.Flatten || c.AutoTop:
		return "-check -auto-top"
	default:
		return "-check"
	}
}

func libertyArgs(c domain.Config) string {
	return "-liberty " + techfile(c, Liberty)
}

// techfile is handed to yosys verbatim, so the techlib path is not cleaned.
func techfile(c domain.Config, name string) string {
	return c.Techlib + "/" + name
}

func flatten(c domain.Config) bool { return c.Flatten }
func fsm(c domain.Config) bool     { return !c.NoFSM }
func share(c domain.Config) bool   { return !c.NoShare }
