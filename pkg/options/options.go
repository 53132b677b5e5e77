package options

import (
	"strings"

	"github.com/aretw0/synthmc/pkg/domain"
)

// Option describes one recognized token.
type Option struct {
	Name  string
	Arg   string // placeholder shown in help; empty for flags
	Help  string
	apply func(cfg *domain.Config, value string)
}

// TakesValue reports whether the option consumes the next token.
func (o Option) TakesValue() bool {
	return o.Arg != ""
}

var table = []Option{
	{
		Name: "-top", Arg: "<module>",
		Help:  "use the specified module as top module",
		apply: func(cfg *domain.Config, v string) { cfg.Top = v },
	},
	{
		Name:  "-auto-top",
		Help:  "automatically determine the top of the design hierarchy",
		apply: func(cfg *domain.Config, _ string) { cfg.AutoTop = true },
	},
	{
		Name: "-flatten",
		Help: "flatten the design before synthesis. this will pass '-auto-top' to\n" +
			"'hierarchy' if no top module is specified.",
		apply: func(cfg *domain.Config, _ string) { cfg.Flatten = true },
	},
	{
		Name: "-encfile", Arg: "<file>",
		Help:  "passed to 'fsm_recode' via 'fsm'",
		apply: func(cfg *domain.Config, v string) { cfg.EncFile = v },
	},
	{
		Name:  "-nofsm",
		Help:  "do not run FSM optimization",
		apply: func(cfg *domain.Config, _ string) { cfg.NoFSM = true },
	},
	{
		Name:  "-nordff",
		Help:  "passed to 'memory'. prohibits merging of FFs into memory read ports",
		apply: func(cfg *domain.Config, _ string) { cfg.NoRDFF = true },
	},
	{
		Name:  "-noshare",
		Help:  "do not run SAT-based resource sharing",
		apply: func(cfg *domain.Config, _ string) { cfg.NoShare = true },
	},
	{
		Name: "-techlib", Arg: "<path>",
		Help:  "Path to the MCPNR techlib.\nDefaults to: " + domain.DefaultTechlib,
		apply: func(cfg *domain.Config, v string) { cfg.Techlib = v },
	},
	{
		Name: "-run", Arg: "<from_label>[:<to_label>]",
		Help: "only run the commands between the labels (see below). an empty\n" +
			"from label is synonymous to 'begin', and empty to label is\n" +
			"synonymous to the end of the command list.",
		apply: func(cfg *domain.Config, v string) { cfg.Range = domain.ParseRange(v) },
	},
}

var index = func() map[string]Option {
	m := make(map[string]Option, len(table))
	for _, o := range table {
		m[o.Name] = o
	}
	return m
}()

// All returns the recognized options in help order.
func All() []Option {
	return append([]Option(nil), table...)
}

// Lookup returns the option named by token.
func Lookup(token string) (Option, bool) {
	o, ok := index[token]
	return o, ok
}

// Parse resolves tokens into a Config.
// It never touches external state.
func Parse(tokens []string) (domain.Config, error) {
	cfg := domain.NewConfig()

	idx := 0
	for ; idx < len(tokens); idx++ {
		opt, ok := Lookup(tokens[idx])
		if !ok {
			break
		}
		var value string
		if opt.TakesValue() {
			if idx+1 >= len(tokens) {
				return domain.Config{}, &domain.ConfigurationError{Option: opt.Name, Reason: "missing argument"}
			}
			idx++
			value = tokens[idx]
		}
		opt.apply(&cfg, value)
	}

	selection, err := collectExtra(tokens[idx:])
	if err != nil {
		return domain.Config{}, err
	}
	cfg.Selection = selection
	return cfg, nil
}

// collectExtra handles the tokens left over after option parsing.
// Dash tokens are unknown options; anything else selects part of the design.
func collectExtra(rest []string) ([]string, error) {
	if len(rest) == 0 {
		return nil, nil
	}
	selection := make([]string, 0, len(rest))
	for _, tok := range rest {
		if strings.HasPrefix(tok, "-") && len(tok) > 1 {
			return nil, &domain.ConfigurationError{Option: tok, Reason: "unknown option"}
		}
		selection = append(selection, tok)
	}
	return selection, nil
}
