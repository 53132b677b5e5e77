/*
Package options resolves synth_mc option tokens into an immutable domain.Config.

Parsing follows the pass convention: options are consumed left to right and parsing
stops at the first token that is not a recognized option. The remaining tokens are
handed to the extra-argument collector, which rejects unknown dash options and keeps
everything else as a selection for the full-selection precondition.

	cfg, err := options.Parse([]string{"-top", "cpu", "-nofsm", "-run", "coarse:fine"})

Profiles are YAML files holding default option values. They are turned back into
tokens and prepended to the command line, so explicit flags always win.
*/
package options
