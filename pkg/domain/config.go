package domain

// Predicate decides whether a conditional step is part of a run.
// It is evaluated exactly once per pipeline build.
type Predicate func(Config) bool

// Always is the default step condition.
func Always(Config) bool { return true }

// Config is the resolved set of run-time options.
// It is a value type: once parsed it is never mutated for the duration of a build.
type Config struct {
	Top       string   `json:"top,omitempty" yaml:"top,omitempty"`
	AutoTop   bool     `json:"auto_top,omitempty" yaml:"auto_top,omitempty"`
	Flatten   bool     `json:"flatten,omitempty" yaml:"flatten,omitempty"`
	EncFile   string   `json:"encfile,omitempty" yaml:"encfile,omitempty"`
	NoFSM     bool     `json:"nofsm,omitempty" yaml:"nofsm,omitempty"`
	NoRDFF    bool     `json:"nordff,omitempty" yaml:"nordff,omitempty"`
	NoShare   bool     `json:"noshare,omitempty" yaml:"noshare,omitempty"`
	Techlib   string   `json:"techlib" yaml:"techlib"`
	Range     Range    `json:"range" yaml:"range"`
	Selection []string `json:"selection,omitempty" yaml:"selection,omitempty"`
}

// NewConfig returns a Config holding the defaults of every option.
func NewConfig() Config {
	return Config{Techlib: DefaultTechlib}
}

// FSMOptions returns the extra arguments passed to the fsm pass.
func (c Config) FSMOptions() string {
	if c.EncFile == "" {
		return ""
	}
	return " -encfile " + c.EncFile
}

// MemoryOptions returns the extra arguments passed to the memory pass.
func (c Config) MemoryOptions() string {
	if c.NoRDFF {
		return " -nordff"
	}
	return ""
}

// Clone returns a copy that shares no slices with c.
func (c Config) Clone() Config {
	out := c
	if c.Selection != nil {
		out.Selection = append([]string(nil), c.Selection...)
	}
	return out
}

// FullSelection reports whether selection arguments leave the whole design in scope.
// No arguments, or only the "*" wildcard, select everything.
func FullSelection(selection []string) bool {
	for _, s := range selection {
		if s != "*" {
			return false
		}
	}
	return true
}
