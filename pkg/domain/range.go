package domain

import "strings"

// Range is an inclusive interval of stages identified by label.
// An empty From means the first stage, an empty To means the last one.
type Range struct {
	From string `json:"from,omitempty" yaml:"from,omitempty"`
	To   string `json:"to,omitempty" yaml:"to,omitempty"`
}

// ParseRange decodes a "from[:to]" value.
// Without a separator the range selects the single stage named by value.
func ParseRange(value string) Range {
	from, to, found := strings.Cut(value, RangeSeparator)
	if !found {
		return Range{From: value, To: value}
	}
	return Range{From: from, To: to}
}

// IsFull reports whether the range selects the whole pipeline.
func (r Range) IsFull() bool {
	return r.From == "" && r.To == ""
}

func (r Range) String() string {
	if r.From == r.To && r.From != "" {
		return r.From
	}
	return r.From + RangeSeparator + r.To
}
