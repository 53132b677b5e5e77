package domain

// DefaultTechlib is the techlib directory used when -techlib is not given.
const DefaultTechlib = "techlib"

// Canonical stage labels of the synth_mc script.
const (
	LabelBegin  = "begin"
	LabelCoarse = "coarse"
	LabelFine   = "fine"
	LabelCheck  = "check"
)

// RangeSeparator splits the from and to labels of a -run value.
const RangeSeparator = ":"
