package domain

// VariableGroup bundles physical variables that are requested together,
// along with the source file categories they are read from.
type VariableGroup struct {
	Name  string   `json:"name" yaml:"-"`
	Vars  []string `json:"vars" yaml:"vars"`
	Files []string `json:"files" yaml:"files"`
	Label string   `json:"label" yaml:"label"`
}

// ExperimentCollection is a named set of simulation or observation runs
// plotted together. Reference and Target are empty when unset.
type ExperimentCollection struct {
	Name      string   `json:"name" yaml:"-"`
	Exps      []string `json:"exps" yaml:"exps"`
	Styles    []string `json:"styles" yaml:"styles"`
	Title     string   `json:"title" yaml:"title"`
	Master    string   `json:"master" yaml:"master"`
	Reference string   `json:"reference,omitempty" yaml:"reference,omitempty"`
	Target    string   `json:"target,omitempty" yaml:"target,omitempty"`
}

// HasMember reports whether name is one of the collection's experiments.
func (c ExperimentCollection) HasMember(name string) bool {
	for _, exp := range c.Exps {
		if exp == name {
			return true
		}
	}
	return false
}

// StationConstraints are the station selection criteria applied when
// loading station climatologies.
type StationConstraints struct {
	MinLen   int       `json:"min_len" yaml:"min_len"`     // years required for a valid climatology
	Lat      AxisRange `json:"lat" yaml:"lat"`             // latitude band in degrees north
	MaxZErr  float64   `json:"max_zerr" yaml:"max_zerr"`   // tolerated station/grid elevation error in m
	Prov     string    `json:"prov" yaml:"prov"`           // province code
	EndAfter int       `json:"end_after" yaml:"end_after"` // last record year must be later than this
}

// PlotArgs are the rendering attributes handed to the plotting backend.
type PlotArgs struct {
	Marker     string  `json:"marker,omitempty" yaml:"marker,omitempty"`
	MarkerSize float64 `json:"markersize,omitempty" yaml:"markersize,omitempty"`
	LineStyle  string  `json:"linestyle,omitempty" yaml:"linestyle,omitempty"`
	Color      string  `json:"color,omitempty" yaml:"color,omitempty"`
}

// AxisRange is a (min, max) axis limit pair. It serializes as a two-element list.
type AxisRange [2]float64

// Min returns the lower limit.
func (r AxisRange) Min() float64 { return r[0] }

// Max returns the upper limit.
func (r AxisRange) Max() float64 { return r[1] }

// Experiment describes one simulation run known to a model registry.
type Experiment struct {
	Name  string `json:"name" yaml:"-"`
	Title string `json:"title" yaml:"title"`
	Begin int    `json:"begin" yaml:"begin"`
	End   int    `json:"end" yaml:"end"`
}

// Lookup tables. They are built once and must be treated as read-only.
type (
	VariableTable   map[string]VariableGroup
	CollectionTable map[string]ExperimentCollection
	LabelTable      map[string]string
	PlotArgsTable   map[string]PlotArgs
	RangeTable      map[string]AxisRange
	ShapeTable      map[string]RangeTable
	ExperimentTable map[string]Experiment
	EnsembleTable   map[string][]string
)
