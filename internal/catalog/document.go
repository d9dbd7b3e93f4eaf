package catalog

import "github.com/couchcryptid/clim-settings-service/internal/domain"

// document is the on-disk shape of the catalog before expansion.
type document struct {
	Wetday           wetdaySpec                              `yaml:"wetday"`
	Variables        map[string]domain.VariableGroup         `yaml:"variables"`
	DerivedVariables map[string]derivedGroupSpec             `yaml:"derived_variables"`
	Constraints      domain.StationConstraints               `yaml:"constraints"`
	Collections      map[string]domain.ExperimentCollection  `yaml:"collections"`
	Experiments      modelSpec[map[string]domain.Experiment] `yaml:"experiments"`
	Ensembles        modelSpec[map[string][]string]          `yaml:"ensembles"`
	PlotLabels       map[string]string                       `yaml:"plot_labels"`
	PlotStyles       map[string]domain.PlotArgs              `yaml:"plot_styles"`
	DatasetPlotArgs  map[string]string                       `yaml:"dataset_plotargs"`
	VariablePlotArgs map[string]domain.PlotArgs              `yaml:"variable_plotargs"`
	DerivedPlotArgs  derivedPlotArgsSpec                     `yaml:"derived_plotargs"`
	ShapeDefaults    map[string]domain.AxisRange             `yaml:"shape_defaults"`
	ShapeSpecifics   map[string]map[string]domain.AxisRange  `yaml:"shape_specifics"`
}

type wetdaySpec struct {
	Extensions []string `yaml:"extensions"`
	Colors     []string `yaml:"colors"`
}

// derivedGroupSpec generates a variable group from the wet-day extensions:
// Prepend, then every prefix for each of the first Count extensions, then Append.
type derivedGroupSpec struct {
	Prepend  []string `yaml:"prepend"`
	Prefixes []string `yaml:"prefixes"`
	Count    int      `yaml:"count"`
	Append   []string `yaml:"append"`
	Files    []string `yaml:"files"`
	Label    string   `yaml:"label"`
}

type derivedPlotArgsSpec struct {
	Prefixes []string `yaml:"prefixes"`
}

type modelSpec[T any] struct {
	WRF  T `yaml:"wrf"`
	CESM T `yaml:"cesm"`
}
