package catalog

import "github.com/couchcryptid/clim-settings-service/internal/domain"

// Snapshot is the fully expanded catalog in serializable form.
type Snapshot struct {
	WetdayExtensions []string                  `json:"wetday_extensions" yaml:"wetday_extensions"`
	Variables        domain.VariableTable      `json:"variables" yaml:"variables"`
	Constraints      domain.StationConstraints `json:"constraints" yaml:"constraints"`
	Collections      domain.CollectionTable    `json:"collections" yaml:"collections"`
	PlotLabels       domain.LabelTable         `json:"plot_labels" yaml:"plot_labels"`
	DatasetPlotArgs  domain.PlotArgsTable      `json:"dataset_plotargs" yaml:"dataset_plotargs"`
	VariablePlotArgs domain.PlotArgsTable      `json:"variable_plotargs" yaml:"variable_plotargs"`
	ShapeDefaults    domain.RangeTable         `json:"shape_defaults" yaml:"shape_defaults"`
	ShapeAnnotation  domain.ShapeTable         `json:"shape_annotation" yaml:"shape_annotation"`
	WRFExperiments   domain.ExperimentTable    `json:"wrf_experiments" yaml:"wrf_experiments"`
	CESMExperiments  domain.ExperimentTable    `json:"cesm_experiments" yaml:"cesm_experiments"`
	WRFEnsembles     domain.EnsembleTable      `json:"wrf_ensembles" yaml:"wrf_ensembles"`
	CESMEnsembles    domain.EnsembleTable      `json:"cesm_ensembles" yaml:"cesm_ensembles"`
}

// Snapshot returns every table of the catalog.
func (c *Catalog) Snapshot() Snapshot {
	return Snapshot{
		WetdayExtensions: c.wetdayExtensions,
		Variables:        c.variables,
		Constraints:      c.constraints,
		Collections:      c.collections,
		PlotLabels:       c.plotLabels,
		DatasetPlotArgs:  c.datasetPlotArgs,
		VariablePlotArgs: c.variablePlotArgs,
		ShapeDefaults:    c.shapeDefaults,
		ShapeAnnotation:  c.shapeAnnotation,
		WRFExperiments:   c.wrfExps,
		CESMExperiments:  c.cesmExps,
		WRFEnsembles:     c.wrfEns,
		CESMEnsembles:    c.cesmEns,
	}
}
