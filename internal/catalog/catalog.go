// Package catalog holds the project lookup tables: variable collections,
// dataset collections, station constraints, plot labels and styles, and
// per-shape axis ranges.
//
// A Catalog is built once by [Load] and never modified afterwards, so it can
// be shared freely between goroutines. Accessors return the tables
// themselves rather than copies; callers must not mutate them.
package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/couchcryptid/clim-settings-service/internal/domain"
)

// ErrNotFound is returned when a table or key does not exist.
var ErrNotFound = errors.New("not found")

// Table names accepted by Keys, Entry and Table.
const (
	TableVariables        = "variables"
	TableCollections      = "collections"
	TableConstraints      = "constraints"
	TableLabels           = "labels"
	TableDatasetPlotArgs  = "dataset-plotargs"
	TableVariablePlotArgs = "variable-plotargs"
	TableShapeDefaults    = "shape-defaults"
	TableShapes           = "shapes"
	TableWRFExperiments   = "wrf-experiments"
	TableCESMExperiments  = "cesm-experiments"
	TableWRFEnsembles     = "wrf-ensembles"
	TableCESMEnsembles    = "cesm-ensembles"
)

// TableNames lists every table in display order.
var TableNames = []string{
	TableVariables,
	TableCollections,
	TableConstraints,
	TableLabels,
	TableDatasetPlotArgs,
	TableVariablePlotArgs,
	TableShapeDefaults,
	TableShapes,
	TableWRFExperiments,
	TableCESMExperiments,
	TableWRFEnsembles,
	TableCESMEnsembles,
}

// Catalog is the expanded, read-only set of project settings.
type Catalog struct {
	wetdayExtensions []string
	variables        domain.VariableTable
	constraints      domain.StationConstraints
	collections      domain.CollectionTable
	plotLabels       domain.LabelTable
	datasetPlotArgs  domain.PlotArgsTable
	variablePlotArgs domain.PlotArgsTable
	shapeDefaults    domain.RangeTable
	shapeSpecifics   domain.ShapeTable
	shapeAnnotation  domain.ShapeTable
	wrfExps          domain.ExperimentTable
	cesmExps         domain.ExperimentTable
	wrfEns           domain.EnsembleTable
	cesmEns          domain.EnsembleTable
}

// WetdayExtensions returns the wet-day threshold suffixes in ascending order.
func (c *Catalog) WetdayExtensions() []string { return c.wetdayExtensions }

// Variables returns the variable collections, explicit and derived.
func (c *Catalog) Variables() domain.VariableTable { return c.variables }

// Constraints returns the station selection criteria.
func (c *Catalog) Constraints() domain.StationConstraints { return c.constraints }

// Collections returns the dataset collections.
func (c *Catalog) Collections() domain.CollectionTable { return c.collections }

// PlotLabels returns the display label of each dataset.
func (c *Catalog) PlotLabels() domain.LabelTable { return c.plotLabels }

// DatasetPlotArgs returns the plot style of each dataset.
func (c *Catalog) DatasetPlotArgs() domain.PlotArgsTable { return c.datasetPlotArgs }

// VariablePlotArgs returns the plot style of each derived wet-day variable.
func (c *Catalog) VariablePlotArgs() domain.PlotArgsTable { return c.variablePlotArgs }

// ShapeDefaults returns the axis ranges shared by every shape.
func (c *Catalog) ShapeDefaults() domain.RangeTable { return c.shapeDefaults }

// ShapeSpecifics returns the shape-specific axis ranges before merging.
func (c *Catalog) ShapeSpecifics() domain.ShapeTable { return c.shapeSpecifics }

// ShapeAnnotation returns the merged axis ranges of every shape.
func (c *Catalog) ShapeAnnotation() domain.ShapeTable { return c.shapeAnnotation }

// WRFExperiments returns the WRF experiment registry.
func (c *Catalog) WRFExperiments() domain.ExperimentTable { return c.wrfExps }

// CESMExperiments returns the CESM experiment registry.
func (c *Catalog) CESMExperiments() domain.ExperimentTable { return c.cesmExps }

// WRFEnsembles returns the WRF ensemble definitions.
func (c *Catalog) WRFEnsembles() domain.EnsembleTable { return c.wrfEns }

// CESMEnsembles returns the CESM ensemble definitions.
func (c *Catalog) CESMEnsembles() domain.EnsembleTable { return c.cesmEns }

// VariableGroup returns the named variable collection.
func (c *Catalog) VariableGroup(name string) (domain.VariableGroup, error) {
	g, ok := c.variables[name]
	if !ok {
		return domain.VariableGroup{}, fmt.Errorf("variable group %q: %w", name, ErrNotFound)
	}
	return g, nil
}

// Collection returns the named dataset collection.
func (c *Catalog) Collection(name string) (domain.ExperimentCollection, error) {
	coll, ok := c.collections[name]
	if !ok {
		return domain.ExperimentCollection{}, fmt.Errorf("collection %q: %w", name, ErrNotFound)
	}
	return coll, nil
}

// ShapeRanges returns the merged axis ranges for a shape.
func (c *Catalog) ShapeRanges(shape string) (domain.RangeTable, error) {
	ranges, ok := c.shapeAnnotation[shape]
	if !ok {
		return nil, fmt.Errorf("shape %q: %w", shape, ErrNotFound)
	}
	return ranges, nil
}

// Table returns a whole table by name.
func (c *Catalog) Table(table string) (any, error) {
	switch table {
	case TableVariables:
		return c.variables, nil
	case TableCollections:
		return c.collections, nil
	case TableConstraints:
		return c.constraints, nil
	case TableLabels:
		return c.plotLabels, nil
	case TableDatasetPlotArgs:
		return c.datasetPlotArgs, nil
	case TableVariablePlotArgs:
		return c.variablePlotArgs, nil
	case TableShapeDefaults:
		return c.shapeDefaults, nil
	case TableShapes:
		return c.shapeAnnotation, nil
	case TableWRFExperiments:
		return c.wrfExps, nil
	case TableCESMExperiments:
		return c.cesmExps, nil
	case TableWRFEnsembles:
		return c.wrfEns, nil
	case TableCESMEnsembles:
		return c.cesmEns, nil
	}
	return nil, fmt.Errorf("table %q: %w", table, ErrNotFound)
}

// Keys returns the sorted entry names of a keyed table. The constraints
// table is a single record and lists its field names.
func (c *Catalog) Keys(table string) ([]string, error) {
	switch table {
	case TableVariables:
		return sortedKeys(c.variables), nil
	case TableCollections:
		return sortedKeys(c.collections), nil
	case TableConstraints:
		return []string{"end_after", "lat", "max_zerr", "min_len", "prov"}, nil
	case TableLabels:
		return sortedKeys(c.plotLabels), nil
	case TableDatasetPlotArgs:
		return sortedKeys(c.datasetPlotArgs), nil
	case TableVariablePlotArgs:
		return sortedKeys(c.variablePlotArgs), nil
	case TableShapeDefaults:
		return sortedKeys(c.shapeDefaults), nil
	case TableShapes:
		return sortedKeys(c.shapeAnnotation), nil
	case TableWRFExperiments:
		return sortedKeys(c.wrfExps), nil
	case TableCESMExperiments:
		return sortedKeys(c.cesmExps), nil
	case TableWRFEnsembles:
		return sortedKeys(c.wrfEns), nil
	case TableCESMEnsembles:
		return sortedKeys(c.cesmEns), nil
	}
	return nil, fmt.Errorf("table %q: %w", table, ErrNotFound)
}

// Entry returns a single entry of a table.
func (c *Catalog) Entry(table, key string) (any, error) {
	switch table {
	case TableVariables:
		return entry(table, c.variables, key)
	case TableCollections:
		return entry(table, c.collections, key)
	case TableConstraints:
		return constraintField(c.constraints, key)
	case TableLabels:
		return entry(table, c.plotLabels, key)
	case TableDatasetPlotArgs:
		return entry(table, c.datasetPlotArgs, key)
	case TableVariablePlotArgs:
		return entry(table, c.variablePlotArgs, key)
	case TableShapeDefaults:
		return entry(table, c.shapeDefaults, key)
	case TableShapes:
		return entry(table, c.shapeAnnotation, key)
	case TableWRFExperiments:
		return entry(table, c.wrfExps, key)
	case TableCESMExperiments:
		return entry(table, c.cesmExps, key)
	case TableWRFEnsembles:
		return entry(table, c.wrfEns, key)
	case TableCESMEnsembles:
		return entry(table, c.cesmEns, key)
	}
	return nil, fmt.Errorf("table %q: %w", table, ErrNotFound)
}

// Sizes reports the number of entries per keyed table.
func (c *Catalog) Sizes() map[string]int {
	return map[string]int{
		TableVariables:        len(c.variables),
		TableCollections:      len(c.collections),
		TableLabels:           len(c.plotLabels),
		TableDatasetPlotArgs:  len(c.datasetPlotArgs),
		TableVariablePlotArgs: len(c.variablePlotArgs),
		TableShapeDefaults:    len(c.shapeDefaults),
		TableShapes:           len(c.shapeAnnotation),
		TableWRFExperiments:   len(c.wrfExps),
		TableCESMExperiments:  len(c.cesmExps),
		TableWRFEnsembles:     len(c.wrfEns),
		TableCESMEnsembles:    len(c.cesmEns),
	}
}

func entry[M ~map[string]V, V any](table string, m M, key string) (any, error) {
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("%s entry %q: %w", table, key, ErrNotFound)
	}
	return v, nil
}

func constraintField(sc domain.StationConstraints, key string) (any, error) {
	switch key {
	case "min_len":
		return sc.MinLen, nil
	case "lat":
		return sc.Lat, nil
	case "max_zerr":
		return sc.MaxZErr, nil
	case "prov":
		return sc.Prov, nil
	case "end_after":
		return sc.EndAfter, nil
	}
	return nil, fmt.Errorf("%s entry %q: %w", TableConstraints, key, ErrNotFound)
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	return slices.Sorted(maps.Keys(m))
}
