package catalog

import (
	"fmt"

	"github.com/couchcryptid/clim-settings-service/internal/domain"
)

// build expands a decoded document into the immutable lookup tables.
func build(doc *document) (*Catalog, error) {
	variables, err := buildVariables(doc)
	if err != nil {
		return nil, err
	}

	datasetArgs, err := buildDatasetPlotArgs(doc.DatasetPlotArgs, doc.PlotStyles)
	if err != nil {
		return nil, err
	}

	shapeDefaults := domain.RangeTable(doc.ShapeDefaults)
	if shapeDefaults == nil {
		shapeDefaults = domain.RangeTable{}
	}
	shapeSpecifics := make(domain.ShapeTable, len(doc.ShapeSpecifics))
	for shape, ranges := range doc.ShapeSpecifics {
		shapeSpecifics[shape] = domain.RangeTable(ranges)
	}

	labels := domain.LabelTable(doc.PlotLabels)
	if labels == nil {
		labels = domain.LabelTable{}
	}

	return &Catalog{
		wetdayExtensions: append([]string(nil), doc.Wetday.Extensions...),
		variables:        variables,
		constraints:      doc.Constraints,
		collections:      buildCollections(doc.Collections),
		plotLabels:       labels,
		datasetPlotArgs:  datasetArgs,
		variablePlotArgs: buildVariablePlotArgs(doc),
		shapeDefaults:    shapeDefaults,
		shapeSpecifics:   shapeSpecifics,
		shapeAnnotation:  AnnotateShapes(shapeDefaults, shapeSpecifics),
		wrfExps:          buildExperiments(doc.Experiments.WRF),
		cesmExps:         buildExperiments(doc.Experiments.CESM),
		wrfEns:           buildEnsembles(doc.Ensembles.WRF),
		cesmEns:          buildEnsembles(doc.Ensembles.CESM),
	}, nil
}

func buildVariables(doc *document) (domain.VariableTable, error) {
	table := make(domain.VariableTable, len(doc.Variables)+len(doc.DerivedVariables))
	for name, group := range doc.Variables {
		group.Name = name
		table[name] = group
	}

	for name, spec := range doc.DerivedVariables {
		if _, ok := table[name]; ok {
			return nil, fmt.Errorf("variable group %q is defined both explicitly and as derived", name)
		}
		if spec.Count < 0 || spec.Count > len(doc.Wetday.Extensions) {
			return nil, fmt.Errorf("derived variable group %q uses %d wet-day extensions, only %d defined",
				name, spec.Count, len(doc.Wetday.Extensions))
		}
		table[name] = domain.VariableGroup{
			Name:  name,
			Vars:  expandDerived(spec, doc.Wetday.Extensions[:spec.Count]),
			Files: append([]string(nil), spec.Files...),
			Label: spec.Label,
		}
	}
	return table, nil
}

// expandDerived lists Prepend, then prefix+extension with the extension as
// the outer loop, then Append.
func expandDerived(spec derivedGroupSpec, extensions []string) []string {
	vars := make([]string, 0, len(spec.Prepend)+len(spec.Prefixes)*len(extensions)+len(spec.Append))
	vars = append(vars, spec.Prepend...)
	for _, ext := range extensions {
		for _, prefix := range spec.Prefixes {
			vars = append(vars, prefix+ext)
		}
	}
	return append(vars, spec.Append...)
}

func buildCollections(in map[string]domain.ExperimentCollection) domain.CollectionTable {
	table := make(domain.CollectionTable, len(in))
	for name, c := range in {
		c.Name = name
		table[name] = c
	}
	return table
}

// buildDatasetPlotArgs resolves each dataset's named style.
func buildDatasetPlotArgs(datasets map[string]string, styles map[string]domain.PlotArgs) (domain.PlotArgsTable, error) {
	table := make(domain.PlotArgsTable, len(datasets))
	for dataset, style := range datasets {
		args, ok := styles[style]
		if !ok {
			return nil, fmt.Errorf("dataset %q refers to unknown plot style %q", dataset, style)
		}
		table[dataset] = args
	}
	return table, nil
}

// buildVariablePlotArgs adds one colour per wet-day extension for every
// derived prefix. Extensions and colours are paired up to the shorter list.
func buildVariablePlotArgs(doc *document) domain.PlotArgsTable {
	table := make(domain.PlotArgsTable, len(doc.VariablePlotArgs))
	for name, args := range doc.VariablePlotArgs {
		table[name] = args
	}

	n := min(len(doc.Wetday.Extensions), len(doc.Wetday.Colors))
	for i := 0; i < n; i++ {
		for _, prefix := range doc.DerivedPlotArgs.Prefixes {
			table[prefix+doc.Wetday.Extensions[i]] = domain.PlotArgs{Color: doc.Wetday.Colors[i]}
		}
	}
	return table
}

func buildExperiments(in map[string]domain.Experiment) domain.ExperimentTable {
	table := make(domain.ExperimentTable, len(in))
	for name, exp := range in {
		exp.Name = name
		table[name] = exp
	}
	return table
}

func buildEnsembles(in map[string][]string) domain.EnsembleTable {
	table := make(domain.EnsembleTable, len(in))
	for name, members := range in {
		table[name] = append([]string(nil), members...)
	}
	return table
}
