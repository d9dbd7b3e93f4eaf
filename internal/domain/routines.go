package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Routine names an external plotting or loading routine.
type Routine string

const (
	RoutineShapeObservations Routine = "shape-observations"
	RoutineShapeEnsemble     Routine = "shape-ensemble"
	RoutineStationEnsemble   Routine = "station-ensemble"
	RoutineFigure            Routine = "figure"
	RoutineClimPlot          Routine = "climplot"
)

// Routines lists every routine in a stable order.
var Routines = []Routine{
	RoutineShapeObservations,
	RoutineShapeEnsemble,
	RoutineStationEnsemble,
	RoutineFigure,
	RoutineClimPlot,
}

// ParseRoutine returns the routine with the given name.
func ParseRoutine(name string) (Routine, bool) {
	for _, r := range Routines {
		if string(r) == name {
			return r, true
		}
	}
	return "", false
}

// Table fields are serialized even when empty: a nil table encodes as null
// and an empty one as {}, so the worker can tell them apart.

// ShapeObservationsArgs are the arguments of the shape observation loader.
// A nil VariableAtts is replaced with the project variable table.
type ShapeObservationsArgs struct {
	VariableAtts VariableTable  `json:"variable_atts"`
	Extra        map[string]any `json:"extra,omitempty"`
}

// ShapeEnsembleArgs are the arguments of the shape ensemble loader.
type ShapeEnsembleArgs struct {
	VariableAtts VariableTable   `json:"variable_atts"`
	WRFExps      ExperimentTable `json:"wrf_exps"`
	CESMExps     ExperimentTable `json:"cesm_exps"`
	WRFEns       EnsembleTable   `json:"wrf_ens"`
	CESMEns      EnsembleTable   `json:"cesm_ens"`
	Extra        map[string]any  `json:"extra,omitempty"`
}

// StationEnsembleArgs are the arguments of the station ensemble loader.
type StationEnsembleArgs struct {
	VariableAtts VariableTable       `json:"variable_atts"`
	WRFExps      ExperimentTable     `json:"wrf_exps"`
	CESMExps     ExperimentTable     `json:"cesm_exps"`
	WRFEns       EnsembleTable       `json:"wrf_ens"`
	CESMEns      EnsembleTable       `json:"cesm_ens"`
	Constraints  *StationConstraints `json:"constraints"`
	Extra        map[string]any      `json:"extra,omitempty"`
}

// FigureArgs are the arguments of the figure/axes factory. Subplot is the
// (rows, columns) layout; XTop and YRight place tick labels when set.
type FigureArgs struct {
	Subplot          Subplot        `json:"subplot"`
	DatasetPlotArgs  PlotArgsTable  `json:"dataset_plotargs"`
	VariablePlotArgs PlotArgsTable  `json:"variable_plotargs"`
	PlotLabels       LabelTable     `json:"plot_labels"`
	XTop             *bool          `json:"xtop,omitempty"`
	YRight           *bool          `json:"yright,omitempty"`
	Extra            map[string]any `json:"extra,omitempty"`
}

// ClimPlotArgs are the arguments of the climatology plotting routine.
type ClimPlotArgs struct {
	ShapeAnnotation ShapeTable     `json:"shape_annotation"`
	ShapeDefaults   RangeTable     `json:"shape_defaults"`
	VariableAtts    VariableTable  `json:"variable_atts"`
	Extra           map[string]any `json:"extra,omitempty"`
}

// Subplot is a (rows, columns) figure layout.
type Subplot [2]int

// UnmarshalJSON accepts exactly two elements.
func (s *Subplot) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var layout []int
	if err := json.Unmarshal(data, &layout); err != nil {
		return err
	}
	if len(layout) != 2 {
		return fmt.Errorf("subplot must have 2 elements (rows, columns), got %d", len(layout))
	}
	copy(s[:], layout)
	return nil
}

// Submission is the receipt returned once a routine call has been handed
// to the external worker.
type Submission struct {
	ID          string    `json:"id"`
	Routine     Routine   `json:"routine"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Job is the envelope published for the external worker.
type Job struct {
	ID          string          `json:"id"`
	Routine     Routine         `json:"routine"`
	SubmittedAt time.Time       `json:"submitted_at"`
	Args        json.RawMessage `json:"args"`
}

// ObservationLoader loads observational climatologies for shapes.
type ObservationLoader interface {
	LoadShapeObservations(ctx context.Context, args ShapeObservationsArgs) (Submission, error)
}

// EnsembleLoader loads simulation ensembles for shapes and stations.
type EnsembleLoader interface {
	LoadShapeEnsemble(ctx context.Context, args ShapeEnsembleArgs) (Submission, error)
	LoadStationEnsemble(ctx context.Context, args StationEnsembleArgs) (Submission, error)
}

// FigureFactory creates figures and axes with project styling.
type FigureFactory interface {
	GetFigAx(ctx context.Context, args FigureArgs) (Submission, error)
}

// ClimPlotter draws shape climatologies.
type ClimPlotter interface {
	ClimPlot(ctx context.Context, args ClimPlotArgs) (Submission, error)
}

// RoutineBackend is implemented by transports that can run every external routine.
type RoutineBackend interface {
	ObservationLoader
	EnsembleLoader
	FigureFactory
	ClimPlotter
}
