// Package clim provides the project-level entry points to the external
// loading and plotting routines. Each wrapper fills any table the caller
// left nil with the project default from the catalog and forwards the
// arguments unchanged.
package clim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/clim-settings-service/internal/catalog"
	"github.com/couchcryptid/clim-settings-service/internal/domain"
)

// Settings binds the project catalog to an external routine backend.
type Settings struct {
	catalog *catalog.Catalog
	backend domain.RoutineBackend
	logger  *slog.Logger
}

// New creates Settings that inject defaults from cat and forward to backend.
func New(cat *catalog.Catalog, backend domain.RoutineBackend, logger *slog.Logger) *Settings {
	return &Settings{
		catalog: cat,
		backend: backend,
		logger:  logger,
	}
}

// Catalog returns the catalog the defaults come from.
func (s *Settings) Catalog() *catalog.Catalog {
	return s.catalog
}

// LoadShapeObservations forwards to the shape observation loader with the
// project variable collections as the default variable attributes.
func (s *Settings) LoadShapeObservations(ctx context.Context, args domain.ShapeObservationsArgs) (domain.Submission, error) {
	if args.VariableAtts == nil {
		args.VariableAtts = s.catalog.Variables()
	}
	sub, err := s.backend.LoadShapeObservations(ctx, args)
	return s.result(domain.RoutineShapeObservations, sub, err)
}

// LoadShapeEnsemble forwards to the shape ensemble loader with the project
// variable collections and the WRF/CESM experiment registries.
func (s *Settings) LoadShapeEnsemble(ctx context.Context, args domain.ShapeEnsembleArgs) (domain.Submission, error) {
	if args.VariableAtts == nil {
		args.VariableAtts = s.catalog.Variables()
	}
	if args.WRFExps == nil {
		args.WRFExps = s.catalog.WRFExperiments()
	}
	if args.CESMExps == nil {
		args.CESMExps = s.catalog.CESMExperiments()
	}
	if args.WRFEns == nil {
		args.WRFEns = s.catalog.WRFEnsembles()
	}
	if args.CESMEns == nil {
		args.CESMEns = s.catalog.CESMEnsembles()
	}
	sub, err := s.backend.LoadShapeEnsemble(ctx, args)
	return s.result(domain.RoutineShapeEnsemble, sub, err)
}

// LoadStationEnsemble forwards to the station ensemble loader. Besides the
// ensemble defaults it applies the project station selection criteria.
func (s *Settings) LoadStationEnsemble(ctx context.Context, args domain.StationEnsembleArgs) (domain.Submission, error) {
	if args.VariableAtts == nil {
		args.VariableAtts = s.catalog.Variables()
	}
	if args.WRFExps == nil {
		args.WRFExps = s.catalog.WRFExperiments()
	}
	if args.CESMExps == nil {
		args.CESMExps = s.catalog.CESMExperiments()
	}
	if args.WRFEns == nil {
		args.WRFEns = s.catalog.WRFEnsembles()
	}
	if args.CESMEns == nil {
		args.CESMEns = s.catalog.CESMEnsembles()
	}
	if args.Constraints == nil {
		constraints := s.catalog.Constraints()
		args.Constraints = &constraints
	}
	sub, err := s.backend.LoadStationEnsemble(ctx, args)
	return s.result(domain.RoutineStationEnsemble, sub, err)
}

// GetFigAx forwards to the figure factory with the project plot styles and labels.
func (s *Settings) GetFigAx(ctx context.Context, args domain.FigureArgs) (domain.Submission, error) {
	if args.DatasetPlotArgs == nil {
		args.DatasetPlotArgs = s.catalog.DatasetPlotArgs()
	}
	if args.VariablePlotArgs == nil {
		args.VariablePlotArgs = s.catalog.VariablePlotArgs()
	}
	if args.PlotLabels == nil {
		args.PlotLabels = s.catalog.PlotLabels()
	}
	sub, err := s.backend.GetFigAx(ctx, args)
	return s.result(domain.RoutineFigure, sub, err)
}

// ClimFigAx is GetFigAx under the name analysis scripts import it by.
func (s *Settings) ClimFigAx(ctx context.Context, args domain.FigureArgs) (domain.Submission, error) {
	return s.GetFigAx(ctx, args)
}

// ClimPlot forwards to the climatology plotter with the project shape
// annotation, shape defaults and variable collections.
func (s *Settings) ClimPlot(ctx context.Context, args domain.ClimPlotArgs) (domain.Submission, error) {
	if args.ShapeAnnotation == nil {
		args.ShapeAnnotation = s.catalog.ShapeAnnotation()
	}
	if args.ShapeDefaults == nil {
		args.ShapeDefaults = s.catalog.ShapeDefaults()
	}
	if args.VariableAtts == nil {
		args.VariableAtts = s.catalog.Variables()
	}
	sub, err := s.backend.ClimPlot(ctx, args)
	return s.result(domain.RoutineClimPlot, sub, err)
}

func (s *Settings) result(routine domain.Routine, sub domain.Submission, err error) (domain.Submission, error) {
	if err != nil {
		return domain.Submission{}, fmt.Errorf("%s: %w", routine, err)
	}
	s.logger.Debug("routine submitted", "routine", routine, "job_id", sub.ID)
	return sub, nil
}
