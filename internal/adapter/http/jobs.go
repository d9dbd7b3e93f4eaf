package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/couchcryptid/clim-settings-service/internal/domain"
)

const maxJobBodyBytes = 1 << 20

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "routine")
	routine, ok := domain.ParseRoutine(name)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown routine %q", name))
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxJobBodyBytes)
	sub, err := s.submit(r.Context(), routine, body)
	if err != nil {
		var bad *badRequestError
		if errors.As(err, &bad) {
			writeError(w, http.StatusBadRequest, bad.Error())
			return
		}
		s.logger.Error("job submission failed", "routine", routine, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.logger.Info("job accepted", "routine", routine, "job_id", sub.ID)
	writeJSON(w, http.StatusAccepted, sub)
}

// submit decodes the routine arguments and runs them through the
// default-injecting wrapper.
func (s *Server) submit(ctx context.Context, routine domain.Routine, body io.Reader) (domain.Submission, error) {
	switch routine {
	case domain.RoutineShapeObservations:
		var args domain.ShapeObservationsArgs
		if err := decodeArgs(body, &args); err != nil {
			return domain.Submission{}, err
		}
		return s.settings.LoadShapeObservations(ctx, args)
	case domain.RoutineShapeEnsemble:
		var args domain.ShapeEnsembleArgs
		if err := decodeArgs(body, &args); err != nil {
			return domain.Submission{}, err
		}
		return s.settings.LoadShapeEnsemble(ctx, args)
	case domain.RoutineStationEnsemble:
		var args domain.StationEnsembleArgs
		if err := decodeArgs(body, &args); err != nil {
			return domain.Submission{}, err
		}
		return s.settings.LoadStationEnsemble(ctx, args)
	case domain.RoutineFigure:
		args := domain.FigureArgs{Subplot: domain.Subplot{1, 1}}
		if err := decodeArgs(body, &args); err != nil {
			return domain.Submission{}, err
		}
		return s.settings.ClimFigAx(ctx, args)
	case domain.RoutineClimPlot:
		var args domain.ClimPlotArgs
		if err := decodeArgs(body, &args); err != nil {
			return domain.Submission{}, err
		}
		return s.settings.ClimPlot(ctx, args)
	}
	return domain.Submission{}, &badRequestError{msg: fmt.Sprintf("unknown routine %q", routine)}
}

type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

// decodeArgs reads a JSON object into v. An empty body leaves v unchanged.
func decodeArgs(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &badRequestError{msg: fmt.Sprintf("invalid request body: %v", err)}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return &badRequestError{msg: "invalid request body: trailing data"}
	}
	return nil
}
