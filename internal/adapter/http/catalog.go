package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/couchcryptid/clim-settings-service/internal/catalog"
)

func (s *Server) handleVariables(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Catalog().Variables())
}

func (s *Server) handleVariable(w http.ResponseWriter, r *http.Request) {
	group, err := s.settings.Catalog().VariableGroup(chi.URLParam(r, "name"))
	s.lookup(w, catalog.TableVariables, group, err)
}

func (s *Server) handleCollections(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Catalog().Collections())
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	coll, err := s.settings.Catalog().Collection(chi.URLParam(r, "name"))
	s.lookup(w, catalog.TableCollections, coll, err)
}

func (s *Server) handleConstraints(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Catalog().Constraints())
}

func (s *Server) handleLabels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Catalog().PlotLabels())
}

func (s *Server) handleDatasetPlotArgs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Catalog().DatasetPlotArgs())
}

func (s *Server) handleVariablePlotArgs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Catalog().VariablePlotArgs())
}

func (s *Server) handleShapes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Catalog().ShapeAnnotation())
}

func (s *Server) handleShape(w http.ResponseWriter, r *http.Request) {
	ranges, err := s.settings.Catalog().ShapeRanges(chi.URLParam(r, "region"))
	s.lookup(w, catalog.TableShapes, ranges, err)
}

// lookup writes a single catalog entry and counts the hit or miss.
func (s *Server) lookup(w http.ResponseWriter, table string, v any, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		s.metrics.CatalogLookups.WithLabelValues(table, "miss").Inc()
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("catalog lookup failed", "table", table, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.metrics.CatalogLookups.WithLabelValues(table, "hit").Inc()
	writeJSON(w, http.StatusOK, v)
}
