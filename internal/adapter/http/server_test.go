package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/clim-settings-service/internal/adapter/http"
	"github.com/couchcryptid/clim-settings-service/internal/catalog"
	"github.com/couchcryptid/clim-settings-service/internal/clim"
	"github.com/couchcryptid/clim-settings-service/internal/domain"
	"github.com/couchcryptid/clim-settings-service/internal/observability"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

// stubBackend accepts every routine and remembers the last arguments.
type stubBackend struct {
	err     error
	station domain.StationEnsembleArgs
	figure  domain.FigureArgs
	plot    domain.ClimPlotArgs
	calls   int
}

func (b *stubBackend) submit(routine domain.Routine) (domain.Submission, error) {
	b.calls++
	if b.err != nil {
		return domain.Submission{}, b.err
	}
	return domain.Submission{ID: fmt.Sprintf("job-%d", b.calls), Routine: routine}, nil
}

func (b *stubBackend) LoadShapeObservations(_ context.Context, _ domain.ShapeObservationsArgs) (domain.Submission, error) {
	return b.submit(domain.RoutineShapeObservations)
}

func (b *stubBackend) LoadShapeEnsemble(_ context.Context, _ domain.ShapeEnsembleArgs) (domain.Submission, error) {
	return b.submit(domain.RoutineShapeEnsemble)
}

func (b *stubBackend) LoadStationEnsemble(_ context.Context, args domain.StationEnsembleArgs) (domain.Submission, error) {
	b.station = args
	return b.submit(domain.RoutineStationEnsemble)
}

func (b *stubBackend) GetFigAx(_ context.Context, args domain.FigureArgs) (domain.Submission, error) {
	b.figure = args
	return b.submit(domain.RoutineFigure)
}

func (b *stubBackend) ClimPlot(_ context.Context, args domain.ClimPlotArgs) (domain.Submission, error) {
	b.plot = args
	return b.submit(domain.RoutineClimPlot)
}

type testEnv struct {
	srv     *httpadapter.Server
	backend *stubBackend
	metrics *observability.Metrics
}

func newTestEnv(t *testing.T, readyErr error) *testEnv {
	t.Helper()
	cat, err := catalog.Load(catalog.LoadOptions{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := &stubBackend{}
	metrics := observability.NewMetricsForTesting()
	settings := clim.New(cat, backend, logger)
	srv := httpadapter.NewServer(":0", settings, &mockReadiness{err: readyErr}, metrics, logger)
	return &testEnv{srv: srv, backend: backend, metrics: metrics}
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	e.srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	env := newTestEnv(t, errors.New("not ready yet"))
	rec := env.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestListVariables(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(http.MethodGet, "/v1/variables", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body domain.VariableTable
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 30)
	assert.Contains(t, body, "wetprec")
}

func TestGetVariable(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(http.MethodGet, "/v1/variables/temp", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var group domain.VariableGroup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &group))
	assert.Equal(t, "temp", group.Name)
	assert.NotEmpty(t, group.Vars)
	assert.NotEmpty(t, group.Files)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.CatalogLookups.WithLabelValues("variables", "hit")))
}

func TestGetVariableNotFound(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(http.MethodGet, "/v1/variables/bogus", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "bogus")

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.CatalogLookups.WithLabelValues("variables", "miss")))
}

func TestGetCollection(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(http.MethodGet, "/v1/experiments/erai", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var coll domain.ExperimentCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &coll))
	assert.Equal(t, "erai", coll.Name)
	assert.True(t, coll.HasMember(coll.Master))

	rec = env.do(http.MethodGet, "/v1/experiments/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetShape(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(http.MethodGet, "/v1/shapes/GLB", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var ranges domain.RangeTable
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ranges))
	assert.Contains(t, ranges, "temp")
	assert.Contains(t, ranges, "temp_obs")

	rec = env.do(http.MethodGet, "/v1/shapes/Atlantis", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWholeTables(t *testing.T) {
	env := newTestEnv(t, nil)
	for _, path := range []string{
		"/v1/experiments",
		"/v1/constraints",
		"/v1/labels",
		"/v1/plotargs/datasets",
		"/v1/plotargs/variables",
		"/v1/shapes",
	} {
		rec := env.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.True(t, json.Valid(rec.Body.Bytes()), path)
	}
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(http.MethodGet, "/v1/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitJob_EveryRoutine(t *testing.T) {
	env := newTestEnv(t, nil)
	for _, routine := range domain.Routines {
		rec := env.do(http.MethodPost, "/v1/jobs/"+string(routine), `{}`)
		require.Equal(t, http.StatusAccepted, rec.Code, routine)

		var sub domain.Submission
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))
		assert.Equal(t, routine, sub.Routine)
		assert.NotEmpty(t, sub.ID)
	}
	assert.Equal(t, len(domain.Routines), env.backend.calls)
}

func TestSubmitJob_EmptyBodyUsesDefaults(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(http.MethodPost, "/v1/jobs/station-ensemble", "")
	require.Equal(t, http.StatusAccepted, rec.Code)

	require.NotNil(t, env.backend.station.Constraints)
	assert.Equal(t, 15, env.backend.station.Constraints.MinLen)
	assert.NotEmpty(t, env.backend.station.VariableAtts)
	assert.NotEmpty(t, env.backend.station.WRFEns)
}

func TestSubmitJob_FigureArgs(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(http.MethodPost, "/v1/jobs/figure", `{"subplot":[2,3],"plot_labels":{"temp":"T"}}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	assert.Equal(t, domain.Subplot{2, 3}, env.backend.figure.Subplot)
	assert.Equal(t, domain.LabelTable{"temp": "T"}, env.backend.figure.PlotLabels)
	assert.NotEmpty(t, env.backend.figure.DatasetPlotArgs)
}

func TestSubmitJob_SubplotNeedsRowsAndColumns(t *testing.T) {
	env := newTestEnv(t, nil)
	for _, body := range []string{`{"subplot":[2,3,4]}`, `{"subplot":[1]}`, `{"subplot":[]}`} {
		rec := env.do(http.MethodPost, "/v1/jobs/figure", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, rec.Body.String(), "subplot must have 2 elements", body)
	}
	assert.Zero(t, env.backend.calls)
}

func TestSubmitJob_EmptyTableIsKept(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(http.MethodPost, "/v1/jobs/climplot", `{"shape_defaults":{}}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	require.NotNil(t, env.backend.plot.ShapeDefaults)
	assert.Empty(t, env.backend.plot.ShapeDefaults)
	assert.NotEmpty(t, env.backend.plot.ShapeAnnotation)
}

func TestSubmitJob_UnknownRoutine(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(http.MethodPost, "/v1/jobs/render", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, env.backend.calls)
}

func TestSubmitJob_MalformedBody(t *testing.T) {
	env := newTestEnv(t, nil)
	for _, body := range []string{`{"subplot":`, `{"unknown_field":1}`, `{} {}`, `{}]`, `{}x`} {
		rec := env.do(http.MethodPost, "/v1/jobs/figure", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	assert.Zero(t, env.backend.calls)
}

func TestSubmitJob_DispatchFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	env.backend.err = errors.New("broker down")

	rec := env.do(http.MethodPost, "/v1/jobs/climplot", `{}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "broker down")
}
