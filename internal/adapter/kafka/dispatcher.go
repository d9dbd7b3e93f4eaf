package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/clim-settings-service/internal/config"
	"github.com/couchcryptid/clim-settings-service/internal/domain"
	"github.com/couchcryptid/clim-settings-service/internal/observability"
)

// messageWriter is the subset of kafkago.Writer used by the Dispatcher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Dispatcher publishes routine calls as jobs for the external plotting worker.
type Dispatcher struct {
	writer  messageWriter
	brokers []string
	timeout time.Duration
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewDispatcher creates a Kafka producer for the configured job topic.
func NewDispatcher(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Dispatcher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaJobTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		WriteTimeout: cfg.DispatchTimeout,
		// One job per request; flush immediately instead of waiting on the batch timer.
		BatchSize:    1,
		BatchTimeout: time.Millisecond,
	}
	d := newDispatcher(w, logger, metrics)
	d.brokers = cfg.KafkaBrokers
	d.timeout = cfg.DispatchTimeout
	return d
}

var _ domain.RoutineBackend = (*Dispatcher)(nil)

func newDispatcher(w messageWriter, logger *slog.Logger, metrics *observability.Metrics) *Dispatcher {
	return &Dispatcher{writer: w, logger: logger, metrics: metrics}
}

// LoadShapeObservations publishes a shape observation loading job.
func (d *Dispatcher) LoadShapeObservations(ctx context.Context, args domain.ShapeObservationsArgs) (domain.Submission, error) {
	return d.dispatch(ctx, domain.RoutineShapeObservations, args)
}

// LoadShapeEnsemble publishes a shape ensemble loading job.
func (d *Dispatcher) LoadShapeEnsemble(ctx context.Context, args domain.ShapeEnsembleArgs) (domain.Submission, error) {
	return d.dispatch(ctx, domain.RoutineShapeEnsemble, args)
}

// LoadStationEnsemble publishes a station ensemble loading job.
func (d *Dispatcher) LoadStationEnsemble(ctx context.Context, args domain.StationEnsembleArgs) (domain.Submission, error) {
	return d.dispatch(ctx, domain.RoutineStationEnsemble, args)
}

// GetFigAx publishes a figure creation job.
func (d *Dispatcher) GetFigAx(ctx context.Context, args domain.FigureArgs) (domain.Submission, error) {
	return d.dispatch(ctx, domain.RoutineFigure, args)
}

// ClimPlot publishes a climatology plotting job.
func (d *Dispatcher) ClimPlot(ctx context.Context, args domain.ClimPlotArgs) (domain.Submission, error) {
	return d.dispatch(ctx, domain.RoutineClimPlot, args)
}

// CheckReadiness returns nil if at least one configured broker accepts a connection.
func (d *Dispatcher) CheckReadiness(ctx context.Context) error {
	if len(d.brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	var errs []error
	for _, broker := range d.brokers {
		conn, err := kafkago.DialContext(ctx, "tcp", broker)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		_ = conn.Close()
		return nil
	}
	return fmt.Errorf("kafka unreachable: %w", errors.Join(errs...))
}

func (d *Dispatcher) Close() error {
	return d.writer.Close()
}

func (d *Dispatcher) dispatch(ctx context.Context, routine domain.Routine, args any) (domain.Submission, error) {
	start := time.Now()

	job, err := newJob(routine, args)
	if err != nil {
		d.metrics.DispatchErrors.WithLabelValues(string(routine)).Inc()
		return domain.Submission{}, err
	}
	msg, err := serializeToMessage(job)
	if err != nil {
		d.metrics.DispatchErrors.WithLabelValues(string(routine)).Inc()
		return domain.Submission{}, err
	}

	if err := d.writer.WriteMessages(ctx, msg); err != nil {
		d.metrics.DispatchErrors.WithLabelValues(string(routine)).Inc()
		d.logger.Error("publish job failed", "routine", routine, "job_id", job.ID, "error", err)
		return domain.Submission{}, fmt.Errorf("publish %s job: %w", routine, err)
	}

	d.metrics.JobsDispatched.WithLabelValues(string(routine)).Inc()
	d.metrics.DispatchDuration.WithLabelValues(string(routine)).Observe(time.Since(start).Seconds())
	d.logger.Info("job published", "routine", routine, "job_id", job.ID, "bytes", len(msg.Value))

	return domain.Submission{ID: job.ID, Routine: job.Routine, SubmittedAt: job.SubmittedAt}, nil
}

// newJob wraps routine arguments in a job envelope with a fresh ID.
func newJob(routine domain.Routine, args any) (domain.Job, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return domain.Job{}, fmt.Errorf("serialize %s args: %w", routine, err)
	}
	return domain.Job{
		ID:          uuid.NewString(),
		Routine:     routine,
		SubmittedAt: domain.Now(),
		Args:        raw,
	}, nil
}

// serializeToMessage marshals a Job into a Kafka message keyed by job ID.
func serializeToMessage(job domain.Job) (kafkago.Message, error) {
	data, err := json.Marshal(job)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize job: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(job.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "routine", Value: []byte(job.Routine)},
			{Key: "submitted_at", Value: []byte(job.SubmittedAt.Format(time.RFC3339))},
		},
	}, nil
}
