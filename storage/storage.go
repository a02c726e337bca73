package storage

import (
	"context"
	"expvar"
	"fmt"

	"github.com/thalesfsp/fleetdal/internal/customapm"
	"github.com/thalesfsp/fleetdal/internal/logging"
	"github.com/thalesfsp/fleetdal/internal/metrics"
	"github.com/thalesfsp/status"
	"github.com/thalesfsp/sypl"
	"github.com/thalesfsp/sypl/level"
	"github.com/thalesfsp/validation"
)

//////
// Vars, consts, and types.
//////

// Type is the type of the entity regarding the framework. It is used to for
// example, to identify the entity in the logs, metrics, and for tracing.
const (
	DefaultMetricCounterLabel = "counter"
	Type                      = "storage"
)

// Storage definition.
type Storage struct {
	// Logger.
	Logger sypl.ISypl `json:"-" validate:"required"`

	// Name of the storage type.
	Name string `json:"name" validate:"required,lowercase,gte=1"`

	// Metrics.
	counterCounted             *expvar.Int
	counterCountedFailed       *expvar.Int
	counterCreated             *expvar.Int
	counterCreatedFailed       *expvar.Int
	counterDeleted             *expvar.Int
	counterDeletedFailed       *expvar.Int
	counterInstantiationFailed *expvar.Int
	counterListed              *expvar.Int
	counterListedFailed        *expvar.Int
	counterPingFailed          *expvar.Int
	counterRetrieved           *expvar.Int
	counterRetrievedFailed     *expvar.Int
}

//////
// Implements the IMeta interface.
//////

// GetLogger returns the logger.
func (s *Storage) GetLogger() sypl.ISypl {
	return s.Logger
}

// GetName returns the storage name.
func (s *Storage) GetName() string {
	return s.Name
}

// GetType returns its type.
func (s *Storage) GetType() string {
	return Type
}

// GetCounterCounted returns the metric.
func (s *Storage) GetCounterCounted() *expvar.Int {
	return s.counterCounted
}

// GetCounterCountedFailed returns the metric.
func (s *Storage) GetCounterCountedFailed() *expvar.Int {
	return s.counterCountedFailed
}

// GetCounterCreated returns the metric.
func (s *Storage) GetCounterCreated() *expvar.Int {
	return s.counterCreated
}

// GetCounterCreatedFailed returns the metric.
func (s *Storage) GetCounterCreatedFailed() *expvar.Int {
	return s.counterCreatedFailed
}

// GetCounterDeleted returns the metric.
func (s *Storage) GetCounterDeleted() *expvar.Int {
	return s.counterDeleted
}

// GetCounterDeletedFailed returns the metric.
func (s *Storage) GetCounterDeletedFailed() *expvar.Int {
	return s.counterDeletedFailed
}

// GetCounterInstantiationFailed returns the metric.
func (s *Storage) GetCounterInstantiationFailed() *expvar.Int {
	return s.counterInstantiationFailed
}

// GetCounterListed returns the metric.
func (s *Storage) GetCounterListed() *expvar.Int {
	return s.counterListed
}

// GetCounterListedFailed returns the metric.
func (s *Storage) GetCounterListedFailed() *expvar.Int {
	return s.counterListedFailed
}

// GetCounterPingFailed returns the metric.
func (s *Storage) GetCounterPingFailed() *expvar.Int {
	return s.counterPingFailed
}

// GetCounterRetrieved returns the metric.
func (s *Storage) GetCounterRetrieved() *expvar.Int {
	return s.counterRetrieved
}

// GetCounterRetrievedFailed returns the metric.
func (s *Storage) GetCounterRetrievedFailed() *expvar.Int {
	return s.counterRetrievedFailed
}

//////
// Factory.
//////

func counterName(name string, st ...status.Status) string {
	label := ""

	for i, s := range st {
		if i > 0 {
			label += "."
		}

		label += s.String()
	}

	return fmt.Sprintf("%s.%s.%s.%s", Type, name, label, DefaultMetricCounterLabel)
}

// New returns a new Storage.
func New(ctx context.Context, name string) (*Storage, error) {
	// Storage's individual logger.
	logger := logging.Get().New(name).SetTags(Type, name)

	a := &Storage{
		Logger: logger,
		Name:   name,

		counterCounted:             metrics.NewInt(counterName(name, status.Counted)),
		counterCountedFailed:       metrics.NewInt(counterName(name, status.Counted, status.Failed)),
		counterCreated:             metrics.NewInt(counterName(name, status.Created)),
		counterCreatedFailed:       metrics.NewInt(counterName(name, status.Created, status.Failed)),
		counterDeleted:             metrics.NewInt(counterName(name, status.Deleted)),
		counterDeletedFailed:       metrics.NewInt(counterName(name, status.Deleted, status.Failed)),
		counterInstantiationFailed: metrics.NewInt(fmt.Sprintf("%s.%s.%s.%s", Type, name, "instantiation."+status.Failed.String(), DefaultMetricCounterLabel)),
		counterListed:              metrics.NewInt(counterName(name, status.Listed)),
		counterListedFailed:        metrics.NewInt(counterName(name, status.Listed, status.Failed)),
		counterPingFailed:          metrics.NewInt(fmt.Sprintf("%s.%s.%s.%s", Type, name, "ping."+status.Failed.String(), DefaultMetricCounterLabel)),
		counterRetrieved:           metrics.NewInt(counterName(name, status.Retrieved)),
		counterRetrievedFailed:     metrics.NewInt(counterName(name, status.Retrieved, status.Failed)),
	}

	// Validate the storage.
	if err := validation.Validate(a); err != nil {
		return nil, customapm.TraceError(ctx, err, logger, a.counterInstantiationFailed)
	}

	a.GetLogger().PrintlnWithOptions(level.Debug, status.Created.String())

	return a, nil
}
