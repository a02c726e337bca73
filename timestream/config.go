package timestream

import (
	"os"

	"github.com/spf13/cast"
	"github.com/thalesfsp/customerror"
)

//////
// Const, vars, and types.
//////

// Env vars read by ConfigFromEnv.
const (
	EnvRegion         = "AWS_REGION"
	EnvEndpoint       = "TIMESTREAM_ENDPOINT"
	EnvDefaultMaxRows = "FLEETDAL_TIMESTREAM_MAX_ROWS"
)

const (
	// DefaultRegion is used when none is configured.
	DefaultRegion = "us-east-1"

	// MaxRowsLimit is the largest page size the backend accepts.
	MaxRowsLimit = 1000
)

// Config is the Timestream client configuration.
type Config struct {
	// Region is the AWS region.
	Region string `json:"region" validate:"required"`

	// Endpoint overrides the discovered query endpoint.
	Endpoint string `json:"endpoint,omitempty"`

	// DefaultMaxRows is the page size used when a call doesn't set one. Zero
	// leaves it to the backend.
	DefaultMaxRows int64 `json:"defaultMaxRows" validate:"gte=0,lte=1000"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Region: DefaultRegion,
	}
}

// ConfigFromEnv returns the default configuration overridden by the env.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v, ok := os.LookupEnv(EnvRegion); ok && v != "" {
		cfg.Region = v
	}

	if v, ok := os.LookupEnv(EnvEndpoint); ok {
		cfg.Endpoint = v
	}

	if v, ok := os.LookupEnv(EnvDefaultMaxRows); ok && v != "" {
		rows, err := cast.ToInt64E(v)
		if err != nil {
			return cfg, customerror.NewFailedToError("parse "+EnvDefaultMaxRows, customerror.WithError(err))
		}

		cfg.DefaultMaxRows = rows
	}

	return cfg, nil
}
