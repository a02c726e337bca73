package dynamodb

import (
	"os"
	"time"

	"github.com/spf13/cast"
	"github.com/thalesfsp/customerror"
	"github.com/thalesfsp/fleetdal/keyschema"
)

//////
// Const, vars, and types.
//////

// Env vars read by ConfigFromEnv.
const (
	EnvRegion             = "AWS_REGION"
	EnvEndpoint           = "DYNAMODB_ENDPOINT"
	EnvTablePrefix        = "FLEETDAL_TABLE_PREFIX"
	EnvKeySchemaTTL       = "FLEETDAL_KEY_SCHEMA_TTL"
	EnvKeepNullAttributes = "FLEETDAL_KEEP_NULL_ATTRIBUTES"
)

const (
	// DefaultRegion is used when none is configured.
	DefaultRegion = "us-east-1"

	// DefaultTablePrefix is prepended to logical table names.
	DefaultTablePrefix = "fleet-"
)

// Config is the DynamoDB client configuration.
type Config struct {
	// Region is the AWS region.
	Region string `json:"region" validate:"required"`

	// Endpoint overrides the service endpoint, e.g. a local DynamoDB.
	Endpoint string `json:"endpoint,omitempty"`

	// TablePrefix is prepended to logical table names to get the physical
	// ones.
	TablePrefix string `json:"tablePrefix"`

	// KeySchemaTTL is how long table key names are cached.
	KeySchemaTTL time.Duration `json:"keySchemaTTL" validate:"gte=0"`

	// KeepNullAttributes writes NULL attributes instead of omitting them.
	KeepNullAttributes bool `json:"keepNullAttributes"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Region:       DefaultRegion,
		TablePrefix:  DefaultTablePrefix,
		KeySchemaTTL: keyschema.DefaultTTL,
	}
}

// ConfigFromEnv returns the default configuration overridden by the env.
// Call shared.LoadEnv first to honour `.env` files.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v, ok := os.LookupEnv(EnvRegion); ok && v != "" {
		cfg.Region = v
	}

	if v, ok := os.LookupEnv(EnvEndpoint); ok {
		cfg.Endpoint = v
	}

	if v, ok := os.LookupEnv(EnvTablePrefix); ok {
		cfg.TablePrefix = v
	}

	if v, ok := os.LookupEnv(EnvKeySchemaTTL); ok && v != "" {
		ttl, err := cast.ToDurationE(v)
		if err != nil {
			return cfg, customerror.NewFailedToError("parse "+EnvKeySchemaTTL, customerror.WithError(err))
		}

		cfg.KeySchemaTTL = ttl
	}

	if v, ok := os.LookupEnv(EnvKeepNullAttributes); ok && v != "" {
		keep, err := cast.ToBoolE(v)
		if err != nil {
			return cfg, customerror.NewFailedToError("parse "+EnvKeepNullAttributes, customerror.WithError(err))
		}

		cfg.KeepNullAttributes = keep
	}

	return cfg, nil
}
