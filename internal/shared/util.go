//////
// Shared utils.
//////

package shared

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/thalesfsp/customerror"
)

//////
// Const, vars, and types.
//////

const (
	// DefaultTimeout is the default timeout for operations in tests and
	// connectivity checks.
	DefaultTimeout = 30 * time.Second

	// TimeoutPing is the base backoff of the connectivity check.
	TimeoutPing = 10 * time.Second

	// EnvironmentKey is the env var which names the running environment.
	EnvironmentKey = "ENVIRONMENT"

	// Integration environment, where live backends are reachable.
	Integration = "integration"
)

// GenerateUUID generates a RFC4122 UUID and DCE 1.1: Authentication and
// Security Services.
func GenerateUUID() string {
	return uuid.New().String()
}

// IsEnvironment returns true if the current environment is any of `envs`.
func IsEnvironment(envs ...string) bool {
	current := os.Getenv(EnvironmentKey)

	for _, env := range envs {
		if strings.EqualFold(current, env) {
			return true
		}
	}

	return false
}

// LoadEnv loads the given env files, `.env` if none. Variables already set in
// the environment win. Missing files aren't an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	existing := make([]string, 0, len(files))

	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}

	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return customerror.NewFailedToError("load env files", customerror.WithError(err))
	}

	return nil
}

// Unmarshal with custom error.
func Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return customerror.NewFailedToError("to unmarshal",
			customerror.WithError(err),
		)
	}

	return nil
}

// Marshal with custom error.
func Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, customerror.NewFailedToError("to marshal",
			customerror.WithError(err),
		)
	}

	return data, nil
}
