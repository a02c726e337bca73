package metrics

import (
	"expvar"
	"fmt"
	"os"
	"sync"

	"github.com/thalesfsp/fleetdal/internal/logging"
)

// PrefixEnvVar names the env var which sets the metrics prefix.
const PrefixEnvVar = "FLEETDAL_METRICS_PREFIX"

var mu sync.Mutex

// NewInt creates and initializes a new expvar.Int, prefixed with the value of
// `FLEETDAL_METRICS_PREFIX`. expvar panics on duplicated names, so an already
// published counter is returned as is.
func NewInt(name string) *expvar.Int {
	prefix := os.Getenv(PrefixEnvVar)

	if prefix == "" {
		prefix = "fleetdal"
	}

	fullName := fmt.Sprintf("%s.%s", prefix, name)

	mu.Lock()
	defer mu.Unlock()

	if existing := expvar.Get(fullName); existing != nil {
		if counter, ok := existing.(*expvar.Int); ok {
			return counter
		}

		logging.Get().Warnln(fullName, "is already published with another type, using an unpublished counter")

		return new(expvar.Int)
	}

	counter := expvar.NewInt(fullName)

	counter.Set(0)

	return counter
}
