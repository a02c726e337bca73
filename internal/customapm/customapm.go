package customapm

import (
	"context"
	"expvar"
	"fmt"

	"github.com/thalesfsp/fleetdal/internal/logging"
	"github.com/thalesfsp/sypl"
	"github.com/thalesfsp/sypl/fields"
	"github.com/thalesfsp/sypl/level"
	"go.elastic.co/apm"
)

// Trace starts a span named `{kind}.{name}.{operation}` and returns the
// derived context. Callers must end the span.
func Trace(ctx context.Context, kind, name, operation string) (context.Context, *apm.Span) {
	span, ctx := apm.StartSpan(ctx, fmt.Sprintf("%s.%s.%s", kind, name, operation), kind)

	return ctx, span
}

// TraceError captures `err` in APM, logs it, and increments the `counter`
// metric - if any. The very same error is returned.
func TraceError(ctx context.Context, err error, l sypl.ISypl, counter *expvar.Int) error {
	if err == nil {
		return nil
	}

	if e := apm.CaptureError(ctx, err); e != nil {
		e.Send()
	}

	if l != nil {
		l.PrintlnWithOptions(
			level.Error,
			err.Error(),
			sypl.WithFields(logging.ToAPM(ctx, make(fields.Fields))),
		)
	}

	if counter != nil {
		counter.Add(1)
	}

	return err
}
