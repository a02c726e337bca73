package logging

import (
	"context"
	"sync"

	"github.com/thalesfsp/sypl"
	"github.com/thalesfsp/sypl/fields"
	"github.com/thalesfsp/sypl/level"
	"go.elastic.co/apm"
)

//////
// Const, vars, and types.
//////

// Name of the process logger.
const Name = "fleetdal"

var (
	l    *sypl.Sypl
	once sync.Once
)

//////
// Exported functionalities.
//////

// Get returns the process logger, or set it up. Default level is `info`.
func Get() *sypl.Sypl {
	once.Do(func() {
		l = sypl.NewDefault(Name, level.Info)
	})

	return l
}

// ToAPM adds the APM correlation ids found in `ctx` to `f`, so logs can be
// correlated with the transaction and span.
func ToAPM(ctx context.Context, f fields.Fields) fields.Fields {
	if f == nil {
		f = make(fields.Fields)
	}

	if tx := apm.TransactionFromContext(ctx); tx != nil {
		traceContext := tx.TraceContext()

		f["trace.id"] = traceContext.Trace.String()
		f["transaction.id"] = traceContext.Span.String()
	}

	if span := apm.SpanFromContext(ctx); span != nil {
		f["span.id"] = span.TraceContext().Span.String()
	}

	return f
}
