package storage

import (
	"context"

	"github.com/thalesfsp/customerror"
)

//////
// Vars, consts, and types.
//////

var (
	// ErrRequiredPostHook is the error returned when the post-hook function is
	// missing.
	ErrRequiredPostHook = customerror.NewRequiredError("post-hook function", customerror.WithErrorCode("ERR_REQUIRED_POST_HOOK"))

	// ErrRequiredPreHook is the error returned when the pre-hook function is
	// missing.
	ErrRequiredPreHook = customerror.NewRequiredError("pre-hook function", customerror.WithErrorCode("ERR_REQUIRED_PRE_HOOK"))
)

// HookFunc specifies the function that will be called before and after the
// operation. `target` is the table for the document store, and the literal
// query text for the time-series store. `data` is the operation payload - the
// item being written, or the value being read into.
type HookFunc func(ctx context.Context, operation Operation, target string, data any) error

// Func allows to set options.
type Func func(o *Options) error

// Options for operations.
type Options struct {
	// Operation overrides the operation reported to hooks, logs, and metrics,
	// e.g. a scalar execution running on top of a query.
	Operation Operation `json:"operation,omitempty"`

	// PreHookFunc is the function which runs before the operation.
	PreHookFunc HookFunc `json:"-"`

	// PostHookFunc is the function which runs after the operation.
	PostHookFunc HookFunc `json:"-"`
}

//////
// Methods.
//////

// RunPreHook runs the pre-hook, if any.
func (o *Options) RunPreHook(ctx context.Context, operation Operation, target string, data any) error {
	if o.PreHookFunc == nil {
		return nil
	}

	return o.PreHookFunc(ctx, operation, target, data)
}

// RunPostHook runs the post-hook, if any.
func (o *Options) RunPostHook(ctx context.Context, operation Operation, target string, data any) error {
	if o.PostHookFunc == nil {
		return nil
	}

	return o.PostHookFunc(ctx, operation, target, data)
}

//////
// Exported built-in options.
//////

// WithPreHook set the pre-hook function.
func WithPreHook(fn HookFunc) Func {
	return func(o *Options) error {
		if fn == nil {
			return ErrRequiredPreHook
		}

		o.PreHookFunc = fn

		return nil
	}
}

// WithPostHook set the post-hook function.
func WithPostHook(fn HookFunc) Func {
	return func(o *Options) error {
		if fn == nil {
			return ErrRequiredPostHook
		}

		o.PostHookFunc = fn

		return nil
	}
}

// WithOperation set the reported operation.
func WithOperation(operation Operation) Func {
	return func(o *Options) error {
		o.Operation = operation

		return nil
	}
}

// NewOptions creates Options, applying `options` in order.
func NewOptions(options ...Func) (*Options, error) {
	o := &Options{}

	for _, option := range options {
		if err := option(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}
