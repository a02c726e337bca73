// Package fleetdal is the fleet persistence layer: a document store, and a
// time-series query store.
package fleetdal

import "github.com/thalesfsp/sypl"

// IMeta defines method(s) about the storage itself.
type IMeta interface {
	// GetLogger returns the logger.
	GetLogger() sypl.ISypl

	// GetName returns the storage name.
	GetName() string

	// GetType returns its type.
	GetType() string
}
