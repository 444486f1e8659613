// Copyright (c) 2026 Jeremy Hahn
// Copyright (c) 2026 Automate The Things, LLC
//
// This file is part of go-qrvault.
//
// go-qrvault is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package metrics provides Prometheus instrumentation for vault operations.
// It exposes operation counters, latency histograms, and error counters so
// batch tooling built on this module can be monitored like any other service.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the Prometheus namespace for all vault metrics.
	Namespace = "qrvault"

	// Label names
	LabelOperation = "operation"
	LabelStatus    = "status"
	LabelErrorType = "error_type"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Operation names
	OpSeal        = "seal"
	OpOpen        = "open"
	OpSplit       = "split"
	OpReconstruct = "reconstruct"
	OpEncode      = "encode"
	OpDecode      = "decode"
	OpValidate    = "validate"
)

var (
	// OperationsTotal tracks the total number of vault operations by type
	// and status. Use RecordOperation to increment this counter.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Total number of vault operations by type and status",
		},
		[]string{LabelOperation, LabelStatus},
	)

	// OperationDuration tracks the duration of vault operations in seconds.
	// Buckets reach to 30s because Argon2id with the sensitive profile can
	// take multiple seconds on constrained hardware.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of vault operations in seconds",
			Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{LabelOperation},
	)

	// ErrorsTotal tracks the total number of errors by operation and error
	// type. Error types should be specific (e.g. "authentication_failed",
	// "malformed_payload", "insufficient_shares").
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "errors_total",
			Help:      "Total number of errors by operation and error type",
		},
		[]string{LabelOperation, LabelErrorType},
	)

	// SharesCollected tracks shares accepted into reconstruction sessions.
	SharesCollected = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "shares_collected_total",
			Help:      "Total number of shares accepted into reconstruction sessions",
		},
	)

	// enabled tracks whether metrics collection is enabled
	enabled atomic.Bool
)

func init() {
	enabled.Store(true)
}

// SetEnabled toggles metrics collection at runtime. Disabled metrics make
// every Record* call a no-op; the collectors stay registered.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// RecordOperation records a vault operation with its duration and status.
//
// Example:
//
//	start := time.Now()
//	rec, err := seal.Encrypt(nil, plaintext, password, params)
//	duration := time.Since(start).Seconds()
//	if err != nil {
//	    metrics.RecordOperation(metrics.OpSeal, metrics.StatusError, duration)
//	} else {
//	    metrics.RecordOperation(metrics.OpSeal, metrics.StatusSuccess, duration)
//	}
func RecordOperation(operation, status string, duration float64) {
	if !enabled.Load() {
		return
	}
	OperationsTotal.WithLabelValues(operation, status).Inc()
	OperationDuration.WithLabelValues(operation).Observe(duration)
}

// RecordError records an error event with context about where it occurred.
func RecordError(operation, errorType string) {
	if !enabled.Load() {
		return
	}
	ErrorsTotal.WithLabelValues(operation, errorType).Inc()
}

// RecordShareCollected counts one share accepted into a session.
func RecordShareCollected() {
	if !enabled.Load() {
		return
	}
	SharesCollected.Inc()
}
