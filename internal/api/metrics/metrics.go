// Package metrics defines all custom Prometheus metrics for the e-library
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "elibrary"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid" (credential mismatch), or "pending" (unapproved account)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ApprovalsTotal counts member accounts approved by an admin.
var ApprovalsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approvals_total",
		Help:      "Total number of member accounts approved.",
	},
)

// ── Upload pipeline metrics ───────────────────────────────────────────────────

// UploadsTotal counts materials that completed the full four-phase pipeline.
// Label:
//   - category: "academic" or "novel"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of materials fully submitted, by category.",
	},
	[]string{"category"},
)

// UploadErrorsTotal counts pipeline aborts.
// Label:
//   - phase: "render", "upload_pdf", "upload_thumbnail", or "persist"
var UploadErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_errors_total",
		Help:      "Total number of upload pipeline aborts, by failing phase.",
	},
	[]string{"phase"},
)

// UploadPhaseDuration measures how long each pipeline phase takes.
// Label:
//   - phase: the pipeline phase name
var UploadPhaseDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_phase_duration_seconds",
		Help:      "Duration of each upload pipeline phase.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"phase"},
)
