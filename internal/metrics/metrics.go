package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kenotrix"

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeFailed   = "failed"
	OutcomeFallback = "fallback"
)

var (
	// Exchanges counts streamed answers by outcome (ok, failed).
	Exchanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exchanges_total",
		Help:      "Streamed chat exchanges by outcome.",
	}, []string{"outcome"})

	Chunks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stream_chunks_total",
		Help:      "Answer fragments delivered to callers.",
	})

	Citations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "citations_total",
		Help:      "Deduplicated citations delivered with answers.",
	})

	// Titles counts title generations by outcome (ok, fallback).
	Titles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "titles_total",
		Help:      "Thread title generations by outcome.",
	}, []string{"outcome"})

	// SnapshotWrites counts write-through persistence by outcome (ok, failed).
	SnapshotWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_writes_total",
		Help:      "Thread collection snapshots written to storage.",
	}, []string{"outcome"})
)
