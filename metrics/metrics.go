package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// The follow graph is stored denormalized on both endpoints without a
// transaction, so divergence and orphaned ids can occur. These counters make
// the two failure modes observable instead of invisible.
var (
	// OrphanedRefs counts edge ids that pointed at a missing user: ids dropped
	// during profile resolution and purge passes that failed during cascade
	// deletion.
	OrphanedRefs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "social_orphaned_refs_total",
		Help: "Edge references to users that no longer exist, dropped at read time or left behind by a failed purge.",
	})

	// EdgeDivergence counts follow/unfollow operations whose second document
	// write failed after retries, leaving the two edge arrays inconsistent.
	EdgeDivergence = promauto.NewCounter(prometheus.CounterOpts{
		Name: "social_edge_divergence_total",
		Help: "Edge mutations that persisted on one endpoint but failed on the other after retries.",
	})
)
