// Package metrics defines the custom Prometheus metrics for the user
// provisioning service. It is the single source of truth for metric names,
// labels, and help strings; promauto registers everything with the default
// registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "provisioning"

// UsersProvisionedTotal counts successful reconciliations.
// Label:
//   - action: "created" (new profile inserted) or "updated" (full overwrite)
var UsersProvisionedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_provisioned_total",
		Help:      "Total number of users successfully provisioned, by action.",
	},
	[]string{"action"},
)

// ProvisionErrorsTotal counts failed reconciliations.
// Label:
//   - kind: failing step ("lookup_failed", "identity_creation_failed",
//     "profile_write_failed", "unexpected")
var ProvisionErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provision_errors_total",
		Help:      "Total number of failed provisioning attempts, by error kind.",
	},
	[]string{"kind"},
)

// ProvisionDuration measures one reconciliation end-to-end, including the
// identity store enumeration and any visibility polling.
// Label:
//   - action: the resulting action, or "error" on failure
var ProvisionDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provision_duration_seconds",
		Help:      "Duration of a provisioning attempt from request to persisted profile.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
	},
	[]string{"action"},
)

// BatchItemsTotal counts batch items by outcome.
// Label:
//   - result: "success" or "failure"
var BatchItemsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_items_total",
		Help:      "Total number of batch provisioning items, by result.",
	},
	[]string{"result"},
)
