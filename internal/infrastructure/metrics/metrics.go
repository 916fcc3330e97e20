package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the control service
type Metrics struct {
	// Authorization metrics
	PermissionDenials *prometheus.CounterVec

	// Channel metrics
	ChannelsRegistered prometheus.Counter
	ChannelsUpdated    prometheus.Counter
	UpsertConflicts    prometheus.Counter
	RoleAssignments    prometheus.Counter

	// Post metrics
	PostsCreated      prometheus.Counter
	StatusTransitions *prometheus.CounterVec

	// Stats metrics
	CounterIncrements *prometheus.CounterVec

	// Audit metrics
	AuditEntriesTotal  prometheus.Counter
	AuditPublishErrors prometheus.Counter
}

var (
	// DefaultMetrics is the default metrics instance
	DefaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		DefaultMetrics = NewMetrics()
	})
	return DefaultMetrics
}

// NewMetrics creates a new Metrics instance with all counters
func NewMetrics() *Metrics {
	return &Metrics{
		PermissionDenials: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "control_service_permission_denials_total",
				Help: "Total number of rejected authorization checks",
			},
			[]string{"required_role"},
		),
		ChannelsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "control_service_channels_registered_total",
			Help: "Total number of channels created via registration",
		}),
		ChannelsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "control_service_channels_updated_total",
			Help: "Total number of channel re-registrations and settings updates",
		}),
		UpsertConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "control_service_channel_upsert_conflicts_total",
			Help: "Total number of unique-constraint races hit during channel upsert",
		}),
		RoleAssignments: promauto.NewCounter(prometheus.CounterOpts{
			Name: "control_service_role_assignments_total",
			Help: "Total number of member role assignments",
		}),
		PostsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "control_service_posts_created_total",
			Help: "Total number of posts created",
		}),
		StatusTransitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "control_service_post_status_transitions_total",
				Help: "Total number of post status transitions",
			},
			[]string{"to"},
		),
		CounterIncrements: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "control_service_counter_increments_total",
				Help: "Total number of click/reaction counter increments",
			},
			[]string{"signal"},
		),
		AuditEntriesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "control_service_audit_entries_total",
			Help: "Total number of audit entries recorded",
		}),
		AuditPublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "control_service_audit_publish_errors_total",
			Help: "Total number of failed audit event publishes",
		}),
	}
}
