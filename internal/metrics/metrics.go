package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "microblog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "microblog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Domain metrics
	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "microblog_users_registered_total",
			Help: "Total number of registered users",
		},
	)

	PostsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "microblog_posts_created_total",
			Help: "Total number of posts by detected language",
		},
		[]string{"language"},
	)

	FollowEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "microblog_follow_events_total",
			Help: "Follow and unfollow operations",
		},
		[]string{"action"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "microblog_login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	// Mail queue metrics
	EmailsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "microblog_emails_sent_total",
			Help: "Emails accepted by the mail provider",
		},
	)

	EmailsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "microblog_emails_failed_total",
			Help: "Emails moved to the dead letter table",
		},
	)

	EmailQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "microblog_email_queue_depth",
			Help: "Emails waiting in the in-memory queue",
		},
	)

	TranslationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "microblog_translation_requests_total",
			Help: "Translation requests by result",
		},
		[]string{"result"},
	)
)
