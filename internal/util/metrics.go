package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InquiriesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inquiries_created_total",
		Help: "Total number of inquiries created",
	})

	InquiriesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inquiries_failed_total",
		Help: "Total number of rejected inquiry creations",
	}, []string{"reason"})

	InquiryStatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inquiry_status_updates_total",
		Help: "Total number of inquiry status transitions applied",
	}, []string{"status"})

	InquiryListLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "inquiry_list_latency_seconds",
		Help:    "Latency of inquiry list queries",
		Buckets: prometheus.DefBuckets,
	})

	InquiryListCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inquiry_list_cache_hits_total",
		Help: "Inquiry list cache lookups by outcome",
	}, []string{"outcome"})

	NotificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inquiry_notifications_sent_total",
		Help: "Notifications emitted by the worker, by event type",
	}, []string{"event_type"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
