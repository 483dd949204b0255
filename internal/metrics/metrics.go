// Package metrics holds the Prometheus collectors of the backend.
package metrics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/violet-vault/backend/internal/bills"
)

var collectors = []prometheus.Collector{
	requestCount,
	requestDuration,
	PlansCreated,
	BillChanges,
	SplitSubmissions,
}

// Register registers all collectors with the default registry.
func Register() error {
	for _, c := range collectors {
		if err := prometheus.Register(c); err != nil {
			return fmt.Errorf("could not register %s with Prometheus: %w", c, err)
		}
	}

	return nil
}

// Unregister unregisters all collectors.
//
// This is needed to cleanly exit and to build more than one router in tests.
func Unregister() bool {
	ok := true
	for _, c := range collectors {
		if !prometheus.Unregister(c) {
			ok = false
		}
	}

	return ok
}

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "requests_total",
		Help: "How many HTTP requests processed, partitioned by status code and HTTP method.",
	},
	[]string{"code", "method", "url"},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "request_duration_seconds",
		Help: "The HTTP request latencies in seconds.",
	},
	[]string{"code", "method", "url"},
)

// PlansCreated counts paycheck allocation previews by mode.
var PlansCreated = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "paycheck_plans_total",
		Help: "How many paycheck allocation plans were calculated, partitioned by mode.",
	},
	[]string{"mode"},
)

// BillChanges counts committed bill mutations by kind.
var BillChanges = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bill_changes_total",
		Help: "How many bill mutations were committed, partitioned by kind.",
	},
	[]string{"kind"},
)

// SplitSubmissions counts split preparations by whether they could be submitted.
var SplitSubmissions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "split_submissions_total",
		Help: "How many transaction splits were prepared for submission, partitioned by result.",
	},
	[]string{"result"},
)

// ObserveBillChange is a bills.Observer that counts changes.
func ObserveBillChange(change bills.Change) {
	BillChanges.WithLabelValues(string(change.Kind)).Inc()
}

// ObserveSplitSubmission counts one split preparation.
func ObserveSplitSubmission(canSubmit bool) {
	result := "rejected"
	if canSubmit {
		result = "accepted"
	}
	SplitSubmissions.WithLabelValues(result).Inc()
}

// Middleware updates the HTTP request metrics.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		elapsed := float64(time.Since(start)) / float64(time.Second)

		// Replace all URL parameters with their name to reduce cardinality
		// https://prometheus.io/docs/practices/naming/#labels
		url := c.Request.URL.Path
		for _, p := range c.Params {
			url = strings.Replace(url, p.Value, fmt.Sprintf(":%s", p.Key), 1)
		}

		requestDuration.WithLabelValues(status, c.Request.Method, url).Observe(elapsed)
		requestCount.WithLabelValues(status, c.Request.Method, url).Inc()
	}
}
