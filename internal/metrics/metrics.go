// Package metrics exposes Prometheus collectors for builds and the
// artifact HTTP server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rulesmith_builds_total",
		Help: "Number of pipeline runs by result.",
	}, []string{"result"})

	LastBuildTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rulesmith_last_build_timestamp_seconds",
		Help: "Unix timestamp of the last successful pipeline run.",
	})

	LastBuildDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rulesmith_last_build_duration_seconds",
		Help: "Duration of the last successful pipeline run.",
	})

	ArtifactRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rulesmith_artifact_requests_total",
		Help: "Artifact HTTP requests by format and status code.",
	}, []string{"format", "code"})
)

// ObserveBuild records a finished pipeline run.
func ObserveBuild(start time.Time, err error) {
	if err != nil {
		BuildsTotal.WithLabelValues("error").Inc()
		return
	}
	BuildsTotal.WithLabelValues("success").Inc()
	LastBuildTimestamp.SetToCurrentTime()
	LastBuildDuration.Set(time.Since(start).Seconds())
}
