package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "onramp"

// Service owns the prometheus registry of one server instance. A registry per instance keeps
// parallel test servers from colliding on the global default registry.
type Service struct {
	Registry *prometheus.Registry

	sessionTokens *prometheus.CounterVec
	cdpRequests   *prometheus.HistogramVec
}

func New() (*Service, error) {
	registry := prometheus.NewRegistry()

	s := &Service{
		Registry: registry,
		sessionTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_tokens_issued_total",
			Help:      "Session tokens handed out, by origin (remote or fallback) and fallback env.",
		}, []string{"origin", "env"}),
		cdpRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cdp_token_request_duration_seconds",
			Help:      "Duration of calls to the CDP token endpoint, by outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		s.sessionTokens,
		s.cdpRequests,
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Service) ObserveSessionToken(origin string, env string) {
	s.sessionTokens.WithLabelValues(origin, env).Inc()
}

func (s *Service) ObserveCDPRequest(outcome string, duration time.Duration) {
	s.cdpRequests.WithLabelValues(outcome).Observe(duration.Seconds())
}
