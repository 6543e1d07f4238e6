package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "event_platform"

// Registry 全域 Prometheus registry，/metrics 只輸出這裡註冊的指標
var Registry = prometheus.NewRegistry()

var (
	// LoginAttempts result: success|invalid_credentials|banned|rate_limited
	LoginAttempts = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	TicketOperations = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_operations_total",
			Help:      "Total number of ticket registrations and cancellations by result",
		},
		[]string{"operation", "result"},
	)

	// ActivitiesPublished result: ok|error
	ActivitiesPublished = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activities_published_total",
			Help:      "Total number of activity records handed to the queue",
		},
		[]string{"kind", "result"},
	)

	// ActivitiesPersisted result: inserted|duplicate|error
	ActivitiesPersisted = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activities_persisted_total",
			Help:      "Total number of activity records processed by the worker",
		},
		[]string{"result"},
	)
)

var initOnce sync.Once

// Init 註冊 Go runtime 與 process collector，重複呼叫無效果
func Init() {
	initOnce.Do(func() {
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// Result 把 error 轉成 ok|error 標籤
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
