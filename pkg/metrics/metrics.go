package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa os coletores da aplicação. Um *Metrics nil é válido e não
// registra nada.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	OrdersCreated         prometheus.Counter
	LineItemsCreated      prometheus.Counter
	InstallmentsGenerated prometheus.Counter
	StatusTransitions     *prometheus.CounterVec
	AuthAttempts          *prometheus.CounterVec
}

// New cria e registra os coletores com o prefixo informado em um registro próprio
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		OrdersCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_orders_created_total",
				Help: "Total number of orders created",
			},
		),

		LineItemsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_order_line_items_created_total",
				Help: "Total number of order line items created",
			},
		),

		InstallmentsGenerated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_installments_created_total",
				Help: "Total number of installments created with payment plans",
			},
		),

		StatusTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_installment_status_transitions_total",
				Help: "Total number of installment status changes",
			},
			[]string{"from", "to"},
		),

		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_auth_attempts_total",
				Help: "Total number of login attempts",
			},
			[]string{"result"},
		),
	}
}

// Registry retorna o registro usado pelos coletores
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler expõe as métricas no formato do Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordOrder contabiliza um pedido (ou alteração) com seus itens e parcelas
func (m *Metrics) RecordOrder(created bool, items, installments int) {
	if m == nil {
		return
	}
	if created {
		m.OrdersCreated.Inc()
	}
	m.LineItemsCreated.Add(float64(items))
	m.InstallmentsGenerated.Add(float64(installments))
}

// RecordStatusTransition contabiliza a mudança de status de uma parcela
func (m *Metrics) RecordStatusTransition(from, to string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(from, to).Inc()
}

// RecordAuthAttempt contabiliza uma tentativa de login
func (m *Metrics) RecordAuthAttempt(success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.AuthAttempts.WithLabelValues(result).Inc()
}

// Middleware registra contagem e duração das requisições HTTP
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		if m == nil {
			return
		}

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
