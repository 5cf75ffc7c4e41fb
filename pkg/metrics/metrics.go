package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics коллектор метрик сервиса.
// Все методы безопасны для nil-получателя, поэтому метрики можно не передавать в тестах.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbConnections   *prometheus.GaugeVec

	slotsGenerated     prometheus.Counter
	calendarFallbacks  *prometheus.CounterVec
	bookingsCompleted  prometheus.Counter
	bookingRejections  *prometheus.CounterVec
	sideEffectFailures *prometheus.CounterVec
	receiptsProcessed  *prometheus.CounterVec
}

// New создает коллектор метрик с собственным реестром
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Количество HTTP запросов",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Время обработки HTTP запросов",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Время выполнения запросов к БД",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		dbConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Состояние пула соединений",
			ConstLabels: labels,
		}, []string{"state"}),
		slotsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "availability_slots_generated_total",
			Help:        "Количество сгенерированных слотов",
			ConstLabels: labels,
		}),
		calendarFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_calendar_fallbacks_total",
			Help:        "Количество подстановок демо-слотов или пропущенных календарей",
			ConstLabels: labels,
		}, []string{"reason"}),
		bookingsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_completed_total",
			Help:        "Количество успешных бронирований по ссылке",
			ConstLabels: labels,
		}),
		bookingRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_rejected_total",
			Help:        "Количество отклоненных бронирований",
			ConstLabels: labels,
		}, []string{"reason"}),
		sideEffectFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_side_effect_failures_total",
			Help:        "Ошибки побочных действий бронирования (календарь, почта)",
			ConstLabels: labels,
		}, []string{"kind"}),
		receiptsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "receipts_processed_total",
			Help:        "Количество обработанных чеков",
			ConstLabels: labels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbConnections,
		m.slotsGenerated,
		m.calendarFallbacks,
		m.bookingsCompleted,
		m.bookingRejections,
		m.sideEffectFailures,
		m.receiptsProcessed,
	)

	return m
}

// Handler возвращает HTTP handler для экспорта метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry возвращает реестр метрик
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues("open").Set(float64(open))
	m.dbConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues("idle").Set(float64(idle))
}

// AddSlotsGenerated увеличивает счетчик сгенерированных слотов
func (m *Metrics) AddSlotsGenerated(n int) {
	if m == nil {
		return
	}
	m.slotsGenerated.Add(float64(n))
}

// IncCalendarFallback фиксирует деградацию при работе с календарем
func (m *Metrics) IncCalendarFallback(reason string) {
	if m == nil {
		return
	}
	m.calendarFallbacks.WithLabelValues(reason).Inc()
}

// IncBookingCompleted фиксирует успешное бронирование
func (m *Metrics) IncBookingCompleted() {
	if m == nil {
		return
	}
	m.bookingsCompleted.Inc()
}

// IncBookingRejected фиксирует отклоненное бронирование
func (m *Metrics) IncBookingRejected(reason string) {
	if m == nil {
		return
	}
	m.bookingRejections.WithLabelValues(reason).Inc()
}

// IncSideEffectFailure фиксирует ошибку побочного действия
func (m *Metrics) IncSideEffectFailure(kind string) {
	if m == nil {
		return
	}
	m.sideEffectFailures.WithLabelValues(kind).Inc()
}

// IncReceiptProcessed фиксирует обработку чека
func (m *Metrics) IncReceiptProcessed(result string) {
	if m == nil {
		return
	}
	m.receiptsProcessed.WithLabelValues(result).Inc()
}
