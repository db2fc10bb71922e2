package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP метрики - количество запросов
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Общее количество HTTP запросов",
		},
		[]string{"method", "endpoint", "status"},
	)

	// HTTP метрики - время обработки запросов
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Время обработки HTTP запросов в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	// WS метрики - количество активных соединений
	wsActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_active_connections",
			Help: "Количество активных WebSocket соединений",
		},
	)

	// WS метрики - входящие сообщения сигналинга по типу
	wsInboundMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ws_inbound_messages_total",
			Help: "Количество входящих сообщений сигналинга",
		},
		[]string{"type"},
	)

	// WS метрики - сообщения, отброшенные лимитером
	wsRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ws_rate_limited_total",
			Help: "Количество сообщений, отброшенных rate limiter",
		},
	)

	// Комнаты и участники
	activeRooms = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "meeting_active_rooms",
			Help: "Количество существующих комнат",
		},
	)

	activeParticipants = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "meeting_active_participants",
			Help: "Количество участников во всех комнатах",
		},
	)

	relayDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signaling_relay_dropped_total",
			Help: "Сообщения offer/answer/ice-candidate без адресата",
		},
		[]string{"type"},
	)

	meetingsClosed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_closed_total",
			Help: "Количество закрытых комнат по причине",
		},
		[]string{"reason"},
	)
)

// RecordHTTPMetrics записывает метрики HTTP запроса
func RecordHTTPMetrics(method, endpoint string, status int, duration time.Duration) {
	strStatus := strconv.Itoa(status)

	httpRequestsTotal.WithLabelValues(method, endpoint, strStatus).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, strStatus).Observe(duration.Seconds())
}

func IncrementWSActiveConnections() {
	wsActiveConnections.Inc()
}

func DecrementWSActiveConnections() {
	wsActiveConnections.Dec()
}

func RecordInboundMessage(msgType string) {
	wsInboundMessages.WithLabelValues(msgType).Inc()
}

func RecordRateLimited() {
	wsRateLimited.Inc()
}

func SetActiveRooms(count int) {
	activeRooms.Set(float64(count))
}

func SetActiveParticipants(count int) {
	activeParticipants.Set(float64(count))
}

func RecordRelayDropped(msgType string) {
	relayDropped.WithLabelValues(msgType).Inc()
}

func RecordMeetingClosed(reason string) {
	meetingsClosed.WithLabelValues(reason).Inc()
}
