package config

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pion/webrtc/v4"
)

type Config struct {
	Debug          bool     `env:"DEBUG" envDefault:"false"`
	Port           string   `env:"PORT" envDefault:"5001"`
	MetricPort     string   `env:"METRIC_PORT" envDefault:"9090"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	WebSocket WebSocketConfig
	Meeting   MeetingConfig
	ICE       ICEConfig
	Postgres  PostgresConfig
}

type WebSocketConfig struct {
	ReadLimit         int64         `env:"WS_READ_LIMIT" envDefault:"65536"`
	PingPeriod        time.Duration `env:"WS_PING_PERIOD" envDefault:"30s"`
	PongWait          time.Duration `env:"WS_PONG_WAIT" envDefault:"60s"`
	WriteWait         time.Duration `env:"WS_WRITE_WAIT" envDefault:"10s"`
	SendBuffer        int           `env:"WS_SEND_BUFFER" envDefault:"256"`
	MessagesPerSecond float64       `env:"WS_MESSAGES_PER_SECOND" envDefault:"50"`
	MessageBurst      int           `env:"WS_MESSAGE_BURST" envDefault:"100"`
}

type MeetingConfig struct {
	// RemovalGrace - сколько ждём перед закрытием сокета удалённого участника
	RemovalGrace time.Duration `env:"REMOVAL_GRACE" envDefault:"1s"`
	// EndMeetingGrace - то же самое для завершения встречи
	EndMeetingGrace time.Duration `env:"END_MEETING_GRACE" envDefault:"2s"`
}

type ICEConfig struct {
	STUNURLs []string `env:"STUN_URLS" envDefault:"stun:stun.l.google.com:19302,stun:stun1.l.google.com:19302,stun:stun2.l.google.com:19302" envSeparator:","`

	// TURN опционален: без COTURN_HOST клиенты получают только STUN
	CoturnHost   string        `env:"COTURN_HOST"`
	CoturnSecret string        `env:"COTURN_SECRET"`
	CoturnTTL    time.Duration `env:"COTURN_TTL" envDefault:"1h"`
}

type PostgresConfig struct {
	URL string `env:"POSTGRES_URL"`

	Host     string `env:"POSTGRES_HOST"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	Name     string `env:"POSTGRES_NAME" envDefault:"roomsignal"`
	SSL      string `env:"POSTGRES_SSL" envDefault:"disable"`
}

// Enabled - журнал встреч пишется только если задан адрес базы
func (p *PostgresConfig) Enabled() bool {
	return p.URL != "" || p.Host != ""
}

func (p *PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}

	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.Name,
		p.SSL,
	)
}

// ICEServers собирает список ICE серверов для клиента.
// TURN креды генерируются по схеме TURN REST API (username = expiry, HMAC-SHA1 от static-auth-secret).
func (c *ICEConfig) ICEServers(now time.Time) []webrtc.ICEServer {
	servers := make([]webrtc.ICEServer, 0, 2)

	if len(c.STUNURLs) > 0 {
		servers = append(servers, webrtc.ICEServer{URLs: c.STUNURLs})
	}

	if c.CoturnHost == "" || c.CoturnSecret == "" {
		return servers
	}

	username := strconv.FormatInt(now.Add(c.CoturnTTL).Unix(), 10)

	mac := hmac.New(sha1.New, []byte(c.CoturnSecret))
	mac.Write([]byte(username))

	servers = append(servers, webrtc.ICEServer{
		URLs: []string{
			fmt.Sprintf("turn:%s?transport=udp", c.CoturnHost),
			fmt.Sprintf("turn:%s?transport=tcp", c.CoturnHost),
		},
		Username:   username,
		Credential: base64.StdEncoding.EncodeToString(mac.Sum(nil)),
	})

	return servers
}

func New() (*Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return &c, nil
}
