package metric

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthFunc - счётчики, которые отдаются в /health рядом со статусом
type HealthFunc func() map[string]int

// NewServer создает новый сервер метрик
func NewServer(health HealthFunc) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.HidePort = true

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/health", func(c echo.Context) error {
		resp := map[string]any{"status": "ok"}

		if health != nil {
			for k, v := range health() {
				resp[k] = v
			}
		}

		return c.JSON(http.StatusOK, resp)
	})

	return e
}
