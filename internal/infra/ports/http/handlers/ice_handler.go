package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/qrave1/RoomSignal/internal/application/config"
)

type IceHandler struct {
	cfg *config.Config
}

func NewIceHandler(cfg *config.Config) *IceHandler {
	return &IceHandler{cfg: cfg}
}

// IceServers отдаёт STUN и, если настроен coturn, временные TURN креды
func (h *IceHandler) IceServers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cfg.ICE.ICEServers(time.Now()))
}
