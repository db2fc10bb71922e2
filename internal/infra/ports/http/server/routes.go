package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/qrave1/RoomSignal/internal/application/config"
	"github.com/qrave1/RoomSignal/internal/infra/ports/http/handlers"
	"github.com/qrave1/RoomSignal/internal/infra/ports/http/middleware"
)

func New(
	cfg *config.Config,
	roomHandler *handlers.RoomHandler,
	iceHandler *handlers.IceHandler,
	wsHandler *handlers.WebSocketHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/ws", wsHandler.Handle)

	api := e.Group("/api")
	api.Use(middleware.SlogLogger(), middleware.PrometheusMiddleware())
	{
		api.GET("/ice", iceHandler.IceServers)

		api.GET("/rooms", roomHandler.ListRoomsHandler)
		api.POST("/rooms", roomHandler.CreateRoomHandler)
		api.POST("/rooms/:roomId/verify", roomHandler.VerifyPasscodeHandler)
	}

	return e
}
