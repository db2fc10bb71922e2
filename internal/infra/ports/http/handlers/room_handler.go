package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qrave1/RoomSignal/internal/application/constant"
	"github.com/qrave1/RoomSignal/internal/domain"
	"github.com/qrave1/RoomSignal/internal/domain/input"
	"github.com/qrave1/RoomSignal/internal/infra/ports/http/dto"
	"github.com/qrave1/RoomSignal/internal/usecase"
)

type RoomHandler struct {
	roomUsecase usecase.RoomUsecase
}

func NewRoomHandler(roomUsecase usecase.RoomUsecase) *RoomHandler {
	return &RoomHandler{roomUsecase: roomUsecase}
}

func (h *RoomHandler) CreateRoomHandler(c echo.Context) error {
	var req dto.CreateRoomRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	if req.RoomID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "roomId is required"})
	}

	room, err := h.roomUsecase.CreateRoom(c.Request().Context(), &input.CreateRoomInput{
		RoomID:       req.RoomID,
		Passcode:     req.Passcode,
		CreatorName:  req.CreatorName,
		CreatorEmail: req.CreatorEmail,
		MeetingDate:  req.MeetingDate,
		MeetingTime:  req.MeetingTime,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRoomExists) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Room ID already exists"})
		}

		slog.Error("create room", slog.Any(constant.Error, err), slog.String(constant.RoomID, req.RoomID))

		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create room"})
	}

	return c.JSON(http.StatusOK, dto.CreateRoomResponse{Success: true, Room: dto.NewRoomDTO(room)})
}

func (h *RoomHandler) ListRoomsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, h.roomUsecase.ListRooms(c.Request().Context()))
}

func (h *RoomHandler) VerifyPasscodeHandler(c echo.Context) error {
	var req dto.VerifyPasscodeRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	err := h.roomUsecase.VerifyPasscode(c.Request().Context(), c.Param("roomId"), req.Passcode)
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Room not found"})
	case errors.Is(err, domain.ErrInvalidPasscode):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid passcode"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to verify passcode"})
	}

	return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
