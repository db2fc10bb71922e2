package usecase

import (
	"context"
	"log/slog"

	"github.com/qrave1/RoomSignal/internal/application/constant"
	"github.com/qrave1/RoomSignal/internal/application/metric"
	"github.com/qrave1/RoomSignal/internal/domain/events"
)

// Relay пересылает offer/answer/ice-candidate адресату из той же комнаты.
// Нагрузку не разбираем. Адресата нет - сообщение теряется.
func (uc *meetingUsecase) Relay(ctx context.Context, kind, connID string, signal events.SignalEvent) {
	if !events.IsSignal(kind) {
		return
	}

	uc.lock()
	defer uc.unlock(ctx)

	from, ok := uc.sessionRepo.Get(connID)
	if !ok {
		slog.Debug("relay from unbound connection", slog.String(constant.ConnID, connID))
		return
	}

	to, ok := uc.sessionRepo.Get(signal.TargetID)
	if !ok || to.RoomID != from.RoomID {
		metric.RecordRelayDropped(kind)

		slog.Debug(
			"relay target is gone",
			slog.String(constant.ConnID, connID),
			slog.String(constant.TargetID, signal.TargetID),
			slog.String(constant.MessageType, kind),
		)

		return
	}

	uc.send(signal.TargetID, kind, events.RelayedSignal(kind, signal.Payload(kind), connID))
}
