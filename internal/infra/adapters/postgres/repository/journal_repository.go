package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/qrave1/RoomSignal/internal/domain/models"
)

// JournalRepository - журнал открытия и закрытия встреч, только на запись
type JournalRepository interface {
	Record(ctx context.Context, entry *models.JournalEntry) error
	ListByRoom(ctx context.Context, roomID string) ([]*models.JournalEntry, error)
}

type journalRepo struct {
	db *sqlx.DB
}

func NewJournalRepo(db *sqlx.DB) JournalRepository {
	return &journalRepo{db: db}
}

func (r *journalRepo) Record(ctx context.Context, entry *models.JournalEntry) error {
	_, err := r.db.NamedExecContext(
		ctx,
		`INSERT INTO meeting_journal (id, room_id, kind, reason, participant_count, created_at)
		VALUES (:id, :room_id, :kind, :reason, :participant_count, :created_at)`,
		entry,
	)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}

	return nil
}

// ListByRoom нужен для разбора инцидентов, живое состояние комнат отсюда не восстанавливается
func (r *journalRepo) ListByRoom(ctx context.Context, roomID string) ([]*models.JournalEntry, error) {
	entries := make([]*models.JournalEntry, 0)

	err := r.db.SelectContext(
		ctx,
		&entries,
		"SELECT id, room_id, kind, reason, participant_count, created_at FROM meeting_journal WHERE room_id = $1 ORDER BY created_at",
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("select journal entries: %w", err)
	}

	return entries, nil
}
