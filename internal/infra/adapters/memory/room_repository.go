package memory

import (
	"sort"
	"sync"

	"github.com/qrave1/RoomSignal/internal/domain"
	"github.com/qrave1/RoomSignal/internal/domain/models"
)

// RoomRepository - реестр комнат в памяти. Состояние самих комнат меняется только под мьютексом usecase.
type RoomRepository interface {
	Create(room *models.Room) error
	Get(roomID string) (*models.Room, bool)
	Delete(roomID string)

	// List отдаёт комнаты в порядке создания
	List() []*models.Room
	Count() int
}

type roomRepository struct {
	rooms map[string]*models.Room
	mu    sync.RWMutex
}

func NewRoomRepository() RoomRepository {
	return &roomRepository{
		rooms: make(map[string]*models.Room),
	}
}

func (r *roomRepository) Create(room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[room.ID]; exists {
		return domain.ErrRoomExists
	}

	r.rooms[room.ID] = room

	return nil
}

func (r *roomRepository) Get(roomID string) (*models.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomID]
	return room, ok
}

func (r *roomRepository) Delete(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rooms, roomID)
}

func (r *roomRepository) List() []*models.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]*models.Room, 0, len(r.rooms))

	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}

	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].ID < rooms[j].ID
		}

		return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
	})

	return rooms
}

func (r *roomRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms)
}
