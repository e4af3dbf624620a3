package game

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"quizmaster/internal/model"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

var avatarColors = []string{
	"bg-red-500", "bg-blue-500", "bg-green-500", "bg-yellow-500",
	"bg-purple-500", "bg-pink-500", "bg-indigo-500", "bg-teal-500",
}

// Registry owns the code->room and connection->code maps. These two maps are
// the only state shared across rooms; everything else is partitioned per
// room. Map access is serialized by the registry lock, room mutation by the
// room lock, always acquired in that order.
type Registry struct {
	roomsByCode map[string]*Room
	codeByConn  map[string]string
	questions   QuestionSource
	validate    *validator.Validate

	mu sync.RWMutex
}

// NewRegistry creates an empty registry backed by the given question source.
func NewRegistry(questions QuestionSource) *Registry {
	return &Registry{
		roomsByCode: make(map[string]*Room),
		codeByConn:  make(map[string]string),
		questions:   questions,
		validate:    validator.New(),
	}
}

// Create builds a new room with the requestor as sole member and host. The
// question fetch happens before any lock is taken so a slow provider never
// stalls other rooms.
func (r *Registry) Create(ctx context.Context, connID, name string, settings model.GameSettings) (*Room, *model.Player, error) {
	if err := r.validate.Struct(settings); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidSettings, settingsHint(settings))
	}
	if r.Resolve(connID) != nil {
		return nil, nil, ErrAlreadyInRoom
	}

	questions, err := r.questions.Fetch(ctx, settings)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching questions: %w", err)
	}

	host := newPlayer(connID, name, true)

	r.mu.Lock()
	defer r.mu.Unlock()

	code, err := r.generateCode()
	if err != nil {
		return nil, nil, err
	}

	room := &Room{
		ID:        uuid.NewString(),
		Code:      code,
		HostID:    connID,
		Players:   []*model.Player{host},
		Settings:  settings,
		Questions: questions,
		Phase:     model.PhaseLobby,
		CreatedAt: time.Now(),
	}

	r.roomsByCode[code] = room
	r.codeByConn[connID] = code

	return room, host, nil
}

// Join adds a new non-host member to the room with the given code.
func (r *Registry) Join(connID, code, name string) (*Room, *model.Player, error) {
	if r.Resolve(connID) != nil {
		return nil, nil, ErrAlreadyInRoom
	}

	code = strings.ToUpper(code)

	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.roomsByCode[code]
	if !ok {
		return nil, nil, ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.Started {
		return nil, nil, ErrGameAlreadyStarted
	}
	if len(room.Players) >= room.Settings.MaxPlayers {
		return nil, nil, ErrRoomFull
	}
	for _, p := range room.Players {
		if strings.EqualFold(p.Name, name) {
			return nil, nil, ErrNameTaken
		}
	}

	player := newPlayer(connID, name, false)
	room.Players = append(room.Players, player)
	r.codeByConn[connID] = code

	return room, player, nil
}

// LeaveResult describes the outcome of removing a member.
type LeaveResult struct {
	Room      *Room
	Player    *model.Player
	NewHostID string
	Deleted   bool
}

// Leave removes the connection's membership. Departing hosts hand the role
// to the earliest-joined remaining member; emptied rooms are deleted. Returns
// nil when the connection was not in any room.
func (r *Registry) Leave(connID string) *LeaveResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, ok := r.codeByConn[connID]
	if !ok {
		return nil
	}
	delete(r.codeByConn, connID)

	room, ok := r.roomsByCode[code]
	if !ok {
		return nil
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	res := &LeaveResult{Room: room}
	for i, p := range room.Players {
		if p.ID == connID {
			res.Player = p
			room.Players = append(room.Players[:i], room.Players[i+1:]...)
			break
		}
	}
	if res.Player == nil {
		return nil
	}

	if len(room.Players) == 0 {
		delete(r.roomsByCode, code)
		res.Deleted = true
		return res
	}

	if room.HostID == connID {
		next := room.Players[0]
		next.IsHost = true
		room.HostID = next.ID
		res.NewHostID = next.ID
	}

	return res
}

// Resolve returns the room the connection currently belongs to, or nil.
func (r *Registry) Resolve(connID string) *Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	code, ok := r.codeByConn[connID]
	if !ok {
		return nil
	}
	return r.roomsByCode[code]
}

// Get returns the room registered under the given code, or nil.
func (r *Registry) Get(code string) *Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.roomsByCode[code]
}

// Count returns the number of active rooms and registered connections.
func (r *Registry) Count() (rooms, connections int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.roomsByCode), len(r.codeByConn)
}

// generateCode produces a 6-char uppercase alphanumeric code unique among
// active rooms. Caller holds the registry lock, which makes the
// check-and-register step atomic.
func (r *Registry) generateCode() (string, error) {
	for attempts := 0; attempts < 100; attempts++ {
		b := make([]byte, codeLength)
		for i := range b {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
			if err != nil {
				return "", err
			}
			b[i] = codeAlphabet[n.Int64()]
		}
		code := string(b)
		if _, exists := r.roomsByCode[code]; !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique room code")
}

func newPlayer(connID, name string, host bool) *model.Player {
	return &model.Player{
		ID:       connID,
		Name:     name,
		IsHost:   host,
		Avatar:   randomAvatar(),
		JoinedAt: time.Now(),
	}
}

func randomAvatar() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(avatarColors))))
	if err != nil {
		return avatarColors[0]
	}
	return avatarColors[n.Int64()]
}

func settingsHint(s model.GameSettings) string {
	return fmt.Sprintf(
		"players must be 2-10 (got %d), questions 5-25 (got %d), seconds per question 15-60 (got %d)",
		s.MaxPlayers, s.QuestionCount, s.TimePerQuestion,
	)
}
