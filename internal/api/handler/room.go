package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/whist-team/whist-server-go/internal/api/middleware"
	"github.com/whist-team/whist-server-go/internal/api/request"
	"github.com/whist-team/whist-server-go/internal/api/response"
	"github.com/whist-team/whist-server-go/internal/model"
	"github.com/whist-team/whist-server-go/internal/notify"
	"github.com/whist-team/whist-server-go/internal/services/room"
)

// RoomHandler handles room-related endpoints
type RoomHandler struct {
	roomService *room.Service
	hubManager  *notify.HubManager
	logger      *slog.Logger
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *room.Service, hubManager *notify.HubManager, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		hubManager:  hubManager,
		logger:      logger,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	created, err := h.roomService.Create(r.Context(), player.ID, room.CreateParams{
		Name:       req.Name,
		Password:   req.Password,
		MinPlayers: req.MinPlayers,
		MaxPlayers: req.MaxPlayers,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromModel(created))
}

// List handles GET /api/v1/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RoomListFromModel(rooms))
}

// Get handles GET /api/v1/rooms/{id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.RoomID(mux.Vars(r)["id"])

	found, err := h.roomService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RoomFromModel(found))
}

// GetByName handles GET /api/v1/rooms/by-name/{name}
func (h *RoomHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	found, err := h.roomService.GetByName(r.Context(), name)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RoomFromModel(found))
}

// Join handles POST /api/v1/rooms/{id}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.RoomID(mux.Vars(r)["id"])

	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Empty body joins an open room
		req = request.JoinRoomRequest{}
	}

	joined, err := h.roomService.Join(r.Context(), id, player.ID, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RoomFromModel(joined))
}

// Leave handles POST /api/v1/rooms/{id}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.RoomID(mux.Vars(r)["id"])

	left, err := h.roomService.Leave(r.Context(), id, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RoomFromModel(left))
}

// ReadyUp handles POST /api/v1/rooms/{id}/ready
func (h *RoomHandler) ReadyUp(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.RoomID(mux.Vars(r)["id"])

	readied, err := h.roomService.ReadyUp(r.Context(), id, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RoomFromModel(readied))
}

// Unready handles POST /api/v1/rooms/{id}/unready
func (h *RoomHandler) Unready(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.RoomID(mux.Vars(r)["id"])

	unreadied, err := h.roomService.Unready(r.Context(), id, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RoomFromModel(unreadied))
}

// Start handles POST /api/v1/rooms/{id}/start
func (h *RoomHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.RoomID(mux.Vars(r)["id"])

	var req request.StartRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Empty body starts with the default matcher
		req = request.StartRoomRequest{}
	}

	started, err := h.roomService.Start(r.Context(), id, player.ID, req.Matcher)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RoomFromModel(started))
}

// NextHand handles POST /api/v1/rooms/{id}/next-hand
func (h *RoomHandler) NextHand(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.RoomID(mux.Vars(r)["id"])

	advanced, err := h.roomService.NextHand(r.Context(), id, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RoomFromModel(advanced))
}

// Events handles GET /api/v1/rooms/{id}/events, upgrading to a websocket
// that streams the room's events. Only members may subscribe.
func (h *RoomHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.RoomID(mux.Vars(r)["id"])

	found, err := h.roomService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !found.HasPlayer(player.ID) {
		WriteError(w, model.ErrPlayerNotJoined)
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	notify.ServeWS(w, r, hub, player.ID, h.logger)
}
