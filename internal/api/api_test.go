package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whist-team/whist-server-go/internal/api"
	"github.com/whist-team/whist-server-go/internal/api/response"
	"github.com/whist-team/whist-server-go/internal/factory"
)

// testServer wires the router against in-memory storage
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		RoomService: app.RoomService,
		HubManager:  app.HubManager,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// register creates a player and returns their session token
func (ts *testServer) register(t *testing.T, username string) string {
	t.Helper()
	body := map[string]string{"username": username, "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.SessionToken
}

func (ts *testServer) createRoom(t *testing.T, token string, body map[string]any) response.Room {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/rooms", body, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	return created
}

func decodeRoom(t *testing.T, rr *httptest.ResponseRecorder) response.Room {
	t.Helper()
	var got response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	return got
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	registerBody := map[string]string{
		"username":     "alice",
		"password":     "secret123",
		"display_name": "Alice",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &registerResp))
	assert.Equal(t, "Alice", registerResp.Player.DisplayName)
	assert.NotEmpty(t, registerResp.SessionToken)

	loginBody := map[string]string{"username": "alice", "password": "secret123"}
	rr = ts.request(http.MethodPost, "/api/v1/players/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	assert.Equal(t, registerResp.Player.ID, loginResp.Player.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	body := map[string]string{"username": "alice", "password": "other"}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "USERNAME_TAKEN")
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	body := map[string]string{"username": "alice", "password": "wrong"}
	rr := ts.request(http.MethodPost, "/api/v1/players/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var me response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
	assert.Equal(t, "alice", me.Username)
}

func TestGetMeRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/players/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateRoom(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	created := ts.createRoom(t, token, map[string]any{
		"name":        "friday",
		"min_players": 2,
		"max_players": 4,
	})

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "friday", created.Name)
	assert.False(t, created.Protected)
	assert.Len(t, created.Table.Players, 1)
	assert.Equal(t, int64(1), created.Version)
}

func TestCreateRoomDefaultsToFourSeats(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	created := ts.createRoom(t, token, map[string]any{"name": "friday"})
	assert.Equal(t, 4, created.Table.MinPlayers)
	assert.Equal(t, 4, created.Table.MaxPlayers)
}

func TestCreateRoomDuplicateNameReturnsExisting(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")

	first := ts.createRoom(t, alice, map[string]any{"name": "friday"})
	second := ts.createRoom(t, bob, map[string]any{"name": "friday"})

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Creator, second.Creator)
}

func TestCreateRoomInvalidBounds(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	body := map[string]any{"name": "friday", "min_players": 5, "max_players": 2}
	rr := ts.request(http.MethodPost, "/api/v1/rooms", body, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_ROOM_CONFIG")
}

func TestListAndGetRooms(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	created := ts.createRoom(t, token, map[string]any{"name": "friday"})

	rr := ts.request(http.MethodGet, "/api/v1/rooms", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)
	var list response.RoomList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list.Rooms, 1)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/"+created.ID, nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, created.ID, decodeRoom(t, rr).ID)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/by-name/friday", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, created.ID, decodeRoom(t, rr).ID)

	rr = ts.request(http.MethodGet, "/api/v1/rooms/nonexistent", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestJoinRoom(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")

	created := ts.createRoom(t, alice, map[string]any{"name": "friday", "min_players": 2})

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/join", nil, bob)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeRoom(t, rr).Table.Players, 2)

	// Joining again is a success, not a conflict
	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/join", nil, bob)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeRoom(t, rr).Table.Players, 2)
}

func TestJoinProtectedRoom(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")

	created := ts.createRoom(t, alice, map[string]any{"name": "friday", "password": "sesame"})
	assert.True(t, created.Protected)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/join",
		map[string]string{"password": "wrong"}, bob)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "WRONG_PASSWORD")

	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/join",
		map[string]string{"password": "sesame"}, bob)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestJoinFullRoom(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")
	carol := ts.register(t, "carol")

	created := ts.createRoom(t, alice, map[string]any{
		"name": "friday", "min_players": 2, "max_players": 2,
	})

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/join", nil, bob)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/join", nil, carol)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ROOM_FULL")
}

func TestLeaveRoom(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")

	created := ts.createRoom(t, alice, map[string]any{"name": "friday", "min_players": 2})
	ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/join", nil, bob)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/leave", nil, bob)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeRoom(t, rr).Table.Players, 1)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/leave", nil, bob)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_JOINED")
}

func TestStartFlow(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")

	created := ts.createRoom(t, alice, map[string]any{"name": "friday", "min_players": 2})
	ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/join", nil, bob)

	// Starting before everyone is ready fails
	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/start",
		map[string]string{"matcher": "robin"}, alice)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_ENOUGH_READY")

	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/ready", nil, alice)
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/ready", nil, bob)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Only the creator may start
	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/start",
		map[string]string{"matcher": "robin"}, bob)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_CREATOR")

	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/start",
		map[string]string{"matcher": "robin"}, alice)
	assert.Equal(t, http.StatusOK, rr.Code)
	started := decodeRoom(t, rr)
	assert.True(t, started.Table.Started)
	assert.Equal(t, started.Table.Players, started.Table.Seating)
	assert.Equal(t, 1, started.Table.Hand)

	// Starting twice is a conflict
	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/start",
		map[string]string{"matcher": "robin"}, alice)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ALREADY_STARTED")
}

func TestUnreadyBlocksStart(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")

	created := ts.createRoom(t, alice, map[string]any{"name": "friday", "min_players": 2})
	ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/join", nil, bob)
	ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/ready", nil, alice)
	ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/ready", nil, bob)

	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/unready", nil, bob)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/start", nil, alice)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestNextHand(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "alice")
	bob := ts.register(t, "bob")

	created := ts.createRoom(t, alice, map[string]any{"name": "friday", "min_players": 2})

	// Before the room starts, advancing is a conflict
	rr := ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/next-hand", nil, alice)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_STARTED")

	ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/join", nil, bob)
	ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/ready", nil, alice)
	ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/ready", nil, bob)
	ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/start",
		map[string]string{"matcher": "robin"}, alice)

	// The first hand is still open
	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+created.ID+"/next-hand", nil, alice)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "HAND_NOT_DONE")
}

func TestRoomRoutesRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/rooms", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms", map[string]string{"name": "x"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
