package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/freeeve/hexhaven/api/internal/auth"
	"github.com/freeeve/hexhaven/api/internal/service"
	"github.com/freeeve/hexhaven/api/pkg/catan"
)

type wsFixture struct {
	*gameFixture
	hub *Hub
	srv *httptest.Server
}

func newWSFixture(t *testing.T) *wsFixture {
	t.Helper()
	hub := NewHub()
	svc := service.NewGameService(nil, nil, hub, service.Options{})
	jwtMgr := auth.NewJWTManager("test-secret")
	f := &gameFixture{svc: svc, jwtMgr: jwtMgr, h: NewGameHandler(svc, jwtMgr, "http://localhost")}

	ws := NewWSHandler(hub, svc, f.jwtMgr, WSOptions{MaxConnections: 4})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", ws.ServeWS)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &wsFixture{gameFixture: f, hub: hub, srv: srv}
}

func (f *wsFixture) dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/ws?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		t.Fatalf("dial: %v (status %d)", err, status)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads events until one of type eventType arrives.
func readUntil(t *testing.T, conn *websocket.Conn, eventType string) json.RawMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %s: %v", eventType, err)
		}
		var ev struct {
			Type string          `json:"type"`
			Game string          `json:"game"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		if ev.Type == eventType {
			return ev.Data
		}
	}
}

func TestServeWSRejectsBadTokens(t *testing.T) {
	f := newWSFixture(t)
	access, _ := f.jwtMgr.GenerateAccessToken("user-1")

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "?token=nope", http.StatusUnauthorized},
		{"account token", "?token=" + access, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(f.srv.URL + "/ws" + tt.query)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("expected %d, got %d", tt.want, resp.StatusCode)
			}
		})
	}
}

func TestServeWSUnknownSeat(t *testing.T) {
	f := newWSFixture(t)
	token, _ := f.jwtMgr.GenerateSeatToken("", "NOPE22", "player-1")

	resp, err := http.Get(f.srv.URL + "/ws?token=" + token)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestServeWSPlay(t *testing.T) {
	f := newWSFixture(t)
	view, seats := f.started(t)
	current := view.Players[view.CurrentPlayer].ID
	seat := seats[current]

	conn := f.dial(t, seat.Token)
	var welcome service.Seat
	if err := json.Unmarshal(readUntil(t, conn, EventConnected), &welcome); err != nil {
		t.Fatalf("decode welcome: %v", err)
	}
	if welcome.PlayerID != current || welcome.State == nil || welcome.State.Phase != catan.PhaseSetup {
		t.Errorf("unexpected welcome %+v", welcome)
	}

	if err := conn.WriteJSON(map[string]string{"action": "ping", "id": "p"}); err != nil {
		t.Fatal(err)
	}
	readUntil(t, conn, EventPong)

	act := map[string]any{
		"action": "act",
		"id":     "1",
		"data":   catan.Action{Type: catan.ActPlaceSettlement, Vertex: view.Board.SortedVertexKeys()[0]},
	}
	if err := conn.WriteJSON(act); err != nil {
		t.Fatal(err)
	}
	var resp ActionResponse
	if err := json.Unmarshal(readUntil(t, conn, EventActionResult), &resp); err != nil {
		t.Fatalf("decode action result: %v", err)
	}
	if !resp.Success || resp.Type != catan.ActPlaceSettlement {
		t.Errorf("expected successful placement, got %+v", resp)
	}

	if err := conn.WriteJSON(map[string]string{"action": "dance"}); err != nil {
		t.Fatal(err)
	}
	readUntil(t, conn, EventError)
}

func TestServeWSDisconnect(t *testing.T) {
	f := newWSFixture(t)
	host := f.create(t, "Ann")

	conn := f.dial(t, host.Token)
	readUntil(t, conn, EventConnected)
	if !f.hub.PlayerConnected(host.Code, host.PlayerID) {
		t.Fatal("expected player to be connected")
	}

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for f.hub.PlayerConnected(host.Code, host.PlayerID) {
		if time.Now().After(deadline) {
			t.Fatal("connection was not unregistered")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
