package realtime

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/boersenspiel/leaderboard/internal/contracts"
	"github.com/boersenspiel/leaderboard/pkg/logger"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestHubBroadcastsRanking(t *testing.T) {
	hub := NewHub(logger.NewNop())
	defer hub.Close()

	conn := dialHub(t, hub)

	// Registration happens just after the handshake completes.
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast([]contracts.RankingEntry{
		{Player: "Anna", TotalPerformanceForGame: 15, Rank: 1},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var entries []struct {
		Player string `json:"player"`
		Rank   int    `json:"rank"`
	}
	if err := json.Unmarshal(payload, &entries); err != nil {
		t.Fatalf("invalid broadcast payload: %v", err)
	}
	if len(entries) != 1 || entries[0].Player != "Anna" || entries[0].Rank != 1 {
		t.Errorf("payload = %+v, want Anna rank 1", entries)
	}
}

func TestHubDropsDisconnectedClients(t *testing.T) {
	hub := NewHub(logger.NewNop())
	defer hub.Close()

	conn := dialHub(t, hub)
	conn.Close()

	// The read loop notices the closed connection; broadcasting afterwards
	// must not block or panic.
	time.Sleep(50 * time.Millisecond)
	hub.Broadcast(map[string]string{"status": "ok"})
}
