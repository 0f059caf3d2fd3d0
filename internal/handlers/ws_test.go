package handlers

import (
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/noahfaas/relationship-y/internal/models"
	"github.com/noahfaas/relationship-y/internal/services"
	"github.com/noahfaas/relationship-y/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.Curator{},
		&models.Room{},
		&models.Question{},
		&models.AnswerRecord{},
		&models.BankQuestion{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newWSServer(t *testing.T) (*httptest.Server, *ws.Hub, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	hub := ws.NewHub()

	r := gin.New()
	handler := NewWSHandler(hub, services.NewRoomService(db))
	r.GET("/ws", handler.HandleWebSocket)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, hub, db
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readWSEvent(t *testing.T, conn *websocket.Conn) ws.Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event ws.Event
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read event: %v", err)
	}
	return event
}

func TestWebSocketJoinAndBroadcast(t *testing.T) {
	srv, hub, db := newWSServer(t)
	if err := db.Create(&models.Room{Code: "ABCDEF"}).Error; err != nil {
		t.Fatalf("create room: %v", err)
	}

	conn := dialWS(t, srv)

	// Joining with a lowercased code must resolve to the canonical one.
	if err := conn.WriteJSON(ws.Event{Type: ws.EventJoin, RoomID: "abcdef"}); err != nil {
		t.Fatalf("write join: %v", err)
	}
	joined := readWSEvent(t, conn)
	if joined.Type != ws.EventJoined || joined.RoomID != "ABCDEF" {
		t.Fatalf("unexpected join ack %+v", joined)
	}

	// Once the ack arrives the subscription is live.
	hub.RevealReady("ABCDEF", 5)
	event := readWSEvent(t, conn)
	if event.Type != ws.EventReadyToReveal || event.QuestionID != 5 {
		t.Fatalf("unexpected event %+v", event)
	}
}

func TestWebSocketJoinUnknownRoom(t *testing.T) {
	srv, _, _ := newWSServer(t)
	conn := dialWS(t, srv)

	if err := conn.WriteJSON(ws.Event{Type: ws.EventJoin, RoomID: "ZZZZZZ"}); err != nil {
		t.Fatalf("write join: %v", err)
	}
	event := readWSEvent(t, conn)
	if event.Type != ws.EventError {
		t.Fatalf("expected an error event, got %+v", event)
	}
}

func TestWebSocketRejectsBadFirstFrame(t *testing.T) {
	srv, _, db := newWSServer(t)
	if err := db.Create(&models.Room{Code: "GHJKMN"}).Error; err != nil {
		t.Fatalf("create room: %v", err)
	}

	conn := dialWS(t, srv)
	if err := conn.WriteJSON(ws.Event{Type: "ping", RoomID: "GHJKMN"}); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	event := readWSEvent(t, conn)
	if event.Type != ws.EventError {
		t.Fatalf("expected an error event, got %+v", event)
	}
}
