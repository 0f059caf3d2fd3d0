package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/noahfaas/relationship-y/internal/models"
	"github.com/noahfaas/relationship-y/internal/services"
	"github.com/noahfaas/relationship-y/internal/ws"

	"github.com/gin-gonic/gin"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	if err := db.Create(&models.BankQuestion{Text: "seeded prompt"}).Error; err != nil {
		t.Fatalf("seed bank: %v", err)
	}

	hub := ws.NewHub()
	router := NewRouter(RouterDeps{
		Auth:        services.NewAuthService(db, "test-secret"),
		Rooms:       services.NewRoomService(db),
		Questions:   services.NewQuestionService(db),
		Answers:     services.NewAnswerService(db),
		Coordinator: services.NewRevealCoordinator(db, hub),
		Projections: services.NewProjectionService(db),
		Bank:        services.NewBankService(db),
		Hub:         hub,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, payload interface{}) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func TestRouterStatusMapping(t *testing.T) {
	srv := newAPIServer(t)

	if status, _ := doJSON(t, http.MethodGet, srv.URL+"/healthz", "", nil); status != http.StatusOK {
		t.Fatalf("healthz returned %d", status)
	}

	if status, _ := doJSON(t, http.MethodGet, srv.URL+"/api/v1/rooms/ZZZZZZ", "", nil); status != http.StatusNotFound {
		t.Fatalf("unknown room returned %d, want 404", status)
	}

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/rooms", "", nil)
	if status != http.StatusCreated {
		t.Fatalf("create room returned %d: %s", status, body)
	}
	var created services.RoomCreateResult
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Room.Code == "" || created.InitialQuestion.ID == 0 {
		t.Fatalf("create response incomplete: %s", body)
	}

	// Whitespace-only text survives binding but fails validation.
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/rooms/"+created.Room.Code+"/questions", "", AskQuestionRequest{Text: "   "})
	if status != http.StatusBadRequest {
		t.Fatalf("blank question returned %d, want 400", status)
	}

	envelope := SubmitAnswerRequest{
		ParticipantID: "device-1",
		Ciphertext:    bytes.Repeat([]byte{1}, 24),
		IV:            make([]byte, models.IVLen),
		Salt:          make([]byte, models.SaltLen),
	}
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/api/v1/questions/99999/answers", "", envelope)
	if status != http.StatusNotFound {
		t.Fatalf("answer to unknown question returned %d, want 404", status)
	}
}

func TestBankRequiresCuratorToken(t *testing.T) {
	srv := newAPIServer(t)

	if status, _ := doJSON(t, http.MethodGet, srv.URL+"/api/v1/bank", "", nil); status != http.StatusUnauthorized {
		t.Fatalf("bank without token returned %d, want 401", status)
	}
	if status, _ := doJSON(t, http.MethodGet, srv.URL+"/api/v1/bank", "garbage", nil); status != http.StatusUnauthorized {
		t.Fatalf("bank with a bad token returned %d, want 401", status)
	}

	status, body := doJSON(t, http.MethodPost, srv.URL+"/api/v1/auth/register", "", RegisterRequest{Username: "curator1", Password: "password123"})
	if status != http.StatusCreated {
		t.Fatalf("register returned %d: %s", status, body)
	}
	var auth AuthResponse
	if err := json.Unmarshal(body, &auth); err != nil || auth.Token == "" {
		t.Fatalf("register response unusable: %s", body)
	}

	status, body = doJSON(t, http.MethodGet, srv.URL+"/api/v1/bank", auth.Token, nil)
	if status != http.StatusOK {
		t.Fatalf("bank with token returned %d: %s", status, body)
	}
	var prompts []models.BankQuestion
	if err := json.Unmarshal(body, &prompts); err != nil {
		t.Fatalf("decode bank listing: %v", err)
	}
	if len(prompts) != 1 || prompts[0].Text != "seeded prompt" {
		t.Fatalf("unexpected bank listing: %s", body)
	}

	if status, _ := doJSON(t, http.MethodDelete, srv.URL+"/api/v1/bank/99999", auth.Token, nil); status != http.StatusNotFound {
		t.Fatalf("removing an unknown prompt returned %d, want 404", status)
	}
}
