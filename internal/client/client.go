// Package client is the device-side SDK. Answers are encrypted and
// decrypted here; the passphrase and plaintext never leave the device.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/noahfaas/relationship-y/internal/crypto"
	"github.com/noahfaas/relationship-y/internal/models"
	"github.com/noahfaas/relationship-y/internal/ws"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Client struct {
	baseURL     string
	participant string
	httpClient  *http.Client
}

// New builds a client for one device. participantID is the opaque
// token identifying this device inside its room.
func New(baseURL, participantID string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		participant: participantID,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) ParticipantID() string {
	return c.participant
}

// LoadOrCreateDeviceToken returns the participant token stored at
// path, minting and persisting a fresh one on first use.
func LoadOrCreateDeviceToken(path string) (string, error) {
	if data, err := os.ReadFile(path); err == nil {
		if token := strings.TrimSpace(string(data)); token != "" {
			return token, nil
		}
	}
	token := uuid.New().String()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return "", err
	}
	return token, nil
}

type RoomCreated struct {
	Room            models.Room     `json:"room"`
	InitialQuestion models.Question `json:"initial_question"`
}

// Snapshot mirrors the server's poll endpoint.
type Snapshot struct {
	Question      *models.Question `json:"question"`
	DistinctCount int              `json:"distinct_count"`
	RevealReady   bool             `json:"reveal_ready"`
	AnsweredByMe  bool             `json:"answered_by_me"`
}

// RevealedAnswer is one collapsed record after local decryption. Err
// is set when this record would not open with the supplied passphrase.
type RevealedAnswer struct {
	ParticipantID string
	Text          string
	Mine          bool
	Err           error
}

func (c *Client) CreateRoom() (*RoomCreated, error) {
	var created RoomCreated
	if err := c.do(http.MethodPost, "/api/v1/rooms", nil, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) Snapshot(roomCode string) (*Snapshot, error) {
	var snapshot Snapshot
	path := fmt.Sprintf("/api/v1/rooms/%s/snapshot?participant=%s", roomCode, c.participant)
	if err := c.do(http.MethodGet, path, nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (c *Client) CurrentQuestion(roomCode string) (*models.Question, error) {
	var question models.Question
	path := fmt.Sprintf("/api/v1/rooms/%s/questions/current", roomCode)
	if err := c.do(http.MethodGet, path, nil, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (c *Client) Ask(roomCode, text string) (*models.Question, error) {
	var question models.Question
	path := fmt.Sprintf("/api/v1/rooms/%s/questions", roomCode)
	payload := map[string]string{"text": text}
	if err := c.do(http.MethodPost, path, payload, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (c *Client) AskRandom(roomCode string) (*models.Question, error) {
	var question models.Question
	path := fmt.Sprintf("/api/v1/rooms/%s/questions/random", roomCode)
	if err := c.do(http.MethodPost, path, nil, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

// SubmitAnswer seals the answer locally and ships only the envelope.
// The returned flag reports whether this submission completed the pair
// and triggered the reveal.
func (c *Client) SubmitAnswer(questionID uint, answer, passphrase string) (bool, error) {
	env, err := crypto.Encrypt([]byte(answer), passphrase)
	if err != nil {
		return false, err
	}
	payload := map[string]interface{}{
		"participant_id": c.participant,
		"ciphertext":     env.Ciphertext,
		"iv":             env.IV,
		"salt":           env.Salt,
	}
	var ack struct {
		RevealTriggered bool `json:"reveal_triggered"`
	}
	path := fmt.Sprintf("/api/v1/questions/%d/answers", questionID)
	if err := c.do(http.MethodPost, path, payload, &ack); err != nil {
		return false, err
	}
	return ack.RevealTriggered, nil
}

type answersResponse struct {
	Records       []models.AnswerRecord `json:"records"`
	DistinctCount int                   `json:"distinct_count"`
}

func (c *Client) answers(questionID uint) (*answersResponse, error) {
	var resp answersResponse
	path := fmt.Sprintf("/api/v1/questions/%d/answers", questionID)
	if err := c.do(http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchAnswers pulls the collapsed records and opens each one locally.
// A record sealed under a different passphrase comes back with its Err
// set instead of failing the whole fetch.
func (c *Client) FetchAnswers(questionID uint, passphrase string) ([]RevealedAnswer, error) {
	resp, err := c.answers(questionID)
	if err != nil {
		return nil, err
	}
	revealed := make([]RevealedAnswer, 0, len(resp.Records))
	for _, record := range resp.Records {
		answer := RevealedAnswer{
			ParticipantID: record.ParticipantID,
			Mine:          record.ParticipantID == c.participant,
		}
		plaintext, err := crypto.Decrypt(record.Ciphertext, record.IV, record.Salt, passphrase)
		if err != nil {
			answer.Err = err
		} else {
			answer.Text = string(plaintext)
		}
		revealed = append(revealed, answer)
	}
	return revealed, nil
}

func (c *Client) Inbox(roomCode string) ([]models.Question, error) {
	var questions []models.Question
	path := fmt.Sprintf("/api/v1/rooms/%s/inbox?participant=%s", roomCode, c.participant)
	if err := c.do(http.MethodGet, path, nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *Client) History(roomCode string) ([]models.Question, error) {
	var questions []models.Question
	path := fmt.Sprintf("/api/v1/rooms/%s/history", roomCode)
	if err := c.do(http.MethodGet, path, nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// Subscribe opens the push channel and joins the room. Events arrive
// on the returned channel until the context is cancelled or the
// connection drops; either way the channel closes and the caller is
// expected to fall back to polling.
func (c *Client) Subscribe(ctx context.Context, roomCode string) (<-chan ws.Event, error) {
	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, err
	}
	if err := conn.WriteJSON(ws.Event{Type: ws.EventJoin, RoomID: roomCode}); err != nil {
		conn.Close()
		return nil, err
	}
	var joined ws.Event
	if err := conn.ReadJSON(&joined); err != nil {
		conn.Close()
		return nil, err
	}
	if joined.Type != ws.EventJoined {
		conn.Close()
		return nil, fmt.Errorf("join rejected for room %s", roomCode)
	}

	events := make(chan ws.Event, 8)
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go func() {
		defer close(events)
		for {
			var event ws.Event
			if err := conn.ReadJSON(&event); err != nil {
				return
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}

func (c *Client) do(method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server: %s", apiErr.Error)
		}
		return fmt.Errorf("server: status %d", resp.StatusCode)
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}
