package ws_game

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	EventPlayerJoined   = "PLAYER_JOINED"
	EventVotingStarted  = "VOTING_STARTED"
	EventPlayerFinished = "PLAYER_FINISHED"
	EventGameFinished   = "GAME_FINISHED"
)

const (
	sendBuffer = 16
	writeWait  = 10 * time.Second
)

type Event struct {
	Type    string         `json:"type"`
	Slug    string         `json:"slug"`
	Payload map[string]any `json:"payload,omitempty"`
}

func PlayerJoined(slug string, playersCount int) Event {
	return Event{
		Type:    EventPlayerJoined,
		Slug:    slug,
		Payload: map[string]any{"players_count": playersCount},
	}
}

func VotingStarted(slug string, firstMovieID string, deadline time.Time, redirectTo string) Event {
	return Event{
		Type: EventVotingStarted,
		Slug: slug,
		Payload: map[string]any{
			"first_movie_id": firstMovieID,
			"deadline":       deadline.UTC().Format(time.RFC3339),
			"redirect_to":    redirectTo,
		},
	}
}

func PlayerFinished(slug string, playersDone int, playersCount int) Event {
	return Event{
		Type: EventPlayerFinished,
		Slug: slug,
		Payload: map[string]any{
			"players_done":  playersDone,
			"players_count": playersCount,
		},
	}
}

func GameFinished(slug string, resultsURL string) Event {
	return Event{
		Type:    EventGameFinished,
		Slug:    slug,
		Payload: map[string]any{"results_url": resultsURL},
	}
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	slug string

	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, slug string) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		slug: slug,
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.send) })
}

// Hub fans game events out to the sockets of each game.
type Hub struct {
	mu sync.RWMutex

	games map[string]map[*Client]struct{}

	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		games:  make(map[string]map[*Client]struct{}),
		logger: logger,
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.games[client.slug]; !ok {
		h.games[client.slug] = make(map[*Client]struct{})
	}
	h.games[client.slug][client] = struct{}{}

	h.logger.Info("client registered", slog.String("slug", client.slug))
}

func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.games[client.slug]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	client.close()
	if len(clients) == 0 {
		delete(h.games, client.slug)
	}
	h.logger.Info("client unregistered", slog.String("slug", client.slug))
}

func (h *Hub) ClientsCount(slug string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[slug])
}

// Broadcast never blocks: clients whose buffer is full are dropped.
func (h *Hub) Broadcast(slug string, event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("event encoding failed", slog.String("error", err.Error()))
		return
	}

	var slow []*Client
	h.mu.RLock()
	for client := range h.games[slug] {
		select {
		case client.send <- message:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	if len(slow) == 0 {
		return
	}

	h.mu.Lock()
	for _, client := range slow {
		h.removeLocked(client)
	}
	h.mu.Unlock()
	h.logger.Warn("slow clients dropped",
		slog.String("slug", slug),
		slog.Int("count", len(slow)),
	)
}

// StartClientReading drains the socket until the peer goes away.
func (h *Hub) StartClientReading(client *Client) {
	defer func() {
		h.RemoveClient(client)
		client.conn.Close()
	}()

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) StartClientWriting(client *Client) {
	defer client.conn.Close()

	for message := range client.send {
		_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
