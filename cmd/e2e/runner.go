package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Titles seeded before the game; already imported ones are fine.
var seedTMDBIDs = []int{550, 13, 680}

const playlistSize = 3

type event struct {
	Type    string         `json:"type"`
	Slug    string         `json:"slug"`
	Payload map[string]any `json:"payload,omitempty"`
}

type player struct {
	name  string
	token string
	yes   bool
}

// Runner drives one full game through the public API: seed the catalog,
// open a lobby, vote through the playlist with two players and read the
// results.
type Runner struct {
	client  *http.Client
	baseURL string
	code    string
}

func NewRunner(baseURL, code string) *Runner {
	return &Runner{
		client: &http.Client{
			Timeout: 30 * time.Second,
			// Votes answer with 303 pointing at frontend routes.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		code:    code,
	}
}

func (r *Runner) Run(ctx context.Context) error {
	if err := r.waitForService(ctx); err != nil {
		return err
	}

	adminToken, err := r.authenticate(ctx)
	if err != nil {
		return fmt.Errorf("authentication: %w", err)
	}
	fmt.Println(" Authenticated")

	if err := r.seedCatalog(ctx, adminToken); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	owner := &player{name: "Alice", yes: true}
	slug, err := r.createGame(ctx, owner)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	fmt.Printf(" Game %s created\n", slug)

	events, closeWS, err := r.listen(ctx, slug)
	if err != nil {
		return fmt.Errorf("websocket: %w", err)
	}
	defer closeWS()

	guest := &player{name: "Bob"}
	if err := r.join(ctx, slug, guest); err != nil {
		return fmt.Errorf("join: %w", err)
	}
	if err := expect(ctx, events, "PLAYER_JOINED"); err != nil {
		return err
	}

	if err := r.start(ctx, slug, owner); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := expect(ctx, events, "VOTING_STARTED"); err != nil {
		return err
	}

	for _, p := range []*player{owner, guest} {
		votes, err := r.voteThrough(ctx, slug, p)
		if err != nil {
			return fmt.Errorf("voting as %s: %w", p.name, err)
		}
		fmt.Printf(" %s voted on %d movies\n", p.name, votes)
	}
	if err := expect(ctx, events, "GAME_FINISHED"); err != nil {
		return err
	}

	ranked, err := r.results(ctx, slug, guest)
	if err != nil {
		return fmt.Errorf("results: %w", err)
	}
	fmt.Printf(" Results ranked %d movies\n", ranked)

	if err := r.free(ctx, slug, owner); err != nil {
		return fmt.Errorf("free: %w", err)
	}
	return nil
}

func (r *Runner) waitForService(ctx context.Context) error {
	fmt.Println(" Waiting for service to be ready...")

	const maxRetries = 5
	for i := 0; i < maxRetries; i++ {
		status, resp, err := r.do(ctx, http.MethodGet, "/games/000000", nil, nil)
		if err == nil {
			resp.Body.Close()
		}
		if err == nil && status == http.StatusNotFound {
			fmt.Println(" Service is ready!")
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return errors.New("service didn't start in time")
}

func (r *Runner) authenticate(ctx context.Context) (string, error) {
	status, resp, err := r.do(ctx, http.MethodPost, "/auth", nil, map[string]string{"code": r.code})
	if err != nil {
		return "", err
	}
	if status != http.StatusAccepted {
		return "", unexpected(status, resp)
	}
	token := resp.Header.Get("X-admin-token")
	if token == "" {
		return "", errors.New("admin token not found in response headers")
	}
	return token, nil
}

func (r *Runner) seedCatalog(ctx context.Context, adminToken string) error {
	headers := map[string]string{"X-admin-token": adminToken}
	for _, id := range seedTMDBIDs {
		status, resp, err := r.do(ctx, http.MethodPost, "/movies", headers, map[string]int{"tmdb_id": id})
		if err != nil {
			return err
		}
		if status != http.StatusCreated && status != http.StatusConflict {
			return unexpected(status, resp)
		}
	}

	status, resp, err := r.do(ctx, http.MethodGet, "/movies", headers, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return unexpected(status, resp)
	}
	var movies []json.RawMessage
	if err := decode(resp, &movies); err != nil {
		return err
	}
	if len(movies) < playlistSize {
		return fmt.Errorf("catalog holds %d movies, need %d", len(movies), playlistSize)
	}
	fmt.Printf(" Catalog holds %d movies\n", len(movies))
	return nil
}

func (r *Runner) createGame(ctx context.Context, owner *player) (string, error) {
	status, resp, err := r.do(ctx, http.MethodPost, "/games", nil, map[string]any{
		"name":          owner.name,
		"playlist_size": playlistSize,
	})
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", unexpected(status, resp)
	}

	var body struct {
		Slug string `json:"slug"`
	}
	if err := decode(resp, &body); err != nil {
		return "", err
	}
	owner.token = resp.Header.Get("X-player-token")
	if body.Slug == "" || owner.token == "" {
		return "", errors.New("slug or owner token missing")
	}
	return body.Slug, nil
}

func (r *Runner) listen(ctx context.Context, slug string) (<-chan event, func(), error) {
	wsURL, err := url.Parse(r.baseURL + "/games/" + slug + "/ws")
	if err != nil {
		return nil, nil, err
	}
	switch wsURL.Scheme {
	case "https":
		wsURL.Scheme = "wss"
	default:
		wsURL.Scheme = "ws"
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL.String(), nil)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan event, 16)
	go func() {
		defer close(events)
		for {
			var e event
			if err := conn.ReadJSON(&e); err != nil {
				return
			}
			events <- e
		}
	}()
	return events, func() { _ = conn.Close() }, nil
}

func expect(ctx context.Context, events <-chan event, eventType string) error {
	timeout := time.After(10 * time.Second)
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return fmt.Errorf("socket closed before %s", eventType)
			}
			if e.Type == eventType {
				fmt.Printf(" Got %s\n", eventType)
				return nil
			}
		case <-timeout:
			return fmt.Errorf("no %s event", eventType)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *Runner) join(ctx context.Context, slug string, p *player) error {
	status, resp, err := r.do(ctx, http.MethodPost, "/games/"+slug+"/players", nil, map[string]string{"name": p.name})
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return unexpected(status, resp)
	}
	p.token = resp.Header.Get("X-player-token")
	if p.token == "" {
		return errors.New("player token not found in response headers")
	}
	return nil
}

func (r *Runner) start(ctx context.Context, slug string, owner *player) error {
	status, resp, err := r.do(ctx, http.MethodPost, "/games/"+slug+"/start", owner.headers(), nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return unexpected(status, resp)
	}
	resp.Body.Close()
	return nil
}

func (r *Runner) voteThrough(ctx context.Context, slug string, p *player) (int, error) {
	status, resp, err := r.do(ctx, http.MethodGet, "/games/"+slug+"/entry", p.headers(), nil)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, unexpected(status, resp)
	}
	var entry struct {
		MovieID string `json:"movie_id"`
	}
	if err := decode(resp, &entry); err != nil {
		return 0, err
	}

	action := "no"
	if p.yes {
		action = "yes"
	}

	movieID := entry.MovieID
	for votes := 1; votes <= playlistSize; votes++ {
		status, resp, err := r.do(ctx, http.MethodGet, "/games/"+slug+"/movies/"+movieID, p.headers(), nil)
		if err != nil {
			return votes - 1, err
		}
		if status != http.StatusOK {
			return votes - 1, unexpected(status, resp)
		}
		resp.Body.Close()

		status, resp, err = r.do(ctx, http.MethodPost, "/games/"+slug+"/movies/"+movieID+"/votes",
			p.headers(), map[string]string{"actionType": action})
		if err != nil {
			return votes - 1, err
		}
		if status != http.StatusSeeOther {
			return votes - 1, unexpected(status, resp)
		}
		var next struct {
			NextMovieID    string `json:"next_movie_id"`
			PlayerFinished bool   `json:"player_finished"`
		}
		if err := decode(resp, &next); err != nil {
			return votes, err
		}
		if next.PlayerFinished {
			return votes, nil
		}
		movieID = next.NextMovieID
	}
	return playlistSize, errors.New("playlist did not end")
}

func (r *Runner) results(ctx context.Context, slug string, p *player) (int, error) {
	status, resp, err := r.do(ctx, http.MethodGet, "/games/"+slug+"/results", p.headers(), nil)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, unexpected(status, resp)
	}
	var body struct {
		Ranking []json.RawMessage `json:"ranking"`
	}
	if err := decode(resp, &body); err != nil {
		return 0, err
	}
	if len(body.Ranking) == 0 {
		return 0, errors.New("empty ranking")
	}
	return len(body.Ranking), nil
}

func (r *Runner) free(ctx context.Context, slug string, owner *player) error {
	status, resp, err := r.do(ctx, http.MethodDelete, "/games/"+slug, owner.headers(), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if status != http.StatusNoContent {
		return fmt.Errorf("free returned status %d", status)
	}
	return nil
}

func (p *player) headers() map[string]string {
	return map[string]string{"X-player-token": p.token}
}

func (r *Runner) do(ctx context.Context, method, path string, headers map[string]string, body any) (int, *http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp.StatusCode, resp, nil
}

func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func unexpected(status int, resp *http.Response) error {
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("unexpected status %d: %s", status, string(body))
}
