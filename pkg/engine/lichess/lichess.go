// Package lichess is a thin client for the Lichess bot API: it streams incoming game/challenge
// events and per-game state over NDJSON, and submits moves back over HTTP.
//
// See: https://lichess.org/api#tag/Bot
package lichess

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/seekerror/logw"
)

const baseURL = "https://lichess.org"

// Client is a minimal Lichess bot API client, authenticated with a personal API token.
type Client struct {
	token string
	http  *http.Client
}

// New creates a Client using the given API token.
func New(token string) *Client {
	return &Client{token: token, http: &http.Client{Timeout: 0}}
}

// Event is one line of the account-wide event stream: a challenge or a game start/finish.
type Event struct {
	Type string `json:"type"`
	Game struct {
		ID string `json:"id"`
	} `json:"game"`
	Challenge struct {
		ID string `json:"id"`
	} `json:"challenge"`
}

// StreamEvents streams the bot account's incoming events until ctx is canceled or the
// connection is closed by the server. Events are delivered to out; the channel is closed when
// streaming ends.
func (c *Client) StreamEvents(ctx context.Context, out chan<- Event) error {
	defer close(out)

	resp, err := c.get(ctx, "/api/stream/event")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeNDJSON(ctx, resp, func(line []byte) error {
		if len(line) == 0 {
			return nil // keep-alive line
		}
		var e Event
		if err := json.Unmarshal(line, &e); err != nil {
			logw.Warningf(ctx, "Malformed event: %v: %v", string(line), err)
			return nil
		}
		select {
		case out <- e:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	})
}

// GameState is one line of a game's state stream: either the initial gameFull snapshot or a
// subsequent gameState delta.
type GameState struct {
	Type   string `json:"type"`
	Moves  string `json:"moves"`
	Status string `json:"status"`
}

// StreamGame streams state updates for the given game until it ends or ctx is canceled.
func (c *Client) StreamGame(ctx context.Context, gameID string, out chan<- GameState) error {
	defer close(out)

	resp, err := c.get(ctx, fmt.Sprintf("/api/bot/game/stream/%v", gameID))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeNDJSON(ctx, resp, func(line []byte) error {
		if len(line) == 0 {
			return nil
		}
		var s GameState
		if err := json.Unmarshal(line, &s); err != nil {
			logw.Warningf(ctx, "Malformed game state: %v: %v", string(line), err)
			return nil
		}
		select {
		case out <- s:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	})
}

// MakeMove submits a UCI move for the given game.
func (c *Client) MakeMove(ctx context.Context, gameID, move string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		baseURL+fmt.Sprintf("/api/bot/game/%v/move/%v", gameID, move), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("move %v rejected for game %v: %v", move, gameID, resp.Status)
	}
	return nil
}

// AcceptChallenge accepts an incoming challenge.
func (c *Client) AcceptChallenge(ctx context.Context, challengeID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		baseURL+fmt.Sprintf("/api/challenge/%v/accept", challengeID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("accept challenge %v rejected: %v", challengeID, resp.Status)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %v: %v", path, resp.Status)
	}
	return resp, nil
}

func decodeNDJSON(ctx context.Context, resp *http.Response, handle func(line []byte) error) error {
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if err := handle(scanner.Bytes()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// pollInterval is a reconnect delay that nothing in this package reads: StreamEvents and
// StreamGame return when their stream ends and do not reconnect.
const pollInterval = 2 * time.Second
