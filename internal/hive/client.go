package hive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/cnc-league/cnc/internal/logger"
)

const (
	// The batch endpoint carries a generated server-function ID that changes
	// across hivegame.com deployments.
	defaultEndpoint = "https://hivegame.com/api/get_batch_from_options10902783915456376667"

	defaultTimeout   = 30 * time.Second
	defaultBatchSize = 200
)

// Fetcher fetches finished games from hivegame.com.
type Fetcher interface {
	// GamesForPlayer returns finished games where the player held either color.
	GamesForPlayer(ctx context.Context, nick string) ([]GameResponse, error)
	// GamesBetween returns finished games between the two players.
	GamesBetween(ctx context.Context, nick1, nick2 string) ([]GameResponse, error)
}

// Client is the CBOR HTTP client for the hivegame.com games API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	batchSize  int
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the batch endpoint URL.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// WithHTTPClient overrides the HTTP client (tests inject a stub transport).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBatchSize overrides the maximum games per query.
func WithBatchSize(n int) Option {
	return func(c *Client) { c.batchSize = n }
}

// NewClient builds a Client with a bounded request timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		endpoint:   defaultEndpoint,
		batchSize:  defaultBatchSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GamesForPlayer(ctx context.Context, nick string) ([]GameResponse, error) {
	logger.Op.WithField("player", nick).Debug("Fetching games for player")
	return c.query(ctx, QueryOptions{
		Player1:      &PlayerFilter{Username: nick},
		Speeds:       AllSpeeds,
		BatchSize:    c.batchSize,
		GameProgress: "Finished",
	})
}

func (c *Client) GamesBetween(ctx context.Context, nick1, nick2 string) ([]GameResponse, error) {
	logger.Op.WithFields(map[string]interface{}{
		"player1": nick1,
		"player2": nick2,
	}).Debug("Fetching games between players")
	return c.query(ctx, QueryOptions{
		Player1:      &PlayerFilter{Username: nick1},
		Player2:      &PlayerFilter{Username: nick2},
		Speeds:       AllSpeeds,
		BatchSize:    c.batchSize,
		GameProgress: "Finished",
	})
}

// query POSTs a CBOR-encoded games query and decodes the CBOR response list.
func (c *Client) query(ctx context.Context, options QueryOptions) ([]GameResponse, error) {
	payload, err := cbor.Marshal(map[string]interface{}{"options": options})
	if err != nil {
		return nil, fmt.Errorf("encode games query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build games request: %w", err)
	}
	req.Header.Set("Accept", "application/cbor")
	req.Header.Set("Content-Type", "application/cbor")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("games request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read games response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("games request failed with status %d: %s", resp.StatusCode, body)
	}

	var games []GameResponse
	if err := cbor.Unmarshal(body, &games); err != nil {
		return nil, fmt.Errorf("decode games response: %w", err)
	}

	logger.Op.WithField("count", len(games)).Debug("Received games from API")
	return games, nil
}
