package hive

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGamesForPlayer(t *testing.T) {
	games := []GameResponse{
		{
			GameID:      "g1",
			WhitePlayer: UserResponse{Username: "emily"},
			BlackPlayer: UserResponse{Username: "rival"},
			GameStatus:  GameStatus{Finished: true, Winner: "White"},
			Rated:       true,
		},
	}

	var gotOptions QueryOptions
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/cbor", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/cbor", r.Header.Get("Accept"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var envelope struct {
			Options QueryOptions `cbor:"options"`
		}
		require.NoError(t, cbor.Unmarshal(body, &envelope))
		gotOptions = envelope.Options

		payload, err := cbor.Marshal(games)
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/cbor")
		w.Write(payload)
	}))
	defer server.Close()

	client := NewClient(WithEndpoint(server.URL), WithBatchSize(50))
	result, err := client.GamesForPlayer(context.Background(), "emily")

	require.NoError(t, err)
	assert.Equal(t, games, result)
	require.NotNil(t, gotOptions.Player1)
	assert.Equal(t, "emily", gotOptions.Player1.Username)
	assert.Nil(t, gotOptions.Player2)
	assert.Equal(t, 50, gotOptions.BatchSize)
	assert.Equal(t, "Finished", gotOptions.GameProgress)
}

func TestClientGamesBetween(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var envelope struct {
			Options QueryOptions `cbor:"options"`
		}
		require.NoError(t, cbor.Unmarshal(body, &envelope))
		require.NotNil(t, envelope.Options.Player1)
		require.NotNil(t, envelope.Options.Player2)
		assert.Equal(t, "emily", envelope.Options.Player1.Username)
		assert.Equal(t, "rival", envelope.Options.Player2.Username)

		payload, _ := cbor.Marshal([]GameResponse{})
		w.Write(payload)
	}))
	defer server.Close()

	client := NewClient(WithEndpoint(server.URL))
	result, err := client.GamesBetween(context.Background(), "emily", "rival")

	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(WithEndpoint(server.URL))
	_, err := client.GamesForPlayer(context.Background(), "emily")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClientBadResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not cbor at all"))
	}))
	defer server.Close()

	client := NewClient(WithEndpoint(server.URL))
	_, err := client.GamesForPlayer(context.Background(), "emily")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode games response")
}
