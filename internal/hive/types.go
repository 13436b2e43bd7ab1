// Package hive talks to the hivegame.com games API and maintains the local
// JSON cache of fetched games.
package hive

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// GameSpeed is a hivegame.com time-control class.
type GameSpeed string

const (
	SpeedBullet         GameSpeed = "Bullet"
	SpeedBlitz          GameSpeed = "Blitz"
	SpeedRapid          GameSpeed = "Rapid"
	SpeedClassic        GameSpeed = "Classic"
	SpeedCorrespondence GameSpeed = "Correspondence"
	SpeedUntimed        GameSpeed = "Untimed"
	SpeedPuzzle         GameSpeed = "Puzzle"
)

// AllSpeeds queries every speed class.
var AllSpeeds = []GameSpeed{
	SpeedBullet, SpeedBlitz, SpeedRapid, SpeedClassic,
	SpeedCorrespondence, SpeedUntimed, SpeedPuzzle,
}

// BatchInfo identifies a pagination batch in the games query.
type BatchInfo struct {
	ID        uuid.UUID `cbor:"id" json:"id"`
	Timestamp time.Time `cbor:"timestamp" json:"timestamp"`
}

// PlayerFilter restricts a games query to one player, optionally to a color
// or result.
type PlayerFilter struct {
	Username string  `cbor:"username" json:"username"`
	Color    *string `cbor:"color" json:"color"`
	Result   *string `cbor:"result" json:"result"`
}

// QueryOptions mirrors the upstream games_query_options request shape.
type QueryOptions struct {
	Player1      *PlayerFilter `cbor:"player1" json:"player1"`
	Player2      *PlayerFilter `cbor:"player2" json:"player2"`
	Speeds       []GameSpeed   `cbor:"speeds" json:"speeds"`
	CurrentBatch *BatchInfo    `cbor:"current_batch" json:"current_batch"`
	BatchSize    int           `cbor:"batch_size" json:"batch_size"`
	Expansions   *bool         `cbor:"expansions" json:"expansions"`
	Rated        *bool         `cbor:"rated" json:"rated"`
	ExcludeBots  bool          `cbor:"exclude_bots" json:"exclude_bots"`
	GameProgress string        `cbor:"game_progress" json:"game_progress"`
}

// UserResponse is a player reference in an API game record.
type UserResponse struct {
	Username string `cbor:"username" json:"username"`
	Bot      bool   `cbor:"bot" json:"bot"`
	Admin    bool   `cbor:"admin" json:"admin"`
}

// GameStatus is the upstream status union: either a bare progress string
// ("NotStarted", "InProgress", "Adjudicated") or a Finished variant carrying
// "Draw" or a winner color. It round-trips through both CBOR (API) and JSON
// (cache file) in the upstream wire shape.
type GameStatus struct {
	// Finished is true for the Finished variant.
	Finished bool
	// Draw is true when a finished game had no winner.
	Draw bool
	// Winner is "White" or "Black" for decisive finished games.
	Winner string
	// Progress holds the bare status string for unfinished games.
	Progress string
}

func (s *GameStatus) decode(v interface{}) error {
	switch val := v.(type) {
	case string:
		*s = GameStatus{Progress: val}
		return nil
	case map[string]interface{}:
		return s.decodeFinished(val["Finished"])
	case map[interface{}]interface{}:
		return s.decodeFinished(val["Finished"])
	default:
		return fmt.Errorf("unrecognized game status %v", v)
	}
}

func (s *GameStatus) decodeFinished(v interface{}) error {
	switch val := v.(type) {
	case string:
		if val != "Draw" {
			return fmt.Errorf("unrecognized finished status %q", val)
		}
		*s = GameStatus{Finished: true, Draw: true}
		return nil
	case map[string]interface{}:
		winner, _ := val["Winner"].(string)
		*s = GameStatus{Finished: true, Winner: winner}
		return nil
	case map[interface{}]interface{}:
		winner, _ := val["Winner"].(string)
		*s = GameStatus{Finished: true, Winner: winner}
		return nil
	default:
		return fmt.Errorf("unrecognized finished status %v", v)
	}
}

func (s GameStatus) wire() interface{} {
	if !s.Finished {
		return s.Progress
	}
	if s.Draw {
		return map[string]interface{}{"Finished": "Draw"}
	}
	return map[string]interface{}{"Finished": map[string]string{"Winner": s.Winner}}
}

func (s *GameStatus) UnmarshalCBOR(data []byte) error {
	var v interface{}
	if err := cbor.Unmarshal(data, &v); err != nil {
		return err
	}
	return s.decode(v)
}

func (s GameStatus) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(s.wire())
}

func (s *GameStatus) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return s.decode(v)
}

func (s GameStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.wire())
}

// GameResponse is one game record from the hivegame.com API.
type GameResponse struct {
	GameID          string       `cbor:"game_id" json:"game_id"`
	Finished        bool         `cbor:"finished" json:"finished"`
	WhitePlayer     UserResponse `cbor:"white_player" json:"white_player"`
	BlackPlayer     UserResponse `cbor:"black_player" json:"black_player"`
	GameStatus      GameStatus   `cbor:"game_status" json:"game_status"`
	Rated           bool         `cbor:"rated" json:"rated"`
	Conclusion      string       `cbor:"conclusion" json:"conclusion"`
	CreatedAt       time.Time    `cbor:"created_at" json:"created_at"`
	UpdatedAt       time.Time    `cbor:"updated_at" json:"updated_at"`
	Speed           string       `cbor:"speed" json:"speed"`
	GameType        string       `cbor:"game_type" json:"game_type"`
	LastInteraction *time.Time   `cbor:"last_interaction" json:"last_interaction"`
}
