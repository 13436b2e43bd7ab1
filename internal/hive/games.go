package hive

import (
	"github.com/cnc-league/cnc/internal/logger"
)

// GameResult is the outcome of a finished game from white's perspective.
type GameResult string

const (
	ResultWhite GameResult = "white"
	ResultBlack GameResult = "black"
	ResultDraw  GameResult = "draw"
)

// RawGame is the distilled form of a finished API game record.
type RawGame struct {
	ID     string
	White  string
	Black  string
	Result GameResult
	Rated  bool
}

// PlayerResult maps the game result onto one player's perspective:
// "win", "loss", or "draw".
func (g RawGame) PlayerResult(nick string) string {
	switch {
	case g.Result == ResultDraw:
		return "draw"
	case g.Result == ResultWhite && g.White == nick:
		return "win"
	case g.Result == ResultBlack && g.Black == nick:
		return "win"
	default:
		return "loss"
	}
}

// ExtractGames converts API responses to raw games, keeping only finished
// games. Responses with an unfinished or unrecognized status are logged and
// skipped; duplicates by game ID are dropped.
func ExtractGames(responses []GameResponse) []RawGame {
	games := make([]RawGame, 0, len(responses))
	seen := make(map[string]struct{}, len(responses))

	for _, resp := range responses {
		if _, ok := seen[resp.GameID]; ok {
			continue
		}
		if !resp.GameStatus.Finished {
			logger.Op.WithFields(map[string]interface{}{
				"game_id": resp.GameID,
				"status":  resp.GameStatus.Progress,
			}).Error("Unknown game status, skipping game")
			continue
		}
		seen[resp.GameID] = struct{}{}

		result := ResultDraw
		switch resp.GameStatus.Winner {
		case "White":
			result = ResultWhite
		case "Black":
			result = ResultBlack
		}

		games = append(games, RawGame{
			ID:     resp.GameID,
			White:  resp.WhitePlayer.Username,
			Black:  resp.BlackPlayer.Username,
			Result: result,
			Rated:  resp.Rated,
		})
	}
	return games
}
