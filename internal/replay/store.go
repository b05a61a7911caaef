package replay

import (
	"github.com/vovakirdan/bruin-walk/internal/games/bruinwalk"
	"github.com/vovakirdan/bruin-walk/internal/storage"
)

// Save stores a finished run. A positive score also goes on the high score
// table. It returns the run ID the run was stored under.
func Save(store *storage.Store, rec Recording, player string, w *bruinwalk.World) (string, error) {
	data, err := Encode(rec)
	if err != nil {
		return "", err
	}

	return store.SaveRunAndScore(storage.Run{
		RunID:        rec.RunID,
		GameID:       rec.GameID,
		Player:       player,
		Score:        rec.Score,
		LanesReached: w.LanesReached(),
		Ticks:        rec.Ticks,
		DeathTick:    w.DeathTick(),
		Seed:         rec.Seed,
		TickRate:     rec.TickRate,
		Replay:       data,
	})
}
