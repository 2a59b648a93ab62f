package engine

import (
	"math"

	"github.com/mgiraldez/mansion-engine/pkg/player"
	"github.com/mgiraldez/mansion-engine/pkg/state"
)

// computeScore turns a finished session into points. Victory doubles the
// base; finishing fast earns up to 500 bonus points on a one-hour scale.
// The difficulty multiplier is applied last and the result never goes
// negative.
func computeScore(p *player.Player, victory bool, elapsed float64, difficulty state.Difficulty) int {
	base := 500.0
	if victory {
		base = 1000.0
	}

	capped := math.Min(elapsed, 3600)
	timeBonus := math.Round((1 - capped/3600) * 500)

	total := base +
		timeBonus +
		float64(p.Health)*2 +
		float64(p.Sanity)*2 +
		float64(p.ItemsFound)*50 +
		float64(p.SecretsFound)*100 -
		float64(p.ScaresReceived)*25

	total *= difficulty.ScoreMultiplier()
	if total < 0 {
		total = 0
	}
	return int(total)
}
