package tower

import (
	"math"

	"github.com/vovakirdan/tower-climb/internal/config"
)

// Scroll is the world-to-screen offset and the progress derived from it.
type Scroll struct {
	ScrollY      float64
	CurrentFloor int
	TotalFloors  int
}

// Progress returns the climbed fraction of the tower in [0, 1].
func (s Scroll) Progress() float64 {
	if s.TotalFloors <= 1 {
		return 1
	}
	return float64(s.CurrentFloor-1) / float64(s.TotalFloors-1)
}

// ScrollClock drives the automatic ascent.
type ScrollClock struct {
	BaseRate        float64
	BonusRate       float64
	FollowThreshold float64
	FloorSpacing    float64
}

// NewScrollClock creates a clock from the run configuration.
func NewScrollClock(cfg config.TowerConfig) ScrollClock {
	return ScrollClock{
		BaseRate:        cfg.Scroll.BaseRate,
		BonusRate:       cfg.Scroll.BonusRate,
		FollowThreshold: cfg.Scroll.FollowThreshold,
		FloorSpacing:    cfg.Tower.FloorSpacing,
	}
}

// Advance moves the scroll forward by the given number of ticks and
// returns the new offset. While the player is above the follow threshold
// the bonus is added to both the scroll and the player's screen y, so the
// camera follows the climb.
func (c ScrollClock) Advance(s *Scroll, ticks int, player *Player) float64 {
	for n := 0; n < ticks; n++ {
		s.ScrollY += c.BaseRate
		if player != nil && player.Y < c.FollowThreshold {
			s.ScrollY += c.BonusRate
			player.Y += c.BonusRate
		}
	}
	s.CurrentFloor = FloorAt(s.ScrollY, c.FloorSpacing, s.TotalFloors)
	return s.ScrollY
}

// FloorAt derives the current floor from a scroll offset:
// clamp(floor(scrollY/spacing)+1, 1, total).
func FloorAt(scrollY, spacing float64, total int) int {
	if total < 1 {
		return 1
	}
	if spacing <= 0 {
		return total
	}
	f := math.Floor(scrollY/spacing) + 1
	if f < 1 {
		return 1
	}
	if f > float64(total) {
		return total
	}
	return int(f)
}
