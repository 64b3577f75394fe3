package tower

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vovakirdan/tower-climb/internal/config"
	"github.com/vovakirdan/tower-climb/internal/core"
)

// emptyWorld returns a world with no obstacles.
func emptyWorld() *World {
	cfg := config.DefaultTowerConfig()
	cfg.Obstacles.Chance = config.ChanceCurve{}
	return NewWorld(cfg, NewSimpleRNG(1))
}

// staticObstacle returns an obstacle that does not move, in world space.
func staticObstacle(x, y, w, h float64, health int) Obstacle {
	return Obstacle{
		Kind:       KindHorizontal,
		X:          x,
		Y:          y,
		Width:      w,
		Height:     h,
		Health:     health,
		MaxHealth:  health,
		Horizontal: HorizontalMotion{Speed: 0, Dir: 1},
	}
}

// restingShot returns a projectile that stays where it is.
func restingShot(x, y float64) Projectile {
	return Projectile{X: x, Y: y, Size: 5, Active: true}
}

func testWeapon() Weapon {
	return NewWeapon(config.DefaultTowerConfig().Weapon)
}

func TestFireCooldown(t *testing.T) {
	w := emptyWorld()
	wp := testWeapon()
	origin := core.V(200, 300)
	up := core.V(0, -1)

	w.Tick = 1
	assert.True(t, wp.Fire(w, origin, up), "first shot")

	w.Tick = 2
	assert.False(t, wp.Fire(w, origin, up), "shot during cooldown")

	w.Tick = 18
	assert.False(t, wp.Fire(w, origin, up), "one tick before cooldown ends")

	w.Tick = 19
	assert.True(t, wp.Fire(w, origin, up), "cooldown elapsed")

	assert.Len(t, w.Projectiles, 2)
}

func TestFireDirection(t *testing.T) {
	tests := []struct {
		name   string
		aim    core.Vec
		vx, vy float64
	}{
		{"up", core.V(0, -10), 0, -8},
		{"right", core.V(3, 0), 8, 0},
		{"diagonal", core.V(1, 1), 8 / math.Sqrt2, 8 / math.Sqrt2},
		{"zero falls back to angle 0", core.V(0, 0), 8, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := emptyWorld()
			require.True(t, testWeapon().Fire(w, core.V(200, 300), tc.aim))

			p := w.Projectiles[0]
			assert.InDelta(t, tc.vx, p.VX, 1e-9)
			assert.InDelta(t, tc.vy, p.VY, 1e-9)
			assert.True(t, p.Active)
			assert.Equal(t, 200.0, p.X)
			assert.Equal(t, 300.0, p.Y)
		})
	}
}

func TestProjectileLinearMotion(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		angle := rapid.Float64Range(-math.Pi, math.Pi).Draw(t, "angle")
		ticks := rapid.IntRange(1, 20).Draw(t, "ticks")

		w := emptyWorld()
		origin := core.V(200, 300)
		testWeapon().Fire(w, origin, core.FromAngle(angle))
		vx, vy := w.Projectiles[0].VX, w.Projectiles[0].VY

		for range ticks {
			AdvanceAll(w)
		}

		if len(w.Projectiles) != 1 {
			t.Fatalf("projectile removed after %d ticks", ticks)
		}
		p := w.Projectiles[0]
		if math.Abs(p.X-(origin.X+float64(ticks)*vx)) > 1e-9 || math.Abs(p.Y-(origin.Y+float64(ticks)*vy)) > 1e-9 {
			t.Fatalf("after %d ticks at (%f, %f), expected (%f, %f)", ticks, p.X, p.Y,
				origin.X+float64(ticks)*vx, origin.Y+float64(ticks)*vy)
		}
	})
}

func TestProjectileLeavesCanvas(t *testing.T) {
	w := emptyWorld()
	w.Projectiles = append(w.Projectiles,
		Projectile{X: 200, Y: 3, VY: -8, Size: 5, Active: true},
		Projectile{X: 398, Y: 300, VX: 8, Size: 5, Active: true},
		Projectile{X: 200, Y: 300, VY: -8, Size: 5, Active: true},
	)

	AdvanceAll(w)

	require.Len(t, w.Projectiles, 1)
	assert.Equal(t, 292.0, w.Projectiles[0].Y)
}

func TestInactiveProjectilesAreDropped(t *testing.T) {
	w := emptyWorld()
	w.Projectiles = append(w.Projectiles, Projectile{X: 200, Y: 300, Active: false})

	AdvanceAll(w)

	assert.Empty(t, w.Projectiles)
}

func TestTwoHitsDestroyObstacleOnce(t *testing.T) {
	w := emptyWorld()
	w.Obstacles = []Obstacle{staticObstacle(180, 100, 40, 20, 2)}

	w.Projectiles = append(w.Projectiles, restingShot(200, 110))
	destroyed := AdvanceAll(w)

	assert.Empty(t, destroyed)
	require.Len(t, w.Obstacles, 1)
	assert.Equal(t, 1, w.Obstacles[0].Health)
	assert.Empty(t, w.Projectiles, "projectile is consumed by the hit")

	w.Projectiles = append(w.Projectiles, restingShot(200, 110))
	destroyed = AdvanceAll(w)

	require.Len(t, destroyed, 1)
	assert.Empty(t, w.Obstacles)
	assert.Equal(t, 1, w.Destroyed)
	assert.Equal(t, core.V(200, 110), destroyed[0].Center)

	destroyed = AdvanceAll(w)
	assert.Empty(t, destroyed)
	assert.Equal(t, 1, w.Destroyed)
}

func TestProjectileHitsFirstObstacleInOrder(t *testing.T) {
	w := emptyWorld()
	w.Obstacles = []Obstacle{
		staticObstacle(180, 100, 40, 20, 1),
		staticObstacle(190, 105, 40, 20, 1),
	}
	w.Obstacles[1].Floor = 2
	w.Projectiles = append(w.Projectiles, restingShot(200, 110))

	destroyed := AdvanceAll(w)

	require.Len(t, destroyed, 1)
	require.Len(t, w.Obstacles, 1)
	assert.Equal(t, 2, w.Obstacles[0].Floor, "the second obstacle survives")
	assert.Equal(t, 1, w.Obstacles[0].Health)
}

func TestEachProjectileHitsOnce(t *testing.T) {
	w := emptyWorld()
	w.Obstacles = []Obstacle{staticObstacle(180, 100, 40, 20, 5)}
	w.Projectiles = append(w.Projectiles,
		restingShot(190, 110),
		restingShot(200, 110),
		restingShot(210, 110),
	)

	destroyed := AdvanceAll(w)

	assert.Empty(t, destroyed)
	assert.Empty(t, w.Projectiles)
	assert.Equal(t, 2, w.Obstacles[0].Health)
}

func TestProjectileHitsUseScroll(t *testing.T) {
	w := emptyWorld()
	w.Obstacles = []Obstacle{staticObstacle(180, -100, 40, 20, 1)}
	w.Projectiles = append(w.Projectiles, restingShot(200, 60))

	destroyed := AdvanceAll(w)
	assert.Empty(t, destroyed)
	assert.Len(t, w.Projectiles, 1)

	w.Scroll.ScrollY = 150
	destroyed = AdvanceAll(w)
	require.Len(t, destroyed, 1)
	assert.Equal(t, core.V(200, 60), destroyed[0].Center, "center is reported in screen space")
}
