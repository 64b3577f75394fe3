package tower

// Outcome is the result of a collision check.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeLoss
	OutcomeWin
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoss:
		return "loss"
	case OutcomeWin:
		return "win"
	default:
		return "continue"
	}
}

// Cause tells what ended a run.
type Cause int

const (
	CauseNone Cause = iota
	CauseObstacle
	CauseWall
	CauseSummit
)

func (c Cause) String() string {
	switch c {
	case CauseObstacle:
		return "obstacle"
	case CauseWall:
		return "wall"
	case CauseSummit:
		return "summit"
	default:
		return "none"
	}
}

// Resolution is an outcome and what caused it.
type Resolution struct {
	Outcome  Outcome
	Cause    Cause
	Obstacle int // Index of the obstacle hit, or -1
}

// Resolve checks the player against the obstacles, the walls and the
// summit. preClampX is the player's x before it was clamped this tick.
// An obstacle hit wins over a wall hit, and either wins over reaching the top.
func Resolve(player Player, preClampX float64, obstacles []Obstacle, scroll Scroll, bounds Bounds) Resolution {
	if i := HitObstacle(player, obstacles, scroll.ScrollY); i >= 0 {
		return Resolution{Outcome: OutcomeLoss, Cause: CauseObstacle, Obstacle: i}
	}
	if !bounds.Contains(preClampX, player.Width) {
		return Resolution{Outcome: OutcomeLoss, Cause: CauseWall, Obstacle: -1}
	}
	if scroll.CurrentFloor >= scroll.TotalFloors {
		return Resolution{Outcome: OutcomeWin, Cause: CauseSummit, Obstacle: -1}
	}
	return Resolution{Outcome: OutcomeContinue, Obstacle: -1}
}

// HitObstacle returns the index of the first obstacle overlapping the
// player at the given scroll, or -1.
func HitObstacle(player Player, obstacles []Obstacle, scrollY float64) int {
	pr := player.Rect()
	for i := range obstacles {
		if pr.Intersects(obstacles[i].ScreenRect(scrollY)) {
			return i
		}
	}
	return -1
}
