package experience

import "time"

// Experience is one (state, action, reward, next state, done) transition.
type Experience struct {
	ID        string
	EpisodeID string
	Tick      int
	State     []float32
	Action    int
	Reward    float64
	NextState []float32
	Done      bool
	CreatedAt time.Time
}
