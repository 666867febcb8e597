package scheduler

import "github.com/noah-isme/curriculum-scheduler/internal/models"

// DayPairRotator hands out day pairs round-robin. Each run owns its own rotator.
type DayPairRotator struct {
	counter int
	issued  [3]int
}

// NewDayPairRotator starts the rotation at seed.
func NewDayPairRotator(seed int) *DayPairRotator {
	return &DayPairRotator{counter: seed}
}

// Next returns the current pair and advances the rotation.
func (r *DayPairRotator) Next() models.DayPair {
	idx := r.index()
	r.counter++
	r.issued[idx]++
	return models.DayPairs[idx]
}

// Peek returns the pair Next would return without advancing.
func (r *DayPairRotator) Peek() models.DayPair {
	return models.DayPairs[r.index()]
}

// Counter exposes the rotation counter.
func (r *DayPairRotator) Counter() int { return r.counter }

// Round returns how many complete passes over the three pairs the counter has made.
func (r *DayPairRotator) Round() int {
	n := len(models.DayPairs)
	if r.counter < 0 {
		return (r.counter - n + 1) / n
	}
	return r.counter / n
}

// Reset restarts the rotation at seed and clears the issue counts.
func (r *DayPairRotator) Reset(seed int) {
	r.counter = seed
	r.issued = [3]int{}
}

// Issued returns how often each pair has been handed out.
func (r *DayPairRotator) Issued() map[models.DayPair]int {
	out := make(map[models.DayPair]int, len(models.DayPairs))
	for i, pair := range models.DayPairs {
		out[pair] = r.issued[i]
	}
	return out
}

func (r *DayPairRotator) index() int {
	n := len(models.DayPairs)
	return ((r.counter % n) + n) % n
}
