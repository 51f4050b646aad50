package entity

// ReviewInterval maps every mastery tier to the number of days until the next review.
// Ordering between tiers is left to the caller, e.g. red=1, yellow=3, green=7.
type ReviewInterval struct {
	Red    int `json:"red" mapstructure:"red"`
	Yellow int `json:"yellow" mapstructure:"yellow"`
	Green  int `json:"green" mapstructure:"green"`
}

// DefaultReviewInterval is used when no configuration overrides it.
func DefaultReviewInterval() ReviewInterval {
	return ReviewInterval{Red: 1, Yellow: 3, Green: 7}
}

// Days returns the interval for status. ok is false for unknown tiers.
func (ri ReviewInterval) Days(status Status) (days int, ok bool) {
	switch status {
	case StatusRed:
		return ri.Red, true
	case StatusYellow:
		return ri.Yellow, true
	case StatusGreen:
		return ri.Green, true
	default:
		return 0, false
	}
}

// Validate checks that every interval is non-negative.
func (ri ReviewInterval) Validate() error {
	if ri.Red < 0 || ri.Yellow < 0 || ri.Green < 0 {
		return ErrInvalidReviewInterval
	}
	return nil
}

// Settings holds the learner preferences the scheduler depends on.
type Settings struct {
	ReviewInterval ReviewInterval `json:"reviewInterval"`
}
