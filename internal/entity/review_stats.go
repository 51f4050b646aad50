package entity

// ReviewStats summarises a sentence collection for progress displays.
type ReviewStats struct {
	Total       int `json:"total"`
	Red         int `json:"red"`
	Yellow      int `json:"yellow"`
	Green       int `json:"green"`
	DueToday    int `json:"dueToday"`
	MasteryRate int `json:"masteryRate"`
}
