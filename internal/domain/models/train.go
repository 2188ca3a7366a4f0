package models

// Train holds per-train capacity. available_seats never leaves
// [0, total_seats] at a committed state.
type Train struct {
	TrainNo        int64  `json:"train_no"`
	StartCity      string `json:"start_city"`
	EndCity        string `json:"end_city"`
	StartTime      string `json:"start_time"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
	Fare           int64  `json:"fare"`
}
