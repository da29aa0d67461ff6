package event

// GameStartPayload describes a new run
type GameStartPayload struct {
	Mode string `json:"mode"`
	Seed uint64 `json:"seed"`
}

// GameEndPayload carries the final run result
type GameEndPayload struct {
	Mode     string  `json:"mode"`
	Distance float64 `json:"distance"`
	Bonus    int     `json:"bonus"`
	Score    float64 `json:"score"`
	Seed     uint64  `json:"seed"`
	Quit     bool    `json:"quit"`
}

// SegmentAdvancedPayload describes the segment the player just entered
type SegmentAdvancedPayload struct {
	Count            int     `json:"count"`
	CurveRadius      float64 `json:"curve_radius"`
	CurveAngle       float64 `json:"curve_angle"`
	RelativeRotation float64 `json:"relative_rotation"`
}

// ItemHitPayload identifies the item the player touched
type ItemHitPayload struct {
	Template     string  `json:"template"`
	CurveOffset  float64 `json:"curve_offset"`
	RingRotation float64 `json:"ring_rotation"`
}
