package event

// EventType represents the type of game event
type EventType int

const (
	// EventGameStart begins a run; item generation is enabled from here
	// Trigger: Game.Start | Payload: *GameStartPayload
	EventGameStart EventType = iota + 1

	// EventGameEnd ends a run; item generation stops
	// Trigger: obstacle hit or quit | Payload: *GameEndPayload
	EventGameEnd

	// EventSegmentAdvanced signals the player entered the next segment
	// Trigger: Game.Update crossing a segment boundary | Payload: *SegmentAdvancedPayload
	EventSegmentAdvanced

	// EventBonusCollected signals a bonus item was picked up
	// Trigger: collision check | Payload: *ItemHitPayload
	EventBonusCollected

	// EventObstacleHit signals a fatal collision
	// Trigger: collision check | Payload: *ItemHitPayload
	EventObstacleHit
)

var typeNames = map[EventType]string{
	EventGameStart:       "GameStart",
	EventGameEnd:         "GameEnd",
	EventSegmentAdvanced: "SegmentAdvanced",
	EventBonusCollected:  "BonusCollected",
	EventObstacleHit:     "ObstacleHit",
}

// Lifecycle reports whether t changes the run state; these survive queue overflow
func (t EventType) Lifecycle() bool {
	switch t {
	case EventGameStart, EventGameEnd, EventObstacleHit:
		return true
	}
	return false
}

func (t EventType) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// Event is a single queued game event
type Event struct {
	Type    EventType
	Payload any
	Frame   int64
}
