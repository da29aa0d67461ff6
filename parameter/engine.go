package parameter

import "time"

// Game loop timing
const (
	TargetFPS   = 30
	FramePeriod = time.Second / TargetFPS
)

// Event queue sizing
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256
)

// Observer feed
const (
	ObserverAddr          = "127.0.0.1:8087"
	ObserverSendBuffer    = 8
	ObserverWriteDeadline = 2 * time.Second
)
