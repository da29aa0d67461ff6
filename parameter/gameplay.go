package parameter

// Player motion
const (
	// StartVelocity is the initial forward speed in units per second
	StartVelocity = 4.0

	// RotationVelocity is the ring-angle turn rate in degrees per second at full input
	RotationVelocity = 180.0

	// MaxFrameDelta clamps a single update step in seconds
	MaxFrameDelta = 0.1
)

// Acceleration per difficulty mode, units per second squared
const (
	AccelerationEasy   = 0.25
	AccelerationMedium = 0.5
	AccelerationHard   = 1.0
)

// Collision and scoring
const (
	// CollisionCurveTolerance is the along-pipe hit window in degrees of curve angle
	CollisionCurveTolerance = 1.5

	// CollisionRingTolerance is the around-tube hit window in degrees of ring rotation
	CollisionRingTolerance = 12.0

	// BonusScore is added per collected bonus
	BonusScore = 10

	// ItemInset pulls item anchors from the wall toward the centre line
	ItemInset = 0.15
)
