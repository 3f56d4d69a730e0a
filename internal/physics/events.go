package physics

// TriggerPair reports a shape entering or leaving a trigger volume.
type TriggerPair struct {
	TriggerShape *Shape
	TriggerActor Actor
	OtherShape   *Shape
	OtherActor   Actor
	// Status is NotifyTouchFound or NotifyTouchLost.
	Status PairFlags
}

// ContactPairHeader names the two actors of a batch of contact pairs.
type ContactPairHeader struct {
	Actors [2]Actor
}

// ContactPair reports a touch state change between two shapes.
type ContactPair struct {
	Shapes [2]*Shape
	// Events holds NotifyTouchFound or NotifyTouchLost.
	Events PairFlags
}

// ConstraintInfo reports a joint that broke during the last step.
type ConstraintInfo struct {
	Joint *DistanceJoint
}

// SimulationEventCallback receives simulation events. The world delivers them after Step
// returns, on the goroutine that called Step, so callbacks may add or remove actors.
type SimulationEventCallback interface {
	OnTrigger(pairs []TriggerPair)
	OnContact(header ContactPairHeader, pairs []ContactPair)
	OnConstraintBreak(constraints []ConstraintInfo)
	OnWake(actors []Actor)
	OnSleep(actors []Actor)
}

// event is one buffered notification waiting for the post-step flush.
type event struct {
	trigger *TriggerPair
	header  ContactPairHeader
	contact *ContactPair
}
