package tutorial

import (
	"physics-tutorial/internal/audio"
	"physics-tutorial/internal/logger"
	"physics-tutorial/internal/physics"
)

// GameState is the state shared between the event callback (writer) and the per-frame hook (reader).
type GameState struct {
	// Trigger is true while something other than the ground overlaps the goal.
	Trigger bool
}

// CuePlayer plays a sound for an event. *audio.Player satisfies it.
type CuePlayer interface {
	Play(c audio.Cue)
}

// EventCallback logs trigger and contact events and keeps GameState.Trigger current.
type EventCallback struct {
	state *GameState
	log   *logger.Logger
	cues  CuePlayer
}

// NewEventCallback returns a callback writing to state and log. cues may be nil.
func NewEventCallback(state *GameState, log *logger.Logger, cues CuePlayer) *EventCallback {
	return &EventCallback{state: state, log: log, cues: cues}
}

func (c *EventCallback) play(cue audio.Cue) {
	if c.cues != nil {
		c.cues.Play(cue)
	}
}

// OnTrigger ignores contacts with planes and flips the trigger flag on enter and exit.
func (c *EventCallback) OnTrigger(pairs []physics.TriggerPair) {
	for _, p := range pairs {
		if p.OtherShape.GeometryType() == physics.GeometryPlane {
			continue
		}
		if p.Status.Has(physics.NotifyTouchFound) {
			c.log.Log("onTrigger::eNOTIFY_TOUCH_FOUND")
			c.state.Trigger = true
			c.play(audio.CueTriggerEnter)
		}
		if p.Status.Has(physics.NotifyTouchLost) {
			c.log.Log("onTrigger::eNOTIFY_TOUCH_LOST")
			c.state.Trigger = false
			c.play(audio.CueTriggerExit)
		}
	}
}

// OnContact logs the actor names and each pair's touch events.
func (c *EventCallback) OnContact(header physics.ContactPairHeader, pairs []physics.ContactPair) {
	c.log.Logf("Contact found between %s %s", header.Actors[0].Name(), header.Actors[1].Name())
	for _, p := range pairs {
		if p.Events.Has(physics.NotifyTouchFound) {
			c.log.Log("onContact::eNOTIFY_TOUCH_FOUND")
			c.play(audio.CueContact)
		}
		if p.Events.Has(physics.NotifyTouchLost) {
			c.log.Log("onContact::eNOTIFY_TOUCH_LOST")
		}
	}
}

// OnConstraintBreak ignores broken joints; the demo joints never break.
func (c *EventCallback) OnConstraintBreak([]physics.ConstraintInfo) {}

// OnWake ignores wake transitions.
func (c *EventCallback) OnWake([]physics.Actor) {}

// OnSleep ignores sleep transitions.
func (c *EventCallback) OnSleep([]physics.Actor) {}
