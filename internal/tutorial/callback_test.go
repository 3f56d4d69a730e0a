package tutorial

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"physics-tutorial/internal/audio"
	"physics-tutorial/internal/logger"
	"physics-tutorial/internal/physics"
)

type cueRecorder struct {
	played []audio.Cue
}

func (r *cueRecorder) Play(c audio.Cue) { r.played = append(r.played, c) }

func messages(l *logger.Logger) []string {
	lines := l.Lines()
	out := make([]string, len(lines))
	for i, line := range lines {
		_, msg, _ := strings.Cut(line, "] ")
		out[i] = msg
	}
	return out
}

func triggerPair(other physics.Actor, status physics.PairFlags) physics.TriggerPair {
	goal := physics.StaticBox(physics.Identity, 1, 1)
	goal.SetTrigger(true)
	return physics.TriggerPair{
		TriggerShape: goal.Shapes()[0],
		TriggerActor: goal,
		OtherShape:   other.Shapes()[0],
		OtherActor:   other,
		Status:       status,
	}
}

func TestTriggerFlagFollowsTouches(t *testing.T) {
	var state GameState
	log := logger.NewAt("", nil)
	cues := &cueRecorder{}
	cb := NewEventCallback(&state, log, cues)
	ball := physics.Sphere(physics.Identity, 1, 1)

	cb.OnTrigger([]physics.TriggerPair{triggerPair(ball, physics.NotifyTouchFound)})
	assert.True(t, state.Trigger)

	cb.OnTrigger([]physics.TriggerPair{triggerPair(ball, physics.NotifyTouchLost)})
	assert.False(t, state.Trigger)

	assert.Equal(t, []string{"onTrigger::eNOTIFY_TOUCH_FOUND", "onTrigger::eNOTIFY_TOUCH_LOST"}, messages(log))
	assert.Equal(t, []audio.Cue{audio.CueTriggerEnter, audio.CueTriggerExit}, cues.played)
}

func TestTriggerIgnoresPlanes(t *testing.T) {
	var state GameState
	log := logger.NewAt("", nil)
	cb := NewEventCallback(&state, log, nil)
	ground := physics.Plane(physics.Identity)

	cb.OnTrigger([]physics.TriggerPair{triggerPair(ground, physics.NotifyTouchFound)})
	assert.False(t, state.Trigger)

	state.Trigger = true
	cb.OnTrigger([]physics.TriggerPair{triggerPair(ground, physics.NotifyTouchLost)})
	assert.True(t, state.Trigger)
	assert.Empty(t, log.Lines())
}

func TestTriggerBatchLastEventWins(t *testing.T) {
	var state GameState
	cb := NewEventCallback(&state, logger.NewAt("", nil), nil)
	ball := physics.Sphere(physics.Identity, 1, 1)
	ground := physics.Plane(physics.Identity)

	cb.OnTrigger([]physics.TriggerPair{
		triggerPair(ball, physics.NotifyTouchLost),
		triggerPair(ball, physics.NotifyTouchFound),
		triggerPair(ground, physics.NotifyTouchLost),
	})
	assert.True(t, state.Trigger)
}

func TestContactLogsNamesAndEvents(t *testing.T) {
	var state GameState
	log := logger.NewAt("", nil)
	cues := &cueRecorder{}
	cb := NewEventCallback(&state, log, cues)
	a := physics.StaticBox(physics.Identity, 1, 1)
	a.SetName("Bottom1")
	b := physics.Box(physics.Identity, 1, 1, 1)
	b.SetName("Box3")

	cb.OnContact(physics.ContactPairHeader{Actors: [2]physics.Actor{a, b}}, []physics.ContactPair{
		{Shapes: [2]*physics.Shape{a.Shapes()[0], b.Shapes()[0]}, Events: physics.NotifyTouchFound},
		{Shapes: [2]*physics.Shape{a.Shapes()[0], b.Shapes()[0]}, Events: physics.NotifyTouchLost},
	})

	require.Equal(t, []string{
		"Contact found between Bottom1 Box3",
		"onContact::eNOTIFY_TOUCH_FOUND",
		"onContact::eNOTIFY_TOUCH_LOST",
	}, messages(log))
	assert.False(t, state.Trigger)
	assert.Equal(t, []audio.Cue{audio.CueContact}, cues.played)
}

func TestNoOpCallbacks(t *testing.T) {
	var state GameState
	log := logger.NewAt("", nil)
	cb := NewEventCallback(&state, log, nil)
	cb.OnConstraintBreak(nil)
	cb.OnWake([]physics.Actor{physics.Sphere(physics.Identity, 1, 1)})
	cb.OnSleep(nil)
	assert.Empty(t, log.Lines())
	assert.False(t, state.Trigger)
}
