package main

import (
	"physics-tutorial/internal/tutorial"
	"physics-tutorial/internal/visualdebugger"
)

// actions binds the tutorial's demo operations to keys and terminal commands.
func actions(sc *tutorial.MyScene) []visualdebugger.Action {
	return []visualdebugger.Action{
		{Name: "fire", Key: visualdebugger.KeySpace, Help: "fire a projectile", Run: sc.FireProjectile},
		{Name: "burst", Key: visualdebugger.KeyB, Help: "fire a burst from the gun", Run: sc.FireBurst},
		{Name: "start", Key: visualdebugger.KeyG, Help: "begin the match (push the gun)", Run: func() error {
			sc.BeginMatch()
			return nil
		}},
		{Name: "press", Key: visualdebugger.KeyE, Help: "example key press handler", Run: func() error {
			sc.OnKeyPress()
			return nil
		}},
		{Name: "pyramid", Key: visualdebugger.KeyY, Help: "drop a pyramid", Run: sc.SpawnPyramid},
	}
}
