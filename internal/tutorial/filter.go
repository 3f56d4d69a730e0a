package tutorial

import "physics-tutorial/internal/physics"

// Filter groups for Word0/Word1. Add more if you need.
const (
	Actor0 uint32 = 1 << iota
	Actor1
	Actor2
)

// FilterShader lets triggers through with the default trigger events. Every other pair gets
// the default contact response, plus touch notifications when the filter mask of each shape
// contains the group of the other.
func FilterShader(attrs0 physics.FilterAttributes, data0 physics.FilterData, attrs1 physics.FilterAttributes, data1 physics.FilterData) (physics.PairFlags, physics.FilterFlags) {
	if attrs0.IsTrigger() || attrs1.IsTrigger() {
		return physics.TriggerDefault, 0
	}
	flags := physics.ContactDefault
	if Notifies(data0, data1) {
		flags |= physics.NotifyTouchFound | physics.NotifyTouchLost
	}
	return flags, 0
}

// Notifies reports whether a pair with these filter words raises contact notifications.
func Notifies(a, b physics.FilterData) bool {
	return a.Word0&b.Word1 != 0 && b.Word0&a.Word1 != 0
}
