package physics

// Material holds surface properties. The engine has a single friction coefficient,
// used for both resting and sliding contacts.
type Material struct {
	DynamicFriction float64
	Restitution     float64
}

// DefaultMaterial returns the material assigned to actors that do not set their own.
func DefaultMaterial() *Material {
	return &Material{DynamicFriction: 0.5, Restitution: 0.1}
}

// SetDynamicFriction changes the dynamic friction for actors added afterwards.
func (m *Material) SetDynamicFriction(f float64) {
	m.DynamicFriction = f
}

// SetRestitution changes the bounciness for actors added afterwards.
func (m *Material) SetRestitution(r float64) {
	m.Restitution = r
}
