package scene

import (
	"github.com/df07/photon/pkg/core"
)

// Background gives the radiance arriving along rays that hit nothing
type Background interface {
	Color(ray core.Ray) core.Vec3
}

// Gradient blends from Horizon to Zenith with the ray's vertical direction
type Gradient struct {
	Horizon core.Vec3
	Zenith  core.Vec3
}

// Color implements Background
func (g Gradient) Color(ray core.Ray) core.Vec3 {
	t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return g.Horizon.Lerp(g.Zenith, t)
}

// Solid is a uniform background
type Solid struct {
	Value core.Vec3
}

// Color implements Background
func (s Solid) Color(ray core.Ray) core.Vec3 {
	return s.Value
}

// Black is an empty background, for scenes lit only by emitters
type Black struct{}

// Color implements Background
func (Black) Color(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}
