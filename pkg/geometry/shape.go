package geometry

import (
	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit returns the nearest intersection with t in [tMin, tMax].
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}

// boxPadding keeps flat primitives from producing zero-thickness boxes
const boxPadding = 1e-4
