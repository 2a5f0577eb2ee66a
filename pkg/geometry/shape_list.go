package geometry

import (
	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/material"
)

// ShapeList tests every shape in order. It is the brute-force counterpart to BVH.
type ShapeList []Shape

// Hit returns the nearest intersection with any shape in the list
func (l ShapeList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range l {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of all shape bounds
func (l ShapeList) BoundingBox() core.AABB {
	if len(l) == 0 {
		return core.AABB{}
	}
	box := l[0].BoundingBox()
	for _, shape := range l[1:] {
		box = box.Union(shape.BoundingBox())
	}
	return box
}
