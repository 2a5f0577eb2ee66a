package geometry

import (
	"sort"

	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/material"
)

// leafSize is the largest number of shapes stored in a single leaf
const leafSize = 2

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Axis        int     // Split axis of an internal node
	Shapes      []Shape // Sub-slice of the build order for leaf nodes (nil for internal nodes)
}

// IsLeaf reports whether the node stores shapes directly
func (n *BVHNode) IsLeaf() bool {
	return n.Shapes != nil
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of shapes using a midpoint split on the
// longest axis. The input slice is not modified.
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{Root: nil}
	}

	ordered := make([]Shape, len(shapes))
	copy(ordered, shapes)

	return &BVH{Root: buildBVH(ordered)}
}

// buildBVH recursively partitions shapes in place
func buildBVH(shapes []Shape) *BVHNode {
	boundingBox := shapes[0].BoundingBox()
	for _, shape := range shapes[1:] {
		boundingBox = boundingBox.Union(shape.BoundingBox())
	}

	if len(shapes) <= leafSize {
		return &BVHNode{
			BoundingBox: boundingBox,
			Shapes:      shapes,
		}
	}

	axis := boundingBox.LongestAxis()
	sortShapesByAxis(shapes, axis)

	mid := len(shapes) / 2
	left := buildBVH(shapes[:mid])
	right := buildBVH(shapes[mid:])

	return &BVHNode{
		BoundingBox: left.BoundingBox.Union(right.BoundingBox),
		Left:        left,
		Right:       right,
		Axis:        axis,
	}
}

// sortShapesByAxis sorts shapes by their bounding box center along the specified axis
func sortShapesByAxis(shapes []Shape, axis int) {
	type keyed struct {
		shape  Shape
		center float64
	}
	keys := make([]keyed, len(shapes))
	for i, shape := range shapes {
		keys[i] = keyed{shape: shape, center: shape.BoundingBox().Center().Axis(axis)}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].center < keys[j].center
	})
	for i := range keys {
		shapes[i] = keys[i].shape
	}
}

// Hit returns the nearest intersection with any shape in the BVH
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return hitNode(bvh.Root, ray, tMin, tMax)
}

// hitNode visits the child on the ray's side of the split first, so the far
// child is tested against an already narrowed tMax
func hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return nil, false
	}

	if node.IsLeaf() {
		var closestHit *material.HitRecord
		closestSoFar := tMax

		for _, shape := range node.Shapes {
			if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
				closestSoFar = hit.T
				closestHit = hit
			}
		}

		return closestHit, closestHit != nil
	}

	near, far := node.Left, node.Right
	if ray.Direction.Axis(node.Axis) < 0 {
		near, far = far, near
	}

	closestHit, _ := hitNode(near, ray, tMin, tMax)
	if closestHit != nil {
		tMax = closestHit.T
	}
	if hit, isHit := hitNode(far, ray, tMin, tMax); isHit {
		closestHit = hit
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the bounds of every shape in the hierarchy
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes  int
	LeafNodes   int
	MaxDepth    int
	AvgDepth    float64 // Mean leaf depth
	TotalShapes int
}

// Stats walks the hierarchy and summarizes its shape
func (bvh *BVH) Stats() BVHStats {
	if bvh.Root == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	collectStats(bvh.Root, 0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

// collectStats recursively collects statistics about the BVH
func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	if node.IsLeaf() {
		stats.LeafNodes++
		stats.TotalShapes += len(node.Shapes)
		stats.AvgDepth += float64(depth) // summed here, divided in Stats
		return
	}

	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}
