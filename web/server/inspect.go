package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/geometry"
	"github.com/df07/photon/pkg/material"
	"github.com/df07/photon/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// materialInfo describes a material by type with its parameters
func materialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = vec(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vec(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff"
		return "dielectric", properties

	case *material.DiffuseLight:
		properties["emission"] = vec(m.Emission)
		properties["color"] = hexColor(m.Emission)
		return "light", properties

	case *material.Checker:
		evenType, evenProps := materialInfo(m.Even)
		oddType, oddProps := materialInfo(m.Odd)
		properties["even"] = map[string]interface{}{"type": evenType, "properties": evenProps}
		properties["odd"] = map[string]interface{}{"type": oddType, "properties": oddProps}
		properties["scale"] = m.Scale
		return "checker", properties

	case *material.Gradient:
		properties["colorA"] = vec(m.ColorA)
		properties["colorB"] = vec(m.ColorB)
		properties["axis"] = vec(m.Axis)
		return "gradient", properties

	default:
		return "unknown", properties
	}
}

// geometryInfo describes a shape by type with its parameters
func geometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch g := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vec(g.Center)
		properties["radius"] = g.Radius
		return "sphere", properties
	case *geometry.Plane:
		properties["point"] = vec(g.Point)
		properties["normal"] = vec(g.Normal)
		return "plane", properties
	case *geometry.Triangle:
		properties["v0"] = vec(g.V0)
		properties["v1"] = vec(g.V1)
		properties["v2"] = vec(g.V2)
		properties["normal"] = vec(g.Normal())
		return "triangle", properties
	case *geometry.Quad:
		properties["corner"] = vec(g.Corner)
		properties["u"] = vec(g.U)
		properties["v"] = vec(g.V)
		return "quad", properties
	case *geometry.Disc:
		properties["center"] = vec(g.Center)
		properties["normal"] = vec(g.Normal)
		properties["radius"] = g.Radius
		return "disc", properties
	case *geometry.TriangleMesh:
		properties["triangles"] = g.TriangleCount()
		return "mesh", properties
	case nil:
		return "unknown", properties
	default:
		return fmt.Sprintf("%T", shape), properties
	}
}

// InspectResult is the first surface seen through a pixel
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Shape     geometry.Shape // nil if no top-level shape reproduces the hit
}

// inspectPixel casts a ray through the center of pixel (x, y) and reports the first hit
func inspectPixel(desc *scene.Description, width, height, x, y int) InspectResult {
	s := desc.Build()
	camera := geometry.NewCamera(desc.Camera)

	u := (float64(x) + 0.5) / float64(width)
	v := 1.0 - (float64(y)+0.5)/float64(height)
	ray := camera.GetRay(u, v, core.NewSeededSampler(0))

	hit, isHit := s.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		return InspectResult{}
	}

	// the BVH only returns the hit record, so find the shape that produces the same t
	for _, shape := range desc.Shapes {
		if shapeHit, ok := shape.Hit(ray, 0.001, hit.T+0.001); ok && shapeHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Shape: shape}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit}
}

// handleInspect reports what is visible through one pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	params, err := parseSceneParams(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	x, err := parseIntParam(values, "x", -1, 0, params.Width-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := parseIntParam(values, "y", -1, 0, params.Height-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if x < 0 || y < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("x and y are required"))
		return
	}

	result := inspectPixel(params.desc, params.Width, params.Height, x, y)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := materialInfo(result.HitRecord.Material)
	geometryType, geometryProps := geometryInfo(result.Shape)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vec(result.HitRecord.Point),
		Normal:       vec(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
