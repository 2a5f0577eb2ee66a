package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/photon/pkg/core"
	"github.com/df07/photon/pkg/geometry"
	"github.com/df07/photon/pkg/loaders"
	"github.com/df07/photon/pkg/log"
	"github.com/df07/photon/pkg/material"
)

var logger = log.New("scene")

// vec3JSON is a vector written as [x, y, z]
type vec3JSON [3]float64

func (v vec3JSON) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

type cameraJSON struct {
	Center        vec3JSON  `json:"center"`
	LookAt        vec3JSON  `json:"lookAt"`
	Up            *vec3JSON `json:"up"`
	VFov          float64   `json:"vfov"`
	AspectRatio   float64   `json:"aspectRatio,omitempty"`
	Aperture      float64   `json:"aperture,omitempty"`
	FocusDistance float64   `json:"focusDistance,omitempty"`
}

type backgroundJSON struct {
	Type    string   `json:"type"`
	Horizon vec3JSON `json:"horizon"`
	Zenith  vec3JSON `json:"zenith"`
	Color   vec3JSON `json:"color"`
}

type materialJSON struct {
	Type      string   `json:"type"`
	Albedo    vec3JSON `json:"albedo"`
	Fuzz      float64  `json:"fuzz,omitempty"`
	IOR       float64  `json:"ior,omitempty"`
	Color     vec3JSON `json:"color"`
	Intensity float64  `json:"intensity,omitempty"`
	Even      string   `json:"even,omitempty"`
	Odd       string   `json:"odd,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	ColorA    vec3JSON `json:"colorA"`
	ColorB    vec3JSON `json:"colorB"`
	Axis      vec3JSON `json:"axis"`
}

type objectJSON struct {
	Type     string     `json:"type"`
	Material string     `json:"material"`
	Center   vec3JSON   `json:"center"`
	Radius   float64    `json:"radius,omitempty"`
	Point    vec3JSON   `json:"point"`
	Normal   vec3JSON   `json:"normal"`
	Vertices []vec3JSON `json:"vertices"`
	Corner   vec3JSON   `json:"corner"`
	U        vec3JSON   `json:"u"`
	V        vec3JSON   `json:"v"`
	File     string     `json:"file,omitempty"`
	Scale    float64    `json:"scale,omitempty"`
	Offset   vec3JSON   `json:"offset"`
}

type sceneJSON struct {
	Name       string                  `json:"name"`
	Camera     cameraJSON              `json:"camera"`
	Background backgroundJSON          `json:"background"`
	Materials  map[string]materialJSON `json:"materials"`
	Objects    []objectJSON            `json:"objects"`
}

// LoadFile reads a JSON scene description. Mesh paths are resolved relative to the file.
func LoadFile(path string) (*Description, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	return Parse(file, filepath.Dir(path))
}

// Parse decodes a JSON scene description from r
func Parse(r io.Reader, baseDir string) (*Description, error) {
	var raw sceneJSON
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	background, err := raw.Background.build()
	if err != nil {
		return nil, err
	}

	resolver := &materialResolver{defs: raw.Materials, built: map[string]material.Material{}}
	shapes := make([]geometry.Shape, 0, len(raw.Objects))
	for i, obj := range raw.Objects {
		mat, err := resolver.resolve(obj.Material, nil)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		built, err := obj.build(mat, baseDir)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		shapes = append(shapes, built...)
	}

	up := core.NewVec3(0, 1, 0)
	if raw.Camera.Up != nil {
		up = raw.Camera.Up.vec()
	}
	if raw.Camera.VFov <= 0 {
		return nil, fmt.Errorf("%w: camera vfov must be positive", ErrInvalidScene)
	}
	if err := checkCameraBasis(raw.Camera.Center.vec(), raw.Camera.LookAt.vec(), up); err != nil {
		return nil, err
	}

	name := raw.Name
	if name == "" {
		name = "Untitled"
	}

	return &Description{
		Name:   name,
		Shapes: shapes,
		Camera: geometry.CameraConfig{
			Center:        raw.Camera.Center.vec(),
			LookAt:        raw.Camera.LookAt.vec(),
			Up:            up,
			VFov:          raw.Camera.VFov,
			AspectRatio:   raw.Camera.AspectRatio,
			Aperture:      raw.Camera.Aperture,
			FocusDistance: raw.Camera.FocusDistance,
		},
		Background: background,
	}, nil
}

// checkCameraBasis rejects views that leave the camera without an orthonormal basis
func checkCameraBasis(center, lookAt, up core.Vec3) error {
	view := lookAt.Subtract(center)
	if view.NearZero() {
		return fmt.Errorf("%w: camera center and lookAt coincide", ErrInvalidScene)
	}
	if up.Cross(view.Normalize()).NearZero() {
		return fmt.Errorf("%w: camera up %v is parallel to the view direction", ErrInvalidScene, up)
	}
	return nil
}

func (b backgroundJSON) build() (Background, error) {
	switch b.Type {
	case "", "black":
		return Black{}, nil
	case "solid":
		return Solid{Value: b.Color.vec()}, nil
	case "gradient":
		return Gradient{Horizon: b.Horizon.vec(), Zenith: b.Zenith.vec()}, nil
	}
	return nil, fmt.Errorf("%w: unknown background type %q", ErrInvalidScene, b.Type)
}

// materialResolver builds named materials once so shapes can share them
type materialResolver struct {
	defs  map[string]materialJSON
	built map[string]material.Material
}

func (m *materialResolver) resolve(name string, visiting []string) (material.Material, error) {
	if mat, ok := m.built[name]; ok {
		return mat, nil
	}
	for _, v := range visiting {
		if v == name {
			return nil, fmt.Errorf("%w: material %q references itself", ErrInvalidScene, name)
		}
	}
	def, ok := m.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: undefined material %q", ErrInvalidScene, name)
	}

	var mat material.Material
	switch def.Type {
	case "lambertian":
		mat = material.NewLambertian(def.Albedo.vec())
	case "metal":
		mat = material.NewMetal(def.Albedo.vec(), def.Fuzz)
	case "dielectric":
		if def.IOR <= 0 {
			return nil, fmt.Errorf("%w: material %q needs a positive ior", ErrInvalidScene, name)
		}
		mat = material.NewDielectric(def.IOR)
	case "light":
		intensity := def.Intensity
		if intensity == 0 {
			intensity = 1
		}
		mat = material.NewDiffuseLight(def.Color.vec(), intensity)
	case "checker":
		if def.Scale <= 0 {
			return nil, fmt.Errorf("%w: material %q needs a positive scale", ErrInvalidScene, name)
		}
		even, err := m.resolve(def.Even, append(visiting, name))
		if err != nil {
			return nil, err
		}
		odd, err := m.resolve(def.Odd, append(visiting, name))
		if err != nil {
			return nil, err
		}
		mat = material.NewChecker(even, odd, def.Scale)
	case "gradient":
		mat = material.NewGradient(def.ColorA.vec(), def.ColorB.vec(), def.Axis.vec())
	default:
		return nil, fmt.Errorf("%w: material %q has unknown type %q", ErrInvalidScene, name, def.Type)
	}

	m.built[name] = mat
	return mat, nil
}

func (o objectJSON) build(mat material.Material, baseDir string) ([]geometry.Shape, error) {
	switch o.Type {
	case "sphere":
		return []geometry.Shape{geometry.NewSphere(o.Center.vec(), o.Radius, mat)}, nil
	case "plane":
		return []geometry.Shape{geometry.NewPlane(o.Point.vec(), o.Normal.vec(), mat)}, nil
	case "triangle":
		if len(o.Vertices) != 3 {
			return nil, fmt.Errorf("%w: triangle needs 3 vertices, got %d", ErrInvalidScene, len(o.Vertices))
		}
		return []geometry.Shape{geometry.NewTriangle(o.Vertices[0].vec(), o.Vertices[1].vec(), o.Vertices[2].vec(), mat)}, nil
	case "quad":
		return []geometry.Shape{geometry.NewQuad(o.Corner.vec(), o.U.vec(), o.V.vec(), mat)}, nil
	case "disc":
		return []geometry.Shape{geometry.NewDisc(o.Center.vec(), o.Normal.vec(), o.Radius, mat)}, nil
	case "mesh":
		return o.buildMesh(mat, baseDir)
	}
	return nil, fmt.Errorf("%w: unknown object type %q", ErrInvalidScene, o.Type)
}

// buildMesh loads a PLY file as a single shape with its own BVH
func (o objectJSON) buildMesh(mat material.Material, baseDir string) ([]geometry.Shape, error) {
	path := o.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	start := time.Now()
	data, err := loaders.LoadPLY(path)
	if err != nil {
		return nil, err
	}

	mesh, err := geometry.NewTriangleMesh(data.Vertices, data.Faces, mat, &geometry.TriangleMeshOptions{
		Scale:  o.Scale,
		Offset: o.Offset.vec(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	logger.Infof("loaded mesh %s: %d vertices, %d triangles in %v",
		filepath.Base(path), len(data.Vertices), mesh.TriangleCount(), time.Since(start))

	return []geometry.Shape{mesh}, nil
}
