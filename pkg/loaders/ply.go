package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/photon/pkg/core"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version     string // Usually "1.0"
	Elements    []PLYElement
	VertexCount int
	FaceCount   int
}

// PLYElement is one element block of the header, such as "vertex" or "face"
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string // Scalar type, or the item type for lists
	IsList   bool
	ListType string // For list properties, the type of the count
}

// PLYData contains the geometry loaded from a PLY file
type PLYData struct {
	Vertices []core.Vec3 // Vertex positions (x, y, z)
	Faces    []int       // Triangle indices (3 per triangle), polygons are fan-triangulated
}

// LoadPLY loads a PLY file and returns its vertex positions and triangles
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	return ReadPLY(file)
}

// ReadPLY parses PLY data from r. Only positions and face indices are kept.
func ReadPLY(r io.Reader) (*PLYData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var source valueSource
	switch header.Format {
	case "ascii":
		source = &asciiSource{reader: reader}
	case "binary_little_endian":
		source = &binarySource{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		source = &binarySource{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %q", header.Format)
	}

	data := &PLYData{
		Vertices: make([]core.Vec3, 0, header.VertexCount),
		Faces:    make([]int, 0, header.FaceCount*3),
	}

	for _, element := range header.Elements {
		for i := 0; i < element.Count; i++ {
			if err := readElement(source, element, data); err != nil {
				return nil, fmt.Errorf("failed to read %s %d: %w", element.Name, i, err)
			}
		}
	}

	for _, idx := range data.Faces {
		if idx < 0 || idx >= len(data.Vertices) {
			return nil, fmt.Errorf("face index %d out of range (%d vertices)", idx, len(data.Vertices))
		}
	}

	return data, nil
}

// parsePLYHeader reads up to and including the end_header line
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var current *PLYElement
	first := true

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("unexpected end of header: %w", err)
		}
		parts := strings.Fields(line)

		if first {
			if len(parts) != 1 || parts[0] != "ply" {
				return nil, fmt.Errorf("missing ply magic")
			}
			first = false
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("malformed format line %q", strings.TrimSpace(line))
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
		case "element":
			if len(parts) != 3 {
				return nil, fmt.Errorf("malformed element line %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count %q", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
			current = &header.Elements[len(header.Elements)-1]
			switch parts[1] {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			}
		case "property":
			if current == nil {
				return nil, fmt.Errorf("property before any element")
			}
			prop, err := parseProperty(parts)
			if err != nil {
				return nil, err
			}
			current.Properties = append(current.Properties, prop)
		case "end_header":
			if header.Format == "" {
				return nil, fmt.Errorf("missing format line")
			}
			return header, nil
		default:
			return nil, fmt.Errorf("unknown header keyword %q", parts[0])
		}
	}
}

func parseProperty(parts []string) (PLYProperty, error) {
	if len(parts) >= 5 && parts[1] == "list" {
		prop := PLYProperty{Name: parts[4], Type: parts[3], IsList: true, ListType: parts[2]}
		if typeSize(prop.Type) == 0 || typeSize(prop.ListType) == 0 {
			return PLYProperty{}, fmt.Errorf("unknown list type in property %q", prop.Name)
		}
		return prop, nil
	}
	if len(parts) != 3 {
		return PLYProperty{}, fmt.Errorf("malformed property line %q", strings.Join(parts, " "))
	}
	if typeSize(parts[1]) == 0 {
		return PLYProperty{}, fmt.Errorf("unknown property type %q", parts[1])
	}
	return PLYProperty{Name: parts[2], Type: parts[1]}, nil
}

// typeSize returns the byte size of a PLY scalar type, 0 if unknown
func typeSize(t string) int {
	switch t {
	case "char", "uchar", "int8", "uint8":
		return 1
	case "short", "ushort", "int16", "uint16":
		return 2
	case "int", "uint", "int32", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	}
	return 0
}

// readElement consumes one element instance, keeping positions and faces
func readElement(source valueSource, element PLYElement, data *PLYData) error {
	var position core.Vec3

	for _, prop := range element.Properties {
		if prop.IsList {
			n, err := source.next(prop.ListType)
			if err != nil {
				return err
			}
			count := int(n)
			indices := make([]int, count)
			for k := 0; k < count; k++ {
				v, err := source.next(prop.Type)
				if err != nil {
					return err
				}
				indices[k] = int(v)
			}
			if element.Name == "face" && (prop.Name == "vertex_indices" || prop.Name == "vertex_index") {
				// Fan-triangulate polygons
				for k := 1; k+1 < count; k++ {
					data.Faces = append(data.Faces, indices[0], indices[k], indices[k+1])
				}
			}
			continue
		}

		v, err := source.next(prop.Type)
		if err != nil {
			return err
		}
		if element.Name != "vertex" {
			continue
		}
		switch prop.Name {
		case "x":
			position.X = v
		case "y":
			position.Y = v
		case "z":
			position.Z = v
		}
	}

	if element.Name == "vertex" {
		data.Vertices = append(data.Vertices, position)
	}
	return nil
}

// valueSource yields successive scalar values of the body
type valueSource interface {
	next(plyType string) (float64, error)
}

type asciiSource struct {
	reader *bufio.Reader
}

func (a *asciiSource) next(plyType string) (float64, error) {
	var token strings.Builder
	for {
		b, err := a.reader.ReadByte()
		if err != nil {
			if err == io.EOF && token.Len() > 0 {
				break
			}
			return 0, err
		}
		if b == ' ' || b == '\n' || b == '\r' || b == '\t' {
			if token.Len() > 0 {
				break
			}
			continue
		}
		token.WriteByte(b)
	}
	return strconv.ParseFloat(token.String(), 64)
}

type binarySource struct {
	reader io.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binarySource) next(plyType string) (float64, error) {
	size := typeSize(plyType)
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.reader, buf); err != nil {
		return 0, err
	}

	switch plyType {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default:
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}
