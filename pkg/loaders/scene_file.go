package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// ShapeKind identifies the primitive a shape statement declares
type ShapeKind string

const (
	ShapeSphere   ShapeKind = "Sphere"
	ShapePlane    ShapeKind = "Plane"
	ShapeTriangle ShapeKind = "Triangle"
)

// ShapeStatement is a parsed Sphere, Plane or Triangle line
type ShapeStatement struct {
	Kind     ShapeKind
	Name     string
	Points   []core.Vec3 // Sphere: center. Plane: center, normal. Triangle: v0, v1, v2.
	Radius   float64     // Sphere only
	Material core.Material
	Line     int
}

// LightStatement is a parsed PointLight line
type LightStatement struct {
	Name  string
	Light core.PointLight
	Line  int
}

// SceneFile contains all statements of a text scene description
type SceneFile struct {
	Materials map[string]core.Material
	Shapes    []ShapeStatement
	Lights    []LightStatement
}

// sceneFileParser holds the state needed to resolve names while parsing
type sceneFileParser struct {
	file       *SceneFile
	shapeNames map[string]bool
	lightNames map[string]bool
	line       int
}

// ParseSceneFile parses a scene description from an io.Reader.
//
// One statement per line; '#' starts a comment. Names are quoted, vectors and
// colors are written as (x, y, z):
//
//	Material "Glass" Refractive (1, 1, 1) 1.5
//	Sphere "Ball" (0, 0, 5) 1 "Glass"
//	Plane "Floor" (0, -1, 0) (0, 1, 0) "White"
//	Triangle "Tri" (0, 0, 5) (0, 1, 5) (1, 0, 5) "White"
//	PointLight "Key" (0, 0.8, 1.5) (0.5, 0.5, 0.5)
//
// Materials must be declared before the shapes that use them.
func ParseSceneFile(reader io.Reader) (*SceneFile, error) {
	parser := &sceneFileParser{
		file: &SceneFile{
			Materials: make(map[string]core.Material),
			Shapes:    make([]ShapeStatement, 0),
			Lights:    make([]LightStatement, 0),
		},
		shapeNames: make(map[string]bool),
		lightNames: make(map[string]bool),
	}

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		parser.line++
		if err := parser.processLine(scanner.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", parser.line, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	return parser.file, nil
}

// LoadSceneFile loads and parses a scene description file
func LoadSceneFile(filename string) (*SceneFile, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	return ParseSceneFile(file)
}

// validateFilePath rejects names that cannot be scene files
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if len(filename) > 4096 {
		return fmt.Errorf("file path too long")
	}
	if !strings.EqualFold(filepath.Ext(filename), ".txt") {
		return fmt.Errorf("invalid file type %q: only .txt scene files are allowed", filepath.Ext(filename))
	}
	return nil
}

func (p *sceneFileParser) processLine(line string) error {
	tokens, err := tokenizeLine(line)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	switch tokens[0].text {
	case "Material":
		return p.parseMaterial(tokens[1:])
	case "Sphere":
		return p.parseSphere(tokens[1:])
	case "Plane":
		return p.parsePlane(tokens[1:])
	case "Triangle":
		return p.parseTriangle(tokens[1:])
	case "PointLight":
		return p.parsePointLight(tokens[1:])
	default:
		return fmt.Errorf("unknown statement %q", tokens[0].text)
	}
}

// Material "name" <Type> (r, g, b) [ior]
func (p *sceneFileParser) parseMaterial(args []token) error {
	if len(args) != 3 && len(args) != 4 {
		return fmt.Errorf("Material expects name, type, color and optional refractive index, got %d arguments", len(args))
	}

	name, err := args[0].name()
	if err != nil {
		return err
	}
	if _, exists := p.file.Materials[name]; exists {
		return fmt.Errorf("duplicate material %q", name)
	}

	materialType, err := core.ParseMaterialType(args[1].text)
	if err != nil {
		return err
	}

	color, err := args[2].vector()
	if err != nil {
		return fmt.Errorf("material %q color: %w", name, err)
	}

	ior := 1.0
	if len(args) == 4 {
		if ior, err = args[3].number(); err != nil {
			return fmt.Errorf("material %q refractive index: %w", name, err)
		}
	}
	if materialType == core.Refractive && ior <= 0 {
		return fmt.Errorf("material %q: refractive index must be positive, got %g", name, ior)
	}

	p.file.Materials[name] = core.NewMaterial(materialType, core.NewColor(color.X, color.Y, color.Z), ior)
	return nil
}

// Sphere "name" (center) radius "material"
func (p *sceneFileParser) parseSphere(args []token) error {
	if len(args) != 4 {
		return fmt.Errorf("Sphere expects name, center, radius and material, got %d arguments", len(args))
	}

	stmt, err := p.newShape(ShapeSphere, args[0], args[3])
	if err != nil {
		return err
	}

	center, err := args[1].vector()
	if err != nil {
		return fmt.Errorf("sphere %q center: %w", stmt.Name, err)
	}
	radius, err := args[2].number()
	if err != nil {
		return fmt.Errorf("sphere %q radius: %w", stmt.Name, err)
	}
	if radius <= 0 {
		return fmt.Errorf("sphere %q: radius must be positive, got %g", stmt.Name, radius)
	}

	stmt.Points = []core.Vec3{center}
	stmt.Radius = radius
	p.file.Shapes = append(p.file.Shapes, stmt)
	return nil
}

// Plane "name" (center) (normal) "material"
func (p *sceneFileParser) parsePlane(args []token) error {
	if len(args) != 4 {
		return fmt.Errorf("Plane expects name, center, normal and material, got %d arguments", len(args))
	}

	stmt, err := p.newShape(ShapePlane, args[0], args[3])
	if err != nil {
		return err
	}

	points, err := vectors(args[1:3])
	if err != nil {
		return fmt.Errorf("plane %q: %w", stmt.Name, err)
	}
	if points[1].LengthSquared() == 0 {
		return fmt.Errorf("plane %q: normal must not be zero", stmt.Name)
	}

	stmt.Points = points
	p.file.Shapes = append(p.file.Shapes, stmt)
	return nil
}

// Triangle "name" (v0) (v1) (v2) "material"
func (p *sceneFileParser) parseTriangle(args []token) error {
	if len(args) != 5 {
		return fmt.Errorf("Triangle expects name, three vertices and material, got %d arguments", len(args))
	}

	stmt, err := p.newShape(ShapeTriangle, args[0], args[4])
	if err != nil {
		return err
	}

	points, err := vectors(args[1:4])
	if err != nil {
		return fmt.Errorf("triangle %q: %w", stmt.Name, err)
	}
	if points[1].Subtract(points[0]).Cross(points[2].Subtract(points[0])).LengthSquared() == 0 {
		return fmt.Errorf("triangle %q: vertices are collinear", stmt.Name)
	}

	stmt.Points = points
	p.file.Shapes = append(p.file.Shapes, stmt)
	return nil
}

// PointLight "name" (position) (r, g, b)
func (p *sceneFileParser) parsePointLight(args []token) error {
	if len(args) != 3 {
		return fmt.Errorf("PointLight expects name, position and color, got %d arguments", len(args))
	}

	name, err := args[0].name()
	if err != nil {
		return err
	}
	if p.lightNames[name] {
		return fmt.Errorf("duplicate light %q", name)
	}

	values, err := vectors(args[1:3])
	if err != nil {
		return fmt.Errorf("light %q: %w", name, err)
	}

	p.lightNames[name] = true
	p.file.Lights = append(p.file.Lights, LightStatement{
		Name:  name,
		Light: core.NewPointLight(values[0], core.NewColor(values[1].X, values[1].Y, values[1].Z)),
		Line:  p.line,
	})
	return nil
}

// newShape validates the shape name and resolves its material
func (p *sceneFileParser) newShape(kind ShapeKind, nameToken, materialToken token) (ShapeStatement, error) {
	name, err := nameToken.name()
	if err != nil {
		return ShapeStatement{}, err
	}
	if p.shapeNames[name] {
		return ShapeStatement{}, fmt.Errorf("duplicate entity %q", name)
	}

	materialName, err := materialToken.name()
	if err != nil {
		return ShapeStatement{}, err
	}
	material, ok := p.file.Materials[materialName]
	if !ok {
		return ShapeStatement{}, fmt.Errorf("%s %q uses undefined material %q", strings.ToLower(string(kind)), name, materialName)
	}

	p.shapeNames[name] = true
	return ShapeStatement{Kind: kind, Name: name, Material: material, Line: p.line}, nil
}

func vectors(args []token) ([]core.Vec3, error) {
	result := make([]core.Vec3, len(args))
	for i, arg := range args {
		v, err := arg.vector()
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenString
	tokenTuple
)

type token struct {
	kind tokenKind
	text string
}

func (t token) name() (string, error) {
	if t.kind != tokenString {
		return "", fmt.Errorf("expected quoted name, got %s", t.text)
	}
	return t.text, nil
}

func (t token) number() (float64, error) {
	if t.kind != tokenWord {
		return 0, fmt.Errorf("expected number, got %s", t.text)
	}
	value, err := strconv.ParseFloat(t.text, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", t.text)
	}
	return value, nil
}

func (t token) vector() (core.Vec3, error) {
	if t.kind != tokenTuple {
		return core.Vec3{}, fmt.Errorf("expected (x, y, z), got %s", t.text)
	}
	parts := strings.Split(t.text, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components in (%s), got %d", t.text, len(parts))
	}
	var values [3]float64
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid component %q in (%s)", strings.TrimSpace(part), t.text)
		}
		values[i] = value
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}

// tokenizeLine splits a line into words, quoted strings and parenthesized
// tuples, dropping everything after an unquoted '#'.
func tokenizeLine(line string) ([]token, error) {
	var tokens []token
	runes := []rune(line)

	for i := 0; i < len(runes); {
		switch r := runes[i]; {
		case r == '#':
			return tokens, nil
		case r == ' ' || r == '\t' || r == '\r':
			i++
		case r == '"':
			end := indexRune(runes, i+1, '"')
			if end < 0 {
				return nil, fmt.Errorf("unterminated string")
			}
			tokens = append(tokens, token{kind: tokenString, text: string(runes[i+1 : end])})
			i = end + 1
		case r == '(':
			end := indexRune(runes, i+1, ')')
			if end < 0 {
				return nil, fmt.Errorf("unterminated tuple")
			}
			tokens = append(tokens, token{kind: tokenTuple, text: string(runes[i+1 : end])})
			i = end + 1
		default:
			start := i
			for i < len(runes) && !strings.ContainsRune(" \t\r\"(#", runes[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenWord, text: string(runes[start:i])})
		}
	}

	return tokens, nil
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}
