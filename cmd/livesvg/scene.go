package main

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/benoitkugler/livesvg/svgelem"
	"github.com/benoitkugler/livesvg/svgrender"
)

// Scene is the YAML description of a drawing: containers first, then
// shapes, both replayed in declaration order.
type Scene struct {
	ViewBox    []float64       `yaml:"viewBox"`
	Background string          `yaml:"background"`
	Containers []ContainerDecl `yaml:"containers"`
	Shapes     []ShapeDecl     `yaml:"shapes"`
}

// ContainerDecl declares a named group. An empty In targets the svg
// root; otherwise it names a previously declared container.
type ContainerDecl struct {
	Name string `yaml:"name"`
	In   string `yaml:"in"`
}

// ShapeDecl declares one rendered figure, either as a preset (Kind
// plus its coordinates in Args) or as an explicit element (Tag).
// Attrs entries are applied on top in either case.
type ShapeDecl struct {
	Name   string            `yaml:"name"`
	In     string            `yaml:"in"`
	Kind   string            `yaml:"kind"`
	Args   []float64         `yaml:"args"`
	Tag    string            `yaml:"tag"`
	Attrs  map[string]string `yaml:"attrs"`
	At     []float64         `yaml:"at"`
	Hidden bool              `yaml:"hidden"`
}

// LoadScene parses and validates a YAML scene description.
func LoadScene(data []byte) (Scene, error) {
	var sc Scene
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scene{}, fmt.Errorf("parse scene: %w", err)
	}
	if n := len(sc.ViewBox); n != 0 && n != 4 {
		return Scene{}, fmt.Errorf("viewBox needs 4 numbers, got %d", n)
	}
	if sc.Background != "" {
		if _, err := svgelem.ParseHex(sc.Background); err != nil {
			return Scene{}, fmt.Errorf("background: %w", err)
		}
	}
	for i, c := range sc.Containers {
		if c.Name == "" {
			return Scene{}, fmt.Errorf("container %d: missing name", i)
		}
	}
	for i, s := range sc.Shapes {
		if _, err := s.element(); err != nil {
			return Scene{}, fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return sc, nil
}

// Build replays the scene onto r.
func Build(sc Scene, r *svgrender.Renderer) error {
	for _, c := range sc.Containers {
		var parent *svgrender.Container
		if c.In != "" {
			p, err := r.ContainerByName(c.In)
			if err != nil {
				return fmt.Errorf("container %q: %w", c.Name, err)
			}
			parent = p
		}
		if _, err := r.CreateContainer(c.Name, parent); err != nil {
			return fmt.Errorf("container %q: %w", c.Name, err)
		}
	}
	for i, s := range sc.Shapes {
		el, err := s.element()
		if err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
		at := svgelem.Pt(0, 0)
		if len(s.At) == 2 {
			at = svgelem.Pt(s.At[0], s.At[1])
		}
		inst, err := s.render(r, el, at)
		if err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
		if s.Hidden {
			if err := r.Hide(inst); err != nil {
				return fmt.Errorf("shape %d: %w", i, err)
			}
		}
	}
	return nil
}

func (s ShapeDecl) render(r *svgrender.Renderer, el svgelem.Element, at svgelem.Point) (*svgrender.Instance, error) {
	if s.In != "" {
		c, err := r.ContainerByName(s.In)
		if err != nil {
			return nil, err
		}
		if s.Name != "" {
			return r.RenderNamedIn(s.Name, c, el, at)
		}
		return r.RenderIn(c, el, at)
	}
	if s.Name != "" {
		return r.RenderNamed(s.Name, el, at)
	}
	return r.Render(el, at)
}

func (s ShapeDecl) element() (svgelem.Element, error) {
	var el svgelem.Element
	switch {
	case s.Tag != "" && s.Kind != "":
		return el, fmt.Errorf("kind and tag are exclusive")
	case s.Tag != "":
		tag := svgelem.Tag(s.Tag)
		if !tag.Valid() {
			return el, fmt.Errorf("unknown tag %q", s.Tag)
		}
		el = svgelem.New(tag)
	case s.Kind != "":
		built, err := presetElement(s.Kind, s.Args)
		if err != nil {
			return el, err
		}
		el = built
	default:
		return el, fmt.Errorf("a shape needs a kind or a tag")
	}
	if n := len(s.At); n != 0 && n != 2 {
		return el, fmt.Errorf("at needs 2 coordinates, got %d", n)
	}
	// sorted for a stable markup output
	names := make([]string, 0, len(s.Attrs))
	for name := range s.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		el = el.Set(name, s.Attrs[name])
	}
	return el, nil
}

func presetElement(kind string, args []float64) (svgelem.Element, error) {
	pt := func(i int) svgelem.Point { return svgelem.Pt(args[i], args[i+1]) }
	switch kind {
	case "circle":
		if len(args) != 1 {
			return svgelem.Element{}, fmt.Errorf("circle needs [radius], got %d numbers", len(args))
		}
		return svgelem.Circle(args[0]), nil
	case "rect":
		if len(args) != 2 {
			return svgelem.Element{}, fmt.Errorf("rect needs [width, height], got %d numbers", len(args))
		}
		return svgelem.Rect(args[0], args[1]), nil
	case "line":
		if len(args) != 4 {
			return svgelem.Element{}, fmt.Errorf("line needs [x1, y1, x2, y2], got %d numbers", len(args))
		}
		return svgelem.Line(pt(0), pt(2)), nil
	case "curve":
		if len(args) != 8 {
			return svgelem.Element{}, fmt.Errorf("curve needs its 4 points, got %d numbers", len(args))
		}
		return svgelem.Curve(pt(0), pt(2), pt(4), pt(6)), nil
	case "polygon":
		if len(args) < 4 || len(args)%2 != 0 {
			return svgelem.Element{}, fmt.Errorf("polygon needs an even number of coordinates, at least 4")
		}
		pts := make([]svgelem.Point, len(args)/2)
		for i := range pts {
			pts[i] = pt(2 * i)
		}
		return svgelem.Polygon(pts...), nil
	}
	return svgelem.Element{}, fmt.Errorf("unknown shape kind %q", kind)
}
