package systems

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/math"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
	"gopkg.in/yaml.v3"
)

// MaterialConfig is the on-disk form of a material.
type MaterialConfig struct {
	Name string `yaml:"name"`
	// Parameter defaults. Numbers, lists of two to four numbers and
	// texture names are accepted.
	Parameters map[string]any    `yaml:"parameters,omitempty"`
	Techniques []TechniqueConfig `yaml:"techniques"`
}

type TechniqueConfig struct {
	Name   string       `yaml:"name,omitempty"`
	Queue  string       `yaml:"queue"`
	Passes []PassConfig `yaml:"passes"`
}

// PassConfig holds the shaders of a pass, either inline or as asset names.
type PassConfig struct {
	Name         string      `yaml:"name"`
	Vertex       string      `yaml:"vertex,omitempty"`
	VertexFile   string      `yaml:"vertex_file,omitempty"`
	Fragment     string      `yaml:"fragment,omitempty"`
	FragmentFile string      `yaml:"fragment_file,omitempty"`
	State        StateConfig `yaml:"state,omitempty"`
	Input        InputConfig `yaml:"input,omitempty"`
}

// StateConfig overrides metadata.DefaultStateDesc; unset fields keep it.
type StateConfig struct {
	Cull       string `yaml:"cull,omitempty"`
	Fill       string `yaml:"fill,omitempty"`
	DepthTest  *bool  `yaml:"depth_test,omitempty"`
	DepthWrite *bool  `yaml:"depth_write,omitempty"`
	DepthFunc  string `yaml:"depth_func,omitempty"`
	Blend      *bool  `yaml:"blend,omitempty"`
}

type InputConfig struct {
	Topology   string            `yaml:"topology,omitempty"`
	Attributes []AttributeConfig `yaml:"attributes,omitempty"`
}

type AttributeConfig struct {
	Name   string `yaml:"name"`
	Index  uint32 `yaml:"index,omitempty"`
	Format string `yaml:"format"`
	Slot   uint32 `yaml:"slot,omitempty"`
}

func ParseMaterialConfig(data []byte) (*MaterialConfig, error) {
	var cfg MaterialConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("material: %w: %w", core.ErrInvalidDesc, err)
	}
	if len(cfg.Techniques) == 0 {
		return nil, fmt.Errorf("material '%s': no techniques: %w", cfg.Name, core.ErrInvalidDesc)
	}
	for _, tech := range cfg.Techniques {
		if _, err := parseRenderQueue(tech.Queue); err != nil {
			return nil, err
		}
		for _, pass := range tech.Passes {
			if pass.Name == "" {
				return nil, fmt.Errorf("material '%s': unnamed pass in %s: %w", cfg.Name, tech.Queue, core.ErrInvalidDesc)
			}
		}
	}
	return &cfg, nil
}

func parseRenderQueue(s string) (metadata.RenderQueue, error) {
	switch strings.ToLower(s) {
	case "", "opaque":
		return metadata.RenderQueueOpaque, nil
	case "transparent":
		return metadata.RenderQueueTransparent, nil
	case "lighting":
		return metadata.RenderQueueLighting, nil
	case "postprocess":
		return metadata.RenderQueuePostprocess, nil
	}
	return 0, fmt.Errorf("unknown render queue '%s': %w", s, core.ErrInvalidDesc)
}

func (c StateConfig) desc() (metadata.StateDesc, error) {
	state := metadata.DefaultStateDesc()
	switch strings.ToLower(c.Cull) {
	case "":
	case "none":
		state.CullMode = metadata.CullModeNone
	case "front":
		state.CullMode = metadata.CullModeFront
	case "back":
		state.CullMode = metadata.CullModeBack
	case "front_back":
		state.CullMode = metadata.CullModeFrontBack
	default:
		return state, fmt.Errorf("unknown cull mode '%s': %w", c.Cull, core.ErrInvalidDesc)
	}
	switch strings.ToLower(c.Fill) {
	case "":
	case "solid":
		state.FillMode = metadata.FillModeSolid
	case "wireframe":
		state.FillMode = metadata.FillModeWireframe
	case "point":
		state.FillMode = metadata.FillModePoint
	default:
		return state, fmt.Errorf("unknown fill mode '%s': %w", c.Fill, core.ErrInvalidDesc)
	}
	if c.DepthTest != nil {
		state.DepthEnable = *c.DepthTest
	}
	if c.DepthWrite != nil {
		state.DepthWrite = *c.DepthWrite
	}
	if c.DepthFunc != "" {
		fn, ok := compareFunctions[strings.ToLower(c.DepthFunc)]
		if !ok {
			return state, fmt.Errorf("unknown depth function '%s': %w", c.DepthFunc, core.ErrInvalidDesc)
		}
		state.DepthFunc = fn
	}
	if c.Blend != nil {
		state.Blends[0].Enable = *c.Blend
	}
	return state, nil
}

var compareFunctions = map[string]metadata.CompareFunction{
	"never":     metadata.CompareFunctionNever,
	"less":      metadata.CompareFunctionLess,
	"equal":     metadata.CompareFunctionEqual,
	"lequal":    metadata.CompareFunctionLequal,
	"greater":   metadata.CompareFunctionGreater,
	"not_equal": metadata.CompareFunctionNotEqual,
	"gequal":    metadata.CompareFunctionGequal,
	"always":    metadata.CompareFunctionAlways,
}

var topologies = map[string]metadata.VertexType{
	"":                 metadata.VertexTypeTriangle,
	"point":            metadata.VertexTypePoint,
	"line":             metadata.VertexTypeLine,
	"triangle":         metadata.VertexTypeTriangle,
	"fan":              metadata.VertexTypeFan,
	"point_or_line":    metadata.VertexTypePointOrLine,
	"triangle_or_line": metadata.VertexTypeTriangleOrLine,
	"fan_or_line":      metadata.VertexTypeFanOrLine,
}

var vertexFormats = map[string]metadata.VertexFormat{
	"float":   metadata.VertexFormatFloat,
	"float2":  metadata.VertexFormatFloat2,
	"float3":  metadata.VertexFormatFloat3,
	"float4":  metadata.VertexFormatFloat4,
	"int":     metadata.VertexFormatInt,
	"int2":    metadata.VertexFormatInt2,
	"int3":    metadata.VertexFormatInt3,
	"int4":    metadata.VertexFormatInt4,
	"uint":    metadata.VertexFormatUint,
	"uchar4":  metadata.VertexFormatUchar4,
	"char4":   metadata.VertexFormatChar4,
	"short2":  metadata.VertexFormatShort2,
	"short4":  metadata.VertexFormatShort4,
	"ushort2": metadata.VertexFormatUshort2,
	"ushort4": metadata.VertexFormatUshort4,
}

// desc builds the input layout. Without attributes it follows the program
// inputs in reflection order, all in slot 0.
func (c InputConfig) desc(program metadata.GraphicsProgram) (metadata.InputLayoutDesc, error) {
	var layout metadata.InputLayoutDesc
	topology, ok := topologies[strings.ToLower(c.Topology)]
	if !ok {
		return layout, fmt.Errorf("unknown topology '%s': %w", c.Topology, core.ErrInvalidDesc)
	}
	layout.Topology = topology

	if len(c.Attributes) == 0 {
		for _, attr := range program.Attributes() {
			layout.AddComponent(metadata.NewVertexComponent(attr.Name, 0, attr.Format))
		}
		return layout, nil
	}
	for _, attr := range c.Attributes {
		format, ok := vertexFormats[strings.ToLower(attr.Format)]
		if !ok {
			return layout, fmt.Errorf("attribute '%s': unknown format '%s': %w", attr.Name, attr.Format, core.ErrInvalidDesc)
		}
		component := metadata.NewVertexComponent(attr.Name, attr.Index, format)
		component.Slot = attr.Slot
		layout.AddComponent(component)
	}
	return layout, nil
}

// applyParameter writes a YAML default into a parameter. Texture values
// are asset names and are handled by the caller.
func applyParameter(param *metadata.MaterialParam, value any) error {
	switch param.Type {
	case metadata.UniformTypeBool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("parameter '%s': expected bool, got %T: %w", param.Name, value, core.ErrInvalidDesc)
		}
		param.SetBool(b)
	case metadata.UniformTypeInt:
		n, ok := value.(int)
		if !ok {
			return fmt.Errorf("parameter '%s': expected int, got %T: %w", param.Name, value, core.ErrInvalidDesc)
		}
		param.SetInt(int32(n))
	case metadata.UniformTypeFloat:
		f, ok := toFloat(value)
		if !ok {
			return fmt.Errorf("parameter '%s': expected number, got %T: %w", param.Name, value, core.ErrInvalidDesc)
		}
		param.SetFloat(f)
	case metadata.UniformTypeFloat2, metadata.UniformTypeFloat3, metadata.UniformTypeFloat4:
		want := int(param.Type-metadata.UniformTypeFloat2) + 2
		v, err := toVector(param.Name, value, want)
		if err != nil {
			return err
		}
		switch want {
		case 2:
			param.SetFloat2(math.NewVec2(v[0], v[1]))
		case 3:
			param.SetFloat3(math.NewVec3(v[0], v[1], v[2]))
		default:
			param.SetFloat4(math.NewVec4(v[0], v[1], v[2], v[3]))
		}
	default:
		return fmt.Errorf("parameter '%s' of type %s has no default form: %w", param.Name, param.Type, core.ErrUnsupported)
	}
	return nil
}

func toFloat(value any) (float32, bool) {
	switch v := value.(type) {
	case int:
		return float32(v), true
	case float64:
		return float32(v), true
	}
	return 0, false
}

func toVector(name string, value any, want int) ([]float32, error) {
	list, ok := value.([]any)
	if !ok || len(list) != want {
		return nil, fmt.Errorf("parameter '%s': expected a list of %d numbers: %w", name, want, core.ErrInvalidDesc)
	}
	out := make([]float32, want)
	for i, e := range list {
		f, ok := toFloat(e)
		if !ok {
			return nil, fmt.Errorf("parameter '%s': element %d is %T: %w", name, i, e, core.ErrInvalidDesc)
		}
		out[i] = f
	}
	return out, nil
}
