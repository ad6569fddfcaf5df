package systems

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

type MaterialSystemConfig struct {
	/** @brief The maximum number of materials that can be loaded at once. */
	MaxMaterialCount uint32
	/** @brief The maximum number of uniforms of each type across all passes. */
	MaxUniformCount uint32
}

type materialReference struct {
	referenceCount uint64
	material       *metadata.Material
	resources      []metadata.GraphicsResource
	// texture parameters and the texture asset each one holds
	textures map[string]string
	// assets the material was built from, itself included
	sources []string
}

type MaterialSystem struct {
	Config     *MaterialSystemConfig
	registered map[string]*materialReference
	pool       metadata.GraphicsDescriptorPool
	// sub systems
	device   metadata.GraphicsDevice
	assets   AssetReader
	textures *TextureSystem
}

func NewMaterialSystem(config *MaterialSystemConfig, device metadata.GraphicsDevice, assets AssetReader, ts *TextureSystem) (*MaterialSystem, error) {
	if config.MaxMaterialCount == 0 {
		err := fmt.Errorf("func NewMaterialSystem - config.MaxMaterialCount must be > 0: %w", core.ErrInvalidDesc)
		core.LogError(err.Error())
		return nil, err
	}
	ms := &MaterialSystem{
		Config:     config,
		registered: make(map[string]*materialReference),
		device:     device,
		assets:     assets,
		textures:   ts,
	}
	if ts != nil {
		ts.OnReload(ms.rebindTexture)
	}
	return ms, nil
}

// Initialize creates the descriptor pool every pass allocates from. A
// material has at most four passes on average.
func (ms *MaterialSystem) Initialize() error {
	desc := metadata.DescriptorPoolDesc{MaxSets: ms.Config.MaxMaterialCount * 4}
	if ms.Config.MaxUniformCount > 0 {
		for typ := metadata.UniformTypeBool; typ <= metadata.UniformTypeBuffer; typ++ {
			desc.Components = append(desc.Components, metadata.DescriptorPoolComponent{Type: typ, Count: ms.Config.MaxUniformCount})
		}
	}
	pool, err := ms.device.CreateDescriptorPool(desc)
	if err != nil {
		return err
	}
	ms.pool = pool
	return nil
}

func (ms *MaterialSystem) Shutdown() error {
	for key, ref := range ms.registered {
		ms.destroy(ref)
		delete(ms.registered, key)
	}
	if ms.pool != nil {
		ms.pool.Close()
		ms.pool = nil
	}
	return nil
}

/**
 * @brief Acquires a material by asset name, building it on first use. The
 * reference counter is incremented.
 */
func (ms *MaterialSystem) Acquire(name string) (*metadata.Material, error) {
	if ms.pool == nil {
		err := fmt.Errorf("material '%s': material system not initialized: %w", name, core.ErrNotSetup)
		core.LogError(err.Error())
		return nil, err
	}
	key := ms.assets.Resolve(name)
	if ref, ok := ms.registered[key]; ok {
		ref.referenceCount++
		return ref.material, nil
	}
	if len(ms.registered) >= int(ms.Config.MaxMaterialCount) {
		err := fmt.Errorf("material '%s': adjust configuration to allow more: %w", name, core.ErrPoolExhausted)
		core.LogError(err.Error())
		return nil, err
	}

	ref, err := ms.build(name)
	if err != nil {
		core.LogError("failed to load material '%s': %s", name, err)
		return nil, err
	}
	ref.referenceCount = 1
	ms.registered[key] = ref
	core.LogDebug("material '%s' loaded with %d techniques", name, len(ref.material.Techs))
	return ref.material, nil
}

func (ms *MaterialSystem) Release(name string) {
	key := ms.assets.Resolve(name)
	ref, ok := ms.registered[key]
	if !ok {
		core.LogWarn("tried to release non-existent material: '%s'", name)
		return
	}
	ref.referenceCount--
	if ref.referenceCount == 0 {
		ms.destroy(ref)
		delete(ms.registered, key)
		core.LogDebug("material '%s' unloaded", name)
	}
}

// Get returns a loaded material without touching its reference count.
func (ms *MaterialSystem) Get(name string) (*metadata.Material, bool) {
	ref, ok := ms.registered[ms.assets.Resolve(name)]
	if !ok {
		return nil, false
	}
	return ref.material, true
}

func (ms *MaterialSystem) Count() int {
	return len(ms.registered)
}

/**
 * @brief Rebuilds every material built from the given asset, a material
 * file or one of its shader files. The *Material, its passes and its
 * parameters keep their identity and their current values; a failed
 * rebuild keeps the old material. Returns how many were rebuilt.
 */
func (ms *MaterialSystem) Reload(name string) int {
	key := ms.assets.Resolve(name)
	n := 0
	for _, ref := range ms.registered {
		if !slices.Contains(ref.sources, key) {
			continue
		}
		fresh, err := ms.build(ref.material.Name)
		if err != nil {
			core.LogWarn("material '%s' kept after failed reload: %s", ref.material.Name, err)
			continue
		}
		ms.swap(ref, fresh)
		n++
		core.LogInfo("material '%s' reloaded", ref.material.Name)
	}
	return n
}

// swap moves the contents of fresh into ref, keeping the pointers handed
// out before. Values assigned at runtime survive, textures come from the
// new definition.
func (ms *MaterialSystem) swap(ref, fresh *materialReference) {
	old, next := ref.material, fresh.material

	for name, param := range next.Params {
		prev := old.Param(name)
		if prev == nil {
			continue
		}
		if linked := prev.Linked(); len(linked) > 0 && param.Type != metadata.UniformTypeTexture {
			for _, set := range param.Linked() {
				set.CopyFrom(linked[0])
			}
		}
		*prev = *param
		next.Params[name] = prev
	}
	for _, tech := range next.Techs {
		prevTech := old.Tech(tech.Queue)
		if prevTech == nil {
			continue
		}
		for i, pass := range tech.Passes {
			if prevPass := prevTech.Pass(pass.Name); prevPass != nil {
				*prevPass = *pass
				tech.Passes[i] = prevPass
			}
		}
	}
	old.Techs, old.Params = next.Techs, next.Params

	ms.destroy(&materialReference{resources: ref.resources, textures: ref.textures})
	ref.resources, ref.textures, ref.sources = fresh.resources, fresh.textures, fresh.sources
}

func (ms *MaterialSystem) destroy(ref *materialReference) {
	for i := len(ref.resources) - 1; i >= 0; i-- {
		ref.resources[i].Close()
	}
	ref.resources = nil
	if ms.textures != nil {
		for _, texture := range ref.textures {
			ms.textures.Release(texture)
		}
	}
	ref.textures = nil
}

func (ms *MaterialSystem) rebindTexture(key string, texture metadata.GraphicsTexture) {
	for _, ref := range ms.registered {
		for param, name := range ref.textures {
			if ms.assets.Resolve(name) == key {
				ref.material.Param(param).SetTexture(texture, nil)
			}
		}
	}
}

func (ms *MaterialSystem) build(name string) (*materialReference, error) {
	data, err := ms.assets.ReadFile(name)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseMaterialConfig(data)
	if err != nil {
		return nil, err
	}

	ref := &materialReference{
		material: &metadata.Material{Name: name, Params: make(map[string]*metadata.MaterialParam)},
		textures: make(map[string]string),
		sources:  []string{ms.assets.Resolve(name)},
	}
	for _, techCfg := range cfg.Techniques {
		queue, _ := parseRenderQueue(techCfg.Queue)
		tech := &metadata.MaterialTech{Name: techCfg.Name, Queue: queue}
		for _, passCfg := range techCfg.Passes {
			pass, err := ms.buildPass(ref, passCfg)
			if err != nil {
				ms.destroy(ref)
				return nil, fmt.Errorf("material '%s' pass '%s': %w", name, passCfg.Name, err)
			}
			tech.Passes = append(tech.Passes, pass)
			for _, set := range pass.DescriptorSet.UniformSets() {
				param, ok := ref.material.Params[set.Name()]
				if !ok {
					param = metadata.NewMaterialParam(set.Name(), set.Type())
					ref.material.Params[set.Name()] = param
				}
				param.Link(set)
			}
		}
		ref.material.Techs = append(ref.material.Techs, tech)
	}

	for pname, value := range cfg.Parameters {
		param := ref.material.Param(pname)
		if param == nil {
			core.LogWarn("material '%s': parameter '%s' is not used by any pass", name, pname)
			continue
		}
		if param.Type == metadata.UniformTypeTexture {
			ms.bindTexture(ref, param, value)
			continue
		}
		if err := applyParameter(param, value); err != nil {
			core.LogWarn("material '%s': %s", name, err)
		}
	}
	return ref, nil
}

func (ms *MaterialSystem) bindTexture(ref *materialReference, param *metadata.MaterialParam, value any) {
	texture, ok := value.(string)
	if !ok || ms.textures == nil {
		core.LogWarn("material '%s': texture parameter '%s' needs an asset name", ref.material.Name, param.Name)
		return
	}
	if texture == DefaultTextureName {
		param.SetTexture(ms.textures.GetDefaultTexture(), nil)
		return
	}
	tex, err := ms.textures.Acquire(texture, true)
	if err != nil {
		param.SetTexture(ms.textures.GetDefaultTexture(), nil)
		return
	}
	ref.textures[param.Name] = texture
	param.SetTexture(tex, nil)
}

func (ms *MaterialSystem) buildPass(ref *materialReference, cfg PassConfig) (*metadata.MaterialPass, error) {
	keep := func(r metadata.GraphicsResource) {
		ref.resources = append(ref.resources, r)
	}

	var shaders []metadata.GraphicsShader
	for _, stage := range []struct {
		stage  metadata.ShaderStage
		inline string
		file   string
	}{
		{metadata.ShaderStageVertex, cfg.Vertex, cfg.VertexFile},
		{metadata.ShaderStageFragment, cfg.Fragment, cfg.FragmentFile},
	} {
		source, err := ms.shaderSource(ref, stage.stage, stage.inline, stage.file)
		if err != nil {
			return nil, err
		}
		shader, err := ms.device.CreateShader(metadata.ShaderDesc{Stage: stage.stage, Main: "main", Source: source})
		if err != nil {
			return nil, err
		}
		keep(shader)
		shaders = append(shaders, shader)
	}

	program, err := ms.device.CreateProgram(metadata.ProgramDesc{Shaders: shaders})
	if err != nil {
		return nil, err
	}
	keep(program)

	var layoutDesc metadata.DescriptorSetLayoutDesc
	for _, u := range program.Uniforms() {
		layoutDesc.AddComponent(u.Name, u.Type, metadata.ShaderStageVertex, metadata.ShaderStageFragment)
	}
	setLayout, err := ms.device.CreateDescriptorSetLayout(layoutDesc)
	if err != nil {
		return nil, err
	}
	keep(setLayout)

	stateDesc, err := cfg.State.desc()
	if err != nil {
		return nil, err
	}
	state, err := ms.device.CreateState(stateDesc)
	if err != nil {
		return nil, err
	}
	keep(state)

	inputDesc, err := cfg.Input.desc(program)
	if err != nil {
		return nil, err
	}
	input, err := ms.device.CreateInputLayout(inputDesc)
	if err != nil {
		return nil, err
	}
	keep(input)

	pipeline, err := ms.device.CreatePipeline(metadata.PipelineDesc{
		Program:             program,
		State:               state,
		InputLayout:         input,
		DescriptorSetLayout: setLayout,
	})
	if err != nil {
		return nil, err
	}
	keep(pipeline)

	set, err := ms.device.CreateDescriptorSet(metadata.DescriptorSetDesc{Layout: setLayout, Pool: ms.pool})
	if err != nil {
		return nil, err
	}
	keep(set)

	return &metadata.MaterialPass{Name: cfg.Name, Pipeline: pipeline, DescriptorSet: set}, nil
}

var errNoShader = errors.New("no shader source")

func (ms *MaterialSystem) shaderSource(ref *materialReference, stage metadata.ShaderStage, inline, file string) (string, error) {
	body := inline
	if file != "" {
		data, err := ms.assets.ReadFile(file)
		if err != nil {
			return "", err
		}
		ref.sources = append(ref.sources, ms.assets.Resolve(file))
		body = string(data)
	}
	if body == "" {
		return "", fmt.Errorf("%s stage: %w: %w", stage, errNoShader, core.ErrInvalidDesc)
	}
	return ShaderHeader(ms.device.Desc().Type, stage) + body, nil
}

/**
 * @brief The preamble prepended to every shader. It selects the GLSL
 * dialect of the device and defines IN, OUT, TEXTURE and FRAG_COLOR so a
 * single source compiles as GLSL 330, GLSL ES 100 and GLSL ES 300.
 */
func ShaderHeader(device metadata.DeviceType, stage metadata.ShaderStage) string {
	var header string
	switch device {
	case metadata.DeviceTypeOpenGLES2:
		header = "#version 100\nprecision mediump float;\n#define RAY_GLES2 1\n#define TEXTURE texture2D\n"
		if stage == metadata.ShaderStageVertex {
			return header + "#define IN attribute\n#define OUT varying\n"
		}
		return header + "#define IN varying\n#define FRAG_COLOR gl_FragColor\n"
	case metadata.DeviceTypeOpenGLES3:
		header = "#version 300 es\nprecision highp float;\n#define RAY_GLES3 1\n"
	default:
		header = "#version 330 core\n#define RAY_GL 1\n"
	}
	header += "#define TEXTURE texture\n"
	if stage == metadata.ShaderStageVertex {
		return header + "#define IN in\n#define OUT out\n"
	}
	return header + "#define IN in\nout vec4 ray_FragColor;\n#define FRAG_COLOR ray_FragColor\n"
}
