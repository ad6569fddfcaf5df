package systems

import (
	"encoding/binary"
	"fmt"
	gomath "math"
	"slices"

	"github.com/google/uuid"
	"github.com/spaghettifunk/ray/engine/config"
	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/math"
	"github.com/spaghettifunk/ray/engine/renderer/components"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
	"github.com/spaghettifunk/ray/engine/renderer/postprocess"
)

// BlitMaterial copies the final image to the window.
const BlitMaterial = "sys:fx/blit.yaml"

/** @brief What the render pipeline draws with. */
type RenderSetting struct {
	Wireframe    bool
	SwapInterval metadata.SwapInterval
	ClearColor   math.Vec4
	PostProcess  config.PostProcessConfig
}

func NewRenderSetting(cfg config.RendererConfig) RenderSetting {
	return RenderSetting{
		Wireframe:    cfg.Wireframe,
		SwapInterval: metadata.SwapInterval(cfg.SwapInterval),
		ClearColor:   math.NewVec4(0, 0, 0, 1),
		PostProcess:  cfg.PostProcess,
	}
}

// builtinStages are added in this order, which is their order inside a
// render queue.
var builtinStages = []struct {
	name    string
	enabled func(config.PostProcessConfig) bool
	create  func(config.PostProcessConfig) postprocess.RenderPostProcess
}{
	{"ssao", func(c config.PostProcessConfig) bool { return c.SSAO },
		func(config.PostProcessConfig) postprocess.RenderPostProcess { return postprocess.NewSSAO() }},
	{"fog", func(c config.PostProcessConfig) bool { return c.Fog },
		func(config.PostProcessConfig) postprocess.RenderPostProcess { return postprocess.NewFog() }},
	{"dof", func(c config.PostProcessConfig) bool { return c.DOF },
		func(config.PostProcessConfig) postprocess.RenderPostProcess { return postprocess.NewDepthOfField() }},
	{"tonemapping", func(c config.PostProcessConfig) bool { return c.ToneMapping },
		func(config.PostProcessConfig) postprocess.RenderPostProcess { return postprocess.NewToneMapping() }},
	{"colorgrading", func(c config.PostProcessConfig) bool { return c.ColorGrading },
		func(c config.PostProcessConfig) postprocess.RenderPostProcess {
			return postprocess.NewColorGrading(c.ColorGradingLookup)
		}},
	{"fxaa", func(c config.PostProcessConfig) bool { return c.FXAA },
		func(config.PostProcessConfig) postprocess.RenderPostProcess { return postprocess.NewFXAA() }},
}

type renderTarget struct {
	framebuffer metadata.GraphicsFramebuffer
	color       metadata.GraphicsTexture
	depth       metadata.GraphicsTexture
}

func (t *renderTarget) close() {
	for _, r := range []metadata.GraphicsResource{t.framebuffer, t.color, t.depth} {
		if r != nil {
			r.Close()
		}
	}
	*t = renderTarget{}
}

/**
 * @brief Draws scenes into a pair of offscreen framebuffers, runs the
 * post-process stages over them and presents the result.
 */
type RenderPipelineManager struct {
	device    metadata.GraphicsDevice
	context   metadata.GraphicsContext
	swapchain metadata.GraphicsSwapchain
	materials *MaterialSystem
	textures  *TextureSystem

	setting  RenderSetting
	builtins map[string]postprocess.RenderPostProcess
	stages   []postprocess.RenderPostProcess

	camera           *components.Camera
	transform        math.Mat4
	transformInverse math.Mat4

	clock     *core.Clock
	metrics   *core.FrameMetrics
	lastFrame float64

	windowWidth, windowHeight           uint32
	framebufferWidth, framebufferHeight uint32
	framebufferLayout                   metadata.GraphicsFramebufferLayout
	targets                             [2]renderTarget

	quad       metadata.GraphicsData
	quadLayout metadata.GraphicsInputLayout
	blit       *metadata.Material
	blitPass   *metadata.MaterialPass
	texSource  *metadata.MaterialParam

	isSetup bool
}

var _ postprocess.Pipeline = (*RenderPipelineManager)(nil)

func NewRenderPipelineManager(ms *MaterialSystem, ts *TextureSystem) *RenderPipelineManager {
	return &RenderPipelineManager{
		materials:        ms,
		textures:         ts,
		builtins:         make(map[string]postprocess.RenderPostProcess),
		camera:           components.NewCamera(),
		transform:        math.NewMat4Identity(),
		transformInverse: math.NewMat4Identity(),
		clock:            core.NewClock(),
		metrics:          core.NewFrameMetrics(),
	}
}

/**
 * @brief Creates the offscreen targets, the screen quad and the blit
 * material, then applies the setting. Failing to build any of them fails
 * the setup.
 */
func (m *RenderPipelineManager) Setup(device metadata.GraphicsDevice, context metadata.GraphicsContext, swapchain metadata.GraphicsSwapchain, setting RenderSetting) error {
	if m.isSetup {
		err := fmt.Errorf("render pipeline: %w", core.ErrAlreadySetup)
		core.LogError(err.Error())
		return err
	}
	if device == nil || context == nil || swapchain == nil {
		err := fmt.Errorf("render pipeline: missing device, context or swapchain: %w", core.ErrInvalidDesc)
		core.LogError(err.Error())
		return err
	}
	m.device, m.context, m.swapchain = device, context, swapchain

	if err := m.createScreenQuad(); err != nil {
		m.Close()
		return err
	}
	blit, err := m.materials.Acquire(BlitMaterial)
	if err != nil {
		m.Close()
		return err
	}
	m.blit = blit
	if tech := blit.Tech(metadata.RenderQueuePostprocess); tech != nil {
		m.blitPass = tech.Pass("blit")
	}
	if m.blitPass == nil {
		m.Close()
		err := fmt.Errorf("render pipeline: '%s' has no postprocess pass 'blit': %w", BlitMaterial, core.ErrInvalidDesc)
		core.LogError(err.Error())
		return err
	}
	m.texSource = blit.Param("texSource")

	width, height := swapchain.WindowResolution()
	m.windowWidth, m.windowHeight = width, height
	// the swapchain is sized in framebuffer pixels already
	fbWidth, fbHeight := width, height
	if err := m.createTargets(fbWidth, fbHeight); err != nil {
		m.Close()
		return err
	}
	m.framebufferWidth, m.framebufferHeight = fbWidth, fbHeight
	m.camera.SetAperture(float32(fbWidth) / float32(max(fbHeight, 1)))

	m.isSetup = true
	m.SetRenderSetting(setting)
	m.clock.Start()
	core.LogInfo("render pipeline ready at %dx%d (framebuffer %dx%d)", width, height, fbWidth, fbHeight)
	return nil
}

func (m *RenderPipelineManager) IsSetup() bool {
	return m.isSetup
}

// Close destroys the stages and everything Setup created. Calling it again
// does nothing.
func (m *RenderPipelineManager) Close() {
	for _, stage := range slices.Clone(m.stages) {
		m.DestroyPostProcess(stage)
	}
	clear(m.builtins)
	if m.blit != nil {
		m.materials.Release(m.blit.Name)
		m.blit, m.blitPass, m.texSource = nil, nil, nil
	}
	for i := range m.targets {
		m.targets[i].close()
	}
	for _, r := range []metadata.GraphicsResource{m.framebufferLayout, m.quadLayout, m.quad} {
		if r != nil {
			r.Close()
		}
	}
	m.framebufferLayout, m.quadLayout, m.quad = nil, nil, nil
	if m.isSetup {
		m.clock.Stop()
		core.LogDebug("render pipeline closed")
	}
	m.isSetup = false
}

func (m *RenderPipelineManager) createScreenQuad() error {
	vertices := []float32{
		-1, -1, 1, -1, 1, 1,
		-1, -1, 1, 1, -1, 1,
	}
	stream := make([]byte, 0, len(vertices)*4)
	for _, v := range vertices {
		stream = binary.LittleEndian.AppendUint32(stream, gomath.Float32bits(v))
	}
	quad, err := m.device.CreateGraphicsData(metadata.DataDesc{
		Type:   metadata.DataTypeVertex,
		Usage:  metadata.UsageImmutableBit,
		Stride: 8,
		Stream: stream,
	})
	if err != nil {
		return err
	}
	m.quad = quad

	var layout metadata.InputLayoutDesc
	layout.Topology = metadata.VertexTypeTriangle
	layout.AddComponent(metadata.NewVertexComponent("position", 0, metadata.VertexFormatFloat2))
	quadLayout, err := m.device.CreateInputLayout(layout)
	if err != nil {
		return err
	}
	m.quadLayout = quadLayout
	return nil
}

// depthFormat picks the best depth format the device can render to.
func (m *RenderPipelineManager) depthFormat() metadata.TextureFormat {
	props := m.device.Properties()
	for _, f := range []metadata.TextureFormat{metadata.TextureFormatDepth24Stencil8, metadata.TextureFormatDepthComponent24, metadata.TextureFormatDepthComponent16} {
		if props.IsTextureSupport(f) {
			return f
		}
	}
	return metadata.TextureFormatUndefined
}

func (m *RenderPipelineManager) createTargets(width, height uint32) error {
	depthFormat := m.depthFormat()
	if m.framebufferLayout == nil {
		var layout metadata.FramebufferLayoutDesc
		if err := layout.AddComponent(metadata.NewAttachment(0, metadata.ImageLayoutColorAttachmentOptimal, metadata.TextureFormatR8G8B8A8)); err != nil {
			return err
		}
		if depthFormat != metadata.TextureFormatUndefined {
			if err := layout.AddComponent(metadata.NewAttachment(1, metadata.ImageLayoutDepthStencilAttachmentOptimal, depthFormat)); err != nil {
				return err
			}
		}
		fl, err := m.device.CreateFramebufferLayout(layout)
		if err != nil {
			return err
		}
		m.framebufferLayout = fl
	}

	// the current targets stay bound until the whole new pair is built
	var next [2]renderTarget
	for i := range next {
		if err := m.createTarget(&next[i], width, height, depthFormat); err != nil {
			for j := range next {
				next[j].close()
			}
			return err
		}
	}
	for i := range m.targets {
		m.targets[i].close()
	}
	m.targets = next
	return nil
}

func (m *RenderPipelineManager) createTarget(target *renderTarget, width, height uint32, depthFormat metadata.TextureFormat) error {
	colorDesc := metadata.NewTextureDesc(width, height, metadata.TextureDim2D, metadata.TextureFormatR8G8B8A8)
	colorDesc.Name = "rt:" + uuid.NewString()
	colorDesc.SamplerWrap = metadata.SamplerWrapClampToEdge
	colorDesc.Flags = metadata.TextureFlagRenderTarget
	color, err := m.device.CreateTexture(colorDesc)
	if err != nil {
		return err
	}
	target.color = color

	desc := metadata.FramebufferDesc{Width: width, Height: height, Layout: m.framebufferLayout}
	if err := desc.Attach(color); err != nil {
		return err
	}
	if depthFormat != metadata.TextureFormatUndefined {
		depthDesc := metadata.NewTextureDesc(width, height, metadata.TextureDim2D, depthFormat)
		depthDesc.Name = "rt:" + uuid.NewString()
		depthDesc.SamplerWrap = metadata.SamplerWrapClampToEdge
		depthDesc.SamplerFilter = metadata.SamplerFilterNearest
		depthDesc.Flags = metadata.TextureFlagRenderTarget
		depth, err := m.device.CreateTexture(depthDesc)
		if err != nil {
			return err
		}
		target.depth = depth
		desc.SharedDepthStencilTexture = depth
	}
	framebuffer, err := m.device.CreateFramebuffer(desc)
	if err != nil {
		return err
	}
	target.framebuffer = framebuffer
	return nil
}

/**
 * @brief Applies a setting: wireframe, swap interval, clear color, and the
 * built-in stages, which are added or destroyed to match their toggles.
 */
func (m *RenderPipelineManager) SetRenderSetting(setting RenderSetting) {
	if !m.isSetup {
		m.setting = setting
		return
	}
	m.context.SetWireframe(setting.Wireframe)
	m.swapchain.SetSwapInterval(setting.SwapInterval)

	lookupChanged := setting.PostProcess.ColorGradingLookup != m.setting.PostProcess.ColorGradingLookup
	for _, b := range builtinStages {
		stage, present := m.builtins[b.name]
		wanted := b.enabled(setting.PostProcess)
		if present && (!wanted || (b.name == "colorgrading" && lookupChanged)) {
			m.DestroyPostProcess(stage)
			delete(m.builtins, b.name)
			present = false
		}
		if wanted && !present {
			stage = b.create(setting.PostProcess)
			if err := m.AddPostProcess(stage); err != nil {
				core.LogWarn("post process '%s' skipped: %s", b.name, err)
				continue
			}
			m.builtins[b.name] = stage
		}
	}
	m.setting = setting
}

func (m *RenderPipelineManager) RenderSetting() RenderSetting {
	return m.setting
}

// PostProcess returns a built-in stage by name ("fog", "fxaa", "ssao",
// "dof", "tonemapping", "colorgrading") when it is enabled.
func (m *RenderPipelineManager) PostProcess(name string) (postprocess.RenderPostProcess, bool) {
	stage, ok := m.builtins[name]
	return stage, ok
}

func (m *RenderPipelineManager) PostProcesses() []postprocess.RenderPostProcess {
	return m.stages
}

/**
 * @brief Activates a stage and inserts it after every stage of the same
 * or an earlier render queue. A stage failing to activate is not added.
 */
func (m *RenderPipelineManager) AddPostProcess(stage postprocess.RenderPostProcess) error {
	if slices.Contains(m.stages, stage) {
		return nil
	}
	stage.SetPipeline(m)
	if err := stage.SetActive(true); err != nil {
		core.LogError("post process activation failed: %s", err)
		return err
	}
	at := len(m.stages)
	for i, s := range m.stages {
		if s.RenderQueue() > stage.RenderQueue() {
			at = i
			break
		}
	}
	m.stages = slices.Insert(m.stages, at, stage)
	stage.OnResolutionChange(m, m.framebufferWidth, m.framebufferHeight)
	return nil
}

// RemovePostProcess unlinks a stage and leaves it active.
func (m *RenderPipelineManager) RemovePostProcess(stage postprocess.RenderPostProcess) {
	if i := slices.Index(m.stages, stage); i >= 0 {
		m.stages = slices.Delete(m.stages, i, i+1)
	}
}

// DestroyPostProcess deactivates and unlinks a stage.
func (m *RenderPipelineManager) DestroyPostProcess(stage postprocess.RenderPostProcess) {
	m.RemovePostProcess(stage)
	if err := stage.SetActive(false); err != nil {
		core.LogWarn("post process deactivation failed: %s", err)
	}
	for name, s := range m.builtins {
		if s == stage {
			delete(m.builtins, name)
		}
	}
}

// SetWindowResolution takes the new framebuffer size of the window and
// resizes the offscreen targets to match.
func (m *RenderPipelineManager) SetWindowResolution(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	m.windowWidth, m.windowHeight = width, height
	if m.swapchain != nil {
		m.swapchain.SetWindowResolution(width, height)
		m.SetFramebufferSize(width, height)
	}
}

func (m *RenderPipelineManager) WindowResolution() (uint32, uint32) {
	return m.windowWidth, m.windowHeight
}

// SetFramebufferSize recreates the offscreen targets and tells every stage.
func (m *RenderPipelineManager) SetFramebufferSize(width, height uint32) {
	if !m.isSetup || width == 0 || height == 0 {
		return
	}
	if width == m.framebufferWidth && height == m.framebufferHeight {
		return
	}
	if err := m.createTargets(width, height); err != nil {
		core.LogError("render pipeline: resize to %dx%d failed: %s", width, height, err)
		return
	}
	m.framebufferWidth, m.framebufferHeight = width, height
	m.camera.SetAperture(float32(width) / float32(height))
	for _, stage := range m.stages {
		stage.OnResolutionChange(m, width, height)
	}
}

func (m *RenderPipelineManager) FramebufferSize() (uint32, uint32) {
	return m.framebufferWidth, m.framebufferHeight
}

// RenderBegin advances the frame clock and clears the scene target.
func (m *RenderPipelineManager) RenderBegin() {
	m.clock.Update()
	now := m.clock.Elapsed()
	m.metrics.Update(now - m.lastFrame)
	m.lastFrame = now

	target := m.targets[0].framebuffer
	m.context.SetFramebuffer(target)
	m.context.SetViewport(0, metadata.NewViewport(0, 0, float32(m.framebufferWidth), float32(m.framebufferHeight)))
	m.context.ClearFramebuffer(0, metadata.ClearFlagAll, m.setting.ClearColor, 1, 0)
}

// RenderEnd presents the frame.
func (m *RenderPipelineManager) RenderEnd() {
	m.context.Present()
}

// Metrics returns the frames per second and the average frame time in
// milliseconds.
func (m *RenderPipelineManager) Metrics() (float64, float64) {
	return m.metrics.Frame()
}

func (m *RenderPipelineManager) SetCamera(camera *components.Camera) {
	if camera != nil {
		m.camera = camera
	}
}

func (m *RenderPipelineManager) Camera() *components.Camera {
	return m.camera
}

func (m *RenderPipelineManager) SetViewport(i uint32, viewport metadata.Viewport) {
	m.context.SetViewport(i, viewport)
}

func (m *RenderPipelineManager) Viewport(i uint32) metadata.Viewport {
	return m.context.Viewport(i)
}

func (m *RenderPipelineManager) SetScissor(i uint32, scissor metadata.Scissor) {
	m.context.SetScissor(i, scissor)
}

func (m *RenderPipelineManager) Scissor(i uint32) metadata.Scissor {
	return m.context.Scissor(i)
}

// SetTransform sets the model matrix of the next draws and derives its
// inverse.
func (m *RenderPipelineManager) SetTransform(transform math.Mat4) {
	m.transform = transform
	m.transformInverse = transform.Inverse()
}

// SetTransformInverse overrides the inverse derived by SetTransform.
func (m *RenderPipelineManager) SetTransformInverse(inverse math.Mat4) {
	m.transformInverse = inverse
}

func (m *RenderPipelineManager) Transform() math.Mat4 {
	return m.transform
}

func (m *RenderPipelineManager) SetFramebuffer(target metadata.GraphicsFramebuffer) {
	m.context.SetFramebuffer(target)
}

func (m *RenderPipelineManager) ClearFramebuffer(flags metadata.ClearFlags, color math.Vec4, depth float32, stencil int32) {
	m.context.ClearFramebuffer(0, flags, color, depth, stencil)
}

func (m *RenderPipelineManager) DiscardFramebuffer(target metadata.GraphicsFramebuffer, attachments []uint32) {
	m.context.DiscardFramebuffer(target, attachments)
}

/**
 * @brief Binds a pass and fills the built-in uniforms it declares: model,
 * modelInverse, view, projection, viewProjection, cameraPosition, time and
 * resolution.
 */
func (m *RenderPipelineManager) SetMaterialPass(pass *metadata.MaterialPass) {
	if pass == nil {
		return
	}
	m.context.SetRenderPipeline(pass.Pipeline)
	m.context.SetDescriptorSet(pass.DescriptorSet)
	set := pass.DescriptorSet
	if set == nil {
		return
	}
	if u := set.UniformSet("model"); u != nil {
		u.SetFloat4x4(m.transform)
	}
	if u := set.UniformSet("modelInverse"); u != nil {
		u.SetFloat4x4(m.transformInverse)
	}
	if u := set.UniformSet("view"); u != nil {
		u.SetFloat4x4(m.camera.View())
	}
	if u := set.UniformSet("projection"); u != nil {
		u.SetFloat4x4(m.camera.Projection())
	}
	if u := set.UniformSet("viewProjection"); u != nil {
		u.SetFloat4x4(m.camera.ViewProjection())
	}
	if u := set.UniformSet("cameraPosition"); u != nil {
		u.SetFloat3(m.camera.Position())
	}
	if u := set.UniformSet("time"); u != nil {
		u.SetFloat(float32(m.clock.Elapsed()))
	}
	if u := set.UniformSet("resolution"); u != nil {
		u.SetFloat2(math.NewVec2(float32(m.framebufferWidth), float32(m.framebufferHeight)))
	}
}

func (m *RenderPipelineManager) SetVertexBuffer(data metadata.GraphicsData) {
	m.context.SetVertexBufferData(0, data, 0)
}

// SetIndexBuffer binds an index buffer; nil draws without indices.
func (m *RenderPipelineManager) SetIndexBuffer(data metadata.GraphicsData, indexType metadata.IndexType) {
	m.context.SetIndexBufferData(data, 0, indexType)
}

// DrawScreenQuad draws a pass over the whole current framebuffer.
func (m *RenderPipelineManager) DrawScreenQuad(pass *metadata.MaterialPass) {
	if pass == nil || m.quad == nil {
		return
	}
	m.SetMaterialPass(pass)
	m.context.SetInputLayout(m.quadLayout)
	m.context.SetVertexBufferData(0, m.quad, 0)
	m.context.SetIndexBufferData(nil, 0, metadata.IndexTypeNone)
	m.context.Draw(6, 1, 0, 0)
}

func (m *RenderPipelineManager) Draw(vertexCount, startVertice uint32) {
	m.context.Draw(vertexCount, 1, startVertice, 0)
}

func (m *RenderPipelineManager) DrawIndexed(indexCount, startIndice, startVertice uint32) {
	m.context.DrawIndexed(indexCount, 1, startIndice, startVertice, 0)
}

// DrawLayer draws into one layer of the bound framebuffer.
func (m *RenderPipelineManager) DrawLayer(layer, vertexCount, startVertice uint32) {
	m.context.SetFramebufferLayer(m.context.Framebuffer(), layer)
	m.Draw(vertexCount, startVertice)
}

func (m *RenderPipelineManager) DrawIndexedLayer(layer, indexCount, startIndice, startVertice uint32) {
	m.context.SetFramebufferLayer(m.context.Framebuffer(), layer)
	m.DrawIndexed(indexCount, startIndice, startVertice)
}

func (m *RenderPipelineManager) IsTextureSupport(format metadata.TextureFormat) bool {
	return m.device != nil && m.device.Properties().IsTextureSupport(format)
}

func (m *RenderPipelineManager) IsTextureDimSupport(dim metadata.TextureDim) bool {
	return m.device != nil && m.device.Properties().IsTextureDimSupport(dim)
}

func (m *RenderPipelineManager) IsVertexSupport(format metadata.VertexFormat) bool {
	return m.device != nil && m.device.Properties().IsVertexSupport(format)
}

func (m *RenderPipelineManager) IsShaderSupport(stage metadata.ShaderStage) bool {
	return m.device != nil && m.device.Properties().IsShaderSupport(stage)
}

func (m *RenderPipelineManager) CreateMaterial(name string) (*metadata.Material, error) {
	return m.materials.Acquire(name)
}

func (m *RenderPipelineManager) DestroyMaterial(material *metadata.Material) {
	if material != nil {
		m.materials.Release(material.Name)
	}
}

// CreateTexture checks the format and dimension against the device first.
func (m *RenderPipelineManager) CreateTexture(desc metadata.TextureDesc) (metadata.GraphicsTexture, error) {
	if !m.IsTextureSupport(desc.Format) || !m.IsTextureDimSupport(desc.Dim) {
		err := fmt.Errorf("texture '%s': format %d dim %d: %w", desc.Name, desc.Format, desc.Dim, core.ErrUnsupported)
		core.LogWarn(err.Error())
		return nil, err
	}
	return m.device.CreateTexture(desc)
}

// CreateTextureFromFile acquires a texture asset; release it with
// ReleaseTexture.
func (m *RenderPipelineManager) CreateTextureFromFile(name string) (metadata.GraphicsTexture, error) {
	return m.textures.Acquire(name, true)
}

func (m *RenderPipelineManager) ReleaseTexture(name string) {
	m.textures.Release(name)
}

func (m *RenderPipelineManager) CreateSampler(desc metadata.SamplerDesc) (metadata.GraphicsSampler, error) {
	return m.device.CreateSampler(desc)
}

func (m *RenderPipelineManager) CreateGraphicsData(desc metadata.DataDesc) (metadata.GraphicsData, error) {
	return m.device.CreateGraphicsData(desc)
}

// CreateInputLayout checks every attribute format against the device first.
func (m *RenderPipelineManager) CreateInputLayout(desc metadata.InputLayoutDesc) (metadata.GraphicsInputLayout, error) {
	for _, c := range desc.Components {
		if !m.IsVertexSupport(c.Format) {
			err := fmt.Errorf("input layout: attribute '%s' format %d: %w", c.Semantic, c.Format, core.ErrUnsupported)
			core.LogWarn(err.Error())
			return nil, err
		}
	}
	return m.device.CreateInputLayout(desc)
}

func (m *RenderPipelineManager) CreateFramebufferLayout(desc metadata.FramebufferLayoutDesc) (metadata.GraphicsFramebufferLayout, error) {
	for _, c := range desc.Components() {
		if !m.IsTextureSupport(c.Format) {
			err := fmt.Errorf("framebuffer layout: slot %d format %d: %w", c.Slot, c.Format, core.ErrUnsupported)
			core.LogWarn(err.Error())
			return nil, err
		}
	}
	return m.device.CreateFramebufferLayout(desc)
}

func (m *RenderPipelineManager) CreateFramebuffer(desc metadata.FramebufferDesc) (metadata.GraphicsFramebuffer, error) {
	return m.device.CreateFramebuffer(desc)
}

/**
 * @brief Draws a scene: opaque objects, then transparent ones, each in
 * scene order, into the offscreen target. The active stages run next in
 * render-queue order, source and destination swapping after every stage
 * that wrote. The result is drawn to the window and presented.
 */
func (m *RenderPipelineManager) Render(scene *RenderScene) {
	if !m.isSetup {
		return
	}
	if scene != nil && scene.Camera != nil {
		m.SetCamera(scene.Camera)
	}
	m.RenderBegin()

	if scene != nil {
		for _, queue := range []metadata.RenderQueue{metadata.RenderQueueOpaque, metadata.RenderQueueTransparent} {
			for _, object := range scene.Objects {
				m.drawObject(object, queue)
			}
		}
	}

	source, dest := m.targets[0].framebuffer, m.targets[1].framebuffer
	for _, stage := range m.stages {
		if !stage.Active() {
			continue
		}
		stage.OnRenderPre(m)
		if stage.OnRender(m, source, dest) {
			source, dest = dest, source
		}
		stage.OnRenderPost(m)
	}

	m.present(source)
	m.RenderEnd()
}

func (m *RenderPipelineManager) drawObject(object *RenderObject, queue metadata.RenderQueue) {
	if object == nil || object.Queue != queue || object.Material == nil || object.VertexBuffer == nil {
		return
	}
	tech := object.Material.Tech(queue)
	if tech == nil {
		return
	}
	m.SetTransform(object.Transform)
	m.SetVertexBuffer(object.VertexBuffer)
	m.SetIndexBuffer(object.IndexBuffer, object.IndexType)
	for _, pass := range tech.Passes {
		m.SetMaterialPass(pass)
		m.context.DrawRenderBuffer(object.Indirect)
	}
}

// present draws the final image into the default framebuffer.
func (m *RenderPipelineManager) present(source metadata.GraphicsFramebuffer) {
	m.context.SetFramebuffer(nil)
	m.context.SetViewport(0, metadata.NewViewport(0, 0, float32(m.framebufferWidth), float32(m.framebufferHeight)))
	if m.texSource != nil {
		m.texSource.SetTexture(source.ResolveTexture(), nil)
	}
	m.DrawScreenQuad(m.blitPass)
}
