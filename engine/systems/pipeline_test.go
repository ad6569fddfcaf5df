package systems

import (
	"testing"

	"github.com/spaghettifunk/ray/engine/assets"
	"github.com/spaghettifunk/ray/engine/config"
	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/math"
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/gl/gltest"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
	"github.com/spaghettifunk/ray/engine/renderer/opengl"
	"github.com/spaghettifunk/ray/engine/renderer/postprocess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCanvas struct {
	swaps    int
	interval int
}

func (c *fakeCanvas) MakeContextCurrent()              {}
func (c *fakeCanvas) SwapBuffers()                     { c.swaps++ }
func (c *fakeCanvas) SetSwapInterval(interval int)     { c.interval = interval }
func (c *fakeCanvas) FramebufferSize() (int, int)      { return 320, 240 }
func (c *fakeCanvas) ContentScale() (float32, float32) { return 1, 1 }

// fxMaterial is a post-process material with a single pass.
func fxMaterial(pass string) string {
	return `
techniques:
  - queue: postprocess
    passes:
      - name: ` + pass + `
        vertex: "IN vec2 position; void main() {}"
        fragment: "void main() {}"
        state:
          cull: none
          depth_test: false
          depth_write: false
`
}

func fxAssets() *memAssets {
	return newMemAssets(map[string]string{
		BlitMaterial:                    fxMaterial("blit"),
		postprocess.FXAAMaterial:        fxMaterial("fxaa"),
		postprocess.FogMaterial:         fxMaterial("fog"),
		postprocess.ToneMappingMaterial: fxMaterial("filmic"),
		"materials/single.yaml":         singlePassYAML,
	})
}

type pipelineFixture struct {
	recorder  *gltest.Recorder
	canvas    *fakeCanvas
	device    *opengl.Device
	context   *opengl.DeviceContext
	swapchain *opengl.Swapchain
	files     *memAssets
	materials *MaterialSystem
	pipeline  *RenderPipelineManager
}

func newPipelineFixture(t *testing.T, files *memAssets) *pipelineFixture {
	t.Helper()
	f := &pipelineFixture{recorder: newRecorder(), canvas: &fakeCanvas{}, files: files}
	f.device = newDevice(t, f.recorder)

	var err error
	f.swapchain, err = opengl.NewSwapchain(f.device, metadata.SwapchainDesc{Canvas: f.canvas, Interval: metadata.SwapIntervalVsync})
	require.NoError(t, err)
	f.context, err = opengl.NewDeviceContext(f.device, metadata.ContextDesc{Swapchain: f.swapchain})
	require.NoError(t, err)

	ts, err := NewTextureSystem(&TextureSystemConfig{MaxTextureCount: 16}, f.device, files, nil)
	require.NoError(t, err)
	require.NoError(t, ts.Initialize())
	f.materials, err = NewMaterialSystem(&MaterialSystemConfig{MaxMaterialCount: 16, MaxUniformCount: 256}, f.device, files, ts)
	require.NoError(t, err)
	require.NoError(t, f.materials.Initialize())
	f.pipeline = NewRenderPipelineManager(f.materials, ts)

	t.Cleanup(func() {
		f.pipeline.Close()
		_ = f.materials.Shutdown()
		_ = ts.Shutdown()
		f.context.Close()
	})
	return f
}

func (f *pipelineFixture) setup(t *testing.T, pp config.PostProcessConfig) {
	t.Helper()
	setting := RenderSetting{SwapInterval: metadata.SwapIntervalVsync, ClearColor: math.NewVec4(0, 0, 0, 1), PostProcess: pp}
	require.NoError(t, f.pipeline.Setup(f.device, f.context, f.swapchain, setting))
	f.recorder.Reset()
}

func stageQueues(p *RenderPipelineManager) []metadata.RenderQueue {
	var queues []metadata.RenderQueue
	for _, s := range p.PostProcesses() {
		queues = append(queues, s.RenderQueue())
	}
	return queues
}

func TestPipelineSetup(t *testing.T) {
	f := newPipelineFixture(t, fxAssets())
	f.setup(t, config.PostProcessConfig{FXAA: true})

	assert.True(t, f.pipeline.IsSetup())
	w, h := f.pipeline.FramebufferSize()
	assert.Equal(t, uint32(320), w)
	assert.Equal(t, uint32(240), h)
	for _, target := range f.pipeline.targets {
		require.NotNil(t, target.framebuffer)
		assert.Equal(t, uint32(320), target.color.Desc().Width)
	}

	_, ok := f.pipeline.PostProcess("fxaa")
	assert.True(t, ok)
	assert.Len(t, f.pipeline.PostProcesses(), 1)
	// blit and fxaa
	assert.Equal(t, 2, f.materials.Count())

	err := f.pipeline.Setup(f.device, f.context, f.swapchain, RenderSetting{})
	assert.ErrorIs(t, err, core.ErrAlreadySetup)
}

func TestPipelineSetupRequiresDevice(t *testing.T) {
	f := newPipelineFixture(t, fxAssets())
	err := f.pipeline.Setup(nil, f.context, f.swapchain, RenderSetting{})
	assert.ErrorIs(t, err, core.ErrInvalidDesc)
	assert.False(t, f.pipeline.IsSetup())
}

func TestPipelineSetupWithoutBlitMaterial(t *testing.T) {
	f := newPipelineFixture(t, newMemAssets(nil))
	err := f.pipeline.Setup(f.device, f.context, f.swapchain, RenderSetting{})
	assert.Error(t, err)
	assert.False(t, f.pipeline.IsSetup())
	assert.Equal(t, 0, f.materials.Count())
	assert.Nil(t, f.pipeline.quad)
}

func TestPipelineSetupWrongBlitPass(t *testing.T) {
	files := fxAssets()
	files.Put(BlitMaterial, []byte(fxMaterial("copy")))
	f := newPipelineFixture(t, files)

	err := f.pipeline.Setup(f.device, f.context, f.swapchain, RenderSetting{})
	assert.ErrorIs(t, err, core.ErrInvalidDesc)
	assert.Equal(t, 0, f.materials.Count())
}

func TestPipelineRenderSettingToggles(t *testing.T) {
	f := newPipelineFixture(t, fxAssets())
	f.setup(t, config.PostProcessConfig{FXAA: true})
	fxaa, _ := f.pipeline.PostProcess("fxaa")

	f.pipeline.SetRenderSetting(RenderSetting{
		Wireframe:    true,
		SwapInterval: metadata.SwapIntervalFree,
		PostProcess:  config.PostProcessConfig{FXAA: true, Fog: true, SSAO: true},
	})
	assert.True(t, f.context.Wireframe())
	assert.Equal(t, 0, f.canvas.interval)

	// ssao has no material here and is skipped
	_, ok := f.pipeline.PostProcess("ssao")
	assert.False(t, ok)
	fog, ok := f.pipeline.PostProcess("fog")
	require.True(t, ok)
	stages := f.pipeline.PostProcesses()
	require.Len(t, stages, 2)
	assert.Same(t, fxaa, stages[0])
	assert.Same(t, fog, stages[1])

	f.pipeline.SetRenderSetting(RenderSetting{PostProcess: config.PostProcessConfig{Fog: true}})
	assert.False(t, fxaa.Active())
	assert.Equal(t, []metadata.RenderQueue{metadata.RenderQueuePostprocess}, stageQueues(f.pipeline))
	assert.Equal(t, 2, f.materials.Count())
	assert.False(t, f.pipeline.RenderSetting().PostProcess.FXAA)
}

func TestPipelineStageOrder(t *testing.T) {
	f := newPipelineFixture(t, fxAssets())
	f.setup(t, config.PostProcessConfig{})

	tm := postprocess.NewToneMapping()
	require.NoError(t, f.pipeline.AddPostProcess(tm))
	require.NoError(t, f.pipeline.AddPostProcess(tm))
	fxaa := postprocess.NewFXAA()
	require.NoError(t, f.pipeline.AddPostProcess(fxaa))
	assert.Equal(t, []postprocess.RenderPostProcess{tm, fxaa}, f.pipeline.PostProcesses())

	f.pipeline.RemovePostProcess(tm)
	assert.True(t, tm.Active())
	assert.Equal(t, []postprocess.RenderPostProcess{fxaa}, f.pipeline.PostProcesses())

	f.pipeline.DestroyPostProcess(fxaa)
	assert.False(t, fxaa.Active())
	assert.Empty(t, f.pipeline.PostProcesses())

	ssao := postprocess.NewSSAO()
	assert.Error(t, f.pipeline.AddPostProcess(ssao))
	assert.Empty(t, f.pipeline.PostProcesses())
}

func TestPipelineRender(t *testing.T) {
	f := newPipelineFixture(t, fxAssets())
	f.setup(t, config.PostProcessConfig{FXAA: true})

	material, err := f.materials.Acquire("materials/single.yaml")
	require.NoError(t, err)
	geometries, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: 4}, f.device)
	require.NoError(t, err)
	t.Cleanup(func() { _ = geometries.Shutdown() })
	cube, err := geometries.Acquire(GenerateCubeConfig(1, 1, 1, 1, 1, "cube"))
	require.NoError(t, err)
	f.recorder.Reset()

	scene := &RenderScene{}
	opaque := cube.RenderObject(material, metadata.RenderQueueOpaque)
	opaque.Transform = math.NewMat4Translation(math.NewVec3(1, 2, 3))
	// no transparent technique, so nothing is drawn for it
	scene.Add(opaque, cube.RenderObject(material, metadata.RenderQueueTransparent), nil)
	f.pipeline.Render(scene)

	draws := f.recorder.Calls("DrawElements")
	require.Len(t, draws, 1)
	assert.Equal(t, int32(36), draws[0].Args[1])
	// fxaa and the final blit
	assert.Equal(t, 2, f.recorder.Count("DrawArrays"))
	assert.Equal(t, 1, f.canvas.swaps)

	model := material.Tech(metadata.RenderQueueOpaque).Passes[0].DescriptorSet.UniformSet("model")
	assert.Equal(t, opaque.Transform, model.Float4x4())

	// fxaa wrote into the second target, which is what reaches the window
	blit, _ := f.materials.Get(BlitMaterial)
	assert.Same(t, f.pipeline.targets[1].color, blit.Param("texSource").Linked()[0].Texture())

	f.pipeline.Render(nil)
	assert.Equal(t, 2, f.canvas.swaps)
}

func TestPipelineWindowResolution(t *testing.T) {
	f := newPipelineFixture(t, fxAssets())
	f.setup(t, config.PostProcessConfig{})
	old := f.pipeline.targets[0].color

	f.pipeline.SetWindowResolution(0, 100)
	w, _ := f.pipeline.FramebufferSize()
	assert.Equal(t, uint32(320), w)

	f.pipeline.SetWindowResolution(640, 360)
	w, h := f.pipeline.FramebufferSize()
	assert.Equal(t, uint32(640), w)
	assert.Equal(t, uint32(360), h)
	w, h = f.swapchain.WindowResolution()
	assert.Equal(t, uint32(640), w)
	assert.Equal(t, uint32(360), h)
	assert.Zero(t, old.InstanceID())
	assert.Equal(t, uint32(640), f.pipeline.targets[0].color.Desc().Width)
	assert.InDelta(t, 640.0/360.0, f.pipeline.Camera().Aperture(), 1e-6)
}

func TestPipelineFailedResizeKeepsTargets(t *testing.T) {
	f := newPipelineFixture(t, fxAssets())
	f.setup(t, config.PostProcessConfig{})
	old := f.pipeline.targets
	f.recorder.FramebufferStatus = gl.FramebufferUnsupported

	f.pipeline.SetWindowResolution(640, 360)
	w, h := f.pipeline.FramebufferSize()
	assert.Equal(t, uint32(320), w)
	assert.Equal(t, uint32(240), h)
	assert.Equal(t, old, f.pipeline.targets)
	for _, target := range f.pipeline.targets {
		require.NotNil(t, target.framebuffer)
		assert.NotZero(t, target.framebuffer.InstanceID())
		assert.NotZero(t, target.color.InstanceID())
	}
	// the partially built pair was released
	assert.NotZero(t, f.recorder.Count("DeleteTexture"))

	f.recorder.FramebufferStatus = gl.FramebufferComplete
	f.recorder.Reset()
	assert.NotPanics(t, func() { f.pipeline.Render(&RenderScene{}) })
	assert.Equal(t, 1, f.canvas.swaps)
	assert.Equal(t, 1, f.recorder.Count("DrawArrays"))

	// a later resize still goes through
	f.pipeline.SetWindowResolution(800, 600)
	w, _ = f.pipeline.FramebufferSize()
	assert.Equal(t, uint32(800), w)
}

func TestPipelineClose(t *testing.T) {
	f := newPipelineFixture(t, fxAssets())
	f.setup(t, config.PostProcessConfig{FXAA: true, Fog: true})
	fog, _ := f.pipeline.PostProcess("fog")

	f.pipeline.Close()
	assert.False(t, f.pipeline.IsSetup())
	assert.False(t, fog.Active())
	assert.Equal(t, 0, f.materials.Count())
	assert.Empty(t, f.pipeline.PostProcesses())
	assert.Nil(t, f.pipeline.targets[0].framebuffer)

	// closing twice is harmless
	f.pipeline.Close()
	f.pipeline.Render(&RenderScene{})
	assert.Equal(t, 0, f.canvas.swaps)
}

func TestSystemManagerLifecycle(t *testing.T) {
	r := newRecorder()
	device := newDevice(t, r)
	files := fxAssets()
	canvas := &fakeCanvas{}
	swapchain, err := opengl.NewSwapchain(device, metadata.SwapchainDesc{Canvas: canvas})
	require.NoError(t, err)
	context, err := opengl.NewDeviceContext(device, metadata.ContextDesc{Swapchain: swapchain})
	require.NoError(t, err)
	defer context.Close()

	sm, err := NewSystemManager(device, files)
	require.NoError(t, err)
	require.NoError(t, sm.Initialize(context, swapchain, NewRenderSetting(config.Default().Renderer)))
	assert.Same(t, sm.CameraSystem().GetDefault(), sm.Pipeline().Camera())

	material, err := sm.MaterialSystem().Acquire("materials/single.yaml")
	require.NoError(t, err)
	pass := material.Tech(metadata.RenderQueueOpaque).Pass("only")
	pipeline := pass.Pipeline

	sm.OnAssetChange(assets.Change{Path: "materials/single.yaml", Type: assets.AssetTypeMaterial, Removed: true})
	assert.Same(t, pipeline, pass.Pipeline)
	sm.OnAssetChange(assets.Change{Path: "materials/single.yaml", Type: assets.AssetTypeMaterial})
	assert.NotSame(t, pipeline, pass.Pipeline)

	sm.Update()
	require.NoError(t, sm.Shutdown())
	assert.False(t, sm.Pipeline().IsSetup())
	assert.Equal(t, 0, sm.MaterialSystem().Count())
}
