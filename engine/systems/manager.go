package systems

import (
	"runtime"

	"github.com/spaghettifunk/ray/engine/assets"
	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

type SystemManager struct {
	device         metadata.GraphicsDevice
	cameraSystem   *CameraSystem
	geometrySystem *GeometrySystem
	jobSystem      *JobSystem
	textureSystem  *TextureSystem
	materialSystem *MaterialSystem
	pipeline       *RenderPipelineManager
}

func NewSystemManager(device metadata.GraphicsDevice, reader AssetReader) (*SystemManager, error) {
	js, err := NewJobSystem(max(runtime.NumCPU()/2, 1), 64)
	if err != nil {
		return nil, err
	}
	cs, err := NewCameraSystem(&CameraSystemConfig{
		MaxCameraCount: 61,
	})
	if err != nil {
		return nil, err
	}
	gs, err := NewGeometrySystem(&GeometrySystemConfig{
		MaxGeometryCount: 4096,
	}, device)
	if err != nil {
		return nil, err
	}
	ts, err := NewTextureSystem(&TextureSystemConfig{
		MaxTextureCount: 65536,
	}, device, reader, js)
	if err != nil {
		return nil, err
	}
	ms, err := NewMaterialSystem(&MaterialSystemConfig{
		MaxMaterialCount: 4096,
		MaxUniformCount:  65536,
	}, device, reader, ts)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		device:         device,
		cameraSystem:   cs,
		geometrySystem: gs,
		jobSystem:      js,
		textureSystem:  ts,
		materialSystem: ms,
		pipeline:       NewRenderPipelineManager(ms, ts),
	}, nil
}

// Initialize creates the device resources of the systems and sets up the
// render pipeline on the given context.
func (sm *SystemManager) Initialize(context metadata.GraphicsContext, swapchain metadata.GraphicsSwapchain, setting RenderSetting) error {
	if err := sm.textureSystem.Initialize(); err != nil {
		return err
	}
	if err := sm.materialSystem.Initialize(); err != nil {
		return err
	}
	if err := sm.pipeline.Setup(sm.device, context, swapchain, setting); err != nil {
		return err
	}
	sm.pipeline.SetCamera(sm.cameraSystem.GetDefault())
	return nil
}

// Update runs finished job callbacks. Once per frame, on the main thread.
func (sm *SystemManager) Update() {
	sm.jobSystem.Update()
}

// OnAssetChange reloads whatever depends on a changed asset.
func (sm *SystemManager) OnAssetChange(change assets.Change) {
	if change.Removed {
		core.LogWarn("asset '%s' was removed, keeping the loaded copy", change.Path)
		return
	}
	switch change.Type {
	case assets.AssetTypeMaterial, assets.AssetTypeShader:
		sm.materialSystem.Reload(change.Path)
	case assets.AssetTypeTexture:
		sm.textureSystem.Reload(change.Path)
	}
}

func (sm *SystemManager) Shutdown() error {
	sm.pipeline.Close()
	if err := sm.jobSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.geometrySystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.materialSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.textureSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.cameraSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}

func (sm *SystemManager) CameraSystem() *CameraSystem {
	return sm.cameraSystem
}

func (sm *SystemManager) GeometrySystem() *GeometrySystem {
	return sm.geometrySystem
}

func (sm *SystemManager) JobSystem() *JobSystem {
	return sm.jobSystem
}

func (sm *SystemManager) TextureSystem() *TextureSystem {
	return sm.textureSystem
}

func (sm *SystemManager) MaterialSystem() *MaterialSystem {
	return sm.materialSystem
}

func (sm *SystemManager) Pipeline() *RenderPipelineManager {
	return sm.pipeline
}
