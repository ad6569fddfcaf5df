package systems

import (
	"fmt"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/components"
)

/** @brief The name of the default camera. */
const DefaultCameraName string = "default"

type cameraLookup struct {
	referenceCount uint16
	camera         *components.Camera
}

type CameraSystem struct {
	Config  *CameraSystemConfig
	cameras map[string]*cameraLookup
	// A default, non-registered camera that always exists as a fallback.
	defaultCamera *components.Camera
}

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	/** @brief The maximum number of cameras that can be managed by the system. */
	MaxCameraCount uint16
}

func NewCameraSystem(config *CameraSystemConfig) (*CameraSystem, error) {
	if config.MaxCameraCount == 0 {
		err := fmt.Errorf("func NewCameraSystem - config.MaxCameraCount must be > 0: %w", core.ErrInvalidDesc)
		core.LogError(err.Error())
		return nil, err
	}
	return &CameraSystem{
		Config:        config,
		cameras:       make(map[string]*cameraLookup, config.MaxCameraCount),
		defaultCamera: components.NewCamera(),
	}, nil
}

func (cs *CameraSystem) Shutdown() error {
	clear(cs.cameras)
	return nil
}

/**
 * @brief Acquires a camera by name, creating it on first use. The
 * reference counter is incremented.
 */
func (cs *CameraSystem) Acquire(name string) (*components.Camera, error) {
	if name == DefaultCameraName {
		return cs.defaultCamera, nil
	}
	lookup, ok := cs.cameras[name]
	if !ok {
		if len(cs.cameras) >= int(cs.Config.MaxCameraCount) {
			err := fmt.Errorf("camera '%s': adjust camera system config to allow more: %w", name, core.ErrPoolExhausted)
			core.LogError(err.Error())
			return nil, err
		}
		core.LogDebug("creating new camera named '%s'...", name)
		lookup = &cameraLookup{camera: components.NewCamera()}
		cs.cameras[name] = lookup
	}
	lookup.referenceCount++
	return lookup.camera, nil
}

/**
 * @brief Releases a camera. Once the counter reaches 0 the camera is
 * dropped.
 */
func (cs *CameraSystem) Release(name string) {
	if name == DefaultCameraName {
		core.LogDebug("cannot release default camera, nothing was done")
		return
	}
	lookup, ok := cs.cameras[name]
	if !ok {
		core.LogWarn("camera '%s' is not registered, nothing was done", name)
		return
	}
	lookup.referenceCount--
	if lookup.referenceCount < 1 {
		delete(cs.cameras, name)
	}
}

func (cs *CameraSystem) GetDefault() *components.Camera {
	return cs.defaultCamera
}
