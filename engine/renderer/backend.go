package renderer

import (
	"fmt"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/platform"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// Backend ties a renderer type to the window context it needs and the
// device type built on top of that context.
type Backend struct {
	Type   RendererType
	Device metadata.DeviceType
	Hints  platform.ContextHints
}

var backends = map[RendererType]Backend{
	OpenGLCore: {
		Type:   OpenGLCore,
		Device: metadata.DeviceTypeOpenGLCore,
		Hints:  platform.ContextHints{API: platform.ClientAPIOpenGL, Major: 4, Minor: 5, Core: true},
	},
	OpenGLES2: {
		Type:   OpenGLES2,
		Device: metadata.DeviceTypeOpenGLES2,
		Hints:  platform.ContextHints{API: platform.ClientAPIOpenGLES, Major: 2, Minor: 0},
	},
	OpenGLES3: {
		Type:   OpenGLES3,
		Device: metadata.DeviceTypeOpenGLES3,
		Hints:  platform.ContextHints{API: platform.ClientAPIOpenGLES, Major: 3, Minor: 0},
	},
}

// LookupBackend returns the backend registered for t. The debug flag is
// forwarded to the context hints.
func LookupBackend(t RendererType, debug bool) (Backend, error) {
	b, ok := backends[t]
	if !ok {
		err := fmt.Errorf("renderer type %d: %w", t, core.ErrUnsupported)
		core.LogError(err.Error())
		return Backend{}, err
	}
	b.Hints.Debug = debug
	return b, nil
}
