package gl

import (
	"fmt"
	"slices"
	"strings"
)

// Features is the capability table of the current context, built once from
// the version string and the extension list.
type Features struct {
	ES    bool
	Major int
	Minor int

	Vendor     string
	Renderer   string
	Extensions []string

	VertexArrayObject        bool
	TextureStorage           bool
	SamplerObjects           bool
	MapBufferRange           bool
	UniformBufferObject      bool
	InvalidateFramebuffer    bool
	DebugOutput              bool
	ViewportArray            bool
	TextureFilterAnisotropic bool
	MaxAnisotropy            float32
	S3TC                     bool
	RGTC                     bool
	DrawBuffers              bool
	Instancing               bool
	PolygonMode              bool
	Texture3D                bool
	MultisampleTexture       bool
	CubeMapArray             bool
	BlitFramebuffer          bool
}

// ParseVersion splits a GL_VERSION string such as "4.6.0 NVIDIA 550.54" or
// "OpenGL ES 3.2 Mesa 24.0" into its profile and version numbers.
func ParseVersion(version string) (es bool, major, minor int, err error) {
	v := strings.TrimSpace(version)
	for _, prefix := range []string{"OpenGL ES-CM ", "OpenGL ES-CL ", "OpenGL ES "} {
		if strings.HasPrefix(v, prefix) {
			es = true
			v = strings.TrimPrefix(v, prefix)
			break
		}
	}
	if _, err = fmt.Sscanf(v, "%d.%d", &major, &minor); err != nil {
		return false, 0, 0, fmt.Errorf("gl: unable to parse version %q: %w", version, err)
	}
	return es, major, minor, nil
}

// AtLeast reports whether the context version is major.minor or newer.
func (f *Features) AtLeast(major, minor int) bool {
	return f.Major > major || (f.Major == major && f.Minor >= minor)
}

// HasExtension reports whether the driver advertises name.
func (f *Features) HasExtension(name string) bool {
	return slices.Contains(f.Extensions, name)
}

func (f *Features) hasAny(names ...string) bool {
	for _, n := range names {
		if f.HasExtension(n) {
			return true
		}
	}
	return false
}

// LoadFeatures queries fns for the version and extensions of the current
// context.
func LoadFeatures(fns Functions) (*Features, error) {
	es, major, minor, err := ParseVersion(fns.GetString(Version))
	if err != nil {
		return nil, err
	}
	f := &Features{
		ES:       es,
		Major:    major,
		Minor:    minor,
		Vendor:   fns.GetString(Vendor),
		Renderer: fns.GetString(Renderer),
	}

	if es && major < 3 {
		f.Extensions = strings.Fields(fns.GetString(Extensions))
	} else {
		n := fns.GetIntegerv(NumExtensions)
		f.Extensions = make([]string, 0, n)
		for i := int32(0); i < n; i++ {
			f.Extensions = append(f.Extensions, fns.GetStringi(Extensions, uint32(i)))
		}
	}

	if es {
		f.VertexArrayObject = f.AtLeast(3, 0) || f.HasExtension("GL_OES_vertex_array_object")
		f.TextureStorage = f.AtLeast(3, 0) || f.HasExtension("GL_EXT_texture_storage")
		f.SamplerObjects = f.AtLeast(3, 0)
		f.MapBufferRange = f.AtLeast(3, 0) || f.HasExtension("GL_EXT_map_buffer_range")
		f.UniformBufferObject = f.AtLeast(3, 0)
		f.InvalidateFramebuffer = f.AtLeast(3, 0)
		f.DebugOutput = f.AtLeast(3, 2) || f.HasExtension("GL_KHR_debug")
		f.ViewportArray = f.hasAny("GL_OES_viewport_array", "GL_NV_viewport_array")
		f.DrawBuffers = f.AtLeast(3, 0) || f.HasExtension("GL_EXT_draw_buffers")
		f.Instancing = f.AtLeast(3, 0)
		f.PolygonMode = f.HasExtension("GL_NV_polygon_mode")
		f.Texture3D = f.AtLeast(3, 0)
		f.MultisampleTexture = f.AtLeast(3, 1)
		f.CubeMapArray = f.AtLeast(3, 2) || f.HasExtension("GL_EXT_texture_cube_map_array")
		f.BlitFramebuffer = f.AtLeast(3, 0)
		f.RGTC = f.HasExtension("GL_EXT_texture_compression_rgtc")
	} else {
		f.VertexArrayObject = f.AtLeast(3, 0) || f.HasExtension("GL_ARB_vertex_array_object")
		f.TextureStorage = f.AtLeast(4, 2) || f.HasExtension("GL_ARB_texture_storage")
		f.SamplerObjects = f.AtLeast(3, 3) || f.HasExtension("GL_ARB_sampler_objects")
		f.MapBufferRange = f.AtLeast(3, 0) || f.HasExtension("GL_ARB_map_buffer_range")
		f.UniformBufferObject = f.AtLeast(3, 1) || f.HasExtension("GL_ARB_uniform_buffer_object")
		f.InvalidateFramebuffer = f.AtLeast(4, 3) || f.HasExtension("GL_ARB_invalidate_subdata")
		f.DebugOutput = f.AtLeast(4, 3) || f.hasAny("GL_KHR_debug", "GL_ARB_debug_output")
		f.ViewportArray = f.AtLeast(4, 1) || f.HasExtension("GL_ARB_viewport_array")
		f.DrawBuffers = true
		f.Instancing = f.AtLeast(3, 1) || f.HasExtension("GL_ARB_instanced_arrays")
		f.PolygonMode = true
		f.Texture3D = true
		f.MultisampleTexture = f.AtLeast(4, 3) || f.HasExtension("GL_ARB_texture_storage_multisample")
		f.CubeMapArray = f.AtLeast(4, 0) || f.HasExtension("GL_ARB_texture_cube_map_array")
		f.BlitFramebuffer = true
		f.RGTC = f.AtLeast(3, 0) || f.HasExtension("GL_ARB_texture_compression_rgtc")
	}
	f.S3TC = f.hasAny("GL_EXT_texture_compression_s3tc", "GL_NV_texture_compression_s3tc")
	f.TextureFilterAnisotropic = f.hasAny("GL_EXT_texture_filter_anisotropic", "GL_ARB_texture_filter_anisotropic") ||
		(!es && f.AtLeast(4, 6))
	if f.TextureFilterAnisotropic {
		f.MaxAnisotropy = fns.GetFloatv(MaxTextureMaxAnisotropyEXT)
	}
	return f, nil
}

// String summarizes the context for logging.
func (f *Features) String() string {
	profile := "core"
	if f.ES {
		profile = "es"
	}
	return fmt.Sprintf("%s %d.%d (%s, %s, %d extensions)", profile, f.Major, f.Minor, f.Vendor, f.Renderer, len(f.Extensions))
}
