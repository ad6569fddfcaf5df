package systems

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

/** @brief The name of the default texture. */
const DefaultTextureName string = "default"

// AssetReader is the part of the asset manager the systems load through.
// ReadFile may be called from job workers.
type AssetReader interface {
	ReadFile(name string) ([]byte, error)
	Resolve(name string) string
}

type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be loaded at once. */
	MaxTextureCount uint32
}

type textureReference struct {
	id             uint32
	referenceCount uint64
	autoRelease    bool
	generation     uint32
	texture        metadata.GraphicsTexture
}

// TextureReloadFunc is called on the main thread after a texture was
// replaced. The old texture is already closed.
type TextureReloadFunc func(name string, texture metadata.GraphicsTexture)

type TextureSystem struct {
	Config *TextureSystemConfig
	// Hashtable for texture lookups, keyed by resolved asset path.
	registered     map[string]*textureReference
	ids            *core.Identifier[uint32, string]
	defaultTexture metadata.GraphicsTexture
	onReload       []TextureReloadFunc
	// sub systems
	device    metadata.GraphicsDevice
	assets    AssetReader
	jobSystem *JobSystem
}

// NewTextureSystem loads synchronously when js is nil.
func NewTextureSystem(config *TextureSystemConfig, device metadata.GraphicsDevice, assets AssetReader, js *JobSystem) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0: %w", core.ErrInvalidDesc)
		core.LogError(err.Error())
		return nil, err
	}
	return &TextureSystem{
		Config:     config,
		registered: make(map[string]*textureReference),
		ids:        core.NewIdentifier[uint32, string](int(config.MaxTextureCount)),
		device:     device,
		assets:     assets,
		jobSystem:  js,
	}, nil
}

// Initialize creates the default texture.
func (ts *TextureSystem) Initialize() error {
	texture, err := ts.device.CreateTexture(DefaultTextureDesc())
	if err != nil {
		return err
	}
	ts.defaultTexture = texture
	return nil
}

func (ts *TextureSystem) Shutdown() error {
	for name, ref := range ts.registered {
		ts.destroy(name, ref)
	}
	if ts.defaultTexture != nil {
		ts.defaultTexture.Close()
		ts.defaultTexture = nil
	}
	return nil
}

// DefaultTextureDesc is a 256x256 blue and white checkerboard.
func DefaultTextureDesc() metadata.TextureDesc {
	const (
		size = 256
		tile = 8
	)
	pixels := make([]byte, size*size*4)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			i := (row*size + col) * 4
			pixels[i+2], pixels[i+3] = 255, 255
			if (row/tile)%2 == (col/tile)%2 {
				pixels[i], pixels[i+1] = 255, 255
			}
		}
	}
	desc := metadata.NewTextureDesc(size, size, metadata.TextureDim2D, metadata.TextureFormatR8G8B8A8)
	desc.Name = DefaultTextureName
	desc.SamplerFilter = metadata.SamplerFilterNearest
	desc.Stream = pixels
	return desc
}

func (ts *TextureSystem) GetDefaultTexture() metadata.GraphicsTexture {
	return ts.defaultTexture
}

/**
 * @brief Acquires a texture by name, loading it on first use. The reference
 * counter is incremented. A texture acquired with autoRelease is destroyed
 * once its counter drops to zero.
 */
func (ts *TextureSystem) Acquire(name string, autoRelease bool) (metadata.GraphicsTexture, error) {
	if name == DefaultTextureName {
		core.LogWarn("texture system Acquire called for default texture. Use GetDefaultTexture for texture 'default'")
		return ts.defaultTexture, nil
	}
	key := ts.assets.Resolve(name)
	if ref, ok := ts.registered[key]; ok {
		ref.referenceCount++
		return ref.texture, nil
	}

	id, err := ts.ids.AquireNewID(key)
	if err != nil {
		err = fmt.Errorf("texture '%s': adjust configuration to allow more: %w", name, err)
		core.LogError(err.Error())
		return nil, err
	}
	desc, err := ts.load(name)
	if err == nil {
		var texture metadata.GraphicsTexture
		if texture, err = ts.device.CreateTexture(desc); err == nil {
			ts.registered[key] = &textureReference{
				id:             id,
				referenceCount: 1,
				autoRelease:    autoRelease,
				texture:        texture,
			}
			core.LogDebug("texture '%s' loaded (%dx%d)", name, desc.Width, desc.Height)
			return texture, nil
		}
	}
	if rerr := ts.ids.ReleaseID(id); rerr != nil {
		core.LogWarn(rerr.Error())
	}
	core.LogError("failed to load texture '%s': %s", name, err)
	return nil, err
}

/**
 * @brief Registers a texture created elsewhere under a name, so it can be
 * acquired and released like a loaded one. An empty name gets a unique one.
 */
func (ts *TextureSystem) Wrap(name string, texture metadata.GraphicsTexture) (string, error) {
	if name == "" {
		name = "tex:" + uuid.NewString()
	}
	key := ts.assets.Resolve(name)
	if _, ok := ts.registered[key]; ok {
		err := fmt.Errorf("texture '%s': %w", name, core.ErrDuplicateSlot)
		core.LogError(err.Error())
		return "", err
	}
	id, err := ts.ids.AquireNewID(key)
	if err != nil {
		core.LogError("texture '%s': %s", name, err)
		return "", err
	}
	ts.registered[key] = &textureReference{id: id, referenceCount: 1, autoRelease: true, texture: texture}
	return name, nil
}

func (ts *TextureSystem) Release(name string) {
	// Ignore release requests for the default texture.
	if name == DefaultTextureName {
		return
	}
	key := ts.assets.Resolve(name)
	ref, ok := ts.registered[key]
	if !ok || ref.referenceCount == 0 {
		core.LogWarn("tried to release non-existent texture: '%s'", name)
		return
	}
	ref.referenceCount--
	if ref.referenceCount == 0 && ref.autoRelease {
		ts.destroy(key, ref)
		core.LogDebug("released texture '%s', unloaded because reference count=0 and autoRelease=true", name)
	}
}

func (ts *TextureSystem) destroy(key string, ref *textureReference) {
	if ref.texture != nil {
		ref.texture.Close()
	}
	if err := ts.ids.ReleaseID(ref.id); err != nil {
		core.LogWarn(err.Error())
	}
	delete(ts.registered, key)
}

// Get returns a loaded texture without touching its reference count.
func (ts *TextureSystem) Get(name string) (metadata.GraphicsTexture, bool) {
	ref, ok := ts.registered[ts.assets.Resolve(name)]
	if !ok {
		return nil, false
	}
	return ref.texture, true
}

// Generation counts how many times the texture was replaced by a reload.
func (ts *TextureSystem) Generation(name string) uint32 {
	if ref, ok := ts.registered[ts.assets.Resolve(name)]; ok {
		return ref.generation
	}
	return 0
}

func (ts *TextureSystem) Count() int {
	return len(ts.registered)
}

func (ts *TextureSystem) OnReload(fn TextureReloadFunc) {
	ts.onReload = append(ts.onReload, fn)
}

/**
 * @brief Reloads a registered texture. Decoding runs on the job system; the
 * upload and the swap happen when the job system is updated.
 */
func (ts *TextureSystem) Reload(name string) {
	key := ts.assets.Resolve(name)
	if _, ok := ts.registered[key]; !ok {
		return
	}
	task := JobTask{
		Name: "texture reload " + key,
		Run: func() (any, error) {
			return ts.load(key)
		},
		OnComplete: func(result any) {
			ts.replace(key, result.(metadata.TextureDesc))
		},
		OnFailure: func(err error) {
			core.LogWarn("texture '%s' kept after failed reload: %s", key, err)
		},
	}
	if ts.jobSystem == nil {
		result, err := task.Run()
		if err != nil {
			task.OnFailure(err)
			return
		}
		task.OnComplete(result)
		return
	}
	ts.jobSystem.Submit(task)
}

func (ts *TextureSystem) replace(key string, desc metadata.TextureDesc) {
	ref, ok := ts.registered[key]
	if !ok {
		// released while loading
		return
	}
	texture, err := ts.device.CreateTexture(desc)
	if err != nil {
		core.LogWarn("texture '%s' kept after failed upload: %s", key, err)
		return
	}
	if ref.texture != nil {
		ref.texture.Close()
	}
	ref.texture = texture
	ref.generation++
	core.LogInfo("texture '%s' reloaded (generation %d)", key, ref.generation)
	for _, fn := range ts.onReload {
		fn(key, texture)
	}
}

func (ts *TextureSystem) load(name string) (metadata.TextureDesc, error) {
	data, err := ts.assets.ReadFile(name)
	if err != nil {
		return metadata.TextureDesc{}, err
	}
	desc, err := DecodeImage(data, ts.device.Properties().MaxImageDimension2D)
	if err != nil {
		return metadata.TextureDesc{}, fmt.Errorf("texture '%s': %w", name, err)
	}
	desc.Name = name
	return desc, nil
}

/**
 * @brief Decodes a PNG, JPEG, BMP, TIFF or WebP image into a mipmapped
 * RGBA8 texture description. The rows are flipped so that the first row
 * is the bottom of the image. Images larger than maxDimension are scaled
 * down to fit; zero disables the limit.
 */
func DecodeImage(data []byte, maxDimension uint32) (metadata.TextureDesc, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return metadata.TextureDesc{}, fmt.Errorf("decode image: %w: %w", core.ErrInvalidDesc, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return metadata.TextureDesc{}, fmt.Errorf("decode %s image: empty: %w", format, core.ErrInvalidDesc)
	}
	if limit := int(maxDimension); limit > 0 && (width > limit || height > limit) {
		scale := float64(limit) / float64(max(width, height))
		width = max(int(float64(width)*scale), 1)
		height = max(int(float64(height)*scale), 1)
		core.LogWarn("%s image of %dx%d scaled down to %dx%d", format, bounds.Dx(), bounds.Dy(), width, height)
	}

	rgba := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width == bounds.Dx() && height == bounds.Dy() {
		draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(rgba, rgba.Bounds(), src, bounds, draw.Src, nil)
	}

	pixels := make([]byte, len(rgba.Pix))
	stride := width * 4
	for row := 0; row < height; row++ {
		copy(pixels[row*stride:(row+1)*stride], rgba.Pix[(height-1-row)*rgba.Stride:])
	}

	desc := metadata.NewTextureDesc(uint32(width), uint32(height), metadata.TextureDim2D, metadata.TextureFormatR8G8B8A8)
	desc.MipLevel = mipLevels(uint32(width), uint32(height))
	desc.SamplerFilter = metadata.SamplerFilterLinearMipmapLinear
	desc.Flags |= metadata.TextureFlagMipmap
	desc.Stream = pixels
	return desc, nil
}

// mipLevels is the length of the full mip chain.
func mipLevels(width, height uint32) uint32 {
	levels := uint32(1)
	for size := max(width, height); size > 1; size >>= 1 {
		levels++
	}
	return levels
}
