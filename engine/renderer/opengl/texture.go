package opengl

import (
	"fmt"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

type Texture struct {
	deviceRef
	desc   metadata.TextureDesc
	target uint32
	handle uint32
}

var _ metadata.GraphicsTexture = (*Texture)(nil)

// NewTexture allocates a texture and uploads desc.Stream when present.
func NewTexture(device *Device, desc metadata.TextureDesc) (*Texture, error) {
	t := &Texture{deviceRef: device.ref()}
	if err := t.Setup(desc); err != nil {
		return nil, err
	}
	return t, nil
}

// CompressedRegion is one CompressedTexSubImage upload of a mip level.
type CompressedRegion struct {
	Level  int32
	Width  int32
	Height int32
	Offset int
	Size   int
}

// CompressedBlockSize is the byte size of a 4x4 block: 8 for RGBA_DXT1 and
// 16 for every other compressed format.
func CompressedBlockSize(format metadata.TextureFormat) int {
	if format == metadata.TextureFormatRGBADXT1 {
		return 8
	}
	return 16
}

// textureLevels is the level count used for storage and compressed uploads.
// Cube targets always reserve six.
func textureLevels(desc metadata.TextureDesc) int32 {
	levels := int32(1)
	if desc.Dim == metadata.TextureDimCube {
		levels = 6
	}
	return max(levels, int32(desc.MipLevel))
}

// ComputeCompressedUpload returns the per-mip regions covering a compressed
// stream, in upload order.
func ComputeCompressedUpload(desc metadata.TextureDesc) []CompressedRegion {
	w, h := int32(desc.Width), int32(desc.Height)
	block := CompressedBlockSize(desc.Format)
	levels := textureLevels(desc)

	regions := make([]CompressedRegion, 0, levels)
	offset := 0
	for mip := int32(0); mip < levels; mip++ {
		size := int((w+3)/4) * int((h+3)/4) * block
		regions = append(regions, CompressedRegion{Level: mip, Width: w, Height: h, Offset: offset, Size: size})
		w = max(w>>1, 1)
		h = max(h>>1, 1)
		offset += size
	}
	return regions
}

func (t *Texture) Setup(desc metadata.TextureDesc) error {
	if t.handle != 0 {
		err := fmt.Errorf("texture '%s': %w", desc.Name, core.ErrAlreadySetup)
		core.LogError(err.Error())
		return err
	}
	device, err := t.owner()
	if err != nil {
		return err
	}
	fns, tables, features := device.fns, device.tables, device.features

	target := tables.TextureTarget(desc.Dim, desc.IsMultisample())
	if target == gl.InvalidEnum {
		err := fmt.Errorf("texture '%s': dimension %d (samples=%d): %w", desc.Name, desc.Dim, desc.Samples, core.ErrUnsupported)
		core.LogError(err.Error())
		return err
	}
	internalFormat := tables.TextureInternalFormat(desc.Format)
	if internalFormat == gl.InvalidEnum {
		err := fmt.Errorf("texture '%s': format %d: %w", desc.Name, desc.Format, core.ErrUnsupported)
		core.LogError(err.Error())
		return err
	}
	var format, xtype uint32
	if desc.Format.IsCompressed() {
		if (desc.Format == metadata.TextureFormatRGATI2 && !features.RGTC) ||
			(desc.Format != metadata.TextureFormatRGATI2 && !features.S3TC) {
			err := fmt.Errorf("texture '%s': compressed format %d needs an extension the driver lacks: %w", desc.Name, desc.Format, core.ErrUnsupported)
			core.LogError(err.Error())
			return err
		}
	} else {
		format = tables.TextureFormat(desc.Format)
		xtype = tables.TextureType(desc.Format)
		if format == gl.InvalidEnum || xtype == gl.InvalidEnum {
			err := fmt.Errorf("texture '%s': pixel format %d: %w", desc.Name, desc.Format, core.ErrUnsupported)
			core.LogError(err.Error())
			return err
		}
	}

	handle := fns.GenTexture()
	if handle == 0 {
		err := fmt.Errorf("texture '%s': GenTexture failed: %w", desc.Name, core.ErrNativeFailure)
		core.LogError(err.Error())
		return err
	}
	fns.BindTexture(target, handle)

	if !desc.IsMultisample() {
		applyTextureSampling(fns, features, target, desc.SamplerWrap, desc.SamplerFilter, desc.SamplerAnis)
	}

	levels := textureLevels(desc)
	w, h, depth := int32(desc.Width), int32(desc.Height), int32(desc.Layers())
	if features.TextureStorage && !device.isES2() {
		allocateStorage(fns, target, levels, internalFormat, w, h, depth, int32(desc.Samples))
		if desc.Stream != nil {
			if desc.Format.IsCompressed() {
				for _, r := range ComputeCompressedUpload(desc) {
					if r.Offset+r.Size > len(desc.Stream) {
						core.LogWarn("texture '%s': stream ends before mip %d", desc.Name, r.Level)
						break
					}
					fns.CompressedTexSubImage2D(target, r.Level, 0, 0, r.Width, r.Height, internalFormat, desc.Stream[r.Offset:r.Offset+r.Size])
				}
			} else {
				uploadSubImage(fns, target, w, h, depth, format, xtype, desc.Stream)
			}
		}
	} else {
		specifyImage(fns, target, desc, internalFormat, format, xtype)
	}

	if desc.Flags&metadata.TextureFlagMipmap != 0 {
		fns.GenerateMipmap(target)
	}
	fns.BindTexture(target, 0)

	t.handle = handle
	t.target = target
	t.desc = desc
	// the pixels belong to the caller and are not retained
	t.desc.Stream = nil
	return nil
}

func allocateStorage(fns gl.Functions, target uint32, levels int32, internalFormat uint32, w, h, depth, samples int32) {
	switch target {
	case gl.Texture2D, gl.TextureCubeMap:
		fns.TexStorage2D(target, levels, internalFormat, w, h)
	case gl.Texture2DMultisample:
		fns.TexStorage2DMultisample(target, samples, internalFormat, w, h, false)
	case gl.Texture2DArray, gl.Texture3D, gl.TextureCubeMapArray:
		fns.TexStorage3D(target, levels, internalFormat, w, h, depth)
	case gl.Texture2DMultisampleArray:
		fns.TexStorage3DMultisample(target, samples, internalFormat, w, h, depth, false)
	}
}

func uploadSubImage(fns gl.Functions, target uint32, w, h, depth int32, format, xtype uint32, pixels []byte) {
	switch target {
	case gl.Texture2D:
		fns.TexSubImage2D(target, 0, 0, 0, w, h, format, xtype, pixels)
	case gl.Texture2DArray, gl.Texture3D:
		fns.TexSubImage3D(target, 0, 0, 0, 0, w, h, depth, format, xtype, pixels)
	case gl.TextureCubeMap:
		faceSize := len(pixels) / 6
		for face := 0; face < 6 && faceSize > 0; face++ {
			fns.TexSubImage2D(gl.TextureCubeMapPositiveX+uint32(face), 0, 0, 0, w, h, format, xtype, pixels[face*faceSize:(face+1)*faceSize])
		}
	default:
		core.LogWarn("opengl: no pixel upload for texture target 0x%X", target)
	}
}

// specifyImage is the path for contexts without immutable storage: each
// image is specified directly, with its pixels when available.
func specifyImage(fns gl.Functions, target uint32, desc metadata.TextureDesc, internalFormat, format, xtype uint32) {
	w, h := int32(desc.Width), int32(desc.Height)
	faces := []uint32{target}
	if target == gl.TextureCubeMap {
		faces = faces[:0]
		for face := uint32(0); face < 6; face++ {
			faces = append(faces, gl.TextureCubeMapPositiveX+face)
		}
	}

	if desc.Format.IsCompressed() {
		for _, r := range ComputeCompressedUpload(desc) {
			var data []byte
			if r.Offset+r.Size <= len(desc.Stream) {
				data = desc.Stream[r.Offset : r.Offset+r.Size]
			}
			for _, face := range faces {
				fns.CompressedTexImage2D(face, r.Level, internalFormat, r.Width, r.Height, data)
			}
		}
		return
	}

	var faceSize int
	if desc.Stream != nil {
		faceSize = len(desc.Stream) / len(faces)
	}
	for i, face := range faces {
		var pixels []byte
		if faceSize > 0 {
			pixels = desc.Stream[i*faceSize : (i+1)*faceSize]
		}
		fns.TexImage2D(face, 0, int32(internalFormat), w, h, format, xtype, pixels)
	}
}

// applyTextureSampling writes sampling parameters on the texture bound to
// target.
func applyTextureSampling(fns gl.Functions, features *gl.Features, target uint32, wrap metadata.SamplerWrap, filter metadata.SamplerFilter, anis metadata.SamplerAnis) {
	tables := coreTables{}
	if w := tables.SamplerWrap(wrap); w != gl.InvalidEnum {
		fns.TexParameteri(target, gl.TextureWrapS, int32(w))
		fns.TexParameteri(target, gl.TextureWrapT, int32(w))
		if target != gl.Texture2D && target != gl.TextureCubeMap {
			fns.TexParameteri(target, gl.TextureWrapR, int32(w))
		}
	}
	if f := tables.SamplerFilter(filter); f != gl.InvalidEnum {
		fns.TexParameteri(target, gl.TextureMinFilter, int32(f))
		fns.TexParameteri(target, gl.TextureMagFilter, int32(magFilter(filter)))
	}
	if anis > metadata.SamplerAnis0 && features.TextureFilterAnisotropic {
		fns.TexParameterf(target, gl.TextureMaxAnisotropyEXT, min(float32(anis), max(features.MaxAnisotropy, 1)))
	}
}

// magFilter drops the mipmap part of a filter, which magnification rejects.
func magFilter(filter metadata.SamplerFilter) uint32 {
	switch filter {
	case metadata.SamplerFilterNearest, metadata.SamplerFilterNearestMipmapLinear, metadata.SamplerFilterNearestMipmapNearest:
		return gl.Nearest
	}
	return gl.Linear
}

func (t *Texture) Close() {
	if t.handle == 0 {
		return
	}
	if device, err := t.owner(); err == nil {
		device.fns.DeleteTexture(t.handle)
	}
	t.handle = 0
	t.target = gl.None
	t.desc = metadata.TextureDesc{}
}

func (t *Texture) InstanceID() uint32 {
	return t.handle
}

// Target is the native texture target.
func (t *Texture) Target() uint32 {
	return t.target
}

func (t *Texture) Desc() metadata.TextureDesc {
	return t.desc
}
