package opengl

import (
	"fmt"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/gl"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// FramebufferLayout is the validated attachment list framebuffers conform to.
type FramebufferLayout struct {
	deviceRef
	desc metadata.FramebufferLayoutDesc
}

var _ metadata.GraphicsFramebufferLayout = (*FramebufferLayout)(nil)

func NewFramebufferLayout(device *Device, desc metadata.FramebufferLayoutDesc) (*FramebufferLayout, error) {
	components := desc.Components()
	if len(components) == 0 {
		err := fmt.Errorf("framebuffer layout: no attachments: %w", core.ErrInvalidDesc)
		core.LogError(err.Error())
		return nil, err
	}
	colors := len(desc.ColorComponents())
	if limit := int(device.properties.MaxFramebufferColorAttachments); colors > limit || (device.isES2() && colors > 1) {
		err := fmt.Errorf("framebuffer layout: %d color attachments: %w", colors, core.ErrUnsupported)
		core.LogError(err.Error())
		return nil, err
	}
	for _, c := range components {
		if device.tables.TextureInternalFormat(c.Format) == gl.InvalidEnum {
			err := fmt.Errorf("framebuffer layout: slot %d format %d: %w", c.Slot, c.Format, core.ErrUnsupported)
			core.LogError(err.Error())
			return nil, err
		}
	}
	return &FramebufferLayout{deviceRef: device.ref(), desc: desc}, nil
}

func (l *FramebufferLayout) Close() {}

func (l *FramebufferLayout) Desc() metadata.FramebufferLayoutDesc {
	return l.desc
}

// Framebuffer is a render texture: a framebuffer object with its color
// textures and an optional depth-stencil texture attached.
type Framebuffer struct {
	deviceRef
	desc   metadata.FramebufferDesc
	handle uint32
	active bool
	layer  uint32
	// layered textures are re-attached on the next activation
	layerDirty bool
}

var _ metadata.GraphicsFramebuffer = (*Framebuffer)(nil)

func NewFramebuffer(device *Device, desc metadata.FramebufferDesc) (*Framebuffer, error) {
	f := &Framebuffer{deviceRef: device.ref()}
	if err := f.Setup(desc); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Framebuffer) Setup(desc metadata.FramebufferDesc) error {
	if f.handle != 0 {
		return fmt.Errorf("framebuffer: %w", core.ErrAlreadySetup)
	}
	device, err := f.owner()
	if err != nil {
		return err
	}
	if desc.Layout == nil {
		err := fmt.Errorf("framebuffer: missing layout: %w", core.ErrInvalidDesc)
		core.LogError(err.Error())
		return err
	}
	textures := desc.Textures()
	if len(textures) == 0 && desc.SharedDepthStencilTexture == nil {
		err := fmt.Errorf("framebuffer: nothing to attach: %w", core.ErrInvalidDesc)
		core.LogError(err.Error())
		return err
	}
	if device.isES2() && len(textures) > 1 {
		err := fmt.Errorf("framebuffer: %d color attachments: %w", len(textures), core.ErrUnsupported)
		core.LogError(err.Error())
		return err
	}
	if desc.Width == 0 || desc.Height == 0 {
		first := desc.SharedDepthStencilTexture
		if len(textures) > 0 {
			first = textures[0]
		}
		desc.Width, desc.Height = first.Desc().Width, first.Desc().Height
	}

	fns := device.fns
	handle := fns.GenFramebuffer()
	if handle == 0 {
		err := fmt.Errorf("framebuffer: GenFramebuffer failed: %w", core.ErrNativeFailure)
		core.LogError(err.Error())
		return err
	}
	fns.BindFramebuffer(gl.Framebuffer, handle)

	drawBuffers := make([]uint32, 0, len(textures))
	for i, tex := range textures {
		attachment := gl.ColorAttachment0 + uint32(i)
		attachTexture(fns, device.tables, tex, attachment, 0)
		drawBuffers = append(drawBuffers, attachment)
	}
	if depth := desc.SharedDepthStencilTexture; depth != nil {
		for _, attachment := range depthAttachments(device, depth.Desc().Format) {
			attachTexture(fns, device.tables, depth, attachment, 0)
		}
	}
	if !device.isES2() && device.features.DrawBuffers {
		if len(drawBuffers) == 0 {
			fns.DrawBuffers([]uint32{gl.None})
			fns.ReadBuffer(gl.None)
		} else {
			fns.DrawBuffers(drawBuffers)
		}
	}

	if status := fns.CheckFramebufferStatus(gl.Framebuffer); status != gl.FramebufferComplete {
		fns.BindFramebuffer(gl.Framebuffer, 0)
		fns.DeleteFramebuffer(handle)
		err := fmt.Errorf("framebuffer: %s: %w", framebufferStatusString(status), core.ErrNativeFailure)
		core.LogError(err.Error())
		return err
	}
	fns.BindFramebuffer(gl.Framebuffer, 0)

	f.handle = handle
	f.desc = desc
	return nil
}

// depthAttachments returns the attachment points a depth or stencil format
// binds to. ES2 has no combined depth-stencil point.
func depthAttachments(device *Device, format metadata.TextureFormat) []uint32 {
	switch {
	case format.IsDepth() && format.IsStencil():
		if device.isES2() {
			return []uint32{gl.DepthAttachment, gl.StencilAttachment}
		}
		return []uint32{gl.DepthStencilAttachment}
	case format.IsStencil():
		return []uint32{gl.StencilAttachment}
	}
	return []uint32{gl.DepthAttachment}
}

func isLayeredTarget(target uint32) bool {
	switch target {
	case gl.Texture2DArray, gl.Texture3D, gl.TextureCubeMapArray, gl.Texture2DMultisampleArray:
		return true
	}
	return false
}

// attachTexture binds one texture to the framebuffer bound to gl.Framebuffer.
func attachTexture(fns gl.Functions, tables Tables, tex metadata.GraphicsTexture, attachment, layer uint32) {
	desc := tex.Desc()
	target := tables.TextureTarget(desc.Dim, desc.IsMultisample())
	switch {
	case isLayeredTarget(target):
		fns.FramebufferTextureLayer(gl.Framebuffer, attachment, tex.InstanceID(), 0, int32(layer))
	case target == gl.TextureCubeMap:
		fns.FramebufferTexture2D(gl.Framebuffer, attachment, gl.TextureCubeMapPositiveX+layer%6, tex.InstanceID(), 0)
	default:
		fns.FramebufferTexture2D(gl.Framebuffer, attachment, target, tex.InstanceID(), 0)
	}
}

func framebufferStatusString(status uint32) string {
	switch status {
	case gl.FramebufferIncompleteAttachment:
		return "incomplete attachment"
	case gl.FramebufferIncompleteMissingAttachment:
		return "missing attachment"
	case gl.FramebufferIncompleteDimensions:
		return "incomplete dimensions"
	case gl.FramebufferIncompleteDrawBuffer:
		return "incomplete draw buffer"
	case gl.FramebufferIncompleteReadBuffer:
		return "incomplete read buffer"
	case gl.FramebufferIncompleteMultisample:
		return "incomplete multisample"
	case gl.FramebufferIncompleteLayerTargets:
		return "incomplete layer targets"
	case gl.FramebufferUnsupported:
		return "unsupported"
	}
	return fmt.Sprintf("unknown status 0x%X", status)
}

func (f *Framebuffer) Close() {
	if f.handle == 0 {
		return
	}
	if device, err := f.owner(); err == nil {
		if f.active {
			device.fns.BindFramebuffer(gl.Framebuffer, 0)
		}
		device.fns.DeleteFramebuffer(f.handle)
	}
	f.handle = 0
	f.active = false
	f.layer = 0
	f.layerDirty = false
	f.desc = metadata.FramebufferDesc{}
}

func (f *Framebuffer) InstanceID() uint32 {
	return f.handle
}

func (f *Framebuffer) Desc() metadata.FramebufferDesc {
	return f.desc
}

// SetActive binds the framebuffer when activated. Deactivation only clears
// the flag; the next target binds over it.
func (f *Framebuffer) SetActive(active bool) {
	device, err := f.owner()
	if err != nil || f.handle == 0 {
		return
	}
	if active {
		device.fns.BindFramebuffer(gl.Framebuffer, f.handle)
		if f.layerDirty {
			f.attachLayer(device)
		}
	}
	f.active = active
}

func (f *Framebuffer) Active() bool {
	return f.active
}

// SetLayer selects the layer rendered into for array, 3D and cube textures.
func (f *Framebuffer) SetLayer(layer uint32) {
	if f.layer == layer {
		return
	}
	f.layer = layer
	f.layerDirty = true
	if f.active {
		if device, err := f.owner(); err == nil {
			f.attachLayer(device)
		}
	}
}

func (f *Framebuffer) attachLayer(device *Device) {
	for i, tex := range f.desc.Textures() {
		desc := tex.Desc()
		target := device.tables.TextureTarget(desc.Dim, desc.IsMultisample())
		if isLayeredTarget(target) || target == gl.TextureCubeMap {
			attachTexture(device.fns, device.tables, tex, gl.ColorAttachment0+uint32(i), f.layer)
		}
	}
	if depth := f.desc.SharedDepthStencilTexture; depth != nil {
		desc := depth.Desc()
		target := device.tables.TextureTarget(desc.Dim, desc.IsMultisample())
		if isLayeredTarget(target) || target == gl.TextureCubeMap {
			for _, attachment := range depthAttachments(device, desc.Format) {
				attachTexture(device.fns, device.tables, depth, attachment, f.layer)
			}
		}
	}
	f.layerDirty = false
}

func (f *Framebuffer) Layer() uint32 {
	return f.layer
}

// Discard invalidates the contents of the given layout slots, or of every
// attachment when slots is empty. The framebuffer must be active.
func (f *Framebuffer) Discard(slots []uint32) {
	device, err := f.owner()
	if err != nil || f.handle == 0 {
		return
	}
	if device.isES2() || !device.features.InvalidateFramebuffer {
		core.LogWarn("framebuffer: discard is not supported by %s", device.desc.Type)
		return
	}
	if !f.active {
		core.LogWarn("framebuffer: discard on inactive framebuffer %d", f.handle)
		return
	}
	attachments := f.attachmentsFor(device, slots)
	if len(attachments) > 0 {
		device.fns.InvalidateFramebuffer(gl.Framebuffer, attachments)
	}
}

func (f *Framebuffer) attachmentsFor(device *Device, slots []uint32) []uint32 {
	var out []uint32
	colorIndex := uint32(0)
	layout := f.desc.Layout.Desc()
	for _, c := range layout.Components() {
		var points []uint32
		if c.Format.IsDepth() || c.Format.IsStencil() {
			points = depthAttachments(device, c.Format)
		} else {
			points = []uint32{gl.ColorAttachment0 + colorIndex}
			colorIndex++
		}
		if len(slots) == 0 || containsSlot(slots, c.Slot) {
			out = append(out, points...)
		}
	}
	return out
}

func containsSlot(slots []uint32, slot uint32) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

// ResolveTexture is the first color texture, or the depth-stencil texture
// of a depth-only framebuffer.
func (f *Framebuffer) ResolveTexture() metadata.GraphicsTexture {
	if textures := f.desc.Textures(); len(textures) > 0 {
		return textures[0]
	}
	return f.desc.SharedDepthStencilTexture
}
