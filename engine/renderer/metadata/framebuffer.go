package metadata

import (
	"fmt"

	"github.com/spaghettifunk/ray/engine/core"
)

/**
 * @brief One framebuffer binding point: the slot it occupies, the layout
 * the image is expected in, and its format.
 */
type Attachment struct {
	Slot   uint32
	Layout ImageLayout
	Format TextureFormat
}

func NewAttachment(slot uint32, layout ImageLayout, format TextureFormat) Attachment {
	return Attachment{Slot: slot, Layout: layout, Format: format}
}

/** @brief The ordered attachment list shared by compatible framebuffers. */
type FramebufferLayoutDesc struct {
	components []Attachment
}

// AddComponent appends an attachment. The format must be defined and the
// slot unused.
func (d *FramebufferLayoutDesc) AddComponent(component Attachment) error {
	if component.Format == TextureFormatUndefined {
		return fmt.Errorf("attachment in slot %d has no format: %w", component.Slot, core.ErrInvalidDesc)
	}
	for _, c := range d.components {
		if c.Slot == component.Slot {
			return fmt.Errorf("slot %d: %w", component.Slot, core.ErrDuplicateSlot)
		}
	}
	d.components = append(d.components, component)
	return nil
}

func (d *FramebufferLayoutDesc) Components() []Attachment {
	return d.components
}

// ColorComponents returns the attachments laid out as color targets.
func (d *FramebufferLayoutDesc) ColorComponents() []Attachment {
	var out []Attachment
	for _, c := range d.components {
		if c.Layout == ImageLayoutColorAttachmentOptimal {
			out = append(out, c)
		}
	}
	return out
}

/**
 * @brief Describes a framebuffer: its extent, the layout it conforms to,
 * the color textures in layout order and an optional shared depth-stencil.
 */
type FramebufferDesc struct {
	Width  uint32
	Height uint32
	Layout GraphicsFramebufferLayout

	textures                  []GraphicsTexture
	SharedDepthStencilTexture GraphicsTexture
}

// Attach adds a color texture. A texture can only be attached once.
func (d *FramebufferDesc) Attach(texture GraphicsTexture) error {
	if texture == nil {
		return fmt.Errorf("attach nil texture: %w", core.ErrInvalidDesc)
	}
	for _, t := range d.textures {
		if t == texture {
			return fmt.Errorf("texture already attached: %w", core.ErrDuplicateSlot)
		}
	}
	d.textures = append(d.textures, texture)
	return nil
}

func (d *FramebufferDesc) Detach(texture GraphicsTexture) {
	for i, t := range d.textures {
		if t == texture {
			d.textures = append(d.textures[:i], d.textures[i+1:]...)
			return
		}
	}
}

func (d *FramebufferDesc) Textures() []GraphicsTexture {
	return d.textures
}
