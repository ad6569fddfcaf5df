package postprocess

import (
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

const ColorGradingMaterial = "sys:fx/colorgrading.yaml"

// lutSize is the edge of the lookup cube, stored as lutSize slices side by
// side in a 2D texture.
const lutSize = 16

// ColorGrading remaps colors through a lookup texture. Without one it uses
// an identity lookup.
type ColorGrading struct {
	Base
	effect

	lookupName string
	lookup     metadata.GraphicsTexture
	ownsLookup bool

	texSource *metadata.MaterialParam
	texLookup *metadata.MaterialParam
}

var _ RenderPostProcess = (*ColorGrading)(nil)

func NewColorGrading(lookup string) *ColorGrading {
	c := &ColorGrading{lookupName: lookup}
	c.Init(c, metadata.RenderQueuePostprocess)
	return c
}

func (c *ColorGrading) OnActivate(p Pipeline) error {
	if err := c.load(p, ColorGradingMaterial, "grading"); err != nil {
		return err
	}
	c.texSource = c.param("texSource", metadata.UniformTypeTexture)
	c.texLookup = c.param("texColorGrading", metadata.UniformTypeTexture)

	var err error
	if c.lookupName != "" {
		c.lookup, err = p.CreateTextureFromFile(c.lookupName)
	} else {
		c.lookup, err = p.CreateTexture(IdentityLookupDesc())
		c.ownsLookup = err == nil
	}
	if err != nil {
		c.release(p)
		return err
	}
	c.texLookup.SetTexture(c.lookup, nil)
	return nil
}

func (c *ColorGrading) OnDeactivate(p Pipeline) {
	if c.ownsLookup && c.lookup != nil {
		c.lookup.Close()
	} else if c.lookup != nil {
		p.ReleaseTexture(c.lookupName)
	}
	c.lookup, c.ownsLookup = nil, false
	c.release(p)
	c.texSource, c.texLookup = nil, nil
}

func (c *ColorGrading) Lookup() metadata.GraphicsTexture {
	return c.lookup
}

func (c *ColorGrading) OnRender(p Pipeline, source, dest metadata.GraphicsFramebuffer) bool {
	c.blit(p, source, dest, c.texSource)
	return true
}

// IdentityLookupDesc describes a lookup texture that maps every color to
// itself.
func IdentityLookupDesc() metadata.TextureDesc {
	desc := metadata.NewTextureDesc(lutSize*lutSize, lutSize, metadata.TextureDim2D, metadata.TextureFormatR8G8B8A8)
	desc.Name = "identity_lut"
	desc.SamplerWrap = metadata.SamplerWrapClampToEdge
	stream := make([]byte, 0, lutSize*lutSize*lutSize*4)
	for g := 0; g < lutSize; g++ {
		for b := 0; b < lutSize; b++ {
			for r := 0; r < lutSize; r++ {
				stream = append(stream, channel(r), channel(g), channel(b), 255)
			}
		}
	}
	desc.Stream = stream
	return desc
}

func channel(i int) byte {
	return byte(i * 255 / (lutSize - 1))
}
