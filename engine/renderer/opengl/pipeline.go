package opengl

import (
	"fmt"

	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
)

// Pipeline groups a program with the state, input layout and descriptor
// layout it is drawn with.
type Pipeline struct {
	deviceRef
	desc metadata.PipelineDesc
}

var _ metadata.GraphicsPipeline = (*Pipeline)(nil)

// NewPipeline requires a program. A nil state draws with
// metadata.DefaultStateDesc.
func NewPipeline(device *Device, desc metadata.PipelineDesc) (*Pipeline, error) {
	if desc.Program == nil {
		err := fmt.Errorf("pipeline: missing program: %w", core.ErrInvalidDesc)
		core.LogError(err.Error())
		return nil, err
	}
	if desc.InputLayout != nil {
		layout := desc.InputLayout.Desc()
		for _, attr := range desc.Program.Attributes() {
			if !layoutProvides(layout, attr.Name) {
				core.LogWarn("pipeline: attribute '%s' is not fed by the input layout", attr.Name)
			}
		}
	}
	return &Pipeline{deviceRef: device.ref(), desc: desc}, nil
}

func layoutProvides(layout metadata.InputLayoutDesc, name string) bool {
	for _, c := range layout.Components {
		if attributeName(c) == name {
			return true
		}
	}
	return false
}

func (p *Pipeline) Close() {}

func (p *Pipeline) Desc() metadata.PipelineDesc {
	return p.desc
}

// stateDesc returns the state to apply for the pipeline.
func (p *Pipeline) stateDesc() metadata.StateDesc {
	if p.desc.State == nil {
		return metadata.DefaultStateDesc()
	}
	return p.desc.State.Desc()
}
