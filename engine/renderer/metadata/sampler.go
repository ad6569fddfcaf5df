package metadata

type SamplerDesc struct {
	Wrap    SamplerWrap
	Filter  SamplerFilter
	Anis    SamplerAnis
	Compare CompareFunction
}

func NewSamplerDesc(wrap SamplerWrap, filter SamplerFilter) SamplerDesc {
	return SamplerDesc{Wrap: wrap, Filter: filter}
}
