package metadata

/**
 * @brief A single shader stage: its stage and source text.
 */
type ShaderDesc struct {
	Stage ShaderStage
	/** @brief Entry point, kept for backends that need it. GLSL always uses main. */
	Main   string
	Source string
}

type ProgramDesc struct {
	Shaders []GraphicsShader
}

// ProgramUniform is an active uniform reflected from a linked program.
type ProgramUniform struct {
	Name     string
	Type     UniformType
	Location int32
	// Texture unit for samplers, binding point for uniform blocks.
	Binding uint32
	// Array length, one for scalars.
	Count int32
}

// ProgramAttribute is an active vertex input reflected from a linked program.
type ProgramAttribute struct {
	Name     string
	Location uint32
	Format   VertexFormat
}
