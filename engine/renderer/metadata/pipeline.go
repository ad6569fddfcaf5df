package metadata

/**
 * @brief Everything a draw needs bound besides buffers and uniform values.
 */
type PipelineDesc struct {
	Program             GraphicsProgram
	State               GraphicsState
	InputLayout         GraphicsInputLayout
	DescriptorSetLayout GraphicsDescriptorSetLayout
}
