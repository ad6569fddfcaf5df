package gl

// DebugMessage is one entry of the native debug message log.
type DebugMessage struct {
	Source   uint32
	Type     uint32
	ID       uint32
	Severity uint32
	Message  string
}

// Functions is the table of GL entry points the backends call. Every method
// acts on the context current on the calling thread.
//
// Slices stand in for pointer+length pairs, and Gen*/Delete* take a single
// name since the backends never batch them.
type Functions interface {
	GetError() uint32
	GetString(name uint32) string
	GetStringi(name, index uint32) string
	GetIntegerv(pname uint32) int32
	GetFloatv(pname uint32) float32
	Finish()
	Flush()

	Enable(cap uint32)
	Disable(cap uint32)
	Viewport(x, y, width, height int32)
	ViewportIndexedf(index uint32, x, y, width, height float32)
	Scissor(x, y, width, height int32)
	ScissorIndexed(index uint32, left, bottom, width, height int32)
	ClearColor(r, g, b, a float32)
	ClearDepthf(depth float32)
	ClearStencil(s int32)
	Clear(mask uint32)
	ColorMask(r, g, b, a bool)
	ColorMaski(index uint32, r, g, b, a bool)
	DepthMask(flag bool)
	DepthFunc(fn uint32)
	DepthRangef(near, far float32)
	CullFace(mode uint32)
	FrontFace(mode uint32)
	PolygonMode(face, mode uint32)
	LineWidth(width float32)
	PolygonOffset(factor, units float32)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32)
	BlendEquationSeparate(modeRGB, modeAlpha uint32)
	BlendColor(r, g, b, a float32)
	StencilFuncSeparate(face, fn uint32, ref int32, mask uint32)
	StencilOpSeparate(face, sfail, dpfail, dppass uint32)
	StencilMaskSeparate(face, mask uint32)
	PixelStorei(pname uint32, param int32)

	GenTexture() uint32
	DeleteTexture(texture uint32)
	BindTexture(target, texture uint32)
	ActiveTexture(unit uint32)
	TexParameteri(target, pname uint32, param int32)
	TexParameterf(target, pname uint32, param float32)
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte)
	TexImage3D(target uint32, level, internalFormat, width, height, depth int32, format, xtype uint32, pixels []byte)
	TexStorage2D(target uint32, levels int32, internalFormat uint32, width, height int32)
	TexStorage3D(target uint32, levels int32, internalFormat uint32, width, height, depth int32)
	TexStorage2DMultisample(target uint32, samples int32, internalFormat uint32, width, height int32, fixedLocations bool)
	TexStorage3DMultisample(target uint32, samples int32, internalFormat uint32, width, height, depth int32, fixedLocations bool)
	TexSubImage2D(target uint32, level, x, y, width, height int32, format, xtype uint32, pixels []byte)
	TexSubImage3D(target uint32, level, x, y, z, width, height, depth int32, format, xtype uint32, pixels []byte)
	CompressedTexImage2D(target uint32, level int32, internalFormat uint32, width, height int32, data []byte)
	CompressedTexSubImage2D(target uint32, level, x, y, width, height int32, format uint32, data []byte)
	CompressedTexSubImage3D(target uint32, level, x, y, z, width, height, depth int32, format uint32, data []byte)
	GenerateMipmap(target uint32)

	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	BindBuffer(target, buffer uint32)
	BindBufferBase(target, index, buffer uint32)
	BufferData(target uint32, size int, data []byte, usage uint32)
	BufferSubData(target uint32, offset int, data []byte)
	MapBufferRange(target uint32, offset, length int, access uint32) []byte
	UnmapBuffer(target uint32) bool

	GenVertexArray() uint32
	DeleteVertexArray(array uint32)
	BindVertexArray(array uint32)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)
	VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset int)
	VertexAttribDivisor(index, divisor uint32)

	GenFramebuffer() uint32
	DeleteFramebuffer(framebuffer uint32)
	BindFramebuffer(target, framebuffer uint32)
	FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32)
	FramebufferTextureLayer(target, attachment, texture uint32, level, layer int32)
	CheckFramebufferStatus(target uint32) uint32
	DrawBuffers(buffers []uint32)
	ReadBuffer(src uint32)
	ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte)
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32)
	InvalidateFramebuffer(target uint32, attachments []uint32)

	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderi(shader, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgrami(program, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	GetActiveUniform(program, index uint32) (name string, size int32, xtype uint32)
	GetActiveAttrib(program, index uint32) (name string, size int32, xtype uint32)
	GetUniformLocation(program uint32, name string) int32
	GetAttribLocation(program uint32, name string) int32
	GetUniformBlockIndex(program uint32, name string) uint32
	UniformBlockBinding(program, blockIndex, binding uint32)

	Uniform1i(location, v int32)
	Uniform1iv(location int32, v []int32)
	Uniform2iv(location int32, v []int32)
	Uniform3iv(location int32, v []int32)
	Uniform4iv(location int32, v []int32)
	Uniform1f(location int32, v float32)
	Uniform1fv(location int32, v []float32)
	Uniform2fv(location int32, v []float32)
	Uniform3fv(location int32, v []float32)
	Uniform4fv(location int32, v []float32)
	UniformMatrix3fv(location int32, transpose bool, v []float32)
	UniformMatrix4fv(location int32, transpose bool, v []float32)

	GenSampler() uint32
	DeleteSampler(sampler uint32)
	BindSampler(unit, sampler uint32)
	SamplerParameteri(sampler, pname uint32, param int32)
	SamplerParameterf(sampler, pname uint32, param float32)

	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset int)
	DrawArraysInstanced(mode uint32, first, count, instances int32)
	DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32)

	DebugMessageControl(source, xtype, severity uint32, enabled bool)
	DebugMessages(max int) []DebugMessage
}
