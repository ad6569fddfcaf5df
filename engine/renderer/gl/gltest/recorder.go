// Package gltest provides a recording implementation of gl.Functions for
// exercising the backends without a native context.
package gltest

import (
	"strings"

	"github.com/spaghettifunk/ray/engine/renderer/gl"
)

// Call is a single recorded entry point invocation.
type Call struct {
	Name string
	Args []any
}

// Variable describes an active uniform or attribute reported after linking.
type Variable struct {
	Name string
	Size int32
	Type uint32
}

// Recorder implements gl.Functions by recording each call. Object names are
// handed out incrementally starting at 1.
type Recorder struct {
	Version       string
	ExtensionList []string
	Integers      map[uint32]int32
	Floats        map[uint32]float32

	FailCompile       bool
	FailLink          bool
	FramebufferStatus uint32

	Uniforms   []Variable
	Attributes []Variable

	DebugLog []gl.DebugMessage

	// Buffers holds the contents last uploaded to each buffer name.
	Buffers map[uint32][]byte

	calls []Call
	next  uint32
	bound map[uint32]uint32
}

var _ gl.Functions = (*Recorder)(nil)

// NewRecorder returns a recorder reporting a desktop 4.6 context.
func NewRecorder() *Recorder {
	return &Recorder{
		Version: "4.6.0 Recorder",
		Integers: map[uint32]int32{
			gl.MaxTextureSize:       16384,
			gl.MaxViewports:         16,
			gl.MaxVertexAttribs:     16,
			gl.MaxUniformBlockSize:  65536,
			gl.MaxColorAttachments:  8,
			gl.MaxDrawBuffers:       8,
			gl.MaxTextureImageUnits: 32,
			gl.MaxSamples:           8,
		},
		Floats:            map[uint32]float32{},
		FramebufferStatus: gl.FramebufferComplete,
		Buffers:           map[uint32][]byte{},
		bound:             map[uint32]uint32{},
	}
}

// NewES2Recorder returns a recorder reporting an OpenGL ES 2.0 context.
func NewES2Recorder() *Recorder {
	r := NewRecorder()
	r.Version = "OpenGL ES 2.0 Recorder"
	r.Integers[gl.MaxViewports] = 0
	return r
}

// NewES3Recorder returns a recorder reporting an OpenGL ES 3.2 context.
func NewES3Recorder() *Recorder {
	r := NewRecorder()
	r.Version = "OpenGL ES 3.2 Recorder"
	return r
}

func (r *Recorder) record(name string, args ...any) {
	r.calls = append(r.calls, Call{Name: name, Args: args})
}

func (r *Recorder) gen(name string) uint32 {
	r.next++
	r.record(name, r.next)
	return r.next
}

// Calls returns every recorded call, or only those matching name when given.
func (r *Recorder) Calls(name ...string) []Call {
	if len(name) == 0 {
		return r.calls
	}
	var out []Call
	for _, c := range r.calls {
		if c.Name == name[0] {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many times name was called.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Last returns the most recent call to name.
func (r *Recorder) Last(name string) (Call, bool) {
	for i := len(r.calls) - 1; i >= 0; i-- {
		if r.calls[i].Name == name {
			return r.calls[i], true
		}
	}
	return Call{}, false
}

// Names returns the recorded call names in order, useful for asserting on
// sequences.
func (r *Recorder) Names() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Name
	}
	return out
}

// Reset forgets the recorded calls. Object names keep increasing.
func (r *Recorder) Reset() { r.calls = nil }

func (r *Recorder) GetError() uint32 { return gl.NoError }

func (r *Recorder) GetString(name uint32) string {
	switch name {
	case gl.Version:
		return r.Version
	case gl.Vendor:
		return "ray"
	case gl.Renderer:
		return "recorder"
	case gl.Extensions:
		return strings.Join(r.ExtensionList, " ")
	case gl.ShadingLanguageVersion:
		return "4.60"
	}
	return ""
}

func (r *Recorder) GetStringi(name, index uint32) string {
	if name == gl.Extensions && int(index) < len(r.ExtensionList) {
		return r.ExtensionList[index]
	}
	return ""
}

func (r *Recorder) GetIntegerv(pname uint32) int32 {
	if pname == gl.NumExtensions {
		return int32(len(r.ExtensionList))
	}
	return r.Integers[pname]
}

func (r *Recorder) GetFloatv(pname uint32) float32 { return r.Floats[pname] }

func (r *Recorder) Finish() { r.record("Finish") }
func (r *Recorder) Flush()  { r.record("Flush") }

func (r *Recorder) Enable(cap uint32)  { r.record("Enable", cap) }
func (r *Recorder) Disable(cap uint32) { r.record("Disable", cap) }

func (r *Recorder) Viewport(x, y, width, height int32) { r.record("Viewport", x, y, width, height) }

func (r *Recorder) ViewportIndexedf(index uint32, x, y, width, height float32) {
	r.record("ViewportIndexedf", index, x, y, width, height)
}

func (r *Recorder) Scissor(x, y, width, height int32) { r.record("Scissor", x, y, width, height) }

func (r *Recorder) ScissorIndexed(index uint32, left, bottom, width, height int32) {
	r.record("ScissorIndexed", index, left, bottom, width, height)
}

func (r *Recorder) ClearColor(cr, g, b, a float32) { r.record("ClearColor", cr, g, b, a) }
func (r *Recorder) ClearDepthf(depth float32)      { r.record("ClearDepthf", depth) }
func (r *Recorder) ClearStencil(s int32)           { r.record("ClearStencil", s) }
func (r *Recorder) Clear(mask uint32)              { r.record("Clear", mask) }

func (r *Recorder) ColorMask(cr, g, b, a bool) { r.record("ColorMask", cr, g, b, a) }

func (r *Recorder) ColorMaski(index uint32, cr, g, b, a bool) {
	r.record("ColorMaski", index, cr, g, b, a)
}

func (r *Recorder) DepthMask(flag bool)           { r.record("DepthMask", flag) }
func (r *Recorder) DepthFunc(fn uint32)           { r.record("DepthFunc", fn) }
func (r *Recorder) DepthRangef(near, far float32) { r.record("DepthRangef", near, far) }
func (r *Recorder) CullFace(mode uint32)          { r.record("CullFace", mode) }
func (r *Recorder) FrontFace(mode uint32)         { r.record("FrontFace", mode) }
func (r *Recorder) PolygonMode(face, mode uint32) { r.record("PolygonMode", face, mode) }
func (r *Recorder) LineWidth(width float32)       { r.record("LineWidth", width) }

func (r *Recorder) PolygonOffset(factor, units float32) { r.record("PolygonOffset", factor, units) }

func (r *Recorder) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	r.record("BlendFuncSeparate", srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (r *Recorder) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	r.record("BlendEquationSeparate", modeRGB, modeAlpha)
}

func (r *Recorder) BlendColor(cr, g, b, a float32) { r.record("BlendColor", cr, g, b, a) }

func (r *Recorder) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	r.record("StencilFuncSeparate", face, fn, ref, mask)
}

func (r *Recorder) StencilOpSeparate(face, sfail, dpfail, dppass uint32) {
	r.record("StencilOpSeparate", face, sfail, dpfail, dppass)
}

func (r *Recorder) StencilMaskSeparate(face, mask uint32) {
	r.record("StencilMaskSeparate", face, mask)
}

func (r *Recorder) PixelStorei(pname uint32, param int32) { r.record("PixelStorei", pname, param) }

func (r *Recorder) GenTexture() uint32                 { return r.gen("GenTexture") }
func (r *Recorder) DeleteTexture(texture uint32)       { r.record("DeleteTexture", texture) }
func (r *Recorder) BindTexture(target, texture uint32) { r.record("BindTexture", target, texture) }
func (r *Recorder) ActiveTexture(unit uint32)          { r.record("ActiveTexture", unit) }

func (r *Recorder) TexParameteri(target, pname uint32, param int32) {
	r.record("TexParameteri", target, pname, param)
}

func (r *Recorder) TexParameterf(target, pname uint32, param float32) {
	r.record("TexParameterf", target, pname, param)
}

func (r *Recorder) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	r.record("TexImage2D", target, level, internalFormat, width, height, format, xtype, len(pixels))
}

func (r *Recorder) TexImage3D(target uint32, level, internalFormat, width, height, depth int32, format, xtype uint32, pixels []byte) {
	r.record("TexImage3D", target, level, internalFormat, width, height, depth, format, xtype, len(pixels))
}

func (r *Recorder) TexStorage2D(target uint32, levels int32, internalFormat uint32, width, height int32) {
	r.record("TexStorage2D", target, levels, internalFormat, width, height)
}

func (r *Recorder) TexStorage3D(target uint32, levels int32, internalFormat uint32, width, height, depth int32) {
	r.record("TexStorage3D", target, levels, internalFormat, width, height, depth)
}

func (r *Recorder) TexStorage2DMultisample(target uint32, samples int32, internalFormat uint32, width, height int32, fixedLocations bool) {
	r.record("TexStorage2DMultisample", target, samples, internalFormat, width, height, fixedLocations)
}

func (r *Recorder) TexStorage3DMultisample(target uint32, samples int32, internalFormat uint32, width, height, depth int32, fixedLocations bool) {
	r.record("TexStorage3DMultisample", target, samples, internalFormat, width, height, depth, fixedLocations)
}

func (r *Recorder) TexSubImage2D(target uint32, level, x, y, width, height int32, format, xtype uint32, pixels []byte) {
	r.record("TexSubImage2D", target, level, x, y, width, height, format, xtype, len(pixels))
}

func (r *Recorder) TexSubImage3D(target uint32, level, x, y, z, width, height, depth int32, format, xtype uint32, pixels []byte) {
	r.record("TexSubImage3D", target, level, x, y, z, width, height, depth, format, xtype, len(pixels))
}

func (r *Recorder) CompressedTexImage2D(target uint32, level int32, internalFormat uint32, width, height int32, data []byte) {
	r.record("CompressedTexImage2D", target, level, internalFormat, width, height, len(data))
}

func (r *Recorder) CompressedTexSubImage2D(target uint32, level, x, y, width, height int32, format uint32, data []byte) {
	r.record("CompressedTexSubImage2D", target, level, x, y, width, height, format, len(data))
}

func (r *Recorder) CompressedTexSubImage3D(target uint32, level, x, y, z, width, height, depth int32, format uint32, data []byte) {
	r.record("CompressedTexSubImage3D", target, level, x, y, z, width, height, depth, format, len(data))
}

func (r *Recorder) GenerateMipmap(target uint32) { r.record("GenerateMipmap", target) }

func (r *Recorder) GenBuffer() uint32 { return r.gen("GenBuffer") }

func (r *Recorder) DeleteBuffer(buffer uint32) {
	r.record("DeleteBuffer", buffer)
	delete(r.Buffers, buffer)
}

func (r *Recorder) BindBuffer(target, buffer uint32) {
	r.record("BindBuffer", target, buffer)
	r.bound[target] = buffer
}

func (r *Recorder) BindBufferBase(target, index, buffer uint32) {
	r.record("BindBufferBase", target, index, buffer)
	r.bound[target] = buffer
}

func (r *Recorder) BufferData(target uint32, size int, data []byte, usage uint32) {
	r.record("BufferData", target, size, len(data), usage)
	buf := make([]byte, size)
	copy(buf, data)
	r.Buffers[r.bound[target]] = buf
}

func (r *Recorder) BufferSubData(target uint32, offset int, data []byte) {
	r.record("BufferSubData", target, offset, len(data))
	buf := r.Buffers[r.bound[target]]
	if offset+len(data) <= len(buf) {
		copy(buf[offset:], data)
	}
}

func (r *Recorder) MapBufferRange(target uint32, offset, length int, access uint32) []byte {
	r.record("MapBufferRange", target, offset, length, access)
	buf := r.Buffers[r.bound[target]]
	if offset+length > len(buf) {
		return nil
	}
	return buf[offset : offset+length]
}

func (r *Recorder) UnmapBuffer(target uint32) bool {
	r.record("UnmapBuffer", target)
	return true
}

func (r *Recorder) GenVertexArray() uint32         { return r.gen("GenVertexArray") }
func (r *Recorder) DeleteVertexArray(array uint32) { r.record("DeleteVertexArray", array) }
func (r *Recorder) BindVertexArray(array uint32)   { r.record("BindVertexArray", array) }

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray", index)
}

func (r *Recorder) DisableVertexAttribArray(index uint32) {
	r.record("DisableVertexAttribArray", index)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	r.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
}

func (r *Recorder) VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset int) {
	r.record("VertexAttribIPointer", index, size, xtype, stride, offset)
}

func (r *Recorder) VertexAttribDivisor(index, divisor uint32) {
	r.record("VertexAttribDivisor", index, divisor)
}

func (r *Recorder) GenFramebuffer() uint32               { return r.gen("GenFramebuffer") }
func (r *Recorder) DeleteFramebuffer(framebuffer uint32) { r.record("DeleteFramebuffer", framebuffer) }

func (r *Recorder) BindFramebuffer(target, framebuffer uint32) {
	r.record("BindFramebuffer", target, framebuffer)
}

func (r *Recorder) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {
	r.record("FramebufferTexture2D", target, attachment, textarget, texture, level)
}

func (r *Recorder) FramebufferTextureLayer(target, attachment, texture uint32, level, layer int32) {
	r.record("FramebufferTextureLayer", target, attachment, texture, level, layer)
}

func (r *Recorder) CheckFramebufferStatus(target uint32) uint32 {
	r.record("CheckFramebufferStatus", target)
	return r.FramebufferStatus
}

func (r *Recorder) DrawBuffers(buffers []uint32) {
	r.record("DrawBuffers", append([]uint32(nil), buffers...))
}

func (r *Recorder) ReadBuffer(src uint32) { r.record("ReadBuffer", src) }

func (r *Recorder) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte) {
	r.record("ReadPixels", x, y, width, height, format, xtype, len(pixels))
}

func (r *Recorder) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	r.record("BlitFramebuffer", srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
}

func (r *Recorder) InvalidateFramebuffer(target uint32, attachments []uint32) {
	r.record("InvalidateFramebuffer", target, append([]uint32(nil), attachments...))
}

func (r *Recorder) CreateShader(xtype uint32) uint32 {
	r.next++
	r.record("CreateShader", xtype, r.next)
	return r.next
}

func (r *Recorder) ShaderSource(shader uint32, source string) {
	r.record("ShaderSource", shader, source)
}

func (r *Recorder) CompileShader(shader uint32) { r.record("CompileShader", shader) }

func (r *Recorder) GetShaderi(shader, pname uint32) int32 {
	if pname == gl.CompileStatus {
		if r.FailCompile {
			return gl.False
		}
		return gl.True
	}
	return 0
}

func (r *Recorder) GetShaderInfoLog(shader uint32) string {
	if r.FailCompile {
		return "0:1(1): error: syntax error"
	}
	return ""
}

func (r *Recorder) DeleteShader(shader uint32) { r.record("DeleteShader", shader) }

func (r *Recorder) CreateProgram() uint32 { return r.gen("CreateProgram") }

func (r *Recorder) AttachShader(program, shader uint32) { r.record("AttachShader", program, shader) }
func (r *Recorder) DetachShader(program, shader uint32) { r.record("DetachShader", program, shader) }
func (r *Recorder) LinkProgram(program uint32)          { r.record("LinkProgram", program) }

func (r *Recorder) GetProgrami(program, pname uint32) int32 {
	switch pname {
	case gl.LinkStatus:
		if r.FailLink {
			return gl.False
		}
		return gl.True
	case gl.ActiveUniforms:
		return int32(len(r.Uniforms))
	case gl.ActiveAttributes:
		return int32(len(r.Attributes))
	}
	return 0
}

func (r *Recorder) GetProgramInfoLog(program uint32) string {
	if r.FailLink {
		return "error: linking failed"
	}
	return ""
}

func (r *Recorder) DeleteProgram(program uint32) { r.record("DeleteProgram", program) }
func (r *Recorder) UseProgram(program uint32)    { r.record("UseProgram", program) }

func (r *Recorder) GetActiveUniform(program, index uint32) (string, int32, uint32) {
	if int(index) >= len(r.Uniforms) {
		return "", 0, 0
	}
	v := r.Uniforms[index]
	return v.Name, v.Size, v.Type
}

func (r *Recorder) GetActiveAttrib(program, index uint32) (string, int32, uint32) {
	if int(index) >= len(r.Attributes) {
		return "", 0, 0
	}
	v := r.Attributes[index]
	return v.Name, v.Size, v.Type
}

// GetUniformLocation returns the index of name in Uniforms, or -1.
func (r *Recorder) GetUniformLocation(program uint32, name string) int32 {
	for i, v := range r.Uniforms {
		if v.Name == name {
			return int32(i)
		}
	}
	return -1
}

// GetAttribLocation returns the index of name in Attributes, or -1.
func (r *Recorder) GetAttribLocation(program uint32, name string) int32 {
	for i, v := range r.Attributes {
		if v.Name == name {
			return int32(i)
		}
	}
	return -1
}

func (r *Recorder) GetUniformBlockIndex(program uint32, name string) uint32 {
	return gl.InvalidIndex
}

func (r *Recorder) UniformBlockBinding(program, blockIndex, binding uint32) {
	r.record("UniformBlockBinding", program, blockIndex, binding)
}

func (r *Recorder) Uniform1i(location, v int32) { r.record("Uniform1i", location, v) }

func (r *Recorder) Uniform1iv(location int32, v []int32) {
	r.record("Uniform1iv", location, append([]int32(nil), v...))
}

func (r *Recorder) Uniform2iv(location int32, v []int32) {
	r.record("Uniform2iv", location, append([]int32(nil), v...))
}

func (r *Recorder) Uniform3iv(location int32, v []int32) {
	r.record("Uniform3iv", location, append([]int32(nil), v...))
}

func (r *Recorder) Uniform4iv(location int32, v []int32) {
	r.record("Uniform4iv", location, append([]int32(nil), v...))
}

func (r *Recorder) Uniform1f(location int32, v float32) { r.record("Uniform1f", location, v) }

func (r *Recorder) Uniform1fv(location int32, v []float32) {
	r.record("Uniform1fv", location, append([]float32(nil), v...))
}

func (r *Recorder) Uniform2fv(location int32, v []float32) {
	r.record("Uniform2fv", location, append([]float32(nil), v...))
}

func (r *Recorder) Uniform3fv(location int32, v []float32) {
	r.record("Uniform3fv", location, append([]float32(nil), v...))
}

func (r *Recorder) Uniform4fv(location int32, v []float32) {
	r.record("Uniform4fv", location, append([]float32(nil), v...))
}

func (r *Recorder) UniformMatrix3fv(location int32, transpose bool, v []float32) {
	r.record("UniformMatrix3fv", location, transpose, append([]float32(nil), v...))
}

func (r *Recorder) UniformMatrix4fv(location int32, transpose bool, v []float32) {
	r.record("UniformMatrix4fv", location, transpose, append([]float32(nil), v...))
}

func (r *Recorder) GenSampler() uint32           { return r.gen("GenSampler") }
func (r *Recorder) DeleteSampler(sampler uint32) { r.record("DeleteSampler", sampler) }

func (r *Recorder) BindSampler(unit, sampler uint32) { r.record("BindSampler", unit, sampler) }

func (r *Recorder) SamplerParameteri(sampler, pname uint32, param int32) {
	r.record("SamplerParameteri", sampler, pname, param)
}

func (r *Recorder) SamplerParameterf(sampler, pname uint32, param float32) {
	r.record("SamplerParameterf", sampler, pname, param)
}

func (r *Recorder) DrawArrays(mode uint32, first, count int32) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	r.record("DrawElements", mode, count, xtype, offset)
}

func (r *Recorder) DrawArraysInstanced(mode uint32, first, count, instances int32) {
	r.record("DrawArraysInstanced", mode, first, count, instances)
}

func (r *Recorder) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32) {
	r.record("DrawElementsInstanced", mode, count, xtype, offset, instances)
}

func (r *Recorder) DebugMessageControl(source, xtype, severity uint32, enabled bool) {
	r.record("DebugMessageControl", source, xtype, severity, enabled)
}

// DebugMessages drains up to max entries of DebugLog.
func (r *Recorder) DebugMessages(max int) []gl.DebugMessage {
	n := min(max, len(r.DebugLog))
	out := r.DebugLog[:n]
	r.DebugLog = r.DebugLog[n:]
	return out
}
