package gl

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/spaghettifunk/ray/engine/core"
)

// ProcAddressFunc resolves a GL entry point for the current context, e.g.
// glfw.GetProcAddress.
type ProcAddressFunc func(name string) unsafe.Pointer

// functions binds every entry point through purego. Optional entry points
// stay nil when the driver does not export them; their wrappers are no-ops.
type functions struct {
	glGetError                 func() uint32
	glGetString                func(name uint32) uintptr
	glGetStringi               func(name, index uint32) uintptr
	glGetIntegerv              func(pname uint32, data *int32)
	glGetFloatv                func(pname uint32, data *float32)
	glFinish                   func()
	glFlush                    func()
	glEnable                   func(cap uint32)
	glDisable                  func(cap uint32)
	glViewport                 func(x, y, width, height int32)
	glViewportIndexedf         func(index uint32, x, y, width, height float32)
	glScissor                  func(x, y, width, height int32)
	glScissorIndexed           func(index uint32, left, bottom, width, height int32)
	glClearColor               func(r, g, b, a float32)
	glClearDepthf              func(depth float32)
	glClearStencil             func(s int32)
	glClear                    func(mask uint32)
	glColorMask                func(r, g, b, a uint8)
	glColorMaski               func(index uint32, r, g, b, a uint8)
	glDepthMask                func(flag uint8)
	glDepthFunc                func(fn uint32)
	glDepthRangef              func(near, far float32)
	glCullFace                 func(mode uint32)
	glFrontFace                func(mode uint32)
	glPolygonMode              func(face, mode uint32)
	glLineWidth                func(width float32)
	glPolygonOffset            func(factor, units float32)
	glBlendFuncSeparate        func(srcRGB, dstRGB, srcAlpha, dstAlpha uint32)
	glBlendEquationSeparate    func(modeRGB, modeAlpha uint32)
	glBlendColor               func(r, g, b, a float32)
	glStencilFuncSeparate      func(face, fn uint32, ref int32, mask uint32)
	glStencilOpSeparate        func(face, sfail, dpfail, dppass uint32)
	glStencilMaskSeparate      func(face, mask uint32)
	glPixelStorei              func(pname uint32, param int32)
	glGenTextures              func(n int32, textures *uint32)
	glDeleteTextures           func(n int32, textures *uint32)
	glBindTexture              func(target, texture uint32)
	glActiveTexture            func(unit uint32)
	glTexParameteri            func(target, pname uint32, param int32)
	glTexParameterf            func(target, pname uint32, param float32)
	glTexImage2D               func(target uint32, level, internalFormat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer)
	glTexImage3D               func(target uint32, level, internalFormat, width, height, depth, border int32, format, xtype uint32, pixels unsafe.Pointer)
	glTexStorage2D             func(target uint32, levels int32, internalFormat uint32, width, height int32)
	glTexStorage3D             func(target uint32, levels int32, internalFormat uint32, width, height, depth int32)
	glTexStorage2DMultisample  func(target uint32, samples int32, internalFormat uint32, width, height int32, fixed uint8)
	glTexStorage3DMultisample  func(target uint32, samples int32, internalFormat uint32, width, height, depth int32, fixed uint8)
	glTexSubImage2D            func(target uint32, level, x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer)
	glTexSubImage3D            func(target uint32, level, x, y, z, width, height, depth int32, format, xtype uint32, pixels unsafe.Pointer)
	glCompressedTexImage2D     func(target uint32, level int32, internalFormat uint32, width, height, border, size int32, data unsafe.Pointer)
	glCompressedTexSubImage2D  func(target uint32, level, x, y, width, height int32, format uint32, size int32, data unsafe.Pointer)
	glCompressedTexSubImage3D  func(target uint32, level, x, y, z, width, height, depth int32, format uint32, size int32, data unsafe.Pointer)
	glGenerateMipmap           func(target uint32)
	glGenBuffers               func(n int32, buffers *uint32)
	glDeleteBuffers            func(n int32, buffers *uint32)
	glBindBuffer               func(target, buffer uint32)
	glBindBufferBase           func(target, index, buffer uint32)
	glBufferData               func(target uint32, size int, data unsafe.Pointer, usage uint32)
	glBufferSubData            func(target uint32, offset, size int, data unsafe.Pointer)
	glMapBufferRange           func(target uint32, offset, length int, access uint32) unsafe.Pointer
	glUnmapBuffer              func(target uint32) uint8
	glGenVertexArrays          func(n int32, arrays *uint32)
	glDeleteVertexArrays       func(n int32, arrays *uint32)
	glBindVertexArray          func(array uint32)
	glEnableVertexAttribArray  func(index uint32)
	glDisableVertexAttribArray func(index uint32)
	glVertexAttribPointer      func(index uint32, size int32, xtype uint32, normalized uint8, stride int32, offset uintptr)
	glVertexAttribIPointer     func(index uint32, size int32, xtype uint32, stride int32, offset uintptr)
	glVertexAttribDivisor      func(index, divisor uint32)
	glGenFramebuffers          func(n int32, framebuffers *uint32)
	glDeleteFramebuffers       func(n int32, framebuffers *uint32)
	glBindFramebuffer          func(target, framebuffer uint32)
	glFramebufferTexture2D     func(target, attachment, textarget, texture uint32, level int32)
	glFramebufferTextureLayer  func(target, attachment, texture uint32, level, layer int32)
	glCheckFramebufferStatus   func(target uint32) uint32
	glDrawBuffers              func(n int32, buffers *uint32)
	glReadBuffer               func(src uint32)
	glReadPixels               func(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer)
	glBlitFramebuffer          func(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32)
	glInvalidateFramebuffer    func(target uint32, n int32, attachments *uint32)
	glCreateShader             func(xtype uint32) uint32
	glShaderSource             func(shader uint32, count int32, sources **byte, lengths *int32)
	glCompileShader            func(shader uint32)
	glGetShaderiv              func(shader, pname uint32, params *int32)
	glGetShaderInfoLog         func(shader uint32, bufSize int32, length *int32, log *byte)
	glDeleteShader             func(shader uint32)
	glCreateProgram            func() uint32
	glAttachShader             func(program, shader uint32)
	glDetachShader             func(program, shader uint32)
	glLinkProgram              func(program uint32)
	glGetProgramiv             func(program, pname uint32, params *int32)
	glGetProgramInfoLog        func(program uint32, bufSize int32, length *int32, log *byte)
	glDeleteProgram            func(program uint32)
	glUseProgram               func(program uint32)
	glGetActiveUniform         func(program, index uint32, bufSize int32, length, size *int32, xtype *uint32, name *byte)
	glGetActiveAttrib          func(program, index uint32, bufSize int32, length, size *int32, xtype *uint32, name *byte)
	glGetUniformLocation       func(program uint32, name string) int32
	glGetAttribLocation        func(program uint32, name string) int32
	glGetUniformBlockIndex     func(program uint32, name string) uint32
	glUniformBlockBinding      func(program, blockIndex, binding uint32)
	glUniform1i                func(location, v int32)
	glUniform1iv               func(location, count int32, v *int32)
	glUniform2iv               func(location, count int32, v *int32)
	glUniform3iv               func(location, count int32, v *int32)
	glUniform4iv               func(location, count int32, v *int32)
	glUniform1f                func(location int32, v float32)
	glUniform1fv               func(location, count int32, v *float32)
	glUniform2fv               func(location, count int32, v *float32)
	glUniform3fv               func(location, count int32, v *float32)
	glUniform4fv               func(location, count int32, v *float32)
	glUniformMatrix3fv         func(location, count int32, transpose uint8, v *float32)
	glUniformMatrix4fv         func(location, count int32, transpose uint8, v *float32)
	glGenSamplers              func(n int32, samplers *uint32)
	glDeleteSamplers           func(n int32, samplers *uint32)
	glBindSampler              func(unit, sampler uint32)
	glSamplerParameteri        func(sampler, pname uint32, param int32)
	glSamplerParameterf        func(sampler, pname uint32, param float32)
	glDrawArrays               func(mode uint32, first, count int32)
	glDrawElements             func(mode uint32, count int32, xtype uint32, offset uintptr)
	glDrawArraysInstanced      func(mode uint32, first, count, instances int32)
	glDrawElementsInstanced    func(mode uint32, count int32, xtype uint32, offset uintptr, instances int32)
	glDebugMessageControl      func(source, xtype, severity uint32, count int32, ids *uint32, enabled uint8)
	glGetDebugMessageLog       func(count uint32, bufSize int32, sources, types, ids, severities *uint32, lengths *int32, log *byte) uint32
}

var _ Functions = (*functions)(nil)

type binding struct {
	name     string
	fptr     any
	optional bool
}

func (f *functions) bindings() []binding {
	return []binding{
		{"glGetError", &f.glGetError, false},
		{"glGetString", &f.glGetString, false},
		{"glGetStringi", &f.glGetStringi, true},
		{"glGetIntegerv", &f.glGetIntegerv, false},
		{"glGetFloatv", &f.glGetFloatv, false},
		{"glFinish", &f.glFinish, false},
		{"glFlush", &f.glFlush, false},
		{"glEnable", &f.glEnable, false},
		{"glDisable", &f.glDisable, false},
		{"glViewport", &f.glViewport, false},
		{"glViewportIndexedf", &f.glViewportIndexedf, true},
		{"glScissor", &f.glScissor, false},
		{"glScissorIndexed", &f.glScissorIndexed, true},
		{"glClearColor", &f.glClearColor, false},
		{"glClearDepthf", &f.glClearDepthf, false},
		{"glClearStencil", &f.glClearStencil, false},
		{"glClear", &f.glClear, false},
		{"glColorMask", &f.glColorMask, false},
		{"glColorMaski", &f.glColorMaski, true},
		{"glDepthMask", &f.glDepthMask, false},
		{"glDepthFunc", &f.glDepthFunc, false},
		{"glDepthRangef", &f.glDepthRangef, false},
		{"glCullFace", &f.glCullFace, false},
		{"glFrontFace", &f.glFrontFace, false},
		{"glPolygonMode", &f.glPolygonMode, true},
		{"glLineWidth", &f.glLineWidth, false},
		{"glPolygonOffset", &f.glPolygonOffset, false},
		{"glBlendFuncSeparate", &f.glBlendFuncSeparate, false},
		{"glBlendEquationSeparate", &f.glBlendEquationSeparate, false},
		{"glBlendColor", &f.glBlendColor, false},
		{"glStencilFuncSeparate", &f.glStencilFuncSeparate, false},
		{"glStencilOpSeparate", &f.glStencilOpSeparate, false},
		{"glStencilMaskSeparate", &f.glStencilMaskSeparate, false},
		{"glPixelStorei", &f.glPixelStorei, false},
		{"glGenTextures", &f.glGenTextures, false},
		{"glDeleteTextures", &f.glDeleteTextures, false},
		{"glBindTexture", &f.glBindTexture, false},
		{"glActiveTexture", &f.glActiveTexture, false},
		{"glTexParameteri", &f.glTexParameteri, false},
		{"glTexParameterf", &f.glTexParameterf, false},
		{"glTexImage2D", &f.glTexImage2D, false},
		{"glTexImage3D", &f.glTexImage3D, true},
		{"glTexStorage2D", &f.glTexStorage2D, true},
		{"glTexStorage3D", &f.glTexStorage3D, true},
		{"glTexStorage2DMultisample", &f.glTexStorage2DMultisample, true},
		{"glTexStorage3DMultisample", &f.glTexStorage3DMultisample, true},
		{"glTexSubImage2D", &f.glTexSubImage2D, false},
		{"glTexSubImage3D", &f.glTexSubImage3D, true},
		{"glCompressedTexImage2D", &f.glCompressedTexImage2D, false},
		{"glCompressedTexSubImage2D", &f.glCompressedTexSubImage2D, false},
		{"glCompressedTexSubImage3D", &f.glCompressedTexSubImage3D, true},
		{"glGenerateMipmap", &f.glGenerateMipmap, false},
		{"glGenBuffers", &f.glGenBuffers, false},
		{"glDeleteBuffers", &f.glDeleteBuffers, false},
		{"glBindBuffer", &f.glBindBuffer, false},
		{"glBindBufferBase", &f.glBindBufferBase, true},
		{"glBufferData", &f.glBufferData, false},
		{"glBufferSubData", &f.glBufferSubData, false},
		{"glMapBufferRange", &f.glMapBufferRange, true},
		{"glUnmapBuffer", &f.glUnmapBuffer, true},
		{"glGenVertexArrays", &f.glGenVertexArrays, true},
		{"glDeleteVertexArrays", &f.glDeleteVertexArrays, true},
		{"glBindVertexArray", &f.glBindVertexArray, true},
		{"glEnableVertexAttribArray", &f.glEnableVertexAttribArray, false},
		{"glDisableVertexAttribArray", &f.glDisableVertexAttribArray, false},
		{"glVertexAttribPointer", &f.glVertexAttribPointer, false},
		{"glVertexAttribIPointer", &f.glVertexAttribIPointer, true},
		{"glVertexAttribDivisor", &f.glVertexAttribDivisor, true},
		{"glGenFramebuffers", &f.glGenFramebuffers, false},
		{"glDeleteFramebuffers", &f.glDeleteFramebuffers, false},
		{"glBindFramebuffer", &f.glBindFramebuffer, false},
		{"glFramebufferTexture2D", &f.glFramebufferTexture2D, false},
		{"glFramebufferTextureLayer", &f.glFramebufferTextureLayer, true},
		{"glCheckFramebufferStatus", &f.glCheckFramebufferStatus, false},
		{"glDrawBuffers", &f.glDrawBuffers, true},
		{"glReadBuffer", &f.glReadBuffer, true},
		{"glReadPixels", &f.glReadPixels, false},
		{"glBlitFramebuffer", &f.glBlitFramebuffer, true},
		{"glInvalidateFramebuffer", &f.glInvalidateFramebuffer, true},
		{"glCreateShader", &f.glCreateShader, false},
		{"glShaderSource", &f.glShaderSource, false},
		{"glCompileShader", &f.glCompileShader, false},
		{"glGetShaderiv", &f.glGetShaderiv, false},
		{"glGetShaderInfoLog", &f.glGetShaderInfoLog, false},
		{"glDeleteShader", &f.glDeleteShader, false},
		{"glCreateProgram", &f.glCreateProgram, false},
		{"glAttachShader", &f.glAttachShader, false},
		{"glDetachShader", &f.glDetachShader, false},
		{"glLinkProgram", &f.glLinkProgram, false},
		{"glGetProgramiv", &f.glGetProgramiv, false},
		{"glGetProgramInfoLog", &f.glGetProgramInfoLog, false},
		{"glDeleteProgram", &f.glDeleteProgram, false},
		{"glUseProgram", &f.glUseProgram, false},
		{"glGetActiveUniform", &f.glGetActiveUniform, false},
		{"glGetActiveAttrib", &f.glGetActiveAttrib, false},
		{"glGetUniformLocation", &f.glGetUniformLocation, false},
		{"glGetAttribLocation", &f.glGetAttribLocation, false},
		{"glGetUniformBlockIndex", &f.glGetUniformBlockIndex, true},
		{"glUniformBlockBinding", &f.glUniformBlockBinding, true},
		{"glUniform1i", &f.glUniform1i, false},
		{"glUniform1iv", &f.glUniform1iv, false},
		{"glUniform2iv", &f.glUniform2iv, false},
		{"glUniform3iv", &f.glUniform3iv, false},
		{"glUniform4iv", &f.glUniform4iv, false},
		{"glUniform1f", &f.glUniform1f, false},
		{"glUniform1fv", &f.glUniform1fv, false},
		{"glUniform2fv", &f.glUniform2fv, false},
		{"glUniform3fv", &f.glUniform3fv, false},
		{"glUniform4fv", &f.glUniform4fv, false},
		{"glUniformMatrix3fv", &f.glUniformMatrix3fv, false},
		{"glUniformMatrix4fv", &f.glUniformMatrix4fv, false},
		{"glGenSamplers", &f.glGenSamplers, true},
		{"glDeleteSamplers", &f.glDeleteSamplers, true},
		{"glBindSampler", &f.glBindSampler, true},
		{"glSamplerParameteri", &f.glSamplerParameteri, true},
		{"glSamplerParameterf", &f.glSamplerParameterf, true},
		{"glDrawArrays", &f.glDrawArrays, false},
		{"glDrawElements", &f.glDrawElements, false},
		{"glDrawArraysInstanced", &f.glDrawArraysInstanced, true},
		{"glDrawElementsInstanced", &f.glDrawElementsInstanced, true},
		{"glDebugMessageControl", &f.glDebugMessageControl, true},
		{"glGetDebugMessageLog", &f.glGetDebugMessageLog, true},
	}
}

// Load resolves every entry point through getProcAddress. The GL context
// must be current on the calling thread.
func Load(getProcAddress ProcAddressFunc) (Functions, error) {
	f := &functions{}
	missing := 0
	for _, b := range f.bindings() {
		addr := getProcAddress(b.name)
		if addr == nil {
			if b.optional {
				missing++
				continue
			}
			err := fmt.Errorf("gl: entry point %s not found: %w", b.name, core.ErrNativeFailure)
			core.LogError(err.Error())
			return nil, err
		}
		purego.RegisterFunc(b.fptr, uintptr(addr))
	}
	core.LogDebug("gl: loaded entry points, %d optional ones unavailable", missing)
	return f, nil
}

func glBool(b bool) uint8 {
	if b {
		return True
	}
	return False
}

func ptr[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}

func goString(p uintptr) string {
	if p == 0 {
		return ""
	}
	var sb strings.Builder
	for i := uintptr(0); ; i++ {
		c := *(*byte)(unsafe.Add(unsafe.Pointer(p), i)) //nolint:govet
		if c == 0 {
			break
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func cString(b []byte, n int32) string {
	if n <= 0 {
		return ""
	}
	if int(n) > len(b) {
		n = int32(len(b))
	}
	return string(b[:n])
}

func (f *functions) GetError() uint32 { return f.glGetError() }

func (f *functions) GetString(name uint32) string { return goString(f.glGetString(name)) }

func (f *functions) GetStringi(name, index uint32) string {
	if f.glGetStringi == nil {
		return ""
	}
	return goString(f.glGetStringi(name, index))
}

func (f *functions) GetIntegerv(pname uint32) int32 {
	// large enough for the two-component queries such as MAX_VIEWPORT_DIMS
	var v [4]int32
	f.glGetIntegerv(pname, &v[0])
	return v[0]
}

func (f *functions) GetFloatv(pname uint32) float32 {
	var v [4]float32
	f.glGetFloatv(pname, &v[0])
	return v[0]
}

func (f *functions) Finish()            { f.glFinish() }
func (f *functions) Flush()             { f.glFlush() }
func (f *functions) Enable(cap uint32)  { f.glEnable(cap) }
func (f *functions) Disable(cap uint32) { f.glDisable(cap) }

func (f *functions) Viewport(x, y, width, height int32) { f.glViewport(x, y, width, height) }

func (f *functions) ViewportIndexedf(index uint32, x, y, width, height float32) {
	if f.glViewportIndexedf != nil {
		f.glViewportIndexedf(index, x, y, width, height)
	}
}

func (f *functions) Scissor(x, y, width, height int32) { f.glScissor(x, y, width, height) }

func (f *functions) ScissorIndexed(index uint32, left, bottom, width, height int32) {
	if f.glScissorIndexed != nil {
		f.glScissorIndexed(index, left, bottom, width, height)
	}
}

func (f *functions) ClearColor(r, g, b, a float32) { f.glClearColor(r, g, b, a) }
func (f *functions) ClearDepthf(depth float32)     { f.glClearDepthf(depth) }
func (f *functions) ClearStencil(s int32)          { f.glClearStencil(s) }
func (f *functions) Clear(mask uint32)             { f.glClear(mask) }

func (f *functions) ColorMask(r, g, b, a bool) {
	f.glColorMask(glBool(r), glBool(g), glBool(b), glBool(a))
}

func (f *functions) ColorMaski(index uint32, r, g, b, a bool) {
	if f.glColorMaski != nil {
		f.glColorMaski(index, glBool(r), glBool(g), glBool(b), glBool(a))
	}
}

func (f *functions) DepthMask(flag bool)           { f.glDepthMask(glBool(flag)) }
func (f *functions) DepthFunc(fn uint32)           { f.glDepthFunc(fn) }
func (f *functions) DepthRangef(near, far float32) { f.glDepthRangef(near, far) }
func (f *functions) CullFace(mode uint32)          { f.glCullFace(mode) }
func (f *functions) FrontFace(mode uint32)         { f.glFrontFace(mode) }

func (f *functions) PolygonMode(face, mode uint32) {
	if f.glPolygonMode != nil {
		f.glPolygonMode(face, mode)
	}
}

func (f *functions) LineWidth(width float32)             { f.glLineWidth(width) }
func (f *functions) PolygonOffset(factor, units float32) { f.glPolygonOffset(factor, units) }

func (f *functions) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	f.glBlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (f *functions) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	f.glBlendEquationSeparate(modeRGB, modeAlpha)
}

func (f *functions) BlendColor(r, g, b, a float32) { f.glBlendColor(r, g, b, a) }

func (f *functions) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	f.glStencilFuncSeparate(face, fn, ref, mask)
}

func (f *functions) StencilOpSeparate(face, sfail, dpfail, dppass uint32) {
	f.glStencilOpSeparate(face, sfail, dpfail, dppass)
}

func (f *functions) StencilMaskSeparate(face, mask uint32) { f.glStencilMaskSeparate(face, mask) }
func (f *functions) PixelStorei(pname uint32, param int32) { f.glPixelStorei(pname, param) }

func (f *functions) GenTexture() uint32 {
	var t uint32
	f.glGenTextures(1, &t)
	return t
}

func (f *functions) DeleteTexture(texture uint32)       { f.glDeleteTextures(1, &texture) }
func (f *functions) BindTexture(target, texture uint32) { f.glBindTexture(target, texture) }
func (f *functions) ActiveTexture(unit uint32)          { f.glActiveTexture(unit) }

func (f *functions) TexParameteri(target, pname uint32, param int32) {
	f.glTexParameteri(target, pname, param)
}

func (f *functions) TexParameterf(target, pname uint32, param float32) {
	f.glTexParameterf(target, pname, param)
}

func (f *functions) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	f.glTexImage2D(target, level, internalFormat, width, height, 0, format, xtype, ptr(pixels))
	runtime.KeepAlive(pixels)
}

func (f *functions) TexImage3D(target uint32, level, internalFormat, width, height, depth int32, format, xtype uint32, pixels []byte) {
	if f.glTexImage3D != nil {
		f.glTexImage3D(target, level, internalFormat, width, height, depth, 0, format, xtype, ptr(pixels))
		runtime.KeepAlive(pixels)
	}
}

func (f *functions) TexStorage2D(target uint32, levels int32, internalFormat uint32, width, height int32) {
	if f.glTexStorage2D != nil {
		f.glTexStorage2D(target, levels, internalFormat, width, height)
	}
}

func (f *functions) TexStorage3D(target uint32, levels int32, internalFormat uint32, width, height, depth int32) {
	if f.glTexStorage3D != nil {
		f.glTexStorage3D(target, levels, internalFormat, width, height, depth)
	}
}

func (f *functions) TexStorage2DMultisample(target uint32, samples int32, internalFormat uint32, width, height int32, fixedLocations bool) {
	if f.glTexStorage2DMultisample != nil {
		f.glTexStorage2DMultisample(target, samples, internalFormat, width, height, glBool(fixedLocations))
	}
}

func (f *functions) TexStorage3DMultisample(target uint32, samples int32, internalFormat uint32, width, height, depth int32, fixedLocations bool) {
	if f.glTexStorage3DMultisample != nil {
		f.glTexStorage3DMultisample(target, samples, internalFormat, width, height, depth, glBool(fixedLocations))
	}
}

func (f *functions) TexSubImage2D(target uint32, level, x, y, width, height int32, format, xtype uint32, pixels []byte) {
	f.glTexSubImage2D(target, level, x, y, width, height, format, xtype, ptr(pixels))
	runtime.KeepAlive(pixels)
}

func (f *functions) TexSubImage3D(target uint32, level, x, y, z, width, height, depth int32, format, xtype uint32, pixels []byte) {
	if f.glTexSubImage3D != nil {
		f.glTexSubImage3D(target, level, x, y, z, width, height, depth, format, xtype, ptr(pixels))
		runtime.KeepAlive(pixels)
	}
}

func (f *functions) CompressedTexImage2D(target uint32, level int32, internalFormat uint32, width, height int32, data []byte) {
	f.glCompressedTexImage2D(target, level, internalFormat, width, height, 0, int32(len(data)), ptr(data))
	runtime.KeepAlive(data)
}

func (f *functions) CompressedTexSubImage2D(target uint32, level, x, y, width, height int32, format uint32, data []byte) {
	f.glCompressedTexSubImage2D(target, level, x, y, width, height, format, int32(len(data)), ptr(data))
	runtime.KeepAlive(data)
}

func (f *functions) CompressedTexSubImage3D(target uint32, level, x, y, z, width, height, depth int32, format uint32, data []byte) {
	if f.glCompressedTexSubImage3D != nil {
		f.glCompressedTexSubImage3D(target, level, x, y, z, width, height, depth, format, int32(len(data)), ptr(data))
		runtime.KeepAlive(data)
	}
}

func (f *functions) GenerateMipmap(target uint32) { f.glGenerateMipmap(target) }

func (f *functions) GenBuffer() uint32 {
	var b uint32
	f.glGenBuffers(1, &b)
	return b
}

func (f *functions) DeleteBuffer(buffer uint32)       { f.glDeleteBuffers(1, &buffer) }
func (f *functions) BindBuffer(target, buffer uint32) { f.glBindBuffer(target, buffer) }

func (f *functions) BindBufferBase(target, index, buffer uint32) {
	if f.glBindBufferBase != nil {
		f.glBindBufferBase(target, index, buffer)
	}
}

func (f *functions) BufferData(target uint32, size int, data []byte, usage uint32) {
	f.glBufferData(target, size, ptr(data), usage)
	runtime.KeepAlive(data)
}

func (f *functions) BufferSubData(target uint32, offset int, data []byte) {
	f.glBufferSubData(target, offset, len(data), ptr(data))
	runtime.KeepAlive(data)
}

func (f *functions) MapBufferRange(target uint32, offset, length int, access uint32) []byte {
	if f.glMapBufferRange == nil {
		return nil
	}
	p := f.glMapBufferRange(target, offset, length, access)
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), length)
}

func (f *functions) UnmapBuffer(target uint32) bool {
	if f.glUnmapBuffer == nil {
		return false
	}
	return f.glUnmapBuffer(target) == True
}

func (f *functions) GenVertexArray() uint32 {
	if f.glGenVertexArrays == nil {
		return 0
	}
	var a uint32
	f.glGenVertexArrays(1, &a)
	return a
}

func (f *functions) DeleteVertexArray(array uint32) {
	if f.glDeleteVertexArrays != nil {
		f.glDeleteVertexArrays(1, &array)
	}
}

func (f *functions) BindVertexArray(array uint32) {
	if f.glBindVertexArray != nil {
		f.glBindVertexArray(array)
	}
}

func (f *functions) EnableVertexAttribArray(index uint32)  { f.glEnableVertexAttribArray(index) }
func (f *functions) DisableVertexAttribArray(index uint32) { f.glDisableVertexAttribArray(index) }

func (f *functions) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	f.glVertexAttribPointer(index, size, xtype, glBool(normalized), stride, uintptr(offset))
}

func (f *functions) VertexAttribIPointer(index uint32, size int32, xtype uint32, stride int32, offset int) {
	if f.glVertexAttribIPointer != nil {
		f.glVertexAttribIPointer(index, size, xtype, stride, uintptr(offset))
	}
}

func (f *functions) VertexAttribDivisor(index, divisor uint32) {
	if f.glVertexAttribDivisor != nil {
		f.glVertexAttribDivisor(index, divisor)
	}
}

func (f *functions) GenFramebuffer() uint32 {
	var fb uint32
	f.glGenFramebuffers(1, &fb)
	return fb
}

func (f *functions) DeleteFramebuffer(framebuffer uint32) { f.glDeleteFramebuffers(1, &framebuffer) }

func (f *functions) BindFramebuffer(target, framebuffer uint32) {
	f.glBindFramebuffer(target, framebuffer)
}

func (f *functions) FramebufferTexture2D(target, attachment, textarget, texture uint32, level int32) {
	f.glFramebufferTexture2D(target, attachment, textarget, texture, level)
}

func (f *functions) FramebufferTextureLayer(target, attachment, texture uint32, level, layer int32) {
	if f.glFramebufferTextureLayer != nil {
		f.glFramebufferTextureLayer(target, attachment, texture, level, layer)
	}
}

func (f *functions) CheckFramebufferStatus(target uint32) uint32 {
	return f.glCheckFramebufferStatus(target)
}

func (f *functions) DrawBuffers(buffers []uint32) {
	if f.glDrawBuffers != nil && len(buffers) > 0 {
		f.glDrawBuffers(int32(len(buffers)), &buffers[0])
	}
}

func (f *functions) ReadBuffer(src uint32) {
	if f.glReadBuffer != nil {
		f.glReadBuffer(src)
	}
}

func (f *functions) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels []byte) {
	f.glReadPixels(x, y, width, height, format, xtype, ptr(pixels))
	runtime.KeepAlive(pixels)
}

func (f *functions) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	if f.glBlitFramebuffer != nil {
		f.glBlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
	}
}

func (f *functions) InvalidateFramebuffer(target uint32, attachments []uint32) {
	if f.glInvalidateFramebuffer != nil && len(attachments) > 0 {
		f.glInvalidateFramebuffer(target, int32(len(attachments)), &attachments[0])
	}
}

func (f *functions) CreateShader(xtype uint32) uint32 { return f.glCreateShader(xtype) }

func (f *functions) ShaderSource(shader uint32, source string) {
	csrc := append([]byte(source), 0)
	p := &csrc[0]
	f.glShaderSource(shader, 1, &p, nil)
	runtime.KeepAlive(csrc)
}

func (f *functions) CompileShader(shader uint32) { f.glCompileShader(shader) }

func (f *functions) GetShaderi(shader, pname uint32) int32 {
	var v int32
	f.glGetShaderiv(shader, pname, &v)
	return v
}

func (f *functions) GetShaderInfoLog(shader uint32) string {
	size := f.GetShaderi(shader, InfoLogLength)
	if size <= 0 {
		return ""
	}
	buf := make([]byte, size)
	var n int32
	f.glGetShaderInfoLog(shader, size, &n, &buf[0])
	return cString(buf, n)
}

func (f *functions) DeleteShader(shader uint32)          { f.glDeleteShader(shader) }
func (f *functions) CreateProgram() uint32               { return f.glCreateProgram() }
func (f *functions) AttachShader(program, shader uint32) { f.glAttachShader(program, shader) }
func (f *functions) DetachShader(program, shader uint32) { f.glDetachShader(program, shader) }
func (f *functions) LinkProgram(program uint32)          { f.glLinkProgram(program) }

func (f *functions) GetProgrami(program, pname uint32) int32 {
	var v int32
	f.glGetProgramiv(program, pname, &v)
	return v
}

func (f *functions) GetProgramInfoLog(program uint32) string {
	size := f.GetProgrami(program, InfoLogLength)
	if size <= 0 {
		return ""
	}
	buf := make([]byte, size)
	var n int32
	f.glGetProgramInfoLog(program, size, &n, &buf[0])
	return cString(buf, n)
}

func (f *functions) DeleteProgram(program uint32) { f.glDeleteProgram(program) }
func (f *functions) UseProgram(program uint32)    { f.glUseProgram(program) }

func (f *functions) GetActiveUniform(program, index uint32) (string, int32, uint32) {
	var buf [256]byte
	var n, size int32
	var xtype uint32
	f.glGetActiveUniform(program, index, int32(len(buf)), &n, &size, &xtype, &buf[0])
	return cString(buf[:], n), size, xtype
}

func (f *functions) GetActiveAttrib(program, index uint32) (string, int32, uint32) {
	var buf [256]byte
	var n, size int32
	var xtype uint32
	f.glGetActiveAttrib(program, index, int32(len(buf)), &n, &size, &xtype, &buf[0])
	return cString(buf[:], n), size, xtype
}

func (f *functions) GetUniformLocation(program uint32, name string) int32 {
	return f.glGetUniformLocation(program, name)
}

func (f *functions) GetAttribLocation(program uint32, name string) int32 {
	return f.glGetAttribLocation(program, name)
}

func (f *functions) GetUniformBlockIndex(program uint32, name string) uint32 {
	if f.glGetUniformBlockIndex == nil {
		return InvalidIndex
	}
	return f.glGetUniformBlockIndex(program, name)
}

func (f *functions) UniformBlockBinding(program, blockIndex, binding uint32) {
	if f.glUniformBlockBinding != nil {
		f.glUniformBlockBinding(program, blockIndex, binding)
	}
}

func (f *functions) Uniform1i(location, v int32) { f.glUniform1i(location, v) }

func (f *functions) Uniform1iv(location int32, v []int32) {
	if len(v) > 0 {
		f.glUniform1iv(location, int32(len(v)), &v[0])
	}
}

func (f *functions) Uniform2iv(location int32, v []int32) {
	if len(v) >= 2 {
		f.glUniform2iv(location, int32(len(v)/2), &v[0])
	}
}

func (f *functions) Uniform3iv(location int32, v []int32) {
	if len(v) >= 3 {
		f.glUniform3iv(location, int32(len(v)/3), &v[0])
	}
}

func (f *functions) Uniform4iv(location int32, v []int32) {
	if len(v) >= 4 {
		f.glUniform4iv(location, int32(len(v)/4), &v[0])
	}
}

func (f *functions) Uniform1f(location int32, v float32) { f.glUniform1f(location, v) }

func (f *functions) Uniform1fv(location int32, v []float32) {
	if len(v) > 0 {
		f.glUniform1fv(location, int32(len(v)), &v[0])
	}
}

func (f *functions) Uniform2fv(location int32, v []float32) {
	if len(v) >= 2 {
		f.glUniform2fv(location, int32(len(v)/2), &v[0])
	}
}

func (f *functions) Uniform3fv(location int32, v []float32) {
	if len(v) >= 3 {
		f.glUniform3fv(location, int32(len(v)/3), &v[0])
	}
}

func (f *functions) Uniform4fv(location int32, v []float32) {
	if len(v) >= 4 {
		f.glUniform4fv(location, int32(len(v)/4), &v[0])
	}
}

func (f *functions) UniformMatrix3fv(location int32, transpose bool, v []float32) {
	if len(v) >= 9 {
		f.glUniformMatrix3fv(location, int32(len(v)/9), glBool(transpose), &v[0])
	}
}

func (f *functions) UniformMatrix4fv(location int32, transpose bool, v []float32) {
	if len(v) >= 16 {
		f.glUniformMatrix4fv(location, int32(len(v)/16), glBool(transpose), &v[0])
	}
}

func (f *functions) GenSampler() uint32 {
	if f.glGenSamplers == nil {
		return 0
	}
	var s uint32
	f.glGenSamplers(1, &s)
	return s
}

func (f *functions) DeleteSampler(sampler uint32) {
	if f.glDeleteSamplers != nil {
		f.glDeleteSamplers(1, &sampler)
	}
}

func (f *functions) BindSampler(unit, sampler uint32) {
	if f.glBindSampler != nil {
		f.glBindSampler(unit, sampler)
	}
}

func (f *functions) SamplerParameteri(sampler, pname uint32, param int32) {
	if f.glSamplerParameteri != nil {
		f.glSamplerParameteri(sampler, pname, param)
	}
}

func (f *functions) SamplerParameterf(sampler, pname uint32, param float32) {
	if f.glSamplerParameterf != nil {
		f.glSamplerParameterf(sampler, pname, param)
	}
}

func (f *functions) DrawArrays(mode uint32, first, count int32) { f.glDrawArrays(mode, first, count) }

func (f *functions) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	f.glDrawElements(mode, count, xtype, uintptr(offset))
}

func (f *functions) DrawArraysInstanced(mode uint32, first, count, instances int32) {
	if f.glDrawArraysInstanced != nil {
		f.glDrawArraysInstanced(mode, first, count, instances)
	}
}

func (f *functions) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, instances int32) {
	if f.glDrawElementsInstanced != nil {
		f.glDrawElementsInstanced(mode, count, xtype, uintptr(offset), instances)
	}
}

func (f *functions) DebugMessageControl(source, xtype, severity uint32, enabled bool) {
	if f.glDebugMessageControl != nil {
		f.glDebugMessageControl(source, xtype, severity, 0, nil, glBool(enabled))
	}
}

func (f *functions) DebugMessages(max int) []DebugMessage {
	if f.glGetDebugMessageLog == nil || max <= 0 {
		return nil
	}
	const bufSize = 4096
	sources := make([]uint32, max)
	types := make([]uint32, max)
	ids := make([]uint32, max)
	severities := make([]uint32, max)
	lengths := make([]int32, max)
	log := make([]byte, bufSize)

	n := f.glGetDebugMessageLog(uint32(max), bufSize, &sources[0], &types[0], &ids[0], &severities[0], &lengths[0], &log[0])
	out := make([]DebugMessage, 0, n)
	pos := int32(0)
	for i := uint32(0); i < n; i++ {
		// lengths include the terminating null
		msg := cString(log[pos:], lengths[i]-1)
		pos += lengths[i]
		out = append(out, DebugMessage{
			Source:   sources[i],
			Type:     types[i],
			ID:       ids[i],
			Severity: severities[i],
			Message:  msg,
		})
	}
	return out
}
