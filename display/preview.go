// Package display is the optional live-preview window (SPEC_FULL.md §N):
// a GLFW/OpenGL window that blits the host's tone-mapped film.Image each
// pass. It never touches the render math; it only uploads whatever
// film.Image.End already produced.
//
// Grounded on core/window.go for GLFW lifecycle (Init, WindowHint,
// CreateWindow, PollEvents, Destroy), switched from that file's Vulkan
// no-client-API hint to an OpenGL 4.1 core-profile context since this
// package renders with go-gl/gl rather than handing a surface to Vulkan.
// The texture upload mirrors internal/opengl/texture.go's UploadTexture
// (TexImage2D with GL_RGBA/GL_UNSIGNED_BYTE over an unsafe.Pointer to the
// packed byte slice), and the blit shader is internal/opengl/postprocess.go's
// ppVertSrc fullscreen-triangle-via-gl_VertexID trick paired with a plain
// passthrough fragment shader, since tone mapping already happened CPU-side
// in film.Image.
package display

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/dayflower-go/pathtracer/film"
)

func init() {
	runtime.LockOSThread()
}

// fullscreen triangle via gl_VertexID, no VBO needed.
const blitVertSrc = `
#version 410 core
out vec2 fragUV;
void main() {
    const vec2 pos[3] = vec2[3](
        vec2(-1.0, -1.0),
        vec2( 3.0, -1.0),
        vec2(-1.0,  3.0)
    );
    gl_Position = vec4(pos[gl_VertexID], 0.0, 1.0);
    fragUV      = pos[gl_VertexID] * 0.5 + 0.5;
}
` + "\x00"

// the buffer arriving here is already tone-mapped and gamma-encoded, so
// this is a plain texture fetch, not the composite shader postprocess.go
// uses for its own HDR path.
const blitFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;
uniform sampler2D img;
void main() {
    outColor = vec4(texture(img, vec2(fragUV.x, 1.0 - fragUV.y)).rgb, 1.0);
}
` + "\x00"

// Preview is a live window that shows the current film.Image, refreshed
// once per call to Blit. It owns its own GLFW window and GL context;
// Open must be called from the goroutine that will also call Blit and
// PollEvents (GL contexts are not safe to share across OS threads).
type Preview struct {
	win     *glfw.Window
	prog    uint32
	vao    uint32
	tex    uint32
	texW   int
	texH   int
	imgLoc int32
}

// Open creates a window of the given size and an OpenGL 4.1 core context
// to blit into. Title is shown in the window's title bar.
func Open(width, height int, title string) (*Preview, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	prog, err := newProgram(blitVertSrc, blitFragSrc)
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("blit shader: %w", err)
	}

	p := &Preview{win: win, prog: prog}
	p.imgLoc = gl.GetUniformLocation(prog, gl.Str("img\x00"))

	gl.GenVertexArrays(1, &p.vao)
	gl.GenTextures(1, &p.tex)
	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return p, nil
}

// ShouldClose reports whether the user has asked to close the window
// (close button, Alt+F4, platform equivalent).
func (p *Preview) ShouldClose() bool {
	return p.win.ShouldClose()
}

// PollEvents drains the platform event queue; call once per pass so the
// window stays responsive between long render passes.
func (p *Preview) PollEvents() {
	glfw.PollEvents()
}

// Blit uploads img's packed RGBA bytes to the GPU and draws it fullscreen,
// then swaps buffers. img.End must already have been called by the host.
func (p *Preview) Blit(img *film.Image) {
	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	if img.Width != p.texW || img.Height != p.texH {
		gl.TexImage2D(
			gl.TEXTURE_2D, 0, gl.RGBA,
			int32(img.Width), int32(img.Height), 0,
			gl.RGBA, gl.UNSIGNED_BYTE,
			unsafe.Pointer(&img.RGBA[0]),
		)
		p.texW, p.texH = img.Width, img.Height
	} else {
		gl.TexSubImage2D(
			gl.TEXTURE_2D, 0, 0, 0,
			int32(img.Width), int32(img.Height),
			gl.RGBA, gl.UNSIGNED_BYTE,
			unsafe.Pointer(&img.RGBA[0]),
		)
	}

	fbw, fbh := p.win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(p.prog)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	gl.Uniform1i(p.imgLoc, 0)

	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)

	p.win.SwapBuffers()
}

// Close destroys the window, GL objects and terminates GLFW. The Preview
// must not be used afterward.
func (p *Preview) Close() {
	if p.tex != 0 {
		gl.DeleteTextures(1, &p.tex)
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
	}
	if p.prog != 0 {
		gl.DeleteProgram(p.prog)
	}
	p.win.Destroy()
	glfw.Terminate()
}

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
