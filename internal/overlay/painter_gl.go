package overlay

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/depeter/glmpv/internal/frame"
)

const vertexShader = `
in vec2 pos;
in vec2 uv;
out vec2 vUV;
uniform vec4 rect; // x, y, w, h in NDC, y up
void main() {
	vUV = uv;
	gl_Position = vec4(rect.xy + pos * rect.zw, 0.0, 1.0);
}
`

const fragmentShader = `
in vec2 vUV;
out vec4 fragColor;
uniform sampler2D tex;
void main() {
	fragColor = texture(tex, vUV);
}
`

// unit quad, two triangles: pos.xy, uv.xy
var quadVertices = []float32{
	0, 0, 0, 0,
	1, 0, 1, 0,
	1, 1, 1, 1,
	0, 0, 0, 0,
	1, 1, 1, 1,
	0, 1, 0, 1,
}

// GLPainter draws the rasterized panel as a textured quad into the default
// framebuffer. It needs the window's GL context to be current.
type GLPainter struct {
	program uint32
	vao     uint32
	vbo     uint32
	tex     uint32
	rectLoc int32
	texLoc  int32
	size    image.Point
}

// NewGLPainter compiles the overlay shaders using versionLine (for example
// "#version 330 core") as the first line of each.
func NewGLPainter(versionLine string) (*GLPainter, error) {
	prog, err := linkProgram(versionLine)
	if err != nil {
		return nil, err
	}
	p := &GLPainter{
		program: prog,
		rectLoc: gl.GetUniformLocation(prog, gl.Str("rect\x00")),
		texLoc:  gl.GetUniformLocation(prog, gl.Str("tex\x00")),
	}

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)
	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.GenTextures(1, &p.tex)
	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return p, nil
}

func linkProgram(versionLine string) (uint32, error) {
	vs, err := compileShader(versionLine+"\n"+vertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(versionLine+"\n"+fragmentShader, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	// GLSL 1.40 has no layout qualifiers.
	gl.BindAttribLocation(prog, 0, gl.Str("pos\x00"))
	gl.BindAttribLocation(prog, 1, gl.Str("uv\x00"))
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(prog, logLength, nil, gl.Str(msg))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link overlay program: %s", strings.TrimRight(msg, "\x00"))
	}
	return prog, nil
}

func compileShader(src string, typ uint32) (uint32, error) {
	handle := gl.CreateShader(typ)
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(msg))
		gl.DeleteShader(handle)
		return 0, fmt.Errorf("compile overlay shader: %s", strings.TrimRight(msg, "\x00"))
	}
	return handle, nil
}

// Upload replaces the texture with img. GL textures start at the bottom
// row, so the image is flipped first.
func (p *GLPainter) Upload(img *image.RGBA) error {
	size := img.Rect.Size()
	if size.X == 0 || size.Y == 0 {
		return fmt.Errorf("overlay: empty image %v", size)
	}
	flipped := frame.Flipped(img)
	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	if size == p.size {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(size.X), int32(size.Y),
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(flipped.Pix))
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(size.X), int32(size.Y), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(flipped.Pix))
		p.size = size
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

// Paint draws the uploaded texture with its top-left corner at (x, y) in a
// framebuffer of fbW x fbH pixels.
func (p *GLPainter) Paint(x, y, fbW, fbH int) error {
	if p.size.X == 0 || fbW <= 0 || fbH <= 0 {
		return nil
	}
	nx := 2*float32(x)/float32(fbW) - 1
	nw := 2 * float32(p.size.X) / float32(fbW)
	nh := 2 * float32(p.size.Y) / float32(fbH)
	ny := 1 - 2*float32(y)/float32(fbH) - nh

	// mpv renders on this context and may leave errors behind.
	drainErrors(gl.GetError)

	gl.BindFramebuffer(gl.FRAMEBUFFER, frame.DefaultFramebuffer)
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Enable(gl.BLEND)
	// Pixels are premultiplied.
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(p.program)
	gl.Uniform4f(p.rectLoc, nx, ny, nw, nh)
	gl.Uniform1i(p.texLoc, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)

	if errs := drainErrors(gl.GetError); len(errs) > 0 {
		return fmt.Errorf("overlay paint: gl error 0x%x", errs[0])
	}
	return nil
}

// maxGLErrors bounds drainErrors; a lost context can report errors forever.
const maxGLErrors = 16

// drainErrors reads pending GL error flags until none remain.
func drainErrors(getError func() uint32) []uint32 {
	var errs []uint32
	for range maxGLErrors {
		e := getError()
		if e == gl.NO_ERROR {
			break
		}
		errs = append(errs, e)
	}
	return errs
}

// Release deletes the GL objects. The context must still be current.
func (p *GLPainter) Release() {
	gl.DeleteTextures(1, &p.tex)
	gl.DeleteBuffers(1, &p.vbo)
	gl.DeleteVertexArrays(1, &p.vao)
	gl.DeleteProgram(p.program)
	*p = GLPainter{}
}
