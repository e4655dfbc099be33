// Package render draws the GUI with an OpenGL 3.2 core profile context
package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"
)

const quadVertexShader = `#version 150 core
uniform mat4 projection;
in vec2 position;
in vec2 texCoord;
in vec4 color;
out vec2 fragTexCoord;
out vec4 fragColor;

void main() {
    fragTexCoord = texCoord;
    fragColor = color;
    gl_Position = projection * vec4(position, 0.0, 1.0);
}
` + "\x00"

const quadFragmentShader = `#version 150 core
uniform sampler2D mask;
uniform bool useMask;
in vec2 fragTexCoord;
in vec4 fragColor;
out vec4 outColor;

void main() {
    float coverage = useMask ? texture(mask, fragTexCoord).r : 1.0;
    outColor = vec4(fragColor.rgb, fragColor.a * coverage);
}
` + "\x00"

// x, y, u, v, r, g, b, a
const floatsPerVertex = 8

// Init sets up the viewport and blending the GUI expects
func Init(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0.0, 0.0, 0.0, 0.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

// GL implements gui.Renderer on the current OpenGL context
type GL struct {
	width, height int

	program    uint32
	projection int32
	useMask    int32
	mask       int32
	vao        uint32
	vbo        uint32

	textures map[*image.Alpha]uint32
}

// New compiles the shader program and allocates the vertex buffer
func New(width, height int) (*GL, error) {
	program, err := newProgram(quadVertexShader, quadFragmentShader)
	if err != nil {
		return nil, err
	}

	r := &GL{
		width:    width,
		height:   height,
		program:  program,
		textures: make(map[*image.Alpha]uint32),
	}
	r.projection = gl.GetUniformLocation(program, gl.Str("projection\x00"))
	r.useMask = gl.GetUniformLocation(program, gl.Str("useMask\x00"))
	r.mask = gl.GetUniformLocation(program, gl.Str("mask\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 6*floatsPerVertex*4, nil, gl.DYNAMIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	position := uint32(gl.GetAttribLocation(program, gl.Str("position\x00")))
	gl.EnableVertexAttribArray(position)
	gl.VertexAttribPointer(position, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	texCoord := uint32(gl.GetAttribLocation(program, gl.Str("texCoord\x00")))
	gl.EnableVertexAttribArray(texCoord)
	gl.VertexAttribPointer(texCoord, 2, gl.FLOAT, false, stride, gl.PtrOffset(2*4))
	colour := uint32(gl.GetAttribLocation(program, gl.Str("color\x00")))
	gl.EnableVertexAttribArray(colour)
	gl.VertexAttribPointer(colour, 4, gl.FLOAT, false, stride, gl.PtrOffset(4*4))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return r, nil
}

// Viewport returns the framebuffer size the renderer was created for
func (r *GL) Viewport() (int, int) {
	return r.width, r.height
}

// Clear clears the colour buffer
func (r *GL) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// FillRect draws a solid or vertically shaded rectangle
func (r *GL) FillRect(rect image.Rectangle, top, bottom color.NRGBA) {
	r.draw(rect, top, bottom, 0)
}

// DrawText draws a text mask scaled by an integer factor
func (r *GL) DrawText(img *image.Alpha, at image.Point, scale int, c color.NRGBA) {
	size := img.Bounds().Size().Mul(scale)
	r.draw(image.Rectangle{Min: at, Max: at.Add(size)}, c, c, r.texture(img))
}

// texture uploads img on first use.
// TODO: evict textures whose images were dropped by a GUI relayout.
func (r *GL) texture(img *image.Alpha) uint32 {
	if tex, ok := r.textures[img]; ok {
		return tex
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	// nearest keeps the bitmap font crisp when scaled
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	bounds := img.Bounds()
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(bounds.Dx()), int32(bounds.Dy()), 0,
		gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	r.textures[img] = tex
	return tex
}

func (r *GL) draw(rect image.Rectangle, top, bottom color.NRGBA, tex uint32) {
	x0, y0 := float32(rect.Min.X), float32(rect.Min.Y)
	x1, y1 := float32(rect.Max.X), float32(rect.Max.Y)
	t := rgba(top)
	b := rgba(bottom)

	vertices := []float32{
		x0, y1, 0, 1, b[0], b[1], b[2], b[3],
		x0, y0, 0, 0, t[0], t[1], t[2], t[3],
		x1, y0, 1, 0, t[0], t[1], t[2], t[3],
		x0, y1, 0, 1, b[0], b[1], b[2], b[3],
		x1, y0, 1, 0, t[0], t[1], t[2], t[3],
		x1, y1, 1, 1, b[0], b[1], b[2], b[3],
	}

	// Orthographic projection with (0,0) at the top-left corner
	projection := []float32{
		2.0 / float32(r.width), 0, 0, 0,
		0, -2.0 / float32(r.height), 0, 0,
		0, 0, -1, 0,
		-1, 1, 0, 1,
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.projection, 1, false, &projection[0])
	if tex != 0 {
		gl.Uniform1i(r.useMask, 1)
		gl.Uniform1i(r.mask, 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex)
	} else {
		gl.Uniform1i(r.useMask, 0)
	}

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	if tex != 0 {
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
}

func rgba(c color.NRGBA) [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

// Dispose releases every GL object owned by the renderer
func (r *GL) Dispose() {
	for img, tex := range r.textures {
		gl.DeleteTextures(1, &tex)
		delete(r.textures, img)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(shader)

		kind := "vertex"
		if shaderType == gl.FRAGMENT_SHADER {
			kind = "fragment"
		}
		return 0, fmt.Errorf("failed to compile %s shader: %s", kind, strings.TrimRight(infoLog, "\x00"))
	}
	return shader, nil
}

func newProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %s", strings.TrimRight(infoLog, "\x00"))
	}
	return program, nil
}
