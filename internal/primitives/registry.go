package primitives

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// cached holds mesh and material for a primitive type. Created lazily on first Draw.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry maps primitive type names to mesh+material. Meshes are created on first use
// so that GPU resources are allocated after the window/OpenGL context exists.
type Registry struct {
	cache    map[string]cached
	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame
}

// NewRegistry returns a registry with no primitives.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[string]cached),
		lightDir: normalize([3]float32{0.5, 1, 0.5}), // from above-right
	}
}

// SetView sets camera position and direction-to-light for this frame. Call once per frame
// before drawing so lit primitives get correct shading.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = normalize(lightDir)
}

func normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

const (
	sphereRings  = 16
	sphereSlices = 16
)

// ensure creates the mesh for primType if not yet cached. All primitives are unit sized
// and centered so Transform.Scale is their full size.
func (r *Registry) ensure(primType string) bool {
	if _, ok := r.cache[primType]; ok {
		return true
	}
	var mesh rl.Mesh
	switch primType {
	case "cube":
		mesh = rl.GenMeshCube(1, 1, 1)
	case "sphere":
		mesh = rl.GenMeshSphere(0.5, sphereRings, sphereSlices)
	case "plane":
		mesh = rl.GenMeshPlane(1, 1, 1, 1)
	default:
		return false
	}
	mtl := rl.LoadMaterialDefault()
	if shader := loadLitShader(); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	r.cache[primType] = cached{mesh: mesh, mtl: mtl}
	return true
}

// loadLitShader returns a shader that does simple directional light + ambient.
// Same vertex attributes as raylib meshes: vertexPosition, vertexTexCoord, vertexNormal.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform float specularPower;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  float spec = pow(max(dot(N, normalize(L + V)), 0.0), specularPower) * 0.3;
  vec3 rgb = ambient.rgb * colDiffuse.rgb + colDiffuse.rgb * NdotL * 0.75 + vec3(spec) * step(0.0, NdotL);
  finalColor = vec4(rgb, colDiffuse.a);
}
`
)

var ambient = [4]float32{0.25, 0.26, 0.3, 1.0}

const specularPower = float32(32.0)

// setLitShaderUniforms sets viewPos, lightDir, ambient and specular on the given shader (cgo-safe: local arrays).
func (r *Registry) setLitShaderUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{r.viewPos[0], r.viewPos[1], r.viewPos[2]}
	lightDir := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb := [4]float32{ambient[0], ambient[1], ambient[2], ambient[3]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{specularPower}, rl.ShaderUniformFloat)
	}
}

// Matrix returns the model matrix of t: scale, then rotate about Z, then translate.
func (t Transform) Matrix() rl.Matrix {
	sx, sy, sz := t.Scale[0], t.Scale[1], t.Scale[2]
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sz == 0 {
		sz = 1
	}
	m := rl.MatrixScale(sx, sy, sz)
	if t.RotationZ != 0 {
		m = rl.MatrixMultiply(m, rl.MatrixRotateZ(t.RotationZ))
	}
	return rl.MatrixMultiply(m, rl.MatrixTranslate(t.Position[0], t.Position[1], t.Position[2]))
}

// Draw draws one instance of primType ("cube", "sphere" or "plane") tinted with tint.
// Must be called between BeginMode3D and EndMode3D, after SetView. Unknown types are skipped.
func (r *Registry) Draw(primType string, t Transform, tint rl.Color) {
	if !r.ensure(primType) {
		return
	}
	c := r.cache[primType]
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	r.setLitShaderUniforms(c.mtl.Shader)
	rl.DrawMesh(c.mesh, c.mtl, t.Matrix())
}

// DrawPrism extrudes the polygon poly (world XY, counter-clockwise or not) along Z by depth,
// centered on z = 0. Faces are flat shaded with tint; the side walls are darker.
func DrawPrism(poly []rl.Vector2, depth float32, tint rl.Color) {
	if len(poly) < 3 {
		return
	}
	front, back := depth/2, -depth/2
	side := rl.ColorBrightness(tint, -0.3)
	for i := 1; i+1 < len(poly); i++ {
		a, b, c := poly[0], poly[i], poly[i+1]
		// Both windings so the face shows regardless of culling.
		rl.DrawTriangle3D(v3(a, front), v3(b, front), v3(c, front), tint)
		rl.DrawTriangle3D(v3(a, front), v3(c, front), v3(b, front), tint)
		rl.DrawTriangle3D(v3(a, back), v3(b, back), v3(c, back), tint)
		rl.DrawTriangle3D(v3(a, back), v3(c, back), v3(b, back), tint)
	}
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		rl.DrawTriangle3D(v3(a, front), v3(a, back), v3(b, back), side)
		rl.DrawTriangle3D(v3(a, front), v3(b, back), v3(a, back), side)
		rl.DrawTriangle3D(v3(a, front), v3(b, back), v3(b, front), side)
		rl.DrawTriangle3D(v3(a, front), v3(b, front), v3(b, back), side)
	}
}

// DrawOutline draws poly as a closed loop at z = 0.
func DrawOutline(poly []rl.Vector2, tint rl.Color) {
	for i, a := range poly {
		if len(poly) == 2 && i == 1 {
			break
		}
		b := poly[(i+1)%len(poly)]
		rl.DrawLine3D(v3(a, 0), v3(b, 0), tint)
	}
}

func v3(p rl.Vector2, z float32) rl.Vector3 {
	return rl.NewVector3(p.X, p.Y, z)
}
