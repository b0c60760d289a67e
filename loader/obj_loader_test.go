package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dayflower-go/pathtracer/scenetables"
)

const testOBJ = `
v -1 0 -1
v 1 0 -1
v 1 0 1
v -1 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
usemtl red
f 1/1 2/2 3/3
f 1/1 3/3 4/4
`

const testMTL = `
newmtl red
Kd 0.9 0.1 0.1
`

func writeTestAsset(t *testing.T, dir string) string {
	t.Helper()
	objBody := "mtllib scene.mtl\n" + testOBJ
	if err := os.WriteFile(filepath.Join(dir, "scene.obj"), []byte(objBody), 0o644); err != nil {
		t.Fatalf("write obj: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scene.mtl"), []byte(testMTL), 0o644); err != nil {
		t.Fatalf("write mtl: %v", err)
	}
	return filepath.Join(dir, "scene.obj")
}

func TestLoadOBJBuildsTrianglesFromQuad(t *testing.T) {
	path := writeTestAsset(t, t.TempDir())

	scene, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}

	if len(scene.Triangles) != 2 {
		t.Errorf("expected a fan-triangulated quad to produce 2 triangles, got %d", len(scene.Triangles))
	}
	if len(scene.Primitives) != 1 {
		t.Errorf("expected one mesh primitive, got %d", len(scene.Primitives))
	}
}

func TestLoadOBJResolvesMaterialFromMTL(t *testing.T) {
	path := writeTestAsset(t, t.TempDir())

	scene, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}

	prim := scene.Primitives[0]
	if prim.MaterialKind != scenetables.MaterialKindMatte {
		t.Fatalf("expected a matte material, got kind %v", prim.MaterialKind)
	}
	mat := scene.MatteMaterials[prim.MaterialOffset]
	tex := scene.ConstantTextures[mat.DiffuseReflectance.Offset]
	if tex.Color.X < 0.8 || tex.Color.Y > 0.3 {
		t.Errorf("expected the red Kd from the mtl file, got %v", tex.Color)
	}
}

func TestLoadOBJFallsBackToDefaultCameraAndLight(t *testing.T) {
	path := writeTestAsset(t, t.TempDir())

	scene, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}

	if scene.Camera.ResX == 0 || scene.Camera.ResY == 0 {
		t.Errorf("expected a default camera with nonzero resolution")
	}
	if len(scene.LightIndex) == 0 {
		t.Errorf("expected a default light since OBJ carries no light information")
	}
}

func TestLoadOBJMissingFileErrors(t *testing.T) {
	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Errorf("expected an error for a nonexistent path")
	}
}
