package mathutil

import "math"

// perlinPermutation is the standard Ken Perlin reference permutation table,
// duplicated so lookups never need to wrap.
var perlinPermutation = buildPermutation()

func buildPermutation() [512]int {
	base := [256]int{
		151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
		140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
		247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
		57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
		74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
		60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
		65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
		200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
		52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
		207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
		119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
		129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
		218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
		81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
		184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
		222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
	}
	var p [512]int
	for i := 0; i < 512; i++ {
		p[i] = base[i%256]
	}
	return p
}

func fade(t float64) float64 { return t * t * t * (t*(t*6-15) + 10) }

func gradient(hash int, x, y, z float64) float64 {
	h := hash & 15
	var u, v float64
	if h < 8 {
		u = x
	} else {
		u = y
	}
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	res := 0.0
	if h&1 == 0 {
		res += u
	} else {
		res -= u
	}
	if h&2 == 0 {
		res += v
	} else {
		res -= v
	}
	return res
}

// Perlin3D evaluates classic Perlin noise at (x,y,z), returning a value in
// roughly [-1,1].
func Perlin3D(x, y, z float32) float32 {
	X, Y, Z := float64(x), float64(y), float64(z)
	xi := int(math.Floor(X)) & 255
	yi := int(math.Floor(Y)) & 255
	zi := int(math.Floor(Z)) & 255
	xf := X - math.Floor(X)
	yf := Y - math.Floor(Y)
	zf := Z - math.Floor(Z)

	u := fade(xf)
	v := fade(yf)
	w := fade(zf)

	p := &perlinPermutation
	a := p[xi] + yi
	aa := p[a] + zi
	ab := p[a+1] + zi
	b := p[xi+1] + yi
	ba := p[b] + zi
	bb := p[b+1] + zi

	lerp := func(t, a, b float64) float64 { return a + t*(b-a) }

	res := lerp(w,
		lerp(v,
			lerp(u, gradient(p[aa], xf, yf, zf), gradient(p[ba], xf-1, yf, zf)),
			lerp(u, gradient(p[ab], xf, yf-1, zf), gradient(p[bb], xf-1, yf-1, zf))),
		lerp(v,
			lerp(u, gradient(p[aa+1], xf, yf, zf-1), gradient(p[ba+1], xf-1, yf, zf-1)),
			lerp(u, gradient(p[ab+1], xf, yf-1, zf-1), gradient(p[bb+1], xf-1, yf-1, zf-1))))

	return float32(res)
}

// PerlinTurbulence sums |Perlin3D| at successively doubled frequencies and
// halved amplitudes across octaves — the standard "turbulence" fractal
// combination used for marble-style textures.
func PerlinTurbulence(p Vec3, octaves int) float32 {
	var sum float32
	freq := p
	amp := float32(1.0)
	total := float32(0)
	for i := 0; i < octaves; i++ {
		n := Perlin3D(freq.X, freq.Y, freq.Z)
		if n < 0 {
			n = -n
		}
		sum += n * amp
		total += amp
		freq = freq.Mul(2)
		amp *= 0.5
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

// simplex skew/unskew factors for 3D.
const (
	simplexF3 = 1.0 / 3.0
	simplexG3 = 1.0 / 6.0
)

// simplex3D evaluates 3D simplex noise at p, returning roughly [-1,1].
func simplex3D(p Vec3) float32 {
	x, y, z := float64(p.X), float64(p.Y), float64(p.Z)

	s := (x + y + z) * simplexF3
	i := int(math.Floor(x + s))
	j := int(math.Floor(y + s))
	k := int(math.Floor(z + s))

	t := float64(i+j+k) * simplexG3
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)
	z0 := z - (float64(k) - t)

	var i1, j1, k1, i2, j2, k2 int
	switch {
	case x0 >= y0 && y0 >= z0:
		i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
	case x0 >= z0 && z0 >= y0:
		i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
	case z0 >= x0 && x0 >= y0:
		i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
	case z0 >= y0 && y0 >= x0:
		i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
	case y0 >= z0 && z0 >= x0:
		i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
	default:
		i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
	}

	x1 := x0 - float64(i1) + simplexG3
	y1 := y0 - float64(j1) + simplexG3
	z1 := z0 - float64(k1) + simplexG3
	x2 := x0 - float64(i2) + 2*simplexG3
	y2 := y0 - float64(j2) + 2*simplexG3
	z2 := z0 - float64(k2) + 2*simplexG3
	x3 := x0 - 1 + 3*simplexG3
	y3 := y0 - 1 + 3*simplexG3
	z3 := z0 - 1 + 3*simplexG3

	p256 := &perlinPermutation
	gi0 := p256[(i+p256[(j+p256[k&255])&255])&511]
	gi1 := p256[(i+i1+p256[(j+j1+p256[(k+k1)&255])&255])&511]
	gi2 := p256[(i+i2+p256[(j+j2+p256[(k+k2)&255])&255])&511]
	gi3 := p256[(i+1+p256[(j+1+p256[(k+1)&255])&255])&511]

	contrib := func(gi int, x, y, z float64) float64 {
		t := 0.6 - x*x - y*y - z*z
		if t < 0 {
			return 0
		}
		t *= t
		return t * t * gradient(gi, x, y, z)
	}

	n := contrib(gi0, x0, y0, z0) + contrib(gi1, x1, y1, z1) +
		contrib(gi2, x2, y2, z2) + contrib(gi3, x3, y3, z3)

	return float32(32 * n)
}

// SimplexFBM sums simplex noise across octaves with the given frequency
// scale, gain, and frequency multiplier (the standard fractal-Brownian-motion
// construction used by the Simplex-fBm texture).
func SimplexFBM(p Vec3, octaves int, frequency, gain, lacunarity float32) float32 {
	var sum, amp float32 = 0, 1
	var total float32
	freq := frequency
	for i := 0; i < octaves; i++ {
		sum += simplex3D(p.Mul(freq)) * amp
		total += amp
		amp *= gain
		freq *= lacunarity
	}
	if total == 0 {
		return 0
	}
	return sum / total
}
