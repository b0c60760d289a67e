package loader

import (
	"bytes"
	"fmt"
	"image"
	stddraw "image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/image/draw"

	"github.com/dayflower-go/pathtracer/scenetables"
)

// maxLDRImageDimension bounds how large a decoded texture is allowed to
// stay before being downsampled, keeping a single glTF asset from blowing
// up Scene.LDRImagePixels. Grounded on the teacher's internal/opengl
// texture.go mip-friendly power-of-two handling, adapted here to a flat
// resize cap since scene tables carry no mip chain.
const maxLDRImageDimension = 2048

// decodedImage is the cache payload: already resized to RGB8, ready to be
// appended to Scene.LDRImagePixels.
type decodedImage struct {
	width, height int
	rgb           []byte
}

// imageCache memoizes decoded textures by source key (a file path or a
// synthetic "buffer:<bufferView index>" key for embedded images), grounded on
// the teacher's texture cache in scene/gltf_loader.go (texCache indexed by
// glTF texture index), generalized to an LRU so a loader processing many
// glTF assets in one process doesn't grow unbounded.
type imageCache struct {
	cache *lru.Cache
}

func newImageCache() *imageCache {
	c, err := lru.New(64)
	if err != nil {
		// lru.New only fails for a non-positive size; 64 is always valid.
		panic(err)
	}
	return &imageCache{cache: c}
}

func (ic *imageCache) decodeFile(path string) (*decodedImage, error) {
	if v, ok := ic.cache.Get(path); ok {
		return v.(*decodedImage), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture %q: %w", path, err)
	}
	img, err := decodeAndResize(data)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	ic.cache.Add(path, img)
	return img, nil
}

func (ic *imageCache) decodeBytes(key string, data []byte) (*decodedImage, error) {
	if v, ok := ic.cache.Get(key); ok {
		return v.(*decodedImage), nil
	}
	img, err := decodeAndResize(data)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", key, err)
	}
	ic.cache.Add(key, img)
	return img, nil
}

// decodeAndResize decodes a PNG/JPEG byte slice and, if either dimension
// exceeds maxLDRImageDimension, downsamples it with a high-quality
// resampler (golang.org/x/image/draw's CatmullRom kernel) before packing
// it to a flat RGB8 buffer.
func decodeAndResize(data []byte) (*decodedImage, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if w > maxLDRImageDimension || h > maxLDRImageDimension {
		scale := float64(maxLDRImageDimension) / float64(w)
		if hScale := float64(maxLDRImageDimension) / float64(h); hScale < scale {
			scale = hScale
		}
		nw, nh := int(float64(w)*scale), int(float64(h)*scale)
		if nw < 1 {
			nw = 1
		}
		if nh < 1 {
			nh = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		return packRGB(dst), nil
	}

	rgba := image.NewRGBA(b)
	stddraw.Draw(rgba, b, src, b.Min, stddraw.Src)
	return packRGB(rgba), nil
}

func packRGB(img *image.RGBA) *decodedImage {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := make([]byte, 0, w*h*3)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			out = append(out, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return &decodedImage{width: w, height: h, rgb: out}
}

// appendLDRImage copies a decoded image's pixels into the scene's growing
// LDRImagePixels buffer and returns a texture row pointing at them.
func appendLDRImage(scene *scenetables.Scene, img *decodedImage) scenetables.LDRImageTexture {
	start := int32(len(scene.LDRImagePixels))
	scene.LDRImagePixels = append(scene.LDRImagePixels, img.rgb...)
	return scenetables.LDRImageTexture{
		Angle:      0,
		ScaleU:     1,
		ScaleV:     1,
		Width:      int32(img.width),
		Height:     int32(img.height),
		PixelStart: start,
	}
}
