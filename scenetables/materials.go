package scenetables

// MatteMaterial is a material row: pure Lambertian diffuse + optional
// emission (used by area lights attached to the same primitive).
type MatteMaterial struct {
	Emission          TextureRef
	DiffuseReflectance TextureRef
}

// MirrorMaterial is a material row: perfect specular reflection.
type MirrorMaterial struct {
	Reflectance TextureRef
}

// GlassMaterial is a material row: Fresnel-weighted specular reflection +
// transmission, SmallPT-style (constant index of refraction).
type GlassMaterial struct {
	Emission     TextureRef
	Reflectance  TextureRef
	Transmittance TextureRef
	Eta          float32 // default 1.5 when the compiler omits it
}

// GlassTexturedMaterial is the Rayito-style counterpart to GlassMaterial,
// looking its index of refraction up from a texture instead of a constant
// (§9 Open Question #1 — both families are retained).
type GlassTexturedMaterial struct {
	Emission      TextureRef
	Reflectance   TextureRef
	Transmittance TextureRef
	Eta           TextureRef
}

// MetalMaterial is a material row: a modified-Phong glossy lobe.
type MetalMaterial struct {
	Reflectance TextureRef
	Roughness   TextureRef
}

// ClearCoatMaterial is a material row: a Fresnel-weighted layered choice
// between specular reflection and a diffuse base coat.
type ClearCoatMaterial struct {
	Emission TextureRef
	Diffuse  TextureRef
	Specular TextureRef
}
