package world

import "math"

// Deterministic 2D value noise with multiple octaves, hashed from lattice
// coordinates so that any chunk can be generated independently.

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func hash2(seed int64, x, y int64) uint64 {
	return mix64(uint64(seed) ^ uint64(x)*0x9e3779b97f4a7c15 ^ uint64(y)*0xc2b2ae3d27d4eb4f)
}

// latticeValue maps a lattice point to [0,1].
func latticeValue(seed int64, x, y int64) float64 {
	return float64(hash2(seed, x, y)&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

func valueNoise2D(seed int64, x, y float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := fade(x - x0)
	fy := fade(y - y0)

	ix, iy := int64(x0), int64(y0)
	v00 := latticeValue(seed, ix, iy)
	v10 := latticeValue(seed, ix+1, iy)
	v01 := latticeValue(seed, ix, iy+1)
	v11 := latticeValue(seed, ix+1, iy+1)

	return lerp(lerp(v00, v10, fx), lerp(v01, v11, fx), fy)
}

// octaveNoise2D sums octaves of value noise, normalised to [0,1].
func octaveNoise2D(seed int64, x, y float64, octaves int, persistence, lacunarity float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := range octaves {
		sum += valueNoise2D(seed+int64(i*131), x*frequency, y*frequency) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
