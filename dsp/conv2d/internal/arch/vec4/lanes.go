package vec4

// lanes is the number of float64 samples held by one vector.
const lanes = 4

// vec is a 4-lane register image. Operations mirror the load, broadcast,
// multiply-add and store primitives of a SIMD instruction set.
type vec [lanes]float64

// set1 broadcasts x into every lane.
func set1(x float64) vec {
	return vec{x, x, x, x}
}

// load reads lanes samples starting at src[off], stride apart.
func load(src []float64, off, stride int) vec {
	if stride == 1 {
		s := src[off : off+lanes : off+lanes]
		return vec{s[0], s[1], s[2], s[3]}
	}
	var v vec
	for l := range v {
		v[l] = src[off+l*stride]
	}
	return v
}

// mulAdd returns acc + a*b lane-wise.
func mulAdd(acc, a, b vec) vec {
	return vec{
		acc[0] + a[0]*b[0],
		acc[1] + a[1]*b[1],
		acc[2] + a[2]*b[2],
		acc[3] + a[3]*b[3],
	}
}

// store writes all lanes to dst[off:].
func store(dst []float64, off int, v vec) {
	d := dst[off : off+lanes : off+lanes]
	d[0], d[1], d[2], d[3] = v[0], v[1], v[2], v[3]
}
