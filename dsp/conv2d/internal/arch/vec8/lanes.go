package vec8

const lanes = 8

// vec is an 8-lane register image.
type vec [lanes]float64

func set1(x float64) vec {
	return vec{x, x, x, x, x, x, x, x}
}

// load reads lanes samples starting at src[off], stride apart.
func load(src []float64, off, stride int) vec {
	var v vec
	if stride == 1 {
		copy(v[:], src[off:off+lanes])
		return v
	}
	for l := range v {
		v[l] = src[off+l*stride]
	}
	return v
}

// mulAdd returns acc + a*b lane-wise.
func mulAdd(acc, a, b vec) vec {
	for l := range acc {
		acc[l] += a[l] * b[l]
	}
	return acc
}

func store(dst []float64, off int, v vec) {
	copy(dst[off:off+lanes], v[:])
}
