package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed update rate; DT is one update step in seconds.
	TPS = 60
	DT  = 1.0 / TPS
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
