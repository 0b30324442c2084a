package fuzzy

// Trapezoid is a trapezoidal membership function over [A, D] with a full
// plateau on [B, C]. Degenerate shapes (A == B or C == D) collapse the
// corresponding ramp into a hard edge, which is how the right-triangle
// sets ("close", "high") are expressed.
type Trapezoid struct {
	A, B, C, D float64
}

// Degree returns the membership degree of x in [0, 1].
func (t Trapezoid) Degree(x float64) float64 {
	if x < t.A || x > t.D {
		return 0
	}
	if x < t.B {
		return (x - t.A) / (t.B - t.A)
	}
	if x <= t.C {
		return 1
	}
	return (t.D - x) / (t.D - t.C)
}
