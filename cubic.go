package keyframe

// evaluateCubic blends start and target with the cubic Hermite basis at local
// progress s. v0 and v1 are velocities in value per second; scaling them by
// duration turns them into tangents on the unit progress interval. The
// returned velocity is in value per second as well.
//
// With v0 == v1 == 0 this reduces to smoothstep, 3s² - 2s³.
func evaluateCubic(s, start, target, v0, v1, duration float64) (value, velocity float64) {
	s2 := s * s
	s3 := s2 * s

	h10 := s3 - 2*s2 + s
	h01 := 3*s2 - 2*s3
	h11 := s3 - s2

	delta := target - start
	m0 := v0 * duration
	m1 := v1 * duration

	// start*h00 + target*h01 rewritten so that s == 0 yields start exactly.
	value = start + delta*h01 + m0*h10 + m1*h11

	dh10 := 3*s2 - 4*s + 1
	dh01 := 6*s - 6*s2
	dh11 := 3*s2 - 2*s
	velocity = (delta*dh01 + m0*dh10 + m1*dh11) / duration
	return value, velocity
}
