// Package extrinsics builds the rigid-transform graph relating every
// stream's coordinate frame to every other stream's.
package extrinsics

// Transform is a rigid transform: a 3x3 rotation stored column-major plus a
// translation vector. It maps a point in the source frame to the target
// frame: p' = R*p + t.
type Transform struct {
	Rotation    [9]float32
	Translation [3]float32
}

// Identity returns the identity transform
func Identity() Transform {
	return Transform{
		Rotation: [9]float32{
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
		},
	}
}

// Compose chains two transforms: given ab mapping frame A to frame B and bc
// mapping B to C, the result maps A to C.
func Compose(ab, bc Transform) Transform {
	var out Transform

	// Column-major: element (row r, col c) lives at c*3+r
	for c := 0; c < 3; c++ {
		for r := 0; r < 3; r++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += bc.Rotation[k*3+r] * ab.Rotation[c*3+k]
			}
			out.Rotation[c*3+r] = sum
		}
	}

	for r := 0; r < 3; r++ {
		out.Translation[r] = bc.Translation[r]
		for k := 0; k < 3; k++ {
			out.Translation[r] += bc.Rotation[k*3+r] * ab.Translation[k]
		}
	}

	return out
}
