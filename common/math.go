package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Perspective creates a perspective projection matrix for WebGPU clip space,
// where depth maps to [0, 1] rather than OpenGL's [-1, 1] used by mgl32.Perspective.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// LookAt creates a view matrix that positions and orients the camera.
// A degenerate eye == center configuration yields the identity matrix.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
//
// Returns:
//   - mgl32.Mat4: the column-major view matrix
func LookAt(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	if eye.ApproxEqual(center) {
		return mgl32.Ident4()
	}
	return mgl32.LookAtV(eye, center, up)
}

// BuildModelMatrix constructs a model matrix from position, Euler rotation and scale.
// Rotations are applied in X, then Y, then Z order about the object's local axes
// (M = T * Rx * Ry * Rz * S).
//
// Parameters:
//   - pos: translation in world space
//   - rot: rotation angles in radians around each axis
//   - scale: scale factors along each axis
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func BuildModelMatrix(pos, rot, scale [3]float32) mgl32.Mat4 {
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(mgl32.HomogRotate3DX(rot[0])).
		Mul4(mgl32.HomogRotate3DY(rot[1])).
		Mul4(mgl32.HomogRotate3DZ(rot[2])).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// MaxScale returns the largest absolute component of a scale vector, used to
// grow bounding spheres under non-uniform scale.
func MaxScale(scale [3]float32) float32 {
	m := float32(math.Abs(float64(scale[0])))
	for _, s := range scale[1:] {
		if a := float32(math.Abs(float64(s))); a > m {
			m = a
		}
	}
	return m
}

// Normalize3 returns v scaled to unit length, or the zero vector if v has no length.
func Normalize3(v [3]float32) [3]float32 {
	n := mgl32.Vec3(v)
	if l := n.Len(); l > 0 {
		n = n.Mul(1 / l)
	}
	return [3]float32(n)
}
