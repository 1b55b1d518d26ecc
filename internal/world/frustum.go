package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane represents a plane in 3D space (ax + by + cz + d = 0)
type Plane struct {
	normal   rl.Vector3
	distance float32
}

const (
	cullNear float32 = 0.1
	cullFar  float32 = 1000
)

// ExtractFrustum builds the camera's frustum for a viewport of the given
// aspect ratio (Gribb/Hartmann plane extraction).
func ExtractFrustum(camera rl.Camera3D, aspect float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)

	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, cullNear, cullFar)
	} else {
		halfH := camera.Fovy / 2.0
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, cullNear, cullFar)
	}

	// VP = P * V
	vp := rl.MatrixMultiply(view, proj)

	row := func(sign float32, a, b, c, d float32) Plane {
		return normalizePlane(Plane{
			normal: rl.Vector3{
				X: vp.M3 + sign*a,
				Y: vp.M7 + sign*b,
				Z: vp.M11 + sign*c,
			},
			distance: vp.M15 + sign*d,
		})
	}

	var f Frustum
	f.planes[0] = row(1, vp.M0, vp.M4, vp.M8, vp.M12)
	f.planes[1] = row(-1, vp.M0, vp.M4, vp.M8, vp.M12)
	f.planes[2] = row(1, vp.M1, vp.M5, vp.M9, vp.M13)
	f.planes[3] = row(-1, vp.M1, vp.M5, vp.M9, vp.M13)
	f.planes[4] = row(1, vp.M2, vp.M6, vp.M10, vp.M14)
	f.planes[5] = row(-1, vp.M2, vp.M6, vp.M10, vp.M14)
	return f
}

func normalizePlane(p Plane) Plane {
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return Plane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: p.distance / length,
	}
}

// ContainsSphere tests if a sphere is inside or intersects the frustum
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := 0; i < 6; i++ {
		dist := rl.Vector3DotProduct(f.planes[i].normal, center) + f.planes[i].distance
		if dist < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	return f.ContainsSphere(point, 0)
}
