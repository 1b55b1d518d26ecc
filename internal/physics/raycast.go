package physics

import (
	"math"

	"edgeofdark/internal/components"
	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Raycast returns the closest solid collider hit along the ray. Triggers,
// inactive objects, objects outside mask and the ignore hierarchy are skipped.
func (p *PhysicsWorld) Raycast(origin, direction rl.Vector3, maxDistance float32, mask engine.LayerMask, ignore *engine.GameObject) (engine.RaycastResult, bool) {
	if rl.Vector3Length(direction) == 0 || maxDistance <= 0 {
		return engine.RaycastResult{}, false
	}
	direction = rl.Vector3Normalize(direction)
	var closestHit engine.RaycastResult
	closestHit.Distance = maxDistance
	hit := false

	for _, obj := range p.objects {
		if !obj.ActiveInHierarchy() || !mask.Contains(obj.Layer) {
			continue
		}
		if ignore != nil && obj.IsDescendantOf(ignore) {
			continue
		}
		for _, c := range obj.Components() {
			var hitInfo engine.RaycastResult
			var ok bool
			switch col := c.(type) {
			case *components.BoxCollider:
				if col.IsTrigger {
					continue
				}
				hitInfo, ok = raycastBox(origin, direction, col, maxDistance)
			case *components.SphereCollider:
				if col.IsTrigger {
					continue
				}
				hitInfo, ok = raycastSphere(origin, direction, col, maxDistance)
			default:
				continue
			}
			if ok && (!hit || hitInfo.Distance < closestHit.Distance) {
				closestHit = hitInfo
				closestHit.GameObject = obj
				hit = true
			}
		}
	}

	return closestHit, hit
}

func raycastBox(origin, direction rl.Vector3, box *components.BoxCollider, maxDistance float32) (engine.RaycastResult, bool) {
	bounds := NewAABBFromCenter(box.GetCenter(), box.GetWorldSize())
	min, max := bounds.Min, bounds.Max

	var tmin, tmax float32

	// X slab
	if direction.X != 0 {
		t1 := (min.X - origin.X) / direction.X
		t2 := (max.X - origin.X) / direction.X
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = t1
		tmax = t2
	} else if origin.X < min.X || origin.X > max.X {
		return engine.RaycastResult{}, false
	} else {
		tmin = -1e30
		tmax = 1e30
	}

	// Y slab
	if direction.Y != 0 {
		t1 := (min.Y - origin.Y) / direction.Y
		t2 := (max.Y - origin.Y) / direction.Y
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if origin.Y < min.Y || origin.Y > max.Y {
		return engine.RaycastResult{}, false
	}

	if tmin > tmax {
		return engine.RaycastResult{}, false
	}

	// Z slab
	if direction.Z != 0 {
		t1 := (min.Z - origin.Z) / direction.Z
		t2 := (max.Z - origin.Z) / direction.Z
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if origin.Z < min.Z || origin.Z > max.Z {
		return engine.RaycastResult{}, false
	}

	if tmin > tmax || tmax < 0 || tmin > maxDistance {
		return engine.RaycastResult{}, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return engine.RaycastResult{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))

	// Normal from whichever face the point sits on
	var normal rl.Vector3
	epsilon := float32(0.001)
	if abs(point.X-min.X) < epsilon {
		normal = rl.Vector3{X: -1}
	} else if abs(point.X-max.X) < epsilon {
		normal = rl.Vector3{X: 1}
	} else if abs(point.Y-min.Y) < epsilon {
		normal = rl.Vector3{Y: -1}
	} else if abs(point.Y-max.Y) < epsilon {
		normal = rl.Vector3{Y: 1}
	} else if abs(point.Z-min.Z) < epsilon {
		normal = rl.Vector3{Z: -1}
	} else {
		normal = rl.Vector3{Z: 1}
	}

	return engine.RaycastResult{Point: point, Normal: normal, Distance: t}, true
}

func raycastSphere(origin, direction rl.Vector3, sphere *components.SphereCollider, maxDistance float32) (engine.RaycastResult, bool) {
	center := sphere.GetCenter()
	radius := sphere.GetWorldRadius()

	oc := rl.Vector3Subtract(origin, center)
	a := rl.Vector3DotProduct(direction, direction)
	b := 2.0 * rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return engine.RaycastResult{}, false
	}

	t := (-b - float32(math.Sqrt(float64(discriminant)))) / (2 * a)
	if t < 0 {
		t = (-b + float32(math.Sqrt(float64(discriminant)))) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return engine.RaycastResult{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, center))

	return engine.RaycastResult{Point: point, Normal: normal, Distance: t}, true
}
