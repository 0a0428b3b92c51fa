package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Entity is anything in a scene that a ray can hit
type Entity interface {
	// Intersect returns the hit data for ray, or nil if the ray misses
	Intersect(ray Ray) *RayHit
}

// RayHit contains information about a ray-entity intersection
type RayHit struct {
	Position Vec3     // Point of intersection
	Normal   Vec3     // Unit surface normal at the intersection
	Incident Vec3     // Direction of the ray that produced the hit
	Material Material // Material of the hit entity
}

// NewRayHit creates a new hit record
func NewRayHit(position, normal, incident Vec3, material Material) *RayHit {
	return &RayHit{
		Position: position,
		Normal:   normal,
		Incident: incident,
		Material: material,
	}
}

// PointLight is an omnidirectional light without distance falloff
type PointLight struct {
	Position Vec3
	Color    Color
}

// NewPointLight creates a new point light
func NewPointLight(position Vec3, color Color) PointLight {
	return PointLight{Position: position, Color: color}
}
