package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/integrator"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	EntityIndex  int                    `json:"entityIndex"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.R*255), int(c.G*255), int(c.B*255))
}

// extractMaterialInfo describes a material for the inspector
func extractMaterialInfo(mat core.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"color": hexColor(mat.Color),
		"rgb":   [3]float64{mat.Color.R, mat.Color.G, mat.Color.B},
	}
	if mat.Type == core.Refractive {
		properties["refractiveIndex"] = mat.RefractiveIndex
	}
	return properties
}

// extractGeometryInfo describes an entity for the inspector
func extractGeometryInfo(entity core.Entity) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := entity.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["center"] = vecArray(geom.Center)
		properties["normal"] = vecArray(geom.Normal)
		return "plane", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{vecArray(geom.V0), vecArray(geom.V1), vecArray(geom.V2)}
		properties["normal"] = vecArray(geom.GetNormal())
		return "triangle", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the center ray of a pixel and reports the nearest hit
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResponse {
	camera := renderer.NewCamera(width, height)
	ray := camera.GenerateRay(pixelX, pixelY, 0.5, 0.5)

	hit, index := integrator.NearestHit(sceneObj.Entities(), ray)
	if hit == nil {
		return InspectResponse{Hit: false, EntityIndex: -1}
	}

	geometryType, geometryProps := extractGeometryInfo(sceneObj.Entities()[index])

	return InspectResponse{
		Hit:          true,
		EntityIndex:  index,
		MaterialType: hit.Material.Type.String(),
		GeometryType: geometryType,
		Point:        vecArray(hit.Position),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.Position.Subtract(ray.Origin).Length(),
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(hit.Material),
			"geometry": geometryProps,
		},
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, maxSceneBytes)
	}
	sceneObj, err := s.createScene(req, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY))
}
