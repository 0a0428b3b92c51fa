package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"glass-spheres", "Glass Spheres"},
		{"mirror_hall", "Mirror Hall"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func writeSceneFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestParseSceneMetadata(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		file     string
		content  string
		expected SceneInfo
	}{
		{
			file: "complete.txt",
			content: `# Scene: Glass Row
# Description: Three glass spheres
# Group: Dielectrics

Material "glass" Refractive (1, 1, 1) 1.5`,
			expected: SceneInfo{ID: "file:complete", Name: "Glass Row", Description: "Three glass spheres", Group: "Dielectrics", Type: "file"},
		},
		{
			file: "partial.txt",
			content: `# Scene: Mirrors
Material "m" Reflective (1, 1, 1)
# Group: ignored after the first statement`,
			expected: SceneInfo{ID: "file:partial", Name: "Mirrors", Group: "Scene Files", Type: "file"},
		},
		{
			file:     "no-metadata.txt",
			content:  `PointLight "key" (0, 5, 0) (1, 1, 1)`,
			expected: SceneInfo{ID: "file:no-metadata", Name: "No Metadata", Group: "Scene Files", Type: "file"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			path := writeSceneFile(t, dir, tc.file, tc.content)
			tc.expected.FilePath = path

			result, err := ParseSceneMetadata(path)
			if err != nil {
				t.Fatalf("ParseSceneMetadata() error: %v", err)
			}
			if result != tc.expected {
				t.Errorf("ParseSceneMetadata() = %+v, want %+v", result, tc.expected)
			}
		})
	}
}

func TestParseSceneMetadata_MissingFile(t *testing.T) {
	if _, err := ParseSceneMetadata(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestListFileScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "b.txt", "# Scene: Beta\n")
	writeSceneFile(t, dir, "a.txt", "# Scene: Alpha\n")
	writeSceneFile(t, dir, "ignored.pbrt", "# Scene: Other\n")

	scenes, err := ListFileScenes(dir)
	if err != nil {
		t.Fatalf("ListFileScenes() error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d", len(scenes))
	}
	if scenes[0].Name != "Alpha" || scenes[1].Name != "Beta" {
		t.Errorf("Expected scenes sorted by name, got %q, %q", scenes[0].Name, scenes[1].Name)
	}

	missing, err := ListFileScenes(filepath.Join(dir, "nope"))
	if err != nil {
		t.Errorf("Missing directory should not be an error: %v", err)
	}
	if missing == nil || len(missing) != 0 {
		t.Errorf("Expected empty slice for missing directory, got %v", missing)
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	writeSceneFile(t, dir, "z.txt", "# Group: Zeta\n")
	writeSceneFile(t, dir, "a.txt", "# Group: Alpha\n")

	response, err := ListAllScenes(dir)
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	var names []string
	for _, group := range response.Groups {
		names = append(names, group.Name)
	}
	expected := []string{"Built-in Scenes", "Alpha", "Zeta"}
	if len(names) != len(expected) {
		t.Fatalf("Groups = %v, want %v", names, expected)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Group %d = %q, want %q", i, names[i], expected[i])
		}
	}

	if len(response.Groups[0].Scenes) != len(BuiltinSceneIDs()) {
		t.Errorf("Expected %d built-in scenes, got %d", len(BuiltinSceneIDs()), len(response.Groups[0].Scenes))
	}
}

func TestNewBuiltinScene(t *testing.T) {
	for _, id := range BuiltinSceneIDs() {
		t.Run(id, func(t *testing.T) {
			s, err := NewBuiltinScene(id)
			if err != nil {
				t.Fatalf("NewBuiltinScene(%q) error: %v", id, err)
			}
			if len(s.Entities()) == 0 || len(s.Lights()) == 0 {
				t.Errorf("Scene %q should have entities and lights", id)
			}
			if err := s.Options().Validate(); err != nil {
				t.Errorf("Scene %q has invalid options: %v", id, err)
			}
		})
	}

	if _, err := NewBuiltinScene("nope"); err == nil {
		t.Error("Expected error for unknown scene")
	}
}
