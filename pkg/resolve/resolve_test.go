package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/vizgrid/pkg/config"
)

func newResolver() *Resolver {
	return New(config.DefaultTemplates, config.DefaultExtensions)
}

func TestRef(t *testing.T) {
	var zero Ref
	assert.False(t, zero.OK())
	assert.Equal(t, Absent, zero)
	assert.Equal(t, "<absent>", zero.String())

	r := Present("/x/a.png")
	assert.True(t, r.OK())
	assert.Equal(t, "/x/a.png", r.Path())
	assert.Equal(t, "/x/a.png", r.String())
}

func TestExpand(t *testing.T) {
	got := Expand(config.DefaultTemplates, "Chinese_B_0044", "layercam")
	assert.Equal(t, []string{
		"Chinese_B_0044_layercam_cam",
		"Chinese_B_0044_layercam_cam_gb",
		"Chinese_B_0044_layercam_gb",
	}, got)
}

func TestSlots(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  []string // "" for absent
	}{
		{
			name:  "all three",
			files: []string{"A_layercam_cam.png", "A_layercam_cam_gb.png", "A_layercam_gb.png"},
			want:  []string{"A_layercam_cam.png", "A_layercam_cam_gb.png", "A_layercam_gb.png"},
		},
		{
			name:  "guided backprop only",
			files: []string{"A_layercam_gb.webp"},
			want:  []string{"", "", "A_layercam_gb.webp"},
		},
		{
			name:  "cam only as jpg",
			files: []string{"A_layercam_cam.jpg"},
			want:  []string{"A_layercam_cam.jpg", "", ""},
		},
		{
			name:  "extension priority",
			files: []string{"A_layercam_cam.webp", "A_layercam_cam.jpeg", "A_layercam_cam.jpg"},
			want:  []string{"A_layercam_cam.jpg", "", ""},
		},
		{
			name:  "png beats jpg",
			files: []string{"A_layercam_cam.jpg", "A_layercam_cam.png"},
			want:  []string{"A_layercam_cam.png", "", ""},
		},
		{
			name:  "other method ignored",
			files: []string{"A_scorecam_cam.png", "B_layercam_cam.png"},
			want:  []string{"", "", ""},
		},
		{
			name:  "unlisted extension ignored",
			files: []string{"A_layercam_cam.gif"},
			want:  []string{"", "", ""},
		},
		{
			name:  "empty dir",
			files: nil,
			want:  []string{"", "", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				touch(t, filepath.Join(dir, f))
			}

			got, err := newResolver().Slots(dir, "A", "layercam")
			require.NoError(t, err)
			require.Len(t, got, 3)
			for i, w := range tt.want {
				if w == "" {
					assert.False(t, got[i].OK(), "slot %d should be absent, got %s", i, got[i])
					continue
				}
				assert.Equal(t, filepath.Join(dir, w), got[i].Path(), "slot %d", i)
			}
		})
	}
}

func TestSlotsMissingDir(t *testing.T) {
	got, err := newResolver().Slots(filepath.Join(t.TempDir(), "missing"), "A", "layercam")
	require.NoError(t, err)
	assert.Equal(t, Slots{Absent, Absent, Absent}, got)
	assert.Equal(t, 0, got.Resolved())
}

func TestSlotsDirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "A")
	touch(t, file)
	got, err := newResolver().Slots(file, "A", "layercam")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Resolved())
}

func TestSlotsIgnoresDirectoryCandidates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "A_layercam_cam.png"), 0o755))
	touch(t, filepath.Join(dir, "A_layercam_cam.jpg"))

	got, err := newResolver().Slots(dir, "A", "layercam")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "A_layercam_cam.jpg"), got[0].Path())
}

func TestFirst(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"cam wins", []string{"A_scorecam_gb.png", "A_scorecam_cam.jpg"}, "A_scorecam_cam.jpg"},
		{"cam_gb before gb", []string{"A_scorecam_gb.png", "A_scorecam_cam_gb.webp"}, "A_scorecam_cam_gb.webp"},
		{"gb only", []string{"A_scorecam_gb.jpeg"}, "A_scorecam_gb.jpeg"},
		{"nothing", []string{"A_layercam_cam.png"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				touch(t, filepath.Join(dir, f))
			}

			got, err := newResolver().First(dir, "A", "scorecam")
			require.NoError(t, err)
			if tt.want == "" {
				assert.False(t, got.OK())
				return
			}
			assert.Equal(t, filepath.Join(dir, tt.want), got.Path())
		})
	}
}

func TestFirstMissingDir(t *testing.T) {
	got, err := newResolver().First(filepath.Join(t.TempDir(), "nope"), "A", "scorecam")
	require.NoError(t, err)
	assert.Equal(t, Absent, got)
}

func TestCustomTemplates(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "gradcam-A.png"))

	r := New([]string{"{method}-{base}", "{base}"}, []string{".png"})
	assert.Equal(t, 2, r.Size())

	got, err := r.Slots(dir, "A", "gradcam")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Resolved())
	assert.True(t, got[0].OK())
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}
