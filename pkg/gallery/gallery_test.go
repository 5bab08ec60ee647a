package gallery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/vizgrid/internal/testutil"
	"github.com/matzehuels/vizgrid/pkg/config"
)

func build(t *testing.T, tree *testutil.Tree, name string) []Row {
	t.Helper()
	c := config.Default(tree.Root)
	g, err := c.Gallery(name)
	require.NoError(t, err)

	b := NewBuilder(c, nil)
	sources, err := b.Sources(g)
	require.NoError(t, err)
	rows, err := b.Build(context.Background(), g, sources)
	require.NoError(t, err)
	return rows
}

func TestSlotRowsEndToEndExample(t *testing.T) {
	tree := testutil.NewTree(t).Touch(
		"Chinese/A_0001.png",
		"layercam/A_0001/A_0001_layercam_cam.jpg",
	)

	rows := build(t, tree, "pattern-viz")
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "A_0001", row.Base)
	assert.Equal(t, tree.Path("Chinese/A_0001.png"), row.Source.Path())
	require.Len(t, row.Methods, 3)

	layer := row.Methods[0]
	require.Len(t, layer, 3)
	assert.Equal(t, tree.Path("layercam/A_0001/A_0001_layercam_cam.jpg"), layer[0].Path())
	assert.False(t, layer[1].OK())
	assert.False(t, layer[2].OK())

	for _, other := range row.Methods[1:] {
		assert.Equal(t, 0, other.Resolved())
		assert.Len(t, other, 3)
	}

	resolved, absent := row.Counts()
	assert.Equal(t, 1, resolved)
	assert.Equal(t, 8, absent)
}

func TestSlotRowsMissingMethodDirKeepsRow(t *testing.T) {
	tree := testutil.NewTree(t).Touch(
		"Chinese/A_0001.png",
		"Chinese/A_0002.png",
		"scorecam/A_0002/A_0002_scorecam_gb.png",
	)

	rows := build(t, tree, "pattern-viz")
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "A_0001", first.Base)
	assert.True(t, first.Source.OK())
	for _, slots := range first.Methods {
		assert.Equal(t, 0, slots.Resolved())
	}

	second := rows[1]
	score := second.Methods[2]
	assert.False(t, score[0].OK())
	assert.False(t, score[1].OK())
	assert.Equal(t, tree.Path("scorecam/A_0002/A_0002_scorecam_gb.png"), score[2].Path())
}

func TestSlotRowsRequireBaseDirectory(t *testing.T) {
	// A variant sitting directly in the method directory is not picked up.
	tree := testutil.NewTree(t).Touch(
		"Chinese/A_0001.png",
		"layercam/A_0001_layercam_cam.png",
	)

	rows := build(t, tree, "pattern-viz")
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].Methods[0].Resolved())
}

func TestSectionRows(t *testing.T) {
	tree := testutil.NewTree(t).Touch(
		"Chinese/A_0001.png",
		"12.17_ResNet50/pretrain_multicrop/layercam/A_0001/A_0001_layercam_gb.png",
		"12.17_ResNet50/pretrain_multicrop/layercam/A_0001/A_0001_layercam_cam_gb.png",
		"12.17_ResNet50/nopretrain_singlecrop/scorecam/A_0001/A_0001_scorecam_cam.jpg",
	)

	rows := build(t, tree, "pattern-viz-resnet50")
	require.Len(t, rows, 1)
	row := rows[0]
	require.Len(t, row.Sections, 4)

	names := []string{}
	for _, s := range row.Sections {
		names = append(names, s.Name)
		assert.Len(t, s.Cells, 2)
	}
	assert.Equal(t, []string{"nopretrain_singlecrop", "nopretrain_multicrop", "pretrain_singlecrop", "pretrain_multicrop"}, names)

	assert.False(t, row.Sections[0].Cells[0].OK())
	assert.Equal(t,
		tree.Path("12.17_ResNet50/nopretrain_singlecrop/scorecam/A_0001/A_0001_scorecam_cam.jpg"),
		row.Sections[0].Cells[1].Path())
	assert.Equal(t,
		tree.Path("12.17_ResNet50/pretrain_multicrop/layercam/A_0001/A_0001_layercam_cam_gb.png"),
		row.Sections[3].Cells[0].Path(), "cam_gb outranks gb")

	resolved, absent := row.Counts()
	assert.Equal(t, 2, resolved)
	assert.Equal(t, 6, absent)
}

func TestSourcesMissingDir(t *testing.T) {
	tree := testutil.NewTree(t)
	rows := build(t, tree, "pattern-viz")
	assert.Empty(t, rows)

	rows = build(t, tree, "pattern-viz-resnet50")
	assert.Empty(t, rows)
}

func TestBuildCancelled(t *testing.T) {
	tree := testutil.NewTree(t).Touch("Chinese/A_0001.png")
	c := config.Default(tree.Root)
	b := NewBuilder(c, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Build(ctx, c.Galleries[0], []string{tree.Path("Chinese/A_0001.png")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildInvalidLayout(t *testing.T) {
	c := config.Default(t.TempDir())
	g := c.Galleries[0]
	g.Layout = "grid"

	_, err := NewBuilder(c, nil).Build(context.Background(), g, nil)
	assert.Error(t, err)
}
