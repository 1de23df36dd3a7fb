package glyphspin

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/glyphspin/rt/geom"
)

func TestAssetServer_AddMesh(t *testing.T) {
	server := NewAssetServer()
	box := geom.Box(1, 1, 1)

	id := server.AddMesh(box)
	_, err := uuid.Parse(string(id))
	require.NoError(t, err, "ids are uuids")

	got, ok := server.Mesh(id)
	require.True(t, ok)
	assert.Same(t, box, got)

	other := server.AddMesh(geom.Box(2, 2, 2))
	assert.NotEqual(t, id, other)
	assert.Equal(t, 2, server.MeshCount())

	_, ok = server.Mesh("missing")
	assert.False(t, ok)
}
