package glyphspin

import (
	"github.com/google/uuid"

	"github.com/gekko3d/glyphspin/rt/core"
)

type AssetId string

// AssetServer owns meshes; entities refer to them by id.
type AssetServer struct {
	meshes map[AssetId]*core.Mesh
}

type AssetServerModule struct{}

// MeshComponent draws an asset mesh at the entity's world transform.
type MeshComponent struct {
	Mesh     AssetId
	Material core.Material
}

func NewAssetServer() *AssetServer {
	return &AssetServer{meshes: make(map[AssetId]*core.Mesh)}
}

func (server *AssetServer) AddMesh(mesh *core.Mesh) AssetId {
	id := makeAssetId()
	server.meshes[id] = mesh
	return id
}

func (server *AssetServer) Mesh(id AssetId) (*core.Mesh, bool) {
	mesh, ok := server.meshes[id]
	return mesh, ok
}

func (server *AssetServer) MeshCount() int {
	return len(server.meshes)
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewAssetServer())
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
