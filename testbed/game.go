package testbed

import (
	"github.com/spaghettifunk/ray/engine"
	"github.com/spaghettifunk/ray/engine/core"
	"github.com/spaghettifunk/ray/engine/math"
	"github.com/spaghettifunk/ray/engine/renderer/components"
	"github.com/spaghettifunk/ray/engine/renderer/metadata"
	"github.com/spaghettifunk/ray/engine/systems"
)

const (
	crateMaterial = "materials/crate.yaml"
	glassMaterial = "materials/glass.yaml"

	orbitSpeed    float32 = 0.3
	orbitDistance float32 = 12
	metricsPeriod float64 = 2
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	WorldCamera *components.Camera

	width  uint32
	height uint32

	floor  *systems.Geometry
	cube   *systems.Geometry
	crate  *metadata.Material
	glass  *metadata.Material
	orbit  float32
	spin   float32
	report float64
}

func NewTestGame(configPath string) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				ConfigPath: configPath,
			},
			State: &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Initialize() error {
	state := g.State.(*gameState)
	state.WorldCamera = g.SystemManager.CameraSystem().GetDefault()
	state.WorldCamera.SetPosition(math.NewVec3(0, 4, orbitDistance))

	geometries := g.SystemManager.GeometrySystem()
	floor, err := geometries.Acquire(systems.GeneratePlaneConfig(20, 20, 4, 4, 4, 4, "floor"))
	if err != nil {
		return err
	}
	state.floor = floor
	cube, err := geometries.Acquire(systems.GenerateCubeConfig(2, 2, 2, 1, 1, "cube"))
	if err != nil {
		return err
	}
	state.cube = cube

	materials := g.SystemManager.MaterialSystem()
	if state.crate, err = materials.Acquire(crateMaterial); err != nil {
		return err
	}
	if state.glass, err = materials.Acquire(glassMaterial); err != nil {
		return err
	}
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)

	state.orbit += orbitSpeed * float32(deltaTime)
	state.spin += float32(deltaTime)

	// orbit the origin while looking at it
	state.WorldCamera.SetEulerRotation(math.NewVec3(math.DegToRad(-15), state.orbit, 0))
	forward := state.WorldCamera.Forward()
	state.WorldCamera.SetPosition(forward.MulScalar(-orbitDistance))

	state.report += deltaTime
	if state.report >= metricsPeriod {
		state.report = 0
		fps, frameTime := g.SystemManager.Pipeline().Metrics()
		core.LogInfo("%.1f fps, %.2f ms per frame", fps, frameTime*1000)
	}
	return nil
}

func (g *TestGame) Render(scene *systems.RenderScene, deltaTime float64) error {
	state := g.State.(*gameState)

	floor := state.floor.RenderObject(state.crate, metadata.RenderQueueOpaque)
	floor.Transform = math.NewMat4EulerXYZ(math.DegToRad(-90), 0, 0).Mul(math.NewMat4Translation(math.NewVec3(0, -1, 0)))

	cube := state.cube.RenderObject(state.crate, metadata.RenderQueueOpaque)
	cube.Transform = math.NewMat4EulerXYZ(0, state.spin, 0)

	glass := state.cube.RenderObject(state.glass, metadata.RenderQueueTransparent)
	glass.Transform = math.NewMat4Scale(math.NewVec3(0.5, 0.5, 0.5)).Mul(math.NewMat4Translation(math.NewVec3(3, 0, 0)))

	scene.Add(floor, cube, glass)
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)

	state.width = width
	state.height = height
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.State.(*gameState)

	materials := g.SystemManager.MaterialSystem()
	if state.crate != nil {
		materials.Release(state.crate.Name)
	}
	if state.glass != nil {
		materials.Release(state.glass.Name)
	}
	geometries := g.SystemManager.GeometrySystem()
	if state.floor != nil {
		geometries.Release(state.floor.Name)
	}
	if state.cube != nil {
		geometries.Release(state.cube.Name)
	}
	return nil
}
