package main

import (
	"context"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-showcase/engine"
	"github.com/Carmen-Shannon/oxy-showcase/engine/animation"
	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/game_object"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer"
	"github.com/Carmen-Shannon/oxy-showcase/engine/scene"
	"github.com/Carmen-Shannon/oxy-showcase/engine/window"
	"github.com/Carmen-Shannon/oxy-showcase/internal/config"
	"github.com/go-gl/mathgl/mgl32"
)

// showcase is the assembled program: one scene driven by one FrameUpdater on
// one engine.
type showcase struct {
	renderer renderer.Renderer
	camera   camera.Camera
	scene    scene.Scene
	updater  animation.FrameUpdater
	engine   engine.Engine
	objects  map[string]game_object.GameObject
}

// frameBudget renders the scene and quits the engine once the renderer has
// drawn limit frames. Ticks spent minimized do not count. A zero limit never quits.
type frameBudget struct {
	scene  scene.Scene
	engine engine.Engine
	limit  uint64
}

func (b *frameBudget) RenderFrame() error {
	err := b.scene.RenderFrame()
	if b.limit > 0 && b.scene.Renderer().Frames() >= b.limit {
		b.engine.Quit()
	}
	return err
}

// newShowcase builds the scene described by cfg on r. win may be nil for
// headless runs.
//
// Parameters:
//   - cfg: the validated configuration
//   - win: the window, or nil
//   - r: the renderer to draw with
//   - frames: quit after this many frames, 0 for no limit
//
// Returns:
//   - *showcase: the assembled program, not yet started
//   - error: a mesh, material or motion error
func newShowcase(cfg *config.Config, win window.Window, r renderer.Renderer, frames uint64) (*showcase, error) {
	background, ambient, err := cfg.Scene.Colors()
	if err != nil {
		return nil, err
	}

	width, height := r.Size()
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	cam := camera.NewCamera(
		camera.WithFovDegrees(cfg.Camera.Fov),
		camera.WithAspect(aspect),
		camera.WithClipPlanes(cfg.Camera.Near, cfg.Camera.Far),
		camera.WithController(camera.NewController(
			camera.WithTarget(cfg.Camera.Target),
			camera.WithEye(cfg.Camera.Position),
		)),
	)

	sc := scene.NewScene(cfg.Scene.Name, cam, r,
		scene.WithBackground(background),
		scene.WithAmbientColor(ambient),
		scene.WithFrustumCulling(cfg.Scene.FrustumCulling),
	)
	if err := sc.LoadMeshes(cfg.Meshes); err != nil {
		return nil, err
	}

	for i, lc := range cfg.Lights {
		l, err := lc.Build()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		sc.AddLight(l)
	}

	engineOpts := []engine.EngineBuilderOption{
		engine.WithScene(sc),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithFrameLimit(cfg.Engine.FrameLimit),
	}
	if win != nil {
		engineOpts = append(engineOpts, engine.WithWindow(win))
	}
	eng := engine.NewEngine(engineOpts...)

	s := &showcase{
		renderer: r,
		camera:   cam,
		scene:    sc,
		engine:   eng,
		objects:  make(map[string]game_object.GameObject, len(cfg.Objects)),
	}
	s.updater = animation.NewFrameUpdater(
		animation.WithRenderer(&frameBudget{scene: sc, engine: eng, limit: frames}),
		animation.WithScheduler(eng),
	)

	for _, oc := range cfg.Objects {
		if err := s.addObject(cfg, oc); err != nil {
			return nil, err
		}
	}

	if cfg.Camera.Spin != 0 {
		s.updater.Add(cam.Controller(), animation.Spin{Rate: [3]float64{0, cfg.Camera.Spin, 0}})
	}

	log.Printf("[Showcase] %s: %d objects, %d lights, %d animated", sc.Name(), sc.Count(), len(sc.Lights()), s.updater.Len())
	return s, nil
}

// addObject creates one configured object, adds it to the scene and registers
// its motion with the updater.
func (s *showcase) addObject(cfg *config.Config, oc config.ObjectConfig) error {
	opts := []game_object.GameObjectBuilderOption{
		game_object.WithName(oc.Name),
		game_object.WithModel(oc.Mesh),
		game_object.WithPosition(oc.Position[0], oc.Position[1], oc.Position[2]),
		game_object.WithRotation(oc.Rotation[0], oc.Rotation[1], oc.Rotation[2]),
	}
	scale := oc.ScaleOrDefault()
	opts = append(opts, game_object.WithScale(scale[0], scale[1], scale[2]))
	if oc.Material != "" {
		m, err := cfg.Materials[oc.Material].Build(oc.Material)
		if err != nil {
			return fmt.Errorf("object %s: %w", oc.Name, err)
		}
		opts = append(opts, game_object.WithMaterial(m))
	}

	obj := game_object.NewGameObject(opts...)
	s.scene.Add(obj)
	if oc.Name != "" {
		s.objects[oc.Name] = obj
	}

	motion, err := oc.BuildMotion()
	if err != nil {
		return fmt.Errorf("object %s: %w", oc.Name, err)
	}
	if motion != nil {
		s.updater.Add(obj, motion)
	}
	return nil
}

// run starts the updater and blocks in the windowed loop, or in the headless
// loop when there is no window.
func (s *showcase) run(ctx context.Context) error {
	s.updater.Start()
	defer s.renderer.Release()

	if s.engine.Window() != nil {
		stop := quitOnDone(ctx, s.engine)
		defer stop()
		s.engine.Run()
		return ctx.Err()
	}
	return s.engine.RunHeadless(ctx, 0)
}

// quitOnDone quits eng once ctx is done. The windowed loop never reads ctx,
// so an interrupt reaches it through Quit.
//
// Returns:
//   - func() bool: stops watching ctx
func quitOnDone(ctx context.Context, eng engine.Engine) func() bool {
	return context.AfterFunc(ctx, eng.Quit)
}

// eye returns the current camera position, for logging.
func (s *showcase) eye() mgl32.Vec3 {
	return mgl32.Vec3(s.camera.Position())
}
