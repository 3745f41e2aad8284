package scene

import (
	"cmp"
	"errors"
	"fmt"
	"log"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-showcase/common"
	"github.com/Carmen-Shannon/oxy-showcase/engine/camera"
	"github.com/Carmen-Shannon/oxy-showcase/engine/game_object"
	"github.com/Carmen-Shannon/oxy-showcase/engine/light"
	"github.com/Carmen-Shannon/oxy-showcase/engine/model"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer"
	"github.com/Carmen-Shannon/oxy-showcase/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene is a retained set of game objects and lights viewed through one camera.
// Each RenderFrame snapshots the current transforms and materials into a
// renderer.Frame and hands it to the renderer, so objects can be moved freely
// between frames. Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// LoadMeshes builds every mesh in parallel and registers each one with the
	// renderer under its map key. Meshes that fail to build or register are
	// skipped and their errors joined; the rest stay loaded.
	//
	// Parameters:
	//   - specs: mesh name to primitive description
	//
	// Returns:
	//   - error: the joined build and register errors, or nil
	LoadMeshes(specs map[string]model.Spec) error

	// Model returns a loaded mesh by name, or nil.
	Model(name string) model.Model

	// Add adds a GameObject to the scene, assigning it an ID if it has none.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the object's ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a GameObject by its ID. Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a GameObject by ID. Unknown IDs are ignored.
	Remove(id uint64)

	// Objects returns the scene's objects in insertion order.
	//
	// Returns:
	//   - []game_object.GameObject: a copy of the object list
	Objects() []game_object.GameObject

	// Count returns the number of objects in the scene.
	Count() int

	// AddLight adds a light source to the scene.
	//
	// Parameters:
	//   - l: the Light to add
	AddLight(l light.Light)

	// RemoveLight removes a light source from the scene by reference.
	RemoveLight(l light.Light)

	// Lights returns all lights currently registered in the scene.
	//
	// Returns:
	//   - []light.Light: a copy of the light list
	Lights() []light.Light

	// AmbientColor returns the scene's ambient light color.
	AmbientColor() [3]float32

	// SetAmbientColor sets the scene's ambient light color.
	SetAmbientColor(color [3]float32)

	// Background returns the linear RGB clear color.
	Background() [3]float32

	// SetBackground sets the linear RGB clear color.
	SetBackground(color [3]float32)

	// CullingEnabled reports whether objects outside the view frustum are skipped.
	CullingEnabled() bool

	// SetCullingEnabled enables or disables frustum culling.
	SetCullingEnabled(enabled bool)

	// Frames returns the number of frames this scene has submitted, including
	// those the renderer skipped while its surface had zero size.
	Frames() uint64

	// RenderFrame updates the camera, snapshots every enabled object, and
	// submits the frame to the renderer once.
	//
	// Returns:
	//   - error: the renderer's error, if any
	RenderFrame() error
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name string
	cam  camera.Camera
	r    renderer.Renderer

	models  map[string]model.Model
	objects []game_object.GameObject
	nextID  uint64

	lights     []light.Light
	ambient    [3]float32
	background [3]float32

	cullingEnabled  bool
	defaultMaterial material.Material
	frames          uint64

	// buildPool runs mesh generation during LoadMeshes. Workers idle-exit after
	// a second so a loaded scene holds no goroutines.
	buildPool    worker.DynamicWorkerPool
	buildWorkers int
}

var _ Scene = &scene{}

// NewScene creates a new Scene viewed through cam and drawn by r. Both are
// required and NewScene panics if either is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:              &sync.RWMutex{},
		name:            name,
		cam:             cam,
		r:               r,
		models:          make(map[string]model.Model),
		nextID:          1,
		ambient:         [3]float32{0.1, 0.1, 0.1},
		background:      [3]float32{1, 1, 1},
		cullingEnabled:  true,
		defaultMaterial: material.NewMaterial(material.WithName("default")),
		buildWorkers:    max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the pool after options so WithBuildWorkers can override the default.
	s.buildPool = worker.NewDynamicWorkerPool(s.buildWorkers, 256, 1*time.Second)
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) LoadMeshes(specs map[string]model.Spec) error {
	names := common.SortedKeys(specs)
	built := make([]model.Model, len(names))
	errs := make([]error, len(names))

	// Geometry is CPU-only and independent per mesh, so build in parallel and
	// register serially afterwards on the calling goroutine.
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		spec := specs[name]
		s.buildPool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				built[i], errs[i] = spec.Build(name)
				return nil, nil
			},
		})
	}
	wg.Wait()

	loaded := 0
	for i, m := range built {
		if errs[i] != nil {
			continue
		}
		if err := s.r.RegisterModel(m); err != nil {
			errs[i] = err
			continue
		}
		s.mu.Lock()
		s.models[m.Name()] = m
		s.mu.Unlock()
		loaded++
	}

	err := errors.Join(errs...)
	if err != nil {
		log.Printf("[Scene] %s: loaded %d/%d meshes", s.name, loaded, len(names))
		return fmt.Errorf("scene %s: %w", s.name, err)
	}
	log.Printf("[Scene] %s: loaded %d meshes", s.name, loaded)
	return nil
}

func (s *scene) Model(name string) model.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.models[name]
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(obj)
}

// addLocked assigns an ID when needed and appends the object. Caller must hold s.mu write lock.
func (s *scene) addLocked(obj game_object.GameObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	} else if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	s.objects = append(s.objects, obj)
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, obj := range s.objects {
		if obj.ID() == id {
			return obj
		}
	}
	return nil
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = slices.DeleteFunc(s.objects, func(obj game_object.GameObject) bool {
		return obj.ID() == id
	})
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.objects)
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.lights {
		if existing == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return
		}
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lights)
}

func (s *scene) AmbientColor() [3]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ambient
}

func (s *scene) SetAmbientColor(color [3]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambient = color
}

func (s *scene) Background() [3]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(color [3]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = color
}

func (s *scene) CullingEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cullingEnabled
}

func (s *scene) SetCullingEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cullingEnabled = enabled
}

func (s *scene) Frames() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frames
}

// sortable pairs a transparent draw item with its squared distance to the eye.
type sortable struct {
	item renderer.DrawItem
	dist float32
}

func (s *scene) RenderFrame() error {
	s.mu.Lock()
	s.cam.Update()
	viewProj := s.cam.ViewProjectionMatrix()
	eye := mgl32.Vec3(s.cam.Position())
	frustum := common.ExtractFrustum(viewProj)

	f := renderer.Frame{
		Index:      s.frames,
		Camera:     s.cam.GPU(),
		ClearColor: [4]float64{float64(s.background[0]), float64(s.background[1]), float64(s.background[2]), 1},
		Opaque:     make([]renderer.DrawItem, 0, len(s.objects)),
	}
	f.LightHeader, f.Lights = light.CollectGPULights(s.lights, s.ambient)

	var transparent []sortable
	for _, obj := range s.objects {
		if !obj.Enabled() {
			continue
		}
		pos, _, scale := obj.Transform()
		if m, ok := s.models[obj.ModelKey()]; ok && s.cullingEnabled {
			if !frustum.IntersectsSphere(pos, m.BoundingRadius()*common.MaxScale(scale)) {
				continue
			}
		}

		mat := obj.Material()
		if mat == nil {
			mat = s.defaultMaterial
		}
		item := renderer.DrawItem{
			ObjectID:    obj.ID(),
			Model:       obj.ModelKey(),
			ModelMatrix: obj.ModelMatrix(),
			Material:    mat.GPU(),
		}
		if mat.Transparent() {
			d := mgl32.Vec3(pos).Sub(eye)
			transparent = append(transparent, sortable{item: item, dist: d.Dot(d)})
			continue
		}
		f.Opaque = append(f.Opaque, item)
	}

	// Far to near; the stable sort keeps insertion order for equal distances.
	slices.SortStableFunc(transparent, func(a, b sortable) int {
		return cmp.Compare(b.dist, a.dist)
	})
	f.Transparent = make([]renderer.DrawItem, len(transparent))
	for i, t := range transparent {
		f.Transparent[i] = t.item
	}
	s.frames++
	s.mu.Unlock()

	return s.r.RenderFrame(f)
}
