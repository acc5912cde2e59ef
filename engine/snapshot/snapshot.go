package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-cube/common"
	"github.com/Carmen-Shannon/oxy-cube/engine/model"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidTransform is returned when the view-projection matrix contains NaN or Inf.
var ErrInvalidTransform = errors.New("view-projection matrix is not finite")

// Snapshotter renders a mesh through a view-projection matrix into an image on the CPU.
// It draws the same picture as the GPU pipeline: the matrix maps model space to clip space,
// NDC x and y span the image, and nearer fragments (smaller NDC z) win.
type Snapshotter interface {
	// Render rasterizes mesh with viewProj at Size × Supersample and downsamples to Size.
	//
	// Parameters:
	//   - viewProj: the combined projection × view matrix
	//   - mesh: the triangle list to draw
	//
	// Returns:
	//   - *image.NRGBA: a Size × Size image; uncovered pixels hold the background color
	//   - error: an error if the mesh is invalid or the matrix is not finite
	Render(viewProj mgl64.Mat4, mesh model.Mesh) (*image.NRGBA, error)

	// Size returns the output edge length in pixels.
	Size() int

	// Supersample returns the per-axis supersampling factor.
	Supersample() int

	// Release stops the rasterizer's worker goroutines. Render must not be called afterwards.
	Release()
}

// snapshotter is the implementation of the Snapshotter interface.
type snapshotter struct {
	mu *sync.Mutex

	size        int
	supersample int
	background  color.NRGBA

	// pool rasterizes disjoint row bands in parallel. Workers persist between
	// renders until Release.
	pool    worker.DynamicWorkerPool
	workers int
}

var _ Snapshotter = &snapshotter{}

// NewSnapshotter creates a Snapshotter. Defaults: 512 px, 2× supersampling, transparent background,
// runtime.NumCPU() workers.
//
// Parameters:
//   - options: functional options to configure the snapshotter
//
// Returns:
//   - Snapshotter: the new snapshotter
func NewSnapshotter(options ...SnapshotterOption) Snapshotter {
	s := &snapshotter{
		mu:          &sync.Mutex{},
		size:        512,
		supersample: 2,
		workers:     max(runtime.NumCPU(), 1),
	}
	for _, opt := range options {
		opt(s)
	}

	// Queue size of 256 covers one task per band with headroom.
	s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	return s
}

func (s *snapshotter) Size() int {
	return s.size
}

func (s *snapshotter) Supersample() int {
	return s.supersample
}

func (s *snapshotter) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool.Stop()
}

func (s *snapshotter) Render(viewProj mgl64.Mat4, mesh model.Mesh) (*image.NRGBA, error) {
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if !common.IsFinite4(viewProj) {
		return nil, ErrInvalidTransform
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	renderSize := s.size * s.supersample
	fb := NewFrameBuffer(renderSize, renderSize, s.background)
	triangles := s.setup(viewProj, mesh, renderSize)

	bands := min(s.workers, renderSize)
	bandHeight := (renderSize + bands - 1) / bands

	var wg sync.WaitGroup
	for band := range bands {
		rowMin := band * bandHeight
		rowMax := min(rowMin+bandHeight, renderSize)
		if rowMin >= rowMax {
			break
		}

		wg.Add(1)
		s.pool.SubmitTask(worker.Task{
			ID: band,
			Do: func() (any, error) {
				defer wg.Done()
				for _, tri := range triangles {
					rasterizeTriangle(fb, tri, rowMin, rowMax)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	img := fb.Image()
	if s.supersample > 1 {
		img = Downsample(img, s.size)
	}
	return img, nil
}

// setup projects every triangle that is not trivially outside the clip volume.
// A mesh whose bounding sphere is outside the volume yields no triangles.
func (s *snapshotter) setup(viewProj mgl64.Mat4, mesh model.Mesh, renderSize int) [][3]screenVertex {
	clipVolume := common.ExtractClipVolume(viewProj)
	if clipVolume.SphereOutside(mgl64.Vec3{}, float64(mesh.BoundingRadius())) {
		return nil
	}
	triangles := make([][3]screenVertex, 0, mesh.TriangleCount())

	for i := range mesh.TriangleCount() {
		a, b, c := mesh.Triangle(i)
		idx := [3]uint32{a, b, c}

		var world [3]mgl64.Vec3
		for k, vi := range idx {
			p := mesh.Positions[vi]
			world[k] = mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
		}
		if clipVolume.TriangleOutside(world[0], world[1], world[2]) {
			continue
		}

		var tri [3]screenVertex
		visible := true
		for k, vi := range idx {
			x, y, z, ok := project(viewProj, world[k], renderSize, renderSize)
			if !ok {
				visible = false
				break
			}
			col := mesh.Colors[vi]
			tri[k] = screenVertex{X: x, Y: y, Z: z, Color: mgl64.Vec3{float64(col[0]), float64(col[1]), float64(col[2])}}
		}
		if visible {
			triangles = append(triangles, tri)
		}
	}
	return triangles
}
