package widgets

import (
	"math"
	"math/rand"
	"time"

	"github.com/hemantsolanki/portfolio/internal/clock"
	"github.com/hemantsolanki/portfolio/internal/dom"
)

// BackdropConfig describes the hero point cloud.
type BackdropConfig struct {
	CanvasID         string  `json:"canvasId" yaml:"canvas_id"`
	MobileBreakpoint float64 `json:"mobileBreakpoint" yaml:"mobile_breakpoint"`
	MobileCount      int     `json:"mobileCount" yaml:"mobile_count"`
	DesktopCount     int     `json:"desktopCount" yaml:"desktop_count"`
	Spread           float64 `json:"spread" yaml:"spread"`
	Speed            float64 `json:"speed" yaml:"speed"`
	FOV              float64 `json:"fov" yaml:"fov"`
	Near             float64 `json:"near" yaml:"near"`
	Far              float64 `json:"far" yaml:"far"`
	CameraZ          float64 `json:"cameraZ" yaml:"camera_z"`
	MaxPixelRatio    float64 `json:"maxPixelRatio" yaml:"max_pixel_ratio"`
	Color            string  `json:"color" yaml:"color"`
	Size             float64 `json:"size" yaml:"size"`
	Opacity          float64 `json:"opacity" yaml:"opacity"`
}

// DefaultBackdropConfig is 1000 cyan points (400 under 768px) in a 10-unit
// cube seen from z=5.
func DefaultBackdropConfig() BackdropConfig {
	return BackdropConfig{
		CanvasID:         "hero-canvas",
		MobileBreakpoint: 768,
		MobileCount:      400,
		DesktopCount:     1000,
		Spread:           10,
		Speed:            0.0008,
		FOV:              75,
		Near:             0.1,
		Far:              1000,
		CameraZ:          5,
		MaxPixelRatio:    2,
		Color:            "#00ffd5",
		Size:             0.02,
		Opacity:          0.8,
	}
}

// Vec3 is a point in world space.
type Vec3 struct{ X, Y, Z float64 }

// Renderer draws the backdrop. A nil Renderer means the platform has no
// rendering capability and the backdrop is skipped.
type Renderer interface {
	SetSize(width, height, pixelRatio float64)
	Render(b *Backdrop)
}

// Backdrop is a point cloud that rotates about the Y axis every frame.
type Backdrop struct {
	cfg      BackdropConfig
	win      *dom.Window
	sched    *clock.Scheduler
	renderer Renderer

	points   []Vec3
	rotation float64
	aspect   float64
	proj     [16]float64
	hidden   bool
	frames   int

	handle *clock.Handle
	sub    *dom.Subscription
}

// NewBackdrop builds the point cloud. It returns false, touching nothing,
// when the canvas element or the renderer is missing.
func NewBackdrop(doc *dom.Document, sched *clock.Scheduler, renderer Renderer, cfg BackdropConfig, rnd *rand.Rand) (*Backdrop, bool) {
	if renderer == nil || doc.GetElementByID(cfg.CanvasID) == nil {
		return nil, false
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	b := &Backdrop{cfg: cfg, win: doc.Window, sched: sched, renderer: renderer}

	count := cfg.DesktopCount
	if doc.Window.InnerWidth < cfg.MobileBreakpoint {
		count = cfg.MobileCount
	}
	b.points = make([]Vec3, count)
	for i := range b.points {
		b.points[i] = Vec3{
			X: (rnd.Float64() - 0.5) * cfg.Spread,
			Y: (rnd.Float64() - 0.5) * cfg.Spread,
			Z: (rnd.Float64() - 0.5) * cfg.Spread,
		}
	}
	b.resize()
	return b, true
}

// Start runs the render loop and follows window resizes until Stop.
func (b *Backdrop) Start() {
	if b.handle.Active() {
		return
	}
	if b.sub == nil {
		b.sub = b.win.On("resize", func(*dom.Event) { b.resize() })
	}
	b.frame(b.sched.Now())
}

// Stop cancels the render loop and the resize listener.
func (b *Backdrop) Stop() {
	b.handle.Cancel()
	b.sub.Cancel()
	b.sub = nil
}

// SetHidden pauses rotation and rendering while the page is hidden. The
// frame loop keeps running so it resumes on the next frame.
func (b *Backdrop) SetHidden(hidden bool) { b.hidden = hidden }

// Points returns the cloud in model space.
func (b *Backdrop) Points() []Vec3 { return b.points }

// Rotation returns the current Y rotation in radians.
func (b *Backdrop) Rotation() float64 { return b.rotation }

// Aspect returns the camera aspect ratio.
func (b *Backdrop) Aspect() float64 { return b.aspect }

// Frames returns the number of rendered frames.
func (b *Backdrop) Frames() int { return b.frames }

// Projection returns the camera's column-major perspective matrix.
func (b *Backdrop) Projection() [16]float64 { return b.proj }

func (b *Backdrop) frame(time.Duration) {
	if !b.hidden {
		b.rotation += b.cfg.Speed
		b.renderer.Render(b)
		b.frames++
	}
	b.handle = b.sched.RequestFrame(b.frame)
}

func (b *Backdrop) resize() {
	w, h := b.win.InnerWidth, b.win.InnerHeight
	if h <= 0 {
		h = 1
	}
	b.aspect = w / h
	b.proj = perspective(b.cfg.FOV, b.aspect, b.cfg.Near, b.cfg.Far)
	ratio := math.Min(b.win.DevicePixelRatio, b.cfg.MaxPixelRatio)
	b.renderer.SetSize(w, b.win.InnerHeight, ratio)
}

// perspective builds a column-major projection matrix with a vertical
// field of view in degrees.
func perspective(fovDeg, aspect, near, far float64) [16]float64 {
	f := 1 / math.Tan(fovDeg*math.Pi/360)
	var m [16]float64
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / (near - far)
	m[11] = -1
	m[14] = 2 * far * near / (near - far)
	return m
}

// Project maps a model-space point to viewport pixels after the current
// rotation. ok is false for points behind the camera or off screen.
func (b *Backdrop) Project(p Vec3) (x, y float64, ok bool) {
	sin, cos := math.Sincos(b.rotation)
	rx := p.X*cos + p.Z*sin
	rz := -p.X*sin + p.Z*cos
	vx, vy, vz := rx, p.Y, rz-b.cfg.CameraZ

	cw := -vz
	if cw <= b.cfg.Near {
		return 0, 0, false
	}
	nx := b.proj[0] * vx / cw
	ny := b.proj[5] * vy / cw
	if nx < -1 || nx > 1 || ny < -1 || ny > 1 {
		return 0, 0, false
	}
	x = (nx + 1) / 2 * b.win.InnerWidth
	y = (1 - ny) / 2 * b.win.InnerHeight
	return x, y, true
}

// FrameStats is a Renderer that records what a frame would draw. The
// motion command uses it to report particle visibility.
type FrameStats struct {
	Width, Height, PixelRatio float64
	Frames                    int
	Visible                   int
}

// SetSize records the drawing buffer size.
func (s *FrameStats) SetSize(width, height, pixelRatio float64) {
	s.Width, s.Height, s.PixelRatio = width, height, pixelRatio
}

// Render counts the points on screen.
func (s *FrameStats) Render(b *Backdrop) {
	s.Frames++
	s.Visible = 0
	for _, p := range b.points {
		if _, _, ok := b.Project(p); ok {
			s.Visible++
		}
	}
}
