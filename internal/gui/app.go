package gui

import (
	"fmt"
	"log"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/backdrop/internal/fx"
	"github.com/san-kum/backdrop/internal/nav"
)

const (
	fontSize   = 16
	haloPeak   = 0.35
	glowAlpha  = 0.25
	navHeight  = 48
	wheelStep  = 120
	defaultFPS = 60
)

// Theme colors for the window chrome.
var (
	ColBgDark    = rl.NewColor(17, 24, 39, 255)
	ColBgLight   = rl.NewColor(249, 250, 251, 255)
	ColTextDark  = rl.NewColor(249, 250, 251, 255)
	ColTextLight = rl.NewColor(17, 24, 39, 255)
	ColMuted     = rl.NewColor(156, 163, 175, 255)
	ColActive    = rl.NewColor(99, 102, 241, 255)
)

// layerOrder is back to front. Rain lays an opaque trail, so it goes first.
var layerOrder = []string{"rain", "glyphs", "particles"}

// layerKeys toggles layers the way the terminal view switches effects.
var layerKeys = map[int32]string{rl.KeyOne: "particles", rl.KeyTwo: "rain", rl.KeyThree: "glyphs"}

type Options struct {
	Width, Height int
	FPS           int
	Dark          bool
	Seed          int64
	FontPath      string
	FX            fx.Options
	Nav           nav.Config
	Layout        []nav.Bounds
}

// App composites every effect in one window under a navigation bar.
type App struct {
	opts    Options
	stage   *fx.Stage
	layers  map[string]*layer
	visible map[string]bool
	font    rl.Font
	page    *nav.VirtualPage
	tracker *nav.Tracker
	width   int32
	height  int32
	lastPtr rl.Vector2
}

// initWindow opens a resizable window and caps the frame rate.
func initWindow(o Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(o.Width), int32(o.Height), "backdrop")
	rl.SetTargetFPS(int32(o.FPS))
}

// loadFont loads path with katakana glyphs included, falling back to the
// built-in font when the file cannot be read.
func loadFont(path string) rl.Font {
	if path == "" {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(path, 32, fontCodepoints())
	if font.Texture.ID == 0 {
		log.Printf("gui: font %s unavailable, using default", path)
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func fontCodepoints() []rune {
	var cps []rune
	for r := rune(0x20); r < 0x7f; r++ {
		cps = append(cps, r)
	}
	for r := rune(0x30a0); r <= 0x30ff; r++ {
		cps = append(cps, r)
	}
	return cps
}

func NewApp(o Options) (*App, error) {
	if o.Nav == (nav.Config{}) {
		o.Nav = nav.DefaultConfig()
	}
	if len(o.Layout) == 0 {
		o.Layout = nav.Stack(nav.DefaultSections, nav.DefaultHeights)
	}
	a := &App{
		opts:    o,
		stage:   fx.NewStage(),
		layers:  make(map[string]*layer),
		visible: make(map[string]bool),
		font:    loadFont(o.FontPath),
		page:    nav.NewVirtualPage(o.Layout, float64(o.Height)),
		tracker: nav.NewTracker(o.Nav, nil, o.FPS),
		width:   int32(o.Width),
		height:  int32(o.Height),
	}
	a.stage.SetDark(o.Dark)
	if err := a.stage.Resize(o.Width, o.Height); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(o.Seed))
	reg := fx.NewRegistry()
	for _, name := range layerOrder {
		anim, err := reg.Get(name, o.FX, rng)
		if err != nil {
			return nil, err
		}
		l := newLayer(name, a.width, a.height, a.font)
		a.layers[name] = l
		a.visible[name] = true
		a.stage.Mount(anim, l)
	}
	a.tracker.OnScroll(a.page)
	return a, nil
}

// Run opens the window and blocks until it is closed.
func Run(o Options) error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("gui: %w: %dx%d", fx.ErrBadViewport, o.Width, o.Height)
	}
	if o.FPS <= 0 {
		o.FPS = defaultFPS
	}
	initWindow(o)
	defer rl.CloseWindow()

	app, err := NewApp(o)
	if err != nil {
		return err
	}
	defer app.Close()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Close() {
	a.stage.Close()
	for _, l := range a.layers {
		l.unload()
	}
}

// Update handles input, window resizes, and smooth scrolling.
func (a *App) Update() {
	if rl.IsWindowResized() {
		a.resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	}

	if rl.IsKeyPressed(rl.KeyT) {
		a.stage.SetDark(!a.stage.Dark())
	}
	for key, name := range layerKeys {
		if rl.IsKeyPressed(key) {
			a.visible[name] = !a.visible[name]
		}
	}
	if rl.IsKeyPressed(rl.KeyG) {
		a.tracker.ScrollTo(a.page, nextSection(a.page.Sections(), a.tracker.State().Active))
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.tracker.CancelScroll()
		a.page.ScrollBy(-float64(wheel) * wheelStep)
		a.tracker.OnScroll(a.page)
	}
	if y, ok := a.tracker.Tick(); ok {
		a.page.SetScrollY(y)
		a.tracker.OnScroll(a.page)
	}

	if ptr := rl.GetMousePosition(); ptr != a.lastPtr {
		a.lastPtr = ptr
		a.stage.PointerMove(float64(ptr.X), float64(ptr.Y))
	}
}

func (a *App) resize(w, h int32) {
	if w <= 0 || h <= 0 {
		return
	}
	a.width, a.height = w, h
	for _, l := range a.layers {
		l.resize(w, h)
	}
	if err := a.stage.Resize(int(w), int(h)); err != nil {
		log.Printf("gui: resize: %v", err)
	}
	a.page.SetViewport(float64(h))
	a.tracker.OnScroll(a.page)
}

// Draw advances every layer, then composites the visible ones.
func (a *App) Draw() {
	for _, name := range layerOrder {
		l := a.layers[name]
		anim, _, ok := a.stage.Lookup(name)
		if !ok {
			continue
		}
		l.begin()
		anim.Frame(l)
		l.end()
	}

	rl.BeginDrawing()
	if a.stage.Dark() {
		rl.ClearBackground(ColBgDark)
	} else {
		rl.ClearBackground(ColBgLight)
	}
	for _, name := range layerOrder {
		if a.visible[name] {
			a.layers[name].composite()
		}
	}
	a.DrawNav()
	a.DrawHUD()
	rl.EndDrawing()
}

// DrawNav draws the section links. Past the scroll threshold the bar gets a
// solid background.
func (a *App) DrawNav() {
	state := a.tracker.State()
	text, bg := ColTextDark, ColBgDark
	if !a.stage.Dark() {
		text, bg = ColTextLight, ColBgLight
	}
	if state.Scrolled {
		rl.DrawRectangle(0, 0, a.width, navHeight, rl.NewColor(bg.R, bg.G, bg.B, 230))
	}
	a.drawText("backdrop", 24, 14, 20, ColActive)

	x := float32(a.width) - 24
	sections := a.page.Sections()
	for i := len(sections) - 1; i >= 0; i-- {
		id := sections[i].ID
		w := rl.MeasureTextEx(a.font, id, fontSize, 1).X
		x -= w
		col := text
		if id == state.Active {
			col = ColActive
			rl.DrawRectangle(int32(x), navHeight-12, int32(w), 2, ColActive)
		}
		a.drawText(id, x, 16, fontSize, col)
		x -= 24
	}
}

func (a *App) DrawHUD() {
	h := float32(a.height)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 24, h-28, 14, ColMuted)
	status := fmt.Sprintf("scroll %.0f / %.0f", a.page.ScrollY(), a.page.MaxScroll())
	a.drawText(status, 120, h-28, 14, ColMuted)
	a.drawText("[1/2/3] LAYERS  [T] THEME  [G] NEXT  [WHEEL] SCROLL  [ESC] QUIT", float32(a.width)-560, h-28, 14, ColMuted)
}

func (a *App) drawText(text string, x, y float32, size float32, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(x, y), size, 1, color)
}

// nextSection returns the id after active, wrapping to the first.
func nextSection(sections []nav.Bounds, active string) string {
	if len(sections) == 0 {
		return ""
	}
	for i, s := range sections {
		if s.ID == active {
			return sections[(i+1)%len(sections)].ID
		}
	}
	return sections[0].ID
}
