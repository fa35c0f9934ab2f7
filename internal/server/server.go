// Package server serves effect frames as SVG over HTTP so the animators can
// be previewed in a browser.
package server

import (
	"bytes"
	"context"
	"errors"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/san-kum/backdrop/internal/export"
	"github.com/san-kum/backdrop/internal/fx"
	"github.com/san-kum/backdrop/internal/loop"
	"github.com/san-kum/backdrop/internal/nav"
)

const (
	DefaultAddr = ":8080"
	AddrEnv     = "BACKDROP_ADDR"

	shutdownGrace = 5 * time.Second
)

type Options struct {
	Width, Height int
	FPS           int
	Dark          bool
	Seed          int64
	FX            fx.Options
	Nav           nav.Config
	Order         []string
	Layout        []nav.Bounds
}

// Server owns one stage whose animators each draw into their own SVG list.
// All animator state is touched on the loop goroutine only.
type Server struct {
	opts    Options
	loop    *loop.Loop
	handle  *loop.Handle
	stage   *fx.Stage
	frames  map[string]*export.SVG
	tracker *nav.Tracker
	layout  []nav.Bounds
	ticks   int
}

type themeRequest struct {
	Dark *bool `json:"dark" binding:"required"`
}

type pointerRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type resizeRequest struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
}

// Addr picks the listen address: the flag value, then the environment, then
// the default.
func Addr(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(AddrEnv); env != "" {
		return env
	}
	return DefaultAddr
}

func New(o Options) (*Server, error) {
	if o.Width <= 0 || o.Height <= 0 {
		return nil, fx.ErrBadViewport
	}
	if o.Nav == (nav.Config{}) {
		o.Nav = nav.DefaultConfig()
	}
	if len(o.Layout) == 0 {
		o.Layout = nav.Stack(nav.DefaultSections, nav.DefaultHeights)
	}

	s := &Server{
		opts:    o,
		loop:    loop.New(o.FPS),
		stage:   fx.NewStage(),
		frames:  make(map[string]*export.SVG),
		tracker: nav.NewTracker(o.Nav, o.Order, o.FPS),
		layout:  o.Layout,
	}
	s.stage.SetDark(o.Dark)
	if err := s.stage.Resize(o.Width, o.Height); err != nil {
		return nil, err
	}

	bg := fx.PaletteFor(o.Dark).Background
	rng := rand.New(rand.NewSource(o.Seed))
	reg := fx.NewRegistry()
	for _, name := range reg.Names() {
		anim, err := reg.Get(name, o.FX, rng)
		if err != nil {
			return nil, err
		}
		surface := export.NewSVG(o.Width, o.Height, bg)
		s.frames[name] = surface
		s.stage.Mount(anim, surface)
	}
	s.loop.OnFrame(func(int) {
		s.stage.Frame()
		s.ticks++
	})
	return s, nil
}

// Start runs the animator loop until ctx is done or Close is called. Every
// effect advances once per tick whether or not anyone is requesting frames.
func (s *Server) Start(ctx context.Context) {
	s.handle = s.loop.Start(ctx)
}

// Ticks reports how many frames the loop has run.
func (s *Server) Ticks(ctx context.Context) (int, error) {
	var n int
	err := s.loop.Do(ctx, func() { n = s.ticks })
	return n, err
}

func (s *Server) Close() {
	if s.handle != nil {
		s.handle.Stop()
	}
	s.stage.Close()
}

// Router builds the gin engine. The loop must be started first.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/frame/:effect", s.frame)
	r.POST("/theme", s.theme)
	r.POST("/pointer", s.pointer)
	r.POST("/resize", s.resize)
	r.GET("/nav", s.nav)
	return r
}

// Run serves on addr until ctx is cancelled or the listener fails.
func Run(ctx context.Context, addr string, o Options) error {
	s, err := New(o)
	if err != nil {
		return err
	}
	s.Start(ctx)
	defer s.Close()

	srv := &http.Server{Addr: addr, Handler: s.Router()}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Printf("serving effects on %s", ln.Addr())
	return serve(ctx, srv, ln)
}

// serve runs srv on ln and shuts it down once ctx is done.
func serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// frame returns the latest frame an effect drew. It does not advance it.
func (s *Server) frame(c *gin.Context) {
	name := c.Param("effect")
	var buf bytes.Buffer
	var renderErr error
	found := false

	err := s.loop.Do(c.Request.Context(), func() {
		surface, ok := s.frames[name]
		if !ok {
			return
		}
		found = true
		renderErr = surface.Render(&buf)
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": fx.ErrUnknownEffect.Error() + ": " + name})
		return
	}
	if renderErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": renderErr.Error()})
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

func (s *Server) theme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dark := *req.Dark
	err := s.loop.Do(c.Request.Context(), func() {
		s.stage.SetDark(dark)
		bg := fx.PaletteFor(dark).Background
		for _, f := range s.frames {
			f.SetBackground(bg)
		}
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dark": dark})
}

// pointer is fire-and-forget: a dropped move is replaced by the next one.
func (s *Server) pointer(c *gin.Context) {
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !s.loop.Post(func() { s.stage.PointerMove(req.X, req.Y) }) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "pointer queue full"})
		return
	}
	c.Status(http.StatusAccepted)
}

func (s *Server) resize(c *gin.Context) {
	var req resizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var resizeErr error
	err := s.loop.Do(c.Request.Context(), func() {
		if resizeErr = s.stage.Resize(req.Width, req.Height); resizeErr != nil {
			return
		}
		for _, f := range s.frames {
			f.Resize(req.Width, req.Height)
		}
	})
	switch {
	case err != nil:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(resizeErr, fx.ErrBadViewport):
		c.JSON(http.StatusBadRequest, gin.H{"error": resizeErr.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"width": req.Width, "height": req.Height})
	}
}

func (s *Server) nav(c *gin.Context) {
	y, err := strconv.ParseFloat(c.DefaultQuery("y", "0"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "y must be a number"})
		return
	}
	var st nav.State
	if err := s.loop.Do(c.Request.Context(), func() { st = s.tracker.Update(y, s.layout) }); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}
