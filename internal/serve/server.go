package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/san-kum/trace3d/internal/config"
	"github.com/san-kum/trace3d/internal/geom"
	"github.com/san-kum/trace3d/internal/viz"
)

const (
	tickInterval = 100 * time.Millisecond
	orbitStep    = 0.02 // radians per tick
	writeTimeout = 5 * time.Second
)

// Server serves an interactive figure page and pushes updated figures to
// connected browsers over a websocket while the scene cameras orbit.
type Server struct {
	addr  string
	scene *config.Scene
	log   *zap.Logger

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func New(addr string, scene *config.Scene, log *zap.Logger) *Server {
	return &Server{
		addr:    addr,
		scene:   scene,
		log:     log,
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)

	srv := &http.Server{Addr: s.addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("serving figure", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	go s.animate(ctx)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	fig, err := s.buildFigure(0)
	if err != nil {
		s.log.Error("build figure", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data, err := fig.JSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexPage, s.scene.Name, data)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	n := len(s.clients)
	s.mu.Unlock()
	s.log.Info("client connected", zap.String("remote", conn.RemoteAddr().String()), zap.Int("clients", n))

	// Reads are only used to notice the close.
	go func() {
		defer s.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
	s.log.Info("client disconnected", zap.String("remote", conn.RemoteAddr().String()))
}

// animate rebuilds the figure while orbiting the cameras around the scene
// and pushes changed figures to all clients. Unchanged fingerprints are
// skipped.
func (s *Server) animate(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	angle := 0.0
	var lastFingerprint uint64

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		angle += orbitStep
		fig, err := s.buildFigure(angle)
		if err != nil {
			s.log.Error("build figure", zap.Error(err))
			continue
		}
		fp, err := fig.Fingerprint()
		if err != nil || fp == lastFingerprint {
			continue
		}
		lastFingerprint = fp

		data, err := fig.JSON()
		if err != nil {
			continue
		}
		s.broadcast(data)
	}
}

func (s *Server) broadcast(data []byte) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout)) //nolint:errcheck
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.drop(conn)
		}
	}
}

// buildFigure materializes the scene with every camera rotated by angle
// around the world Z axis.
func (s *Server) buildFigure(angle float64) (*viz.Figure, error) {
	scene := *s.scene
	rot := geom.RotZ(angle)

	cams := make([]config.CameraConfig, len(scene.Cameras))
	for i, cc := range scene.Cameras {
		pos := rot.MulVec(geom.Vec3{X: cc.Position[0], Y: cc.Position[1], Z: cc.Position[2]})
		cc.Position = [3]float64{pos.X, pos.Y, pos.Z}
		cams[i] = cc
	}
	scene.Cameras = cams

	objs, err := scene.Build()
	if err != nil {
		return nil, err
	}
	fig, err := viz.NewFigure(objs...)
	if err != nil {
		return nil, err
	}
	fig.Layout.Title = scene.Name
	if scene.ShowAxes {
		fig.Data = append(fig.Data, viz.AxesTraces(1)...)
	}
	return fig, nil
}

const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
<style>html, body, #figure { margin: 0; height: 100%%; }</style>
</head>
<body>
<div id="figure"></div>
<script>
var fig = %s;
Plotly.newPlot("figure", fig.data, fig.layout, {responsive: true});
var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = function (ev) {
  var next = JSON.parse(ev.data);
  Plotly.react("figure", next.data, next.layout);
};
</script>
</body>
</html>
`
