package diag

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/mogud/lumen/logging"
	sync2 "github.com/mogud/lumen/sync"
	"github.com/mogud/lumen/task"
	"github.com/valyala/fasthttp"
)

// ILevelTarget 为可在运行期调整默认等级的 sink
type ILevelTarget interface {
	DefaultLevel() logging.Level
	SetDefaultLevel(level logging.Level)
}

type Option struct {
	Host           string `koanf:"Host"`
	Port           int    `koanf:"Port"` // 0 则由系统分配
	TimeoutSeconds int    `koanf:"TimeoutSeconds"`
}

type srvMux struct {
	mu sync.RWMutex

	handlers map[string]fasthttp.RequestHandler
}

func newSrvMux() *srvMux {
	return &srvMux{
		handlers: make(map[string]fasthttp.RequestHandler),
	}
}

func (ss *srvMux) Register(pattern string, handler fasthttp.RequestHandler) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.handlers[pattern] = handler
}

func (ss *srvMux) Handler(ctx *fasthttp.RequestCtx) {
	ss.mu.RLock()
	h := ss.handlers[string(ctx.Path())]
	ss.mu.RUnlock()

	if h != nil {
		h(ctx)
	} else {
		ctx.Error("invalid http request route", http.StatusBadRequest)
	}
}

// Server 暴露日志诊断接口：
//
//	GET /log/level   当前默认等级
//	PUT /log/level   {"level":"DEBUG"}
//	GET /log/recent  最近记录
type Server struct {
	opt    *Option
	target ILevelTarget
	ring   *RingHandler

	srvMux   *srvMux
	srv      *fasthttp.Server
	listener net.Listener
	port     int
}

func NewServer(opt *Option, target ILevelTarget, ring *RingHandler) *Server {
	if opt == nil {
		opt = &Option{}
	}
	if len(opt.Host) == 0 {
		opt.Host = "127.0.0.1"
	}
	if opt.TimeoutSeconds == 0 {
		opt.TimeoutSeconds = 5
	}

	ss := &Server{
		opt:    opt,
		target: target,
		ring:   ring,
		srvMux: newSrvMux(),
	}
	ss.srvMux.Register("/log/level", ss.handleLevel)
	ss.srvMux.Register("/log/recent", ss.handleRecent)
	return ss
}

func (ss *Server) GetPort() int {
	return ss.port
}

func (ss *Server) Start(wg *sync2.TimeoutWaitGroup) error {
	listener, err := net.Listen("tcp", ss.opt.Host+":"+strconv.Itoa(ss.opt.Port))
	if err != nil {
		return fmt.Errorf("diag listen failed: %w", err)
	}
	ss.listener = listener
	ss.port = listener.Addr().(*net.TCPAddr).Port

	ss.srv = &fasthttp.Server{
		ReadTimeout:  time.Duration(ss.opt.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(ss.opt.TimeoutSeconds) * time.Second,
		Handler:      ss.srvMux.Handler,
	}

	wg.Add(1)
	task.Execute(func() {
		defer wg.Done()
		if err := ss.srv.Serve(listener); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "diag serve: %v\n", err)
		}
	})
	return nil
}

func (ss *Server) Stop() {
	if ss.srv != nil {
		_ = ss.srv.Shutdown()
	}
}

func (ss *Server) handleLevel(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Method()) {
	case http.MethodGet:
		ss.writeJSON(ctx, map[string]string{"level": ss.target.DefaultLevel().String()})
	case http.MethodPut:
		var body struct {
			Level string `json:"level"`
		}
		if err := jsoniter.Unmarshal(ctx.PostBody(), &body); err != nil {
			ctx.Error(err.Error(), http.StatusBadRequest)
			return
		}

		level, err := logging.ParseLevel(body.Level)
		if err != nil {
			ctx.Error(err.Error(), http.StatusBadRequest)
			return
		}

		ss.target.SetDefaultLevel(level)
		ss.writeJSON(ctx, map[string]string{"level": level.String()})
	default:
		ctx.Error("method not allowed", http.StatusMethodNotAllowed)
	}
}

func (ss *Server) handleRecent(ctx *fasthttp.RequestCtx) {
	if string(ctx.Method()) != http.MethodGet {
		ctx.Error("method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ss.writeJSON(ctx, ss.ring.Recent())
}

func (ss *Server) writeJSON(ctx *fasthttp.RequestCtx, value any) {
	data, err := jsoniter.Marshal(value)
	if err != nil {
		ctx.Error(err.Error(), http.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(data)
}
