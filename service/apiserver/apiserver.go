package apiserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/meverselabs/amm/common/rlog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIServer provides json rpc and web service for the exchange
type APIServer struct {
	sync.Mutex
	e       *echo.Echo
	subMap  map[string]*JRPCSub
	workers int
	reqCh   chan *reqData
	quit    chan struct{}
	once    sync.Once
	closing sync.Once
	wg      sync.WaitGroup

	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewAPIServer returns a APIServer running the given number of request workers
func NewAPIServer(workers int) *APIServer {
	if workers <= 0 {
		workers = 50
	}
	s := &APIServer{
		e:        echo.New(),
		subMap:   map[string]*JRPCSub{},
		workers:  workers,
		reqCh:    make(chan *reqData),
		quit:     make(chan struct{}),
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "amm",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "json rpc requests by method and result",
		}, []string{"method", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "amm",
			Subsystem: "rpc",
			Name:      "request_seconds",
			Help:      "json rpc handling time",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	s.e.HideBanner = true
	s.registry.MustRegister(s.requests, s.duration)
	return s
}

// Name returns the name of the service
func (s *APIServer) Name() string {
	return "amm.apiserver"
}

// Handler returns the http handler with every route mounted
func (s *APIServer) Handler() http.Handler {
	s.once.Do(s.setup)
	return s.e
}

func (s *APIServer) setup() {
	s.e.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	s.e.Use(middleware.Recover())
	s.e.POST("/api/endpoints/http", s.serveHTTP)
	s.e.GET("/api/endpoints/websocket", s.serveWebsocket)
	s.e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	s.wg.Add(s.workers)
	for i := 0; i < s.workers; i++ {
		go func() {
			defer s.wg.Done()
			for {
				select {
				case r := <-s.reqCh:
					r.resCh <- s.handleJRPC(r.req)
				case <-s.quit:
					return
				}
			}
		}()
	}
}

// Run starts web service of the apiserver
func (s *APIServer) Run(BindAddress string) error {
	s.once.Do(s.setup)
	if err := s.e.Start(BindAddress); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close stops the web service and waits for the workers to return
func (s *APIServer) Close() {
	s.closing.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.e.Shutdown(ctx); err != nil {
			rlog.Errorw("apiserver shutdown", "err", err)
		}
		close(s.quit)
		s.wg.Wait()
	})
}
