package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/uconv/pkg/config"
	"github.com/charlie0129/uconv/pkg/events"
)

const shutdownTimeout = 5 * time.Second

// server holds the state shared by the HTTP handlers.
type server struct {
	conf    config.Config
	hub     *events.EventHub
	metrics *Metrics
}

func newServer(conf config.Config) *server {
	return &server{
		conf:    conf,
		hub:     events.NewEventHub(),
		metrics: NewMetrics(),
	}
}

func (s *server) setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger(), "/metrics"))
	router.Use(s.metrics.middleware())
	router.GET("/version", getVersion)
	router.GET("/config", s.getConfig)
	router.PUT("/precision", s.setPrecision)
	router.PUT("/group-digits", s.setGroupDigits)
	router.GET("/categories", listCategories)
	router.GET("/categories/:category", getCategory)
	router.POST("/convert", s.postConvert)
	router.GET("/events", s.streamEvents)
	router.GET("/metrics", s.metrics.handler())

	return router
}

// NewHandler returns the API router backed by conf.
func NewHandler(conf config.Config) http.Handler {
	return newServer(conf).setupRoutes()
}

// Run serves the uconv API on unixSocketPath until SIGINT or SIGTERM.
// SIGHUP reloads the config file.
func Run(configPath string, unixSocketPath string, allowNonRoot bool) error {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to parse config during startup")
	}
	if err := conf.Validate(); err != nil {
		return pkgerrors.Wrap(err, "invalid config")
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	s := newServer(conf)
	router := s.setupRoutes()

	// Receive SIGHUP to reload config
	hupc := make(chan os.Signal, 1)
	signal.Notify(hupc, syscall.SIGHUP)
	defer signal.Stop(hupc)
	go func() {
		for range hupc {
			if err := conf.Load(); err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			if err := conf.Validate(); err != nil {
				logrus.Errorf("reloaded config is invalid, conversions may fail: %v", err)
			}
			logrus.WithFields(conf.LogrusFields()).Infof("config reloaded")
			s.publishConfigChanged("*", nil)
		}
	}()

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// A socket left by a crashed daemon would make Listen fail.
	if err := os.Remove(unixSocketPath); err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrapf(err, "failed to remove stale socket %s", unixSocketPath)
	}

	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to listen on %s", unixSocketPath)
	}
	defer func() {
		if err := os.Remove(unixSocketPath); err != nil && !os.IsNotExist(err) {
			logrus.Warnf("failed to remove socket %s: %v", unixSocketPath, err)
		}
	}()

	if conf.AllowNonRootAccess() || allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		if err := os.Chmod(unixSocketPath, 0777); err != nil {
			return pkgerrors.Wrapf(err, "failed to change permissions of %s", unixSocketPath)
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)

	select {
	case sig := <-sigc:
		logrus.Infof("caught signal \"%s\": shutting down.", sig)
	case err := <-serveErr:
		if err != nil {
			return pkgerrors.Wrap(err, "http server failed")
		}
	}

	// Event streams would otherwise hold Shutdown until the timeout.
	logrus.Info("closing event streams")
	s.hub.Close()

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}

	logrus.Info("exiting")
	return nil
}
