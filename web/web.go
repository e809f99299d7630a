// Package web provides the microblog's web server: routing, sessions,
// templates and background job scheduling.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"time"

	"microblog/config"
	"microblog/logger"
	"microblog/web/controller"
	"microblog/web/job"
	"microblog/web/locale"
	"microblog/web/middleware"
	"microblog/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

//go:embed html/*
var htmlFS embed.FS

//go:embed translation/*
var i18nFS embed.FS

const sessionCookieName = "microblog"

// Server ties together the controllers, services and scheduled jobs over a
// single database handle and configuration.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	cfg *config.Config
	db  *gorm.DB

	blog     *controller.BlogController
	auth     *controller.AuthController
	register *controller.RegisterController

	registrationService *service.RegistrationService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a web server around the prepared database handle.
func NewServer(cfg *config.Config, db *gorm.DB) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{cfg: cfg, db: db, ctx: ctx, cancel: cancel}
}

// initRouter initializes Gin, registers middleware, templates and
// controllers and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	store := cookie.NewStore([]byte(s.cfg.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
	})
	engine.Use(sessions.Sessions(sessionCookieName, store))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(middleware.RequestIdMiddleware())
	engine.Use(middleware.SecurityHeadersMiddleware())

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}
	engine.Use(locale.LocalizerMiddleware())

	funcMap := template.FuncMap{"i18n": locale.I18n}
	tpl, err := template.New("").Funcs(funcMap).ParseFS(htmlFS, "html/*.html")
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	postService := service.NewPostService(s.db)
	userService := service.NewUserService(s.db)
	s.registrationService = service.NewRegistrationService(s.db)
	mailer := &service.LogMailer{BaseURL: s.cfg.BaseURL}

	g := engine.Group("/")
	s.blog = controller.NewBlogController(g, postService)
	s.auth = controller.NewAuthController(g, userService)
	s.register = controller.NewRegisterController(g, s.registrationService, mailer)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	ttl := time.Duration(s.cfg.PendingTTL) * time.Hour
	s.cron.AddJob("@hourly", job.NewPendingCleanupJob(s.registrationService, ttl))
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	s.cron = cron.New()
	s.startTask()
	s.cron.Start()

	addr := net.JoinHostPort(s.cfg.Listen, fmt.Sprint(s.cfg.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	go func() {
		if serveErr := s.httpServer.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Error("web server:", serveErr)
		}
	}()

	logger.Infof("web server running on %s", addr)
	return nil
}

// Stop shuts the server and its scheduler down.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}

	var err error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = s.httpServer.Shutdown(ctx)
	} else if s.listener != nil {
		err = s.listener.Close()
	}
	return err
}
