package api

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/telekom/daily-mailer/pkg/apiresponses"
	"github.com/telekom/daily-mailer/pkg/config"
	"github.com/telekom/daily-mailer/pkg/mail"
	"github.com/telekom/daily-mailer/pkg/metrics"
	"github.com/telekom/daily-mailer/pkg/system"
)

const requestIDHeader = "X-Request-ID"

// Sender delivers the daily email on demand.
type Sender interface {
	Send() mail.SendResult
}

// Schedule describes the automatic send for the read-only endpoints.
type Schedule struct {
	Description string
	Timezone    string
}

type Server struct {
	gin      *gin.Engine
	config   config.Config
	sender   Sender
	schedule Schedule
	log      *zap.SugaredLogger

	startedAt time.Time
	now       func() time.Time
}

func NewServer(log *zap.Logger, cfg config.Config, debug bool, sender Sender, schedule Schedule) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		ginzap.Ginzap(log, time.RFC3339, true),
		ginzap.RecoveryWithZap(log, true),
	)

	if debug {
		engine.Use(
			cors.New(cors.Config{
				AllowOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
				AllowMethods: []string{"GET", "POST", "OPTIONS"},
				AllowHeaders: []string{"Origin", "Content-Type", requestIDHeader},
				MaxAge:       12 * time.Hour,
			}),
		)
	}

	s := &Server{
		gin:       engine,
		config:    cfg,
		sender:    sender,
		schedule:  schedule,
		log:       log.Sugar().Named("api"),
		startedAt: time.Now(),
		now:       time.Now,
	}

	engine.Use(s.requestLogger())
	engine.NoRoute(func(c *gin.Context) {
		apiresponses.RespondNotFoundSimple(c, "route not found: "+c.Request.Method+" "+c.Request.URL.Path)
	})

	engine.GET("/", s.getHealth)
	engine.POST("/", s.postSend)
	engine.GET("/status", s.getStatus)
	engine.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	return s
}

// Handler returns the underlying gin engine.
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Listen serves HTTP on the configured port until the process exits. It only
// returns when the port is invalid or the listener fails.
func (s *Server) Listen() error {
	addr, err := s.config.ListenAddress()
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("binding %s: %w", addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln. Closing ln ends serving without an error.
func (s *Server) Serve(ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.gin,
		ReadHeaderTimeout: 10 * time.Second,
	}
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) || errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// requestLogger attaches a correlation ID and a request-scoped logger to the
// gin context.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := c.GetHeader(requestIDHeader)
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Set("cid", cid)
		c.Writer.Header().Set(requestIDHeader, cid)
		c.Set(system.ReqLoggerKey, s.log.With("cid", cid))
		c.Next()
	}
}

func (s *Server) getHealth(c *gin.Context) {
	apiresponses.RespondOK(c, apiresponses.HealthResponse{
		Status:    apiresponses.StatusRunning,
		Message:   apiresponses.ServiceMessage,
		NextRun:   s.schedule.Description,
		Timestamp: system.FormatTimestamp(s.now()),
	})
}

func (s *Server) postSend(c *gin.Context) {
	reqLog := system.GetReqLogger(c, s.log)
	reqLog.Infow("Manual email trigger requested", "timestamp", system.FormatTimestamp(s.now()))

	result := s.sender.Send()
	metrics.ManualTriggers.WithLabelValues(metrics.Result(result.Success)).Inc()

	if !result.Success {
		apiresponses.RespondSendFailed(c, result.Error, reqLog)
		return
	}
	apiresponses.RespondSent(c, result.MessageID)
}

func (s *Server) getStatus(c *gin.Context) {
	now := s.now()
	apiresponses.RespondOK(c, apiresponses.StatusResponse{
		Uptime:    now.Sub(s.startedAt).Seconds(),
		Timestamp: system.FormatTimestamp(now),
		Timezone:  s.schedule.Timezone,
	})
}
