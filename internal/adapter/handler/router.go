package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-recovery/pkg/config"
)

const healthTimeout = 2 * time.Second

// Router holds all handlers
type Router struct {
	cfg         *config.Config
	db          *gorm.DB
	redis       *redis.Client
	analysis    *Analysis
	user        *User
	memoryBank  *MemoryBank
	mentor      *Mentor
	auth        echo.MiddlewareFunc
	analyzeRate echo.MiddlewareFunc
}

// Handlers groups the endpoint handlers mounted by the router
type Handlers struct {
	Analysis   *Analysis
	User       *User
	MemoryBank *MemoryBank
	Mentor     *Mentor
}

// NewRouter creates a new router with all handlers. redisClient may be nil.
func NewRouter(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, h Handlers, auth, analyzeRate echo.MiddlewareFunc) *Router {
	if analyzeRate == nil {
		analyzeRate = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return &Router{
		cfg:         cfg,
		db:          db,
		redis:       redisClient,
		analysis:    h.Analysis,
		user:        h.User,
		memoryBank:  h.MemoryBank,
		mentor:      h.Mentor,
		auth:        auth,
		analyzeRate: analyzeRate,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api", rt.auth)

	api.POST("/analyze", rt.analysis.Analyze, rt.analyzeRate)
	api.POST("/redeem-license-key", rt.user.RedeemLicenseKey)
	api.GET("/user", rt.user.Me)
	api.PUT("/user/preferences", rt.user.UpdatePreferences)

	rt.setupMemoryBankRoutes(api)
	rt.setupMentorRoutes(api)
}

// setupMemoryBankRoutes configures saved meeting and tag routes
func (rt *Router) setupMemoryBankRoutes(g *echo.Group) {
	mb := g.Group("/memory-bank")

	mb.POST("/save", rt.memoryBank.SaveMeeting)
	mb.GET("/meetings", rt.memoryBank.ListMeetings)
	mb.GET("/meetings/:id", rt.memoryBank.GetMeeting)
	mb.DELETE("/meetings/:id", rt.memoryBank.DeleteMeeting)
	mb.GET("/search", rt.memoryBank.SearchMeetings)
	mb.GET("/tags", rt.memoryBank.ListTags)
	mb.POST("/tags", rt.memoryBank.CreateTag)
	mb.DELETE("/tags/:id", rt.memoryBank.DeleteTag)
}

// setupMentorRoutes configures guided walkthrough routes
func (rt *Router) setupMentorRoutes(g *echo.Group) {
	m := g.Group("/mentor")

	m.GET("/sessions", rt.mentor.ListSessions)
	m.POST("/start-session", rt.mentor.StartSession)
	m.POST("/update-progress", rt.mentor.UpdateProgress)
}

// healthCheck reports database and, when configured, redis reachability
func (rt *Router) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	checks := map[string]string{"database": "ok"}
	status := http.StatusOK

	if err := rt.pingDB(ctx); err != nil {
		checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if rt.redis != nil {
		checks["redis"] = "ok"
		if err := rt.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	return c.JSON(status, map[string]interface{}{
		"status":      state,
		"environment": rt.cfg.Server.Environment,
		"checks":      checks,
		"time":        time.Now().UTC().Format(time.RFC3339),
	})
}

func (rt *Router) pingDB(ctx context.Context) error {
	sqlDB, err := rt.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
