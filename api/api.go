package api

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfoliotracker/internal/domain"
	"portfoliotracker/internal/evolution"
	"portfoliotracker/internal/seed"
	"portfoliotracker/internal/service"
)

type ApiHandler struct {
	Logger             *zap.SugaredLogger
	ApiKey             string
	PortfolioService   service.PortfolioService
	TransactionService service.TransactionService
	OrderService       service.OrderService
	UserService        service.UserService
	SeedService        seed.SeedService
	EvolutionManager   *evolution.Manager
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	authorized := router.Group("/", m.apiKeyMiddleware)
	authorized.PATCH("/portfolios/:id", m.updatePortfolio)
	authorized.GET("/portfolios/:id/summary", m.getSummary)
	authorized.GET("/portfolios/:id/movements", m.getMovements)
	authorized.GET("/portfolios/:id/metrics", m.getMetricsPanel)
	authorized.POST("/transactions/deposit", m.createDeposit)
	authorized.POST("/transactions/withdrawal", m.createWithdrawal)
	authorized.POST("/orders", m.createOrder)
	authorized.PATCH("/users/:id", m.updateUser)
	authorized.POST("/seed", m.runSeed)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

// successJson is the response envelope every endpoint uses.
func successJson(c *gin.Context, code int, data any, message string) {
	c.JSON(code, gin.H{
		"success": true,
		"data":    data,
		"message": message,
	})
}

// returnErrorJson maps the error taxonomy to responses. NotFound and
// validation errors surface verbatim; everything else is logged in full
// and answered with a generic message.
func (m ApiHandler) returnErrorJson(err error, c *gin.Context) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.AbortWithStatusJSON(404, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, domain.ErrInvalidLimit),
		errors.Is(err, domain.ErrInvalidPage),
		errors.Is(err, domain.ErrInvalidTimeRange):
		c.AbortWithStatusJSON(400, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, evolution.ErrNotReady):
		c.AbortWithStatusJSON(503, gin.H{"success": false, "error": "portfolio evolution data is not ready"})
	default:
		m.Logger.Errorw("request failed",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"error", err,
		)
		c.AbortWithStatusJSON(500, gin.H{"success": false, "error": "internal server error"})
	}
}

func returnBadRequestJson(err error, c *gin.Context) {
	c.AbortWithStatusJSON(400, gin.H{"success": false, "error": err.Error()})
}

func (m ApiHandler) apiKeyMiddleware(c *gin.Context) {
	apiKey := c.GetHeader("X-API-Key")
	if apiKey == "" || m.ApiKey == "" || !safeCompare(apiKey, m.ApiKey) {
		c.AbortWithStatusJSON(401, gin.H{"success": false, "error": "invalid or missing API key"})
		return
	}
	c.Next()
}

func safeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	m.Logger.Infow("request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"clientIP", c.ClientIP(),
	)
}
