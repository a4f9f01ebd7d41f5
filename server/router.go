package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"carf-backend/catalog"
	"carf-backend/chat"
	"carf-backend/dashboard"
	"carf-backend/logger"
	"carf-backend/quota"
	"carf-backend/suggestions"
)

type RouterConfig struct {
	Log               *logger.Logger
	CORSOrigins       []string
	Limiter           *quota.Limiter
	DashboardHandler  *dashboard.Handler
	CatalogHandler    *catalog.Handler
	SuggestionHandler *suggestions.Handler
	ChatHandler       *chat.Handler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(cfg.Log))
	router.Use(CORS(cfg.CORSOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	cfg.DashboardHandler.RegisterRoutes(api)
	if cfg.CatalogHandler != nil {
		cfg.CatalogHandler.RegisterRoutes(api)
	}
	cfg.SuggestionHandler.RegisterRoutes(api, cfg.Limiter.Middleware(quota.FlowCourseSuggestion))
	cfg.ChatHandler.RegisterRoutes(api, cfg.Limiter.Middleware(quota.FlowChatMessage))

	return router
}

// CORS allows origins with credentials; a "*" entry allows any origin.
func CORS(origins []string) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			conf.AllowOriginFunc = func(string) bool { return true }
			return cors.New(conf)
		}
	}
	if len(origins) == 0 {
		conf.AllowOriginFunc = func(string) bool { return false }
		return cors.New(conf)
	}
	conf.AllowOrigins = origins
	return cors.New(conf)
}
