package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine. An empty allowedOrigins list allows any
// origin.
func NewRouter(h *Handler, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}

	r.Use(RequestID(), AccessLog(), Recovery(), Tracing(), cors.New(corsConfig))

	r.GET("/", h.Root)
	r.POST("/stock_list/", h.StockList)
	r.POST("/sentiment_graph/", h.SentimentGraph)
	r.GET("/healthz", h.Health)

	return r
}
