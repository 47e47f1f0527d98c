package server

import (
	"net/http"
	"strings"
	"time"

	"kidspace/config"
	_ "kidspace/docs"
	"kidspace/logger"
	v1 "kidspace/routes/v1"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// LandingPage is served at the root to show the backend is up
const LandingPage = "<h1>Kid-Friendly NASA App Backend Running!</h1><p>Ready for routes and data modeling.</p>"

// New is the application factory: middleware, placeholder page, uploads, docs and the v1 API
func New(cfg *config.Config, log *logger.Logger, deps v1.Deps) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(cfg.ClientURL),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 8 << 20

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(LandingPage))
	})

	if cfg.Storage.Driver == "local" || cfg.Storage.Driver == "" {
		r.Static("/uploads", cfg.Storage.UploadDir)
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1.Register(r, deps)
	return r
}

// allowedOrigins splits CLIENT_URL, which may list several origins separated by commas
func allowedOrigins(clientURL string) []string {
	var origins []string
	for _, origin := range strings.Split(clientURL, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return origins
}
