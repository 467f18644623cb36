package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lcmtv/infrastructure/configuration"
	httpHandler "lcmtv/interfaces/http"
	"lcmtv/interfaces/middleware"
)

func InitiateRouter(importHandler httpHandler.IImportHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://lcmtv.tv", "https://admin.lcmtv.tv", "http://localhost:4200", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("api")
	api.Use(middleware.Auth(configuration.C.App.SecretKey))

	imports := api.Group("/import")
	{
		imports.POST("/url", importHandler.ImportByURL)
		imports.POST("/keyword", importHandler.ImportByKeyword)
		imports.POST("/playlist", importHandler.ImportFromPlaylist)
		imports.POST("/channel", importHandler.ImportFromChannel)
		imports.POST("/trending", importHandler.ImportTrending)
		imports.POST("/livestream/url", importHandler.ImportLivestreamByURL)
		imports.POST("/livestream/channel", importHandler.ImportLiveFromChannel)
		imports.POST("/initial", importHandler.RunInitialImport)
	}

	return router
}
