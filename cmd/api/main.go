package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/config"
	dbpkg "github.com/WAKO-NZ/tap4service2-sub000/internal/db"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/notify"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/routes"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db := dbpkg.NewDB(cfg)

	hub := notify.NewHub()
	go hub.Run()

	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, hub)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
