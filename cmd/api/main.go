package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OrinocoLabs01/lab-scheduler/internal/config"
	dbpkg "github.com/OrinocoLabs01/lab-scheduler/internal/db"
	"github.com/OrinocoLabs01/lab-scheduler/internal/middleware"
	"github.com/OrinocoLabs01/lab-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
