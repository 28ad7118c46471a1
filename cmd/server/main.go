package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"sports_complex_backend/internal/database"
	"sports_complex_backend/internal/router"
	"sports_complex_backend/pkg/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	utils.InitLogger()

	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "sports_complex_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "sports_complex_password")
	dbName := utils.Getenv("DB_NAME", "sports_complex_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")

	database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)
	utils.LogInfo("Database initialized", map[string]interface{}{"configured_from_env": true})

	engine := gin.Default()
	engine.Use(utils.GinLogger())

	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.Setup(engine, database.GetDB())

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
