package main

import (
	"context"
	"flag"
	"log"
	"os"

	"MedConnect/config"
	"MedConnect/routes"
	"MedConnect/seed"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var startServer = func(r *gin.Engine, addr string) error {
	return r.Run(addr)
}

func main() {
	run()
}

func buildRouter() *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendOrigin()},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	routes.Routes(r)
	return r
}

func frontendOrigin() string {
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		return origin
	}
	return "http://localhost:5173"
}

func run() {
	seedOnly := flag.Bool("seed", false, "load demo data and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Error in loading the ENV")
	}

	// Storage unreachable at startup terminates the process; never serve
	// half-initialized.
	if err := config.ConnectDB(); err != nil {
		log.Fatalln("Failed to connect to MongoDB:", err)
	}
	if err := config.EnsureIndexes(context.Background()); err != nil {
		log.Fatalln("Failed to ensure indexes:", err)
	}
	config.ConnectRedis()

	if *seedOnly {
		if err := seed.Run(context.Background()); err != nil {
			log.Fatalln("Seed failed:", err)
		}
		return
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	if err := startServer(buildRouter(), ":"+port); err != nil {
		log.Fatalln("HTTP server error:", err)
	}
}
