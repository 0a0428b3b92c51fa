package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-recursive-raytracer/web/server"
)

// getEnvInt reads an integer environment variable with a fallback
func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("Ignoring invalid %s=%q", key, value)
	}
	return fallback
}

func main() {
	envFile := flag.String("env", ".env", "Environment file")
	scenesDir := flag.String("scenes", "scenes", "Directory of .txt scene files")
	timeout := flag.Duration("timeout", server.DefaultRenderTimeout, "Maximum time per render")
	port := flag.Int("port", 0, "Port to serve on (default $RAYTRACER_PORT or 8080)")
	flag.Parse()

	// A missing .env file is fine
	_ = godotenv.Load(*envFile)

	if *port == 0 {
		*port = getEnvInt("RAYTRACER_PORT", 8080)
	}

	webServer := server.NewServer(*port, *scenesDir)
	webServer.SetRenderTimeout(*timeout)

	log.Printf("Recursive Raytracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=cornell", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
