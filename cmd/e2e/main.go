package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func baseURL() string {
	if url := os.Getenv("E2E_BASE_URL"); url != "" {
		return url
	}
	switch os.Getenv("ENV") {
	case "CI":
		return "http://flickswipe-app:8080/api/v1"
	}
	return "http://localhost:8080/api/v1"
}

func adminCode() string {
	if code := os.Getenv("ADMIN_SECRET"); code != "" {
		return code
	}
	return "shared"
}

func main() {
	fmt.Println("Starting E2E run for Flickswipe API...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	runner := NewRunner(baseURL(), adminCode())
	if err := runner.Run(ctx); err != nil {
		fmt.Printf("E2E run failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n All E2E steps passed!")
}
