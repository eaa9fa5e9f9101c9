package main

import (
	"log"
	"os"

	function "hello_slackbot"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
)

// Runs the Cloud Function locally, the way the Functions Framework serves it in production
func main() {
	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	if os.Getenv("FUNCTION_TARGET") == "" {
		os.Setenv("FUNCTION_TARGET", function.EntryPoint)
	}

	if err := funcframework.Start(port); err != nil {
		log.Fatalf("funcframework.Start: %v", err)
	}
}
