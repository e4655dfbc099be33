package main

import (
	"log"
	"os"
	"runtime"

	"github.com/moderniselife/hellogui/app"
)

func init() {
	// GLFW and OpenGL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	// Setup logging
	log.SetOutput(os.Stdout)
	log.SetPrefix("HelloGUI: ")

	if err := app.Run(); err != nil {
		log.Fatalf("Startup failed: %v", err)
	}
}
