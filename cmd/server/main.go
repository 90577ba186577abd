package main

import (
	"log"

	"taskflow/internal/app"
)

// @title        TaskFlow API
// @version      1.0
// @description  Tasks, team members and the activity log behind the TaskFlow dashboard.
// @BasePath     /
func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
