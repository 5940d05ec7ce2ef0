package main

import "taskman/internal/app"

// @title           Task Manager API
// @version         1.0
// @description     Task management backend with users, statuses, labels and filtered task search.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @BasePath /api
func main() {
	app.Run()
}
