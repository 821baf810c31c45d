package main

import "pathpilot_backend/internal/app"

func main() {
	app.Run()
}
