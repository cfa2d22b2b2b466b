package main

import "ustahub_backend/internal/app"

func main() {
	app.Run()
}
