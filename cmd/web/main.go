package main

import "lostfound_backend/internal/app"

func main() {
	app.Run()
}
