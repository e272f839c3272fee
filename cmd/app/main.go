package main

import (
	"github.com/humanbelnik/flickswipe/internal/app"
	"github.com/humanbelnik/flickswipe/internal/config"
)

func main() {
	app.Go(config.Load())
}
