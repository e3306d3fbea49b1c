//go:build tinygo && baremetal

package main

import (
	"sparkcraft/app"
	"sparkcraft/hal"
)

func main() {
	app.Run(hal.New())
}
