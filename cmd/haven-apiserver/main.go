// Package main is the entry point for the Haven API server.
package main

import (
	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/kart-io/haven/internal/apiserver"
)

func main() {
	apiserver.NewApp().Run()
}
