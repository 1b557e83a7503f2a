package main

import (
	"log"

	"github.com/joho/godotenv"

	"portfoliotracker/cmd"
)

func main() {
	_ = godotenv.Load()

	deps, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(deps)

	if err := deps.ApiHandler.StartApi(3009); err != nil {
		log.Fatal(err)
	}
}
