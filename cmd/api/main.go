package main

import (
	"os"

	"wealthtracker/cmd"
	"wealthtracker/internal/logger"
)

func main() {
	log := logger.New()
	log.Infow("starting api", "commitHash", os.Getenv("commit_hash"))

	apiHandler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(apiHandler)

	err = apiHandler.StartApi(3009)
	if err != nil {
		log.Fatal(err)
	}
}
