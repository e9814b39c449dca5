package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/pixil98/go-quest/cmd/quest/command"
	"github.com/pixil98/go-service"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Info("no .env file loaded, using environment")
	}

	app, err := service.NewApp(&command.Config{}, command.BuildWorkers)
	if err != nil {
		logrus.WithError(err).Fatal("creating application")
	}

	err = app.Run(context.Background())
	if err != nil {
		logrus.WithError(err).Fatal("running application")
	}

	logrus.Info("exiting")
}
