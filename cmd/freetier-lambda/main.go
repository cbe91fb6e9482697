package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aura-studio/freetier-lambda/function"
	"github.com/aura-studio/freetier-lambda/server"
	"github.com/sirupsen/logrus"
)

func main() {
	opts := []server.Option{
		server.WithFunctionOptions(function.WithDefaultConfigFile()),
		server.WithDefaultServeConfigFile(),
	}
	if mode := os.Getenv("FREETIER_LAMBDA_MODE"); mode != "" {
		opts = append(opts, server.WithMode(mode))
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		if err := server.Close(); err != nil {
			logrus.WithError(err).Error("shutdown failed")
		}
	}()

	if err := server.Serve(opts...); err != nil {
		logrus.WithError(err).Fatal("serve failed")
	}
}
