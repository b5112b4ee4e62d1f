package main

import (
	"context"
	"os"
	"time"
	"seo_meta_audit/internal/application/config"
	"seo_meta_audit/internal/application/runner"
	"seo_meta_audit/internal/http"

	log "github.com/sirupsen/logrus"
)

func main() {
	logInstance := log.New()
	logInstance.SetOutput(os.Stderr)
	cfg, err := config.NewAppConfig()
	if err != nil {
		logInstance.WithError(err).Fatal(`Failed to load config`)
		return
	}

	//log level
	logLevel, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logInstance.WithError(err).Fatal(`Failed to parse log level`)
		return
	}

	logInstance.SetFormatter(&log.JSONFormatter{
		TimestampFormat:   time.RFC3339,
		DisableHTMLEscape: true,
		DisableTimestamp:  false,
	})

	logInstance.SetLevel(logLevel)

	ctx := context.Background()

	if cfg.Mode == config.ModeServe {
		if err := http.Serve(ctx, logInstance, cfg); err != nil {
			logInstance.WithError(err).Fatal(`Service stopped`)
		}
		return
	}

	if err := runner.New(logInstance, cfg, os.Stdout).Run(ctx); err != nil {
		logInstance.WithError(err).Fatal(`Audit failed`)
	}
}
