package main

import (
	"flag"
	"os"

	"webhound/pkg/backends"
	"webhound/pkg/eventlog"
	"webhound/pkg/structlog"
)

const version = "0.9.0"

func main() {
	url := flag.String("url", "", "URL under analysis")
	out := flag.String("out", "", "override output directory")
	flag.Parse()

	cfg := eventlog.ConfigFromEnv()
	if *out != "" {
		cfg.OutputDir = *out
	}

	log := structlog.NewLogger("webhound", structlog.LevelInfo, os.Stdout)
	structlog.SetDefaultLogger(log)

	reg := backends.LoadRegistry(cfg, version)
	d := eventlog.NewDispatcher(reg, cfg, eventlog.Collaborators{}, log)

	log.Info("event core ready", structlog.Fields{
		"run_id":  d.RunID(),
		"modules": reg.Modules(),
		"formats": reg.Formats(),
	})

	if *url != "" {
		d.SetURL(*url)
	}

	d.LogEvent()
}
