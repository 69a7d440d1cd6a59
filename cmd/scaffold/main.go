package main

import (
	"os"

	"github.com/krisvanner/doorscope/internal/config"
	"github.com/krisvanner/doorscope/internal/log"
	"github.com/krisvanner/doorscope/internal/scaffold"
)

func main() {
	cfg := config.ParseScaffoldFlags()
	log.Init("info")

	err := scaffold.Create(scaffold.Options{
		Dir:          cfg.Dir,
		ModelSource:  cfg.ModelSource,
		Board:        cfg.Board,
		MonitorSpeed: cfg.MonitorSpeed,
	})
	if err != nil {
		log.Error("scaffold project", "err", err)
		os.Exit(1)
	}
	log.Info("created project structure", "dir", cfg.Dir, "board", cfg.Board)

	if cfg.LibraryZip != "" {
		if err := scaffold.InstallLibrary(cfg.Dir, cfg.LibraryZip); err != nil {
			log.Error("install tflite-micro", "err", err)
			os.Exit(1)
		}
		log.Info("extracted tflite-micro", "zip", cfg.LibraryZip)
	}

	log.Info("project is ready to open in PlatformIO", "dir", cfg.Dir)
}
