package main

import (
	"os"

	"github.com/krisvanner/doorscope/internal/config"
	"github.com/krisvanner/doorscope/internal/log"
	"github.com/krisvanner/doorscope/internal/modelgen"
)

func main() {
	cfg := config.ParseModelgenFlags()
	log.Init("info")

	opts := modelgen.Options{
		ArrayName: cfg.ArrayName,
		Guard:     cfg.Guard,
	}
	if err := modelgen.GenerateFile(cfg.ModelPath, cfg.OutPath, opts); err != nil {
		log.Error("generate model source", "err", err)
		os.Exit(1)
	}

	info, err := os.Stat(cfg.ModelPath)
	if err != nil {
		os.Exit(1)
	}
	log.Info("generated model source",
		"out", cfg.OutPath, "bytes", info.Size(), "array", cfg.ArrayName)
}
