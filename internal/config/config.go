package config

import (
	"flag"
	"time"
)

// ViewerConfig holds runtime configuration for the viewer binary.
type ViewerConfig struct {
	Port        string
	Baud        int
	Width       int
	Height      int
	ReadTimeout time.Duration
	Interval    time.Duration
	HTTPAddr    string
	Demo        bool
	LogLevel    string
}

// ParseViewerFlags parses flags for the viewer binary.
func ParseViewerFlags() *ViewerConfig {
	cfg := &ViewerConfig{}
	flag.StringVar(&cfg.Port, "port", "", "Serial port (e.g. /dev/ttyACM0, COM12)")
	flag.IntVar(&cfg.Baud, "baud", 500000, "Baud rate; must match the firmware sketch")
	flag.IntVar(&cfg.Width, "width", 96, "Frame width in pixels")
	flag.IntVar(&cfg.Height, "height", 96, "Frame height in pixels")
	flag.DurationVar(&cfg.ReadTimeout, "read-timeout", 500*time.Millisecond, "Serial read timeout")
	flag.DurationVar(&cfg.Interval, "interval", 10*time.Millisecond, "Delay between decode attempts")
	flag.StringVar(&cfg.HTTPAddr, "http", "", "Also serve the feed over HTTP on this address (e.g. :8090)")
	flag.BoolVar(&cfg.Demo, "demo", false, "Use a synthetic frame source instead of a serial port")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()
	return cfg
}

// ModelgenConfig holds configuration for the modelgen binary.
type ModelgenConfig struct {
	ModelPath string
	OutPath   string
	ArrayName string
	Guard     string
}

// ParseModelgenFlags parses flags for the modelgen binary.
func ParseModelgenFlags() *ModelgenConfig {
	cfg := &ModelgenConfig{}
	flag.StringVar(&cfg.ModelPath, "model", "door_status_model.tflite", "Trained .tflite model to embed")
	flag.StringVar(&cfg.OutPath, "out", "model.h", "Generated C source file")
	flag.StringVar(&cfg.ArrayName, "name", "door_status_model", "Identifier for the generated byte array")
	flag.StringVar(&cfg.Guard, "guard", "MODEL_H", "Include guard macro")
	flag.Parse()
	return cfg
}

// ScaffoldConfig holds configuration for the scaffold binary.
type ScaffoldConfig struct {
	Dir          string
	ModelSource  string
	LibraryZip   string
	Board        string
	MonitorSpeed int
}

// ParseScaffoldFlags parses flags for the scaffold binary.
func ParseScaffoldFlags() *ScaffoldConfig {
	cfg := &ScaffoldConfig{}
	flag.StringVar(&cfg.Dir, "dir", "tinyml_xiao_project", "Project directory to create")
	flag.StringVar(&cfg.ModelSource, "model", "person_model.h", "Model source file copied to src/model.cc")
	flag.StringVar(&cfg.LibraryZip, "lib-zip", "", "Optional tflite-micro zip to extract into lib/tflite-micro")
	flag.StringVar(&cfg.Board, "board", "seeed_xiao_esp32s3", "PlatformIO board identifier")
	flag.IntVar(&cfg.MonitorSpeed, "monitor-speed", 115200, "Serial monitor speed for platformio.ini")
	flag.Parse()
	return cfg
}
