// Package scaffold creates the PlatformIO project layout for the
// microcontroller build: directories, platformio.ini with the TFLite-Micro
// build fix, a minimal main.cpp, and the embedded model source.
package scaffold

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Options describe the project to scaffold.
type Options struct {
	// Dir is the project root, created if missing.
	Dir string
	// ModelSource is copied to src/model.cc. When it does not exist a
	// placeholder model.cc is written instead.
	ModelSource string
	// Board is the PlatformIO board identifier.
	Board string
	// MonitorSpeed is the serial monitor speed written to platformio.ini.
	MonitorSpeed int
}

func (o Options) withDefaults() Options {
	if o.Board == "" {
		o.Board = "seeed_xiao_esp32s3"
	}
	if o.MonitorSpeed == 0 {
		o.MonitorSpeed = 115200
	}
	return o
}

// Create builds the project layout under opts.Dir. It is idempotent:
// directories are created as needed and generated files are overwritten.
func Create(opts Options) error {
	opts = opts.withDefaults()

	srcDir := filepath.Join(opts.Dir, "src")
	libDir := filepath.Join(opts.Dir, "lib", "tflite-micro")
	for _, dir := range []string{srcDir, libDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	ini, err := os.Create(filepath.Join(opts.Dir, "platformio.ini"))
	if err != nil {
		return fmt.Errorf("create platformio.ini: %w", err)
	}
	if err := platformioTmpl.Execute(ini, opts); err != nil {
		ini.Close()
		return fmt.Errorf("write platformio.ini: %w", err)
	}
	if err := ini.Close(); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(srcDir, "main.cpp"), []byte(mainCPP), 0o644); err != nil {
		return fmt.Errorf("write main.cpp: %w", err)
	}

	return placeModel(opts.ModelSource, filepath.Join(srcDir, "model.cc"))
}

// placeModel copies the model source into the project, or writes a
// placeholder when the source file is missing.
func placeModel(source, dest string) error {
	if source != "" {
		if _, err := os.Stat(source); err == nil {
			return copyFile(source, dest)
		}
	}
	return os.WriteFile(dest, []byte(modelPlaceholder), 0o644)
}

func copyFile(source, dest string) error {
	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("open %s: %w", source, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", dest, err)
	}
	return out.Close()
}

// InstallLibrary extracts a tflite-micro source zip into lib/tflite-micro.
// Entries that would escape the destination are rejected.
func InstallLibrary(dir, zipPath string) error {
	dest := filepath.Join(dir, "lib", "tflite-micro")
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}

	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", zipPath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !filepath.IsLocal(filepath.FromSlash(f.Name)) {
			return fmt.Errorf("zip entry escapes destination: %q", f.Name)
		}
		target := filepath.Join(dest, filepath.FromSlash(f.Name))
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := extractFile(f, target); err != nil {
			return fmt.Errorf("extract %s: %w", f.Name, err)
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	in, err := f.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
