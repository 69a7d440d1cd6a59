package scaffold_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisvanner/doorscope/internal/scaffold"
)

func TestCreateLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tinyml_xiao_project")

	err := scaffold.Create(scaffold.Options{Dir: dir})
	require.NoError(t, err)

	for _, p := range []string{
		"platformio.ini",
		filepath.Join("src", "main.cpp"),
		filepath.Join("src", "model.cc"),
		filepath.Join("lib", "tflite-micro"),
	} {
		_, err := os.Stat(filepath.Join(dir, p))
		assert.NoError(t, err, p)
	}
}

func TestCreateTemplatesBuildConfig(t *testing.T) {
	dir := t.TempDir()

	err := scaffold.Create(scaffold.Options{
		Dir:          dir,
		Board:        "esp32dev",
		MonitorSpeed: 921600,
	})
	require.NoError(t, err)

	ini, err := os.ReadFile(filepath.Join(dir, "platformio.ini"))
	require.NoError(t, err)

	assert.Contains(t, string(ini), "[env:esp32dev]")
	assert.Contains(t, string(ini), "board = esp32dev")
	assert.Contains(t, string(ini), "monitor_speed = 921600")
	assert.Contains(t, string(ini), "-DTF_LITE_STATIC_MEMORY", "the TFLite-Micro build fix must survive templating")
}

func TestCreateCopiesModel(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "person_model.h")
	require.NoError(t, os.WriteFile(model, []byte("const unsigned char person_model[] = {};\n"), 0o644))

	project := filepath.Join(dir, "project")
	err := scaffold.Create(scaffold.Options{Dir: project, ModelSource: model})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(project, "src", "model.cc"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "person_model")
}

func TestCreateWritesPlaceholderWhenModelMissing(t *testing.T) {
	dir := t.TempDir()

	err := scaffold.Create(scaffold.Options{
		Dir:         dir,
		ModelSource: filepath.Join(dir, "does-not-exist.h"),
	})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "src", "model.cc"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "DROP YOUR MODEL")
}

func TestCreateIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, scaffold.Create(scaffold.Options{Dir: dir}))
	require.NoError(t, scaffold.Create(scaffold.Options{Dir: dir}))
}

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for name, content := range entries {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func TestInstallLibrary(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "tflite-micro-main.zip")
	writeZip(t, zipPath, map[string]string{
		"tensorflow/lite/micro/micro_interpreter.h": "// header\n",
		"LICENSE": "Apache-2.0\n",
	})

	project := filepath.Join(dir, "project")
	require.NoError(t, scaffold.InstallLibrary(project, zipPath))

	got, err := os.ReadFile(filepath.Join(project, "lib", "tflite-micro", "tensorflow", "lite", "micro", "micro_interpreter.h"))
	require.NoError(t, err)
	assert.Equal(t, "// header\n", string(got))
}

func TestInstallLibraryRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "evil.zip")
	writeZip(t, zipPath, map[string]string{
		"../escape.txt": "nope",
	})

	err := scaffold.InstallLibrary(filepath.Join(dir, "project"), zipPath)
	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "escape.txt"))
	assert.True(t, os.IsNotExist(statErr))
}
