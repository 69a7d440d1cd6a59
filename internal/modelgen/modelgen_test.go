package modelgen_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisvanner/doorscope/internal/modelgen"
)

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	err := modelgen.Generate(&buf, []byte{0x00, 0x80, 0xff, 0x40}, modelgen.Options{
		ArrayName: "door_status_model",
		Guard:     "MODEL_H",
	})
	require.NoError(t, err)

	want := `#ifndef MODEL_H
#define MODEL_H

// Model size: 4 bytes
const unsigned char door_status_model[] = {
  0x00, 0x80, 0xff, 0x40
};

const int door_status_model_len = 4;

#endif // MODEL_H
`
	assert.Equal(t, want, buf.String())
}

func TestGenerateDefaults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, modelgen.Generate(&buf, []byte{0x01}, modelgen.Options{}))

	out := buf.String()
	assert.Contains(t, out, "#ifndef MODEL_H")
	assert.Contains(t, out, "const unsigned char door_status_model[] = {")
	assert.Contains(t, out, "const int door_status_model_len = 1;")
}

func TestGenerateCustomNames(t *testing.T) {
	var buf bytes.Buffer
	err := modelgen.Generate(&buf, []byte{0xab}, modelgen.Options{
		ArrayName: "person_model",
		Guard:     "PERSON_MODEL_H",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "#define PERSON_MODEL_H")
	assert.Contains(t, out, "const unsigned char person_model[] = {")
	assert.Contains(t, out, "const int person_model_len = 1;")
	assert.Contains(t, out, "#endif // PERSON_MODEL_H")
}

func TestGenerateWrapsLongArrays(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, modelgen.Generate(&buf, make([]byte, 30), modelgen.Options{}))

	var body []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "  0x") {
			body = append(body, line)
		}
	}
	require.Len(t, body, 3, "30 bytes at 12 per line")
	assert.Equal(t, 12, strings.Count(body[0], "0x"))
	assert.Equal(t, 6, strings.Count(body[2], "0x"))
	assert.False(t, strings.HasSuffix(body[2], ","), "no trailing comma after the last byte")
}

func TestGenerateEmptyModel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, modelgen.Generate(&buf, nil, modelgen.Options{}))

	out := buf.String()
	assert.Contains(t, out, "// Model size: 0 bytes")
	assert.Contains(t, out, "const int door_status_model_len = 0;")
}

func TestGenerateFile(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "door_status_model.tflite")
	outPath := filepath.Join(dir, "model.h")
	require.NoError(t, os.WriteFile(modelPath, []byte{0xde, 0xad}, 0o644))

	err := modelgen.GenerateFile(modelPath, outPath, modelgen.Options{})
	require.NoError(t, err)

	out, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(out), "0xde, 0xad")
}

func TestGenerateFileMissingModel(t *testing.T) {
	dir := t.TempDir()
	err := modelgen.GenerateFile(filepath.Join(dir, "nope.tflite"), filepath.Join(dir, "model.h"), modelgen.Options{})
	assert.Error(t, err)
}
