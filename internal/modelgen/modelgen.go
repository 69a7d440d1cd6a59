// Package modelgen converts a trained model binary into a C source array so
// the firmware can embed it. The output matches what the firmware sketch
// expects: an unsigned char array plus an int length constant.
package modelgen

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// bytesPerLine keeps the generated array reviewable in a diff; the content
// is byte-identical to a single-line join apart from the added newlines.
const bytesPerLine = 12

// Options name the generated identifiers.
type Options struct {
	// ArrayName is the C identifier for the byte array; the length
	// constant is ArrayName + "_len".
	ArrayName string
	// Guard is the include guard macro.
	Guard string
}

func (o Options) withDefaults() Options {
	if o.ArrayName == "" {
		o.ArrayName = "door_status_model"
	}
	if o.Guard == "" {
		o.Guard = "MODEL_H"
	}
	return o
}

// Generate writes the C source for model to w.
func Generate(w io.Writer, model []byte, opts Options) error {
	opts = opts.withDefaults()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "#ifndef %s\n", opts.Guard)
	fmt.Fprintf(bw, "#define %s\n\n", opts.Guard)
	fmt.Fprintf(bw, "// Model size: %d bytes\n", len(model))
	fmt.Fprintf(bw, "const unsigned char %s[] = {\n", opts.ArrayName)

	for i, b := range model {
		if i%bytesPerLine == 0 {
			bw.WriteString("  ")
		}
		fmt.Fprintf(bw, "0x%02x", b)
		if i != len(model)-1 {
			bw.WriteString(",")
		}
		if (i+1)%bytesPerLine == 0 || i == len(model)-1 {
			bw.WriteString("\n")
		} else {
			bw.WriteString(" ")
		}
	}

	fmt.Fprintf(bw, "};\n\n")
	fmt.Fprintf(bw, "const int %s_len = %d;\n\n", opts.ArrayName, len(model))
	fmt.Fprintf(bw, "#endif // %s\n", opts.Guard)

	return bw.Flush()
}

// GenerateFile reads the model binary at modelPath and writes the generated
// source to outPath.
func GenerateFile(modelPath, outPath string, opts Options) error {
	model, err := os.ReadFile(modelPath)
	if err != nil {
		return fmt.Errorf("read model: %w", err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := Generate(out, model, opts); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
