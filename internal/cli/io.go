package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// readInput reads path, or standard input when path is "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// writeOutput writes data to path, or to stdout when path is "-". The
// directory of path must exist.
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}

	outDir := filepath.Dir(path)
	if fi, err := os.Stat(outDir); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("output directory %s does not exist, please create it first", outDir)
		}
		return err
	} else if !fi.IsDir() {
		return fmt.Errorf("output path %s is not a directory", outDir)
	}

	return os.WriteFile(filepath.Clean(path), data, 0o644)
}
