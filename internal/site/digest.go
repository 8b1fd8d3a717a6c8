package site

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DigestFile is the name of the status file written into the output
// directory after a successful build.
const DigestFile = "status.md5"

// Digest summarizes the state of a source tree. It covers the path,
// modification time and size of every .md file, of the page template and of
// every file under static/ whose name does not start with a dot.
func Digest(source string) (string, error) {
	h := md5.New()
	static := filepath.Join(source, staticDir)
	tmpl := filepath.Join(source, TemplateFile)
	err := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		inStatic := strings.HasPrefix(path, static+string(filepath.Separator))
		switch {
		case inStatic && strings.HasPrefix(d.Name(), "."):
			return nil
		case !inStatic && filepath.Ext(path) != ".md" && path != tmpl:
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(h, "%s\x00%d\x00%d\n", filepath.ToSlash(rel), info.ModTime().UnixNano(), info.Size())
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("digest %s: %w", source, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// readDigest returns the digest stored in output, or "" if there is none.
func readDigest(output string) (string, error) {
	b, err := os.ReadFile(filepath.Join(output, DigestFile))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func writeDigest(output, digest string) error {
	return os.WriteFile(filepath.Join(output, DigestFile), []byte(digest+"\n"), 0o644)
}
