// Package server previews a generated documentation site over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/apidoc/internal/logging"
	"github.com/example/apidoc/internal/logging/logfields"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "server")

// ModuleInfo describes one generated module page.
type ModuleInfo struct {
	Name string `json:"name"`
	Page string `json:"page"`
	// JSON is set when the parsed module was written next to the page.
	JSON string `json:"json,omitempty"`
}

// NewHandler serves the site in dir. Besides the files themselves it
// exposes /healthz and /api/modules, a JSON list of module pages.
func NewHandler(dir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/api/modules", func(w http.ResponseWriter, _ *http.Request) {
		mods, err := ListModules(dir)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(mods)
	})
	r.Handle("/*", http.FileServer(http.Dir(dir)))

	return r
}

// ListModules returns the module pages under dir/modules in lexical order.
func ListModules(dir string) ([]ModuleInfo, error) {
	root := filepath.Join(dir, "modules")
	mods := []ModuleInfo{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.ToSlash(rel), ".html")
		info := ModuleInfo{Name: name, Page: "/modules/" + name + ".html"}
		if _, err := os.Stat(strings.TrimSuffix(path, ".html") + ".json"); err == nil {
			info.JSON = "/modules/" + name + ".json"
		}
		mods = append(mods, info)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(mods, func(i, j int) bool { return mods[i].Name < mods[j].Name })
	return mods, nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.WithField("method", r.Method).
			WithField("path", r.URL.Path).
			WithField("status", ww.Status()).
			WithField("duration", time.Since(start)).
			Debug("Served request")
	})
}

// Serve serves dir on addr until ctx is done.
func Serve(ctx context.Context, addr, dir string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(dir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).WithField(logfields.Dest, dir).Info("Serving documentation")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
