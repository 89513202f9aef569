package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// Defaults for RouterConfig fields left empty.
const (
	DefaultFileName  = "generated_by_the_casewalker.exp"
	DefaultExtension = ".exp"
	DefaultDirMode   = os.FileMode(0o755)
	DefaultFileMode  = os.FileMode(0o644)
)

// ErrOutsideDir is reported by Route for a file name that is not a plain
// name inside the output directory.
var ErrOutsideDir = errors.New("file name leaves the output directory")

// RouterConfig configures where a run writes its files.
type RouterConfig struct {
	// Dir is the output directory of this run.
	Dir string
	// DefaultFile receives records without a model.
	DefaultFile string
	// Extension is appended to file names derived from a model.
	Extension string
	DirMode   os.FileMode
	FileMode  os.FileMode
}

// WriteResult is the outcome of routing one block.
type WriteResult struct {
	Path    string `json:"path"`
	Model   string `json:"model,omitempty"`
	Created bool   `json:"created"`
	Bytes   int    `json:"bytes"`
	Err     error  `json:"-"`
}

// MarshalJSON adds the error message, if any, as "error".
func (w WriteResult) MarshalJSON() ([]byte, error) {
	type plain WriteResult
	out := struct {
		plain
		Error string `json:"error,omitempty"`
	}{plain: plain(w)}
	if w.Err != nil {
		out.Error = w.Err.Error()
	}
	return json.Marshal(out)
}

// Router appends rendered blocks to per-model files in a single directory.
// A Router serves exactly one run and is not safe for concurrent use.
type Router struct {
	cfg     RouterConfig
	started map[string]bool
}

// NewRouter creates a Router, filling unset config fields with defaults.
func NewRouter(cfg RouterConfig) *Router {
	if cfg.DefaultFile == "" {
		cfg.DefaultFile = DefaultFileName
	}
	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}
	if cfg.DirMode == 0 {
		cfg.DirMode = DefaultDirMode
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = DefaultFileMode
	}
	return &Router{cfg: cfg, started: make(map[string]bool)}
}

// Dir returns the output directory.
func (r *Router) Dir() string {
	return r.cfg.Dir
}

// FileName returns the file name for a model label: the default file for
// an empty label, otherwise the label lower-cased with spaces replaced by
// underscores, plus the extension.
func (r *Router) FileName(model string) string {
	if model == "" {
		return r.cfg.DefaultFile
	}
	name := strings.ToLower(strings.ReplaceAll(model, " ", "_"))
	return name + r.cfg.Extension
}

// Clean removes every file in the output directory so that a run never
// appends to files of an earlier run. Subdirectories are left alone.
// A missing directory is not an error. Each failed removal is returned.
func (r *Router) Clean() []error {
	entries, err := os.ReadDir(r.cfg.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return []error{fmt.Errorf("reading %s: %w", r.cfg.Dir, err)}
	}

	var errs []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(r.cfg.Dir, entry.Name())
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("removal of %s failed: %w", path, err))
		}
	}
	return errs
}

// Route appends text to the file for model. The first block routed to a
// file in this run creates the directory and the file with its marker
// line. Failures are reported in the result and leave the Router usable.
func (r *Router) Route(text, model string) WriteResult {
	name := r.FileName(model)
	path := filepath.Join(r.cfg.Dir, name)
	result := WriteResult{Path: path, Model: model}

	if !isPlainName(name) {
		result.Err = fmt.Errorf("%w: %q", ErrOutsideDir, name)
		return result
	}

	if !r.started[path] {
		if err := r.create(path); err != nil {
			result.Err = err
			return result
		}
		r.started[path] = true
		result.Created = true
	}

	n, err := appendFile(path, text)
	result.Bytes = n
	if err != nil {
		result.Err = fmt.Errorf("writing fact-type to %s failed: %w", path, err)
	}
	return result
}

// create makes the output directory and (re)creates path holding only the
// file marker.
func (r *Router) create(path string) error {
	if err := os.MkdirAll(r.cfg.Dir, r.cfg.DirMode); err != nil {
		return fmt.Errorf("creation of the directory %s failed: %w", r.cfg.Dir, err)
	}

	if err := atomic.WriteFile(path, strings.NewReader(FileMarker+"\n")); err != nil {
		return fmt.Errorf("creation of %s failed: %w", path, err)
	}

	// atomic.WriteFile creates new files through a 0600 temp file
	if err := os.Chmod(path, r.cfg.FileMode); err != nil {
		return fmt.Errorf("setting permissions on %s failed: %w", path, err)
	}
	return nil
}

// isPlainName reports whether name is a single local path element, so
// that the file lands directly in the output directory where Clean sees it.
func isPlainName(name string) bool {
	return filepath.IsLocal(name) && filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}

// appendFile opens path for appending, writes text and closes it again.
func appendFile(path, text string) (int, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return 0, err
	}

	n, writeErr := file.WriteString(text)
	closeErr := file.Close()
	if writeErr != nil {
		return n, writeErr
	}
	return n, closeErr
}
