package tsconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tailscale/hujson"
)

// FileName is the TypeScript configuration file at a project root.
const FileName = "tsconfig.json"

const defaultCacheSize = 128

var utf8BOM = []byte("\xef\xbb\xbf")

// Config is a loaded tsconfig.json: the file's own content and the effective
// configuration after applying everything it extends.
type Config struct {
	Path     string
	Document Document
	Resolved Resolved
}

type cachedFile struct {
	modTime time.Time
	size    int64
	doc     Document
}

// Loader reads tsconfig files and resolves extends chains. Parsed files are
// cached by absolute path and reparsed when their size or mtime changes.
type Loader struct {
	cache *lru.Cache[string, cachedFile]
}

// NewLoader returns a Loader caching up to size parsed files.
func NewLoader(size int) (*Loader, error) {
	cache, err := lru.New[string, cachedFile](size)
	if err != nil {
		return nil, fmt.Errorf("creating tsconfig cache: %w", err)
	}
	return &Loader{cache: cache}, nil
}

var defaultLoader = func() *Loader {
	l, err := NewLoader(defaultCacheSize)
	if err != nil {
		panic(err)
	}
	return l
}()

// Load reads path with the package-level Loader.
func Load(path string) (*Config, error) {
	return defaultLoader.Load(path)
}

// Load reads the tsconfig at path and resolves its extends chain. Every
// failure is returned as a *ParseError.
func (l *Loader) Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	doc, err := l.readDocument(abs)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	resolved, err := l.resolve(abs, doc, []string{abs})
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return &Config{Path: abs, Document: doc, Resolved: resolved}, nil
}

// resolve merges doc over the configurations it extends. Later entries of an
// extends array override earlier ones and the file itself overrides all of
// them, option by option.
func (l *Loader) resolve(path string, doc Document, chain []string) (Resolved, error) {
	var resolved Resolved
	resolved.CompilerOptions = make(map[string]any)

	bases, err := extendsList(doc[keyExtends])
	if err != nil {
		return Resolved{}, fmt.Errorf("%s: %w", path, err)
	}
	for _, spec := range bases {
		basePath, err := resolveExtends(filepath.Dir(path), spec)
		if err != nil {
			return Resolved{}, fmt.Errorf("%s: %w", path, err)
		}
		for _, seen := range chain {
			if seen == basePath {
				return Resolved{}, fmt.Errorf("circularity detected while resolving configuration: %s",
					strings.Join(append(chain, basePath), " -> "))
			}
		}

		baseDoc, err := l.readDocument(basePath)
		if err != nil {
			return Resolved{}, err
		}
		base, err := l.resolve(basePath, baseDoc, append(chain, basePath))
		if err != nil {
			return Resolved{}, err
		}

		maps.Copy(resolved.CompilerOptions, base.CompilerOptions)
		if base.Include != nil {
			resolved.Include = base.Include
		}
		if base.Exclude != nil {
			resolved.Exclude = base.Exclude
		}
	}

	maps.Copy(resolved.CompilerOptions, doc.CompilerOptions())
	if v := doc[keyInclude]; v != nil {
		resolved.Include = v
	}
	if v := doc[keyExclude]; v != nil {
		resolved.Exclude = v
	}
	return resolved, nil
}

func (l *Loader) readDocument(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if cached, ok := l.cache.Get(path); ok && cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
		return deepCopy(cached.doc), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	l.cache.Add(path, cachedFile{modTime: info.ModTime(), size: info.Size(), doc: doc})
	return deepCopy(doc), nil
}

// deepCopy copies doc down through nested objects and arrays. Cached
// documents are never handed out directly.
func deepCopy(doc Document) Document {
	return Document(copyValue(map[string]any(doc)).(map[string]any))
}

func copyValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = copyValue(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}

// Parse decodes tsconfig content. Comments and trailing commas are accepted;
// the top level must be an object.
func Parse(data []byte) (Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}

	var v any
	if err := json.Unmarshal(std, &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errors.New("the top level must be a JSON object")
	}
	if raw, ok := obj[keyCompilerOptions]; ok && raw != nil {
		if _, ok := raw.(map[string]any); !ok {
			return nil, errors.New("compilerOptions must be an object")
		}
	}
	return Document(obj), nil
}

func extendsList(v any) ([]string, error) {
	switch e := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{e}, nil
	case []any:
		out := make([]string, 0, len(e))
		for _, item := range e {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("extends entries must be strings, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("extends must be a string or an array of strings, got %T", v)
	}
}

// resolveExtends locates the file named by an extends entry. Relative and
// absolute paths resolve against dir; anything else is looked up as a
// package in the nearest node_modules walking upward.
func resolveExtends(dir, spec string) (string, error) {
	if spec == "" {
		return "", errors.New("extends entry is empty")
	}

	if filepath.IsAbs(spec) || strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") || spec == "." || spec == ".." {
		target := spec
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, filepath.FromSlash(spec))
		}
		if p, ok := configFile(target); ok {
			return p, nil
		}
		return "", fmt.Errorf("file specified in extends not found: %s", spec)
	}

	for d := dir; ; d = filepath.Dir(d) {
		target := filepath.Join(d, "node_modules", filepath.FromSlash(spec))
		if p, ok := configFile(target); ok {
			return p, nil
		}
		if p, ok := packageConfig(target); ok {
			return p, nil
		}
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
	}
	return "", fmt.Errorf("file specified in extends not found: %s", spec)
}

// configFile returns target itself, or target with a .json suffix, when it is
// a regular file.
func configFile(target string) (string, bool) {
	candidates := []string{target}
	if !strings.HasSuffix(target, ".json") {
		candidates = append(candidates, target+".json")
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.Mode().IsRegular() {
			return c, true
		}
	}
	return "", false
}

// packageConfig resolves a package directory to the file named by its
// package.json "tsconfig" field, or to its tsconfig.json.
func packageConfig(pkgDir string) (string, bool) {
	if info, err := os.Stat(pkgDir); err != nil || !info.IsDir() {
		return "", false
	}

	if data, err := os.ReadFile(filepath.Join(pkgDir, "package.json")); err == nil {
		var pkg struct {
			TSConfig string `json:"tsconfig"`
		}
		if json.Unmarshal(data, &pkg) == nil && pkg.TSConfig != "" {
			if p, ok := configFile(filepath.Join(pkgDir, filepath.FromSlash(pkg.TSConfig))); ok {
				return p, true
			}
		}
	}
	return configFile(filepath.Join(pkgDir, FileName))
}
