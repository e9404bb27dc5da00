package dictionary

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ansel1/merry"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/radvalue/pkg/log"
)

// Source produces a dictionary
type Source interface {
	Load(ctx context.Context) (*Dictionary, error)
	Close() error
}

// FileSource loads dictionaries from local files (YAML or JSON)
type FileSource struct {
	// Path specifies a single file path to load
	Path string

	// Paths specifies multiple file paths to load and merge
	Paths []string

	// Dir specifies a directory to scan for dictionary files
	Dir string

	// Format specifies the file format ("yaml", "json", or "auto")
	Format string

	// Logger receives progress messages, nil disables them
	Logger log.Logger
}

// StaticSource returns an already built dictionary
type StaticSource struct {
	Dictionary *Dictionary
}

// MultiSource combines multiple dictionary sources
type MultiSource struct {
	Sources []Source
}

// Load loads the dictionary from file(s)
func (s *FileSource) Load(ctx context.Context) (*Dictionary, error) {
	var filePaths []string

	if s.Path != "" {
		filePaths = append(filePaths, s.Path)
	}

	if len(s.Paths) > 0 {
		filePaths = append(filePaths, s.Paths...)
	}

	if s.Dir != "" {
		dirFiles, err := scanDirectory(s.Dir)
		if err != nil {
			return nil, merry.Here(ErrLoad).WithCause(err).Appendf("failed to scan directory %s", s.Dir)
		}
		filePaths = append(filePaths, dirFiles...)
	}

	if len(filePaths) == 0 {
		return nil, merry.Here(ErrLoad).Append("no files specified to load")
	}

	dict := New()
	for _, path := range filePaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file, err := s.loadSingleFile(path)
		if err != nil {
			return nil, merry.Prependf(err, "failed to load file %s", path)
		}

		if err := file.addTo(dict); err != nil {
			return nil, merry.Prependf(err, "failed to merge dictionary from %s", path)
		}

		if s.Logger != nil {
			s.Logger.WithField("path", path).Debugf("loaded dictionary: %d attributes, %d vendors", len(file.Attributes), len(file.Vendors))
		}
	}

	return dict, nil
}

// Close closes the file source (no-op for file sources)
func (s *FileSource) Close() error {
	return nil
}

func (f *File) addTo(dict *Dictionary) error {
	if err := dict.AddStandardAttributes(f.Attributes); err != nil {
		return err
	}

	for _, vendor := range f.Vendors {
		if err := dict.AddVendor(vendor); err != nil {
			return err
		}
	}

	return nil
}

func scanDirectory(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".yaml" || ext == ".yml" || ext == ".json" {
			files = append(files, path)
		}

		return nil
	})

	sort.Strings(files)

	return files, err
}

func (s *FileSource) loadSingleFile(path string) (*File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, merry.Here(ErrLoad).WithCause(err).Append("failed to open file")
	}
	defer fd.Close()

	data, err := io.ReadAll(fd)
	if err != nil {
		return nil, merry.Here(ErrLoad).WithCause(err).Append("failed to read file")
	}

	format := s.Format
	if format == "" || format == "auto" {
		format = detectFormat(path, data)
	}

	var file File
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, merry.Here(ErrLoad).WithCause(err).Append("failed to parse YAML")
		}
	case "json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, merry.Here(ErrLoad).WithCause(err).Append("failed to parse JSON")
		}
	default:
		return nil, merry.Here(ErrLoad).Appendf("unsupported format: %s", format)
	}

	return &file, nil
}

func detectFormat(path string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	default:
		trimmed := bytes.TrimSpace(data)
		if bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
			return "json"
		}
		return "yaml"
	}
}

// Load returns the wrapped dictionary
func (s *StaticSource) Load(_ context.Context) (*Dictionary, error) {
	if s.Dictionary == nil {
		return nil, merry.Here(ErrLoad).Append("static source has no dictionary")
	}
	return s.Dictionary, nil
}

// Close is a no-op
func (s *StaticSource) Close() error {
	return nil
}

// Load loads dictionaries from all sources and merges them into a new dictionary
func (ms *MultiSource) Load(ctx context.Context) (*Dictionary, error) {
	if len(ms.Sources) == 0 {
		return nil, merry.Here(ErrLoad).Append("no sources specified")
	}

	merged := New()
	for i, source := range ms.Sources {
		dict, err := source.Load(ctx)
		if err != nil {
			return nil, merry.Prependf(err, "failed to load from source %d", i)
		}

		if err := merged.Merge(dict); err != nil {
			return nil, merry.Prependf(err, "failed to merge dictionary from source %d", i)
		}
	}

	return merged, nil
}

// Close closes all sources
func (ms *MultiSource) Close() error {
	var errs []string
	for i, source := range ms.Sources {
		if err := source.Close(); err != nil {
			errs = append(errs, merry.Prependf(err, "source %d", i).Error())
		}
	}

	if len(errs) > 0 {
		return merry.Errorf("errors closing sources: %s", strings.Join(errs, "; "))
	}

	return nil
}
