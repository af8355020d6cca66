package configs

import (
	"fmt"
	"iter"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Loader reads CUE config files on first use. Earlier files take precedence.
type Loader struct {
	paths    []string
	getRoots func() ([]rootInfo, error)
}

// Source is a config file content, read from Path when Content is nil.
type Source struct {
	Path    string
	Content []byte
}

func NewLoader(filePaths []string, schemaSrc string) Loader {
	sources := make([]Source, 0, len(filePaths))
	for _, path := range filePaths {
		sources = append(sources, Source{
			Path: path,
		})
	}
	return NewSourcesLoader(sources, schemaSrc)
}

func NewSourcesLoader(sources []Source, schemaSrc string) Loader {
	paths := make([]string, 0, len(sources))
	for _, source := range sources {
		paths = append(paths, source.Path)
	}

	return Loader{
		paths: paths,

		getRoots: sync.OnceValues(func() (ret []rootInfo, err error) {
			ctx := cuecontext.New()

			var schema cue.Value
			if schemaSrc != "" {
				schema = ctx.CompileString("close({" + schemaSrc + "})")
				if err := schema.Err(); err != nil {
					return nil, fmt.Errorf("config schema: %w", err)
				}
			}

			for _, source := range sources {
				content := source.Content
				if content == nil {
					content, err = os.ReadFile(source.Path)
					if err != nil {
						return nil, err
					}
				}

				value := ctx.CompileBytes(
					content,
					cue.Filename(source.Path),
				)
				if err = value.Err(); err != nil {
					return nil, fmt.Errorf("config %s: %w", source.Path, err)
				}

				if schema.Exists() {
					if err := schema.Unify(value).Validate(); err != nil {
						return nil, fmt.Errorf("config %s: %w", source.Path, err)
					}
				}

				ret = append(ret, rootInfo{
					value: value,
					path:  source.Path,
				})
			}

			return
		}),
	}
}

type rootInfo struct {
	value cue.Value
	path  string
}

func (l Loader) Paths() []string {
	return l.paths
}

// Err reports a failure to read, compile or validate the config files.
func (l Loader) Err() error {
	if l.getRoots == nil {
		return nil
	}
	_, err := l.getRoots()
	return err
}

func (l Loader) IterCueValues(path string) iter.Seq2[*cue.Value, error] {
	return func(yield func(*cue.Value, error) bool) {
		if l.getRoots == nil {
			return
		}
		roots, err := l.getRoots()
		if err != nil {
			yield(nil, err)
			return
		}

		cuePath := cue.ParsePath(path)
		for _, info := range roots {
			value := info.value.LookupPath(cuePath)
			if err := value.Err(); err == nil && value.Exists() {
				if !yield(&value, nil) {
					break
				}
			}
		}
	}
}

func (l Loader) AssignFirst(path string, target any) error {
	for value, err := range l.IterCueValues(path) {
		if err != nil {
			return err
		}
		if err := value.Decode(target); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
		return nil
	}
	return ErrValueNotFound
}
