package defs

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pelletier/go-toml/v2"
	"github.com/reusee/vartext/interps"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown definitions format")

type decoder func(path string, content []byte) (map[string]any, error)

var decoders = map[string]decoder{
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".toml": decodeTOML,
	".cue":  decodeCUE,
}

func decodeYAML(_ string, content []byte) (ret map[string]any, err error) {
	err = yaml.Unmarshal(content, &ret)
	return
}

func decodeTOML(_ string, content []byte) (ret map[string]any, err error) {
	err = toml.Unmarshal(content, &ret)
	return
}

func decodeCUE(path string, content []byte) (ret map[string]any, err error) {
	value := cuecontext.New().CompileBytes(content, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, err
	}
	err = value.Decode(&ret)
	return
}

// Parse decodes one definitions document, picking the format by the extension of path.
func Parse(path string, content []byte) (interps.Table, error) {
	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	tree, err := decode(path, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return Flatten(tree), nil
}

// ReadFiles parses and merges files. Later files override earlier keys.
func ReadFiles(paths ...string) (interps.Table, error) {
	ret := make(interps.Table)
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		table, err := Parse(path, content)
		if err != nil {
			return nil, err
		}
		maps.Copy(ret, table)
	}
	return ret, nil
}
