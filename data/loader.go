package data

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/launchdarkly/assert-harness/framework/ldtest"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

//go:embed data-files
var dataFilesRoot embed.FS

const dataBasePath = "data-files"

// SourceInfo represents JSON or YAML data that was read from a file, after post-processing to expand
// constants and parameters. For non-parameterized files, you will get one SourceInfo per file. For
// parameterized files, there can be many instances per file, each with its own version of Data.
type SourceInfo struct {
	FilePath string
	BaseName string
	Params   map[string]ldvalue.Value
	Data     []byte
}

// Parsed is the result of parsing a SourceInfo into some type.
type Parsed[V any] struct {
	Source SourceInfo
	Value  V
}

func (s SourceInfo) ParseInto(target interface{}) error {
	if err := ParseJSONOrYAML(s.Data, target); err != nil {
		return fmt.Errorf("error parsing %q %s: %w", s.BaseName, s.ParamsString(), err)
	}
	return nil
}

// ParamsString describes the parameter values, if any, in a stable order, such as "(A=1,B=2)".
func (s SourceInfo) ParamsString() string {
	if len(s.Params) == 0 {
		return ""
	}
	names := maps.Keys(s.Params)
	slices.Sort(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+s.Params[name].JSONString())
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// LoadDataFile reads a data file and performs any necessary constant/parameter substitutions. It can
// return more than one SourceInfo because any file can be parameterized.
//
// The path parameter is relative to data/data-files.
func LoadDataFile(path string) ([]SourceInfo, error) {
	ret := make([]SourceInfo, 0, 10) // preallocate a little because it's likely there will be multiple results
	data, err := dataFilesRoot.ReadFile(dataBasePath + "/" + path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	baseName := filepath.Base(path)
	sources, err := expandSubstitutions(data)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	for _, source := range sources {
		source.FilePath = path
		source.BaseName = baseName
		ret = append(ret, source)
	}
	return ret, nil
}

// LoadAllDataFiles reads all data files in a directory and performs any necessary constant/parameter
// substitutions. It can return more than one SourceInfo per file, because any file can be
// parameterized. Files are read in name order.
//
// The path parameter is relative to data/data-files.
func LoadAllDataFiles(path string) ([]SourceInfo, error) {
	files, err := dataFilesRoot.ReadDir(dataBasePath + "/" + path)
	if err != nil {
		return nil, err
	}
	var ret []SourceInfo
	for _, file := range files {
		if file.IsDir() || !isDataFileName(file.Name()) {
			continue
		}
		filePath := path + "/" + file.Name()
		sources, err := LoadDataFile(filePath)
		if err != nil {
			return nil, err
		}
		ret = append(ret, sources...)
	}
	return ret, nil
}

// LoadAndParseAll calls LoadAllDataFiles and then parses each of the resulting SourceInfos
// as JSON or YAML into the specified type.
func LoadAndParseAll[V any](dirName string) ([]Parsed[V], error) {
	sources, err := LoadAllDataFiles(dirName)
	if err != nil {
		return nil, err
	}
	ret := make([]Parsed[V], 0, len(sources))
	for _, source := range sources {
		var value V
		if err := source.ParseInto(&value); err != nil {
			return nil, err
		}
		ret = append(ret, Parsed[V]{Source: source, Value: value})
	}
	return ret, nil
}

// LoadAndParseAllTestSuites is the same as LoadAndParseAll, but fails and terminates the test
// on any error.
func LoadAndParseAllTestSuites[V any](t *ldtest.T, dirName string) []Parsed[V] {
	ret, err := LoadAndParseAll[V](dirName)
	require.NoError(t, err)
	return ret
}

func isDataFileName(name string) bool {
	switch filepath.Ext(name) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
