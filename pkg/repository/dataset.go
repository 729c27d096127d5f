package repository

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/josoor-ai/capdesk/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

//go:embed seed/capabilities.json
var seedDataset []byte

// DatasetFormat is the encoding of a dataset file
type DatasetFormat string

const (
	DatasetFormatJSON DatasetFormat = "json"
	DatasetFormatYAML DatasetFormat = "yaml"
)

// DetectDatasetFormat picks the format from the file extension. Unknown
// extensions are treated as JSON.
func DetectDatasetFormat(path string) DatasetFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DatasetFormatYAML
	default:
		return DatasetFormatJSON
	}
}

// ParseDataset decodes and validates a dataset
func ParseDataset(data []byte, format DatasetFormat) (*model.Dataset, error) {
	var ds model.Dataset

	switch format {
	case DatasetFormatYAML:
		if err := yaml.Unmarshal(data, &ds); err != nil {
			return nil, goerr.Wrap(err, "failed to parse YAML dataset")
		}
	case DatasetFormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&ds); err != nil {
			return nil, goerr.Wrap(err, "failed to parse JSON dataset")
		}
	default:
		return nil, goerr.New("unsupported dataset format", goerr.V("format", format))
	}

	if err := ds.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid dataset")
	}

	return &ds, nil
}

// LoadDatasetFile reads a JSON or YAML dataset from disk
func LoadDatasetFile(path string) (*model.Dataset, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read dataset file", goerr.V("path", path))
	}

	ds, err := ParseDataset(data, DetectDatasetFormat(path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dataset file", goerr.V("path", path))
	}
	return ds, nil
}

// SeedDataset returns the bundled demo dataset
func SeedDataset() (*model.Dataset, error) {
	ds, err := ParseDataset(seedDataset, DatasetFormatJSON)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load bundled seed dataset")
	}
	return ds, nil
}
