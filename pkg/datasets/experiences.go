// Package datasets loads experience batches from files so runs can be fed
// from recorded data.
package datasets

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/errors"
)

// LoadExperiences reads a batch from path, dispatching on the file extension.
// JSON (.json) and Parquet (.parquet) are supported.
func LoadExperiences(path string) ([]core.ExperienceRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".parquet":
		return LoadParquet(path)
	default:
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "unsupported dataset format"),
			errors.Fields{"path": path},
		)
	}
}

// LoadJSON reads a batch from a JSON array of experience records.
func LoadJSON(path string) ([]core.ExperienceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.InvalidInput, "failed to read dataset"),
			errors.Fields{"path": path},
		)
	}

	var records []core.ExperienceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.InvalidInput, "failed to parse dataset"),
			errors.Fields{"path": path},
		)
	}
	return records, nil
}
