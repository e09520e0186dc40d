package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dealwise/pkg/core/scenario"
	"dealwise/pkg/core/underwrite"
	"dealwise/pkg/core/utils"
)

// DealFile is a hand-written deal: a name, optional markdown notes, and a
// partial inputs block. Unset inputs take the baseline defaults when the
// file is resolved.
type DealFile struct {
	Name   string            `json:"name"`
	Notes  string            `json:"notes,omitempty"`
	Inputs scenario.Override `json:"inputs"`
}

// LoadDealFile reads a deal file in JSON or HJSON. A file without a name
// is named after itself, extension dropped.
func LoadDealFile(path string) (DealFile, error) {
	var df DealFile

	data, err := os.ReadFile(path)
	if err != nil {
		return df, fmt.Errorf("read deal file %s: %w", path, err)
	}
	if _, err := utils.SmartParse(string(data), &df); err != nil {
		return df, fmt.Errorf("deal file %s: %w", path, err)
	}

	if df.Name == "" {
		base := filepath.Base(path)
		df.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return df, nil
}

// Resolve merges the file's partial inputs over base and returns the full
// record the engines consume.
func (df DealFile) Resolve(base underwrite.Inputs) underwrite.Inputs {
	return df.Inputs.Apply(base)
}
