package space

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/batch"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/errors"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/logging"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/paste"
)

// Exporter runs the do-space projection against the filesystem.
type Exporter struct {
	fs     afero.Fs
	logger zerolog.Logger
}

// NewExporter creates an exporter over the given filesystem.
func NewExporter(fs afero.Fs) *Exporter {
	return &Exporter{
		fs:     fs,
		logger: logging.GetLogger("space"),
	}
}

// OutputPaths returns the config and residual file paths for an input
// file projected into outputDir.
func OutputPaths(input, outputDir string) (configPath, otherPath string) {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	configPath = filepath.Join(outputDir, stem+"-config.json")
	otherPath = filepath.Join(outputDir, stem+"-other.json")
	return configPath, otherPath
}

// Export projects one document into outputDir, writing the structured
// configuration and the residual document. Both writes are atomic;
// neither happens when the overwrite preflight fails.
func (x *Exporter) Export(input, outputDir string, overwrite bool) error {
	inputInfo, err := x.fs.Stat(input)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInputNotFound, "input path %s", input)
	}
	if inputInfo.IsDir() {
		return errors.Newf(errors.ErrUsageInvalidFlag, "do-space input %s must be a single file", input)
	}

	outInfo, err := x.fs.Stat(outputDir)
	if err != nil {
		return errors.Newf(errors.ErrInputOutputMissing, "output directory %s does not exist", outputDir)
	}
	if !outInfo.IsDir() {
		return errors.Newf(errors.ErrInputOutputConflict, "output %s is not a directory", outputDir)
	}

	configPath, otherPath := OutputPaths(input, outputDir)

	if !overwrite {
		var existing []string
		for _, p := range []string{configPath, otherPath} {
			if info, err := x.fs.Stat(p); err == nil && !info.IsDir() {
				existing = append(existing, p)
			}
		}
		if len(existing) > 0 {
			return errors.Newf(errors.ErrFileExists,
				"output files already exist: %s", strings.Join(existing, ", "))
		}
	}

	data, err := afero.ReadFile(x.fs, input)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInputNotFound, "reading %s", input)
	}
	doc, err := paste.Parse(data)
	if err != nil {
		return err
	}
	if err := doc.CheckVersion(); err != nil {
		return err
	}

	config, residual := Project(doc)

	configData, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "serializing base configuration")
	}
	otherData, err := json.MarshalIndent(residual, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "serializing residual document")
	}

	if err := batch.WriteFileAtomic(x.fs, configPath, configData); err != nil {
		return err
	}
	if err := batch.WriteFileAtomic(x.fs, otherPath, otherData); err != nil {
		return err
	}

	x.logger.Info().
		Str("input", input).
		Str("config", configPath).
		Str("other", otherPath).
		Int("turrets", len(config.Turrets)).
		Int("crates", len(config.Crates)).
		Int("doors", len(config.CodeDoors)+len(config.Doors)).
		Int("residual", len(residual.Entities)).
		Msg("Base configuration exported")
	return nil
}
