// Package batch resolves an invocation's input and output paths into an
// explicit file mapping and drives the transformation pipeline over it,
// committing each result atomically.
package batch

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/errors"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/logging"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/paste"
	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/transform"
)

// DocumentSuffix is the file suffix batches look for inside an input
// directory.
const DocumentSuffix = ".json"

// Pair is one input file and the output file its transformed document is
// committed to.
type Pair struct {
	Input  string
	Output string
}

// Options controls one batch run.
type Options struct {
	Input     string
	Output    string
	Overwrite bool
	DryRun    bool
}

// Result is the outcome of one committed (or, in dry-run, simulated)
// file.
type Result struct {
	Pair    Pair
	Summary *transform.Summary
}

// Orchestrator runs transformation requests over resolved batches.
type Orchestrator struct {
	fs       afero.Fs
	pipeline *transform.Pipeline
	logger   zerolog.Logger
}

// NewOrchestrator creates an orchestrator over the given filesystem.
func NewOrchestrator(fs afero.Fs) *Orchestrator {
	return &Orchestrator{
		fs:       fs,
		pipeline: transform.NewPipeline(),
		logger:   logging.GetLogger("batch"),
	}
}

// ResolvePairs maps the input path (file or directory) and output path
// onto explicit (input, output) file pairs, ascending by input path.
//
//   - file to file: the pair as given
//   - file to existing directory: output named after the input's base
//   - directory to existing directory: one pair per *.json file directly
//     inside the input, non-recursive
//
// A missing input, or a directory input with a non-directory output, is
// fatal before anything is written.
func (o *Orchestrator) ResolvePairs(input, output string) ([]Pair, error) {
	inputInfo, err := o.fs.Stat(input)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInputNotFound, "input path %s", input)
	}

	outputInfo, outputErr := o.fs.Stat(output)
	outputIsDir := outputErr == nil && outputInfo.IsDir()

	if !inputInfo.IsDir() {
		if outputIsDir {
			return []Pair{{Input: input, Output: filepath.Join(output, filepath.Base(input))}}, nil
		}
		return []Pair{{Input: input, Output: output}}, nil
	}

	if outputErr != nil {
		return nil, errors.Newf(errors.ErrInputOutputMissing,
			"output directory %s does not exist", output)
	}
	if !outputIsDir {
		return nil, errors.Newf(errors.ErrInputOutputConflict,
			"input %s is a directory but output %s is a file", input, output)
	}

	entries, err := afero.ReadDir(o.fs, input)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInputNotFound, "listing %s", input)
	}

	var pairs []Pair
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), DocumentSuffix) {
			continue
		}
		pairs = append(pairs, Pair{
			Input:  filepath.Join(input, entry.Name()),
			Output: filepath.Join(output, entry.Name()),
		})
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Input < pairs[j].Input })
	return pairs, nil
}

// CheckOverwrite aborts the whole batch when any output already exists
// as a file, naming every offending path. No file is written before this
// check passes.
func (o *Orchestrator) CheckOverwrite(pairs []Pair) error {
	var existing []string
	for _, p := range pairs {
		info, err := o.fs.Stat(p.Output)
		if err == nil && !info.IsDir() {
			existing = append(existing, p.Output)
		}
	}
	if len(existing) > 0 {
		return errors.Newf(errors.ErrFileExists,
			"output files already exist: %s", strings.Join(existing, ", ")).
			WithDetail("paths", existing)
	}
	return nil
}

// Run resolves the batch and processes it file by file, in ascending
// lexical order of input path. The first per-file failure aborts the
// rest of the batch; files committed before it stay committed.
func (o *Orchestrator) Run(opts Options, req *transform.Request) ([]Result, error) {
	pairs, err := o.ResolvePairs(opts.Input, opts.Output)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		o.logger.Warn().Str("input", opts.Input).Msg("Batch resolved to no files")
		return nil, nil
	}

	if !opts.Overwrite && !opts.DryRun {
		if err := o.CheckOverwrite(pairs); err != nil {
			return nil, err
		}
	}

	results := make([]Result, 0, len(pairs))
	for _, pair := range pairs {
		summary, err := o.processFile(pair, req, opts.DryRun)
		if err != nil {
			o.logger.Error().Err(err).Str("input", pair.Input).Msg("Aborting batch on first failure")
			return results, err
		}
		results = append(results, Result{Pair: pair, Summary: summary})
	}
	return results, nil
}

// processFile parses, transforms, and commits a single document. Each
// file gets its own document instance; nothing is shared across files.
func (o *Orchestrator) processFile(pair Pair, req *transform.Request, dryRun bool) (*transform.Summary, error) {
	data, err := afero.ReadFile(o.fs, pair.Input)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInputNotFound, "reading %s", pair.Input)
	}

	doc, err := paste.Parse(data)
	if err != nil {
		return nil, err
	}
	if err := doc.CheckVersion(); err != nil {
		return nil, err
	}

	summary, err := o.pipeline.Apply(doc, req)
	if err != nil {
		return nil, err
	}

	if dryRun {
		o.logger.Info().Str("input", pair.Input).Msg("Dry run, not committing")
		return summary, nil
	}

	out, err := doc.Marshal()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "serializing %s", pair.Input)
	}

	if err := WriteFileAtomic(o.fs, pair.Output, out); err != nil {
		return nil, err
	}

	o.logger.Info().
		Str("input", pair.Input).
		Str("output", pair.Output).
		Int("entities", doc.Len()).
		Msg("File committed")
	return summary, nil
}
