package paste

import (
	"encoding/json"
	"strings"

	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/errors"
)

const (
	fieldFormatVersion = "formatVersion"
	fieldEntities      = "entities"
)

// Document is one parsed save tree. It is owned exclusively by the
// pipeline invocation that loaded it and is discarded after commit.
type Document struct {
	formatVersion string
	hasVersion    bool
	entities      []*Entity
	extra         map[string]json.RawMessage
}

// Parse reads a document from its serialized form. Parse does not gate
// the format version; see CheckVersion.
func Parse(data []byte) (*Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrInputParse, "document is not valid JSON")
	}

	doc := &Document{}

	if versionRaw, ok := raw[fieldFormatVersion]; ok {
		doc.hasVersion = true
		// The version tag is written as a string, but old exports carry
		// a bare number; accept both.
		if err := json.Unmarshal(versionRaw, &doc.formatVersion); err != nil {
			var numeric json.Number
			if err := json.Unmarshal(versionRaw, &numeric); err != nil {
				return nil, errors.New(errors.ErrInputParse, "formatVersion is neither a string nor a number")
			}
			doc.formatVersion = numeric.String()
		}
		delete(raw, fieldFormatVersion)
	}

	if entitiesRaw, ok := raw[fieldEntities]; ok {
		if err := json.Unmarshal(entitiesRaw, &doc.entities); err != nil {
			return nil, errors.Wrap(err, errors.ErrInputParse, "invalid entity collection")
		}
		delete(raw, fieldEntities)
	}

	doc.extra = raw
	return doc, nil
}

// Marshal serializes the document, preserving unrecognized root fields.
func (d *Document) Marshal() ([]byte, error) {
	out := make(map[string]interface{}, len(d.extra)+2)
	for k, v := range d.extra {
		out[k] = v
	}
	if d.hasVersion {
		out[fieldFormatVersion] = d.formatVersion
	}
	if d.entities == nil {
		d.entities = []*Entity{}
	}
	out[fieldEntities] = d.entities

	return json.MarshalIndent(out, "", "  ")
}

// FormatVersion returns the raw version tag, e.g. "4.1".
func (d *Document) FormatVersion() string { return d.formatVersion }

// Entities returns the ordered entity collection. Callers may mutate
// individual entities but must go through Retain to drop any.
func (d *Document) Entities() []*Entity { return d.entities }

// Len returns the number of entities in the document.
func (d *Document) Len() int { return len(d.entities) }

// Retain materializes a new entity collection holding exactly the
// entities at the given indices, in their original order. Computing the
// retained set first and rebuilding afterwards sidesteps
// mutate-while-iterating hazards.
func (d *Document) Retain(indices []int) {
	kept := make([]*Entity, 0, len(indices))
	for _, i := range indices {
		kept = append(kept, d.entities[i])
	}
	d.entities = kept
}

// SupportedMajorVersion is the document format major version this engine
// understands. Minor versions are informational only.
const SupportedMajorVersion = 4

// CheckVersion validates the document's declared format major version
// against the engine's. A document without a version tag was not produced
// by the game's export and is rejected outright.
func (d *Document) CheckVersion() error {
	if !d.hasVersion {
		return errors.New(errors.ErrInputNotADocument,
			"document carries no formatVersion tag; this does not look like a CopyPaste export")
	}
	if MajorVersion(d.formatVersion) != SupportedMajorVersion {
		return errors.Newf(errors.ErrInputBadVersion,
			"unsupported format version %q (supported major version: %d)",
			d.formatVersion, SupportedMajorVersion)
	}
	return nil
}

// MajorVersion extracts the numeric major component of a version tag.
// Returns -1 when the tag does not start with an integer.
func MajorVersion(version string) int {
	major, _, _ := strings.Cut(version, ".")
	n := 0
	if major == "" {
		return -1
	}
	for _, r := range major {
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	return n
}
