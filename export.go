// Package competition generates and advances tournament brackets for
// five formats and computes standings from recorded match outcomes.
// The format engines live in the tournament package; this package
// carries the export document envelope and the Organizer glue between
// the engine factory and a StorageEngine.
package competition

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/openbracket/competition/models"
	"github.com/openbracket/competition/tournament"
)

// ExportVersion is the envelope version written by Export
const ExportVersion = 1

// Export wraps an engine's state snapshot in the file exchange
// envelope and marshals it
func Export(e models.Engine) ([]byte, error) {
	doc := models.ExportDocument{
		ExportVersion: ExportVersion,
		ExportDate:    time.Now().UTC(),
		State:         e.Export(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("unable to export tournament %s: %w", e.GetID(), err)
	}
	return data, nil
}

// Import reconstructs an engine from an exported document. The
// round-trip is lossless: matches, results and derived counters come
// back identical.
func Import(data []byte) (models.Engine, error) {
	var doc models.ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unable to parse export document: %w", err)
	}
	if doc.ExportVersion < 1 || doc.ExportVersion > ExportVersion {
		return nil, fmt.Errorf("unsupported export version %d", doc.ExportVersion)
	}
	return tournament.Restore(doc.State)
}
