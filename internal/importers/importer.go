package importers

import (
	"github.com/montafon/moonlight/internal/entities"
)

// Importer is the full sheet-to-records pipeline: tokenize, validate,
// project. It never touches storage; committing the result (and backing up
// the previous version first) is the caller's job. Keeping parse and commit
// separate is what guarantees a failed parse can never clobber good data.
type Importer struct {
	projector *Projector
}

// NewImporter creates an importer that stamps records with the given
// templates.
func NewImporter(templates Templates) *Importer {
	return &Importer{projector: NewProjector(templates)}
}

// Import parses a complete sheet export into ordered chapter records.
//
// Zero surviving records is always an error, never an empty success: a sheet
// whose every row fails validation looks identical to a truncated or
// misfetched export, and committing it would erase the chapter list. Callers
// can rely on a nil error implying at least one record.
func (imp *Importer) Import(text string) ([]entities.Chapter, error) {
	rows, err := ParseTable(text)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrNoChapters
	}

	return imp.projector.ProjectRecords(rows), nil
}
