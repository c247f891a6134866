// Package importers turns the published spreadsheet export into normalized
// chapter records.
//
// # Architecture
//
// The import flow is a single synchronous pass:
//
//	CSV text → tokenizeLine → ParseTable → RawRow → Projector → entities.Chapter
//
// tokenizeLine handles quoted fields per line; ParseTable resolves header
// aliases once, filters blank and invalid rows, and preserves input order;
// the Projector derives chapter numbers, asset paths, and summary markup.
//
// # Why not encoding/csv
//
// Exported sheets occasionally contain quoting encoding/csv rejects (an
// unterminated quote at end of line). The contract here is lenient: end of
// line implicitly closes an open quote and no quoting condition is an error,
// so tokenization is done by hand.
//
// # Empty results
//
// Importer.Import returns ErrNoChapters when no row survives validation. An
// earlier version of this pipeline silently wrote an empty chapter list over
// the live one when the sheet moved; the error is structural so that failure
// mode cannot come back.
package importers
