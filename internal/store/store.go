package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cenkalti/backoff/v4"

	"github.com/tkerr/ab3gy-dxentity/internal/cty"
	"github.com/tkerr/ab3gy-dxentity/internal/db"
	"github.com/tkerr/ab3gy-dxentity/internal/dxcc"
	"github.com/tkerr/ab3gy-dxentity/internal/logging"
)

// Store persists parsed entity data in SQLite and can rebuild an in-memory
// index purely from the stored rows.
type Store struct {
	dbClient db.DBClient
}

// New wraps a database client and ensures the schema exists. Schema creation
// is retried with backoff since a concurrent maintenance process may be
// holding the database lock.
func New(dbClient db.DBClient) (*Store, error) {
	s := &Store{dbClient: dbClient}
	op := func() error { return s.createTables() }
	if err := backoff.Retry(op, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5)); err != nil {
		return nil, fmt.Errorf("failed to create entity tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	for _, q := range createTableSQL {
		if _, err := s.dbClient.GetDB().Exec(q); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}

// DropTables removes the entity tables entirely.
func (s *Store) DropTables() error {
	for _, q := range dropTableSQL {
		if _, err := s.dbClient.GetDB().Exec(q); err != nil {
			return fmt.Errorf("drop statement failed: %w", err)
		}
	}
	return nil
}

// InsertEntityRow stores one ENTITY or ALIAS record, plus its country row
// for ENTITY records.
func (s *Store) InsertEntityRow(ctx context.Context, rec cty.Record) error {
	_, err := s.dbClient.GetDB().ExecContext(ctx, insertEntitySQL,
		rec.Kind, rec.Priority, rec.Entity, rec.Alias, rec.Suffix,
		rec.CQZone, rec.ITUZone, rec.Continent, rec.Lat, rec.Lon,
		rec.GMTOffset, boolToInt(rec.WAEDC))
	if err != nil {
		return fmt.Errorf("failed to insert entity row %s: %w", rec.Alias, err)
	}
	if rec.Kind == cty.KindEntity {
		if _, err := s.dbClient.GetDB().ExecContext(ctx, insertCountrySQL,
			rec.Priority, rec.DXCC, rec.Entity, rec.Country); err != nil {
			return fmt.Errorf("failed to insert country row %s: %w", rec.Country, err)
		}
	}
	return nil
}

// InsertCallsignRow stores one literal CALLSIGN record.
func (s *Store) InsertCallsignRow(ctx context.Context, rec cty.Record) error {
	_, err := s.dbClient.GetDB().ExecContext(ctx, insertCallsignSQL,
		rec.Alias, rec.Priority, rec.Entity, rec.Suffix,
		rec.CQZone, rec.ITUZone, rec.Continent, rec.Lat, rec.Lon,
		rec.GMTOffset, boolToInt(rec.WAEDC))
	if err != nil {
		return fmt.Errorf("failed to insert callsign row %s: %w", rec.Alias, err)
	}
	return nil
}

// ReplaceRecords atomically replaces the stored data set with records.
// Returns (good, bad) row counts; bad rows are logged and skipped.
func (s *Store) ReplaceRecords(ctx context.Context, records []cty.Record) (int, int, error) {
	return s.importRecords(ctx, records, true)
}

// ImportRecords appends records to the stored data set. Returns (good, bad)
// row counts; bad rows are logged and skipped.
func (s *Store) ImportRecords(ctx context.Context, records []cty.Record) (int, int, error) {
	return s.importRecords(ctx, records, false)
}

func (s *Store) importRecords(ctx context.Context, records []cty.Record, replace bool) (good, bad int, err error) {
	tx, err := s.dbClient.GetDB().BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	if replace {
		for _, tbl := range []string{EntityTable, CallsignTable, CountryTable} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+tbl); err != nil {
				return 0, 0, fmt.Errorf("failed to clear %s: %w", tbl, err)
			}
		}
	}

	entStmt, err := tx.PrepareContext(ctx, insertEntitySQL)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to prepare entity insert: %w", err)
	}
	defer entStmt.Close()
	callStmt, err := tx.PrepareContext(ctx, insertCallsignSQL)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to prepare callsign insert: %w", err)
	}
	defer callStmt.Close()
	countryStmt, err := tx.PrepareContext(ctx, insertCountrySQL)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to prepare country insert: %w", err)
	}
	defer countryStmt.Close()

	for _, rec := range records {
		var rowErr error
		switch rec.Kind {
		case cty.KindCallsign:
			_, rowErr = callStmt.ExecContext(ctx,
				rec.Alias, rec.Priority, rec.Entity, rec.Suffix,
				rec.CQZone, rec.ITUZone, rec.Continent, rec.Lat, rec.Lon,
				rec.GMTOffset, boolToInt(rec.WAEDC))
		case cty.KindEntity, cty.KindAlias:
			_, rowErr = entStmt.ExecContext(ctx,
				rec.Kind, rec.Priority, rec.Entity, rec.Alias, rec.Suffix,
				rec.CQZone, rec.ITUZone, rec.Continent, rec.Lat, rec.Lon,
				rec.GMTOffset, boolToInt(rec.WAEDC))
			if rowErr == nil && rec.Kind == cty.KindEntity {
				_, rowErr = countryStmt.ExecContext(ctx,
					rec.Priority, rec.DXCC, rec.Entity, rec.Country)
			}
		default:
			rowErr = fmt.Errorf("unknown record kind %q", rec.Kind)
		}
		if rowErr != nil {
			bad++
			logging.Warn("store: skipping row %s/%s: %v", rec.Kind, rec.Alias, rowErr)
			continue
		}
		good++
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit import: %w", err)
	}
	logging.Notice("store: imported %d rows (%d skipped)", good, bad)
	return good, bad, nil
}

// SelectAlias returns all prefix rows exactly matching alias, in priority
// order.
func (s *Store) SelectAlias(ctx context.Context, alias string) ([]cty.Record, error) {
	return s.queryRecords(ctx, selectEntityBase+"WHERE e.ALIAS = ? ORDER BY e.PRIORITY ASC",
		strings.ToUpper(alias))
}

// SelectByPrefix returns all prefix rows whose alias starts with pfx, in
// priority order.
func (s *Store) SelectByPrefix(ctx context.Context, pfx string) ([]cty.Record, error) {
	return s.queryRecords(ctx, selectEntityBase+"WHERE e.ALIAS LIKE ? || '%' ORDER BY e.PRIORITY ASC",
		strings.ToUpper(pfx))
}

// SelectCallsign returns all literal-callsign rows exactly matching call, in
// priority order.
func (s *Store) SelectCallsign(ctx context.Context, call string) ([]cty.Record, error) {
	return s.queryRecords(ctx, selectCallsignBase+"WHERE s.CALLSIGN = ? ORDER BY s.PRIORITY ASC",
		strings.ToUpper(call))
}

// SelectEntity returns the ENTITY rows whose primary prefix matches.
func (s *Store) SelectEntity(ctx context.Context, prefix string) ([]cty.Record, error) {
	return s.queryRecords(ctx,
		selectEntityBase+"WHERE e.ENTITY = ? AND e.TYPE = ? ORDER BY e.PRIORITY ASC",
		strings.ToUpper(prefix), cty.KindEntity)
}

// SelectCountry returns the ENTITY rows for a country name.
func (s *Store) SelectCountry(ctx context.Context, country string) ([]cty.Record, error) {
	return s.queryRecords(ctx,
		selectEntityBase+"WHERE c.COUNTRY = ? AND e.TYPE = ? ORDER BY e.PRIORITY ASC",
		strings.ToUpper(country), cty.KindEntity)
}

// SelectDXCC returns the ENTITY rows for a DXCC entity number.
func (s *Store) SelectDXCC(ctx context.Context, number int) ([]cty.Record, error) {
	return s.queryRecords(ctx,
		selectEntityBase+"WHERE c.DXCC = ? AND e.TYPE = ? ORDER BY e.PRIORITY ASC",
		number, cty.KindEntity)
}

// DumpAll returns every stored record, prefix rows first, each table in
// priority order.
func (s *Store) DumpAll(ctx context.Context) ([]cty.Record, error) {
	ents, err := s.queryRecords(ctx, selectEntityBase+"ORDER BY e.PRIORITY ASC, e.ALIAS ASC")
	if err != nil {
		return nil, err
	}
	calls, err := s.queryRecords(ctx, selectCallsignBase+"ORDER BY s.PRIORITY ASC, s.CALLSIGN ASC")
	if err != nil {
		return nil, err
	}
	return append(ents, calls...), nil
}

// Version returns the stored data set version ("ENTITY,COUNTRY" of the
// VERSION pseudo-callsign), or "" when absent.
func (s *Store) Version(ctx context.Context) (string, error) {
	recs, err := s.SelectCallsign(ctx, cty.VersionAlias)
	if err != nil {
		return "", err
	}
	if len(recs) == 0 {
		return "", nil
	}
	return recs[0].Entity + "," + recs[0].Country, nil
}

// ReplayIndex rebuilds an in-memory index purely from the stored rows. The
// result answers lookups identically to an index built from the source
// files.
func (s *Store) ReplayIndex(ctx context.Context) (*dxcc.Index, error) {
	recs, err := s.DumpAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to replay stored records: %w", err)
	}
	return dxcc.NewIndex(recs), nil
}

// ImportAliasLine parses one custom-alias fragment ("entity, tok[,tok...]"),
// attaches the aliases to the stored entity, and returns the number of rows
// added. The entity is found by primary prefix first, then by country name.
func (s *Store) ImportAliasLine(ctx context.Context, p *cty.Parser, line string) (int, error) {
	name, tokens, err := cty.SplitAliasLine(line)
	if err != nil {
		return 0, err
	}

	ents, err := s.SelectEntity(ctx, name)
	if err != nil {
		return 0, err
	}
	if len(ents) == 0 {
		ents, err = s.SelectCountry(ctx, name)
		if err != nil {
			return 0, err
		}
	}
	if len(ents) == 0 {
		return 0, fmt.Errorf("unknown entity %q in alias line", name)
	}

	good := 0
	for _, rec := range p.ParseCustomAliases(ents[0], tokens) {
		var insErr error
		if rec.Kind == cty.KindCallsign {
			insErr = s.InsertCallsignRow(ctx, rec)
		} else {
			insErr = s.InsertEntityRow(ctx, rec)
		}
		if insErr != nil {
			logging.Warn("store: skipping custom alias %s: %v", rec.Alias, insErr)
			continue
		}
		good++
	}
	return good, nil
}

// queryRecords runs a select built on the shared column layout and scans the
// rows back into Records.
func (s *Store) queryRecords(ctx context.Context, query string, args ...interface{}) ([]cty.Record, error) {
	rows, err := s.dbClient.GetDB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("entity query failed: %w", err)
	}
	defer rows.Close()

	var out []cty.Record
	for rows.Next() {
		var rec cty.Record
		var suffix, cont, country sql.NullString
		var dxccNum sql.NullInt64
		var waedc int
		if err := rows.Scan(&rec.Kind, &rec.Priority, &rec.Entity, &rec.Alias, &suffix,
			&rec.CQZone, &rec.ITUZone, &cont, &rec.Lat, &rec.Lon, &rec.GMTOffset,
			&waedc, &country, &dxccNum); err != nil {
			return nil, fmt.Errorf("entity row scan failed: %w", err)
		}
		rec.Suffix = suffix.String
		rec.Continent = cont.String
		rec.Country = country.String
		rec.DXCC = int(dxccNum.Int64)
		rec.WAEDC = waedc != 0
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("entity row iteration failed: %w", err)
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
