// Package dataset owns the season sheet: a CSV of per-player season rows
// loaded once at startup into an in-memory sqlite database. All reads go
// through SQL so filtering and ordering stay in one place.
package dataset

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	_ "github.com/glebarez/go-sqlite"
)

// csvColumns maps sheet column headers to table columns. Text columns are
// stored as-is; everything else is coerced to a number or NULL, matching
// how the sheet is cleaned upstream.
var csvColumns = map[string]string{
	"Comp":   "comp",
	"Player": "player",
	"Squad":  "squad",
	"Pos":    "pos",

	"Age":      "age",
	"Min":      "min",
	"90s":      "nineties",
	"Gls":      "gls",
	"Ast":      "ast",
	"xG":       "xg",
	"xAG":      "xag",
	"PrgP":     "prgp",
	"PrgC":     "prgc",
	"KP":       "kp",
	"SCA90":    "sca90",
	"Tkl+Int":  "tkl_int",
	"Touches":  "touches",
	"Cmp%":     "cmp_pct",

	// Touch share by pitch third (possession table)
	"Def 3rd_stats_possession": "touch_def",
	"Mid 3rd_stats_possession": "touch_mid",
	"Att 3rd_stats_possession": "touch_att",

	// Tackle share by pitch third
	"Def 3rd": "tkl_def",
	"Mid 3rd": "tkl_mid",
	"Att 3rd": "tkl_att",
}

var textColumns = map[string]bool{
	"comp": true, "player": true, "squad": true, "pos": true,
}

const schema = `
CREATE TABLE players (
	comp TEXT NOT NULL DEFAULT '',
	player TEXT NOT NULL DEFAULT '',
	squad TEXT NOT NULL DEFAULT '',
	pos TEXT NOT NULL DEFAULT '',
	age REAL,
	min REAL,
	nineties REAL,
	gls REAL,
	ast REAL,
	xg REAL,
	xag REAL,
	prgp REAL,
	prgc REAL,
	kp REAL,
	sca90 REAL,
	tkl_int REAL,
	touches REAL,
	cmp_pct REAL,
	touch_def REAL,
	touch_mid REAL,
	touch_att REAL,
	tkl_def REAL,
	tkl_mid REAL,
	tkl_att REAL
);
CREATE INDEX idx_players_pool ON players (comp, pos);
`

// Row is one player-season row. Missing numeric cells are NaN, which the
// stats math treats the same way the source sheet does.
type Row struct {
	Comp   string
	Player string
	Squad  string
	Pos    string

	Age      float64
	Min      float64
	Nineties float64

	Gls     float64
	Ast     float64
	XG      float64
	XAG     float64
	PrgP    float64
	PrgC    float64
	KP      float64
	SCA90   float64
	TklInt  float64
	Touches float64
	CmpPct  float64

	TouchDef float64
	TouchMid float64
	TouchAtt float64
	TklDef   float64
	TklMid   float64
	TklAtt   float64
}

// Metric returns a stat by its sheet column name.
func (r *Row) Metric(col string) float64 {
	switch col {
	case "Gls":
		return r.Gls
	case "Ast":
		return r.Ast
	case "xG":
		return r.XG
	case "xAG":
		return r.XAG
	case "PrgP":
		return r.PrgP
	case "PrgC":
		return r.PrgC
	case "KP":
		return r.KP
	case "SCA90":
		return r.SCA90
	case "Tkl+Int":
		return r.TklInt
	case "Touches":
		return r.Touches
	case "Cmp%":
		return r.CmpPct
	}
	return math.NaN()
}

// Store serves league, position and pool queries over the loaded sheet.
type Store struct {
	db   *sql.DB
	rows int
}

// Open creates an empty in-memory store.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One in-memory database, one connection. More would see empty schemas.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Rows reports how many player rows were loaded.
func (s *Store) Rows() int {
	return s.rows
}

// LoadCSV reads the season sheet at path into the store and returns the
// number of rows loaded. Numeric cells that fail to parse become NULL.
func (s *Store) LoadCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}

	// Map CSV field index -> table column, skipping columns we don't keep
	type colRef struct {
		idx  int
		name string
	}
	var cols []colRef
	for i, h := range header {
		if name, ok := csvColumns[strings.TrimSpace(h)]; ok {
			cols = append(cols, colRef{idx: i, name: name})
		}
	}
	if len(cols) == 0 {
		return 0, fmt.Errorf("dataset %s has none of the expected columns", path)
	}

	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
		marks[i] = "?"
	}
	insert := fmt.Sprintf("INSERT INTO players (%s) VALUES (%s)",
		strings.Join(names, ", "), strings.Join(marks, ", "))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read row %d: %w", count+1, err)
		}

		args := make([]any, len(cols))
		for i, c := range cols {
			var cell string
			if c.idx < len(record) {
				cell = strings.TrimSpace(record[c.idx])
			}
			if textColumns[c.name] {
				args[i] = cell
				continue
			}
			if v, err := strconv.ParseFloat(cell, 64); err == nil {
				args[i] = v
			} else {
				args[i] = nil
			}
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", count+1, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	s.rows = count
	return count, nil
}

// Leagues lists distinct competitions, sorted.
func (s *Store) Leagues(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "comp")
}

// Positions lists distinct positions, sorted.
func (s *Store) Positions(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "pos")
}

func (s *Store) distinct(ctx context.Context, col string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT DISTINCT %s FROM players WHERE %s != '' ORDER BY %s", col, col, col))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Pool returns the cohort for a league under the position and minimum
// nineties filters, ordered by squad then player. pos "ALL" (or empty)
// matches every position. Rows with no recorded nineties count as zero for
// the threshold, same as the source sheet's fillna.
func (s *Store) Pool(ctx context.Context, league, pos string, min90s float64) ([]Row, error) {
	query := `
		SELECT comp, player, squad, pos, age, min, nineties,
		       gls, ast, xg, xag, prgp, prgc, kp, sca90, tkl_int, touches, cmp_pct,
		       touch_def, touch_mid, touch_att, tkl_def, tkl_mid, tkl_att
		FROM players
		WHERE comp = ? AND COALESCE(nineties, 0) >= ?
	`
	args := []any{league, min90s}
	if pos != "" && pos != "ALL" {
		query += " AND pos = ?"
		args = append(args, pos)
	}
	query += " ORDER BY squad, player"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		n := make([]sql.NullFloat64, 20)
		if err := rows.Scan(
			&row.Comp, &row.Player, &row.Squad, &row.Pos,
			&n[0], &n[1], &n[2], &n[3], &n[4], &n[5], &n[6], &n[7], &n[8], &n[9],
			&n[10], &n[11], &n[12], &n[13], &n[14], &n[15], &n[16], &n[17], &n[18], &n[19],
		); err != nil {
			return nil, err
		}
		row.Age, row.Min, row.Nineties = nullable(n[0]), nullable(n[1]), nullable(n[2])
		row.Gls, row.Ast, row.XG, row.XAG = nullable(n[3]), nullable(n[4]), nullable(n[5]), nullable(n[6])
		row.PrgP, row.PrgC, row.KP, row.SCA90 = nullable(n[7]), nullable(n[8]), nullable(n[9]), nullable(n[10])
		row.TklInt, row.Touches, row.CmpPct = nullable(n[11]), nullable(n[12]), nullable(n[13])
		row.TouchDef, row.TouchMid, row.TouchAtt = nullable(n[14]), nullable(n[15]), nullable(n[16])
		row.TklDef, row.TklMid, row.TklAtt = nullable(n[17]), nullable(n[18]), nullable(n[19])
		out = append(out, row)
	}
	return out, rows.Err()
}

func nullable(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
