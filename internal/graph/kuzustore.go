//go:build cgo

package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kuzu "github.com/kuzudb/go-kuzu"

	"github.com/perfhint/bigo/internal/analyze"
)

// KuzuStore implements the Store interface using KuzuDB as the backend.
// It requires CGO because the go-kuzu driver wraps KuzuDB's C library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path, so analysis indexes survive across sessions.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed by InitSchema.
// Node tables must precede relationship tables.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS File(
		path STRING,
		language STRING,
		loc INT64,
		PRIMARY KEY(path)
	)`,
	`CREATE NODE TABLE IF NOT EXISTS Method(
		id STRING,
		name STRING,
		file_path STRING,
		start_line INT64,
		end_line INT64,
		time_notation STRING,
		time_rank INT64,
		time_confidence INT64,
		space_notation STRING,
		space_confidence INT64,
		data_structures STRING,
		explanation STRING,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS DEFINES(FROM File TO Method)`,
	`CREATE REL TABLE IF NOT EXISTS CALLS(FROM Method TO Method)`,
}

// InitSchema creates all node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// ---------- Write operations ----------

// AddFile inserts a File node.
func (s *KuzuStore) AddFile(_ context.Context, node analyze.FileNode) error {
	return s.exec(
		"CREATE (f:File {path: $path, language: $lang, loc: $loc})",
		map[string]any{
			"path": node.Path,
			"lang": string(node.Language),
			"loc":  int64(node.LOC),
		},
	)
}

// AddMethod inserts a Method node and its DEFINES edge.
func (s *KuzuStore) AddMethod(_ context.Context, rec MethodRecord) error {
	m := rec.Method
	err := s.exec(
		`CREATE (m:Method {
			id: $id,
			name: $name,
			file_path: $fp,
			start_line: $sl,
			end_line: $el,
			time_notation: $tn,
			time_rank: $tr,
			time_confidence: $tc,
			space_notation: $sn,
			space_confidence: $sc,
			data_structures: $ds,
			explanation: $ex
		})`,
		map[string]any{
			"id": methodKey(rec.FilePath, m.Name),
			"name": m.Name,
			"fp":   rec.FilePath,
			"sl":   int64(m.LineStart),
			"el":   int64(m.LineEnd),
			"tn":   string(m.Time.Notation),
			"tr":   int64(m.Time.Notation.Rank()),
			"tc":   int64(m.Time.Confidence),
			"sn":   string(m.Space.Notation),
			"sc":   int64(m.Space.Confidence),
			"ds":   strings.Join(m.Space.DataStructures, ","),
			"ex":   m.Explanation,
		},
	)
	if err != nil {
		return err
	}
	return s.exec(
		`MATCH (f:File {path: $fp}), (m:Method {id: $id})
		 CREATE (f)-[:DEFINES]->(m)`,
		map[string]any{
			"fp": rec.FilePath,
			"id": methodKey(rec.FilePath, m.Name),
		},
	)
}

// AddCall inserts a CALLS edge between two methods in the same file.
func (s *KuzuStore) AddCall(_ context.Context, edge CallEdge) error {
	return s.exec(
		`MATCH (a:Method {id: $src}), (b:Method {id: $dst})
		 CREATE (a)-[:CALLS]->(b)`,
		map[string]any{
			"src": methodKey(edge.FilePath, edge.Caller),
			"dst": methodKey(edge.FilePath, edge.Callee),
		},
	)
}

// ---------- Read operations ----------

const methodColumns = `m.name, m.file_path, m.start_line, m.end_line,
	m.time_notation, m.time_confidence, m.space_notation, m.space_confidence,
	m.data_structures, m.explanation`

// GetMethod retrieves a single Method by file path and name, or nil.
func (s *KuzuStore) GetMethod(_ context.Context, filePath, name string) (*MethodRecord, error) {
	rows, err := s.query(
		"MATCH (m:Method {id: $id}) RETURN "+methodColumns,
		map[string]any{"id": methodKey(filePath, name)},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowToMethod(rows[0]), nil
}

// QueryMethods returns methods whose name contains the query string and
// whose time notation rank meets the minimum.
func (s *KuzuStore) QueryMethods(_ context.Context, queryStr string, minNotation analyze.Notation, limit int) ([]MethodRecord, error) {
	if limit <= 0 {
		limit = 1000
	}
	rows, err := s.query(
		`MATCH (m:Method)
		 WHERE m.name CONTAINS $q AND m.time_rank >= $minRank
		 RETURN `+methodColumns+`
		 LIMIT $lim`,
		map[string]any{
			"q":       queryStr,
			"minRank": int64(minNotation.Rank()),
			"lim":     int64(limit),
		},
	)
	if err != nil {
		return nil, err
	}
	out := make([]MethodRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, *rowToMethod(r))
	}
	return out, nil
}

// Hotspots returns methods ordered worst notation first, then lowest
// confidence.
func (s *KuzuStore) Hotspots(_ context.Context, limit int) ([]MethodRecord, error) {
	if limit <= 0 {
		limit = 1000
	}
	rows, err := s.query(
		`MATCH (m:Method)
		 RETURN `+methodColumns+`
		 ORDER BY m.time_rank DESC, m.time_confidence ASC, m.file_path, m.name
		 LIMIT $lim`,
		map[string]any{"lim": int64(limit)},
	)
	if err != nil {
		return nil, err
	}
	out := make([]MethodRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, *rowToMethod(r))
	}
	return out, nil
}

// Callees returns the direct callees recorded for a method.
func (s *KuzuStore) Callees(_ context.Context, filePath, caller string) ([]string, error) {
	rows, err := s.query(
		`MATCH (a:Method {id: $id})-[:CALLS]->(b:Method) RETURN b.name`,
		map[string]any{"id": methodKey(filePath, caller)},
	)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, toString(r[0]))
	}
	return out, nil
}

// Stats returns counts of files, methods, and call edges.
func (s *KuzuStore) Stats(_ context.Context) (*analyze.Stats, error) {
	files, err := s.countTable("File")
	if err != nil {
		return nil, err
	}
	methods, err := s.countTable("Method")
	if err != nil {
		return nil, err
	}
	calls, err := s.countRel("CALLS")
	if err != nil {
		return nil, err
	}
	return &analyze.Stats{
		FileCount:   files,
		MethodCount: methods,
		CallCount:   calls,
	}, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// countTable returns the number of rows in a node table.
func (s *KuzuStore) countTable(table string) (int, error) {
	// Table name is a fixed internal constant, not user input.
	cypher := fmt.Sprintf("MATCH (n:%s) RETURN count(n)", table)
	rows, err := s.query(cypher, nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// countRel returns the number of edges in a relationship table.
func (s *KuzuStore) countRel(table string) (int, error) {
	cypher := fmt.Sprintf("MATCH ()-[r:%s]->() RETURN count(r)", table)
	rows, err := s.query(cypher, nil)
	if err != nil {
		// Table may not exist yet; treat as zero.
		return 0, nil
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// rowToMethod converts a 10-column result row into a MethodRecord.
// Column order matches methodColumns.
func rowToMethod(r []any) *MethodRecord {
	var dataStructures []string
	if ds := toString(r[8]); ds != "" {
		dataStructures = strings.Split(ds, ",")
	}
	return &MethodRecord{
		FilePath: toString(r[1]),
		Method: analyze.MethodAnalysis{
			Name:      toString(r[0]),
			LineStart: toInt(r[2]),
			LineEnd:   toInt(r[3]),
			Time: analyze.TimeComplexity{
				Notation:   analyze.Notation(toString(r[4])),
				Confidence: toInt(r[5]),
			},
			Space: analyze.SpaceComplexity{
				Notation:       analyze.Notation(toString(r[6])),
				Confidence:     toInt(r[7]),
				DataStructures: dataStructures,
			},
			Explanation: toString(r[9]),
		},
	}
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string).

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
