package db

import (
	"bytes"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
	_ "modernc.org/sqlite"

	"github.com/saranrapjs/ixbrlparse/pkg/ixbrl"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// DB wraps a SQLite database connection storing parsed documents
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// Record describes a stored document.
type Record struct {
	ID          string    `json:"id"`
	Hash        string    `json:"hash"`
	Source      string    `json:"source"`
	FileType    string    `json:"filetype"`
	Schema      string    `json:"schema"`
	CompanyName string    `json:"company_name"`
	Facts       int       `json:"facts"`
	Errors      int       `json:"errors"`
	Size        int       `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New creates a new database connection and initializes tables
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, now: time.Now}
	if err := db.createTables(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// createTables creates the required tables if they don't exist
func (db *DB) createTables() error {
	// Timestamps are RFC3339 text written by the application.
	documentsSQL := `
		CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			hash TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL DEFAULT '',
			filetype TEXT NOT NULL,
			schema_ref TEXT NOT NULL DEFAULT '',
			company_name TEXT NOT NULL DEFAULT '',
			fact_count INTEGER NOT NULL DEFAULT 0,
			error_count INTEGER NOT NULL DEFAULT 0,
			size INTEGER NOT NULL DEFAULT 0,
			source_xz BLOB NOT NULL,
			data BLOB NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
	`
	if _, err := db.conn.Exec(documentsSQL); err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}

	indexSQL := `CREATE INDEX IF NOT EXISTS idx_documents_source ON documents(source);`
	if _, err := db.conn.Exec(indexSQL); err != nil {
		return fmt.Errorf("failed to create source index: %w", err)
	}

	factsSQL := `
		CREATE TABLE IF NOT EXISTS facts (
			document_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			schema_uri TEXT NOT NULL,
			name TEXT NOT NULL,
			row_json BLOB NOT NULL,
			PRIMARY KEY (document_id, position)
		);
	`
	if _, err := db.conn.Exec(factsSQL); err != nil {
		return fmt.Errorf("failed to create facts table: %w", err)
	}

	searchSQL := `
		CREATE VIRTUAL TABLE IF NOT EXISTS concept_search USING fts5(
			concept,
			company_name,
			document_id UNINDEXED
		);
	`
	if _, err := db.conn.Exec(searchSQL); err != nil {
		return fmt.Errorf("failed to create concept_search table: %w", err)
	}

	return nil
}

// Hash returns the hex blake3 digest documents are deduplicated by.
func Hash(src []byte) string {
	sum := blake3.Sum256(src)
	return hex.EncodeToString(sum[:])
}

func compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz writer: %w", err)
	}
	if _, err := w.Write(src); err != nil {
		return nil, fmt.Errorf("failed to compress source: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress source: %w", err)
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress source: %w", err)
	}
	return src, nil
}

// StoreDocument stores a parsed document with its source, its JSON
// projection and one row per fact. A document whose source was stored
// before keeps its id; only its source label and updated_at change.
func (db *DB) StoreDocument(source string, src []byte, doc *ixbrl.Document, companyName string) (*Record, error) {
	hash := Hash(src)
	now := db.now().UTC().Format(time.RFC3339)

	existing, err := db.FindByHash(hash)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		query := `UPDATE documents SET source = ?, updated_at = ? WHERE id = ?`
		if _, err := db.conn.Exec(query, source, now, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to touch document: %w", err)
		}
		return db.GetDocument(existing.ID)
	}

	packed, err := compress(src)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc.ToJSON())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	rows := doc.ToTable(ixbrl.FieldsAll)

	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	query := `
		INSERT INTO documents (id, hash, source, filetype, schema_ref, company_name, fact_count, error_count, size, source_xz, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(query, id, hash, source, string(doc.FileType), doc.Schema, companyName,
		len(rows), len(doc.Errors), len(src), packed, data, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO facts (document_id, position, schema_uri, name, row_json) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()
	for i, row := range rows {
		b, err := json.Marshal(row)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal fact row: %w", err)
		}
		if _, err := stmt.Exec(id, i, row["schema"], row["name"], b); err != nil {
			return nil, fmt.Errorf("failed to store fact row: %w", err)
		}
	}

	search, err := tx.Prepare(`INSERT INTO concept_search (concept, company_name, document_id) VALUES (?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer search.Close()
	for _, concept := range doc.Concepts() {
		if _, err := search.Exec(concept, companyName, id); err != nil {
			return nil, fmt.Errorf("failed to index concept: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return db.GetDocument(id)
}

const recordColumns = `id, hash, source, filetype, schema_ref, company_name, fact_count, error_count, size, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	var r Record
	var created, updated string
	if err := s.Scan(&r.ID, &r.Hash, &r.Source, &r.FileType, &r.Schema, &r.CompanyName,
		&r.Facts, &r.Errors, &r.Size, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if r.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return nil, fmt.Errorf("failed to parse timestamp: %w", err)
	}
	if r.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
		return nil, fmt.Errorf("failed to parse timestamp: %w", err)
	}
	return &r, nil
}

func (db *DB) findOne(where string, arg any) (*Record, error) {
	r, err := scanRecord(db.conn.QueryRow("SELECT "+recordColumns+" FROM documents WHERE "+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %v: %w", arg, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return r, nil
}

// GetDocument retrieves a stored document's metadata by id.
func (db *DB) GetDocument(id string) (*Record, error) {
	return db.findOne("id = ?", id)
}

// FindByHash retrieves the document whose source has the given hash.
func (db *DB) FindByHash(hash string) (*Record, error) {
	return db.findOne("hash = ?", hash)
}

// FindBySource retrieves the most recently updated document stored
// under a source label, usually its URL.
func (db *DB) FindBySource(source string) (*Record, error) {
	return db.findOne("source = ? ORDER BY updated_at DESC LIMIT 1", source)
}

// GetJSON returns the stored JSON projection of a document.
func (db *DB) GetJSON(id string) ([]byte, error) {
	var data []byte
	err := db.conn.QueryRow("SELECT data FROM documents WHERE id = ?", id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return data, nil
}

// GetSource returns the original document bytes.
func (db *DB) GetSource(id string) ([]byte, error) {
	var packed []byte
	err := db.conn.QueryRow("SELECT source_xz FROM documents WHERE id = ?", id).Scan(&packed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}
	return decompress(packed)
}

// GetRows returns the fact rows of a document in document order.
func (db *DB) GetRows(id string) ([]ixbrl.Row, error) {
	rows, err := db.conn.Query("SELECT row_json FROM facts WHERE document_id = ? ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query facts: %w", err)
	}
	defer rows.Close()

	var out []ixbrl.Row
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan fact row: %w", err)
		}
		var row ixbrl.Row
		if err := json.Unmarshal(data, &row); err != nil {
			return nil, fmt.Errorf("failed to unmarshal fact row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListDocuments returns every stored document, most recently updated first.
func (db *DB) ListDocuments() ([]*Record, error) {
	rows, err := db.conn.Query("SELECT " + recordColumns + " FROM documents ORDER BY updated_at DESC, company_name")
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteDocument removes a document and its facts.
func (db *DB) DeleteDocument(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()
	for _, query := range []string{
		"DELETE FROM facts WHERE document_id = ?",
		"DELETE FROM concept_search WHERE document_id = ?",
		"DELETE FROM documents WHERE id = ?",
	} {
		if _, err := tx.Exec(query, id); err != nil {
			return fmt.Errorf("failed to delete document: %w", err)
		}
	}
	return tx.Commit()
}

// IsStale checks whether the document stored for source is missing or
// older than maxAge.
func (db *DB) IsStale(source string, maxAge time.Duration) (bool, error) {
	r, err := db.FindBySource(source)
	if errors.Is(err, ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return db.now().Sub(r.UpdatedAt) > maxAge, nil
}

// SearchResult is a concept reported by a stored document.
type SearchResult struct {
	Concept     string `json:"concept"`
	CompanyName string `json:"company_name"`
	DocumentID  string `json:"document_id"`
}

// SearchConcepts performs a prefix search over the concept names and
// company names of stored documents.
func (db *DB) SearchConcepts(query string, limit int) ([]SearchResult, error) {
	sqlQuery := `
		SELECT concept, company_name, document_id
		FROM concept_search
		WHERE concept_search MATCH ?
		ORDER BY rank
		LIMIT ?
	`
	rows, err := db.conn.Query(sqlQuery, ftsPrefix(query), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search concepts: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Concept, &r.CompanyName, &r.DocumentID); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ftsPrefix quotes the query as an FTS5 string so that prefixes such as
// "us-gaap:Rev" are not read as column filters, and adds the prefix star.
func ftsPrefix(query string) string {
	return `"` + strings.ReplaceAll(query, `"`, `""`) + `"*`
}
