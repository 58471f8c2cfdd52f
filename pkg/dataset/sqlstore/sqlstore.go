// Package sqlstore keeps the question archive in an SQLite table
package sqlstore

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
	// sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/zpam/naive-classifier/pkg/dataset"
	"github.com/zpam/naive-classifier/pkg/jeopardy"
)

const (
	createTableStmt = `CREATE TABLE IF NOT EXISTS %s (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category TEXT,
		air_date TEXT NOT NULL DEFAULT '',
		question TEXT,
		value TEXT,
		answer TEXT,
		round TEXT NOT NULL,
		show_number TEXT NOT NULL DEFAULT '')`
	insertStmt = `INSERT INTO %s (category, air_date, question, value, answer, round, show_number)
		VALUES (:category, :air_date, :question, :value, :answer, :round, :show_number)`
	selectStmt = `SELECT category, air_date, question, value, answer, round, show_number FROM %s ORDER BY id`
	countStmt  = `SELECT COUNT(*) FROM %s`
	deleteStmt = `DELETE FROM %s`
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config holds SQLite settings
type Config struct {
	Path  string `yaml:"path"`
	Table string `yaml:"table"`
}

// DefaultConfig returns default SQLite settings
func DefaultConfig() *Config {
	return &Config{
		Path:  "questions.db",
		Table: "questions",
	}
}

// Store is a dataset.Store backed by an SQLite table
type Store struct {
	db    *sqlx.DB
	table string
}

var _ dataset.Store = (*Store)(nil)

// New opens the database file and creates the questions table if needed
func New(ctx context.Context, config *Config) (*Store, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if !tableName.MatchString(config.Table) {
		return nil, errors.Errorf("invalid table name %q", config.Table)
	}

	db, err := sqlx.Open("sqlite3", config.Path)
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite database")
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf(createTableStmt, config.Table)); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating questions table")
	}

	return &Store{db: db, table: config.Table}, nil
}

// Save inserts questions in a single transaction
func (s *Store) Save(ctx context.Context, questions []*jeopardy.Question) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamedContext(ctx, fmt.Sprintf(insertStmt, s.table))
	if err != nil {
		return errors.Wrap(err, "preparing insert statement")
	}
	defer stmt.Close()

	for i, q := range questions {
		if _, err := stmt.ExecContext(ctx, q); err != nil {
			return errors.Wrapf(err, "inserting question %d", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing questions")
	}
	return nil
}

// Load implements dataset.Source
func (s *Store) Load(ctx context.Context) ([]*jeopardy.Question, error) {
	var questions []*jeopardy.Question
	if err := s.db.SelectContext(ctx, &questions, fmt.Sprintf(selectStmt, s.table)); err != nil {
		return nil, errors.Wrap(err, "loading questions")
	}
	return questions, nil
}

// Count returns the number of stored questions
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, fmt.Sprintf(countStmt, s.table)); err != nil {
		return 0, errors.Wrap(err, "counting questions")
	}
	return n, nil
}

// Reset deletes every stored question
func (s *Store) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(deleteStmt, s.table))
	return err
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
