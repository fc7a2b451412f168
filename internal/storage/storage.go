// Package storage keeps the live task list in a private in-memory SQLite
// database. Nothing is written to disk and the data ends with the process.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"timely/internal/task"
)

var (
	ErrEmptyName       = errors.New("task name is empty")
	ErrInvalidCategory = errors.New("invalid category")
	ErrDuplicateID     = errors.New("task id already exists")
	ErrNotFound        = errors.New("task not found")
)

type Store struct {
	db     *sql.DB
	logger *log.Logger
}

type Option func(*Store)

// WithLogger sets the logger used for store mutations.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func Open(opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", memoryDSN())
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	s := &Store{db: db, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	due TEXT DEFAULT NULL,
	important INTEGER NOT NULL DEFAULT 0
);`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Add appends t to the end of the list.
func (s *Store) Add(t task.Task) error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if !t.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	exists, err := s.exists(t.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
	}

	dueStr := sql.NullString{}
	if t.Due.Valid {
		dueStr = sql.NullString{String: t.Due.Time.Format(time.RFC3339Nano), Valid: true}
	}
	imp := 0
	if t.Important {
		imp = 1
	}
	_, err = s.db.Exec(`INSERT INTO tasks (id, name, category, due, important) VALUES (?, ?, ?, ?, ?);`,
		t.ID.String(), t.Name, string(t.Category), dueStr, imp)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	s.logger.Debug("task added", "id", t.ID, "name", t.Name, "category", t.Category, "important", t.Important)
	return nil
}

// Remove deletes every task with the given id. An unknown id is not an error.
func (s *Store) Remove(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?;`, id.String())
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		s.logger.Warn("task removed, row count unavailable", "id", id, "err", err)
		return nil
	}
	s.logger.Debug("task removed", "id", id, "rows", n)
	return nil
}

// List returns all live tasks in insertion order.
func (s *Store) List() ([]task.Task, error) {
	rows, err := s.db.Query(`SELECT id, name, category, due, important FROM tasks ORDER BY seq;`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *Store) Get(id uuid.UUID) (task.Task, error) {
	row := s.db.QueryRow(`SELECT id, name, category, due, important FROM tasks WHERE id = ?;`, id.String())
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, err
}

func (s *Store) exists(id uuid.UUID) (bool, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM tasks WHERE id = ?;`, id.String()).Scan(&n); err != nil {
		return false, fmt.Errorf("lookup task: %w", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(sc scanner) (task.Task, error) {
	var t task.Task
	var idStr, category string
	var dueStr sql.NullString
	var imp int
	if err := sc.Scan(&idStr, &t.Name, &category, &dueStr, &imp); err != nil {
		return task.Task{}, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return task.Task{}, fmt.Errorf("parse task id %q: %w", idStr, err)
	}
	t.ID = id
	t.Category = task.Category(category)
	t.Important = imp == 1
	if dueStr.Valid {
		// The stored offset is kept so the calendar day survives the round trip.
		parsed, err := time.Parse(time.RFC3339Nano, dueStr.String)
		if err != nil {
			return task.Task{}, fmt.Errorf("parse due date of task %s: %w", idStr, err)
		}
		t.Due = task.DueOn(parsed)
	}
	return t, nil
}

func memoryDSN() string {
	u := url.URL{
		Scheme: "file",
		Opaque: ":memory:",
	}
	q := u.Query()
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
