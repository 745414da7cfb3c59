package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const maxTitleLen = 200

var ErrTitleTooLong = errors.New("title must be at most 200 characters")

type Entry struct {
	ID        int
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
}

type MonthCount struct {
	Month string
	Count int
}

type TagCount struct {
	Tag   string
	Count int
}

type Analytics struct {
	Total   int
	Monthly []MonthCount
	TopTags []TagCount
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
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
CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at TEXT NOT NULL
);`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	return s.ensureEntryColumns()
}

func (s *Store) ensureEntryColumns() error {
	required := map[string]string{
		"tags": "ALTER TABLE entries ADD COLUMN tags TEXT NOT NULL DEFAULT '[]';",
	}
	existing := map[string]struct{}{}
	rows, err := s.db.Query(`PRAGMA table_info(entries);`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			rows.Close()
			return err
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()
	for col, alter := range required {
		if _, ok := existing[col]; ok {
			continue
		}
		if _, err := s.db.Exec(alter); err != nil {
			return err
		}
	}
	return nil
}

// AddEntry stores a new entry with tags derived from its content.
func (s *Store) AddEntry(title, content string) (Entry, error) {
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(content) == "" {
		return Entry{}, errors.New("title and content are required")
	}
	if len([]rune(title)) > maxTitleLen {
		return Entry{}, ErrTitleTooLong
	}
	tags := ExtractTags(content)
	encoded, err := json.Marshal(tags)
	if err != nil {
		return Entry{}, err
	}
	created := s.now().UTC()
	res, err := s.db.Exec(`INSERT INTO entries (title, content, tags, created_at) VALUES (?, ?, ?, ?);`,
		title, content, string(encoded), created.Format(time.RFC3339))
	if err != nil {
		return Entry{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, err
	}
	return Entry{ID: int(id), Title: title, Content: content, Tags: tags, CreatedAt: created.Truncate(time.Second)}, nil
}

// Recent returns up to limit entries, newest first. A limit <= 0 returns all.
func (s *Store) Recent(limit int) ([]Entry, error) {
	query := `SELECT id, title, content, tags, created_at FROM entries ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.queryEntries(query+";", args...)
}

func (s *Store) Get(id int) (Entry, error) {
	entries, err := s.queryEntries(`SELECT id, title, content, tags, created_at FROM entries WHERE id = ?;`, id)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, sql.ErrNoRows
	}
	return entries[0], nil
}

// Search matches query against title and content. date, when it parses as
// YYYY-MM-DD, restricts results to that UTC day; otherwise it is ignored.
func (s *Store) Search(query, date string) ([]Entry, error) {
	var where []string
	var args []any
	if q := strings.TrimSpace(query); q != "" {
		where = append(where, `(instr(lower(content), lower(?)) > 0 OR instr(lower(title), lower(?)) > 0)`)
		args = append(args, q, q)
	}
	if day, err := time.Parse("2006-01-02", strings.TrimSpace(date)); err == nil {
		where = append(where, `substr(created_at, 1, 10) = ?`)
		args = append(args, day.Format("2006-01-02"))
	}
	stmt := `SELECT id, title, content, tags, created_at FROM entries`
	if len(where) > 0 {
		stmt += ` WHERE ` + strings.Join(where, " AND ")
	}
	stmt += ` ORDER BY created_at DESC, id DESC;`
	return s.queryEntries(stmt, args...)
}

func (s *Store) Analytics() (Analytics, error) {
	entries, err := s.Recent(0)
	if err != nil {
		return Analytics{}, err
	}
	months := map[string]int{}
	tags := map[string]int{}
	for _, e := range entries {
		months[e.CreatedAt.Format("2006-01")]++
		for _, tag := range e.Tags {
			tags[tag]++
		}
	}
	a := Analytics{Total: len(entries)}
	for month, n := range months {
		a.Monthly = append(a.Monthly, MonthCount{Month: month, Count: n})
	}
	sort.Slice(a.Monthly, func(i, j int) bool { return a.Monthly[i].Month < a.Monthly[j].Month })
	for tag, n := range tags {
		a.TopTags = append(a.TopTags, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(a.TopTags, func(i, j int) bool {
		if a.TopTags[i].Count == a.TopTags[j].Count {
			return a.TopTags[i].Tag < a.TopTags[j].Tag
		}
		return a.TopTags[i].Count > a.TopTags[j].Count
	})
	if len(a.TopTags) > 10 {
		a.TopTags = a.TopTags[:10]
	}
	return a, nil
}

func (s *Store) queryEntries(query string, args ...any) ([]Entry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var tagsStr, createdStr string
		if err := rows.Scan(&e.ID, &e.Title, &e.Content, &tagsStr, &createdStr); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tagsStr), &e.Tags); err != nil {
			e.Tags = nil
		}
		if created, err := time.Parse(time.RFC3339, createdStr); err == nil {
			e.CreatedAt = created
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
