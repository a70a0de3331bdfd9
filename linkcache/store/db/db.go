package db

import (
	"database/sql"

	"github.com/lib/pq"
	"golang.org/x/xerrors"

	"wikiracer/linkcache"
)

var (
	upsertLinksQuery = `
INSERT INTO resolved_links (title, links, resolved_at) VALUES ($1, $2, NOW())
ON CONFLICT (title) DO UPDATE SET links=$2, resolved_at=NOW()
`
	getLinksQuery = "SELECT links FROM resolved_links WHERE title=$1"

	// Compile-time check for ensuring DBStore implements Store.
	_ linkcache.Store = (*DBStore)(nil)
)

// DBStore implements a link cache store that persists resolved link sets to
// a db instance, surviving process restarts.
type DBStore struct {
	db *sql.DB
}

// NewDBStore returns a DBStore instance that connects to the db instance
// specified by dsn.
func NewDBStore(dsn string) (*DBStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	return &DBStore{db: db}, nil
}

// Close terminates the connection to the backing db instance.
func (s *DBStore) Close() error {
	return s.db.Close()
}

// Get returns the stored link set for the specified title.
func (s *DBStore) Get(title string) ([]string, bool, error) {
	row := s.db.QueryRow(getLinksQuery, title)

	var links []string
	if err := row.Scan(pq.Array(&links)); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}

		return nil, false, xerrors.Errorf("get links: %w", err)
	}

	return links, true, nil
}

// Put stores the link set for the specified title, replacing any existing
// entry.
func (s *DBStore) Put(title string, links []string) error {
	if _, err := s.db.Exec(upsertLinksQuery, title, pq.Array(links)); err != nil {
		return xerrors.Errorf("upsert links: %w", err)
	}

	return nil
}
