package db

import (
	"database/sql"
	"os"
	"testing"

	gc "gopkg.in/check.v1"

	"wikiracer/linkcache/cachetest"
)

var _ = gc.Suite(new(DbStoreTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type DbStoreTestSuite struct {
	cachetest.SuiteBase
	db *sql.DB
}

func (s *DbStoreTestSuite) SetUpSuite(c *gc.C) {
	dsn := os.Getenv("CDB_DSN")
	if dsn == "" {
		c.Skip("Missing CDB_DSN envvar; skipping db store test suite")
	}

	store, err := NewDBStore(dsn)
	c.Assert(err, gc.IsNil)
	s.SetStore(store)
	s.db = store.db
}

func (s *DbStoreTestSuite) SetUpTest(c *gc.C) {
	s.flushDB(c)
}

func (s *DbStoreTestSuite) TearDownSuite(c *gc.C) {
	if s.db != nil {
		s.flushDB(c)
		c.Assert(s.db.Close(), gc.IsNil)
	}
}

func (s *DbStoreTestSuite) flushDB(c *gc.C) {
	_, err := s.db.Exec("DELETE FROM resolved_links")
	c.Assert(err, gc.IsNil)
}
