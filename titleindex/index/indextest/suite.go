// Package indextest provides a re-usable test suite that verifies the
// behavior expected of every index.Indexer implementation.
package indextest

import (
	"sort"

	"github.com/google/uuid"
	gc "gopkg.in/check.v1"
	"golang.org/x/xerrors"

	"wikiracer/titleindex/index"
)

// SuiteBase defines a set of re-usable indexer tests that can be executed
// against any type that implements index.Indexer.
type SuiteBase struct {
	idx index.Indexer
}

// SetIndexer configures the suite to run all tests against the given indexer
// instance.
func (s *SuiteBase) SetIndexer(idx index.Indexer) {
	s.idx = idx
}

func (s *SuiteBase) TestIndexDocumentWithoutID(c *gc.C) {
	err := s.idx.Index(&index.Document{Title: "Barack Obama"})
	c.Assert(xerrors.Is(err, index.ErrMissingID), gc.Equals, true)
}

func (s *SuiteBase) TestIndexAndFindByTitle(c *gc.C) {
	doc := &index.Document{ID: uuid.New(), Title: "Barack Obama"}
	c.Assert(s.idx.Index(doc), gc.IsNil)
	c.Assert(doc.IndexedAt.IsZero(), gc.Equals, false)

	got, err := s.idx.FindByTitle("Barack Obama")
	c.Assert(err, gc.IsNil)
	c.Assert(got.ID, gc.Equals, doc.ID)
	c.Assert(got.Title, gc.Equals, "Barack Obama")
}

func (s *SuiteBase) TestFindByTitleNotFound(c *gc.C) {
	_, err := s.idx.FindByTitle("Never Indexed")
	c.Assert(xerrors.Is(err, index.ErrNotFound), gc.Equals, true)
}

func (s *SuiteBase) TestSearchMatch(c *gc.C) {
	s.indexTitles(c, "Barack Obama", "Donald Trump", "Michelle Obama")

	got := s.search(c, index.Query{Type: index.QueryTypeMatch, Expression: "Obama"})
	sort.Strings(got)
	c.Assert(got, gc.DeepEquals, []string{"Barack Obama", "Michelle Obama"})
}

func (s *SuiteBase) TestSearchFuzzy(c *gc.C) {
	s.indexTitles(c, "Barack Obama", "Donald Trump")

	got := s.search(c, index.Query{Type: index.QueryTypeFuzzy, Expression: "Barack Obma"})
	c.Assert(contains(got, "Barack Obama"), gc.Equals, true)
}

func (s *SuiteBase) TestSearchPagination(c *gc.C) {
	// More documents than one iterator batch.
	for i := 0; i < 25; i++ {
		doc := &index.Document{ID: uuid.New(), Title: "Common Term " + uuid.NewString()}
		c.Assert(s.idx.Index(doc), gc.IsNil)
	}

	got := s.search(c, index.Query{Type: index.QueryTypeMatch, Expression: "Common"})
	c.Assert(got, gc.HasLen, 25)
}

func (s *SuiteBase) indexTitles(c *gc.C, titles ...string) {
	for _, title := range titles {
		c.Assert(s.idx.Index(&index.Document{ID: uuid.New(), Title: title}), gc.IsNil)
	}
}

func (s *SuiteBase) search(c *gc.C, q index.Query) []string {
	it, err := s.idx.Search(q)
	c.Assert(err, gc.IsNil)

	var titles []string
	for it.Next() {
		titles = append(titles, it.Document().Title)
	}
	c.Assert(it.Error(), gc.IsNil)
	c.Assert(it.Close(), gc.IsNil)
	return titles
}

func contains(list []string, want string) bool {
	for _, got := range list {
		if got == want {
			return true
		}
	}
	return false
}
