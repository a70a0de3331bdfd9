// Package cachetest provides a re-usable test suite that verifies the
// behavior expected of every linkcache.Store implementation.
package cachetest

import (
	gc "gopkg.in/check.v1"

	"wikiracer/linkcache"
)

// SuiteBase defines a set of re-usable store tests that can be executed
// against any type that implements linkcache.Store.
type SuiteBase struct {
	s linkcache.Store
}

// SetStore configures the suite to run all tests against the given store
// instance.
func (s *SuiteBase) SetStore(store linkcache.Store) {
	s.s = store
}

func (s *SuiteBase) TestGetMissingTitle(c *gc.C) {
	links, ok, err := s.s.Get("Never Stored")
	c.Assert(err, gc.IsNil)
	c.Assert(ok, gc.Equals, false)
	c.Assert(links, gc.HasLen, 0)
}

func (s *SuiteBase) TestPutGetRoundtrip(c *gc.C) {
	err := s.s.Put("Lindsay Lohan", []string{"Donald Trump", "New York City"})
	c.Assert(err, gc.IsNil)

	links, ok, err := s.s.Get("Lindsay Lohan")
	c.Assert(err, gc.IsNil)
	c.Assert(ok, gc.Equals, true)
	c.Assert(links, gc.DeepEquals, []string{"Donald Trump", "New York City"})
}

func (s *SuiteBase) TestPutReplacesExistingEntry(c *gc.C) {
	c.Assert(s.s.Put("X", []string{"A"}), gc.IsNil)
	c.Assert(s.s.Put("X", []string{"B", "C"}), gc.IsNil)

	links, ok, err := s.s.Get("X")
	c.Assert(err, gc.IsNil)
	c.Assert(ok, gc.Equals, true)
	c.Assert(links, gc.DeepEquals, []string{"B", "C"})
}

func (s *SuiteBase) TestEmptyLinkSetIsAHit(c *gc.C) {
	c.Assert(s.s.Put("Dead End", nil), gc.IsNil)

	links, ok, err := s.s.Get("Dead End")
	c.Assert(err, gc.IsNil)
	c.Assert(ok, gc.Equals, true)
	c.Assert(links, gc.HasLen, 0)
}

func (s *SuiteBase) TestKeysArePreRedirectTitles(c *gc.C) {
	// Two spellings of the same article are distinct entries.
	c.Assert(s.s.Put("USA", []string{"A"}), gc.IsNil)

	_, ok, err := s.s.Get("United States")
	c.Assert(err, gc.IsNil)
	c.Assert(ok, gc.Equals, false)
}

func (s *SuiteBase) TestStoredEntriesAreIsolated(c *gc.C) {
	in := []string{"A", "B"}
	c.Assert(s.s.Put("X", in), gc.IsNil)
	in[0] = "mutated"

	links, _, err := s.s.Get("X")
	c.Assert(err, gc.IsNil)
	c.Assert(links, gc.DeepEquals, []string{"A", "B"})

	links[1] = "mutated"
	links, _, err = s.s.Get("X")
	c.Assert(err, gc.IsNil)
	c.Assert(links, gc.DeepEquals, []string{"A", "B"})
}
