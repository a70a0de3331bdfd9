package memory

import (
	"testing"

	gc "gopkg.in/check.v1"

	"wikiracer/linkcache/cachetest"
)

var _ = gc.Suite(new(InMemoryStoreTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type InMemoryStoreTestSuite struct {
	cachetest.SuiteBase
}

func (s *InMemoryStoreTestSuite) SetUpTest(c *gc.C) {
	s.SetStore(NewInMemoryStore())
}
