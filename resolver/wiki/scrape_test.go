package wiki

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	gc "gopkg.in/check.v1"
	"golang.org/x/xerrors"

	"wikiracer/resolver"
)

var _ = gc.Suite(new(ScrapeResolverTestSuite))

type ScrapeResolverTestSuite struct {
	srv     *httptest.Server
	handler http.HandlerFunc
}

func (s *ScrapeResolverTestSuite) SetUpTest(c *gc.C) {
	s.handler = nil
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handler(w, r)
	}))
}

func (s *ScrapeResolverTestSuite) TearDownTest(c *gc.C) {
	s.srv.Close()
}

func (s *ScrapeResolverTestSuite) TestResolveLinks(c *gc.C) {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		c.Check(r.URL.Path, gc.Equals, "/wiki/Donald Trump")
		fmt.Fprint(w, `<html><body>
			<p>Some <a href="/wiki/Barack_Obama">Barack Obama</a> text and
			a <a href="/wiki/New_York_City">link</a> plus an external
			<a href="https://example.com/page">anchor</a> and a duplicate
			<a href="/wiki/Barack_Obama">mention</a>.</p>
			<a href="/wiki/File:Portrait.jpg">namespace page</a>
			<a href="/wiki/Barack_Obama#Early_life">fragment link</a>
		</body></html>`)
	}

	links, err := NewScrapeResolver(s.srv.URL + "/wiki/").ResolveLinks(context.TODO(), "Donald Trump")
	c.Assert(err, gc.IsNil)
	c.Assert(links, gc.DeepEquals, []string{"Barack Obama", "New York City"})
}

func (s *ScrapeResolverTestSuite) TestResolveLinksIgnoresScriptedMarkup(c *gc.C) {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<script>var s = '<a href="/wiki/Injected">x</a>';</script>
			<a href="/wiki/Kept_Page">kept</a>
		</body></html>`)
	}

	links, err := NewScrapeResolver(s.srv.URL + "/wiki/").ResolveLinks(context.TODO(), "X")
	c.Assert(err, gc.IsNil)
	c.Assert(links, gc.DeepEquals, []string{"Kept Page"})
}

func (s *ScrapeResolverTestSuite) TestResolveLinksNotFound(c *gc.C) {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}

	_, err := NewScrapeResolver(s.srv.URL + "/wiki/").ResolveLinks(context.TODO(), "Nonexistent Page")
	c.Assert(xerrors.Is(err, resolver.ErrPageNotFound), gc.Equals, true)
}
