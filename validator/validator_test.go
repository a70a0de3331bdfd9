package validator_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	gc "gopkg.in/check.v1"
	"golang.org/x/xerrors"

	"wikiracer/linkcache"
	memstore "wikiracer/linkcache/store/memory"
	"wikiracer/resolver"
	"wikiracer/validator"
	"wikiracer/validator/mocks"
)

var _ = gc.Suite(new(ValidatorTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type ValidatorTestSuite struct {
	ctrl *gomock.Controller
	res  *mocks.MockLinkResolver
	v    *validator.Validator
}

func (s *ValidatorTestSuite) SetUpTest(c *gc.C) {
	s.ctrl = gomock.NewController(c)
	s.res = mocks.NewMockLinkResolver(s.ctrl)
	s.v = validator.New(s.res, nil)
}

func (s *ValidatorTestSuite) TearDownTest(c *gc.C) {
	s.ctrl.Finish()
}

func (s *ValidatorTestSuite) TestValidPath(c *gc.C) {
	// Only candidate pages are expanded: "Joe Biden" enters the graph as a
	// link target and the mock would flag any attempt to resolve it.
	s.res.EXPECT().ResolveLinks(gomock.Any(), "Lindsay Lohan").Return([]string{"Donald Trump"}, nil)
	s.res.EXPECT().ResolveLinks(gomock.Any(), "Donald Trump").Return([]string{"Barack Obama"}, nil)
	s.res.EXPECT().ResolveLinks(gomock.Any(), "Barack Obama").Return([]string{"Joe Biden"}, nil)

	path := []string{"Lindsay Lohan", "Donald Trump", "Barack Obama"}
	res := s.v.Validate(context.TODO(), path)
	c.Assert(res.Accepted, gc.Equals, true)
	c.Assert(res.Path, gc.DeepEquals, path)
	c.Assert(res.Reason, gc.Equals, "")
}

func (s *ValidatorTestSuite) TestMissingEdge(c *gc.C) {
	s.res.EXPECT().ResolveLinks(gomock.Any(), "Lindsay Lohan").Return([]string{"Donald Trump"}, nil)
	s.res.EXPECT().ResolveLinks(gomock.Any(), "Barack Obama").Return([]string{"Joe Biden"}, nil)

	res := s.v.Validate(context.TODO(), []string{"Lindsay Lohan", "Barack Obama"})
	c.Assert(res.Accepted, gc.Equals, false)
	c.Assert(res.Reason, gc.Matches, `path is not valid: page "Lindsay Lohan" does not link to "Barack Obama"`)
}

func (s *ValidatorTestSuite) TestRepeatedVertex(c *gc.C) {
	// A and B link to each other, so edge continuity holds; the repeat of
	// "A" must still reject the path. A is resolved only once.
	s.res.EXPECT().ResolveLinks(gomock.Any(), "A").Return([]string{"B"}, nil)
	s.res.EXPECT().ResolveLinks(gomock.Any(), "B").Return([]string{"A"}, nil)

	res := s.v.Validate(context.TODO(), []string{"A", "B", "A"})
	c.Assert(res.Accepted, gc.Equals, false)
	c.Assert(res.Reason, gc.Matches, `path is not valid: page "A" appears more than once`)
}

func (s *ValidatorTestSuite) TestCandidateSeenAsLinkTargetIsStillExpanded(c *gc.C) {
	// B enters the graph as a link target of A before it is expanded; its
	// own links must still be resolved to verify the B->C hop.
	s.res.EXPECT().ResolveLinks(gomock.Any(), "A").Return([]string{"B", "C"}, nil)
	s.res.EXPECT().ResolveLinks(gomock.Any(), "B").Return([]string{"C"}, nil)
	s.res.EXPECT().ResolveLinks(gomock.Any(), "C").Return(nil, nil)

	res := s.v.Validate(context.TODO(), []string{"A", "B", "C"})
	c.Assert(res.Accepted, gc.Equals, true)
}

func (s *ValidatorTestSuite) TestSingleElementPath(c *gc.C) {
	// No resolver expectations: a single-element path requires no lookups.
	res := s.v.Validate(context.TODO(), []string{"Lindsay Lohan"})
	c.Assert(res.Accepted, gc.Equals, true)
	c.Assert(res.Path, gc.DeepEquals, []string{"Lindsay Lohan"})
}

func (s *ValidatorTestSuite) TestEmptyPath(c *gc.C) {
	res := s.v.Validate(context.TODO(), nil)
	c.Assert(res.Accepted, gc.Equals, false)
	c.Assert(res.Reason, gc.Matches, "path is not valid.*empty.*")
}

func (s *ValidatorTestSuite) TestEmptyTitleNormalizesToRejection(c *gc.C) {
	res := s.v.Validate(context.TODO(), []string{"A", "", "B"})
	c.Assert(res.Accepted, gc.Equals, false)
	c.Assert(res.Reason, gc.Matches, "path is not valid.*empty page title.*")
}

func (s *ValidatorTestSuite) TestResolutionFailureBecomesRejection(c *gc.C) {
	resolveErr := xerrors.Errorf("resolve links for %q: %w", "Nonexistent Page", resolver.ErrPageNotFound)
	s.res.EXPECT().ResolveLinks(gomock.Any(), "Nonexistent Page").Return(nil, resolveErr)

	res := s.v.Validate(context.TODO(), []string{"Nonexistent Page", "X"})
	c.Assert(res.Accepted, gc.Equals, false)

	// The resolver's message is passed through verbatim.
	c.Assert(res.Reason, gc.Equals, `path is not valid: resolve links for "Nonexistent Page": page not found`)
}

func (s *ValidatorTestSuite) TestResolutionFailureIncludesSuggestions(c *gc.C) {
	suggester := mocks.NewMockSuggester(s.ctrl)
	s.v = validator.New(s.res, suggester)

	resolveErr := xerrors.Errorf("resolve links for %q: %w", "Barack Obma", resolver.ErrPageNotFound)
	s.res.EXPECT().ResolveLinks(gomock.Any(), "Barack Obma").Return(nil, resolveErr)
	suggester.EXPECT().Suggest("Barack Obma", validator.DefaultSuggestionLimit).
		Return([]string{"Barack Obama"}, nil)

	res := s.v.Validate(context.TODO(), []string{"Barack Obma", "X"})
	c.Assert(res.Accepted, gc.Equals, false)
	c.Assert(res.Reason, gc.Matches, `.*page not found \(similar known titles: Barack Obama\)`)
}

func (s *ValidatorTestSuite) TestIdempotence(c *gc.C) {
	s.res.EXPECT().ResolveLinks(gomock.Any(), "A").Return([]string{"B"}, nil).Times(2)
	s.res.EXPECT().ResolveLinks(gomock.Any(), "B").Return(nil, nil).Times(2)

	path := []string{"A", "B"}
	first := s.v.Validate(context.TODO(), path)
	second := s.v.Validate(context.TODO(), path)
	c.Assert(first, gc.DeepEquals, second)
}

func (s *ValidatorTestSuite) TestCachedResolverIsInvokedOncePerTitle(c *gc.C) {
	// With the link cache in front of the resolver, repeated validations
	// within one process resolve each distinct title at most once.
	s.res.EXPECT().ResolveLinks(gomock.Any(), "A").Return([]string{"B"}, nil).Times(1)
	s.res.EXPECT().ResolveLinks(gomock.Any(), "B").Return([]string{"A"}, nil).Times(1)

	cache := linkcache.New(s.res, memstore.NewInMemoryStore(), nil)
	v := validator.New(cache, nil)

	for i := 0; i < 3; i++ {
		res := v.Validate(context.TODO(), []string{"A", "B"})
		c.Assert(res.Accepted, gc.Equals, true)
	}
}
