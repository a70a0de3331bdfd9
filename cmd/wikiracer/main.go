// Command wikiracer checks whether a sequence of Wikipedia article titles is
// a valid wikiracing solution: each page must link to the next and no page
// may be visited twice. Rejections print the reason so the caller can try a
// corrected path.
//
// Resolved link sets are cached for the lifetime of the process, or across
// runs when a PostgreSQL DSN is provided via CDB_DSN. When a title index is
// enabled, rejection reasons for unresolvable pages include near-miss title
// suggestions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"

	"wikiracer/linkcache"
	cachedb "wikiracer/linkcache/store/db"
	cachemem "wikiracer/linkcache/store/memory"
	"wikiracer/resolver"
	"wikiracer/resolver/wiki"
	"wikiracer/titleindex/index"
	esindex "wikiracer/titleindex/store/es"
	indexmem "wikiracer/titleindex/store/memory"
	"wikiracer/validator"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "wikiracer:", err)
		os.Exit(2)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("wikiracer", flag.ContinueOnError)
	var (
		resolverMode = fs.String("resolver", "api", "link resolution mode: api or scrape")
		apiEndpoint  = fs.String("api-url", envOr("WIKI_API_URL", wiki.DefaultAPIEndpoint), "MediaWiki action API endpoint")
		articleBase  = fs.String("article-url", wiki.DefaultArticleBaseURL, "article URL prefix for scrape mode")
		indexMode    = fs.String("index", "memory", "title index for suggestions: memory, es or none")
		verbose      = fs.Bool("v", false, "enable debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := fs.Args()
	if len(path) == 0 {
		return fmt.Errorf("no path given; usage: wikiracer [flags] TITLE [TITLE...]")
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	var res resolver.Resolver
	switch *resolverMode {
	case "api":
		res = wiki.NewAPIResolver(*apiEndpoint)
	case "scrape":
		res = wiki.NewScrapeResolver(*articleBase)
	default:
		return fmt.Errorf("unsupported resolver mode %q", *resolverMode)
	}

	store, err := makeStore(logger)
	if err != nil {
		return err
	}

	catalog, closeIndex, err := makeCatalog(*indexMode)
	if err != nil {
		_ = store.Close()
		return err
	}

	var indexer linkcache.TitleIndexer
	var suggester validator.Suggester
	if catalog != nil {
		indexer = catalog
		suggester = catalog
	}
	cache := linkcache.New(res, store, indexer)

	result := validator.New(cache, suggester).Validate(context.Background(), path)

	var closeErr *multierror.Error
	closeErr = multierror.Append(closeErr, cache.Close())
	if closeIndex != nil {
		closeErr = multierror.Append(closeErr, closeIndex())
	}
	if err := closeErr.ErrorOrNil(); err != nil {
		logger.Warn("shutdown", "err", err)
	}

	if !result.Accepted {
		fmt.Println("REJECTED:", result.Reason)
		os.Exit(1)
	}

	fmt.Println("ACCEPTED:", strings.Join(result.Path, " -> "))
	return nil
}

// makeStore selects the link cache store: PostgreSQL when CDB_DSN is set,
// in-memory otherwise.
func makeStore(logger *slog.Logger) (linkcache.Store, error) {
	dsn := os.Getenv("CDB_DSN")
	if dsn == "" {
		logger.Debug("using in-memory link cache store")
		return cachemem.NewInMemoryStore(), nil
	}

	logger.Debug("using db link cache store")
	return cachedb.NewDBStore(dsn)
}

// makeCatalog selects the title index backing the suggestion catalogue. The
// returned close function is nil when no cleanup is required.
func makeCatalog(mode string) (*index.Catalog, func() error, error) {
	switch mode {
	case "none":
		return nil, nil, nil
	case "memory":
		idx, err := indexmem.NewInMemoryBleveIndexer()
		if err != nil {
			return nil, nil, err
		}
		return index.NewCatalog(idx), idx.Close, nil
	case "es":
		nodeList := os.Getenv("ES_NODES")
		if nodeList == "" {
			return nil, nil, fmt.Errorf("index mode es requires the ES_NODES envvar")
		}
		idx, err := esindex.NewElasticSearchIndexer(strings.Split(nodeList, ","), false)
		if err != nil {
			return nil, nil, err
		}
		return index.NewCatalog(idx), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported index mode %q", mode)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
