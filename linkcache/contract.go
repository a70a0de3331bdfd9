package linkcache

// Store is implemented by objects that can persist resolved outbound link
// sets keyed by page title.
type Store interface {
	// Get returns the stored link set for the specified title. The second
	// return value reports whether an entry exists; a title stored with an
	// empty link set is still a hit.
	Get(title string) ([]string, bool, error)

	// Put stores the link set for the specified title, replacing any
	// existing entry.
	Put(title string, links []string) error

	// Close releases any resources associated with the store.
	Close() error
}
