package cache

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = ":"

// Namespace identifies one of the logical cache key spaces. The set is
// closed; every key the engine touches lives under exactly one namespace.
type Namespace string

const (
	// NamespaceRecord holds single restaurant records keyed by identifier.
	NamespaceRecord Namespace = "record"

	// NamespaceBulkListing holds full listings under the "all" identifier.
	NamespaceBulkListing Namespace = "bulk-listing"

	// NamespaceSearch holds filtered search results keyed by query digest
	// plus the sorted filter parameters.
	NamespaceSearch Namespace = "search"
)

// Namespaces lists every namespace in a stable order. Used for
// namespace-wide invalidation and stats.
func Namespaces() []Namespace {
	return []Namespace{NamespaceRecord, NamespaceBulkListing, NamespaceSearch}
}

// Pattern returns the glob pattern matching every key in the namespace.
func (n Namespace) Pattern() string {
	return string(n) + KeySeparator + "*"
}

// BulkListingID is the identifier used for the single bulk-listing entry.
const BulkListingID = "all"

// KeyComposer builds a cache key from a namespace, an identifier, and an
// optional parameter set. It is responsible for producing stable keys
// across calls: two logically identical parameter sets must always yield
// the same key regardless of construction order.
type KeyComposer interface {
	Key(ns Namespace, identifier string, params map[string]string) string
}

// defaultKeyComposer implements KeyComposer with colon-joined segments and
// lexicographically sorted parameters.
type defaultKeyComposer struct{}

// NewDefaultKeyComposer creates a new instance of the default key composer.
func NewDefaultKeyComposer() KeyComposer {
	return &defaultKeyComposer{}
}

// Key builds a key of the form ns:identifier or ns:identifier:k1:v1_k2:v2.
// Parameter names are sorted before concatenation so map iteration order
// never leaks into the key.
func (c *defaultKeyComposer) Key(ns Namespace, identifier string, params map[string]string) string {
	parts := []string{string(ns), identifier}

	if len(params) > 0 {
		names := make([]string, 0, len(params))
		for name := range params {
			names = append(names, name)
		}
		sort.Strings(names)

		pairs := make([]string, len(names))
		for i, name := range names {
			pairs[i] = name + KeySeparator + params[name]
		}
		parts = append(parts, strings.Join(pairs, "_"))
	}

	return strings.Join(parts, KeySeparator)
}

// SearchDigest returns a fixed-width hex digest of a free-text query
// string. Search keys embed the digest rather than the query itself so key
// length stays bounded and arbitrary characters in the query can never
// corrupt the key structure.
func SearchDigest(query string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(query))
}
