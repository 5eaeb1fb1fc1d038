package assets

import (
	"fmt"
	"strings"

	"github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"

	"github.com/sorahn/noirtorio/pkg/prototype"
)

// A Matcher decides whether the pack carries a replacement for an asset
// referenced by the content tree.
type Matcher interface {
	Match(reference string) bool
}

// FlatSet matches exact original asset paths. This is the primary
// strategy: the pack build emits the full list of assets it processed,
// so membership is the whole decision.
type FlatSet map[string]bool

func NewFlatSet(references []string) FlatSet {
	set := make(FlatSet, len(references))
	for _, reference := range references {
		set[reference] = true
	}
	return set
}

func (s FlatSet) Match(reference string) bool {
	return s[reference]
}

// ExclusionTree is the legacy matcher: a nested table mirroring path
// segments, descended segment by segment. A segment mapping to false
// keeps the original asset; everything else, including running past the
// bottom of the tree, replaces it.
//
// An empty child table reads the same as a branch that was never
// populated, so "nothing more excluded here" and "not configured" cannot
// be told apart. See DESIGN.md before extending this.
type ExclusionTree map[string]any

func (t ExclusionTree) Match(reference string) bool {
	node := t

	for _, segment := range strings.Split(reference, "/") {
		child, ok := node[segment]
		if !ok {
			return true
		}

		switch next := child.(type) {
		case bool:
			return next
		case map[string]any:
			node = next
		default:
			// Terminal marker of any other shape.
			return true
		}
	}

	return true
}

// A Resolver redirects asset references into a replacement resource
// pack.
type Resolver struct {
	// Name of the pack assets are redirected into.
	Pack    string
	Matcher Matcher
}

// Rewrite returns the redirected path for a single string leaf, or None
// when the leaf should stay as it is.
func (r *Resolver) Rewrite(value string) opt.Option[string] {
	parsed := ParseReference(value)
	if opt.IsNone(parsed) {
		return opt.None[string]()
	}

	reference := parsed.Value

	// Already redirected; running the resolver twice has to be a no-op.
	if reference.Mod == r.Pack {
		return opt.None[string]()
	}

	if !IsCandidate(value) {
		return opt.None[string]()
	}

	if !r.Matcher.Match(value) {
		return opt.None[string]()
	}

	return opt.Some(fmt.Sprintf(
		"__%s__/data/%s/%s",
		r.Pack,
		reference.Mod,
		reference.Path,
	))
}

// Apply redirects every matching asset reference in the tree, in place.
func (r *Resolver) Apply(tree prototype.Tree) {
	replaced := 0

	prototype.VisitStrings(tree, func(path prototype.Path, value string) string {
		rewritten := r.Rewrite(value)
		if opt.IsNone(rewritten) {
			return value
		}

		log.Debug().
			Str("at", path.String()).
			Msgf("%s -> %s", value, rewritten.Value)

		replaced++
		return rewritten.Value
	})

	log.Info().Msgf("redirected %d asset references into %s", replaced, r.Pack)
}
