package resolve

import (
	"golang.org/x/text/unicode/norm"

	"github.com/corvid-lang/corvid/internal/hir"
)

// normalize canonicalizes an identifier's Unicode spelling to NFC before
// it is ever used as a scope key, so that two byte-distinct but
// canonically-equal spellings (e.g. "café" composed vs. decomposed)
// resolve to the same binding (SPEC_FULL.md §4.3, scenario 8).
func normalize(name string) string {
	return norm.NFC.String(name)
}

// scopeStack is the lexical-scope stack for a single function body: one
// frame per nested Let, searched innermost-out. Function names are never
// stored here; they live in the resolver's global map and are
// consulted only once the local stack is exhausted.
type scopeStack struct {
	frames []map[string]hir.Local
}

func newScopeStack() *scopeStack {
	return &scopeStack{}
}

func (s *scopeStack) push() {
	s.frames = append(s.frames, map[string]hir.Local{})
}

func (s *scopeStack) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *scopeStack) bind(name string, local hir.Local) {
	s.frames[len(s.frames)-1][normalize(name)] = local
}

func (s *scopeStack) lookup(name string) (hir.Local, bool) {
	key := normalize(name)
	for i := len(s.frames) - 1; i >= 0; i-- {
		if l, ok := s.frames[i][key]; ok {
			return l, true
		}
	}
	return 0, false
}
