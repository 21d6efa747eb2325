package analyze

import "strings"

// Keyword vocabularies. A vocabulary term matches an identifier or string
// literal when the term is a substring of the lowercased token. Detectors use
// hits as supporting (or excluding) evidence, never as the sole signal.

// vocabulary groups the curated terms for one complexity class or one
// exclusion concern.
type vocabulary struct {
	name  string
	terms []string
}

var (
	factorialVocab = vocabulary{name: "factorial", terms: []string{
		"permut", "factorial", "arrangement", "anagram",
		"salesman", "tsp", "queens", "n_queens",
	}}

	exponentialVocab = vocabulary{name: "exponential", terms: []string{
		"fibonacci", "fib(", "hanoi", "subset", "powerset", "power_set",
		"backtrack", "exhaustive", "knapsack",
	}}

	cubicVocab = vocabulary{name: "cubic", terms: []string{
		"matrix_mult", "matmul", "floyd", "warshall", "triple",
	}}

	quadraticVocab = vocabulary{name: "quadratic", terms: []string{
		"bubble", "selection_sort", "insertion_sort", "pairwise",
		"all_pairs", "allpairs",
	}}

	linearithmicVocab = vocabulary{name: "linearithmic", terms: []string{
		"merge_sort", "mergesort", "merge sort", "quick_sort", "quicksort",
		"heap_sort", "heapsort", "timsort",
	}}

	logarithmicVocab = vocabulary{name: "logarithmic", terms: []string{
		"binary_search", "binarysearch", "bisect", "halve", "midpoint",
	}}

	// sortingVocab suppresses exponential/factorial matches on
	// divide-and-conquer sorts, which also carry two recursive calls.
	sortingVocab = vocabulary{name: "sorting", terms: []string{
		"sort", "merge", "partition", "pivot",
	}}

	// memoVocab suppresses exponential matches when memoization is present.
	memoVocab = vocabulary{name: "memoization", terms: []string{
		"memo", "cache", "lru_cache", "@cache", "dp[", "dp =",
	}}

	// backtrackVocab marks explicit mark/unmark search.
	backtrackVocab = vocabulary{name: "backtracking", terms: []string{
		"backtrack", "visited", "unmark", "undo", "is_safe", "place",
	}}

	// treeVocab marks single-branch tree descent.
	treeVocab = vocabulary{name: "tree", terms: []string{
		"bst", "node.left", "node.right", ".left", ".right", "root",
	}}
)

// classVocabularies is consulted by the feature extractor to build the
// keyword hit set shared by all detectors.
var classVocabularies = []vocabulary{
	factorialVocab,
	exponentialVocab,
	cubicVocab,
	quadraticVocab,
	linearithmicVocab,
	logarithmicVocab,
	sortingVocab,
	memoVocab,
	backtrackVocab,
	treeVocab,
}

// Built-in call names, keyed by concern rather than class.

// sortCalls are callee names that invoke a library sort (O(n log n)).
var sortCalls = map[string]bool{
	"sorted": true, "sort": true,
	"sort.Slice": true, "sort.Sort": true, "sort.Strings": true,
	"sort.Ints": true, "slices.Sort": true, "slices.SortFunc": true,
	"toSorted": true, "sort_unstable": true, "sort_by": true,
	"sort_by_key": true,
}

// heapCalls are heap push/pop/build operations (O(log n) each).
var heapCalls = map[string]bool{
	"heappush": true, "heappop": true, "heapify": true,
	"heappushpop": true, "heapreplace": true,
	"heap.Push": true, "heap.Pop": true, "heap.Init": true,
	"heap.Fix": true,
}

// logCalls are math logarithms applied to an input-size-dependent argument.
var logCalls = map[string]bool{
	"log": true, "log2": true, "log10": true,
	"math.log": true, "math.log2": true, "math.log10": true,
	"math.Log": true, "math.Log2": true, "math.Log10": true,
	"Math.log": true, "Math.log2": true, "Math.log10": true,
}

// linearBuiltins are built-in operations that scan their whole argument.
var linearBuiltins = map[string]bool{
	"sum": true, "max": true, "min": true, "count": true, "index": true,
	"reverse": true, "reversed": true, "join": true, "extend": true,
	"map": true, "filter": true, "any": true, "all": true,
	"copy": true, "list": true, "tuple": true, "remove": true,
	"includes": true, "indexOf": true, "find": true, "findIndex": true,
	"reduce": true, "forEach": true, "slice": true, "concat": true,
	"contains": true, "iter": true, "collect": true,
}

// stackOps are single-element data structure operations. One non-looped
// stack op does not disqualify a constant verdict.
var stackOps = map[string]bool{
	"append": true, "pop": true, "push": true, "add": true,
	"appendleft": true, "popleft": true, "push_back": true,
	"shift": true, "unshift": true, "insert": true, "put": true,
}

// growthCalls are the data-structure-modifying calls the space chain treats
// as accumulation when they occur inside a loop.
var growthCalls = map[string]bool{
	"append": true, "add": true, "insert": true, "extend": true,
	"push": true, "appendleft": true, "push_back": true, "put": true,
	"unshift": true, "setdefault": true, "update": true,
}

// collectionConstructors create a fresh growable collection; the space chain
// records the assigned names as data structures.
var collectionConstructors = map[string]bool{
	"list": true, "dict": true, "set": true, "deque": true,
	"defaultdict": true, "Counter": true, "make": true, "new": true,
	"Array": true, "Map": true, "Set": true,
	"Vec::new": true, "HashMap::new": true, "HashSet::new": true,
}

// fixedCollectionNames are identifiers that conventionally hold a small
// constant-sized collection. A loop over one of these is not true nesting.
var fixedCollectionNames = map[string]bool{
	"directions": true, "dirs": true, "neighbors": true, "offsets": true,
	"moves": true, "deltas": true, "vowels": true, "digits": true,
	"weekdays": true, "months": true, "corners": true,
}

// constantRangeLimit is the largest literal range bound still treated as a
// constant-sized inner loop by the nesting override.
const constantRangeLimit = 20

// matchVocabulary returns the vocabulary terms found in token, which must
// already be lowercased.
func matchVocabulary(v vocabulary, token string) []string {
	var hits []string
	for _, term := range v.terms {
		if strings.Contains(token, term) {
			hits = append(hits, term)
		}
	}
	return hits
}

// keywordHits scans a lowercased token against every class vocabulary and
// returns the matched terms.
func keywordHits(token string) []string {
	var hits []string
	for _, v := range classVocabularies {
		hits = append(hits, matchVocabulary(v, token)...)
	}
	return hits
}

// hasAny reports whether the keyword set contains any term of the vocabulary.
func hasAny(keywords map[string]bool, v vocabulary) bool {
	for _, term := range v.terms {
		if keywords[term] {
			return true
		}
	}
	return false
}

// countHits counts how many distinct vocabulary terms are present.
func countHits(keywords map[string]bool, v vocabulary) int {
	n := 0
	for _, term := range v.terms {
		if keywords[term] {
			n++
		}
	}
	return n
}
