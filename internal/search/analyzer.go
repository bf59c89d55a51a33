package search

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/english"
	"github.com/blevesearch/snowballstem/portuguese"
	"github.com/blevesearch/snowballstem/spanish"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stemmers maps a configured language to its Snowball stem function.
// A language missing here means no keyword analysis is available and callers
// should fall back to the lexical matcher.
var stemmers = map[string]func(*snowballstem.Env) bool{
	"portuguese": portuguese.Stem,
	"english":    english.Stem,
	"spanish":    spanish.Stem,
}

// Analyzer reduces free text to a set of language-normalized keywords:
// tokens are lowercased, stopwords dropped, the rest stemmed and
// accent-folded. It is stateless after construction and safe for
// concurrent use.
type Analyzer struct {
	stem func(*snowballstem.Env) bool
	stop map[string]struct{}
}

// NewAnalyzer returns an analyzer for the given language, or an error when
// no stemmer exists for it. The error is the signal to run without keyword
// matching rather than a fatal condition.
func NewAnalyzer(language string) (*Analyzer, error) {
	stem, ok := stemmers[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		return nil, fmt.Errorf("search: no stemmer available for language %q", language)
	}
	a := &Analyzer{stem: stem, stop: make(map[string]struct{}, len(ptStopwords))}
	for _, w := range ptStopwords {
		a.stop[w] = struct{}{}
	}
	return a, nil
}

var tokenRE = regexp.MustCompile(`\p{L}+\p{N}*`)

// Keywords extracts the normalized keyword set of s. Punctuation and
// stopwords are dropped; surviving tokens are stemmed then accent-folded so
// "instalação" and "instalacao" collapse to the same key.
func (a *Analyzer) Keywords(s string) map[string]struct{} {
	words := tokenRE.FindAllString(strings.ToLower(s), -1)
	if len(words) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, skip := a.stop[w]; skip {
			continue
		}
		env := snowballstem.NewEnv(w)
		a.stem(env)
		k := foldAccents(env.Current())
		if k == "" {
			continue
		}
		out[k] = struct{}{}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Normalize produces the canonical form of a query used as a cache key:
// lowercased with runs of whitespace collapsed to single spaces.
func Normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// foldAccents strips combining marks so accented and plain spellings compare
// equal. The transform chain carries state, so build it per call.
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// ptStopwords is the Portuguese stopword list applied before stemming.
// Articles, prepositions, pronouns, and high-frequency verbs carry no
// matching signal and would otherwise dominate keyword intersections.
var ptStopwords = []string{
	"a", "à", "ao", "aos", "aquela", "aquelas", "aquele", "aqueles", "aquilo",
	"as", "às", "até", "com", "como", "da", "das", "de", "dela", "delas",
	"dele", "deles", "depois", "do", "dos", "e", "é", "ela", "elas", "ele",
	"eles", "em", "entre", "era", "eram", "essa", "essas", "esse", "esses",
	"esta", "está", "estamos", "estão", "estas", "estava", "estavam", "este",
	"estes", "estou", "eu", "foi", "fomos", "for", "foram", "fosse", "há",
	"isso", "isto", "já", "lhe", "lhes", "mais", "mas", "me", "mesmo", "meu",
	"meus", "minha", "minhas", "muito", "na", "não", "nas", "nem", "no", "nos",
	"nós", "nossa", "nossas", "nosso", "nossos", "num", "numa", "o", "os",
	"ou", "para", "pela", "pelas", "pelo", "pelos", "por", "qual", "quando",
	"que", "quem", "são", "se", "seja", "sem", "ser", "será", "seu", "seus",
	"só", "sua", "suas", "também", "te", "tem", "tém", "temos", "tenho", "ter",
	"teu", "tua", "tudo", "um", "uma", "você", "vocês", "vos",
}
