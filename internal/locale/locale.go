// Package locale picks the request locale from the supported set.
package locale

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type Negotiator struct {
	tags    []language.Tag
	names   []string
	matcher language.Matcher
}

// New builds a Negotiator; the first supported locale is the fallback.
func New(supported []string) *Negotiator {
	n := &Negotiator{}
	for _, s := range supported {
		t, err := language.Parse(strings.TrimSpace(s))
		if err != nil {
			continue
		}
		n.tags = append(n.tags, t)
		n.names = append(n.names, strings.TrimSpace(s))
	}
	if len(n.tags) == 0 {
		n.tags = []language.Tag{language.English}
		n.names = []string{"en"}
	}
	n.matcher = language.NewMatcher(n.tags)
	return n
}

// FromRequest honours ?lang= first, then Accept-Language.
func (n *Negotiator) FromRequest(r *http.Request) string {
	var prefs []language.Tag
	if q := strings.TrimSpace(r.URL.Query().Get("lang")); q != "" {
		if t, err := language.Parse(q); err == nil {
			prefs = append(prefs, t)
		}
	}
	if al := r.Header.Get("Accept-Language"); al != "" {
		if tags, _, err := language.ParseAcceptLanguage(al); err == nil {
			prefs = append(prefs, tags...)
		}
	}
	if len(prefs) == 0 {
		return n.names[0]
	}
	_, idx, conf := n.matcher.Match(prefs...)
	if conf == language.No {
		return n.names[0]
	}
	return n.names[idx]
}
