// Package inserttag expands {{name}} and {{name::arg}} text macros.
package inserttag

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

var tagRe = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// Replacer expands all tags in s.
type Replacer interface {
	Replace(s string) string
}

// PageResolver maps a page id to its public path.
type PageResolver interface {
	PagePath(id int64) (string, bool)
}

// Expander resolves tags from a static table, with a few built-ins:
//
//	{{br}}             line break
//	{{link_url::ID}}   path of page ID
//	{{ua::NAME}}       html-escaped value of tag NAME
//
// Unknown tags expand to "".
type Expander struct {
	Tags  map[string]string
	Pages PageResolver
}

func New(tags map[string]string, pages PageResolver) *Expander {
	return &Expander{Tags: tags, Pages: pages}
}

func (e *Expander) Replace(s string) string {
	if !strings.Contains(s, "{{") {
		return s
	}
	return tagRe.ReplaceAllStringFunc(s, func(m string) string {
		return e.resolve(strings.TrimSpace(m[2 : len(m)-2]))
	})
}

func (e *Expander) resolve(tag string) string {
	if v, ok := e.Tags[tag]; ok {
		return v
	}

	name, arg, _ := strings.Cut(tag, "::")
	switch strings.ToLower(name) {
	case "br":
		return "<br>"
	case "link_url":
		if e.Pages == nil {
			return ""
		}
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return ""
		}
		p, _ := e.Pages.PagePath(id)
		return p
	case "ua":
		return html.EscapeString(e.Tags[arg])
	}
	return ""
}

// Pages is a PageResolver over a static map.
type Pages map[int64]string

func (p Pages) PagePath(id int64) (string, bool) {
	v, ok := p[id]
	return v, ok
}
