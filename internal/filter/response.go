package filter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"jobfilter-engine/internal/config"
	"jobfilter-engine/internal/form"
)

const (
	HeadlineTypes     = "jobTypes"
	HeadlineLocations = "jobLocation"
)

var errNoPages = errors.New("no page resolver configured")

// TemplateData is what the module template renders.
type TemplateData struct {
	ModuleID  int64
	Form      template.HTML
	Locale    string
	AjaxRoute string
}

var moduleTemplate = template.Must(template.New("mod_job_filter").Parse(`<div class="mod_job_filter block" data-module="{{.ModuleID}}" data-locale="{{.Locale}}" data-ajax-route="{{.AjaxRoute}}">
{{.Form}}
</div>
`))

// HeadlineHTML wraps the tag-expanded content in a typed headline block.
// "" and "0" count as no headline.
func (c *Controller) HeadlineHTML(content, typ string) string {
	if content == "" || content == "0" {
		return ""
	}
	if c.deps.InsertTags != nil {
		content = c.deps.InsertTags.Replace(content)
	}

	var b strings.Builder
	b.WriteString(`<div class="job_filter_widget_headline `)
	b.WriteString(typ)
	b.WriteString(`">`)
	b.WriteString(content)
	b.WriteString(`</div>`)
	return b.String()
}

// BuildForm assembles the filter form for m, pre-filled from r.
func (c *Controller) BuildForm(ctx context.Context, m config.Module, r *http.Request) (*form.Form, error) {
	f := form.New(fmt.Sprintf("job_filter_%d", m.ID), m.Method)

	if m.JumpTo != 0 {
		if c.deps.Pages == nil {
			return nil, errNoPages
		}
		if err := f.SetActionFromPage(c.deps.Pages, m.JumpTo); err != nil {
			return nil, err
		}
	}

	if m.ShowTypes {
		f.AddField("typesHeadline", form.Field{
			InputType: form.InputHTML,
			HTML:      template.HTML(c.HeadlineHTML(m.TypesHeadline, HeadlineTypes)),
		})

		types, err := c.Types(ctx, m)
		if err != nil {
			return nil, err
		}
		f.AddField("types", form.Field{
			InputType: form.InputCheckbox,
			Default:   RequestValues(r, "types"),
			Options:   types,
			Multiple:  true,
		})
	}

	if m.ShowLocations {
		f.AddField("locationHeadline", form.Field{
			InputType: form.InputHTML,
			HTML:      template.HTML(c.HeadlineHTML(m.LocationsHeadline, HeadlineLocations)),
		})

		locs, err := c.Locations(ctx, m)
		if err != nil {
			return nil, err
		}
		f.AddField("location", form.Field{
			InputType: form.InputCheckbox,
			Default:   RequestValues(r, "location"),
			Options:   locs,
			Multiple:  true,
		})
	}

	if m.ShowButton {
		f.AddField("submit", form.Field{
			InputType: form.InputSubmit,
			Label:     m.SubmitLabel,
		})
	}

	return f, nil
}

// Response renders the module for m.
func (c *Controller) Response(ctx context.Context, m config.Module, r *http.Request) ([]byte, error) {
	if c.deps.Locales != nil {
		c.locale = c.deps.Locales.FromRequest(r)
	}

	f, err := c.BuildForm(ctx, m, r)
	if err != nil {
		return nil, err
	}
	formHTML, err := f.Generate()
	if err != nil {
		return nil, err
	}

	ajax, err := c.deps.Routes.Path(AjaxRouteName)
	if err != nil {
		return nil, err
	}

	data := TemplateData{
		ModuleID:  m.ID,
		Form:      formHTML,
		Locale:    c.locale,
		AjaxRoute: ajax,
	}

	var buf bytes.Buffer
	if err := c.deps.Template.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render module %d: %w", m.ID, err)
	}

	zerolog.Ctx(ctx).Debug().
		Int64("module", m.ID).
		Str("locale", c.locale).
		Strs("fields", f.Fields()).
		Msg("filter module rendered")
	return buf.Bytes(), nil
}

// RequestValues returns the values of key from the query and form body,
// accepting both "key" and "key[]".
func RequestValues(r *http.Request, key string) []string {
	if r == nil {
		return nil
	}
	_ = r.ParseForm()

	var out []string
	for _, k := range []string{key, key + "[]"} {
		for _, v := range r.Form[k] {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
