// Package form builds and renders simple HTML forms from field definitions.
package form

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

const (
	InputHTML     = "html"
	InputCheckbox = "checkbox"
	InputSubmit   = "submit"
)

// Option is one choice of a checkbox field. Label is trusted HTML.
type Option struct {
	Value string
	Label template.HTML
}

type Field struct {
	InputType string
	Label     string
	HTML      template.HTML // InputHTML only
	Options   []Option
	Default   []string
	Multiple  bool
}

type PageResolver interface {
	PagePath(id int64) (string, bool)
}

type Form struct {
	ID     string
	Method string
	Action string

	names  []string
	fields map[string]Field
}

func New(id, method string) *Form {
	method = strings.ToLower(strings.TrimSpace(method))
	if method != "post" {
		method = "get"
	}
	return &Form{ID: id, Method: method, fields: map[string]Field{}}
}

// SetActionFromPage points the form at the page with the given id.
func (f *Form) SetActionFromPage(pages PageResolver, id int64) error {
	p, ok := pages.PagePath(id)
	if !ok {
		return fmt.Errorf("form %s: unknown page %d", f.ID, id)
	}
	f.Action = p
	return nil
}

// AddField appends a field; re-adding a name replaces the definition in place.
func (f *Form) AddField(name string, fld Field) {
	if _, ok := f.fields[name]; !ok {
		f.names = append(f.names, name)
	}
	f.fields[name] = fld
}

func (f *Form) Fields() []string {
	return append([]string(nil), f.names...)
}

func (f *Form) Field(name string) (Field, bool) {
	fld, ok := f.fields[name]
	return fld, ok
}

type optionView struct {
	ID      string
	Value   string
	Label   template.HTML
	Checked bool
}

type fieldView struct {
	Name      string
	InputName string
	InputType string
	Label     string
	HTML      template.HTML
	Options   []optionView
}

type formView struct {
	ID         string
	Method     string
	Action     string
	FormSubmit bool
	Fields     []fieldView
}

var formTpl = template.Must(template.New("form").Parse(`<form{{if .Action}} action="{{.Action}}"{{end}} method="{{.Method}}" id="{{.ID}}" class="job_filter">
<div class="formbody">
{{- if .FormSubmit}}
<input type="hidden" name="FORM_SUBMIT" value="{{.ID}}">
{{- end}}
{{- range $f := .Fields}}
{{- if eq .InputType "html"}}
{{.HTML}}
{{- else if eq .InputType "checkbox"}}
<fieldset id="ctrl_{{.Name}}" class="checkbox_container">
{{- if .Label}}<legend>{{.Label}}</legend>{{end}}
{{- range .Options}}
<span><input type="checkbox" name="{{$f.InputName}}" id="{{.ID}}" class="checkbox" value="{{.Value}}"{{if .Checked}} checked{{end}}> <label for="{{.ID}}">{{.Label}}</label></span>
{{- end}}
</fieldset>
{{- else if eq .InputType "submit"}}
<div class="widget widget-submit"><button type="submit" id="ctrl_{{.Name}}" class="submit">{{.Label}}</button></div>
{{- end}}
{{- end}}
</div>
</form>`))

// Generate renders the form markup.
func (f *Form) Generate() (template.HTML, error) {
	v := formView{
		ID:         f.ID,
		Method:     f.Method,
		Action:     f.Action,
		FormSubmit: f.Method == "post",
	}
	for _, name := range f.names {
		fld := f.fields[name]
		fv := fieldView{
			Name:      name,
			InputName: name,
			InputType: fld.InputType,
			Label:     fld.Label,
			HTML:      fld.HTML,
		}
		if fld.InputType == InputCheckbox {
			if fld.Multiple {
				fv.InputName = name + "[]"
			}
			checked := map[string]bool{}
			for _, d := range fld.Default {
				checked[d] = true
			}
			for i, o := range fld.Options {
				fv.Options = append(fv.Options, optionView{
					ID:      fmt.Sprintf("opt_%s_%d", name, i),
					Value:   o.Value,
					Label:   o.Label,
					Checked: checked[o.Value],
				})
			}
		}
		v.Fields = append(v.Fields, fv)
	}

	var buf bytes.Buffer
	if err := formTpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render form %s: %w", f.ID, err)
	}
	return template.HTML(buf.String()), nil
}
