package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg and the findings.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.App.Locales = trimList(out.App.Locales)
	out.Modules = append([]Module(nil), cfg.Modules...)
	applyDefaults(&out)

	if err := Validate(out); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
			if line == "" || strings.HasPrefix(line, "config validation failed") {
				continue
			}
			res.addErr("%s", line)
		}
	}

	found := false
	for _, l := range out.App.Locales {
		if l == out.App.DefaultLocale {
			found = true
			break
		}
	}
	if !found {
		res.addWarn("app.default_locale %q is not listed in app.locales", out.App.DefaultLocale)
	}

	for i, m := range out.Modules {
		if !m.ShowTypes && !m.ShowLocations {
			res.addWarn("modules[%d] shows neither types nor locations; the form will be empty", i)
		}
		if m.ShowButton && strings.TrimSpace(m.SubmitLabel) == "" {
			res.addWarn("modules[%d].submit_label is empty", i)
		}
	}

	return out, res
}
