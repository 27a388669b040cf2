package filter

import (
	"context"
	"html"
	"html/template"
	"strconv"
	"strings"

	"jobfilter-engine/internal/config"
	"jobfilter-engine/internal/form"
)

// LocationSeparator joins the ids of locations sharing one locality.
const LocationSeparator = "|"

// Types returns the employment type options in catalog order.
// Unless ShowAllTypes is set, types without offers are left out.
func (c *Controller) Types(ctx context.Context, m config.Module) ([]form.Option, error) {
	if _, err := c.AllOffers(ctx); err != nil {
		return nil, err
	}

	var options []form.Option
	for _, code := range c.deps.EmploymentTypes.Codes() {
		if !m.ShowAllTypes {
			if _, ok := c.counterEmploymentType[code]; !ok {
				continue
			}
		}
		name := c.deps.EmploymentTypes.Name(code, c.locale)
		options = append(options, form.Option{
			Value: code,
			Label: template.HTML(html.EscapeString(name) + c.ItemCounter(m, code)),
		})
	}
	return options, nil
}

// Locations returns one option per locality. The option value lists the
// ids of all locations with that locality, joined by LocationSeparator.
//
// Values are derived by inverting locality -> ids; should two localities
// ever yield the same id string, the later locality replaces the earlier
// label while keeping the earlier position.
func (c *Controller) Locations(ctx context.Context, m config.Module) ([]form.Option, error) {
	if _, err := c.AllOffers(ctx); err != nil {
		return nil, err
	}
	locs, err := c.AllLocations(ctx)
	if err != nil {
		return nil, err
	}

	var localities []string
	joined := map[string]string{}
	for _, id := range c.locationOrder {
		loc := locs[id].AddressLocality
		sid := strconv.FormatInt(id, 10)
		if prev, ok := joined[loc]; ok {
			joined[loc] = prev + LocationSeparator + sid
			continue
		}
		joined[loc] = sid
		localities = append(localities, loc)
	}

	var keys []string
	flipped := map[string]string{}
	for _, loc := range localities {
		k := joined[loc]
		if _, ok := flipped[k]; !ok {
			keys = append(keys, k)
		}
		flipped[k] = loc
	}

	options := make([]form.Option, 0, len(keys))
	for _, k := range keys {
		loc := flipped[k]
		options = append(options, form.Option{
			Value: k,
			Label: template.HTML(html.EscapeString(loc) + c.LocationCounter(m, loc)),
		})
	}
	return options, nil
}

// ItemCounter renders the offer count of an employment type, or "" when
// quantities are hidden or the type has no offers.
func (c *Controller) ItemCounter(m config.Module, key string) string {
	n, ok := c.counterEmploymentType[key]
	if !m.ShowQuantity || !ok {
		return ""
	}
	return counterSpan(n)
}

// LocationCounter is ItemCounter for localities.
func (c *Controller) LocationCounter(m config.Module, key string) string {
	n, ok := c.counterLocation[key]
	if !m.ShowLocationQuantity || !ok {
		return ""
	}
	return counterSpan(n)
}

func counterSpan(n int) string {
	var b strings.Builder
	b.WriteString(`<span class="item-counter">[`)
	b.WriteString(strconv.Itoa(n))
	b.WriteString(`]</span>`)
	return b.String()
}
