// Package filter builds the job offer filter module: option lists with
// per-option offer counts and the rendered filter form.
package filter

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"jobfilter-engine/internal/domain"
	"jobfilter-engine/internal/form"
	"jobfilter-engine/internal/inserttag"
)

// AjaxRouteName is the named route the rendered module posts back to.
const AjaxRouteName = "job_filter.offer_filter"

type OfferRepository interface {
	FindAllPublished(ctx context.Context) ([]domain.Offer, error)
}

type LocationRepository interface {
	FindAllLocations(ctx context.Context) ([]domain.Location, error)
}

type RouteLookup interface {
	Path(name string) (string, error)
}

type LocaleNegotiator interface {
	FromRequest(r *http.Request) string
}

type Template interface {
	Execute(w io.Writer, data any) error
}

// Deps are the collaborators shared by all controllers.
type Deps struct {
	Offers          OfferRepository
	Locations       LocationRepository
	EmploymentTypes domain.EmploymentTypes
	Routes          RouteLookup
	InsertTags      inserttag.Replacer
	Pages           form.PageResolver
	Locales         LocaleNegotiator
	Template        Template
	DefaultLocale   string
}

// Controller serves a single request. It is not safe for concurrent use.
type Controller struct {
	deps   Deps
	locale string

	offers        []domain.Offer
	offersLoaded  bool
	locations     map[int64]domain.Location
	locationOrder []int64
	locsLoaded    bool

	counterEmploymentType map[string]int
	counterLocation       map[string]int
}

func New(deps Deps) *Controller {
	if deps.EmploymentTypes == nil {
		deps.EmploymentTypes = domain.DefaultCatalog()
	}
	if deps.Template == nil {
		deps.Template = moduleTemplate
	}
	locale := deps.DefaultLocale
	if locale == "" {
		locale = "en"
	}
	return &Controller{
		deps:                  deps,
		locale:                locale,
		counterEmploymentType: map[string]int{},
		counterLocation:       map[string]int{},
	}
}

func (c *Controller) Locale() string { return c.locale }

// AllOffers loads the published offers once and fills both counters
// while doing so.
func (c *Controller) AllOffers(ctx context.Context) ([]domain.Offer, error) {
	if c.offersLoaded {
		return c.offers, nil
	}

	var offers []domain.Offer
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		offers, err = c.deps.Offers.FindAllPublished(gctx)
		if err != nil {
			return fmt.Errorf("load offers: %w", err)
		}
		return nil
	})
	if !c.locsLoaded {
		g.Go(func() error {
			_, err := c.AllLocations(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, o := range offers {
		c.CollectEmploymentTypes(o.EmploymentType)
		if err := c.CollectLocations(ctx, o.LocationIDs()); err != nil {
			return nil, err
		}
		c.offers = append(c.offers, o)
	}
	c.offersLoaded = true

	zerolog.Ctx(ctx).Debug().
		Int("offers", len(c.offers)).
		Int("types", len(c.counterEmploymentType)).
		Int("localities", len(c.counterLocation)).
		Msg("filter offers loaded")
	return c.offers, nil
}

// CollectEmploymentTypes counts every code, repeats included.
func (c *Controller) CollectEmploymentTypes(types []string) {
	for _, t := range types {
		c.counterEmploymentType[t]++
	}
}

// CollectLocations counts each distinct locality among ids once.
// Unknown ids are skipped.
func (c *Controller) CollectLocations(ctx context.Context, ids []int64) error {
	if ids == nil {
		return nil
	}
	locs, err := c.AllLocations(ctx)
	if err != nil {
		return err
	}

	added := map[string]bool{}
	for _, id := range ids {
		loc, ok := locs[id]
		if !ok {
			continue
		}
		if added[loc.AddressLocality] {
			continue
		}
		c.counterLocation[loc.AddressLocality]++
		added[loc.AddressLocality] = true
	}
	return nil
}

// AllLocations loads every location once, keyed by id.
func (c *Controller) AllLocations(ctx context.Context) (map[int64]domain.Location, error) {
	if c.locsLoaded {
		return c.locations, nil
	}

	locs, err := c.deps.Locations.FindAllLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	c.locations = make(map[int64]domain.Location, len(locs))
	c.locationOrder = c.locationOrder[:0]
	for _, l := range locs {
		if _, dup := c.locations[l.ID]; !dup {
			c.locationOrder = append(c.locationOrder, l.ID)
		}
		c.locations[l.ID] = l
	}
	c.locsLoaded = true
	return c.locations, nil
}

// EmploymentTypeCount returns the counter for code.
func (c *Controller) EmploymentTypeCount(code string) int {
	return c.counterEmploymentType[code]
}

// LocationCount returns the counter for locality.
func (c *Controller) LocationCount(locality string) int {
	return c.counterLocation[locality]
}
