// Command filterstats prints the filter option lists with their offer counts.
package main

import (
	"context"
	"flag"
	"fmt"
	"html"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"jobfilter-engine/internal/config"
	"jobfilter-engine/internal/filter"
	"jobfilter-engine/internal/store"
)

func main() {
	cfgPath := flag.String("config", "config/config.yml", "path to config.yml")
	localeFlag := flag.String("locale", "", "label locale (defaults to app.default_locale)")
	seed := flag.Bool("seed", false, "insert demo offers first")
	flag.Parse()

	if err := run(*cfgPath, *localeFlag, *seed); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(cfgPath, locale string, seed bool) error {
	ctx := context.Background()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if locale == "" {
		locale = cfg.App.DefaultLocale
	}

	sqlitePath := cfg.Storage.SQLitePath
	if sqlitePath == "" {
		sqlitePath = "jobfilter.db"
	}
	repo, err := store.OpenRepository(ctx, cfg.Storage.Driver, sqlitePath, cfg.Storage.PostgresDSN)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer repo.Close()

	if seed {
		n, err := store.SeedDemo(ctx, repo)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		pterm.Success.Printfln("seeded %d offers", n)
	}

	c := filter.New(filter.Deps{Offers: repo, Locations: repo, DefaultLocale: locale})
	offers, err := c.AllOffers(ctx)
	if err != nil {
		return err
	}
	pterm.DefaultSection.Printfln("%s published offers", humanize.Comma(int64(len(offers))))

	all := config.Module{ShowAllTypes: true}
	types, err := c.Types(ctx, all)
	if err != nil {
		return err
	}
	rows := pterm.TableData{{"Code", "Label", "Offers"}}
	for _, o := range types {
		rows = append(rows, []string{o.Value, html.UnescapeString(string(o.Label)), humanize.Comma(int64(c.EmploymentTypeCount(o.Value)))})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		return err
	}

	locs, err := c.Locations(ctx, all)
	if err != nil {
		return err
	}
	rows = pterm.TableData{{"Location ids", "Locality", "Offers"}}
	for _, o := range locs {
		locality := html.UnescapeString(string(o.Label))
		rows = append(rows, []string{o.Value, locality, humanize.Comma(int64(c.LocationCount(locality)))})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
