package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/saranrapjs/ixbrlparse/pkg/bulk"
	"github.com/saranrapjs/ixbrlparse/pkg/concurrent"
	"github.com/saranrapjs/ixbrlparse/pkg/db"
	"github.com/saranrapjs/ixbrlparse/pkg/edgar"
	"github.com/saranrapjs/ixbrlparse/pkg/facts"
	"github.com/saranrapjs/ixbrlparse/pkg/ixbrl"
	"github.com/saranrapjs/ixbrlparse/pkg/transform"
)

func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

type FormatsCmd struct {
	Provider string `help:"Only list formats claimed by this provider"`
	Strict   bool   `help:"Fail when two providers claim the same format name"`
}

func (c *FormatsCmd) Run(a *app) error {
	r, err := a.registry(c.Strict)
	if err != nil {
		return err
	}
	return listFormats(a.out, r, c.Provider)
}

func listFormats(w io.Writer, r *transform.Registry, provider string) error {
	owned := lo.Map(r.Names(), func(name string, _ int) [2]string {
		owner, _ := r.Owner(name)
		return [2]string{name, owner}
	})
	if provider != "" {
		owned = lo.Filter(owned, func(o [2]string, _ int) bool { return strings.EqualFold(o[1], provider) })
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, o := range owned {
		fmt.Fprintf(tw, "%s\t%s\n", o[0], o[1])
	}
	return tw.Flush()
}

type BatchCmd struct {
	Files       []string `arg:"" help:"Filings to parse"`
	Concurrency int      `short:"j" default:"4" help:"Files parsed at once"`
	Mode        string   `help:"Error handling mode, overriding the configuration"`
	Store       bool     `help:"Store every parsed document in the database"`
}

type batchResult struct {
	index int
	path  string
	size  int
	src   []byte
	doc   *ixbrl.Document
}

func (c *BatchCmd) Run(a *app) error {
	opts, err := a.parseOptions(c.Mode, false)
	if err != nil {
		return err
	}
	ctx, stop := interruptible()
	defer stop()

	items := lo.Map(c.Files, func(path string, i int) batchResult { return batchResult{index: i, path: path} })
	runner := concurrent.NewRunner[batchResult, batchResult](concurrent.RunnerConfig{
		MaxConcurrency: c.Concurrency,
		LogPrefix:      "batch",
		Logger:         a.log,
	})
	res := runner.Run(ctx, items, func(item batchResult, _ chan<- string, results chan<- batchResult, errors chan<- error) {
		doc, err := ixbrl.Open(item.path, opts...)
		if err != nil {
			errors <- fmt.Errorf("%s: %w", item.path, err)
			return
		}
		if info, err := os.Stat(item.path); err == nil {
			item.size = int(info.Size())
		}
		if c.Store {
			if item.src, err = os.ReadFile(item.path); err != nil {
				errors <- fmt.Errorf("%s: %w", item.path, err)
				return
			}
		}
		item.doc = doc
		results <- item
	})

	slices.SortFunc(res.Results, func(x, y batchResult) int { return x.index - y.index })
	if err := printBatch(a.out, res.Results); err != nil {
		return err
	}
	if c.Store {
		for _, r := range res.Results {
			if err := store(a, r.path, r.src, r.doc); err != nil {
				return err
			}
		}
	}
	for _, err := range res.Errors {
		a.log.Error("parse failed", zap.Error(err))
	}
	if len(res.Errors) > 0 {
		return fmt.Errorf("%d of %d files failed", len(res.Errors), len(c.Files))
	}
	return nil
}

func printBatch(w io.Writer, results []batchResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d numeric\t%d nonnumeric\t%d errors\n",
			r.path, r.doc.FileType, humanize.Bytes(uint64(r.size)),
			len(r.doc.Numeric), len(r.doc.NonNumeric), len(r.doc.Errors))
	}
	return tw.Flush()
}

type FetchCmd struct {
	URL    string        `arg:"" optional:"" help:"Document URL"`
	CIK    string        `help:"Fetch the latest filing of --form for this CIK instead of a URL"`
	Ticker string        `help:"Like --cik, looking the CIK up by ticker symbol"`
	Form   string        `default:"10-K" help:"Form to look for with --cik or --ticker"`
	MaxAge time.Duration `name:"max-age" default:"24h" help:"Reuse a stored document fetched more recently than this"`
}

func (c *FetchCmd) Run(a *app) error {
	if a.cfg.Edgar.UserAgent == "" {
		return fmt.Errorf("edgar.user_agent must be configured: SEC rejects anonymous requests")
	}
	ctx, stop := interruptible()
	defer stop()

	client := edgar.NewEdgarClient(a.cfg.Edgar.UserAgent, a.cfg.Edgar.RateLimit, edgar.WithLogger(a.log))
	url, err := c.resolve(ctx, client)
	if err != nil {
		return err
	}

	database, err := db.New(a.cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close()

	stale, err := database.IsStale(url, c.MaxAge)
	if err != nil {
		return err
	}
	if !stale {
		rec, err := database.FindBySource(url)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s\t%s\t(cached %s)\n", rec.ID, url, humanize.Time(rec.UpdatedAt))
		return nil
	}

	src, err := client.Fetch(ctx, url)
	if err != nil {
		return err
	}
	opts, err := a.parseOptions("", false)
	if err != nil {
		return err
	}
	doc, err := ixbrl.Parse(bytes.NewReader(src), opts...)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", url, err)
	}
	summary := facts.FromDocument(doc)
	rec, err := database.StoreDocument(url, src, doc, summary.CompanyName)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\t%s\t%s\n", rec.ID, url, humanize.Bytes(uint64(rec.Size)))
	return printSummary(a.out, summary)
}

func (c *FetchCmd) resolve(ctx context.Context, client *edgar.EdgarClient) (string, error) {
	if c.URL != "" {
		return c.URL, nil
	}
	cik := c.CIK
	if c.Ticker != "" {
		tickers, err := client.LoadTickers(ctx)
		if err != nil {
			return "", err
		}
		if cik, err = tickers.Ticker2CIK(c.Ticker); err != nil {
			return "", err
		}
	}
	if cik == "" {
		return "", fmt.Errorf("give a URL, --cik or --ticker")
	}
	subs, err := client.LoadSubmissions(ctx, cik)
	if err != nil {
		return "", err
	}
	filing, ok := subs.Filings.Search(cik, c.Form)
	if !ok {
		return "", fmt.Errorf("no %s filing found for CIK %s", c.Form, cik)
	}
	return filing.URL(edgar.ArchiveURL), nil
}

type ArchiveCmd struct {
	Manifest    string   `arg:"" help:"CSV manifest (path or URL) with ARCHIVE and MEMBER columns"`
	IDs         []string `arg:"" optional:"" help:"Only parse the entries with these IDs"`
	Concurrency int      `short:"j" default:"4" help:"Archive members fetched at once"`
	CacheDir    string   `name:"cache-dir" type:"path" help:"Where remote manifests are cached"`
	Store       bool     `help:"Store every parsed document in the database"`
}

func (c *ArchiveCmd) Run(a *app) error {
	client, err := bulk.NewClient(c.Manifest, bulk.WithCacheDir(c.CacheDir), bulk.WithLogger(a.log))
	if err != nil {
		return err
	}
	entries := client.Entries
	if len(c.IDs) > 0 {
		entries = lo.Filter(entries, func(e bulk.Entry, _ int) bool {
			return lo.ContainsBy(c.IDs, func(id string) bool { return strings.EqualFold(id, e.ID) })
		})
	}
	opts, err := a.parseOptions("", false)
	if err != nil {
		return err
	}
	ctx, stop := interruptible()
	defer stop()

	res := client.ParseAll(ctx, entries, c.Concurrency, opts...)
	slices.SortFunc(res.Results, func(x, y bulk.Result) int { return strings.Compare(x.Entry.Member, y.Entry.Member) })
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, r := range res.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d numeric\n", r.Entry.ID, r.Entry.Name, r.Entry.Member, len(r.Document.Numeric))
		if c.Store {
			if err := store(a, r.Entry.Archive+"#"+r.Entry.Member, r.Source, r.Document); err != nil {
				return err
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, err := range res.Errors {
		a.log.Error("archive member failed", zap.Error(err))
	}
	if len(res.Errors) > 0 {
		return fmt.Errorf("%d of %d members failed", len(res.Errors), len(entries))
	}
	return nil
}

type SearchCmd struct {
	Query string `arg:"" help:"Concept or company name prefix"`
	Limit int    `default:"20"`
}

func (c *SearchCmd) Run(a *app) error {
	database, err := db.New(a.cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close()
	results, err := database.SearchConcepts(c.Query, c.Limit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.DocumentID, r.CompanyName, r.Concept)
	}
	return tw.Flush()
}
