// Package bulk reads iXBRL filings out of remote zip archives, such as
// the daily accounts bundles Companies House publishes, without
// downloading whole archives. A CSV manifest lists which member of which
// archive holds each filing.
package bulk

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ozkatz/cloudzip/pkg/remote"
	"github.com/ozkatz/cloudzip/pkg/zipfile"
	"go.uber.org/zap"

	"github.com/saranrapjs/ixbrlparse/pkg/concurrent"
	"github.com/saranrapjs/ixbrlparse/pkg/ixbrl"
)

// Entry is one manifest row.
type Entry struct {
	ID      string
	Name    string
	Archive string
	Member  string
}

// MemberOpener returns the contents of one member of a zip archive.
type MemberOpener func(ctx context.Context, archiveURL, member string) (io.Reader, error)

// ReadMember reads a member of a remote zip archive using HTTP range
// requests against its central directory.
func ReadMember(ctx context.Context, archiveURL, member string) (io.Reader, error) {
	fetcher, err := remote.NewHttpFetcher(archiveURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP fetcher: %w", err)
	}
	adapter := zipfile.NewStorageAdapter(ctx, fetcher)
	parser := zipfile.NewCentralDirectoryParser(adapter)
	reader, err := parser.Read(member)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s from ZIP: %w", member, err)
	}
	return reader, nil
}

type Client struct {
	cacheDir string
	open     MemberOpener
	log      *zap.Logger
	Entries  []Entry
}

type Option func(*Client)

// WithOpener replaces ReadMember.
func WithOpener(open MemberOpener) Option {
	return func(c *Client) { c.open = open }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithCacheDir sets where downloaded manifests are kept. The default is
// ~/.cache/ixbrlparse.
func WithCacheDir(dir string) Option {
	return func(c *Client) { c.cacheDir = dir }
}

// NewClient loads the manifest at manifest, a local path or an http(s)
// URL. Remote manifests are downloaded once into the cache directory.
func NewClient(manifest string, opts ...Option) (*Client, error) {
	c := &Client{open: ReadMember, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}

	path := manifest
	if isRemote(manifest) {
		var err error
		if path, err = c.cachedManifest(manifest); err != nil {
			return nil, err
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer file.Close()

	if c.Entries, err = ParseManifest(file); err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	return c, nil
}

func isRemote(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func (c *Client) cachedManifest(manifestURL string) (string, error) {
	dir := c.cacheDir
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".cache", "ixbrlparse")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	u, err := url.Parse(manifestURL)
	if err != nil {
		return "", fmt.Errorf("invalid manifest URL: %w", err)
	}
	cacheFile := filepath.Join(dir, "manifest_"+path.Base(u.Path))
	if _, err := os.Stat(cacheFile); err == nil {
		return cacheFile, nil
	}

	c.log.Info("downloading manifest", zap.String("url", manifestURL))
	resp, err := http.Get(manifestURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch manifest: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	file, err := os.Create(cacheFile)
	if err != nil {
		return "", fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()
	if _, err := io.Copy(file, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write cache file: %w", err)
	}
	return cacheFile, nil
}

// ParseManifest reads a CSV with an ARCHIVE and a MEMBER column, and
// optional ID and NAME columns. Header names are case-insensitive.
func ParseManifest(r io.Reader) ([]Entry, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no records found")
	}

	cols := map[string]int{"ID": -1, "NAME": -1, "ARCHIVE": -1, "MEMBER": -1}
	for i, col := range records[0] {
		if _, ok := cols[strings.ToUpper(strings.TrimSpace(col))]; ok {
			cols[strings.ToUpper(strings.TrimSpace(col))] = i
		}
	}
	if cols["ARCHIVE"] == -1 || cols["MEMBER"] == -1 {
		return nil, fmt.Errorf("required columns ARCHIVE and MEMBER not found in CSV")
	}

	field := func(record []string, name string) string {
		if i := cols[name]; i >= 0 && i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}
	entries := make([]Entry, 0, len(records)-1)
	for _, record := range records[1:] {
		e := Entry{
			ID:      field(record, "ID"),
			Name:    field(record, "NAME"),
			Archive: field(record, "ARCHIVE"),
			Member:  field(record, "MEMBER"),
		}
		if e.Archive == "" || e.Member == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Find returns the first entry with the given ID, ignoring case.
func (c *Client) Find(id string) (Entry, bool) {
	for _, e := range c.Entries {
		if strings.EqualFold(e.ID, id) {
			return e, true
		}
	}
	return Entry{}, false
}

// Fetch reads the filing an entry points at.
func (c *Client) Fetch(ctx context.Context, e Entry) ([]byte, error) {
	reader, err := c.open(ctx, e.Archive, e.Member)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file contents: %w", err)
	}
	return data, nil
}

// Result is a fetched and parsed filing.
type Result struct {
	Entry    Entry
	Source   []byte
	Document *ixbrl.Document
}

// ParseAll fetches and parses entries with at most maxConcurrency
// requests in flight. Results arrive in completion order.
func (c *Client) ParseAll(ctx context.Context, entries []Entry, maxConcurrency int, opts ...ixbrl.Option) concurrent.RunResult[Result] {
	runner := concurrent.NewRunner[Entry, Result](concurrent.RunnerConfig{
		MaxConcurrency: maxConcurrency,
		LogPrefix:      "bulk",
		Logger:         c.log,
	})
	return runner.Run(ctx, entries, func(e Entry, messages chan<- string, results chan<- Result, errors chan<- error) {
		src, err := c.Fetch(ctx, e)
		if err != nil {
			errors <- fmt.Errorf("%s: %w", e.Member, err)
			return
		}
		doc, err := ixbrl.Parse(bytes.NewReader(src), opts...)
		if err != nil {
			errors <- fmt.Errorf("%s: %w", e.Member, err)
			return
		}
		messages <- fmt.Sprintf("parsed %s: %d numeric facts", e.Member, len(doc.Numeric))
		results <- Result{Entry: e, Source: src, Document: doc}
	})
}
