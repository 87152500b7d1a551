package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/saranrapjs/ixbrlparse/pkg/db"
	"github.com/saranrapjs/ixbrlparse/pkg/facts"
	"github.com/saranrapjs/ixbrlparse/pkg/ixbrl"
)

type ParseCmd struct {
	File    string `arg:"" help:"Filing to parse, or - for standard input"`
	Format  string `short:"f" enum:"csv,json,jsonl,jsonlines" default:"csv" help:"Output format (csv, json, jsonl)"`
	Fields  string `enum:"numeric,nonnumeric,all" default:"all" help:"Which facts to output (numeric, nonnumeric, all)"`
	Outfile string `short:"o" type:"path" help:"Write to this file instead of standard output"`
	Mode    string `help:"Error handling mode, overriding the configuration"`
	Strict  bool   `help:"Fail when two providers claim the same format name"`
	Store   bool   `help:"Also store the parsed document in the database"`
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return src, nil
}

func (c *ParseCmd) Run(a *app) error {
	src, err := readInput(c.File)
	if err != nil {
		return err
	}
	opts, err := a.parseOptions(c.Mode, c.Strict)
	if err != nil {
		return err
	}
	doc, err := ixbrl.Parse(bytes.NewReader(src), opts...)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", c.File, err)
	}
	for _, rec := range doc.Errors {
		a.log.Warn("fact skipped", zap.String("context", rec.ContextID), zap.Error(rec))
	}
	a.log.Info("parsed",
		zap.String("file", c.File),
		zap.String("size", humanize.Bytes(uint64(len(src)))),
		zap.Int("numeric", len(doc.Numeric)),
		zap.Int("nonnumeric", len(doc.NonNumeric)))

	if c.Store {
		if err := store(a, c.File, src, doc); err != nil {
			return err
		}
	}

	fields, err := ixbrl.ParseFields(c.Fields)
	if err != nil {
		return err
	}
	out := a.out
	if c.Outfile != "" {
		f, err := os.Create(c.Outfile)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.Outfile, err)
		}
		defer f.Close()
		out = f
	}
	return writeDocument(out, doc, c.Format, fields)
}

func store(a *app, source string, src []byte, doc *ixbrl.Document) error {
	database, err := db.New(a.cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close()
	rec, err := database.StoreDocument(source, src, doc, facts.FromDocument(doc).CompanyName)
	if err != nil {
		return err
	}
	a.log.Info("stored", zap.String("id", rec.ID), zap.String("source", source))
	return nil
}

// writeDocument writes doc in one of the output formats. json writes the
// whole document; csv and jsonl write one row per fact.
func writeDocument(w io.Writer, doc *ixbrl.Document, format string, fields ixbrl.Fields) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc.ToJSON())
	case "jsonl", "jsonlines":
		return writeJSONLines(w, doc.ToTable(fields))
	case "csv", "":
		return writeCSV(w, doc.ToTable(fields))
	}
	return fmt.Errorf("unknown output format %q", format)
}

func writeJSONLines(w io.Writer, rows []ixbrl.Row) error {
	enc := json.NewEncoder(w)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

func writeCSV(w io.Writer, rows []ixbrl.Row) error {
	cols := ixbrl.Columns(rows)
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	record := make([]string, len(cols))
	for _, row := range rows {
		for i, col := range cols {
			record[i] = cell(row[col])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return fmt.Sprint(v)
}

type SummaryCmd struct {
	File string `arg:"" help:"Filing to summarize, or - for standard input"`
	JSON bool   `help:"Write the summary as JSON"`
}

func (c *SummaryCmd) Run(a *app) error {
	src, err := readInput(c.File)
	if err != nil {
		return err
	}
	opts, err := a.parseOptions("collect", false)
	if err != nil {
		return err
	}
	doc, err := ixbrl.Parse(bytes.NewReader(src), opts...)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", c.File, err)
	}
	summary := facts.FromDocument(doc)
	if c.JSON {
		return json.NewEncoder(a.out).Encode(summary)
	}
	return printSummary(a.out, summary)
}

func printSummary(w io.Writer, s *facts.Facts) error {
	if s.CompanyName != "" {
		fmt.Fprintf(w, "%s\n", s.CompanyName)
	}
	if s.PeriodEnd != "" {
		fmt.Fprintf(w, "period end: %s\n", s.PeriodEnd)
	}
	if s.EmployeesCount > 0 {
		fmt.Fprintf(w, "employees: %s\n", humanize.Comma(int64(s.EmployeesCount)))
	}
	for _, line := range s.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
