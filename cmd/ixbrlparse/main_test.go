package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/saranrapjs/ixbrlparse/pkg/config"
	"github.com/saranrapjs/ixbrlparse/pkg/ixbrl"
	"github.com/saranrapjs/ixbrlparse/pkg/transform"
)

const filing = `<html><body><ix:header><ix:resources>
	<xbrli:context id="FY2023"><xbrli:period><xbrli:startDate>2023-01-01</xbrli:startDate><xbrli:endDate>2023-12-31</xbrli:endDate></xbrli:period></xbrli:context>
	<xbrli:context id="Common"><xbrli:entity><xbrli:segment><xbrldi:explicitMember dimension="us-gaap:StatementClassOfStockAxis">us-gaap:CommonStockMember</xbrldi:explicitMember></xbrli:segment></xbrli:entity><xbrli:period><xbrli:instant>2023-12-31</xbrli:instant></xbrli:period></xbrli:context>
	<xbrli:unit id="usd"><xbrli:measure>iso4217:USD</xbrli:measure></xbrli:unit>
</ix:resources></ix:header>
<p><ix:nonNumeric name="dei:EntityRegistrantName" contextRef="FY2023">Acme, Inc.</ix:nonNumeric></p>
<p><ix:nonFraction name="us-gaap:Revenues" contextRef="FY2023" unitRef="usd" decimals="0" format="ixt:num-dot-decimal">1,234</ix:nonFraction></p>
<p><ix:nonFraction name="us-gaap:SharesOutstanding" contextRef="Common" unitRef="shares" decimals="0">500</ix:nonFraction></p>
<p><ix:nonFraction name="us-gaap:Broken" contextRef="FY2023" unitRef="usd" format="ixt:num-dot-decimal">n/a</ix:nonFraction></p>
</body></html>`

func testApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Database = filepath.Join(t.TempDir(), "test.db")
	var out bytes.Buffer
	return &app{cfg: cfg, log: zap.NewNop(), out: &out}, &out
}

func parseDoc(t *testing.T) *ixbrl.Document {
	t.Helper()
	doc, err := ixbrl.Parse(strings.NewReader(filing), ixbrl.WithMode(ixbrl.Collect))
	require.NoError(t, err)
	return doc
}

func writeFiling(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filing.htm")
	require.NoError(t, os.WriteFile(path, []byte(filing), 0644))
	return path
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeDocument(&buf, parseDoc(t), "csv", ixbrl.FieldsAll))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, append(ixbrl.BaseColumns[:len(ixbrl.BaseColumns):len(ixbrl.BaseColumns)], "segment:0"), records[0])
	assert.Equal(t, []string{"dei", "EntityRegistrantName", "Acme, Inc.", "", "", "2023-01-01", "2023-12-31", ""}, records[1])
	assert.Equal(t, []string{"us-gaap", "Revenues", "1234", "iso4217:USD", "", "2023-01-01", "2023-12-31", ""}, records[2])
	assert.Equal(t, "shares", records[3][3])
	assert.Equal(t, "xbrldi:explicitmember us-gaap:StatementClassOfStockAxis us-gaap:CommonStockMember", records[3][7])
}

func TestWriteJSON(t *testing.T) {
	doc := parseDoc(t)

	var buf bytes.Buffer
	require.NoError(t, writeDocument(&buf, doc, "json", ixbrl.FieldsNumeric))
	assert.Equal(t, int64(1), gjson.Get(buf.String(), "errors").Int())
	assert.Equal(t, "Acme, Inc.", gjson.Get(buf.String(), "nonnumeric.0.value").String())

	buf.Reset()
	require.NoError(t, writeDocument(&buf, doc, "jsonlines", ixbrl.FieldsNumeric))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 1234.0, gjson.Get(lines[0], "value").Float())
	assert.Equal(t, "", gjson.Get(lines[0], "segment:0").String())
	assert.Equal(t, "2023-12-31", gjson.Get(lines[1], "instant").String())

	assert.Error(t, writeDocument(&buf, doc, "xml", ixbrl.FieldsNumeric))
}

func TestParseCmd(t *testing.T) {
	a, out := testApp(t)
	path := writeFiling(t)

	cmd := &ParseCmd{File: path, Format: "csv", Fields: "numeric"}
	err := cmd.Run(a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "n/a")

	cmd.Mode = "collect"
	cmd.Store = true
	require.NoError(t, cmd.Run(a))
	assert.Contains(t, out.String(), "us-gaap,Revenues,1234,iso4217:USD")

	out.Reset()
	cmd.Outfile = filepath.Join(t.TempDir(), "out.jsonl")
	cmd.Format = "jsonl"
	require.NoError(t, cmd.Run(a))
	assert.Empty(t, out.String())
	written, err := os.ReadFile(cmd.Outfile)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(written)), "\n"), 2)

	require.NoError(t, (&SearchCmd{Query: "revenues", Limit: 5}).Run(a))
	assert.Contains(t, out.String(), "Acme, Inc.")
	assert.Contains(t, out.String(), "us-gaap:Revenues")
}

func TestParseCmdDefaults(t *testing.T) {
	var cli struct {
		Parse ParseCmd `cmd:""`
	}
	parser, err := kong.New(&cli)
	require.NoError(t, err)
	_, err = parser.Parse([]string{"parse", "filing.htm"})
	require.NoError(t, err)
	assert.Equal(t, "all", cli.Parse.Fields)
	assert.Equal(t, "csv", cli.Parse.Format)

	a, out := testApp(t)
	cli.Parse.File = writeFiling(t)
	cli.Parse.Mode = "collect"
	require.NoError(t, cli.Parse.Run(a))
	records, err := csv.NewReader(strings.NewReader(out.String())).ReadAll()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "EntityRegistrantName")
	assert.Contains(t, out.String(), "us-gaap,Revenues,1234,iso4217:USD")
	assert.Len(t, records, 4)
}

func TestSummaryCmd(t *testing.T) {
	a, out := testApp(t)
	require.NoError(t, (&SummaryCmd{File: writeFiling(t)}).Run(a))
	assert.Equal(t, "Acme, Inc.\n"+
		"us-gaap:Revenues\t1,234 USD\t2023-01-01 thru 2023-12-31\n"+
		"us-gaap:SharesOutstanding\t500 shares\t2023-12-31\n", out.String())
}

func TestBatchCmd(t *testing.T) {
	a, out := testApp(t)
	good := writeFiling(t)
	err := (&BatchCmd{Files: []string{good, good}, Concurrency: 2, Mode: "collect"}).Run(a)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "2 numeric")
	assert.Contains(t, lines[0], "1 errors")

	err = (&BatchCmd{Files: []string{good, filepath.Join(t.TempDir(), "missing.htm")}, Concurrency: 1, Mode: "collect"}).Run(a)
	assert.EqualError(t, err, "1 of 2 files failed")
}

func TestListFormats(t *testing.T) {
	r, err := transform.NewRegistry(transform.RegistryOpts{
		ExcludePlugins: true,
		Providers: []transform.Provider{{
			Name:    "acme",
			Entries: []transform.Entry{{Names: []string{"acme:shout"}, Factory: func() transform.Parser { return nil }}},
		}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, listFormats(&buf, r, "acme"))
	assert.Equal(t, "shout  acme\n", buf.String())

	buf.Reset()
	require.NoError(t, listFormats(&buf, r, ""))
	assert.Contains(t, buf.String(), "numdotdecimal")
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), len(r.Names()))
}

func TestCell(t *testing.T) {
	assert.Equal(t, "", cell(nil))
	assert.Equal(t, "0.1", cell(0.1))
	assert.Equal(t, "1e+21", cell("1e+21"))
	assert.Equal(t, "1000000000000000000000", cell(1e21))
	assert.Equal(t, "true", cell(true))
}
