package ixbrl

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap/zaptest"

	"github.com/saranrapjs/ixbrlparse/pkg/transform"
	"github.com/saranrapjs/ixbrlparse/pkg/xbrlerr"
)

const inlineFiling = `<html xmlns="http://www.w3.org/1999/xhtml"
	xmlns:ix="http://www.xbrl.org/2013/inlineXBRL"
	xmlns:xbrli="http://www.xbrl.org/2003/instance"
	xmlns:xbrldi="http://xbrl.org/2006/xbrldi"
	xmlns:link="http://www.xbrl.org/2003/linkbase"
	xmlns:xlink="http://www.w3.org/1999/xlink"
	xmlns:us-gaap="http://fasb.org/us-gaap/2023"
	xmlns:dei="http://xbrl.sec.gov/dei/2023">
<head><title>Acme 10-K</title></head>
<body>
<div style="display:none">
<ix:header>
<ix:references><link:schemaRef xlink:type="simple" xlink:href="acme-20231231.xsd"></link:schemaRef></ix:references>
<ix:resources>
	<xbrli:context id="FY2023">
		<xbrli:entity><xbrli:identifier scheme="http://www.sec.gov/CIK">0000012345</xbrli:identifier></xbrli:entity>
		<xbrli:period><xbrli:startDate>2023-01-01</xbrli:startDate><xbrli:endDate>2023-12-31</xbrli:endDate></xbrli:period>
	</xbrli:context>
	<xbrli:context id="AsOf2023">
		<xbrli:entity>
			<xbrli:identifier scheme="http://www.sec.gov/CIK">0000012345</xbrli:identifier>
			<xbrli:segment><xbrldi:explicitMember dimension="us-gaap:StatementClassOfStockAxis">us-gaap:CommonStockMember</xbrldi:explicitMember></xbrli:segment>
		</xbrli:entity>
		<xbrli:period><xbrli:instant>2023-12-31</xbrli:instant></xbrli:period>
	</xbrli:context>
	<xbrli:unit id="usd"><xbrli:measure>iso4217:USD</xbrli:measure></xbrli:unit>
	<xbrli:unit id="usdPerShare"><xbrli:divide>
		<xbrli:unitNumerator><xbrli:measure>iso4217:USD</xbrli:measure></xbrli:unitNumerator>
		<xbrli:unitDenominator><xbrli:measure>xbrli:shares</xbrli:measure></xbrli:unitDenominator>
	</xbrli:divide></xbrli:unit>
	<xbrli:unit id="pure"></xbrli:unit>
</ix:resources>
</ix:header>
</div>
<p>Name: <ix:nonNumeric name="dei:EntityRegistrantName" contextRef="FY2023">Acme <ix:exclude>(formerly Widgets) </ix:exclude>Corp</ix:nonNumeric></p>
<p>Period end: <ix:nonNumeric name="dei:DocumentPeriodEndDate" contextRef="FY2023" format="ixt:date-monthname-day-year-en">December 31, 2023</ix:nonNumeric></p>
<p><ix:nonNumeric name="us-gaap:DescriptionOfBusiness" contextRef="FY2023" continuedAt="cont1">We make widgets</ix:nonNumeric></p>
<p><ix:continuation id="cont1"> and gadgets.</ix:continuation></p>
<p>Revenue <ix:nonFraction name="us-gaap:Revenues" contextRef="FY2023" unitRef="usd" decimals="-6" scale="6" format="ixt:num-dot-decimal">1,234.5</ix:nonFraction></p>
<p>Loss (<ix:nonFraction name="us-gaap:NetIncomeLoss" contextRef="FY2023" unitRef="usd" decimals="INF" sign="-" format="ixt:num-dot-decimal">56</ix:nonFraction>)</p>
<p>EPS <ix:nonFraction name="us-gaap:EarningsPerShareBasic" contextRef="FY2023" unitRef="usdPerShare" decimals="2">1.25</ix:nonFraction></p>
<p>Shares <ix:nonFraction name="dei:EntityCommonStockSharesOutstanding" contextRef="AsOf2023" unitRef="shares" decimals="0" format="ixt:fixed-zero">none</ix:nonFraction></p>
<p>Ratio <ix:nonFraction name="custom:Ratio" contextRef="Missing" unitRef="pure" decimals="0">3</ix:nonFraction></p>
</body>
</html>`

func parseInline(t *testing.T, src string, opts ...Option) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(src), opts...)
	require.NoError(t, err)
	return doc
}

func TestParseInline(t *testing.T) {
	doc := parseInline(t, inlineFiling)

	assert.Equal(t, FileTypeIXBRL, doc.FileType)
	assert.Equal(t, "acme-20231231.xsd", doc.Schema)
	assert.Equal(t, []string{"http://fasb.org/us-gaap/2023"}, doc.Namespaces["xmlns:us-gaap"])
	assert.Empty(t, doc.Errors)

	require.Len(t, doc.Contexts, 2)
	fy := doc.Contexts["FY2023"]
	require.NotNil(t, fy)
	assert.False(t, fy.IsInstant())
	assert.Equal(t, "2023-01-01", fy.StartDate.Format(DateLayout))
	assert.Equal(t, "2023-12-31", fy.End().Format(DateLayout))
	assert.Equal(t, Entity{Scheme: "http://www.sec.gov/CIK", Identifier: "0000012345"}, fy.Entity)
	assert.Equal(t, "FY2023 [2023-01-01 to 2023-12-31]", fy.String())

	asOf := doc.Contexts["AsOf2023"]
	require.NotNil(t, asOf)
	assert.True(t, asOf.IsInstant())
	require.Len(t, asOf.Segments, 1)
	assert.Equal(t, "us-gaap:StatementClassOfStockAxis", asOf.Segments[0].Dimension)
	assert.Equal(t, "us-gaap:CommonStockMember", asOf.Segments[0].Value)
	assert.Equal(t, "AsOf2023 [2023-12-31] (with segments)", asOf.String())

	require.Len(t, doc.Units, 3)
	assert.Equal(t, "iso4217:USD", *doc.Units["usd"].Measure)
	assert.Equal(t, "iso4217:USD", *doc.Units["usdPerShare"].Measure)
	assert.Nil(t, doc.Units["pure"].Measure)
}

func TestInlineNonNumeric(t *testing.T) {
	doc := parseInline(t, inlineFiling)
	require.Len(t, doc.NonNumeric, 3)

	name := doc.NonNumeric[0]
	assert.Equal(t, "dei", name.Schema)
	assert.Equal(t, "EntityRegistrantName", name.Name)
	assert.Equal(t, transform.StringValue("Acme Corp"), name.Value)
	assert.Nil(t, name.Format)
	ctx, ok := name.Context.Context()
	require.True(t, ok)
	assert.Same(t, doc.Contexts["FY2023"], ctx)

	period := doc.NonNumeric[1]
	assert.Equal(t, "December 31, 2023", period.Text)
	require.NotNil(t, period.Format)
	assert.Equal(t, "date-monthname-day-year-en", period.Format.Name)
	assert.Equal(t, transform.KindDate, period.Value.Kind)
	assert.Equal(t, "2023-12-31", period.Value.Date.String())

	assert.Equal(t, "We make widgets and gadgets.", doc.NonNumeric[2].Value.Text)
	assert.Equal(t, "We make widgets", doc.NonNumeric[2].Display())
}

func TestInlineNumeric(t *testing.T) {
	doc := parseInline(t, inlineFiling)
	require.Len(t, doc.Numeric, 5)

	revenue := Search(doc.Numeric, func(f *NumericFact) bool { return f.Name == "Revenues" })
	require.NotNil(t, revenue)
	assert.InDelta(t, 1234500000, revenue.Value.Number, 1e-3)
	require.NotNil(t, revenue.Format.Decimals)
	assert.Equal(t, -6, *revenue.Format.Decimals)
	assert.Equal(t, "iso4217:USD", *revenue.UnitString())
	assert.Nil(t, Search(doc.Numeric, func(f *NumericFact) bool { return f.Name == "Assets" }))
	usd := Filter(doc.Numeric, func(f *NumericFact) bool { return f.Unit != nil && f.Unit.ID == "usd" })
	require.Len(t, usd, 2)
	assert.Equal(t, "Revenues", usd[0].Name)
	assert.Empty(t, doc.Concept("us-gaap:Assets"))

	loss := doc.Concept("US-GAAP:netincomeloss")
	require.Len(t, loss, 1)
	assert.Equal(t, -56.0, loss[0].Value.Number)
	assert.Nil(t, loss[0].Format.Decimals)

	eps := doc.Concept("us-gaap:EarningsPerShareBasic")[0]
	assert.Equal(t, 1.25, eps.Value.Number)
	assert.Equal(t, "usdPerShare", eps.Unit.ID)

	shares := doc.Concept("dei:EntityCommonStockSharesOutstanding")[0]
	assert.Equal(t, transform.NumberValue(0), shares.Value)
	assert.Nil(t, shares.Unit)
	assert.Equal(t, "shares", *shares.UnitString())

	ratio := doc.Concept("custom:Ratio")[0]
	_, ok := ratio.Context.Context()
	assert.False(t, ok)
	assert.Equal(t, "Missing", ratio.Context.ID())
	assert.Nil(t, ratio.UnitString())

	assert.Equal(t, []string{
		"custom:Ratio",
		"dei:EntityCommonStockSharesOutstanding",
		"us-gaap:EarningsPerShareBasic",
		"us-gaap:NetIncomeLoss",
		"us-gaap:Revenues",
	}, doc.Concepts())
}

const selfClosingFiling = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml"
	xmlns:ix="http://www.xbrl.org/2013/inlineXBRL"
	xmlns:xbrli="http://www.xbrl.org/2003/instance"
	xmlns:xbrldi="http://xbrl.org/2006/xbrldi"
	xmlns:link="http://www.xbrl.org/2003/linkbase"
	xmlns:xlink="http://www.w3.org/1999/xlink"
	xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
	xmlns:us-gaap="http://fasb.org/us-gaap/2023">
<body>
<ix:header>
<ix:references><link:schemaRef xlink:type="simple" xlink:href="acme-20231231.xsd"/></ix:references>
<ix:resources>
	<xbrli:context id="AsOf2023">
		<xbrli:entity><xbrli:segment><xbrldi:explicitMember dimension="us-gaap:StatementClassOfStockAxis">us-gaap:CommonStockMember</xbrldi:explicitMember></xbrli:segment></xbrli:entity>
		<xbrli:period><xbrli:instant>2023-12-31</xbrli:instant></xbrli:period>
	</xbrli:context>
	<xbrli:unit id="usd"><xbrli:measure>iso4217:USD</xbrli:measure></xbrli:unit>
</ix:resources>
</ix:header>
<p>Dividends&nbsp;<ix:nonFraction name="us-gaap:Dividends" contextRef="AsOf2023" unitRef="usd" xsi:nil="true"/>
Cash <ix:nonFraction name="us-gaap:Cash" contextRef="AsOf2023" unitRef="usd" decimals="0" format="ixt:num-dot-decimal">1,000</ix:nonFraction></p>
</body>
</html>`

func TestParseXHTML(t *testing.T) {
	doc := parseInline(t, selfClosingFiling)

	assert.Equal(t, FileTypeIXBRL, doc.FileType)
	assert.Equal(t, "acme-20231231.xsd", doc.Schema)
	require.Len(t, doc.Contexts, 1)
	require.Len(t, doc.Contexts["AsOf2023"].Segments, 1)
	assert.Equal(t, "xbrldi:explicitMember", doc.Contexts["AsOf2023"].Segments[0].Tag)

	require.Len(t, doc.Numeric, 2)
	dividends := doc.Numeric[0]
	assert.Equal(t, "Dividends", dividends.Name)
	assert.True(t, dividends.Value.IsNull())
	assert.Empty(t, dividends.Element.Children())

	cash := doc.Numeric[1]
	assert.Equal(t, "Cash", cash.Name)
	assert.Equal(t, 1000.0, cash.Value.Number)

	rows := doc.ToTable(FieldsNumeric)
	require.Len(t, rows, 2)
	assert.Equal(t, "xbrldi:explicitMember us-gaap:StatementClassOfStockAxis us-gaap:CommonStockMember", rows[1]["segment:0"])
}

func TestToJSON(t *testing.T) {
	doc := parseInline(t, inlineFiling)
	b, err := json.Marshal(doc.ToJSON())
	require.NoError(t, err)
	out := gjson.ParseBytes(b)

	assert.Equal(t, "acme-20231231.xsd", out.Get("schema").String())
	assert.Equal(t, "2023-01-01", out.Get("contexts.FY2023.startdate").String())
	assert.Equal(t, gjson.Null, out.Get("contexts.FY2023.instant").Type)
	assert.Equal(t, "2023-12-31", out.Get("contexts.AsOf2023.instant").String())
	assert.Equal(t, "iso4217:USD", out.Get("units.usd").String())
	assert.Equal(t, gjson.Null, out.Get("units.pure").Type)

	assert.Equal(t, "2023-12-31", out.Get("nonnumeric.1.value").String())
	assert.Equal(t, "date-monthname-day-year-en", out.Get("nonnumeric.1.format.format").String())
	assert.Equal(t, gjson.Null, out.Get("nonnumeric.0.format").Type)

	assert.Equal(t, 1234500000.0, out.Get("numeric.0.value").Float())
	assert.Equal(t, int64(-6), out.Get("numeric.0.format.decimals").Int())
	assert.Equal(t, "FY2023", out.Get("numeric.0.context.id").String())
	assert.Equal(t, gjson.Null, out.Get("numeric.1.format.decimals").Type)
	assert.Equal(t, "Missing", out.Get("numeric.4.context").String())
	assert.Equal(t, int64(0), out.Get("errors").Int())
}

func TestToTable(t *testing.T) {
	doc := parseInline(t, inlineFiling)

	rows := doc.ToTable(FieldsAll)
	require.Len(t, rows, 8)
	assert.Equal(t, "EntityRegistrantName", rows[0]["name"])
	assert.Equal(t, "http://xbrl.sec.gov/dei/2023", rows[0]["schema"])
	assert.Equal(t, "Acme Corp", rows[0]["value"])
	assert.Nil(t, rows[0]["unit"])
	assert.Equal(t, "2023-01-01", rows[0]["startdate"])
	assert.Equal(t, "", rows[0]["segment:0"])

	numeric := doc.ToTable(FieldsNumeric)
	require.Len(t, numeric, 5)
	assert.Equal(t, rows[3:], numeric)

	shares := numeric[3]
	assert.Equal(t, "EntityCommonStockSharesOutstanding", shares["name"])
	assert.Equal(t, "2023-12-31", shares["instant"])
	assert.Nil(t, shares["startdate"])
	assert.Equal(t, "xbrldi:explicitMember us-gaap:StatementClassOfStockAxis us-gaap:CommonStockMember", shares["segment:0"])

	ratio := numeric[4]
	assert.Equal(t, "custom", ratio["schema"])
	assert.Nil(t, ratio["instant"])
	assert.Equal(t, 3.0, ratio["value"])

	assert.Len(t, doc.ToTable(FieldsNonNumeric), 3)
	assert.Equal(t, append(BaseColumns[:len(BaseColumns):len(BaseColumns)], "segment:0"), Columns(rows))
}

func TestColumnsOrdersSegments(t *testing.T) {
	rows := []Row{
		{"name": "a", "segment:0": "x"},
		{"name": "b", "segment:10": "y", "segment:2": "z", "extra": 1},
	}
	cols := Columns(rows)
	assert.Equal(t, []string{"segment:0", "segment:2", "segment:10", "extra"}, cols[len(BaseColumns):])
}

func TestParseFields(t *testing.T) {
	f, err := ParseFields("ALL")
	require.NoError(t, err)
	assert.Equal(t, FieldsAll, f)
	f, err = ParseFields("")
	require.NoError(t, err)
	assert.Equal(t, FieldsNumeric, f)
	_, err = ParseFields("some")
	assert.Error(t, err)
}

func withBody(resources, body string) string {
	return `<html><body><ix:header><ix:resources>` + resources + `</ix:resources></ix:header>` + body + `</body></html>`
}

const instantContext = `<xbrli:context id="c1"><xbrli:period><xbrli:instant>2020-06-30</xbrli:instant></xbrli:period></xbrli:context>`

func TestContextPeriodErrors(t *testing.T) {
	for name, period := range map[string]string{
		"both":       `<xbrli:instant>2020-01-01</xbrli:instant><xbrli:startDate>2019-01-01</xbrli:startDate><xbrli:endDate>2019-12-31</xbrli:endDate>`,
		"neither":    ``,
		"incomplete": `<xbrli:startDate>2019-01-01</xbrli:startDate>`,
		"bad date":   `<xbrli:instant>2020-13-01</xbrli:instant>`,
		"loose date": `<xbrli:instant>1 Jan 2020</xbrli:instant>`,
	} {
		t.Run(name, func(t *testing.T) {
			src := withBody(`<xbrli:context id="bad"><xbrli:period>`+period+`</xbrli:period></xbrli:context>`+instantContext,
				`<ix:nonFraction name="a:B" contextRef="bad" unitRef="u">1</ix:nonFraction>`)

			_, err := Parse(strings.NewReader(src))
			require.Error(t, err)
			assert.True(t, xbrlerr.IsStructural(err))
			assert.False(t, xbrlerr.IsConversion(err))

			doc, err := Parse(strings.NewReader(src), WithMode(Collect))
			require.NoError(t, err)
			require.Len(t, doc.Errors, 1)
			assert.Equal(t, "bad", doc.Errors[0].ContextID)
			assert.Contains(t, doc.Contexts, "c1")
			assert.NotContains(t, doc.Contexts, "bad")
			require.Len(t, doc.Numeric, 1)
			assert.Equal(t, "bad", doc.Numeric[0].Context.ID())
		})
	}
}

func TestConversionErrors(t *testing.T) {
	src := withBody(instantContext, `
		<ix:nonFraction name="a:Good" contextRef="c1" unitRef="u" format="ixt:num-comma-decimal">1234,56</ix:nonFraction>
		<ix:nonFraction name="a:Bad" contextRef="c1" unitRef="u" format="ixt:num-dot-decimal">abc</ix:nonFraction>
		<ix:nonFraction name="a:Date" contextRef="c1" unitRef="u" format="ixt:date-day-month-year">01/02/2020</ix:nonFraction>`)

	_, err := Parse(strings.NewReader(src))
	var conv *xbrlerr.ConversionError
	require.ErrorAs(t, err, &conv)
	assert.Equal(t, "abc", conv.Value)
	assert.False(t, xbrlerr.IsStructural(err))

	doc, err := Parse(strings.NewReader(src), WithMode(Collect), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	require.Len(t, doc.Numeric, 1)
	assert.Equal(t, 1234.56, doc.Numeric[0].Value.Number)
	require.Len(t, doc.Errors, 2)
	assert.ErrorIs(t, doc.Errors[0], xbrlerr.ErrConversion)
	assert.Equal(t, "c1", doc.Errors[0].ContextID)
	assert.Contains(t, doc.Errors[1].Error(), "ix:nonfraction")
	assert.Equal(t, 2, doc.ToJSON().Errors)
}

func TestUnknownFormatKeepsText(t *testing.T) {
	src := withBody(instantContext,
		`<ix:nonNumeric name="a:Note" contextRef="c1" format="ixt:flurg">some text</ix:nonNumeric>`)

	_, err := Parse(strings.NewReader(src))
	assert.ErrorIs(t, err, xbrlerr.ErrUnknownFormat)

	doc, err := Parse(strings.NewReader(src), WithMode(Collect))
	require.NoError(t, err)
	require.Len(t, doc.NonNumeric, 1)
	assert.Equal(t, transform.StringValue("some text"), doc.NonNumeric[0].Value)
	require.Len(t, doc.Errors, 1)
	var unknown *xbrlerr.UnknownFormatError
	require.True(t, errors.As(doc.Errors[0].Err, &unknown))
	assert.Equal(t, "flurg", unknown.Format)
}

func TestMissingAttributes(t *testing.T) {
	src := withBody(instantContext, `
		<ix:nonNumeric contextRef="c1">anonymous</ix:nonNumeric>
		<ix:nonFraction name="a:NoUnit" contextRef="c1">1</ix:nonFraction>
		<ix:nonFraction name="a:NoContext" unitRef="u">1</ix:nonFraction>`)

	_, err := Parse(strings.NewReader(src))
	var structural *xbrlerr.StructuralError
	require.ErrorAs(t, err, &structural)
	assert.Equal(t, "name", structural.Attr)

	doc, err := Parse(strings.NewReader(src), WithMode(Collect))
	require.NoError(t, err)
	assert.Empty(t, doc.NonNumeric)
	assert.Empty(t, doc.Numeric)
	require.Len(t, doc.Errors, 3)
	for _, rec := range doc.Errors {
		assert.True(t, xbrlerr.IsStructural(rec))
	}
}

func TestRegistryOption(t *testing.T) {
	src := withBody(instantContext, `
		<ix:nonNumeric name="a:Empty" contextRef="c1" format="ixt:fixed-empty"></ix:nonNumeric>
		<ix:nonFraction name="a:Nil" contextRef="c1" unitRef="u" xsi:nil="true"></ix:nonFraction>`)

	doc := parseInline(t, src)
	assert.True(t, doc.NonNumeric[0].Value.IsNull())
	assert.True(t, doc.Numeric[0].Value.IsNull())

	r, err := transform.NewRegistry(transform.RegistryOpts{NoContent: transform.NoContentZero})
	require.NoError(t, err)
	doc = parseInline(t, src, WithRegistry(r))
	assert.Equal(t, transform.NumberValue(0), doc.NonNumeric[0].Value)
}

func TestUnrecognisedFiletype(t *testing.T) {
	_, err := Parse(strings.NewReader(`<?xml version="1.0"?><report><item>1</item></report>`))
	var structural *xbrlerr.StructuralError
	require.ErrorAs(t, err, &structural)
	assert.Equal(t, "report", structural.Element)
	assert.Contains(t, err.Error(), "filetype not recognised")
}

const instanceFiling = `<?xml version="1.0" encoding="UTF-8"?>
<xbrli:xbrl xmlns:xbrli="http://www.xbrl.org/2003/instance"
	xmlns:link="http://www.xbrl.org/2003/linkbase"
	xmlns:xlink="http://www.w3.org/1999/xlink"
	xmlns:iso4217="http://www.xbrl.org/2003/iso4217"
	xmlns:uk-gaap="http://www.xbrl.org/uk/gaap/core/2009-09-01"
	xmlns:uk-bus="http://www.xbrl.org/uk/cd/business/2009-09-01">
	<link:schemaRef xlink:type="simple" xlink:href="http://www.xbrl.org/uk/gaap/core/2009-09-01/uk-gaap-full-2009-09-01.xsd"/>
	<xbrli:context id="cy">
		<xbrli:entity><xbrli:identifier scheme="http://www.companieshouse.gov.uk/">01234567</xbrli:identifier></xbrli:entity>
		<xbrli:period><xbrli:startDate>2009-01-01</xbrli:startDate><xbrli:endDate>2009-12-31</xbrli:endDate></xbrli:period>
	</xbrli:context>
	<xbrli:context id="eoy">
		<xbrli:entity><xbrli:identifier scheme="http://www.companieshouse.gov.uk/">01234567</xbrli:identifier></xbrli:entity>
		<xbrli:period><xbrli:instant>2009-12-31</xbrli:instant></xbrli:period>
	</xbrli:context>
	<xbrli:unit id="GBP"><xbrli:measure>iso4217:GBP</xbrli:measure></xbrli:unit>
	<uk-bus:EntityCurrentLegalOrRegisteredName contextRef="cy">Acme
 Limited</uk-bus:EntityCurrentLegalOrRegisteredName>
	<uk-gaap:TurnoverGrossOperatingRevenue contextRef="cy" unitRef="GBP" decimals="0">1000</uk-gaap:TurnoverGrossOperatingRevenue>
	<uk-gaap:ShareholderFunds contextRef="eoy" unitRef="GBP" decimals="0">-250.5</uk-gaap:ShareholderFunds>
</xbrli:xbrl>`

func TestParseInstance(t *testing.T) {
	doc := parseInline(t, instanceFiling)

	assert.Equal(t, FileTypeXBRL, doc.FileType)
	assert.Equal(t, "http://www.xbrl.org/uk/gaap/core/2009-09-01/uk-gaap-full-2009-09-01.xsd", doc.Schema)
	assert.Len(t, doc.Contexts, 2)
	assert.Equal(t, "iso4217:GBP", *doc.Units["GBP"].Measure)

	require.Len(t, doc.NonNumeric, 1)
	assert.Equal(t, "uk-bus", doc.NonNumeric[0].Schema)
	assert.Equal(t, "EntityCurrentLegalOrRegisteredName", doc.NonNumeric[0].Name)
	assert.Equal(t, "Acme Limited", doc.NonNumeric[0].Value.Text)

	require.Len(t, doc.Numeric, 2)
	assert.Equal(t, "uk-gaap:TurnoverGrossOperatingRevenue", doc.Numeric[0].QName())
	assert.Equal(t, 1000.0, doc.Numeric[0].Value.Number)
	assert.Equal(t, -250.5, doc.Numeric[1].Value.Number)
	ctx, ok := doc.Numeric[1].Context.Context()
	require.True(t, ok)
	assert.True(t, ctx.IsInstant())

	rows := doc.ToTable(FieldsNumeric)
	assert.Equal(t, "http://www.xbrl.org/uk/gaap/core/2009-09-01", rows[0]["schema"])
	assert.Equal(t, "iso4217:GBP", rows[0]["unit"])
}
