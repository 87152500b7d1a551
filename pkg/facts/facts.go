package facts

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/message"

	"github.com/saranrapjs/ixbrlparse/pkg/doctree"
	"github.com/saranrapjs/ixbrlparse/pkg/ixbrl"
	"github.com/saranrapjs/ixbrlparse/pkg/transform"
)

// Facts summarizes a parsed filing: who filed it, the numeric facts
// grouped by concept, and a few figures scraped from the prose.
type Facts struct {
	CIK            string       `json:"cik,omitempty"`
	CompanyName    string       `json:"company_name"`
	PeriodEnd      string       `json:"period_end,omitempty"`
	Series         []Series     `json:"series"`
	CEOPayRatio    *CEOPayRatio `json:"ceo_pay_ratio,omitempty"`
	EmployeesCount int          `json:"employees_count"`
}

// Series is every numeric fact reported for one concept, newest period
// first.
type Series struct {
	Concept string               `json:"concept"`
	Facts   []*ixbrl.NumericFact `json:"-"`
}

// Latest returns the fact for the most recent period.
func (s Series) Latest() *ixbrl.NumericFact {
	if len(s.Facts) == 0 {
		return nil
	}
	return s.Facts[0]
}

var (
	companyNames = []string{"dei:EntityRegistrantName", "uk-bus:EntityCurrentLegalOrRegisteredName", "bus:EntityCurrentLegalOrRegisteredName"}
	cikNames     = []string{"dei:EntityCentralIndexKey"}
	periodNames  = []string{"dei:DocumentPeriodEndDate", "uk-bus:BalanceSheetDate", "bus:BalanceSheetDate"}
)

// FromDocument builds the summary of doc.
func FromDocument(doc *ixbrl.Document) *Facts {
	facts := &Facts{
		CompanyName: nonNumeric(doc, companyNames),
		CIK:         nonNumeric(doc, cikNames),
		PeriodEnd:   nonNumeric(doc, periodNames),
	}

	groups := make(map[string][]*ixbrl.NumericFact)
	for _, f := range doc.Numeric {
		if f.Value.IsNull() {
			continue
		}
		groups[f.QName()] = append(groups[f.QName()], f)
	}
	for _, concept := range doc.Concepts() {
		if len(groups[concept]) == 0 {
			continue
		}
		sortByDate(groups[concept])
		facts.Series = append(facts.Series, Series{Concept: concept, Facts: groups[concept]})
	}

	if doc.Tree != nil {
		facts.CEOPayRatio = findCEOPayRatio(doc.Tree.Root)
		facts.EmployeesCount = findEmployees(doc.Tree.Root)
	}
	return facts
}

// Concept returns the series for a concept, matching case-insensitively.
func (f *Facts) Concept(qname string) (Series, bool) {
	for _, s := range f.Series {
		if strings.EqualFold(s.Concept, qname) {
			return s, true
		}
	}
	return Series{}, false
}

func nonNumeric(doc *ixbrl.Document, names []string) string {
	for _, name := range names {
		f := ixbrl.Search(doc.NonNumeric, func(f *ixbrl.NonNumericFact) bool {
			return strings.EqualFold(f.QName(), name)
		})
		if f != nil {
			return f.Value.String()
		}
	}
	return ""
}

var printer = message.NewPrinter(message.MatchLanguage("en"))

// FormatValue renders a numeric fact with thousands separators, to the
// precision its decimals attribute declares, followed by its unit.
func FormatValue(f *ixbrl.NumericFact) string {
	if f.Value.IsNull() {
		return "nil"
	}
	prec := 0
	if d := f.Format.Decimals; d == nil {
		prec = -1
	} else if *d > 0 {
		prec = *d
	}
	var s string
	switch {
	case f.Value.Kind == transform.KindBool:
		s = f.Value.String()
	case prec < 0:
		s = printer.Sprint(f.Value.Number)
	default:
		s = printer.Sprintf(fmt.Sprintf("%%.%df", prec), f.Value.Number)
	}
	if unit := f.UnitString(); unit != nil {
		_, measure, ok := strings.Cut(*unit, ":")
		if !ok {
			measure = *unit
		}
		s += " " + measure
	}
	return s
}

// Lines renders one line per series: the concept, its latest value and
// the period it was reported for.
func (f *Facts) Lines() []string {
	var lines []string
	for _, s := range f.Series {
		latest := s.Latest()
		period := latest.Context.ID()
		if ctx, ok := latest.Context.Context(); ok {
			period = ctx.Period()
		}
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s", s.Concept, FormatValue(latest), period))
	}
	return lines
}

type CEOPayRatio struct {
	Text   string  `json:"text"`
	CEO    float64 `json:"ceo"`
	Median float64 `json:"median"`
}

func findCEOPayRatio(root doctree.Node) *CEOPayRatio {
	matches := doctree.SearchText(root, func(t string) string {
		lowered := strings.ToLower(t)
		if strings.Contains(lowered, "pay ratio") && strings.Contains(lowered, "median") && strings.Contains(t, "$") {
			return t
		}
		return ""
	})
	for _, m := range matches {
		if ratio := extractCEOPayRatio(m.Text); ratio.CEO > 0 {
			return &ratio
		}
	}
	return nil
}

var dollarRegex = regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`)

// extractCEOPayRatio reads the dollar amounts out of text and takes the
// highest as CEO pay and the lowest as the median employee's.
func extractCEOPayRatio(text string) CEOPayRatio {
	var amounts []float64
	for _, match := range dollarRegex.FindAllString(text, -1) {
		amount, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimPrefix(match, "$"), ",", ""), 64)
		if err != nil {
			continue
		}
		amounts = append(amounts, amount)
	}
	if len(amounts) < 2 {
		return CEOPayRatio{Text: text}
	}

	ceoVal, medianVal := amounts[0], amounts[0]
	for _, amount := range amounts {
		if amount > ceoVal {
			ceoVal = amount
		}
		if amount < medianVal {
			medianVal = amount
		}
	}
	return CEOPayRatio{text, ceoVal, medianVal}
}

var employeesRegex = regexp.MustCompile(`([\d]{1}[\d,]{1,})[^.,%]*employees`)

func findEmployees(root doctree.Node) int {
	matches := doctree.SearchText(root, func(t string) string {
		match := employeesRegex.FindStringSubmatch(t)
		if match == nil {
			return ""
		}
		// Skip years such as "2023 employees survey".
		if strings.HasPrefix(match[1], "20") && len(match[1]) == 4 {
			return ""
		}
		return match[1]
	})
	if len(matches) == 0 {
		return 0
	}
	return onlyNumber(matches[0].Text)
}

// sortByDate sorts facts in reverse chronological order. Facts with a
// dangling context sort last.
func sortByDate(nfs []*ixbrl.NumericFact) {
	sort.SliceStable(nfs, func(i, j int) bool {
		return latestDate(nfs[i]).After(latestDate(nfs[j]))
	})
}

func latestDate(nf *ixbrl.NumericFact) time.Time {
	ctx, ok := nf.Context.Context()
	if !ok {
		return time.Time{}
	}
	return ctx.End()
}

// onlyNumber extracts numeric characters from a string and returns as int
func onlyNumber(str string) int {
	var numericChars strings.Builder
	for _, char := range str {
		if unicode.IsDigit(char) {
			numericChars.WriteRune(char)
		}
	}
	result, err := strconv.Atoi(numericChars.String())
	if err != nil {
		return 0
	}
	return result
}
