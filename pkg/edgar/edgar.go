package edgar

import (
	"fmt"
	"strconv"
	"strings"
)

type TickerData struct {
	CIKStr int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

type Tickers []TickerData

// Ticker2CIK returns the CIK string for a given ticker symbol
func (t Tickers) Ticker2CIK(ticker string) (string, error) {
	for _, data := range t {
		if strings.EqualFold(data.Ticker, ticker) {
			return strconv.Itoa(data.CIKStr), nil
		}
	}
	return "", fmt.Errorf("ticker %s not found", ticker)
}

// Ticker2CompanyName returns the company title for a given ticker symbol
func (t Tickers) Ticker2CompanyName(ticker string) (string, error) {
	for _, data := range t {
		if strings.EqualFold(data.Ticker, ticker) {
			return data.Title, nil
		}
	}
	return "", fmt.Errorf("ticker %s not found", ticker)
}

type Document struct {
	Filing
	DocumentFile []byte
}

type Filing struct {
	CIK                   string
	AccessionNumber       string `json:"accessionNumber"`
	FilingDate            string `json:"filingDate"`
	ReportDate            string `json:"reportDate"`
	Form                  string `json:"form"`
	FileNumber            string `json:"fileNumber"`
	IsXBRL                int    `json:"isXBRL"`
	IsInlineXBRL          int    `json:"isInlineXBRL"`
	PrimaryDocument       string `json:"primaryDocument"`
	PrimaryDocDescription string `json:"primaryDocDescription"`
}

// URL is where the primary document of the filing lives below base,
// usually ArchiveURL.
func (f Filing) URL(base string) string {
	accessionNumber := strings.ReplaceAll(f.AccessionNumber, "-", "")
	cik := strings.TrimLeft(f.CIK, "0")
	return fmt.Sprintf("%s/Archives/edgar/data/%s/%s/%s", base, cik, accessionNumber, f.PrimaryDocument)
}

type Filings struct {
	Recent struct {
		AccessionNumber       []string `json:"accessionNumber"`
		FilingDate            []string `json:"filingDate"`
		ReportDate            []string `json:"reportDate"`
		Form                  []string `json:"form"`
		FileNumber            []string `json:"fileNumber"`
		IsXBRL                []int    `json:"isXBRL"`
		IsInlineXBRL          []int    `json:"isInlineXBRL"`
		PrimaryDocument       []string `json:"primaryDocument"`
		PrimaryDocDescription []string `json:"primaryDocDescription"`
	} `json:"recent"`
}

func at[T any](s []T, i int) T {
	var zero T
	if i < len(s) {
		return s[i]
	}
	return zero
}

func (f Filings) Index(i int) Filing {
	r := f.Recent
	return Filing{
		AccessionNumber:       at(r.AccessionNumber, i),
		FilingDate:            at(r.FilingDate, i),
		ReportDate:            at(r.ReportDate, i),
		Form:                  at(r.Form, i),
		FileNumber:            at(r.FileNumber, i),
		IsXBRL:                at(r.IsXBRL, i),
		IsInlineXBRL:          at(r.IsInlineXBRL, i),
		PrimaryDocument:       at(r.PrimaryDocument, i),
		PrimaryDocDescription: at(r.PrimaryDocDescription, i),
	}
}

// Search returns the most recent filing whose form contains formName.
func (f Filings) Search(cik, formName string) (Filing, bool) {
	for i, name := range f.Recent.Form {
		if strings.Contains(name, formName) {
			filing := f.Index(i)
			filing.CIK = cik
			return filing, true
		}
	}
	return Filing{}, false
}

// Inline lists the filings of a form published as inline XBRL, most
// recent first.
func (f Filings) Inline(cik, formName string) []Filing {
	var out []Filing
	for i, name := range f.Recent.Form {
		if name != formName || at(f.Recent.IsInlineXBRL, i) != 1 {
			continue
		}
		filing := f.Index(i)
		filing.CIK = cik
		out = append(out, filing)
	}
	return out
}

type Submissions struct {
	CIK       string   `json:"cik"`
	Name      string   `json:"name"`
	Tickers   []string `json:"tickers"`
	Exchanges []string `json:"exchanges"`
	Filings   Filings  `json:"filings"`
}
