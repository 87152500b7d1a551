package transform

import (
	"golang.org/x/text/language"
)

// monthLocale is the month vocabulary of one language. Keys are lower
// case under the language's own case rules; a key may be any prefix a
// writer abbreviates the month to, the parser ignores trailing letters
// unless exact is set.
type monthLocale struct {
	code   string
	tag    language.Tag
	months map[string]int
	exact  bool
	years  yearFunc
}

func months(names ...[]string) map[string]int {
	m := make(map[string]int)
	for i, variants := range names {
		for _, v := range variants {
			m[v] = i + 1
		}
	}
	return m
}

var (
	localeEN = &monthLocale{code: "en", tag: language.English, years: expandYear, months: months(
		[]string{"january", "jan"}, []string{"february", "feb"}, []string{"march", "mar"},
		[]string{"april", "apr"}, []string{"may"}, []string{"june", "jun"},
		[]string{"july", "jul"}, []string{"august", "aug"}, []string{"september", "sep"},
		[]string{"october", "oct"}, []string{"november", "nov"}, []string{"december", "dec"},
	)}
	localeBG = &monthLocale{code: "bg", tag: language.Bulgarian, years: expandYear, months: months(
		[]string{"ян"}, []string{"фев"}, []string{"мар"}, []string{"апр"},
		[]string{"май", "маи"}, []string{"юни"}, []string{"юли"}, []string{"авг"},
		[]string{"сеп"}, []string{"окт"}, []string{"ное"}, []string{"дек"},
	)}
	localeCS = &monthLocale{code: "cs", tag: language.Czech, years: expandYear, months: months(
		[]string{"ledna", "leden", "lednu", "led"},
		[]string{"února", "unora", "únoru", "unoru", "únor", "unor", "úno", "uno"},
		[]string{"března", "brezna", "březen", "brezen", "březnu", "breznu", "bře", "bre"},
		[]string{"dubna", "duben", "dubnu", "dub"},
		[]string{"května", "kvetna", "květen", "kveten", "květnu", "kvetnu", "kvě", "kve"},
		[]string{"června", "cervna", "červen", "cerven", "červnu", "cervnu", "čvn", "cvn"},
		[]string{"července", "cervence", "červenec", "cervenec", "červenci", "cervenci", "čvc", "cvc"},
		[]string{"srpna", "srpen", "srpnu", "srp"},
		[]string{"září", "zari", "zář", "zar"},
		[]string{"října", "rijna", "říjen", "rijen", "říjnu", "rijnu", "říj", "rij"},
		[]string{"listopadu", "listopad", "lis"},
		[]string{"prosince", "prosinec", "prosinci", "pro"},
	)}
	localeCY = &monthLocale{code: "cy", tag: language.MustParse("cy"), years: expandYear, months: months(
		[]string{"ion"}, []string{"chwe"}, []string{"maw", "faw"}, []string{"ebr"},
		[]string{"mai", "fai"}, []string{"meh", "feh"}, []string{"gor", "ngor"}, []string{"aws"},
		[]string{"med", "fed"}, []string{"hyd"}, []string{"tach", "dach", "nhach", "thach"},
		[]string{"rhag", "rag"},
	)}
	localeDA = &monthLocale{code: "da", tag: language.Danish, years: expandYear, months: months(
		[]string{"jan"}, []string{"feb"}, []string{"mar"}, []string{"apr"},
		[]string{"maj"}, []string{"jun"}, []string{"jul"}, []string{"aug"},
		[]string{"sep"}, []string{"okt"}, []string{"nov"}, []string{"dec"},
	)}
	localeSV = &monthLocale{code: "sv", tag: language.Swedish, years: expandYear, months: localeDA.months}
	localeDE = &monthLocale{code: "de", tag: language.German, years: expandYear, months: months(
		[]string{"jan", "jän", "jaen"}, []string{"feb"}, []string{"mär", "maer", "mar"},
		[]string{"apr"}, []string{"mai"}, []string{"jun"}, []string{"jul"}, []string{"aug"},
		[]string{"sep"}, []string{"okt"}, []string{"nov"}, []string{"dez"},
	)}
	localeEL = &monthLocale{code: "el", tag: language.Greek, years: expandYear, months: months(
		[]string{"ιαν", "ίαν", "iαν"},
		[]string{"φεβ"},
		[]string{"μάρ", "μαρ"},
		[]string{"απρ", "άπρ", "aπρ", "αρίλ", "άρίλ", "αριλ", "άριλ", "aρίλ", "aριλ"},
		[]string{"μαΐ", "μαι", "μάι", "μαϊ", "μάϊ"},
		[]string{"ιούν", "ίούν", "ίουν", "ιουν", "iούν", "iουν"},
		[]string{"ιούλ", "ίούλ", "ίουλ", "ιουλ", "iούλ", "iουλ"},
		[]string{"αύγ", "αυγ"},
		[]string{"σεπ"},
		[]string{"οκτ", "όκτ", "oκτ"},
		[]string{"νοέ", "νοε"},
		[]string{"δεκ"},
	)}
	localeES = &monthLocale{code: "es", tag: language.Spanish, years: expandYear, months: months(
		[]string{"ene"}, []string{"feb"}, []string{"mar"}, []string{"abr"},
		[]string{"may"}, []string{"jun"}, []string{"jul"}, []string{"ago"},
		[]string{"sep"}, []string{"oct"}, []string{"nov"}, []string{"dic"},
	)}
	localeET = &monthLocale{code: "et", tag: language.Estonian, years: expandYear, months: months(
		[]string{"jaan"}, []string{"veebr"}, []string{"märts", "marts"}, []string{"apr"},
		[]string{"mai"}, []string{"juuni"}, []string{"juuli"}, []string{"aug"},
		[]string{"sept"}, []string{"okt"}, []string{"nov"}, []string{"dets"},
	)}
	localeFI = &monthLocale{code: "fi", tag: language.Finnish, years: expandYear, months: months(
		[]string{"tam"}, []string{"hel"}, []string{"maa"}, []string{"huh"},
		[]string{"tou"}, []string{"kes"}, []string{"hei"}, []string{"elo"},
		[]string{"syy"}, []string{"lok"}, []string{"mar"}, []string{"jou"},
	)}
	localeFR = &monthLocale{code: "fr", tag: language.French, years: expandYear, months: months(
		[]string{"janv"}, []string{"févr", "fevr"}, []string{"mars"}, []string{"avr"},
		[]string{"mai"}, []string{"juin"}, []string{"juil"}, []string{"août", "aout"},
		[]string{"sept"}, []string{"oct"}, []string{"nov"}, []string{"déc", "dec"},
	)}
	localeHR = &monthLocale{code: "hr", tag: language.Croatian, years: expandYear, months: months(
		[]string{"sij"}, []string{"velj"}, []string{"ožu", "ozu"}, []string{"tra"},
		[]string{"svi"}, []string{"lip"}, []string{"srp"}, []string{"kol"},
		[]string{"ruj"}, []string{"lis"}, []string{"stu"}, []string{"pro"},
	)}
	localeHU = &monthLocale{code: "hu", tag: language.Hungarian, years: expandYear, months: months(
		[]string{"jan"}, []string{"feb"}, []string{"márc", "marc"}, []string{"ápr", "apr"},
		[]string{"máj", "maj"}, []string{"jún", "jun"}, []string{"júl", "jul"}, []string{"aug"},
		[]string{"szept"}, []string{"okt"}, []string{"nov"}, []string{"dec"},
	)}
	localeIT = &monthLocale{code: "it", tag: language.Italian, years: expandYear, months: months(
		[]string{"gen"}, []string{"feb"}, []string{"mar"}, []string{"apr"},
		[]string{"mag"}, []string{"giu"}, []string{"lug"}, []string{"ago"},
		[]string{"set"}, []string{"ott"}, []string{"nov"}, []string{"dic"},
	)}
	localeLT = &monthLocale{code: "lt", tag: language.Lithuanian, years: expandYear, months: months(
		[]string{"sau"}, []string{"vas"}, []string{"kov"}, []string{"bal"},
		[]string{"geg"}, []string{"bir"}, []string{"lie"}, []string{"rugp", "rgp"},
		[]string{"rugs", "rgs"}, []string{"spa", "spl"}, []string{"lap"}, []string{"gru", "grd"},
	)}
	localeLV = &monthLocale{code: "lv", tag: language.Latvian, years: expandYear, months: months(
		[]string{"janv"}, []string{"febr"}, []string{"marts"}, []string{"apr"},
		[]string{"maijs"}, []string{"jūn", "jun"}, []string{"jūl", "jul"}, []string{"aug"},
		[]string{"sept"}, []string{"okt"}, []string{"nov"}, []string{"dec"},
	)}
	localeNL = &monthLocale{code: "nl", tag: language.Dutch, years: expandYear, months: months(
		[]string{"jan"}, []string{"feb"}, []string{"maa", "mrt"}, []string{"apr"},
		[]string{"mei"}, []string{"jun"}, []string{"jul"}, []string{"aug"},
		[]string{"sep"}, []string{"okt"}, []string{"nov"}, []string{"dec"},
	)}
	localeNO = &monthLocale{code: "no", tag: language.Norwegian, years: expandYear, months: months(
		[]string{"jan"}, []string{"feb"}, []string{"mar"}, []string{"apr"},
		[]string{"mai"}, []string{"jun"}, []string{"jul"}, []string{"aug"},
		[]string{"sep"}, []string{"okt"}, []string{"nov"}, []string{"des"},
	)}
	localePL = &monthLocale{code: "pl", tag: language.Polish, years: expandYear, months: months(
		[]string{"sty"}, []string{"lut"}, []string{"mar"}, []string{"kwi"},
		[]string{"maj"}, []string{"cze"}, []string{"lip"}, []string{"sie"},
		[]string{"wrz"}, []string{"paź", "paz"}, []string{"lis"}, []string{"gru"},
	)}
	localePT = &monthLocale{code: "pt", tag: language.Portuguese, years: expandYear, months: months(
		[]string{"jan"}, []string{"fev"}, []string{"mar"}, []string{"abr"},
		[]string{"mai"}, []string{"jun"}, []string{"jul"}, []string{"ago"},
		[]string{"set"}, []string{"out"}, []string{"nov"}, []string{"dez"},
	)}
	localeRO = &monthLocale{code: "ro", tag: language.Romanian, years: expandYear, months: months(
		[]string{"ian"}, []string{"feb"}, []string{"mar"}, []string{"apr"},
		[]string{"mai"}, []string{"iun"}, []string{"iul"}, []string{"aug"},
		[]string{"sep"}, []string{"oct"}, []string{"noi", "nov"}, []string{"dec"},
	)}
	localeSK = &monthLocale{code: "sk", tag: language.Slovak, years: expandYear, months: months(
		[]string{"jan"}, []string{"feb"}, []string{"mar"}, []string{"apr"},
		[]string{"máj", "maj"}, []string{"jún", "jun"}, []string{"júl", "jul"}, []string{"aug"},
		[]string{"sep"}, []string{"okt"}, []string{"nov"}, []string{"dec"},
	)}
	localeSL = &monthLocale{code: "sl", tag: language.Slovenian, years: expandYear, months: months(
		[]string{"jan"}, []string{"feb"}, []string{"mar"}, []string{"apr"},
		[]string{"maj"}, []string{"jun"}, []string{"jul"}, []string{"avg"},
		[]string{"sep"}, []string{"okt"}, []string{"nov"}, []string{"dec"},
	)}
	localeHI = &monthLocale{code: "hi", tag: language.Hindi, years: expandYear, months: months(
		[]string{"जनवरी"}, []string{"फरवरी", "फ़रवरी"}, []string{"मार्च"}, []string{"अप्रैल"},
		[]string{"मई"}, []string{"जून"}, []string{"जुलाई"}, []string{"अगस्त"},
		[]string{"सितंबर", "सितम्बर"}, []string{"अक्टूबर", "अक्तूबर"},
		[]string{"नवंबर", "नवम्बर"}, []string{"दिसंबर", "दिसम्बर"},
	)}
	localeRoman = &monthLocale{code: "roman", tag: language.Und, years: expandYear, exact: true, months: months(
		[]string{"i"}, []string{"ii"}, []string{"iii"}, []string{"iv"},
		[]string{"v"}, []string{"vi"}, []string{"vii"}, []string{"viii"},
		[]string{"ix"}, []string{"x"}, []string{"xi"}, []string{"xii"},
	)}
)

// dayMonthLocales are the languages with day-month, day-month-year and
// month-year formats in the fourth and fifth transformation registries.
var dayMonthLocales = []*monthLocale{
	localeBG, localeCS, localeCY, localeDA, localeDE, localeEL, localeEN, localeES,
	localeET, localeFI, localeFR, localeHR, localeIT, localeLV, localeNL, localeNO,
	localePL, localePT, localeRO, localeSK, localeSL, localeSV,
}
