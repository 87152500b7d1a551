package transform

// BuiltinProvider names the provider holding the standard catalogue.
const BuiltinProvider = "ixt"

// Namespaces lists the transformation registry namespaces the built-in
// catalogue implements, keyed by a short version label.
var Namespaces = map[string]string{
	"ixt-prerec": "http://www.xbrl.org/2008/inlineXBRL/transformation",
	"ixt-1":      "http://www.xbrl.org/inlineXBRL/transformation/2010-04-20",
	"ixt-2":      "http://www.xbrl.org/inlineXBRL/transformation/2011-07-31",
	"ixt-3":      "http://www.xbrl.org/inlineXBRL/transformation/2015-02-26",
	"ixt-4":      "http://www.xbrl.org/inlineXBRL/transformation/2020-02-12",
	"ixt-5":      "http://www.xbrl.org/inlineXBRL/transformation/2022-02-16",
	"ixt-sec":    "http://www.sec.gov/inlineXBRL/transformation/2015-08-31",
}

func fixed(v Value) Factory {
	return func() Parser { return fixedParser{value: v} }
}

func parserOf[P Parser](build func() P) Factory {
	return func() Parser { return build() }
}

// builtinProvider returns the merged catalogue of every registry
// version. Names that appear in several versions with the same meaning
// are listed once per parser; the registry folds them to one key.
func builtinProvider(noContent NoContentPolicy) Provider {
	var entries []Entry
	add := func(f Factory, names ...string) {
		entries = append(entries, Entry{Names: names, Factory: f})
	}

	// Fixed values.
	add(fixed(NumberValue(0)), "zerodash", "numdash", "fixed-zero")
	add(fixed(noContent.value()), "nocontent", "fixed-empty")
	add(fixed(BoolValue(false)), "booleanfalse", "fixed-false")
	add(fixed(BoolValue(true)), "booleantrue", "fixed-true")

	// Separated numbers.
	add(parserOf(func() *separatorParser { return newDotDecimal(false) }),
		"numdotdecimal", "numcommadot", "numspacedot", "numdotdecimalin", "num-dot-decimal")
	add(parserOf(func() *separatorParser { return newCommaDecimal(false) }),
		"numcommadecimal", "numcomma", "numdotcomma", "numspacecomma", "num-comma-decimal")
	add(parserOf(func() *separatorParser { return newDotDecimal(true) }), "num-dot-decimal-apos")
	add(parserOf(func() *separatorParser { return newCommaDecimal(true) }), "num-comma-decimal-apos")
	add(parserOf(func() *unitDecimalParser { return newUnitDecimal(false) }),
		"numunitdecimal", "numunitdecimalin", "num-unit-decimal")
	add(parserOf(func() *unitDecimalParser { return newUnitDecimal(true) }), "num-unit-decimal-apos")
	add(func() Parser { return wordsParser{} }, "numwordsen")

	// Numeric dates.
	numeric := func(o dateOrder, names ...string) {
		add(parserOf(func() *numericDateParser { return newNumericDate(o) }), names...)
	}
	numeric(orderDMY, "dateslasheu", "datedoteu", "datedaymonthyear", "date-day-month-year")
	numeric(orderMDY, "dateslashus", "datedotus", "datemonthdayyear", "date-month-day-year")
	numeric(orderYMD, "dateyearmonthday", "date-year-month-day")
	numeric(orderDM, "dateslashdaymontheu", "datedaymonth", "date-day-month")
	numeric(orderMD, "dateslashmonthdayus", "datemonthday", "date-month-day")
	numeric(orderMY, "datemonthyear", "date-month-year")
	numeric(orderYM, "dateyearmonth", "date-year-month")

	// Month names.
	named := func(l *monthLocale, o dateOrder, names ...string) {
		add(parserOf(func() *monthNameParser { return newMonthName(l, o) }), names...)
	}
	named(localeEN, orderDMY, "datelonguk", "dateshortuk", "datedaymonthyearen")
	named(localeEN, orderMDY, "datelongus", "dateshortus", "datemonthdayyearen", "date-monthname-day-year-en")
	named(localeEN, orderDM, "datelongdaymonthuk", "dateshortdaymonthuk", "datedaymonthen")
	named(localeEN, orderMD, "datelongmonthdayus", "dateshortmonthdayus", "datemonthdayen", "date-monthname-day-en")
	named(localeEN, orderMY, "datelongmonthyear", "dateshortmonthyear", "datemonthyearen")
	named(localeEN, orderYM, "datelongyearmonth", "dateshortyearmonth", "dateyearmonthen", "date-year-monthname-en")
	named(localeDA, orderDM, "datedaymonthdk")
	named(localeDA, orderDMY, "datedaymonthyeardk")
	named(localeDA, orderMY, "datemonthyeardk")
	named(localeHI, orderDMY, "datedaymonthyearin", "date-day-monthname-year-hi")
	named(localeHI, orderMY, "datemonthyearin", "date-monthname-year-hi")
	for _, l := range dayMonthLocales {
		named(l, orderDM, "date-day-monthname-"+l.code)
		if l != localeLV {
			named(l, orderDMY, "date-day-monthname-year-"+l.code)
			named(l, orderMY, "date-monthname-year-"+l.code)
		}
	}
	named(localeHU, orderMD, "date-monthname-day-hu")
	named(localeHU, orderYM, "date-year-monthname-hu")
	named(localeHU, orderYMD, "date-year-monthname-day-hu")
	named(localeLT, orderMD, "date-monthname-day-lt")
	named(localeLT, orderYM, "date-year-monthname-lt")
	named(localeLT, orderYMD, "date-year-monthname-day-lt")
	named(localeLV, orderYM, "date-year-monthname-lv")
	named(localeLV, orderYDM, "date-year-day-monthname-lv")
	named(localeRoman, orderDM, "date-day-monthroman")
	named(localeRoman, orderDMY, "date-day-monthroman-year")
	named(localeRoman, orderMY, "date-monthroman-year")

	// Other calendars.
	add(parserOf(func() *eraParser { return newEraDate(true) }), "dateerayearmonthdayjp", "date-jpn-era-year-month-day")
	add(parserOf(func() *eraParser { return newEraDate(false) }), "dateerayearmonthjp", "date-jpn-era-year-month")
	add(parserOf(func() *cjkParser { return newCJKDate(true) }), "dateyearmonthdaycjk")
	add(parserOf(func() *cjkParser { return newCJKDate(false) }), "dateyearmonthcjk")
	add(parserOf(newSakaDate), "calindaymonthyear", "date-ind-day-monthname-year-hi")

	return Provider{Name: BuiltinProvider, Priority: Normal, Entries: entries}
}
