package format

import (
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// statusNames maps workflow status values to display names per base
// language. Values missing from a language map fall back to title-cased
// English.
var statusNames = map[string]map[string]string{
	"hi": {
		"not_started":  "शुरू नहीं हुआ",
		"in_progress":  "प्रगति पर",
		"completed":    "पूर्ण",
		"pending":      "लंबित",
		"submitted":    "जमा किया गया",
		"verified":     "सत्यापित",
		"approved":     "स्वीकृत",
		"rejected":     "अस्वीकृत",
		"under_review": "समीक्षाधीन",
		"active":       "सक्रिय",
		"inactive":     "निष्क्रिय",
	},
}

// Formatter renders numbers, currencies, percentages and dates for a
// specific language tag.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// New builds a formatter for the given BCP-47 language tag. Unknown or
// empty tags fall back to English.
func New(lang string) *Formatter {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}
}

// Language returns the resolved language tag.
func (f *Formatter) Language() string {
	return f.tag.String()
}

// Number renders a locale-aware decimal with at most the given fraction digits.
func (f *Formatter) Number(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(decimals)))
}

// Percent renders a ratio (0..1) as a locale-aware percentage.
func (f *Formatter) Percent(ratio float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return f.printer.Sprint(number.Percent(ratio, number.MaxFractionDigits(decimals)))
}

// Currency renders an amount with the symbol of the given ISO 4217 code.
// Unknown codes fall back to a plain decimal rendering.
func (f *Formatter) Currency(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return f.Number(amount, 2)
	}
	return f.printer.Sprint(currency.Symbol(unit.Amount(amount)))
}

// Date renders a calendar date using a per-language layout.
func (f *Formatter) Date(t time.Time) string {
	base, _ := f.tag.Base()
	switch base.String() {
	case "hi", "mr", "bn", "gu":
		return t.Format("02/01/2006")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// StatusLabel renders a workflow status value as a display name in the
// formatter's language. Unknown values get their underscores replaced and
// each word title-cased.
func (f *Formatter) StatusLabel(status string) string {
	if status == "" {
		return ""
	}
	base, _ := f.tag.Base()
	if names, ok := statusNames[base.String()]; ok {
		if label, ok := names[status]; ok {
			return label
		}
	}
	words := strings.Split(strings.ReplaceAll(status, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// DateTime renders a timestamp with minute precision.
func (f *Formatter) DateTime(t time.Time) string {
	base, _ := f.tag.Base()
	switch base.String() {
	case "hi", "mr", "bn", "gu":
		return t.Format("02/01/2006 15:04")
	default:
		return t.Format("Jan 2, 2006 15:04")
	}
}
