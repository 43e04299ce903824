package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatterFallsBackToEnglish(t *testing.T) {
	f := New("not-a-tag")
	require.Equal(t, "en", f.Language())
}

func TestFormatterNumber(t *testing.T) {
	f := New("en")
	require.Equal(t, "1,234.5", f.Number(1234.5, 1))
	require.Equal(t, "1,235", f.Number(1234.6, 0))
}

func TestFormatterPercent(t *testing.T) {
	f := New("en")
	require.Equal(t, "45%", f.Percent(0.45, 0))
}

func TestFormatterCurrencyUnknownCode(t *testing.T) {
	f := New("en")
	require.Equal(t, "1,200.5", f.Currency(1200.50, "???"))
}

func TestFormatterCurrencyKnownCode(t *testing.T) {
	f := New("en")
	out := f.Currency(1200.50, "INR")
	require.Contains(t, out, "200.50")
}

func TestFormatterDateByLanguage(t *testing.T) {
	day := time.Date(2025, time.March, 9, 14, 30, 0, 0, time.UTC)

	require.Equal(t, "Mar 9, 2025", New("en").Date(day))
	require.Equal(t, "09/03/2025", New("hi").Date(day))
	require.Equal(t, "09/03/2025 14:30", New("hi").DateTime(day))
	require.Equal(t, "Mar 9, 2025 14:30", New("en").DateTime(day))
}

func TestFormatterStatusLabel(t *testing.T) {
	en := New("en")
	require.Equal(t, "In Progress", en.StatusLabel("in_progress"))
	require.Equal(t, "Verified", en.StatusLabel("verified"))
	require.Equal(t, "", en.StatusLabel(""))
	require.Equal(t, "7", en.StatusLabel("7"))

	hi := New("hi")
	require.Equal(t, "प्रगति पर", hi.StatusLabel("in_progress"))
	require.Equal(t, "सत्यापित", hi.StatusLabel("verified"))
	// Values without a translation keep the English rendering.
	require.Equal(t, "Archived", hi.StatusLabel("archived"))
}
