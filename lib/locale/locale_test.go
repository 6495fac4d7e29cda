package locale

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestParseDateRoundTrip(t *testing.T) {
	// a shared instant must survive render+reparse in every culture
	instant := time.Date(2024, time.September, 30, 13, 45, 0, 0, time.UTC)

	for _, lang := range Languages {
		rendered := FormatDate(instant, lang)
		parsed, err := ParseDate(rendered, lang)
		require.NoError(t, err, "language %s, rendered %q", lang, rendered)
		require.Equal(t, instant, parsed, "language %s", lang)
	}
}

func TestParseDateFixedRenderings(t *testing.T) {
	// 13:45 UTC on 2024-09-30 is 16:45 in Helsinki (EEST)
	expected := time.Date(2024, time.September, 30, 13, 45, 0, 0, time.UTC)

	cases := []struct {
		lang Language
		raw  string
	}{
		{Finnish, "30.9.2024 16.45"},
		{Swedish, "2024-09-30 16:45"},
		{English, "30/09/2024 16:45"},
		{Danish, "30-09-2024 16:45"},
	}
	for _, test := range cases {
		parsed, err := ParseDate(test.raw, test.lang)
		require.NoError(t, err, "language %s", test.lang)
		require.Equal(t, expected, parsed, "language %s", test.lang)
	}
}

func TestParseDateRejectsMismatchedLayout(t *testing.T) {
	_, err := ParseDate("30/09/2024 16:45", Finnish)
	require.ErrorIs(t, err, ErrDateParse)
}

func localeFixture(tag string) string {
	return fmt.Sprintf(
		`<html><head><script>
			var portalConfig = { culture: "%s", version: 3 };
		</script></head><body></body></html>`,
		tag,
	)
}

func TestMatch(t *testing.T) {
	for _, lang := range Languages {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(localeFixture(string(lang))))
		require.NoError(t, err)

		matched, err := Match(doc)
		require.NoError(t, err)
		require.Equal(t, lang, matched)
	}
}

func TestMatchUnknownCulture(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(localeFixture("de-DE")))
	require.NoError(t, err)

	_, err = Match(doc)
	require.ErrorIs(t, err, ErrLocaleNotFound)
}

func TestMatchMissingMarker(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><head><script>var x = 1;</script></head></html>`,
	))
	require.NoError(t, err)

	_, err = Match(doc)
	require.ErrorIs(t, err, ErrLocaleNotFound)
}

func TestParseYesNo(t *testing.T) {
	cases := []struct {
		raw      string
		expected bool
	}{
		{"Kyllä", true},
		{"kyllä", true},
		{"Ja", true},
		{"YES", true},
		{"Ei", false},
		{"nej", false},
		{"No", false},
		{" ei ", false},
	}
	for _, test := range cases {
		got, err := ParseYesNo(test.raw)
		require.NoError(t, err, "token %q", test.raw)
		require.Equal(t, test.expected, got, "token %q", test.raw)
	}

	_, err := ParseYesNo("maybe")
	require.ErrorIs(t, err, ErrUnknownBoolean)
	_, err = ParseYesNo("")
	require.ErrorIs(t, err, ErrUnknownBoolean)
}
