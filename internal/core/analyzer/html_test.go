package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
<title> Acme Widgets - Industrial Widgets </title>
<meta name="description" content="Industrial widgets for every factory floor.">
<meta name="robots" content="index,follow">
<meta property="og:title" content="Acme Widgets">
<link rel="canonical" href="https://acme.example/">
<script type="application/ld+json">{"@type":"Organization"}</script>
</head>
<body>
<h1>Welcome to <b>Acme</b></h1>
<img src="a.png" alt="widget a">
<img src="b.png">
<img SRC="c.png" ALT="widget c">
<p>Widgets and more widgets for everyone.</p>
</body>
</html>`

func TestParseSignals(t *testing.T) {
	sig := parseSignals(samplePage)

	require.Equal(t, "Acme Widgets - Industrial Widgets", sig.Title)
	require.Equal(t, "Industrial widgets for every factory floor.", sig.MetaDescription)
	require.Equal(t, 1, sig.H1Count)
	require.Equal(t, "Welcome to Acme", sig.H1Text)
	require.Equal(t, 3, sig.TotalImages)
	require.Equal(t, 1, sig.ImagesMissingAlt)
	require.True(t, sig.HasCanonical)
	require.True(t, sig.HasRobotsMeta)
	require.True(t, sig.HasOpenGraph)
	require.True(t, sig.HasSchemaMarkup)
	require.Greater(t, sig.WordCount, 0)
}

func TestParseSignalsEmptyPage(t *testing.T) {
	sig := parseSignals("")

	require.Empty(t, sig.Title)
	require.Empty(t, sig.MetaDescription)
	require.Zero(t, sig.H1Count)
	require.Zero(t, sig.TotalImages)
	require.False(t, sig.HasCanonical)
	require.False(t, sig.HasSchemaMarkup)
}

func TestParseSignalsMultipleH1(t *testing.T) {
	sig := parseSignals(`<h1>First</h1><h1>Second</h1>`)

	require.Equal(t, 2, sig.H1Count)
	require.Equal(t, "First", sig.H1Text)
}

func TestParseSignalsTitleAcrossLines(t *testing.T) {
	sig := parseSignals("<title>\nMulti\nLine\n</title>")

	require.Equal(t, "Multi\nLine", sig.Title)
}
