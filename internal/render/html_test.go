package render

import (
	"strings"
	"testing"

	"github.com/heartmarshall/wordtree/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestHTML_Structure(t *testing.T) {
	t.Parallel()

	out, err := HTML(BuildResult(catNode()), HTMLOptions{})
	require.NoError(t, err)

	assert.Contains(t, out, `<div id="root" class="current-word-display"><h2><span class="content"><b id="root:word" class="word">cat</b>: a feline</span></h2></div>`)
	assert.Contains(t, out, `<div id="parents" class="tree-section parent-section collapsed">`)
	assert.Contains(t, out, `<span id="parents:toggle" class="section-toggler">[+]</span> Parents`)
	assert.Contains(t, out, `<li id="parents/0" class="tree-node parent-node"><span class="spacer">`)
}

func TestHTML_Escapes(t *testing.T) {
	t.Parallel()

	n := domain.WordNode{Word: "<script>", Translation: `"x" & y`}
	out, err := HTML([]*Element{Root(n)}, HTMLOptions{})
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "&#34;x&#34; &amp; y")
}

func TestHTML_ActionButtons(t *testing.T) {
	t.Parallel()

	out, err := HTML(BuildResult(catNode()), HTMLOptions{ActionName: "target"})
	require.NoError(t, err)

	assert.Contains(t, out, `<button type="submit" name="target" value="parents:toggle" id="parents:toggle" class="section-toggler">[+]</button>`)
	assert.Contains(t, out, `<button type="submit" name="target" value="root:word" id="root:word" class="word">cat</button>`)
	// Leaves never become buttons.
	assert.NotContains(t, out, `class="spacer"></button>`)
}

func TestHTML_ParsesBack(t *testing.T) {
	t.Parallel()

	out, err := HTML(BuildResult(deepNode()), HTMLOptions{})
	require.NoError(t, err)

	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)

	count := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			count++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	assert.Equal(t, 5, count)
}
