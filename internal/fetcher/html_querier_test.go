package fetcher

import (
	"testing"

	"github.com/aleister1102/tixwatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventPage = `<html><body>
<div class="event">
  <div class="buy"><span>場次一</span> 立即訂購</div>
  <a class="btn-buy" href="/ticket" title="Buy now"><img alt="ticket"></a>
  <button>Sold out <b>today</b></button>
  <input type="submit" value="立即訂購">
</div>
</body></html>`

func TestHTMLQuerier_OwnTexts(t *testing.T) {
	q, err := NewHTMLQuerier([]byte(eventPage))
	require.NoError(t, err)

	buttons, err := q.OwnTexts("button")
	require.NoError(t, err)
	require.Len(t, buttons, 1)
	assert.Equal(t, "Sold out ", buttons[0])

	inputs, err := q.OwnTexts("input")
	require.NoError(t, err)
	assert.Equal(t, []string{"立即訂購"}, inputs)

	buy, err := q.OwnTexts("div.buy")
	require.NoError(t, err)
	require.Len(t, buy, 1)
	assert.NotContains(t, buy[0], "場次一")
	assert.Contains(t, buy[0], "立即訂購")
}

func TestHTMLQuerier_Texts(t *testing.T) {
	q, err := NewHTMLQuerier([]byte(eventPage))
	require.NoError(t, err)

	texts, err := q.Texts("div.buy")
	require.NoError(t, err)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "場次一")
	assert.Contains(t, texts[0], "立即訂購")

	none, err := q.Texts("div#buyTicket")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestHTMLQuerier_Labels(t *testing.T) {
	q, err := NewHTMLQuerier([]byte(eventPage))
	require.NoError(t, err)

	labels, err := q.Labels(".btn-buy")
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, " Buy now", labels[0])
}

func TestHTMLQuerier_InvalidSelector(t *testing.T) {
	q, err := NewHTMLQuerier([]byte(eventPage))
	require.NoError(t, err)

	_, err = q.Texts("div[")
	assert.Error(t, err)
	_, err = q.OwnTexts(":::")
	assert.Error(t, err)
}

func TestNewHTMLSnapshot(t *testing.T) {
	snapshot, err := NewHTMLSnapshot("https://example.test/event", []byte(eventPage))
	require.NoError(t, err)

	assert.Equal(t, "https://example.test/event", snapshot.URL)
	assert.Equal(t, models.ModeStatic, snapshot.Mode)
	assert.Equal(t, eventPage, snapshot.RawText)
	assert.True(t, snapshot.HasStructure())
	assert.False(t, snapshot.FetchedAt.IsZero())

	_, ok := snapshot.SourceReader()
	assert.False(t, ok, "static snapshots expose no page source")
}
