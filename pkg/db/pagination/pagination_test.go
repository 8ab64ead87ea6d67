package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundtrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "42", CreatedAt: "2024-03-05T10:00:00Z"})
	require.NoError(t, err)

	cursor, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "42", cursor.ID)
	assert.Equal(t, "2024-03-05T10:00:00Z", cursor.CreatedAt)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("no-es-base64!!")
	assert.Error(t, err)
}

type row struct{ ID int }

func page(n int) []*row {
	rows := make([]*row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, &row{ID: i})
	}
	return rows
}

func TestBuildCursorPageInfo(t *testing.T) {
	extract := func(r *row) string { return strconv.Itoa(r.ID) }

	info := BuildCursorPageInfo(page(0), 10, extract)
	assert.False(t, info.HasMore)
	assert.Empty(t, info.NextPageToken)

	// Exactly one page: no more results.
	info = BuildCursorPageInfo(page(10), 10, extract)
	assert.False(t, info.HasMore)
	assert.Equal(t, "9", info.NextPageToken)

	// Over-fetched row signals another page; the token points at the last
	// row of the visible page.
	info = BuildCursorPageInfo(page(11), 10, extract)
	assert.True(t, info.HasMore)
	assert.Equal(t, "9", info.NextPageToken)
}
