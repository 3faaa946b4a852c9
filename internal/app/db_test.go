package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDBQueryForTrace(t *testing.T) {
	t.Parallel()

	got := formatDBQueryForTrace("\n\tSELECT public_id\n\t  FROM matches\n\tWHERE season_public_id = $1 ")
	assert.Equal(t, "SELECT public_id FROM matches WHERE season_public_id = $1", got)
	assert.Equal(t, "", formatDBQueryForTrace("   "))

	long := formatDBQueryForTrace("SELECT " + strings.Repeat("ü", maxTracedQueryLength))
	assert.True(t, strings.HasSuffix(long, "..."))
	assert.LessOrEqual(t, len(long), maxTracedQueryLength+3)
	assert.True(t, strings.ToValidUTF8(long, "?") == long)
}
