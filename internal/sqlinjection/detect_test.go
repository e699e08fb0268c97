package sqlinjection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runger/vetline/internal/dialect"
)

func TestDetectAlphanumericNeverFlagged(t *testing.T) {
	result := Detect("SELECT * FROM users WHERE name = 'abc123'", "abc123", dialect.Generic)
	assert.False(t, result.Detected)
	assert.Equal(t, ReasonAlphanumeric, result.Reason)
}

func TestDetectTooSmall(t *testing.T) {
	result := Detect("SELECT * FROM t WHERE x = 1", "-", dialect.Generic)
	assert.False(t, result.Detected)
	assert.Equal(t, ReasonTooSmall, result.Reason)
}

func TestDetectNotInQuery(t *testing.T) {
	result := Detect("SELECT * FROM t WHERE x = 1", "' OR '1'='1", dialect.Generic)
	assert.False(t, result.Detected)
	assert.Equal(t, ReasonNotInQuery, result.Reason)
}

func TestDetectCommonSQLString(t *testing.T) {
	query := "SELECT * FROM t ORDER BY col " + "order by"
	result := Detect(query, "order by", dialect.Generic)
	assert.False(t, result.Detected)
	assert.Equal(t, ReasonCommonSQLString, result.Reason)
}

func TestDetectClassicTautologyInjection(t *testing.T) {
	query := "SELECT * FROM users WHERE id = 1 OR 1=1 --"
	result := Detect(query, "1 OR 1=1 --", dialect.Generic)
	assert.True(t, result.Detected)
}

func TestDetectBenignQuotedValueNotFlagged(t *testing.T) {
	query := "SELECT * FROM users WHERE name = 'O''Brien-ish'"
	result := Detect(query, "O''Brien-ish", dialect.Generic)
	assert.False(t, result.Detected)
}

func TestDetectWithExtraSafeStrings(t *testing.T) {
	query := "SELECT * FROM t WHERE note = 'totally custom marker'"
	plain := Detect(query, "totally custom marker", dialect.Generic)
	assert.True(t, plain.Detected || plain.Reason != ReasonCommonSQLString)

	withExtra := DetectWithExtraSafeStrings(query, "totally custom marker", dialect.Generic,
		[]string{"totally custom marker"})
	assert.False(t, withExtra.Detected)
	assert.Equal(t, ReasonCommonSQLString, withExtra.Reason)
}

func TestDetectIdempotent(t *testing.T) {
	query := "SELECT * FROM users WHERE id = 1 OR 1=1 --"
	input := "1 OR 1=1 --"
	first := Detect(query, input, dialect.Generic)
	second := Detect(query, input, dialect.Generic)
	assert.Equal(t, first, second)
}
