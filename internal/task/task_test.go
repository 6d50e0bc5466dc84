package task

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayloadTriState(t *testing.T) {
	// Absent fields stay nil
	p, err := ParsePayload([]byte(`{"title":"Buy milk"}`))
	require.NoError(t, err)
	require.NotNil(t, p.Title)
	assert.Equal(t, "Buy milk", *p.Title)
	assert.Nil(t, p.Description)
	assert.Nil(t, p.Completed)

	// All fields present
	p, err = ParsePayload([]byte(`{"title":"a","description":"b","completed":true}`))
	require.NoError(t, err)
	assert.Equal(t, "a", *p.Title)
	assert.Equal(t, "b", *p.Description)
	assert.True(t, *p.Completed)

	// Empty body means no fields, not an error
	p, err = ParsePayload(nil)
	require.NoError(t, err)
	assert.True(t, p.Empty())
}

func TestParsePayloadWrongTypes(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"title number", `{"title":42}`, "title"},
		{"description array", `{"description":[1]}`, "description"},
		{"completed string", `{"completed":"yes"}`, "completed"},
		{"not an object", `[1,2,3]`, "body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePayload([]byte(tc.body))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestParsePayloadDisallowedField(t *testing.T) {
	_, err := ParsePayload([]byte(`{"title":"ok","invalidField":"anything"}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, DisallowedField, verr.Field)
}

func TestCleanTitle(t *testing.T) {
	got, err := CleanTitle("  padded  ")
	require.NoError(t, err)
	assert.Equal(t, "padded", got)

	_, err = CleanTitle("   ")
	assert.Error(t, err)

	_, err = CleanTitle(strings.Repeat("x", MaxTitleLen+1))
	assert.Error(t, err)

	got, err = CleanTitle(strings.Repeat("x", MaxTitleLen))
	require.NoError(t, err)
	assert.Len(t, got, MaxTitleLen)
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "done", CleanDescription("  done\n"))
	assert.Equal(t, "", CleanDescription("   "))
}
