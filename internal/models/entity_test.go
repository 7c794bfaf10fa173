package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListScan(t *testing.T) {
	cases := []struct {
		name string
		src  interface{}
		want StringList
	}{
		{name: "nil", src: nil, want: nil},
		{name: "empty string", src: "", want: nil},
		{name: "json text", src: `["Texas","New York"]`, want: StringList{"Texas", "New York"}},
		{name: "json bytes", src: []byte(`["Ohio"]`), want: StringList{"Ohio"}},
		{name: "postgres array", src: []byte(`{Texas,"New York"}`), want: StringList{"Texas", "New York"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got StringList
			require.NoError(t, got.Scan(tc.src))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStringListScanEmptyPostgresArray(t *testing.T) {
	var got StringList
	require.NoError(t, got.Scan([]byte(`{}`)))
	assert.Empty(t, got)
}

func TestStringListScanRejectsUnknownType(t *testing.T) {
	var got StringList
	assert.Error(t, got.Scan(42))
}

func TestStringListValue(t *testing.T) {
	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringList{"California", "Nevada"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["California","Nevada"]`, v)
}
