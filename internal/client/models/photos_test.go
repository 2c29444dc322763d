package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lostfound/internal/common"
)

func TestResolveImageURL(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{"array", []any{"http://x/a.jpg", "http://x/b.jpg"}, "http://x/a.jpg"},
		{"string slice", []string{"http://x/a.jpg"}, "http://x/a.jpg"},
		{"json string", `["http://x/a.jpg"]`, "http://x/a.jpg"},
		{"bare url", "http://bare.jpg", "http://bare.jpg"},
		{"dirty url", `["http://x/a.jpg`, "http://x/a.jpg"},
		{"nil", nil, common.PlaceholderImageURL},
		{"empty string", "", common.PlaceholderImageURL},
		{"empty array", []any{}, common.PlaceholderImageURL},
		{"empty json array", "[]", common.PlaceholderImageURL},
		{"json non array", `{"a":1}`, common.PlaceholderImageURL},
		{"garbage", "not a url", common.PlaceholderImageURL},
		{"number", 42, common.PlaceholderImageURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveImageURL(tt.raw))
		})
	}
}

func TestPhotos_UnmarshalNormalizesEveryShape(t *testing.T) {
	bodies := []string{
		`{"foto":["http://x/a.jpg","http://x/b.jpg"]}`,
		`{"foto":"[\"http://x/a.jpg\",\"http://x/b.jpg\"]"}`,
	}
	for _, body := range bodies {
		var it Item
		require.NoError(t, json.Unmarshal([]byte(body), &it))
		assert.Equal(t, Photos{"http://x/a.jpg", "http://x/b.jpg"}, it.Photos)
	}

	var it Item
	require.NoError(t, json.Unmarshal([]byte(`{"foto":"http://x/only.jpg"}`), &it))
	assert.Equal(t, Photos{"http://x/only.jpg"}, it.Photos)

	require.NoError(t, json.Unmarshal([]byte(`{"foto":"[\"http://x/a.jpg\",\"http://x/b.jpg\""}`), &it))
	assert.Equal(t, Photos{"http://x/a.jpg,http://x/b.jpg"}, it.Photos, "truncated JSON stays one value")

	require.NoError(t, json.Unmarshal([]byte(`{"foto":null}`), &it))
	assert.Empty(t, it.Photos)
	assert.Equal(t, "fallback", it.ImageURL("fallback"))
}
