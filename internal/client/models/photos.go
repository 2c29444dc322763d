package models

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/lostfound/internal/common"
)

// Photos is the canonical list of image URLs of an item. The backend sends
// the foto field as an array, as a string holding a JSON array, or as a
// bare URL; all of them decode into the same value.
type Photos []string

func (p *Photos) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = NormalizePhotos(raw)
	return nil
}

// First returns the first URL or "".
func (p Photos) First() string {
	return p.FirstOr("")
}

// FirstOr returns the first URL or fallback.
func (p Photos) FirstOr(fallback string) string {
	if len(p) == 0 {
		return fallback
	}
	return p[0]
}

var dirtyChars = regexp.MustCompile(`[\[\]"]`)

// NormalizePhotos converts any representation of the foto field into
// Photos. Unusable input yields nil.
func NormalizePhotos(raw any) Photos {
	switch v := raw.(type) {
	case nil:
		return nil
	case Photos:
		return compact(v)
	case []string:
		return compact(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return compact(out)
	case string:
		return photosFromString(v)
	default:
		return nil
	}
}

func photosFromString(s string) Photos {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(s), &parsed); err == nil {
		if arr, ok := parsed.([]any); ok {
			return NormalizePhotos(arr)
		}
		return nil
	}

	if strings.HasPrefix(s, "http") {
		return Photos{s}
	}

	// Neither JSON nor a URL: strip brackets and quotes and keep the rest
	// as one value. Commas are not split on.
	if cleaned := strings.TrimSpace(dirtyChars.ReplaceAllString(s, "")); strings.HasPrefix(cleaned, "http") {
		return Photos{cleaned}
	}
	return nil
}

func compact(in []string) Photos {
	var out Photos
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ResolveImageURL returns the URL to display for a raw foto value, falling
// back to the placeholder image.
func ResolveImageURL(raw any) string {
	return NormalizePhotos(raw).FirstOr(common.PlaceholderImageURL)
}
