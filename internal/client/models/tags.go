package models

import "encoding/json"

// EncodeTags serializes a tag list to the JSON text form used by both the
// mirror store and the remote tags column. Empty lists encode to "".
func EncodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return ""
	}
	return string(b)
}

// DecodeTags reverses EncodeTags. Malformed input is treated as an absent
// tag list.
func DecodeTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return nil
	}
	return tags
}
