package api

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// parseDataURL decodes a data-URL string ("data:<mime>;base64,<payload>"
// or the percent-encoded plain form) into its media type and raw bytes.
// Uploads store files in this form; downloads decode it back.
func parseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL: no payload separator")
	}

	mediaType := meta
	isBase64 := false
	if t, found := strings.CutSuffix(meta, ";base64"); found {
		mediaType = t
		isBase64 = true
	}
	if mediaType == "" {
		mediaType = "text/plain;charset=US-ASCII"
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("malformed base64 payload: %w", err)
		}
		return mediaType, data, nil
	}

	decoded, err := url.QueryUnescape(payload)
	if err != nil {
		return "", nil, fmt.Errorf("malformed percent-encoded payload: %w", err)
	}
	return mediaType, []byte(decoded), nil
}
