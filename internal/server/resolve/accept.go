package resolve

import (
	"sort"
	"strconv"
	"strings"
)

// mediaRange is one entry of an Accept header, e.g. "text/*;q=0.8".
type mediaRange struct {
	mainType string
	subType  string
	quality  float64
	order    int
}

// parseAccept parses an Accept header into media ranges sorted by quality
// (descending), preserving header order among equal qualities. Malformed
// entries are skipped.
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange

	for i, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		segments := strings.Split(part, ";")
		mediaType := strings.TrimSpace(segments[0])

		slash := strings.Index(mediaType, "/")
		if slash <= 0 || slash == len(mediaType)-1 {
			continue
		}

		r := mediaRange{
			mainType: strings.ToLower(mediaType[:slash]),
			subType:  strings.ToLower(mediaType[slash+1:]),
			quality:  1.0,
			order:    i,
		}

		for _, param := range segments[1:] {
			param = strings.TrimSpace(param)
			if !strings.HasPrefix(param, "q=") {
				continue
			}
			q, err := strconv.ParseFloat(param[2:], 64)
			if err != nil || q < 0 || q > 1 {
				continue
			}
			r.quality = q
		}

		if r.quality == 0 {
			continue
		}
		ranges = append(ranges, r)
	}

	sort.SliceStable(ranges, func(a, b int) bool {
		return ranges[a].quality > ranges[b].quality
	})
	return ranges
}

// matches reports whether the range accepts the given concrete media type.
// Wildcards "*/*" and "type/*" are honoured; parameters on the candidate
// type are ignored.
func (r mediaRange) matches(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	slash := strings.Index(mimeType, "/")
	if slash <= 0 {
		return false
	}
	mainType, subType := mimeType[:slash], mimeType[slash+1:]

	if r.mainType == "*" {
		return true
	}
	if r.mainType != mainType {
		return false
	}
	return r.subType == "*" || r.subType == subType
}
