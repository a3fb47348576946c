package storage

import (
	"strconv"
	"strings"
)

// ByteRange is a single parsed HTTP byte range. End is inclusive and -1 when
// the range is open-ended ("bytes=100-"). Suffix ranges ("bytes=-100")
// request the last Start bytes.
type ByteRange struct {
	Start  int64
	End    int64
	Suffix bool
}

// ParseRange parses a Range header value. Only single byte ranges are
// supported; anything else yields ok=false and the caller serves the full
// object.
func ParseRange(header string) (ByteRange, bool) {
	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok || strings.Contains(spec, ",") {
		return ByteRange{}, false
	}

	first, last, found := strings.Cut(spec, "-")
	if !found {
		return ByteRange{}, false
	}

	if first == "" {
		// Suffix range: last N bytes.
		n, err := strconv.ParseInt(last, 10, 64)
		if err != nil || n <= 0 {
			return ByteRange{}, false
		}
		return ByteRange{Start: n, Suffix: true}, true
	}

	start, err := strconv.ParseInt(first, 10, 64)
	if err != nil || start < 0 {
		return ByteRange{}, false
	}

	if last == "" {
		return ByteRange{Start: start, End: -1}, true
	}

	end, err := strconv.ParseInt(last, 10, 64)
	if err != nil || end < start {
		return ByteRange{}, false
	}
	return ByteRange{Start: start, End: end}, true
}

// Resolve maps the range onto an object of the given size, returning the
// absolute inclusive offsets. ok is false when the range cannot be satisfied.
func (r ByteRange) Resolve(size int64) (start, end int64, ok bool) {
	if size <= 0 {
		return 0, 0, false
	}
	if r.Suffix {
		start = size - r.Start
		if start < 0 {
			start = 0
		}
		return start, size - 1, true
	}
	if r.Start >= size {
		return 0, 0, false
	}
	end = r.End
	if end < 0 || end >= size {
		end = size - 1
	}
	return r.Start, end, true
}
