// Package params reads path and query parameters the way every handler
// expects them: numeric ids, ISO dates and comma separated id lists.
package params

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"eventhire/internal/pkg/dates"
)

// ID parses a positive int64 path parameter.
func ID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// Date reads an optional query date. Missing or empty yields nil; a value
// that cannot be parsed is an error.
func Date(c *gin.Context, key string) (*dates.Date, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, ok := dates.ParseLenient(raw)
	if !ok {
		return nil, fmt.Errorf("invalid %s %q", key, raw)
	}
	return &d, nil
}

// Int reads an optional integer query value with a default.
func Int(c *gin.Context, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return n, nil
}

// IDList reads ids from repeated keys and comma separated values, e.g.
// ?ids=1,2&ids=3. Blank and non numeric entries are skipped.
func IDList(c *gin.Context, key string) []int64 {
	var out []int64
	seen := map[int64]bool{}
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil || id <= 0 || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
