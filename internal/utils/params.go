package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseIDParam parses a numeric path parameter
func ParseIDParam(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// ParseIDList parses a list of user ids sent as a form field. It accepts a JSON
// array of numbers or numeric strings, or a comma separated list.
func ParseIDList(raw string) ([]uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []uint64{}, nil
	}

	if strings.HasPrefix(raw, "[") {
		var items []json.RawMessage
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, fmt.Errorf("invalid id list: %w", err)
		}
		ids := make([]uint64, 0, len(items))
		for _, item := range items {
			text := strings.Trim(string(item), `"`)
			id, err := strconv.ParseUint(text, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid id %s", item)
			}
			ids = append(ids, id)
		}
		return ids, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
