package models

import (
	"strconv"

	"github.com/spf13/cast"
)

// ParseID accepts only the canonical decimal form of a positive id, so
// "3.5", "0x3" and "03" never name record 3.
func ParseID(raw string) (int64, bool) {
	id, err := cast.ToInt64E(raw)
	if err != nil || id < 1 || strconv.FormatInt(id, 10) != raw {
		return 0, false
	}
	return id, true
}
