package keyboard

import (
	"fmt"
	"strconv"
	"strings"
)

func likeData(targetID int64) string {
	return fmt.Sprintf("like_%d", targetID)
}

func skipData(targetID int64) string {
	return fmt.Sprintf("skip_%d", targetID)
}

// ParseTarget extracts the target ID from "like_<id>"/"skip_<id>" callback
// data. ok is false for any other shape.
func ParseTarget(data, verb string) (int64, bool) {
	rest, found := strings.CutPrefix(data, verb+"_")
	if !found {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
