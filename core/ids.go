package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// NewID returns an opaque unique identifier with the given prefix, eg. "grp-5f3a...".
func NewID(prefix string) string {
	return prefix + uuid.New().String()
}

// NextCode returns the next sequential human-readable code for an entity
// prefix, eg. NextCode("GRP", codes) -> "GRP-0004". Existing codes that do not
// match the "<prefix>-<number>" form are ignored.
func NextCode(prefix string, existing []string) string {
	var max int
	for _, code := range existing {
		if !strings.HasPrefix(code, prefix+"-") {
			continue
		}
		if n, err := strconv.Atoi(code[len(prefix)+1:]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%04d", prefix, max+1)
}
