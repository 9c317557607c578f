package runner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sadopc/zencrawl/internal/core/history"
)

// ErrNoRecord is returned by FindRecord when nothing matches.
var ErrNoRecord = errors.New("no history entry matches")

// FindRecord returns the record whose id equals or starts with prefix,
// so the short ids printed by PrintHistory can be used. An ambiguous
// prefix is an error.
func FindRecord(records []history.Record, prefix string) (history.Record, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return history.Record{}, fmt.Errorf("%w: empty id", ErrNoRecord)
	}

	var found []history.Record
	for _, r := range records {
		if r.ID == prefix {
			return r, nil
		}
		if strings.HasPrefix(r.ID, prefix) {
			found = append(found, r)
		}
	}
	switch len(found) {
	case 0:
		return history.Record{}, fmt.Errorf("%w %q", ErrNoRecord, prefix)
	case 1:
		return found[0], nil
	default:
		return history.Record{}, fmt.Errorf("id %q is ambiguous (%d entries)", prefix, len(found))
	}
}
