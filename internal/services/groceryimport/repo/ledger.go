package repo

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	perr "grocer/internal/platform/errors"
	"grocer/internal/platform/jsonfile"
	"grocer/internal/platform/logger"
	"grocer/internal/services/groceryimport/domain"
)

// Ledger is the persisted set of applied import keys
type Ledger struct {
	path    string
	entries map[string]domain.LedgerEntry
	now     func() time.Time
}

// OpenLedger loads the ledger at path; a missing file is an empty ledger.
// Both the keyed object form and the older plain array of keys are accepted
func OpenLedger(path string) (*Ledger, error) {
	l := &Ledger{path: path, entries: map[string]domain.LedgerEntry{}, now: time.Now}

	raw, err := jsonfile.LoadRaw(path)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeStorageIO, "load import ledger")
	}
	if raw == nil {
		return l, nil
	}

	var legacy []string
	if err := json.Unmarshal(raw, &legacy); err == nil {
		for _, k := range legacy {
			l.entries[k] = domain.LedgerEntry{}
		}
		logger.Named("ledger").Debug().Int("keys", len(legacy)).Msg("loaded legacy import log")
		return l, nil
	}
	if err := json.Unmarshal(raw, &l.entries); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeStorageIO, "decode import ledger %s", path)
	}
	return l, nil
}

// Len returns the number of recorded keys
func (l *Ledger) Len() int { return len(l.entries) }

// Contains reports whether key was applied by an earlier row or run
func (l *Ledger) Contains(key domain.ImportKey) bool {
	_, ok := l.entries[key.String()]
	return ok
}

// Keys returns the recorded keys in sorted order
func (l *Ledger) Keys() []string {
	out := make([]string, 0, len(l.entries))
	for k := range l.entries {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Record adds key and persists the whole ledger before returning
// Cancellation is not honoured here: the row's purchase is already flushed
func (l *Ledger) Record(_ context.Context, key domain.ImportKey) error {
	k := key.String()
	prev, had := l.entries[k]
	l.entries[k] = domain.LedgerEntry{AppliedAt: l.now().UTC()}
	if err := jsonfile.Save(l.path, l.entries); err != nil {
		// keep memory consistent with disk
		if had {
			l.entries[k] = prev
		} else {
			delete(l.entries, k)
		}
		return perr.Wrap(err, perr.ErrorCodeStorageIO, "persist import ledger")
	}
	return nil
}
