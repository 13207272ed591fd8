package jobs

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"
)

// TrashRetention is how long a trashed note survives before the daily sweep
// removes it. The boundary is inclusive: a note trashed exactly this long
// ago is deleted.
const TrashRetention = 30 * 24 * time.Hour

// PurgeStore is the slice of the note store the purger needs.
type PurgeStore interface {
	DeleteExpiredTrash(cutoff int64) (int64, error)
}

// TrashPurger hard-deletes expired trashed notes across all owners once per
// day at a fixed wall-clock hour. It owns no global state: the store handle
// and the clock are injected, and the loop stops with its context.
type TrashPurger struct {
	store PurgeStore
	hour  int
	now   func() time.Time
}

func NewTrashPurger(store PurgeStore, hour int) *TrashPurger {
	return &TrashPurger{
		store: store,
		hour:  hour,
		now:   time.Now,
	}
}

func (p *TrashPurger) Start(ctx context.Context) {
	log.Infof("Trash purger started, daily run at %02d:00", p.hour)

	for {
		timer := time.NewTimer(p.untilNextRun())
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info("Stopping trash purger...")
			return
		case <-timer.C:
			p.sweep()
		}
	}
}

// untilNextRun measures from the injected clock to the next occurrence of
// the configured hour in the process-local timezone.
func (p *TrashPurger) untilNextRun() time.Duration {
	now := p.now()
	next := time.Date(now.Year(), now.Month(), now.Day(), p.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

// sweep runs one purge pass. A failure is logged and nothing more happens
// until the next scheduled run; per-record atomicity comes from the store.
func (p *TrashPurger) sweep() {
	cutoff := p.now().UTC().Add(-TrashRetention).UnixMilli()

	count, err := p.store.DeleteExpiredTrash(cutoff)
	if err != nil {
		log.Errorf("Purger: failed to delete expired trash: %v", err)
		return
	}

	if count > 0 {
		log.Infof("Purger: removed %d expired trashed notes", count)
	}
}
