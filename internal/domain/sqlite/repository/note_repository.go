package repository

import (
	"errors"

	"github.com/udayteja27/apsona/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

// forOwner is the single owner scope every per-user query must pass through.
// A note outside this scope is indistinguishable from one that never existed.
func (d *DefaultNoteRepository) forOwner(ownerID int64) *gorm.DB {
	return d.db.Model(&entity.Note{}).Where("owner_id = ?", ownerID)
}

// FindActive returns the owner's non-trashed notes in insertion order
// (snowflake primary keys are time-ordered).
func (d *DefaultNoteRepository) FindActive(ownerID int64) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.forOwner(ownerID).
		Where("trashed = ?", false).
		Order("id").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Search matches query as a substring of title or content. SQLite LIKE is
// case-insensitive for ASCII, and an empty query matches every note.
func (d *DefaultNoteRepository) Search(ownerID int64, query string) ([]*entity.Note, error) {
	pattern := "%" + query + "%"

	var notes []*entity.Note
	err := d.forOwner(ownerID).
		Where("trashed = ? AND (title LIKE ? OR content LIKE ?)", false, pattern, pattern).
		Order("id").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// FindArchived filters on the archived flag only; trashed notes that are
// also archived stay in the result.
func (d *DefaultNoteRepository) FindArchived(ownerID int64) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.forOwner(ownerID).
		Where("archived = ?", true).
		Order("id").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// FindActiveByTag returns non-trashed notes carrying tag as an exact,
// case-sensitive element of their tag list. Tags live in a JSON column, so
// element matching happens here rather than in SQL.
func (d *DefaultNoteRepository) FindActiveByTag(ownerID int64, tag string) ([]*entity.Note, error) {
	notes, err := d.FindActive(ownerID)
	if err != nil {
		return nil, err
	}

	matched := make([]*entity.Note, 0, len(notes))
	for _, note := range notes {
		if note.Tags.Contains(tag) {
			matched = append(matched, note)
		}
	}
	return matched, nil
}

func (d *DefaultNoteRepository) FindTrashed(ownerID int64) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.forOwner(ownerID).
		Where("trashed = ?", true).
		Order("id").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// FindWithReminders returns non-trashed notes whose reminder is at or after
// now; elapsed reminders drop out of the list.
func (d *DefaultNoteRepository) FindWithReminders(ownerID int64, now int64) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := d.forOwner(ownerID).
		Where("trashed = ? AND reminder IS NOT NULL AND reminder >= ?", false, now).
		Order("id").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (d *DefaultNoteRepository) FindByID(ownerID, id int64) (*entity.Note, error) {
	var note entity.Note
	err := d.forOwner(ownerID).Where("id = ?", id).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (d *DefaultNoteRepository) Save(note *entity.Note) error {
	return d.db.Create(note).Error
}

// Overwrite replaces the seven client-ownable fields in one atomic UPDATE.
// Omitted request fields arrive as zero values and are written as such; this
// is deliberately last-write-wins, not a partial merge. TrashedAt and
// CreatedAt are never part of the statement. Returns false when no note
// matched the owner and id.
func (d *DefaultNoteRepository) Overwrite(ownerID, id int64, note *entity.Note) (bool, error) {
	tx := d.forOwner(ownerID).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":    note.Title,
			"content":  note.Content,
			"tags":     note.Tags,
			"color":    note.Color,
			"reminder": note.Reminder,
			"archived": note.Archived,
			"trashed":  note.Trashed,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// Trash is the only writer of trashed_at. Returns false when no note
// matched the owner and id.
func (d *DefaultNoteRepository) Trash(ownerID, id, now int64) (bool, error) {
	tx := d.forOwner(ownerID).
		Where("id = ?", id).
		Updates(map[string]any{
			"trashed":    true,
			"trashed_at": now,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// DeleteTrashed hard-deletes every trashed note of the owner regardless of
// age and reports how many were removed.
func (d *DefaultNoteRepository) DeleteTrashed(ownerID int64) (int64, error) {
	tx := d.forOwner(ownerID).
		Where("trashed = ?", true).
		Delete(&entity.Note{})
	return tx.RowsAffected, tx.Error
}

// DeleteExpiredTrash hard-deletes trashed notes across ALL owners whose
// trashed_at is at or before cutoff. This is the only unscoped note query;
// it backs the daily purge sweep.
func (d *DefaultNoteRepository) DeleteExpiredTrash(cutoff int64) (int64, error) {
	tx := d.db.
		Where("trashed = ? AND trashed_at IS NOT NULL AND trashed_at <= ?", true, cutoff).
		Delete(&entity.Note{})
	return tx.RowsAffected, tx.Error
}
