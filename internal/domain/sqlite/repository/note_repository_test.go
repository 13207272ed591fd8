package repository

import (
	"testing"
	"time"

	"github.com/udayteja27/apsona/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const day = int64(24 * time.Hour / time.Millisecond)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Note{}))
	return db
}

func seedUsers(t *testing.T, db *gorm.DB) (int64, int64) {
	t.Helper()

	alice := &entity.User{ID: 1, Username: "alice", PasswordHash: "x", CreatedAt: 1}
	bob := &entity.User{ID: 2, Username: "bob", PasswordHash: "x", CreatedAt: 1}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)
	return alice.ID, bob.ID
}

func seedNote(t *testing.T, repo *DefaultNoteRepository, note *entity.Note) *entity.Note {
	t.Helper()
	require.NoError(t, repo.Save(note))
	return note
}

func noteIDs(notes []*entity.Note) []int64 {
	ids := make([]int64, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	return ids
}

func TestFindActive_ScopedToOwnerAndInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	alice, bob := seedUsers(t, db)
	repo := NewNoteRepository(db)

	seedNote(t, repo, &entity.Note{ID: 101, OwnerID: alice, Title: "first", CreatedAt: 10})
	seedNote(t, repo, &entity.Note{ID: 102, OwnerID: alice, Title: "second", CreatedAt: 20})
	seedNote(t, repo, &entity.Note{ID: 103, OwnerID: alice, Title: "binned", Trashed: true, CreatedAt: 30})
	seedNote(t, repo, &entity.Note{ID: 104, OwnerID: bob, Title: "bobs", CreatedAt: 40})

	notes, err := repo.FindActive(alice)
	require.NoError(t, err)
	assert.Equal(t, []int64{101, 102}, noteIDs(notes))

	notes, err = repo.FindActive(bob)
	require.NoError(t, err)
	assert.Equal(t, []int64{104}, noteIDs(notes))
}

func TestSearch_CaseInsensitiveTitleOrContent(t *testing.T) {
	db := newTestDB(t)
	alice, bob := seedUsers(t, db)
	repo := NewNoteRepository(db)

	seedNote(t, repo, &entity.Note{ID: 101, OwnerID: alice, Title: "Groceries", Content: "milk"})
	seedNote(t, repo, &entity.Note{ID: 102, OwnerID: alice, Title: "ideas", Content: "buy MILK later"})
	seedNote(t, repo, &entity.Note{ID: 103, OwnerID: alice, Title: "unrelated", Content: "nothing"})
	seedNote(t, repo, &entity.Note{ID: 104, OwnerID: alice, Title: "milk archive", Trashed: true})
	seedNote(t, repo, &entity.Note{ID: 105, OwnerID: bob, Title: "milk too"})

	notes, err := repo.Search(alice, "milk")
	require.NoError(t, err)
	assert.Equal(t, []int64{101, 102}, noteIDs(notes))

	// Empty query matches every active note.
	notes, err = repo.Search(alice, "")
	require.NoError(t, err)
	assert.Equal(t, []int64{101, 102, 103}, noteIDs(notes))
}

func TestFindArchived_KeepsTrashedNotes(t *testing.T) {
	db := newTestDB(t)
	alice, _ := seedUsers(t, db)
	repo := NewNoteRepository(db)

	seedNote(t, repo, &entity.Note{ID: 101, OwnerID: alice, Archived: true})
	seedNote(t, repo, &entity.Note{ID: 102, OwnerID: alice, Archived: true, Trashed: true})
	seedNote(t, repo, &entity.Note{ID: 103, OwnerID: alice})

	notes, err := repo.FindArchived(alice)
	require.NoError(t, err)
	assert.Equal(t, []int64{101, 102}, noteIDs(notes))
}

func TestFindActiveByTag_ExactElementMatch(t *testing.T) {
	db := newTestDB(t)
	alice, bob := seedUsers(t, db)
	repo := NewNoteRepository(db)

	seedNote(t, repo, &entity.Note{ID: 101, OwnerID: alice, Tags: entity.StringList{"work", "work", "home"}})
	seedNote(t, repo, &entity.Note{ID: 102, OwnerID: alice, Tags: entity.StringList{"Work"}})
	seedNote(t, repo, &entity.Note{ID: 103, OwnerID: alice, Tags: entity.StringList{"workout"}})
	seedNote(t, repo, &entity.Note{ID: 104, OwnerID: alice, Tags: entity.StringList{"work"}, Trashed: true})
	seedNote(t, repo, &entity.Note{ID: 105, OwnerID: bob, Tags: entity.StringList{"work"}})

	notes, err := repo.FindActiveByTag(alice, "work")
	require.NoError(t, err)
	assert.Equal(t, []int64{101}, noteIDs(notes))

	// Tag order and duplicates survive the round trip through the store.
	assert.Equal(t, entity.StringList{"work", "work", "home"}, notes[0].Tags)

	notes, err = repo.FindActiveByTag(bob, "work")
	require.NoError(t, err)
	assert.Equal(t, []int64{105}, noteIDs(notes))
}

func TestFindWithReminders_FutureOnly(t *testing.T) {
	db := newTestDB(t)
	alice, _ := seedUsers(t, db)
	repo := NewNoteRepository(db)

	now := int64(1_000_000)
	past, exact, future := now-1, now, now+1

	seedNote(t, repo, &entity.Note{ID: 101, OwnerID: alice, Reminder: &past})
	seedNote(t, repo, &entity.Note{ID: 102, OwnerID: alice, Reminder: &exact})
	seedNote(t, repo, &entity.Note{ID: 103, OwnerID: alice, Reminder: &future})
	seedNote(t, repo, &entity.Note{ID: 104, OwnerID: alice, Reminder: &future, Trashed: true})
	seedNote(t, repo, &entity.Note{ID: 105, OwnerID: alice})

	notes, err := repo.FindWithReminders(alice, now)
	require.NoError(t, err)
	assert.Equal(t, []int64{102, 103}, noteIDs(notes))
}

func TestOverwrite_LastWriteWinsAndKeepsTimestamps(t *testing.T) {
	db := newTestDB(t)
	alice, _ := seedUsers(t, db)
	repo := NewNoteRepository(db)

	trashedAt := int64(555)
	reminder := int64(999)
	seedNote(t, repo, &entity.Note{
		ID:        101,
		OwnerID:   alice,
		Title:     "old title",
		Content:   "old content",
		Tags:      entity.StringList{"old"},
		Color:     "red",
		Trashed:   true,
		TrashedAt: &trashedAt,
		Reminder:  &reminder,
		CreatedAt: 42,
	})

	// Un-trashing through the generic update, with most fields omitted.
	matched, err := repo.Overwrite(alice, 101, &entity.Note{Title: "new title"})
	require.NoError(t, err)
	require.True(t, matched)

	got, err := repo.FindByID(alice, 101)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "new title", got.Title)
	assert.Empty(t, got.Content)
	assert.Empty(t, []string(got.Tags))
	assert.Empty(t, got.Color)
	assert.Nil(t, got.Reminder)
	assert.False(t, got.Archived)
	assert.False(t, got.Trashed)

	// The overwrite never touches created_at, and trashed_at stays stale
	// until the dedicated trash operation writes it again.
	assert.Equal(t, int64(42), got.CreatedAt)
	require.NotNil(t, got.TrashedAt)
	assert.Equal(t, trashedAt, *got.TrashedAt)
}

func TestOverwrite_WrongOwnerIsNoMatch(t *testing.T) {
	db := newTestDB(t)
	alice, bob := seedUsers(t, db)
	repo := NewNoteRepository(db)

	seedNote(t, repo, &entity.Note{ID: 101, OwnerID: alice, Title: "mine"})

	matched, err := repo.Overwrite(bob, 101, &entity.Note{Title: "stolen"})
	require.NoError(t, err)
	assert.False(t, matched)

	matched, err = repo.Overwrite(bob, 999, &entity.Note{Title: "ghost"})
	require.NoError(t, err)
	assert.False(t, matched)

	got, err := repo.FindByID(alice, 101)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "mine", got.Title)
}

func TestTrash_StampsTrashedAt(t *testing.T) {
	db := newTestDB(t)
	alice, bob := seedUsers(t, db)
	repo := NewNoteRepository(db)

	seedNote(t, repo, &entity.Note{ID: 101, OwnerID: alice, Archived: true})

	matched, err := repo.Trash(alice, 101, 777)
	require.NoError(t, err)
	require.True(t, matched)

	got, err := repo.FindByID(alice, 101)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Trashed)
	require.NotNil(t, got.TrashedAt)
	assert.Equal(t, int64(777), *got.TrashedAt)
	assert.True(t, got.Archived) // trash does not clear the archive flag

	matched, err = repo.Trash(bob, 101, 888)
	require.NoError(t, err)
	assert.False(t, matched)
}

func TestDeleteTrashed_ExactSetAndIdempotent(t *testing.T) {
	db := newTestDB(t)
	alice, bob := seedUsers(t, db)
	repo := NewNoteRepository(db)

	seedNote(t, repo, &entity.Note{ID: 101, OwnerID: alice, Trashed: true})
	seedNote(t, repo, &entity.Note{ID: 102, OwnerID: alice, Trashed: true})
	seedNote(t, repo, &entity.Note{ID: 103, OwnerID: alice})
	seedNote(t, repo, &entity.Note{ID: 104, OwnerID: bob, Trashed: true})

	count, err := repo.DeleteTrashed(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	remaining, err := repo.FindActive(alice)
	require.NoError(t, err)
	assert.Equal(t, []int64{103}, noteIDs(remaining))

	// Bob's trash is untouched by Alice emptying hers.
	bobsTrash, err := repo.FindTrashed(bob)
	require.NoError(t, err)
	assert.Equal(t, []int64{104}, noteIDs(bobsTrash))

	count, err = repo.DeleteTrashed(alice)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteExpiredTrash_ThirtyDayBoundaryAcrossOwners(t *testing.T) {
	db := newTestDB(t)
	alice, bob := seedUsers(t, db)
	repo := NewNoteRepository(db)

	now := int64(100 * day)
	at29 := now - 29*day
	at30 := now - 30*day
	at31 := now - 31*day

	seedNote(t, repo, &entity.Note{ID: 101, OwnerID: alice, Trashed: true, TrashedAt: &at29})
	seedNote(t, repo, &entity.Note{ID: 102, OwnerID: alice, Trashed: true, TrashedAt: &at30})
	seedNote(t, repo, &entity.Note{ID: 103, OwnerID: bob, Trashed: true, TrashedAt: &at31})
	// Stale timestamp on a re-activated note: not trashed, so never purged.
	seedNote(t, repo, &entity.Note{ID: 104, OwnerID: alice, Trashed: false, TrashedAt: &at31})

	count, err := repo.DeleteExpiredTrash(now - 30*day)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	stillThere, err := repo.FindTrashed(alice)
	require.NoError(t, err)
	assert.Equal(t, []int64{101}, noteIDs(stillThere))

	survivor, err := repo.FindByID(alice, 104)
	require.NoError(t, err)
	assert.NotNil(t, survivor)
}
