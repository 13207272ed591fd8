package service

import (
	"github.com/udayteja27/apsona/internal/contract"
	"github.com/udayteja27/apsona/internal/domain/entity"
	"github.com/udayteja27/apsona/internal/utils"
	"github.com/udayteja27/apsona/internal/utils/apierror"
	"github.com/udayteja27/apsona/internal/utils/uid"

	"github.com/labstack/gommon/log"
)

// NoteRepository is the storage contract for notes. Every per-user method is
// owner-scoped at the repository level; a note belonging to another user is
// reported exactly like a note that does not exist.
type NoteRepository interface {
	FindActive(ownerID int64) ([]*entity.Note, error)
	Search(ownerID int64, query string) ([]*entity.Note, error)
	FindArchived(ownerID int64) ([]*entity.Note, error)
	FindActiveByTag(ownerID int64, tag string) ([]*entity.Note, error)
	FindTrashed(ownerID int64) ([]*entity.Note, error)
	FindWithReminders(ownerID int64, now int64) ([]*entity.Note, error)
	FindByID(ownerID, id int64) (*entity.Note, error)
	Save(note *entity.Note) error
	Overwrite(ownerID, id int64, note *entity.Note) (bool, error)
	Trash(ownerID, id, now int64) (bool, error)
	DeleteTrashed(ownerID int64) (int64, error)
	DeleteExpiredTrash(cutoff int64) (int64, error)
}

type DefaultNoteService struct {
	NoteRepo NoteRepository
}

func NewNoteService(noteRepo NoteRepository) *DefaultNoteService {
	return &DefaultNoteService{NoteRepo: noteRepo}
}

// CreateNote initializes a fresh, active note. Beyond the owning user, no
// field is validated; an empty note is a valid note.
func (n *DefaultNoteService) CreateNote(actor *entity.User, req *contract.NoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	note := &entity.Note{
		ID:        uid.Generate(),
		OwnerID:   actor.ID,
		Title:     req.Title,
		Content:   req.Content,
		Tags:      entity.StringList(req.Tags),
		Color:     req.Color,
		Archived:  false,
		Trashed:   false,
		TrashedAt: nil,
		Reminder:  req.Reminder,
		CreatedAt: utils.NowUTC(),
	}

	if err := n.NoteRepo.Save(note); err != nil {
		log.Errorf("failed to save note: %v", err)
		return nil, apierror.StoreUnavailableError
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) GetActiveNotes(actor *entity.User) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	notes, err := n.NoteRepo.FindActive(actor.ID)
	if err != nil {
		log.Errorf("failed to fetch notes: %v", err)
		return nil, apierror.StoreUnavailableError
	}
	return toNoteResponses(notes), nil
}

// SearchNotes matches query case-insensitively against title or content of
// non-trashed notes. An empty query matches everything.
func (n *DefaultNoteService) SearchNotes(actor *entity.User, query string) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	notes, err := n.NoteRepo.Search(actor.ID, query)
	if err != nil {
		log.Errorf("failed to search notes: %v", err)
		return nil, apierror.StoreUnavailableError
	}
	return toNoteResponses(notes), nil
}

// GetArchivedNotes filters on the archived flag alone. A note that is both
// archived and trashed is included; callers wanting the trash view use
// GetTrashedNotes.
func (n *DefaultNoteService) GetArchivedNotes(actor *entity.User) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	notes, err := n.NoteRepo.FindArchived(actor.ID)
	if err != nil {
		log.Errorf("failed to fetch archived notes: %v", err)
		return nil, apierror.StoreUnavailableError
	}
	return toNoteResponses(notes), nil
}

func (n *DefaultNoteService) GetNotesByTag(actor *entity.User, tag string) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	notes, err := n.NoteRepo.FindActiveByTag(actor.ID, tag)
	if err != nil {
		log.Errorf("failed to fetch notes by tag: %v", err)
		return nil, apierror.StoreUnavailableError
	}
	return toNoteResponses(notes), nil
}

func (n *DefaultNoteService) GetTrashedNotes(actor *entity.User) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	notes, err := n.NoteRepo.FindTrashed(actor.ID)
	if err != nil {
		log.Errorf("failed to fetch trashed notes: %v", err)
		return nil, apierror.StoreUnavailableError
	}
	return toNoteResponses(notes), nil
}

// GetReminders returns non-trashed notes whose reminder has not elapsed yet.
func (n *DefaultNoteService) GetReminders(actor *entity.User) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	notes, err := n.NoteRepo.FindWithReminders(actor.ID, utils.NowUTC())
	if err != nil {
		log.Errorf("failed to fetch reminders: %v", err)
		return nil, apierror.StoreUnavailableError
	}
	return toNoteResponses(notes), nil
}

// UpdateNote overwrites the client-ownable fields of the note in a single
// atomic statement: last write wins, omitted fields become empty. It never
// touches trashed_at, so un-trashing a note leaves the old timestamp behind.
func (n *DefaultNoteService) UpdateNote(actor *entity.User, noteID int64, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	note := &entity.Note{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     entity.StringList(req.Tags),
		Color:    req.Color,
		Reminder: req.Reminder,
		Archived: req.Archived,
		Trashed:  req.Trashed,
	}

	matched, err := n.NoteRepo.Overwrite(actor.ID, noteID, note)
	if err != nil {
		log.Errorf("failed to update note: %v", err)
		return nil, apierror.StoreUnavailableError
	}
	if !matched {
		return nil, apierror.NotFoundError
	}

	// Re-read for the response: created_at and trashed_at were not part of
	// the overwrite and only the store knows their current values.
	updated, err := n.NoteRepo.FindByID(actor.ID, noteID)
	if err != nil {
		log.Errorf("failed to fetch updated note: %v", err)
		return nil, apierror.StoreUnavailableError
	}
	if updated == nil {
		return nil, apierror.NotFoundError
	}
	return toNoteResponse(updated), nil
}

// TrashNote soft-deletes the note and stamps trashed_at. This is the only
// operation that ever writes that timestamp.
func (n *DefaultNoteService) TrashNote(actor *entity.User, noteID int64) apierror.ErrorResponse {
	matched, err := n.NoteRepo.Trash(actor.ID, noteID, utils.NowUTC())
	if err != nil {
		log.Errorf("failed to trash note: %v", err)
		return apierror.StoreUnavailableError
	}
	if !matched {
		return apierror.NotFoundError
	}
	return nil
}

// EmptyTrash hard-deletes all of the actor's trashed notes, however recent.
// Running it with an empty trash is a harmless no-op.
func (n *DefaultNoteService) EmptyTrash(actor *entity.User) (*contract.EmptyTrashResponse, apierror.ErrorResponse) {
	count, err := n.NoteRepo.DeleteTrashed(actor.ID)
	if err != nil {
		log.Errorf("failed to empty trash: %v", err)
		return nil, apierror.StoreUnavailableError
	}

	if count > 0 {
		log.Infof("user %d emptied trash, %d notes removed", actor.ID, count)
	}
	return &contract.EmptyTrashResponse{Deleted: count}, nil
}

func toNoteResponse(note *entity.Note) *contract.NoteResponse {
	tags := note.Tags
	if tags == nil {
		tags = entity.StringList{}
	}

	return &contract.NoteResponse{
		ID:        note.ID,
		OwnerID:   note.OwnerID,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      tags,
		Color:     note.Color,
		Archived:  note.Archived,
		Trashed:   note.Trashed,
		TrashedAt: utils.FormatEpochPtr(note.TrashedAt),
		Reminder:  utils.FormatEpochPtr(note.Reminder),
		CreatedAt: utils.FormatEpoch(note.CreatedAt),
	}
}

func toNoteResponses(notes []*entity.Note) []*contract.NoteResponse {
	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return resp
}
