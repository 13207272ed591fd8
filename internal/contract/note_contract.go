package contract

// NoteRequest creates a note. No field is mandatory; a note may be entirely
// empty. Reminder is epoch millis, null for none.
type NoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Color    string   `json:"color"`
	Reminder *int64   `json:"reminder"`
}

// UpdateNoteRequest is applied as a full overwrite of all seven fields.
// Whatever the client omits is written back as empty/false/null; there is
// no partial merge. TrashedAt is not part of this contract on purpose.
type UpdateNoteRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Color    string   `json:"color"`
	Reminder *int64   `json:"reminder"`
	Archived bool     `json:"archived"`
	Trashed  bool     `json:"trashed"`
}

type NoteResponse struct {
	ID        int64    `json:"id"`
	OwnerID   int64    `json:"owner_id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	Color     string   `json:"color"`
	Archived  bool     `json:"archived"`
	Trashed   bool     `json:"trashed"`
	TrashedAt *string  `json:"trashed_at,omitempty"`
	Reminder  *string  `json:"reminder,omitempty"`
	CreatedAt string   `json:"created_at"`
}

type EmptyTrashResponse struct {
	Deleted int64 `json:"deleted"`
}
