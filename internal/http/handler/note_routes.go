package handler

import (
	"net/http"
	"strconv"

	"github.com/udayteja27/apsona/internal/contract"
	"github.com/udayteja27/apsona/internal/domain/entity"
	"github.com/udayteja27/apsona/internal/utils"
	"github.com/udayteja27/apsona/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type NoteService interface {
	CreateNote(actor *entity.User, req *contract.NoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	GetActiveNotes(actor *entity.User) ([]*contract.NoteResponse, apierror.ErrorResponse)
	SearchNotes(actor *entity.User, query string) ([]*contract.NoteResponse, apierror.ErrorResponse)
	GetArchivedNotes(actor *entity.User) ([]*contract.NoteResponse, apierror.ErrorResponse)
	GetNotesByTag(actor *entity.User, tag string) ([]*contract.NoteResponse, apierror.ErrorResponse)
	GetTrashedNotes(actor *entity.User) ([]*contract.NoteResponse, apierror.ErrorResponse)
	GetReminders(actor *entity.User) ([]*contract.NoteResponse, apierror.ErrorResponse)
	UpdateNote(actor *entity.User, noteID int64, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse)
	TrashNote(actor *entity.User, noteID int64) apierror.ErrorResponse
	EmptyTrash(actor *entity.User) (*contract.EmptyTrashResponse, apierror.ErrorResponse)
}

type DefaultNoteRoute struct {
	NoteService NoteService
}

func NewNoteDefault(noteService NoteService) *DefaultNoteRoute {
	return &DefaultNoteRoute{NoteService: noteService}
}

func (n *DefaultNoteRoute) GetNotes(c echo.Context) error {
	return n.listRoute(c, n.NoteService.GetActiveNotes)
}

func (n *DefaultNoteRoute) SearchNotes(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	notes, apierr := n.NoteService.SearchNotes(user, c.QueryParam("q"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"notes": notes}
	return c.JSON(http.StatusOK, &resp)
}

func (n *DefaultNoteRoute) GetArchivedNotes(c echo.Context) error {
	return n.listRoute(c, n.NoteService.GetArchivedNotes)
}

func (n *DefaultNoteRoute) GetNotesByTag(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	tag := c.Param("tag")
	if tag == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("tag"))
	}

	notes, apierr := n.NoteService.GetNotesByTag(user, tag)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"notes": notes}
	return c.JSON(http.StatusOK, &resp)
}

func (n *DefaultNoteRoute) GetTrashedNotes(c echo.Context) error {
	return n.listRoute(c, n.NoteService.GetTrashedNotes)
}

func (n *DefaultNoteRoute) GetReminders(c echo.Context) error {
	return n.listRoute(c, n.NoteService.GetReminders)
}

func (n *DefaultNoteRoute) CreateNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.NoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	note, apierr := n.NoteService.CreateNote(user, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, note)
}

func (n *DefaultNoteRoute) UpdateNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseNoteID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.InvalidIDError)
	}

	var req contract.UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	note, apierr := n.NoteService.UpdateNote(user, id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, note)
}

func (n *DefaultNoteRoute) TrashNote(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, err := parseNoteID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.InvalidIDError)
	}

	if apierr := n.NoteService.TrashNote(user, id); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (n *DefaultNoteRoute) EmptyTrash(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	resp, apierr := n.NoteService.EmptyTrash(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (n *DefaultNoteRoute) listRoute(c echo.Context, list func(*entity.User) ([]*contract.NoteResponse, apierror.ErrorResponse)) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	notes, apierr := list(user)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"notes": notes}
	return c.JSON(http.StatusOK, &resp)
}

func parseNoteID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
