package handler

import (
	"mime/multipart"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/supriety/kindness-track/internal/middleware"
	"github.com/supriety/kindness-track/internal/repository"
	"github.com/supriety/kindness-track/internal/service"
)

type ActHandler struct {
	svc service.ActService
}

func NewActHandler(svc service.ActService) *ActHandler {
	return &ActHandler{svc: svc}
}

type ActResponse struct {
	ID                 string  `json:"id"`
	UserID             string  `json:"userId"`
	Username           string  `json:"username"`
	AvatarURL          *string `json:"avatarUrl"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	Category           string  `json:"category"`
	MediaURL           *string `json:"mediaUrl,omitempty"`
	MediaType          *string `json:"mediaType,omitempty"`
	Location           *string `json:"location,omitempty"`
	ActDate            string  `json:"actDate"`
	VerificationStatus string  `json:"verificationStatus"`
	CreditsAwarded     int     `json:"creditsAwarded"`
	RejectionReason    *string `json:"rejectionReason,omitempty"`
	VerifiedAt         *string `json:"verifiedAt,omitempty"`
	Visibility         string  `json:"visibility"`
	ReactionsCount     int64   `json:"reactionsCount"`
	CommentsCount      int64   `json:"commentsCount"`
	CreatedAt          string  `json:"createdAt"`
}

func toActResponse(row *repository.ActRow) ActResponse {
	var verifiedAt *string
	if row.VerifiedAt != nil {
		val := row.VerifiedAt.Format(time.RFC3339)
		verifiedAt = &val
	}
	return ActResponse{
		ID:                 row.ID,
		UserID:             row.UserID,
		Username:           row.Username,
		AvatarURL:          row.AvatarURL,
		Title:              row.Title,
		Description:        row.Description,
		Category:           string(row.Category),
		MediaURL:           row.MediaURL,
		MediaType:          row.MediaType,
		Location:           row.Location,
		ActDate:            row.ActDate.Format("2006-01-02"),
		VerificationStatus: string(row.VerificationStatus),
		CreditsAwarded:     row.CreditsAwarded,
		RejectionReason:    row.RejectionReason,
		VerifiedAt:         verifiedAt,
		Visibility:         string(row.Visibility),
		ReactionsCount:     row.ReactionsCount,
		CommentsCount:      row.CommentsCount,
		CreatedAt:          row.CreatedAt.Format(time.RFC3339),
	}
}

func userID(c echo.Context) string {
	id, _ := c.Get(middleware.ContextUserID).(string)
	return id
}

// formField reports a form value only when the client actually sent the
// field, so PATCH can tell "absent" from "empty".
func formField(c echo.Context, name string) *string {
	if form, err := c.MultipartForm(); err == nil {
		if vals, ok := form.Value[name]; ok && len(vals) > 0 {
			return &vals[0]
		}
		return nil
	}
	params, err := c.FormParams()
	if err != nil {
		return nil
	}
	if vals, ok := params[name]; ok && len(vals) > 0 {
		return &vals[0]
	}
	return nil
}

// mediaFromForm opens the optional "media" part. The caller closes the
// returned file.
func mediaFromForm(c echo.Context) (*service.MediaFile, multipart.File, error) {
	fh, err := c.FormFile("media")
	if err != nil {
		return nil, nil, nil
	}
	src, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &service.MediaFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Reader:      src,
	}, src, nil
}

func (h *ActHandler) Create(c echo.Context) error {
	uid := userID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing user"))
	}

	in := service.CreateActInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Location:    c.FormValue("location"),
		Visibility:  c.FormValue("visibility"),
	}
	if dateStr := c.FormValue("actDate"); dateStr != "" {
		actDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "actDate must be YYYY-MM-DD"))
		}
		in.ActDate = actDate
	}

	media, file, err := mediaFromForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "unreadable media file"))
	}
	if file != nil {
		defer file.Close()
	}
	in.Media = media

	row, err := h.svc.Create(c.Request().Context(), uid, in)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toActResponse(row))
}

func (h *ActHandler) Get(c echo.Context) error {
	row, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "act not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch act"))
	}
	return c.JSON(http.StatusOK, toActResponse(row))
}

func (h *ActHandler) ListMine(c echo.Context) error {
	uid := userID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing user"))
	}
	rows, err := h.svc.ListMine(c.Request().Context(), uid, c.QueryParam("status"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch acts"))
	}
	resp := make([]ActResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, toActResponse(&rows[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ActHandler) Update(c echo.Context) error {
	uid := userID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing user"))
	}

	in := service.UpdateActInput{
		Title:       formField(c, "title"),
		Description: formField(c, "description"),
		Category:    formField(c, "category"),
		Location:    formField(c, "location"),
		Visibility:  formField(c, "visibility"),
	}
	media, file, err := mediaFromForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "unreadable media file"))
	}
	if file != nil {
		defer file.Close()
	}
	in.Media = media

	row, err := h.svc.Update(c.Request().Context(), c.Param("id"), uid, in)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "act not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "you can only edit your acts"))
		case service.ErrNotPending:
			return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "only pending acts can be edited"))
		default:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
	}
	return c.JSON(http.StatusOK, toActResponse(row))
}

func (h *ActHandler) Delete(c echo.Context) error {
	uid := userID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing user"))
	}
	if err := h.svc.Delete(c.Request().Context(), c.Param("id"), uid); err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "act not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "you can only delete your acts"))
		case service.ErrNotPending:
			return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "only pending acts can be deleted"))
		default:
			return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to delete act"))
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "act deleted"})
}

type ReactRequest struct {
	ReactionType string `json:"reactionType"`
}

func (h *ActHandler) React(c echo.Context) error {
	uid := userID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing user"))
	}
	var req ReactRequest
	_ = c.Bind(&req)

	reaction, err := h.svc.React(c.Request().Context(), c.Param("id"), uid, req.ReactionType)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "act not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, map[string]string{
		"actId":        reaction.ActID,
		"reactionType": string(reaction.ReactionType),
	})
}

func (h *ActHandler) Unreact(c echo.Context) error {
	uid := userID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing user"))
	}
	if err := h.svc.Unreact(c.Request().Context(), c.Param("id"), uid); err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "no reaction to remove"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to remove reaction"))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "reaction removed"})
}

type CommentRequest struct {
	Comment string `json:"comment"`
}

type CommentResponse struct {
	ID          string  `json:"id"`
	ActID       string  `json:"actId"`
	UserID      string  `json:"userId"`
	Username    string  `json:"username,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
	CommentText string  `json:"commentText"`
	CreatedAt   string  `json:"createdAt"`
}

func (h *ActHandler) Comment(c echo.Context) error {
	uid := userID(c)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing user"))
	}
	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	comment, err := h.svc.Comment(c.Request().Context(), c.Param("id"), uid, req.Comment)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "act not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, CommentResponse{
		ID:          comment.ID,
		ActID:       comment.ActID,
		UserID:      comment.UserID,
		CommentText: comment.CommentText,
		CreatedAt:   comment.CreatedAt.Format(time.RFC3339),
	})
}

func (h *ActHandler) ListComments(c echo.Context) error {
	rows, err := h.svc.ListComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch comments"))
	}
	resp := make([]CommentResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, CommentResponse{
			ID:          row.ID,
			ActID:       row.ActID,
			UserID:      row.UserID,
			Username:    row.Username,
			AvatarURL:   row.AvatarURL,
			CommentText: row.CommentText,
			CreatedAt:   row.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, resp)
}
