package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "suppliertracker/internal/domain/errors"
	"suppliertracker/internal/server/http/dto"
	"suppliertracker/internal/tracker"
)

// PageHandler exposes the order page: snapshot loads, saves, edits, deletes
// and form control.
type PageHandler struct {
	facade interface {
		PageFacade
		AuthFacade
	}
}

// NewPageHandler creates PageHandler instance.
func NewPageHandler(facade TrackerFacade) *PageHandler {
	return &PageHandler{facade: facade}
}

// View handles GET /api/orders: refresh the snapshot and render the page.
// Filter query parameters are applied only when present, so a bare request
// keeps the stored filter state.
func (h *PageHandler) View(c *gin.Context) {
	page, token := h.pageFor(c)

	query := c.Request.URL.Query()
	if query.Has("tab") {
		page.SetTab(c.Query("tab"))
	}
	if query.Has("status") || query.Has("date") || query.Has("q") {
		page.SetFilters(tracker.Filters{
			Status: c.Query("status"),
			Date:   c.Query("date"),
			Query:  c.Query("q"),
		})
	}

	if err := page.Load(c.Request.Context(), token); err != nil {
		if status, done := mapPageError(err); done {
			c.Status(status)
			return
		}
		// a fetch failure is part of the page: the view carries the message
	}
	c.JSON(http.StatusOK, page.View())
}

// Save handles POST /api/orders: apply the submitted form values and persist
// them as a create or, when an edit is in progress, an update.
func (h *PageHandler) Save(c *gin.Context) {
	page, token := h.pageFor(c)

	var req dto.OrderFormRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	values := tracker.FormValues{
		CustomerName:   req.CustomerName,
		FBProfile:      req.FBProfile,
		OrderDetails:   req.OrderDetails,
		Status:         req.Status,
		OrderDate:      req.OrderDate,
		DeliveryMethod: req.DeliveryMethod,
		PaidProduct:    req.PaidProduct,
		PaidShipping:   req.PaidShipping,
		Notes:          req.Notes,
	}
	if att, err := readAttachment(c); err != nil {
		c.Status(http.StatusBadRequest)
		return
	} else if att != nil {
		values.Attachment = att
	}
	page.SetForm(values)

	if err := page.Save(c.Request.Context(), token); err != nil {
		if status, done := mapPageError(err); done {
			c.Status(status)
			return
		}
		c.JSON(http.StatusInternalServerError, page.View())
		return
	}
	c.JSON(http.StatusOK, page.View())
}

// StartEdit handles POST /api/orders/:id/edit.
func (h *PageHandler) StartEdit(c *gin.Context) {
	page, _ := h.pageFor(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := page.StartEdit(id); err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, page.View())
}

// Delete handles DELETE /api/orders/:id. The confirm query parameter must
// repeat the order's code (or raw id) to stand in for the confirmation
// prompt; without it the prompt text is returned and nothing is deleted.
func (h *PageHandler) Delete(c *gin.Context) {
	page, token := h.pageFor(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	confirmation := c.Query("confirm")
	var prompt string
	deleted, err := page.Delete(c.Request.Context(), token, id, func(p string) bool {
		prompt = p
		label := strings.TrimSuffix(strings.TrimPrefix(p, "Delete order "), "?")
		return confirmation != "" && (confirmation == label || confirmation == strconv.FormatInt(id, 10))
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrBusy):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrNoSession):
			c.Status(http.StatusUnauthorized)
		default:
			c.JSON(http.StatusInternalServerError, page.View())
		}
		return
	}
	if !deleted {
		c.JSON(http.StatusPreconditionRequired, dto.DeleteResponse{Deleted: false, Prompt: prompt})
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Deleted: true})
}

// ResetForm handles POST /api/form/reset.
func (h *PageHandler) ResetForm(c *gin.Context) {
	page, _ := h.pageFor(c)
	page.ResetForm()
	c.JSON(http.StatusOK, page.View())
}

func (h *PageHandler) pageFor(c *gin.Context) (*tracker.Page, string) {
	session := CurrentSession(c)
	return h.facade.PageFor(session.UserID), CurrentToken(c)
}

// readAttachment pulls the optional uploaded file out of the multipart form.
func readAttachment(c *gin.Context) (*tracker.Attachment, error) {
	file, err := c.FormFile("attachment")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &tracker.Attachment{
		Name:        file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// mapPageError translates coordinator errors that preempt a response body.
func mapPageError(err error) (int, bool) {
	switch {
	case errors.Is(err, domainErrors.ErrBusy):
		return http.StatusConflict, true
	case errors.Is(err, domainErrors.ErrNoSession):
		return http.StatusUnauthorized, true
	}
	return 0, false
}
