// FAQ HTTP handlers.
//
// This file exposes the knowledge-base endpoints:
//   - GET    /faqs                (list, optional category filter, ETag support)
//   - GET    /faqs/{id}           (fetch one, without attachment bytes)
//   - GET    /faqs/{id}/file      (download the attachment)
//   - GET    /categories          (list categories)
//   - POST   /admin/faqs          (create, multipart with optional attachment)
//   - PUT    /admin/faqs/{id}     (partial update)
//   - DELETE /admin/faqs/{id}     (delete)
//   - POST   /admin/faqs/import   (bulk import from CSV/JSON/XLSX/PDF)
//   - POST   /admin/categories    (create category)
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/repo"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/services"
)

// CreateCategoryRequest is the JSON payload for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required" example:"Rede"`
}

// ListFAQs godoc
// @ID          listFAQs
// @Summary     List FAQs
// @Description Returns all FAQs (attachment bytes omitted), optionally filtered by category. Supports weak ETag via If-None-Match and may return 304.
// @Tags        FAQs
// @Produce     json
// @Security    BearerAuth
//
// @Param       category_id    query   string  false "Filter by category id"
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}   domain.FAQ
// @Header      200  {string}  ETag "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /faqs [get]
func (h *Handlers) ListFAQs(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	if count, maxTS, err := repo.FAQStats(ctx, h.DB); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.Unix()
		}
		etag := fmt.Sprintf(`W/"faqs:%d:%d"`, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	faqs, err := h.Faqs.List(ctx, c.Query("category_id"))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, faqs)
}

// GetFAQ godoc
// @ID          getFAQ
// @Summary     Fetch one FAQ
// @Tags        FAQs
// @Produce     json
// @Security    BearerAuth
//
// @Param       id path string true "FAQ ID (UUID)" format(uuid)
//
// @Success     200  {object}  domain.FAQ
// @Failure     404  {object}  handlers.ErrorResponse "FAQ not found"
// @Router      /faqs/{id} [get]
func (h *Handlers) GetFAQ(c *gin.Context) {
	faq, err := h.Faqs.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrFAQNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "FAQ not found")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, faq)
}

// DownloadFAQFile godoc
// @ID          downloadFAQFile
// @Summary     Download a FAQ attachment
// @Description Streams the stored attachment with a Content-Disposition header.
// @Tags        FAQs
// @Produce     application/octet-stream
// @Security    BearerAuth
//
// @Param       id path string true "FAQ ID (UUID)" format(uuid)
//
// @Success     200  {file}    file
// @Failure     404  {object}  handlers.ErrorResponse "No attachment"
// @Router      /faqs/{id}/file [get]
func (h *Handlers) DownloadFAQFile(c *gin.Context) {
	name, data, err := h.Faqs.File(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrFileNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "no attachment for this FAQ")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, name))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// ListCategories godoc
// @ID          listCategories
// @Summary     List FAQ categories
// @Tags        FAQs
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {array}   domain.Category
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /categories [get]
func (h *Handlers) ListCategories(c *gin.Context) {
	cats, err := h.Faqs.Categories(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, cats)
}

// CreateCategory godoc
// @ID          createCategory
// @Summary     Create a FAQ category
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body body handlers.CreateCategoryRequest true "Category payload"
//
// @Success     201  {object}  domain.Category
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse "Name already exists"
// @Router      /admin/categories [post]
func (h *Handlers) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name is required")
		return
	}
	cat, err := h.Faqs.CreateCategory(c.Request.Context(), req.Name)
	switch {
	case errors.Is(err, repo.ErrDuplicate):
		fail(c, http.StatusConflict, ErrCodeConflict, "category name already exists")
		return
	case err != nil:
		fail(c, http.StatusBadRequest, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, cat)
}

// faqInputFromForm reads the multipart fields shared by create and update.
// The attachment is optional; oversized uploads are rejected by the body
// limit middleware before reaching here.
func faqInputFromForm(c *gin.Context) (services.FAQInput, error) {
	in := services.FAQInput{
		Question:   c.PostForm("question"),
		Answer:     c.PostForm("answer"),
		ImageURL:   c.PostForm("image_url"),
		VideoURL:   c.PostForm("video_url"),
		CategoryID: c.PostForm("category_id"),
	}
	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return in, nil
		}
		return in, err
	}
	f, err := fh.Open()
	if err != nil {
		return in, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return in, err
	}
	in.FileName = fh.Filename
	in.FileData = data
	return in, nil
}

// CreateFAQ godoc
// @ID          createFAQ
// @Summary     Create a FAQ
// @Description Accepts multipart form data with question, answer, category_id, optional image_url/video_url, and an optional file attachment.
// @Tags        Admin
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
//
// @Param       question    formData string true  "Question text"
// @Param       answer      formData string true  "Answer text (may carry section markers)"
// @Param       category_id formData string true  "Category id"
// @Param       image_url   formData string false "Illustration URL"
// @Param       video_url   formData string false "Video URL (file or YouTube)"
// @Param       file        formData file   false "Attachment"
//
// @Success     201  {object}  domain.FAQ
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Category not found"
// @Router      /admin/faqs [post]
func (h *Handlers) CreateFAQ(c *gin.Context) {
	in, err := faqInputFromForm(c)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	faq, err := h.Faqs.Create(c.Request.Context(), in)
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "category not found")
		return
	case err != nil:
		fail(c, http.StatusBadRequest, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, faq)
}

// UpdateFAQ godoc
// @ID          updateFAQ
// @Summary     Update a FAQ
// @Description Applies the non-empty multipart fields to an existing FAQ.
// @Tags        Admin
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
//
// @Param       id path string true "FAQ ID (UUID)" format(uuid)
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "FAQ or category not found"
// @Router      /admin/faqs/{id} [put]
func (h *Handlers) UpdateFAQ(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "FAQ id must be a UUID")
		return
	}
	in, err := faqInputFromForm(c)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	err = h.Faqs.Update(c.Request.Context(), id, in)
	switch {
	case errors.Is(err, services.ErrFAQNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "FAQ not found")
		return
	case errors.Is(err, services.ErrCategoryNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "category not found")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// DeleteFAQ godoc
// @ID          deleteFAQ
// @Summary     Delete a FAQ
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
//
// @Param       id path string true "FAQ ID (UUID)" format(uuid)
//
// @Success     204  {string}  string "No Content"
// @Failure     404  {object}  handlers.ErrorResponse "FAQ not found"
// @Router      /admin/faqs/{id} [delete]
func (h *Handlers) DeleteFAQ(c *gin.Context) {
	err := h.Faqs.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, services.ErrFAQNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "FAQ not found")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// ImportFAQs godoc
// @ID          importFAQs
// @Summary     Bulk import FAQs
// @Description Imports question/answer rows from an uploaded CSV, JSON, XLSX, or PDF file. Rows missing question or answer are skipped.
// @Tags        Admin
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
//
// @Param       file formData file true "Import file (.csv, .json, .xlsx, .pdf)"
//
// @Success     200  {object}  services.ImportResult
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     415  {object}  handlers.ErrorResponse "Unsupported format"
// @Failure     500  {object}  handlers.ErrorResponse "Import failed"
// @Router      /admin/faqs/import [post]
func (h *Handlers) ImportFAQs(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	res, err := h.Imports.Import(c.Request.Context(), fh.Filename, data)
	switch {
	case errors.Is(err, services.ErrUnsupportedFormat):
		fail(c, http.StatusUnsupportedMediaType, ErrCodeUnsupportedFormat, "unsupported file format")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeImportFailed, err.Error())
		return
	}
	c.Header("X-Import-Created", strconv.Itoa(res.Created))
	ok(c, http.StatusOK, res)
}
