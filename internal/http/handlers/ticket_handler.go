// Admin ticket endpoints. Tickets exist so the chat "encerrar chamado N"
// command has something to act on; end users never touch these routes.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/repo"
)

// CreateTicketRequest is the JSON payload for opening a ticket.
type CreateTicketRequest struct {
	Code  int    `json:"code" binding:"required,min=1" example:"42"`
	Title string `json:"title" binding:"required" example:"Internet lenta no 3º andar"`
}

// CreateTicket godoc
// @ID          createTicket
// @Summary     Open a ticket
// @Description Creates an open ticket with a unique numeric code.
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body body handlers.CreateTicketRequest true "Ticket payload"
//
// @Success     201  {object}  domain.Ticket
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse "Code already exists"
// @Router      /admin/tickets [post]
func (h *Handlers) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "code and title are required")
		return
	}
	t, err := repo.CreateTicket(c.Request.Context(), h.DB, req.Code, req.Title)
	switch {
	case errors.Is(err, repo.ErrDuplicate):
		fail(c, http.StatusConflict, ErrCodeConflict, "ticket code already exists")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, t)
}

// ListTickets godoc
// @ID          listTickets
// @Summary     List tickets
// @Description Returns tickets ordered by code. An optional status query ("aberto" or "encerrado") filters the result.
// @Tags        Admin
// @Produce     json
// @Security    BearerAuth
//
// @Param       status query string false "Status filter" Enums(aberto, encerrado)
//
// @Success     200  {array}   domain.Ticket
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /admin/tickets [get]
func (h *Handlers) ListTickets(c *gin.Context) {
	tickets, err := repo.ListTickets(c.Request.Context(), h.DB, c.Query("status"))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, tickets)
}
