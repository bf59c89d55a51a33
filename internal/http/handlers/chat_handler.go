// Chat HTTP handlers.
//
// This file wires the Handlers aggregate and exposes the chat endpoints:
//   - POST /chat           (one dispatcher turn, idempotent via Idempotency-Key)
//   - GET  /chat-page      (chat widget entry point; resets the session state)
//   - POST /chat/feedback  (helpful/unhelpful verdict on a previous turn)
//   - GET  /chat/history   (the user's past turns, oldest first)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses. Disambiguation state lives in the
// cookie session, adapted to the dispatcher's Session interface.
package handlers

import (
	"encoding/gob"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/http/middleware"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/repo"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/services"
)

// Handlers groups the HTTP endpoints for auth, chat, FAQs, gamification, and
// tickets. It holds concrete services; transport concerns stay here while
// business logic lives in the services package.
type Handlers struct {
	DB      *gorm.DB
	Auth    *services.AuthService
	Chat    *services.ChatService
	Faqs    *services.FAQService
	Imports *services.ImportService
	Game    *services.GamificationService

	// IdemTTL bounds how long a completed chat turn can be replayed via
	// Idempotency-Key.
	IdemTTL time.Duration
}

// New constructs a Handlers instance bound to the given services.
func New(db *gorm.DB, auth *services.AuthService, chat *services.ChatService, faqs *services.FAQService, imports *services.ImportService, game *services.GamificationService, idemTTL time.Duration) *Handlers {
	return &Handlers{
		DB:      db,
		Auth:    auth,
		Chat:    chat,
		Faqs:    faqs,
		Imports: imports,
		Game:    game,
		IdemTTL: idemTTL,
	}
}

// sessionPendingKey is the cookie-session key holding the parked FAQ id list.
const sessionPendingKey = "faq_options"

func init() {
	// Cookie sessions gob-encode their values.
	gob.Register([]string{})
}

// ginSession adapts a gin-contrib cookie session to the dispatcher's Session
// interface. Mutations are saved eagerly so the Set-Cookie header is emitted
// even when the handler later writes the response body.
type ginSession struct {
	s sessions.Session
}

func (g *ginSession) PendingFAQs() []string {
	v := g.s.Get(sessionPendingKey)
	ids, _ := v.([]string)
	return ids
}

func (g *ginSession) SetPendingFAQs(ids []string) {
	g.s.Set(sessionPendingKey, ids)
	_ = g.s.Save()
}

func (g *ginSession) ClearPendingFAQs() {
	g.s.Delete(sessionPendingKey)
	_ = g.s.Save()
}

// ChatRequest is the JSON payload for one chat turn.
type ChatRequest struct {
	Message string `json:"message" example:"como instalar a impressora?"`
}

// ChatFeedbackRequest attaches a verdict to a previous turn.
type ChatFeedbackRequest struct {
	LogID   string `json:"log_id" binding:"required" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Verdict string `json:"verdict" binding:"required" example:"helpful" enums:"helpful,unhelpful"`
}

// Chat godoc
// @ID          chat
// @Summary     Send a chat message
// @Description Runs one dispatcher turn: commands first, then FAQ matching. Multi-match turns return state "faq_selection" with options; the next message resolves or abandons the selection. Safe to retry with an Idempotency-Key header.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       Idempotency-Key header string false "Key for safe retries"
// @Param       body body handlers.ChatRequest true "Chat turn payload"
//
// @Success     200  {object}  services.ChatReply
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /chat [post]
func (h *Handlers) PostChat(c *gin.Context) {
	uid, okUser := middleware.UserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid or missing token")
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	ctx := c.Request.Context()
	key, hasKey := middleware.GetIdempotencyKey(c)

	// Replay: serve the stored turn without re-running the pipeline.
	if hasKey && middleware.IsReplay(c) {
		if reply, found := h.replayChat(c, uid, key); found {
			middleware.ObserveChatTurn("replay")
			ok(c, http.StatusOK, reply)
			return
		}
	}

	sess := &ginSession{s: sessions.Default(c)}
	reply, err := h.Chat.HandleMessage(ctx, uid, req.Message, sess)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeChatFailed, err.Error())
		return
	}
	middleware.ObserveChatTurn(reply.Outcome)

	// Record the key so later retries replay this turn. A lost race with a
	// concurrent retry of the same key is harmless: both turns are persisted
	// and one of them wins the replay slot.
	if hasKey {
		if _, err := repo.CreateIdempotency(ctx, h.DB, uid, key, reply.LogID, http.StatusOK, h.IdemTTL); err != nil && !errors.Is(err, repo.ErrDuplicate) {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency record failed")
		}
	}

	ok(c, http.StatusOK, reply)
}

// replayChat reconstructs the reply of a previously completed turn.
func (h *Handlers) replayChat(c *gin.Context, userID, key string) (*services.ChatReply, bool) {
	ctx := c.Request.Context()
	rec, err := repo.GetIdempotency(ctx, h.DB, userID, key, time.Now().UTC())
	if err != nil {
		return nil, false
	}
	log, err := repo.GetChatLog(ctx, h.DB, rec.ChatLogID, userID)
	if err != nil {
		return nil, false
	}
	return &services.ChatReply{
		Text:  log.Response,
		Rich:  log.Rich,
		State: services.StateNormal,
		LogID: log.ID,
	}, true
}

// ChatPage godoc
// @ID          chatPage
// @Summary     Chat page entry point
// @Description Clears any pending disambiguation so the widget starts in the normal state, and returns the user's recent history.
// @Tags        Chat
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  map[string]any
// @Failure     401  {object}  handlers.ErrorResponse "Unauthorized"
// @Router      /chat-page [get]
func (h *Handlers) ChatPage(c *gin.Context) {
	uid, okUser := middleware.UserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid or missing token")
		return
	}

	h.Chat.ClearSession(&ginSession{s: sessions.Default(c)})

	history, err := h.Chat.History(c.Request.Context(), uid, 50)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, gin.H{
		"state":   services.StateNormal,
		"history": history,
	})
}

// ChatFeedback godoc
// @ID          chatFeedback
// @Summary     Rate a chat answer
// @Description Attaches a helpful/unhelpful verdict to one of the user's own turns.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body body handlers.ChatFeedbackRequest true "Feedback payload"
//
// @Success     204  {string}  string "No Content"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Turn not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /chat/feedback [post]
func (h *Handlers) ChatFeedback(c *gin.Context) {
	uid, okUser := middleware.UserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid or missing token")
		return
	}

	var req ChatFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "log_id and verdict are required")
		return
	}

	err := h.Chat.LeaveFeedback(c.Request.Context(), uid, req.LogID, req.Verdict)
	switch {
	case errors.Is(err, services.ErrInvalidFeedback):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "verdict must be helpful or unhelpful")
		return
	case errors.Is(err, services.ErrChatLogNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "chat turn not found")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// ChatHistory godoc
// @ID          chatHistory
// @Summary     List past chat turns
// @Description Returns the user's chat turns, oldest first.
// @Tags        Chat
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {array}   domain.ChatLog
// @Failure     401  {object}  handlers.ErrorResponse "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /chat/history [get]
func (h *Handlers) ChatHistory(c *gin.Context) {
	uid, okUser := middleware.UserID(c)
	if !okUser {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid or missing token")
		return
	}
	history, err := h.Chat.History(c.Request.Context(), uid, 0)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, history)
}
