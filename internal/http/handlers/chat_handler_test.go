package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/http/middleware"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/repo"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/search"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/services"
)

// ---------- fixture ----------

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{}, &domain.Category{}, &domain.FAQ{}, &domain.Ticket{},
		&domain.ChatLog{}, &domain.Idempotency{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// faqSource feeds the matcher straight from the FAQ table, as the router does.
type faqSource struct{ db *gorm.DB }

func (s faqSource) All(ctx context.Context) ([]search.Entry, error) {
	faqs, err := repo.ListFAQs(ctx, s.db, "")
	if err != nil {
		return nil, err
	}
	out := make([]search.Entry, len(faqs))
	for i, f := range faqs {
		out[i] = search.Entry{ID: f.ID, Question: f.Question, Answer: f.Answer}
	}
	return out, nil
}

type chatRig struct {
	db     *gorm.DB
	router *gin.Engine
	userID string
}

// newChatRig builds a minimal HTTP stack around the chat endpoints: cookie
// sessions, idempotency validation backed by the real store, and a stub auth
// layer that injects a fixed user identity.
func newChatRig(t *testing.T) *chatRig {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newHandlerDB(t)
	u, err := repo.CreateUser(context.Background(), db, "Ana", "ana@example.com", "x")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	chat := services.NewChatService(
		db,
		services.NewCommandChain(db),
		search.NewLexical(faqSource{db: db}),
		&services.Formatter{BasePath: "/api"},
		2,
	)
	h := New(db, nil, chat, services.NewFAQService(db, nil), nil, services.NewGamificationService(db), time.Hour)

	r := gin.New()
	r.Use(sessions.Sessions("sid", cookie.NewStore([]byte("test-session-secret"))))
	r.Use(func(c *gin.Context) {
		c.Set("userID", u.ID)
		c.Next()
	})
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{},
		func(ctx context.Context, userID, key string, now time.Time) (bool, error) {
			_, err := repo.GetIdempotency(ctx, db, userID, key, now)
			if err != nil {
				return false, nil
			}
			return true, nil
		}))

	r.POST("/chat", h.PostChat)
	r.GET("/chat-page", h.ChatPage)
	r.POST("/chat/feedback", h.ChatFeedback)
	r.GET("/chat/history", h.ChatHistory)

	return &chatRig{db: db, router: r, userID: u.ID}
}

func (rig *chatRig) seedFAQ(t *testing.T, question, answer string) *domain.FAQ {
	t.Helper()
	ctx := context.Background()
	cat, err := repo.GetCategoryByName(ctx, rig.db, "Geral")
	if err != nil {
		if cat, err = repo.CreateCategory(ctx, rig.db, "Geral"); err != nil {
			t.Fatalf("seed category: %v", err)
		}
	}
	faq, err := repo.CreateFAQ(ctx, rig.db, &domain.FAQ{
		Question:   question,
		Answer:     answer,
		CategoryID: cat.ID,
	})
	if err != nil {
		t.Fatalf("seed faq: %v", err)
	}
	return faq
}

// postChat sends one turn, carrying over any cookies so session state
// survives across turns.
func (rig *chatRig) postChat(t *testing.T, message string, cookies []*http.Cookie, header map[string]string) (*httptest.ResponseRecorder, *services.ChatReply) {
	t.Helper()
	body, _ := json.Marshal(ChatRequest{Message: message})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	rig.router.ServeHTTP(w, req)

	var reply services.ChatReply
	if w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
			t.Fatalf("decode reply: %v (body=%s)", err, w.Body.String())
		}
	}
	return w, &reply
}

// ---------- tests ----------

func TestPostChat_SingleMatch_LogsTurn(t *testing.T) {
	rig := newChatRig(t)
	faq := rig.seedFAQ(t, "Como instalar a impressora?", "Baixe o driver no portal de TI.")

	w, reply := rig.postChat(t, "instalar impressora", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if reply.State != services.StateNormal {
		t.Fatalf("state=%q", reply.State)
	}
	if !reply.Rich || !strings.Contains(reply.Text, "Baixe o driver") {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if reply.LogID == "" {
		t.Fatalf("expected log id")
	}

	log, err := repo.GetChatLog(context.Background(), rig.db, reply.LogID, rig.userID)
	if err != nil {
		t.Fatalf("get log: %v", err)
	}
	if log.FAQID == nil || *log.FAQID != faq.ID {
		t.Fatalf("log faq id = %v, want %s", log.FAQID, faq.ID)
	}
}

func TestPostChat_InvalidBody(t *testing.T) {
	rig := newChatRig(t)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	rig.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestPostChat_Disambiguation_SessionCookie(t *testing.T) {
	rig := newChatRig(t)
	rig.seedFAQ(t, "Como configurar a VPN no Windows?", "Use o cliente oficial.")
	target := rig.seedFAQ(t, "Como configurar a VPN no celular?", "Instale o aplicativo da VPN.")

	w, reply := rig.postChat(t, "configurar vpn", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if reply.State != services.StateFAQSelection {
		t.Fatalf("state=%q, want selection", reply.State)
	}
	if len(reply.Options) != 2 {
		t.Fatalf("options=%d", len(reply.Options))
	}

	// The parked list rides in the session cookie. Answering with an option
	// id on the next turn must resolve without re-matching.
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected a session cookie")
	}

	w2, reply2 := rig.postChat(t, target.ID, cookies, nil)
	if w2.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w2.Code, w2.Body.String())
	}
	if reply2.State != services.StateNormal {
		t.Fatalf("state=%q after selection", reply2.State)
	}
	if !strings.Contains(reply2.Text, "Instale o aplicativo") {
		t.Fatalf("unexpected selection reply: %q", reply2.Text)
	}
}

func TestPostChat_IdempotentReplay(t *testing.T) {
	rig := newChatRig(t)
	rig.seedFAQ(t, "Como redefinir a senha?", "Use o portal de autoatendimento.")

	key := map[string]string{middleware.HeaderIdempotencyKey: "turn-1"}

	w1, reply1 := rig.postChat(t, "redefinir senha", nil, key)
	if w1.Code != http.StatusOK {
		t.Fatalf("first status=%d body=%s", w1.Code, w1.Body.String())
	}
	if reply1.LogID == "" {
		t.Fatalf("expected log id on first turn")
	}

	// Same key replays the stored turn even with a different message, and no
	// new chat log row appears.
	w2, reply2 := rig.postChat(t, "outra mensagem qualquer", nil, key)
	if w2.Code != http.StatusOK {
		t.Fatalf("replay status=%d body=%s", w2.Code, w2.Body.String())
	}
	if reply2.LogID != reply1.LogID || reply2.Text != reply1.Text {
		t.Fatalf("replay mismatch: first=%+v second=%+v", reply1, reply2)
	}

	var n int64
	if err := rig.db.Model(&domain.ChatLog{}).Count(&n).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if n != 1 {
		t.Fatalf("chat logs = %d, want 1", n)
	}
}

func TestChatFeedback_Flows(t *testing.T) {
	rig := newChatRig(t)
	rig.seedFAQ(t, "Como acessar o e-mail?", "Use o webmail corporativo.")
	_, reply := rig.postChat(t, "acessar e-mail", nil, nil)

	post := func(logID, verdict string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(ChatFeedbackRequest{LogID: logID, Verdict: verdict})
		req := httptest.NewRequest(http.MethodPost, "/chat/feedback", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		rig.router.ServeHTTP(w, req)
		return w
	}

	if w := post(reply.LogID, "meh"); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid verdict: status=%d", w.Code)
	}
	if w := post(uuid.NewString(), "helpful"); w.Code != http.StatusNotFound {
		t.Fatalf("unknown log: status=%d", w.Code)
	}
	if w := post(reply.LogID, "helpful"); w.Code != http.StatusNoContent {
		t.Fatalf("valid feedback: status=%d body=%s", w.Code, w.Body.String())
	}

	log, err := repo.GetChatLog(context.Background(), rig.db, reply.LogID, rig.userID)
	if err != nil {
		t.Fatalf("get log: %v", err)
	}
	if log.Feedback == nil || *log.Feedback != "helpful" {
		t.Fatalf("feedback not persisted: %v", log.Feedback)
	}
}

func TestChatPage_ResetsStateAndReturnsHistory(t *testing.T) {
	rig := newChatRig(t)
	rig.seedFAQ(t, "Como pedir um notebook?", "Abra um chamado no portal.")
	rig.postChat(t, "pedir notebook", nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/chat-page", nil)
	w := httptest.NewRecorder()
	rig.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var body struct {
		State   string           `json:"state"`
		History []domain.ChatLog `json:"history"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.State != services.StateNormal {
		t.Fatalf("state=%q", body.State)
	}
	if len(body.History) != 1 || body.History[0].Query != "pedir notebook" {
		t.Fatalf("unexpected history: %+v", body.History)
	}
}

func TestChatHistory_OrderedOldestFirst(t *testing.T) {
	rig := newChatRig(t)

	rig.postChat(t, "primeira pergunta", nil, nil)
	rig.postChat(t, "segunda pergunta", nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/chat/history", nil)
	w := httptest.NewRecorder()
	rig.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}

	var history []domain.ChatLog
	if err := json.Unmarshal(w.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(history) != 2 || history[0].Query != "primeira pergunta" {
		t.Fatalf("unexpected history order: %+v", history)
	}
}

func TestPostChat_RequiresIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newHandlerDB(t)
	h := New(db, nil, services.NewChatService(db, services.NewCommandChain(db), search.NewLexical(faqSource{db: db}), &services.Formatter{}, 2), nil, nil, nil, time.Hour)

	r := gin.New()
	r.Use(sessions.Sessions("sid", cookie.NewStore([]byte("test-session-secret"))))
	r.POST("/chat", h.PostChat)

	body, _ := json.Marshal(ChatRequest{Message: "oi"})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d", w.Code)
	}
}
