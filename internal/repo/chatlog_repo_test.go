package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
)

func TestChatLog_CreateGetAndFeedback(t *testing.T) {
	db := newIdemDB(t, &domain.ChatLog{})
	ctx := context.Background()

	faqID := "faq-1"
	l, err := CreateChatLog(ctx, db, "u1", "como instalar vpn", "<b>❓ Como instalar a VPN?</b>", true, &faqID)
	if err != nil {
		t.Fatalf("CreateChatLog: %v", err)
	}
	if l.ID == "" || !l.Rich || l.FAQID == nil || *l.FAQID != faqID {
		t.Fatalf("unexpected log: %+v", l)
	}

	got, err := GetChatLog(ctx, db, l.ID, "u1")
	if err != nil || got.Query != "como instalar vpn" {
		t.Fatalf("GetChatLog: %+v err=%v", got, err)
	}

	// Ownership scoping: another user cannot read the turn.
	if _, err := GetChatLog(ctx, db, l.ID, "u2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign user, got %v", err)
	}

	if err := SetChatFeedback(ctx, db, l.ID, "u1", domain.FeedbackHelpful); err != nil {
		t.Fatalf("SetChatFeedback: %v", err)
	}
	got, _ = GetChatLog(ctx, db, l.ID, "u1")
	if got.Feedback == nil || *got.Feedback != domain.FeedbackHelpful {
		t.Fatalf("feedback not persisted: %+v", got)
	}

	// Feedback is also ownership scoped.
	if err := SetChatFeedback(ctx, db, l.ID, "u2", domain.FeedbackUnhelpful); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign feedback, got %v", err)
	}
}

func TestListChatLogs_DeterministicOrder(t *testing.T) {
	db := newIdemDB(t, &domain.ChatLog{})
	ctx := context.Background()

	for _, q := range []string{"primeira", "segunda", "terceira"} {
		if _, err := CreateChatLog(ctx, db, "u1", q, "r", false, nil); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if _, err := CreateChatLog(ctx, db, "u2", "alheia", "r", false, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	out, err := ListChatLogs(ctx, db, "u1", 0)
	if err != nil || len(out) != 3 {
		t.Fatalf("ListChatLogs: %d err=%v", len(out), err)
	}
	if out[0].Query != "primeira" || out[2].Query != "terceira" {
		t.Fatalf("unexpected order: %+v", out)
	}

	limited, err := ListChatLogs(ctx, db, "u1", 2)
	if err != nil || len(limited) != 2 {
		t.Fatalf("limit not applied: %d err=%v", len(limited), err)
	}
}
