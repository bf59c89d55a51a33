package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
)

func TestCreateAndGetTicketByCode(t *testing.T) {
	db := newIdemDB(t, &domain.Ticket{})
	ctx := context.Background()

	created, err := CreateTicket(ctx, db, 42, "Impressora sem toner")
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if created.Status != domain.TicketOpen {
		t.Fatalf("new ticket should be open, got %q", created.Status)
	}

	got, err := GetTicketByCode(ctx, db, 42)
	if err != nil {
		t.Fatalf("GetTicketByCode: %v", err)
	}
	if got.ID != created.ID || got.Title != "Impressora sem toner" {
		t.Fatalf("unexpected ticket: %+v", got)
	}

	if _, err := GetTicketByCode(ctx, db, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing code, got %v", err)
	}

	// Duplicate code rejected by the unique index.
	if _, err := CreateTicket(ctx, db, 42, "outro"); err == nil {
		t.Fatalf("expected unique violation on duplicate code")
	}
}

func TestCloseTicketByCode_Transitions(t *testing.T) {
	db := newIdemDB(t, &domain.Ticket{})
	ctx := context.Background()

	if _, err := CreateTicket(ctx, db, 7, "VPN fora do ar"); err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}

	// First close succeeds.
	closed, err := CloseTicketByCode(ctx, db, 7)
	if err != nil || !closed {
		t.Fatalf("expected (true, nil), got (%v, %v)", closed, err)
	}
	got, err := GetTicketByCode(ctx, db, 7)
	if err != nil || got.Status != domain.TicketClosed {
		t.Fatalf("ticket should be closed: %+v err=%v", got, err)
	}

	// Second close reports already-closed, not an error.
	closed, err = CloseTicketByCode(ctx, db, 7)
	if err != nil || closed {
		t.Fatalf("expected (false, nil) for already closed, got (%v, %v)", closed, err)
	}

	// Unknown code maps to ErrNotFound.
	if _, err := CloseTicketByCode(ctx, db, 123); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListTickets_StatusFilter(t *testing.T) {
	db := newIdemDB(t, &domain.Ticket{})
	ctx := context.Background()

	for code, title := range map[int]string{1: "a", 2: "b", 3: "c"} {
		if _, err := CreateTicket(ctx, db, code, title); err != nil {
			t.Fatalf("seed ticket %d: %v", code, err)
		}
	}
	if _, err := CloseTicketByCode(ctx, db, 2); err != nil {
		t.Fatalf("close: %v", err)
	}

	all, err := ListTickets(ctx, db, "")
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 tickets, got %d err=%v", len(all), err)
	}
	// Ordered by code ascending.
	if all[0].Code != 1 || all[2].Code != 3 {
		t.Fatalf("unexpected order: %+v", all)
	}

	open, err := ListTickets(ctx, db, domain.TicketOpen)
	if err != nil || len(open) != 2 {
		t.Fatalf("expected 2 open tickets, got %d err=%v", len(open), err)
	}
	closed, err := ListTickets(ctx, db, domain.TicketClosed)
	if err != nil || len(closed) != 1 || closed[0].Code != 2 {
		t.Fatalf("expected ticket 2 closed, got %+v err=%v", closed, err)
	}
}
