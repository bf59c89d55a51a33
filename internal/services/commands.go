// Package services – command interpreters
//
// This file implements the imperative chat commands checked before any FAQ
// matching: closing a ticket by its numeric code and looking up a canned
// solution for a known topic. Both patterns are anchored at the start of the
// message; anything else declines so the dispatcher proceeds to FAQ search.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/repo"
)

// Command reply templates. All user-facing chat text is Portuguese.
const (
	msgTicketClosed        = "Chamado %d encerrado com sucesso."
	msgTicketAlreadyClosed = "O chamado %d já está encerrado."
	msgTicketNotFound      = "Chamado %d não encontrado."
	msgNoCannedSolution    = "Nenhuma solução disponível para este tópico."
)

// cannedSolutions maps an exact lowercase topic phrase to fixed advice.
var cannedSolutions = map[string]string{
	"internet lenta":      "Reinicie o roteador e verifique a conexão.",
	"impressora offline":  "Verifique o cabo USB e reinicie o spooler de impressão.",
	"e-mail não abre":     "Limpe o cache do navegador e tente novamente.",
	"computador travando": "Feche programas em segundo plano e reinicie a máquina.",
	"senha expirada":      "Acesse o portal de autoatendimento e redefina a senha.",
}

var (
	closeTicketRE = regexp.MustCompile(`(?i)^encerrar chamado\s+(\d+)\b`)
	suggestRE     = regexp.MustCompile(`(?i)^sugerir solu(?:ç|c)[ãa]o para\s+(.+)$`)
)

// Command attempts to recognize one imperative pattern in the message.
// A non-empty reply means the command handled the turn; empty means decline.
type Command func(ctx context.Context, msg string) (reply string, err error)

// CommandChain tries each command in fixed priority order and returns the
// first non-empty reply. Ticket handling always precedes the canned lookup.
type CommandChain struct {
	cmds []Command
}

// NewCommandChain builds the default chain over the given database handle.
func NewCommandChain(db *gorm.DB) *CommandChain {
	return &CommandChain{cmds: []Command{
		closeTicketCommand(db),
		suggestSolutionCommand(),
	}}
}

// Dispatch runs the chain. It returns ("", nil) when no command matched.
func (c *CommandChain) Dispatch(ctx context.Context, msg string) (string, error) {
	for _, cmd := range c.cmds {
		reply, err := cmd(ctx, msg)
		if err != nil {
			return "", err
		}
		if reply != "" {
			return reply, nil
		}
	}
	return "", nil
}

// closeTicketCommand matches "encerrar chamado <n>" and performs the single
// conditional status transition. Concurrent closes of the same ticket yield
// exactly one success; the loser sees the already-closed message.
func closeTicketCommand(db *gorm.DB) Command {
	return func(ctx context.Context, msg string) (string, error) {
		m := closeTicketRE.FindStringSubmatch(strings.TrimSpace(msg))
		if m == nil {
			return "", nil
		}
		code, err := strconv.Atoi(m[1])
		if err != nil {
			return "", nil
		}
		closed, err := repo.CloseTicketByCode(ctx, db, code)
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return fmt.Sprintf(msgTicketNotFound, code), nil
		case err != nil:
			return "", err
		case closed:
			return fmt.Sprintf(msgTicketClosed, code), nil
		default:
			return fmt.Sprintf(msgTicketAlreadyClosed, code), nil
		}
	}
}

// suggestSolutionCommand matches "sugerir solução para <topic>" and answers
// from the fixed topic map. No side effects, no FAQ lookup.
func suggestSolutionCommand() Command {
	return func(_ context.Context, msg string) (string, error) {
		m := suggestRE.FindStringSubmatch(strings.TrimSpace(msg))
		if m == nil {
			return "", nil
		}
		topic := strings.ToLower(strings.TrimSpace(m[1]))
		if advice, ok := cannedSolutions[topic]; ok {
			return advice, nil
		}
		return msgNoCannedSolution, nil
	}
}
