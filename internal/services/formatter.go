// Package services – response formatter
//
// This file renders a selected FAQ into the markup string shown in the chat
// widget: question prefix, sectioned answer body (when the answer carries the
// known section markers), then embedded image, video, and download link.
package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
)

// Section markers recognized in FAQ answers, with their header icons.
// Order matters only for icon lookup; detection is positional in the text.
var sectionIcons = []struct {
	prefix string
	icon   string
}{
	{"Pré-requisitos:", "✅"},
	{"Etapa", "🔧"},
	{"Aviso:", "⚠️"},
	{"Finalização:", "🏁"},
	{"Pós-instalação:", "📦"},
}

var (
	sectionRE = regexp.MustCompile(`Pré-requisitos:|Etapa \d+:|Aviso:|Finalização:|Pós-instalação:`)

	// sentenceRE finds a sentence boundary: closing punctuation, whitespace,
	// then an uppercase letter. RE2 has no lookahead, so the split is done by
	// rewriting the boundary with a newline and splitting on that.
	sentenceRE = regexp.MustCompile(`([.!?;])\s+([A-ZÁÂÃÀÉÊÍÓÔÕÚÇ])`)

	youtubeRE = regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/|shorts/)|youtu\.be/)([A-Za-z0-9_-]{11})`)
)

const invalidVideoNotice = "⚠️ URL de vídeo inválida."

// Formatter renders FAQ answers. BasePath prefixes the generated
// file-download link so the widget hits the right API mount.
type Formatter struct {
	BasePath string
}

// Render produces the full markup reply for a FAQ: bold question prefix,
// structured or plain answer body, and any media/attachment tail.
func (f *Formatter) Render(faq *domain.FAQ) string {
	var b strings.Builder
	b.WriteString("<b>❓ ")
	b.WriteString(faq.Question)
	b.WriteString("</b><br><br>")

	body := formatBody(faq.Answer)

	var extras []string
	if tag := imageTag(faq.ImageURL); tag != "" {
		extras = append(extras, tag)
	}
	if tag := videoTag(faq.VideoURL); tag != "" {
		extras = append(extras, tag)
	}
	if faq.FileName != "" {
		extras = append(extras, fmt.Sprintf(
			`<a href="%s/faqs/%s/file" download>📎 Baixar arquivo: %s</a>`,
			f.BasePath, faq.ID, faq.FileName))
	}

	// Avoid a dangling empty line between the body and the first appended tag.
	if len(extras) > 0 {
		body = strings.TrimSuffix(body, "<br>")
	}
	b.WriteString(body)
	for _, e := range extras {
		b.WriteString("<br><br>")
		b.WriteString(e)
	}
	return b.String()
}

// formatBody renders the answer text. Answers carrying section markers are
// split into icon-headed sections with one sentence per line; anything else
// is split on literal newlines.
func formatBody(answer string) string {
	locs := sectionRE.FindAllStringIndex(answer, -1)
	if len(locs) == 0 {
		return strings.Join(splitLines(answer), "<br>")
	}

	var parts []string

	// Text before the first marker renders as plain lines.
	if lead := strings.TrimSpace(answer[:locs[0][0]]); lead != "" {
		parts = append(parts, strings.Join(splitLines(lead), "<br>"))
	}

	for i, loc := range locs {
		header := answer[loc[0]:loc[1]]
		end := len(answer)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		content := strings.TrimSpace(answer[loc[1]:end])

		var sb strings.Builder
		sb.WriteString("<b>")
		sb.WriteString(iconFor(header))
		sb.WriteString(" ")
		sb.WriteString(header)
		sb.WriteString("</b>")
		if content != "" {
			sb.WriteString("<br>")
			sb.WriteString(strings.Join(splitSentences(content), "<br>"))
		}
		parts = append(parts, sb.String())
	}

	return strings.Join(parts, "<br><br>")
}

func iconFor(header string) string {
	for _, s := range sectionIcons {
		if strings.HasPrefix(header, s.prefix) {
			return s.icon
		}
	}
	return "ℹ️"
}

// splitSentences breaks text into sentence-like chunks: the cut sits before
// an uppercase letter that follows sentence punctuation and whitespace.
func splitSentences(text string) []string {
	marked := sentenceRE.ReplaceAllString(text, "$1\n$2")
	return splitLines(marked)
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}

var imageExts = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

func imageTag(url string) string {
	if url == "" || !hasAnySuffix(url, imageExts) {
		return ""
	}
	return fmt.Sprintf(`<img src="%s" alt="Imagem ilustrativa" style="max-width:100%%">`, url)
}

var videoExts = []string{".mp4", ".webm", ".ogg", ".mov"}

func videoTag(url string) string {
	if url == "" {
		return ""
	}
	if hasAnySuffix(url, videoExts) {
		return fmt.Sprintf(`<video controls src="%s" style="max-width:100%%"></video>`, url)
	}
	if strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be") {
		if m := youtubeRE.FindStringSubmatch(url); m != nil {
			return fmt.Sprintf(
				`<iframe src="https://www.youtube.com/embed/%s" frameborder="0" allowfullscreen></iframe>`, m[1])
		}
		return invalidVideoNotice
	}
	return ""
}

func hasAnySuffix(url string, exts []string) bool {
	low := strings.ToLower(url)
	// Ignore query strings when sniffing the extension.
	if i := strings.IndexByte(low, '?'); i >= 0 {
		low = low[:i]
	}
	for _, e := range exts {
		if strings.HasSuffix(low, e) {
			return true
		}
	}
	return false
}
