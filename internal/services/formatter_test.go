package services

import (
	"strings"
	"testing"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
)

func TestRender_PlainAnswer(t *testing.T) {
	f := &Formatter{BasePath: "/api"}
	got := f.Render(&domain.FAQ{
		Question: "Como trocar a senha?",
		Answer:   "Acesse o portal.\nClique em redefinir.",
	})
	want := "<b>❓ Como trocar a senha?</b><br><br>Acesse o portal.<br>Clique em redefinir."
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestRender_SectionedAnswer(t *testing.T) {
	f := &Formatter{}
	got := f.Render(&domain.FAQ{
		Question: "Como instalar o VPN?",
		Answer:   "Pré-requisitos: Conta ativa. Etapa 1: Baixe o instalador. Execute como administrador.",
	})

	want := "<b>❓ Como instalar o VPN?</b><br><br>" +
		"<b>✅ Pré-requisitos:</b><br>Conta ativa." +
		"<br><br>" +
		"<b>🔧 Etapa 1:</b><br>Baixe o instalador.<br>Execute como administrador."
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestRender_SectionOrderAndAllIcons(t *testing.T) {
	f := &Formatter{}
	got := f.Render(&domain.FAQ{
		Question: "q",
		Answer: "Etapa 1: Um. Etapa 2: Dois. Aviso: Cuidado. " +
			"Finalização: Pronto. Pós-instalação: Teste.",
	})
	for _, frag := range []string{
		"<b>🔧 Etapa 1:</b>",
		"<b>🔧 Etapa 2:</b>",
		"<b>⚠️ Aviso:</b>",
		"<b>🏁 Finalização:</b>",
		"<b>📦 Pós-instalação:</b>",
	} {
		if !strings.Contains(got, frag) {
			t.Fatalf("missing %q in %q", frag, got)
		}
	}
	// Sections appear in textual order.
	if strings.Index(got, "Etapa 2:") < strings.Index(got, "Etapa 1:") {
		t.Fatalf("sections out of order: %q", got)
	}
}

func TestRender_EmptySectionBody(t *testing.T) {
	f := &Formatter{}
	got := f.Render(&domain.FAQ{Question: "q", Answer: "Aviso: Etapa 1: Feche tudo."})
	// A marker immediately followed by the next marker renders as header only.
	if !strings.Contains(got, "<b>⚠️ Aviso:</b><br><br><b>🔧 Etapa 1:</b>") {
		t.Fatalf("empty section body mishandled: %q", got)
	}
}

func TestRender_LeadTextBeforeFirstSection(t *testing.T) {
	f := &Formatter{}
	got := f.Render(&domain.FAQ{Question: "q", Answer: "Veja os passos.\nEtapa 1: Abra o menu."})
	if !strings.Contains(got, "<br><br>Veja os passos.<br><br><b>🔧 Etapa 1:</b>") {
		t.Fatalf("lead text mishandled: %q", got)
	}
}

func TestRender_MediaAndFileExtras(t *testing.T) {
	f := &Formatter{BasePath: "/api"}
	got := f.Render(&domain.FAQ{
		ID:       "faq-1",
		Question: "q",
		Answer:   "Resposta.",
		ImageURL: "https://cdn.example.com/guia.png?v=2",
		VideoURL: "https://host/como.mp4",
		FileName: "manual.pdf",
	})
	for _, frag := range []string{
		`<img src="https://cdn.example.com/guia.png?v=2"`,
		`<video controls src="https://host/como.mp4"`,
		`<a href="/api/faqs/faq-1/file" download>📎 Baixar arquivo: manual.pdf</a>`,
	} {
		if !strings.Contains(got, frag) {
			t.Fatalf("missing %q in %q", frag, got)
		}
	}
	if strings.Contains(got, "Resposta.<br><br><br>") {
		t.Fatalf("dangling separator before extras: %q", got)
	}
}

func TestVideoTag_YouTube(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", `<iframe src="https://www.youtube.com/embed/dQw4w9WgXcQ"`},
		{"https://youtu.be/dQw4w9WgXcQ", `embed/dQw4w9WgXcQ`},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", `embed/dQw4w9WgXcQ`},
		{"https://www.youtube.com/watch?v=short", invalidVideoNotice},
	}
	for _, c := range cases {
		got := videoTag(c.url)
		if !strings.Contains(got, c.want) {
			t.Fatalf("videoTag(%q) = %q, want fragment %q", c.url, got, c.want)
		}
	}
	if videoTag("https://vimeo.com/123") != "" {
		t.Fatalf("unrecognized host should render nothing")
	}
	if videoTag("") != "" {
		t.Fatalf("empty URL should render nothing")
	}
}

func TestImageTag(t *testing.T) {
	if imageTag("https://h/x.PNG") == "" {
		t.Fatalf("extension sniff must ignore case")
	}
	if imageTag("https://h/x.txt") != "" {
		t.Fatalf("non-image extension must render nothing")
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("Primeiro passo. Segundo passo! Terceiro; Último fim.")
	want := []string{"Primeiro passo.", "Segundo passo!", "Terceiro;", "Último fim."}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chunk %d: got %q want %q", i, got[i], want[i])
		}
	}
	// Abbterm followed by lowercase is not a boundary.
	if parts := splitSentences("use o app. depois continue"); len(parts) != 1 {
		t.Fatalf("lowercase continuation should not split: %v", parts)
	}
}
