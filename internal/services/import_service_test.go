package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
)

func newImportService(t *testing.T) (*ImportService, *FAQService) {
	t.Helper()
	db := newServiceDB(t, &domain.Category{}, &domain.FAQ{})
	faqs := NewFAQService(db, nil)
	return NewImportService(faqs), faqs
}

func TestImport_CSVWithHeader(t *testing.T) {
	svc, faqs := newImportService(t)
	ctx := context.Background()

	csvData := []byte("pergunta,resposta,categoria\n" +
		"Como trocar a senha?,Acesse o portal.,Contas\n" +
		"Como abrir chamado?,Use o menu Suporte.,\n" +
		",sem pergunta,Contas\n")

	res, err := svc.Import(ctx, "faqs.csv", csvData)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Created != 2 || res.Skipped != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}

	// Row without a category lands in the fallback.
	cat, err := faqs.ResolveCategory(ctx, fallbackCategory)
	if err != nil {
		t.Fatalf("fallback category missing: %v", err)
	}
	list, err := faqs.List(ctx, cat.ID)
	if err != nil || len(list) != 1 || list[0].Question != "Como abrir chamado?" {
		t.Fatalf("fallback row wrong: %+v err=%v", list, err)
	}
}

func TestImport_CSVWithoutHeader(t *testing.T) {
	svc, faqs := newImportService(t)
	ctx := context.Background()

	res, err := svc.Import(ctx, "faqs.csv", []byte("Como imprimir?,Use Ctrl+P.,Impressoras\n"))
	if err != nil || res.Created != 1 || res.Skipped != 0 {
		t.Fatalf("Import: %+v err=%v", res, err)
	}
	list, _ := faqs.List(ctx, "")
	if len(list) != 1 || list[0].Question != "Como imprimir?" {
		t.Fatalf("positional row not imported: %+v", list)
	}
}

func TestImport_JSON(t *testing.T) {
	svc, faqs := newImportService(t)
	ctx := context.Background()

	data := []byte(`[
		{"question": "Como usar o VPN?", "answer": "Abra o cliente.", "category": "Rede"},
		{"question": "", "answer": "órfã"},
		{"question": "Como pedir acesso?", "answer": "Abra um chamado."}
	]`)
	res, err := svc.Import(ctx, "faqs.json", data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Created != 2 || res.Skipped != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}

	cats, _ := faqs.Categories(ctx)
	names := map[string]bool{}
	for _, c := range cats {
		names[c.Name] = true
	}
	if !names["Rede"] || !names[fallbackCategory] {
		t.Fatalf("categories not resolved: %v", names)
	}

	if _, err := svc.Import(ctx, "faqs.json", []byte("{broken")); err == nil {
		t.Fatalf("malformed JSON must fail")
	}
}

func TestImport_XLSX(t *testing.T) {
	svc, faqs := newImportService(t)
	ctx := context.Background()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]string{
		{"pergunta", "resposta", "categoria"},
		{"Como acessar o wifi?", "Use a rede corporativa.", "Rede"},
		{"Sem resposta", "", ""},
	}
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	res, err := svc.Import(ctx, "faqs.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Created != 1 || res.Skipped != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	list, _ := faqs.List(ctx, "")
	if len(list) != 1 || list[0].Question != "Como acessar o wifi?" {
		t.Fatalf("xlsx row not imported: %+v", list)
	}
}

func TestImport_UnsupportedAndCorrupt(t *testing.T) {
	svc, _ := newImportService(t)
	ctx := context.Background()

	if _, err := svc.Import(ctx, "faqs.txt", []byte("x")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	// Extension check is case-insensitive.
	if _, err := svc.Import(ctx, "FAQS.CSV", []byte("q,a\n")); err != nil {
		t.Fatalf("uppercase extension: %v", err)
	}
	if _, err := svc.Import(ctx, "faqs.pdf", []byte("not a pdf")); err == nil {
		t.Fatalf("corrupt PDF must fail")
	}
	if _, err := svc.Import(ctx, "faqs.xlsx", []byte("not a zip")); err == nil {
		t.Fatalf("corrupt XLSX must fail")
	}
}
