package layout

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestIsAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != apiPathHealth {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"status":"ok"}`)
	}))
	defer srv.Close()

	provider := NewProvider(WithBaseURL(srv.URL))
	if err := provider.IsAvailable(context.Background()); err != nil {
		t.Errorf("IsAvailable() error: %v", err)
	}
}

func TestIsAvailableServiceDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // immediately unreachable

	provider := NewProvider(WithBaseURL(srv.URL))
	if err := provider.IsAvailable(context.Background()); err == nil {
		t.Error("IsAvailable() succeeded against a dead service")
	}
}

func TestRecord(t *testing.T) {
	pdfBytes := []byte("%PDF-1.4 fake document")

	var gotReq extractRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != apiPathExtract {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `{
			"authors": [{"given": "Jane", "family": "Smith"}, {"given": "Bob", "family": "Jones"}],
			"year": 2020,
			"title": "Deep Learning for X",
			"journal": "Journal of AI",
			"publisher": "Springer"
		}`)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "paper.pdf")
	if err := os.WriteFile(path, pdfBytes, 0644); err != nil {
		t.Fatal(err)
	}

	provider := NewProvider(WithBaseURL(srv.URL), WithModel("layoutlmv3-base"))
	work, err := provider.Record(context.Background(), path)
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	if gotReq.Model != "layoutlmv3-base" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if decoded, _ := base64.StdEncoding.DecodeString(gotReq.Document); string(decoded) != string(pdfBytes) {
		t.Errorf("request document does not round-trip the PDF bytes")
	}

	msg := work.Message
	if msg.Type != "journal-article" {
		t.Errorf("Type = %q", msg.Type)
	}
	if len(msg.Author) != 2 || msg.Author[0].Family != "Smith" || msg.Author[1].Family != "Jones" {
		t.Errorf("Author = %+v", msg.Author)
	}
	if msg.Issued.Year() != 2020 {
		t.Errorf("Issued.Year() = %d", msg.Issued.Year())
	}
	if len(msg.ContainerTitle) != 1 || msg.ContainerTitle[0] != "Journal of AI" {
		t.Errorf("ContainerTitle = %v", msg.ContainerTitle)
	}
}

func TestRecordSparseResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"title": "Only a Title"}`)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "paper.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatal(err)
	}

	work, err := NewProvider(WithBaseURL(srv.URL)).Record(context.Background(), path)
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	msg := work.Message
	if len(msg.Title) != 1 || msg.Title[0] != "Only a Title" {
		t.Errorf("Title = %v", msg.Title)
	}
	// Absent fields stay absent for the resolver's sentinel defaulting.
	if msg.ContainerTitle != nil || msg.Publisher != "" || len(msg.Issued.DateParts) != 0 {
		t.Errorf("sparse response produced non-absent fields: %+v", msg)
	}
}
