package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akiyama/shirabe/internal/config"
	"github.com/akiyama/shirabe/internal/models"
)

func TestClient_Send(t *testing.T) {
	var gotAuth string
	var gotBody emailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(&config.MailConfig{
		BaseURL: srv.URL,
		APIKey:  "mail-key",
		From:    "site@example.com",
		To:      "owner@example.com",
	})

	msg := &models.ContactMessage{
		Name:  "Mei",
		Email: "mei@example.com",
		Body:  "Hello there",
	}
	if err := client.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAuth != "Bearer mail-key" {
		t.Errorf("auth header: %q", gotAuth)
	}
	if gotBody.From != "site@example.com" || len(gotBody.To) != 1 || gotBody.To[0] != "owner@example.com" {
		t.Errorf("addresses: %+v", gotBody)
	}
	if gotBody.ReplyTo != "mei@example.com" {
		t.Errorf("reply_to: %q", gotBody.ReplyTo)
	}
	if !strings.Contains(gotBody.Subject, "Mei") {
		t.Errorf("default subject: %q", gotBody.Subject)
	}
	if !strings.Contains(gotBody.Text, "Hello there") {
		t.Errorf("text: %q", gotBody.Text)
	}
}

func TestClient_Send_ExplicitSubject(t *testing.T) {
	var gotBody emailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(&config.MailConfig{BaseURL: srv.URL})
	msg := &models.ContactMessage{Name: "Mei", Email: "mei@example.com", Subject: "Hiring", Body: "x"}
	if err := client.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotBody.Subject != "Hiring" {
		t.Errorf("subject: %q", gotBody.Subject)
	}
}

func TestClient_Send_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(&config.MailConfig{BaseURL: srv.URL})
	msg := &models.ContactMessage{Name: "Mei", Email: "mei@example.com", Body: "x"}
	if err := client.Send(context.Background(), msg); err == nil {
		t.Error("expected error for HTTP 429")
	}
}
