package telephony

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNew_Validation(t *testing.T) {
	if _, err := New(Opts{AuthToken: "tok"}); err == nil {
		t.Error("expected error for missing account SID")
	}
	if _, err := New(Opts{AccountSID: "AC123"}); err == nil {
		t.Error("expected error for missing auth token")
	}
	c, err := New(Opts{AccountSID: "AC123", AuthToken: "tok"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(Opts{
		AccountSID: "AC123",
		AuthToken:  "secret",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, srv
}

func TestPlaceCall(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/2010-04-01/Accounts/AC123/Calls.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC123" || pass != "secret" {
			t.Errorf("basic auth = %q/%q/%v", user, pass, ok)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("To"); got != "+18054398008" {
			t.Errorf("To = %q", got)
		}
		if got := r.PostForm.Get("Record"); got != "true" {
			t.Errorf("Record = %q, want true", got)
		}
		if got := r.PostForm.Get("Timeout"); got != "60" {
			t.Errorf("Timeout = %q, want 60", got)
		}
		if got := r.PostForm.Get("Twiml"); got == "" {
			t.Error("Twiml form field is empty")
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"sid": "CA1", "status": "queued"})
	})

	call, err := c.PlaceCall(context.Background(), PlaceCallOpts{
		To:             "+18054398008",
		From:           "+15550001111",
		Twiml:          "<Response/>",
		Record:         true,
		TimeoutSeconds: 60,
	})
	if err != nil {
		t.Fatalf("PlaceCall: %v", err)
	}
	if call.SID != "CA1" {
		t.Errorf("SID = %q, want CA1", call.SID)
	}
	if call.Status != StatusQueued {
		t.Errorf("Status = %q, want queued", call.Status)
	}
}

func TestPlaceCall_APIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Authentication Error"})
	})

	_, err := c.PlaceCall(context.Background(), PlaceCallOpts{To: "+1", From: "+2", Twiml: "<Response/>"})
	if err == nil {
		t.Fatal("expected error")
	}
	want := "telephony: place call: status 401: Authentication Error"
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err.Error(), want)
	}
}

func TestFetchCall(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2010-04-01/Accounts/AC123/Calls/CA9.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"sid": "CA9", "status": "in-progress"})
	})

	call, err := c.FetchCall(context.Background(), "CA9")
	if err != nil {
		t.Fatalf("FetchCall: %v", err)
	}
	if call.Status != StatusInProgress {
		t.Errorf("Status = %q, want in-progress", call.Status)
	}
}

func TestListRecordings(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2010-04-01/Accounts/AC123/Recordings.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("CallSid"); got != "CA9" {
			t.Errorf("CallSid = %q, want CA9", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"recordings": []map[string]string{
				{"sid": "RE1", "call_sid": "CA9", "duration": "42", "uri": "/2010-04-01/Accounts/AC123/Recordings/RE1.json"},
			},
		})
	})

	recs, err := c.ListRecordings(context.Background(), "CA9")
	if err != nil {
		t.Fatalf("ListRecordings: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("len(recs) = %d, want 1", len(recs))
	}
	if recs[0].Duration != "42" {
		t.Errorf("Duration = %q, want 42", recs[0].Duration)
	}
}

func TestListRecordings_Empty(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"recordings": []any{}})
	})

	recs, err := c.ListRecordings(context.Background(), "CA9")
	if err != nil {
		t.Fatalf("ListRecordings: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("len(recs) = %d, want 0", len(recs))
	}
}

func TestRecording_MediaURL(t *testing.T) {
	rec := Recording{URI: "/2010-04-01/Accounts/AC123/Recordings/RE1.json"}
	got := rec.MediaURL("https://api.example.com/")
	want := "https://api.example.com/2010-04-01/Accounts/AC123/Recordings/RE1.mp3"
	if got != want {
		t.Errorf("MediaURL = %q, want %q", got, want)
	}
}

func TestDownloadRecording(t *testing.T) {
	audio := []byte("fake-mp3-bytes")
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2010-04-01/Accounts/AC123/Recordings/RE1.mp3" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if _, _, ok := r.BasicAuth(); !ok {
			t.Error("download request missing basic auth")
		}
		w.Write(audio)
	})

	data, err := c.DownloadRecording(context.Background(), Recording{
		SID: "RE1",
		URI: "/2010-04-01/Accounts/AC123/Recordings/RE1.json",
	})
	if err != nil {
		t.Fatalf("DownloadRecording: %v", err)
	}
	if string(data) != string(audio) {
		t.Errorf("data = %q, want %q", data, audio)
	}
}

func TestDownloadRecording_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.DownloadRecording(context.Background(), Recording{SID: "RE1", URI: "/r/RE1.json"})
	if err == nil {
		t.Fatal("expected error for 404 download")
	}
}
