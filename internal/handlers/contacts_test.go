package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"potarig/internal/models"
	"potarig/internal/service"
)

func TestContactsHandler_Log(t *testing.T) {
	contacts := &mockContacts{contact: models.Contact{ID: "c1", Call: "K1ABC", Band: "40m"}}
	r := newTestRouter(&service.Service{Contacts: contacts})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts",
		strings.NewReader(`{"call":"K1ABC","freq":"7200","mode":"SSB","ref":"US-0001","name":"Acadia"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	want := service.ContactInput{Call: "K1ABC", FrequencyKHz: "7200", Mode: "SSB", Reference: "US-0001", ParkName: "Acadia"}
	if contacts.lastInput != want {
		t.Fatalf("input = %+v", contacts.lastInput)
	}
	var got models.Contact
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.ID != "c1" {
		t.Fatalf("response = %+v", got)
	}
}

func TestContactsHandler_LogErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"missing call", service.ErrMissingCall, http.StatusBadRequest},
		{"bad frequency", service.ErrInvalidFrequency, http.StatusBadRequest},
		{"storage", errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Contacts: &mockContacts{logErr: tc.err}})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", strings.NewReader(`{"call":"x"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			if w.Code != tc.code {
				t.Fatalf("status=%d; want %d", w.Code, tc.code)
			}
		})
	}
}

func TestContactsHandler_List(t *testing.T) {
	contacts := &mockContacts{list: []models.Contact{{ID: "c1"}, {ID: "c2"}}}
	r := newTestRouter(&service.Service{Contacts: contacts})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/contacts?from=2025-06-01&to=2025-06-01&band=40m", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count int `json:"count"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 {
		t.Fatalf("count = %d", out.Count)
	}
	f := contacts.lastFilter
	wantTo := time.Date(2025, 6, 1, 23, 59, 59, 999999999, time.UTC)
	if f.Band != "40m" || !f.From.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) || !f.To.Equal(wantTo) {
		t.Fatalf("filter = %+v", f)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/contacts?to=yesterday", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLegacyLogData(t *testing.T) {
	contacts := &mockContacts{logErr: service.ErrMissingCall}
	r := newTestRouter(&service.Service{Contacts: contacts})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logdata?call=K1ABC&freq=7200&mode=SSB&ref=US-0001&name=Acadia+NP", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if contacts.lastInput.ParkName != "Acadia NP" || contacts.lastInput.Reference != "US-0001" {
		t.Fatalf("input = %+v", contacts.lastInput)
	}
}
