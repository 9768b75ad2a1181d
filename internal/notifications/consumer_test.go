package notifications

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"wedding-marketplace/internal/catalog"
)

func TestHandleMessage(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantMalformed bool
		wantText      string
	}{
		{
			name:     "contact initiated",
			body:     `{"event_type":"contact_initiated","listing_id":3,"vendor_id":"vendor-a","contact_id":7,"user_id":"buyer-1"}`,
			wantText: "Pembeli buyer-1 menghubungi Anda lewat WhatsApp untuk listing #3.",
		},
		{
			name:          "invalid json",
			body:          `{"event_type":`,
			wantMalformed: true,
		},
		{
			name:          "missing event type",
			body:          `{"listing_id":3}`,
			wantMalformed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := &Consumer{logger: slog.New(slog.NewJSONHandler(&buf, nil))}

			err := c.handleMessage([]byte(tt.body))

			if tt.wantMalformed {
				if !errors.Is(err, errMalformedEvent) {
					t.Fatalf("want malformed event error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("decode log line %q: %v", buf.String(), err)
			}
			if entry["text"] != tt.wantText {
				t.Fatalf("want text %q, got %v", tt.wantText, entry["text"])
			}
		})
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		event catalog.Event
		want  string
	}{
		{
			name:  "listing created",
			event: catalog.Event{EventType: catalog.EventListingCreated, ListingID: 1, Name: "Gedung Melati"},
			want:  `Listing "Gedung Melati" (#1) sudah tayang.`,
		},
		{
			name:  "listing deleted",
			event: catalog.Event{EventType: catalog.EventListingDeleted, ListingID: 1},
			want:  "Listing #1 sudah dihapus.",
		},
		{
			name:  "anonymous contact",
			event: catalog.Event{EventType: catalog.EventContactInitiated, ListingID: 2},
			want:  "Calon pembeli menghubungi Anda lewat WhatsApp untuk listing #2.",
		},
		{
			name:  "status change",
			event: catalog.Event{EventType: catalog.EventContactStatusChanged, ContactID: 9, Status: catalog.ContactStatusBooked},
			want:  "Kontak #9 sekarang berstatus booked.",
		},
		{
			name:  "unknown event",
			event: catalog.Event{EventType: "listing_featured", ListingID: 4},
			want:  "Event listing_featured untuk listing #4.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.event); got != tt.want {
				t.Fatalf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestHandleMessage_LogsVendor(t *testing.T) {
	var buf bytes.Buffer
	c := &Consumer{logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	if err := c.handleMessage([]byte(`{"event_type":"listing_deleted","listing_id":5,"vendor_id":"vendor-a"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"vendor_id":"vendor-a"`) {
		t.Fatalf("want vendor id in log, got %s", buf.String())
	}
}
