package date

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Date
		ok    bool
	}{
		{
			name:  "Full month name",
			input: "14 February 2025",
			want:  New(2025, time.February, 14),
			ok:    true,
		},
		{
			name:  "Abbreviated month name",
			input: "14 Feb 2025",
			want:  New(2025, time.February, 14),
			ok:    true,
		},
		{
			name:  "Slash format",
			input: "14/02/2025",
			want:  New(2025, time.February, 14),
			ok:    true,
		},
		{
			name:  "Hyphen format",
			input: "14-02-2025",
			want:  New(2025, time.February, 14),
			ok:    true,
		},
		{
			name:  "Single digit day and month",
			input: "4/3/2025",
			want:  New(2025, time.March, 4),
			ok:    true,
		},
		{
			name:  "Lower case month",
			input: "1 march 2025",
			want:  New(2025, time.March, 1),
			ok:    true,
		},
		{
			name:  "Line break between parts",
			input: "7\nJuly  2025",
			want:  New(2025, time.July, 7),
			ok:    true,
		},
		{
			name:  "Date embedded in a sentence",
			input: "Your next collection is on 9 Sep 2025 (Tuesday)",
			want:  New(2025, time.September, 9),
			ok:    true,
		},
		{
			name:  "Day out of range",
			input: "32 January 2025",
			ok:    false,
		},
		{
			name:  "Month out of range",
			input: "14/13/2025",
			ok:    false,
		},
		{
			name:  "Not in that month",
			input: "30-02-2025",
			ok:    false,
		},
		{
			name:  "Unknown month word",
			input: "14 Sept 2025",
			ok:    false,
		},
		{
			name:  "Empty string",
			input: "",
			ok:    false,
		},
		{
			name:  "No date at all",
			input: "Not a date",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.input)
			if ok != tt.ok {
				t.Fatalf("Normalize(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Normalize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_FormatInvariance(t *testing.T) {
	want := New(2025, time.February, 14)
	for _, input := range []string{"14 February 2025", "14 Feb 2025", "14/02/2025", "14-02-2025"} {
		got, ok := Normalize(input)
		if !ok || got != want {
			t.Errorf("Normalize(%q) = %v, %v; want %v", input, got, ok, want)
		}
	}
}

func TestNormalize_FirstShapeWins(t *testing.T) {
	// The month-name shape matches first and fails validation, so the
	// valid slash date later in the same text is never tried.
	if got, ok := Normalize("31 April 2025 or 01/05/2025"); ok {
		t.Errorf("Normalize() = %v, want no match", got)
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name    string
		window  string
		want    Date
		wantRaw string
		ok      bool
	}{
		{
			name:    "Month name inside window",
			window:  "Black bin\nNext collection: Friday 14 February 2025\nGreen bin",
			want:    New(2025, time.February, 14),
			wantRaw: "14 February 2025",
			ok:      true,
		},
		{
			name:    "First candidate wins",
			window:  "03/03/2025 then 10/03/2025",
			want:    New(2025, time.March, 3),
			wantRaw: "03/03/2025",
			ok:      true,
		},
		{
			name:    "Hyphen format",
			window:  "Glass: 21-03-2025",
			want:    New(2025, time.March, 21),
			wantRaw: "21-03-2025",
			ok:      true,
		},
		{
			name:    "Invalid first candidate stops the search",
			window:  "99/99/2025 and 10/03/2025",
			wantRaw: "99/99/2025",
			ok:      false,
		},
		{
			name:   "Words that are not months are ignored",
			window: "collected 12 times 2025",
			ok:     false,
		},
		{
			name:   "Empty window",
			window: "",
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, raw, ok := Find(tt.window)
			if ok != tt.ok {
				t.Fatalf("Find(%q) ok = %v, want %v", tt.window, ok, tt.ok)
			}
			if raw != tt.wantRaw {
				t.Errorf("Find(%q) raw = %q, want %q", tt.window, raw, tt.wantRaw)
			}
			if ok && got != tt.want {
				t.Errorf("Find(%q) = %v, want %v", tt.window, got, tt.want)
			}
		})
	}
}
