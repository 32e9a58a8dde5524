package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlexString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want FlexString
	}{
		{"string", `"hello"`, "hello"},
		{"number", `42`, "42"},
		{"float", `1.5`, "1.5"},
		{"bool", `true`, "true"},
		{"null", `null`, ""},
		{"object", `{"a":1}`, ""},
		{"array", `[1,2]`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexString
			if err := json.Unmarshal([]byte(tt.json), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.json, err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.json, got, tt.want)
			}
		})
	}
}

func TestStringList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want StringList
	}{
		{"array of strings", `["a","b"]`, StringList{"a", "b"}},
		{"mixed array keeps strings", `["a",1,null,"b"]`, StringList{"a", "b"}},
		{"bare string", `"solo"`, StringList{"solo"}},
		{"null", `null`, nil},
		{"number", `7`, nil},
		{"empty array", `[]`, StringList{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			if err := json.Unmarshal([]byte(tt.json), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.json, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Unmarshal(%s) mismatch (-want +got):\n%s", tt.json, diff)
			}
		})
	}
}

func TestEpochMillis_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want EpochMillis
	}{
		{"epoch seconds", `1700000000`, 1700000000000},
		{"epoch millis", `1700000000000`, 1700000000000},
		{"rfc3339", `"2023-11-14T22:13:20Z"`, 1700000000000},
		{"date only", `"2023-11-14"`, 1699920000000},
		{"garbage string", `"not a date"`, 0},
		{"null", `null`, 0},
		{"object", `{"ts":1}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got EpochMillis
			if err := json.Unmarshal([]byte(tt.json), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.json, err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %d, want %d", tt.json, got, tt.want)
			}
		})
	}
}

func TestRawProfile_DecodeTolerant(t *testing.T) {
	// A messy record must decode without error, odd fields degrading to zero values.
	raw := `{
		"name": "Aiko",
		"username": "aiko",
		"location": null,
		"tags": ["ai", 3, "web3"],
		"professional_keywords": "founder",
		"post_date": "2024-02-01",
		"x_url": 12345
	}`
	var p RawProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if p.Name != "Aiko" || p.Username != "aiko" {
		t.Errorf("identity fields = %q/%q", p.Name, p.Username)
	}
	if p.Location != "" {
		t.Errorf("null location = %q, want empty", p.Location)
	}
	if diff := cmp.Diff(StringList{"ai", "web3"}, p.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(StringList{"founder"}, p.ProfessionalKeywords); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}
	if p.PostDate == 0 {
		t.Error("post_date should parse date string")
	}
	if p.XURL != "12345" {
		t.Errorf("numeric x_url = %q, want \"12345\"", p.XURL)
	}
}
