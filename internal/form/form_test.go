package form

import "testing"

func entryForm(title, content string) Form {
	return Form{Fields: []Field{
		{Name: "title", Value: title, Required: true},
		{Name: "content", Value: content, Required: true},
		{Name: "mood", Value: ""},
	}}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		content     string
		wantOK      bool
		wantInvalid []string
	}{
		{"all filled", "Monday", "Went for a walk", true, nil},
		{"blank title", "   ", "text", false, []string{"title"}},
		{"both blank", "", "\n\t", false, []string{"title", "content"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := entryForm(tt.title, tt.content)
			if got := f.Validate(); got != tt.wantOK {
				t.Fatalf("Validate = %v, want %v", got, tt.wantOK)
			}
			want := map[string]bool{}
			for _, name := range tt.wantInvalid {
				want[name] = true
			}
			for _, field := range f.Fields {
				if field.Invalid != want[field.Name] {
					t.Fatalf("%s.Invalid = %v, want %v", field.Name, field.Invalid, want[field.Name])
				}
			}
		})
	}
}

func TestValidate_ClearsMarkOnceFilled(t *testing.T) {
	f := entryForm("", "")
	f.Validate()
	f.Set("title", "Tuesday")
	f.Set("content", "Rain all day")
	if !f.Validate() {
		t.Fatalf("Validate = false after filling")
	}
	if f.IsInvalid("title") || f.IsInvalid("content") {
		t.Fatalf("invalid marks not cleared: %#v", f.Fields)
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		in    string
		chars int
		words int
	}{
		{"", 0, 0},
		{"   ", 3, 0},
		{"hello world", 11, 2},
		{"  café\n\tau  lait ", 17, 3},
	}
	for _, tt := range tests {
		got := Count(tt.in)
		if got.Characters != tt.chars || got.Words != tt.words {
			t.Errorf("Count(%q) = %+v, want %d chars %d words", tt.in, got, tt.chars, tt.words)
		}
	}
	if s := Count("one two").String(); s != "7 characters, 2 words" {
		t.Fatalf("String = %q", s)
	}
}

func TestFitHeight(t *testing.T) {
	tests := []struct {
		lines, min, max, want int
	}{
		{1, 3, 10, 3},
		{5, 3, 10, 5},
		{25, 3, 10, 10},
		{4, 0, 0, 1},
		{4, 6, 2, 6},
	}
	for _, tt := range tests {
		if got := FitHeight(tt.lines, tt.min, tt.max); got != tt.want {
			t.Errorf("FitHeight(%d, %d, %d) = %d, want %d", tt.lines, tt.min, tt.max, got, tt.want)
		}
	}
}
