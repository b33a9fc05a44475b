package action

import (
	"strings"
	"testing"
)

func TestBuild_NoParams(t *testing.T) {
	got := Build("XGedStartAction")
	if got != "XGedStartAction" {
		t.Errorf("Build() = %q, want %q", got, "XGedStartAction")
	}
}

func TestBuild_ParameterEncoding(t *testing.T) {
	tests := []struct {
		name   string
		action string
		params []Param
		want   string
	}{
		{
			name:   "string params in insertion order",
			action: "backup",
			params: []Param{
				String("TYPE", "PROJECT"),
				String("ARCHIVENAME", "demo.zw1"),
			},
			want: "backup /TYPE:PROJECT /ARCHIVENAME:demo.zw1",
		},
		{
			name:   "empty string omitted",
			action: "backup",
			params: []Param{
				String("TYPE", "PROJECT"),
				String("COMMENT", ""),
				String("BACKUPMETHOD", "BACKUP"),
			},
			want: "backup /TYPE:PROJECT /BACKUPMETHOD:BACKUP",
		},
		{
			name:   "zero-value param omitted",
			action: "backup",
			params: []Param{{Key: "COMMENT"}},
			want:   "backup",
		},
		{
			name:   "whitespace quoted",
			action: "backup",
			params: []Param{String("COMMENT", "nightly full backup")},
			want:   `backup /COMMENT:"nightly full backup"`,
		},
		{
			name:   "already quoted not double-quoted",
			action: "backup",
			params: []Param{String("COMMENT", `"nightly full backup"`)},
			want:   `backup /COMMENT:"nightly full backup"`,
		},
		{
			name:   "bool true and false",
			action: "backup",
			params: []Param{
				Bool("INCLIMAGES", true),
				Bool("INCLEXTDOCS", false),
			},
			want: "backup /INCLIMAGES:1 /INCLEXTDOCS:0",
		},
		{
			name:   "numeric verbatim",
			action: "export",
			params: []Param{
				Int("DEPTH", 3),
				Float("SCALE", 1.5),
			},
			want: "export /DEPTH:3 /SCALE:1.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.action, tt.params...)
			if got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBoolOpt(t *testing.T) {
	if got := Build("a", BoolOpt("FLAG", nil)); got != "a" {
		t.Errorf("Build() with nil BoolOpt = %q, want %q", got, "a")
	}
	v := false
	if got := Build("a", BoolOpt("FLAG", &v)); got != "a /FLAG:0" {
		t.Errorf("Build() with false BoolOpt = %q, want %q", got, "a /FLAG:0")
	}
}

func TestIndexed(t *testing.T) {
	params := Indexed("PAGENAME", []string{"=A1+B1/1", "=A1+B1/2", "cover page"})
	got := Build("export", params...)
	want := `export /PAGENAME1:=A1+B1/1 /PAGENAME2:=A1+B1/2 /PAGENAME3:"cover page"`
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestIndexed_Empty(t *testing.T) {
	if params := Indexed("PAGENAME", nil); len(params) != 0 {
		t.Errorf("Indexed(nil) returned %d params, want 0", len(params))
	}
}

func TestBuild_NeverEmitsEmptyFlags(t *testing.T) {
	got := Build("x", String("A", ""), String("B", "v"), Param{Key: "C"})
	if strings.Contains(got, "/A:") || strings.Contains(got, "/C:") {
		t.Errorf("Build() emitted empty parameter: %q", got)
	}
}
