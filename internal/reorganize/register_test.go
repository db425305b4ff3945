package reorganize

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestApplyArgs(t *testing.T) {
	base := DefaultOptions()
	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, o Options)
		wantErr string
	}{
		{
			name: "no args keeps defaults",
			check: func(t *testing.T, o Options) {
				if o.TieBreak != TieBreakLast || o.StdlibName != DefaultStdlibName {
					t.Errorf("options = %+v", o)
				}
			},
		},
		{
			name: "overrides",
			args: []string{"tie-break=longest", "stdlib-name=libc", "source-header=origin"},
			check: func(t *testing.T, o Options) {
				if o.TieBreak != TieBreakLongest || o.StdlibName != "libc" || o.Classifier.SourceHeaderIdent != "origin" {
					t.Errorf("options = %+v", o)
				}
			},
		},
		{
			name: "markers drop blanks",
			args: []string{"stdlib-markers=/opt/sdk, ,musl"},
			check: func(t *testing.T, o Options) {
				if diff := cmp.Diff([]string{"/opt/sdk", "musl"}, o.Classifier.StdlibMarkers); diff != "" {
					t.Errorf("markers (-want +got):\n%s", diff)
				}
			},
		},
		{name: "not key value", args: []string{"longest"}, wantErr: "not key=value"},
		{name: "unknown key", args: []string{"colour=red"}, wantErr: "unknown argument"},
		{name: "empty name", args: []string{"stdlib-name="}, wantErr: "needs a value"},
		{name: "bad policy", args: []string{"tie-break=shortest"}, wantErr: "unknown tie-break"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyArgs(base, tt.args)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("applyArgs: %v", err)
			}
			tt.check(t, got)
		})
	}
	if diff := cmp.Diff(DefaultStdlibMarkers, base.Classifier.StdlibMarkers); diff != "" {
		t.Errorf("base markers changed (-want +got):\n%s", diff)
	}
}
