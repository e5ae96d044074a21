package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectHistoryArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"panel"},
			want: []string{"panel"},
		},
		{
			name: "project id first token",
			in:   []string{"panel", "3"},
			want: []string{"panel", "chat", "history", "3"},
		},
		{
			name: "project id after value flag",
			in:   []string{"panel", "--api", "http://localhost:5000", "3"},
			want: []string{"panel", "--api", "http://localhost:5000", "chat", "history", "3"},
		},
		{
			name: "project id after equals flag",
			in:   []string{"panel", "--api=http://localhost:5000", "3"},
			want: []string{"panel", "--api=http://localhost:5000", "chat", "history", "3"},
		},
		{
			name: "project id after bool flag",
			in:   []string{"panel", "--pretty", "3"},
			want: []string{"panel", "--pretty", "chat", "history", "3"},
		},
		{
			name: "project id after double dash",
			in:   []string{"panel", "--api", "http://localhost:5000", "--", "3"},
			want: []string{"panel", "--api", "http://localhost:5000", "--", "chat", "history", "3"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"panel", "chat", "history", "3"},
			want: []string{"panel", "chat", "history", "3"},
		},
		{
			name: "non-numeric token not rewritten",
			in:   []string{"panel", "wat"},
			want: []string{"panel", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectHistoryArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v; want %v", got, tt.want)
			}
		})
	}
}
