package db

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestCSVSource(t *testing.T) {
	testCases := []struct {
		name    string
		data    string
		want    []Row
		wantErr bool
	}{
		{
			name: "HeaderAndRows",
			data: "ID,username,password,role\n1,ada.l,secret,0\n",
			want: []Row{{"ID": "1", "username": "ada.l", "password": "secret", "role": "0"}},
		},
		{
			name: "ByteOrderMark",
			data: "\ufeffID,first\nA1,Ada\n",
			want: []Row{{"ID": "A1", "first": "Ada"}},
		},
		{
			name: "LeadingSpaces",
			data: "ID, first\nA1, Ada\n",
			want: []Row{{"ID": "A1", "first": "Ada"}},
		},
		{
			name: "HeaderOnly",
			data: "ID,first\n",
		},
		{
			name:    "FieldCountMismatch",
			data:    "ID,first\nA1\n",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := NewCSVSource(strings.NewReader(tc.data))
			var got []Row
			for {
				row, err := src.Next()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					if !tc.wantErr {
						t.Fatalf("Unexpected error: %v", err)
					}
					return
				}
				got = append(got, row)
			}
			if tc.wantErr {
				t.Fatalf("Expected an error, got rows %v", got)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("Expected %d rows, got %d", len(tc.want), len(got))
			}
			for i := range got {
				for k, v := range tc.want[i] {
					if got[i][k] != v {
						t.Errorf("row %d field %q: expected %q, got %q", i, k, v, got[i][k])
					}
				}
			}
		})
	}
}
