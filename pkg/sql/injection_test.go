package sql

import (
	"testing"
)

func TestCheckUserQuery(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantSQLi  bool
	}{
		{
			name:  "russian question is clean",
			input: "Сколько видео имеют больше 10000 просмотров?",
		},
		{
			name:  "english question is clean",
			input: "How many videos were published in June 2025?",
		},
		{
			name:  "question with numeric id is clean",
			input: "Сколько снапшотов у видео 0b3e5f?",
		},
		{
			name:     "classic injection payload",
			input:    "'; DROP TABLE videos--",
			wantSQLi: true,
		},
		{
			name:     "tautology payload",
			input:    "1' OR '1'='1",
			wantSQLi: true,
		},
		{
			name:  "empty",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CheckUserQuery(tt.input)
			if tt.wantSQLi {
				if res == nil || !res.IsSQLi {
					t.Errorf("CheckUserQuery(%q) = %+v, want SQLi detection", tt.input, res)
				} else if res.Fingerprint == "" {
					t.Errorf("CheckUserQuery(%q) missing fingerprint", tt.input)
				}
			} else if res != nil {
				t.Errorf("CheckUserQuery(%q) = %+v, want nil", tt.input, res)
			}
		})
	}
}
