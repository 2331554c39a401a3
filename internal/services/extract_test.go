package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractField(t *testing.T) {
	tests := []struct {
		name     string
		response string
		field    string
		want     string
	}{
		{
			name:     "plain label",
			response: "VALID: true\nFEEDBACK: Looks good",
			field:    "VALID",
			want:     "true",
		},
		{
			name:     "label mid response",
			response: "VALID: true\nFEEDBACK: Looks good\nCGPA: 8.2",
			field:    "CGPA",
			want:     "8.2",
		},
		{
			name:     "bold markdown label",
			response: "**VALID**: true\n**FEEDBACK**: fine",
			field:    "VALID",
			want:     "true",
		},
		{
			name:     "single asterisk label",
			response: "*VALID*: false",
			field:    "VALID",
			want:     "false",
		},
		{
			name:     "case insensitive label",
			response: "valid: yes",
			field:    "VALID",
			want:     "yes",
		},
		{
			name:     "leading whitespace",
			response: "   STUDENT_NAME: Richard Samuel  ",
			field:    "STUDENT_NAME",
			want:     "Richard Samuel",
		},
		{
			name:     "value wrapped in asterisks",
			response: "FEEDBACK: **strong profile**",
			field:    "FEEDBACK",
			want:     "strong profile",
		},
		{
			name:     "inline label falls back to loose match",
			response: "The verdict is VALID: true overall",
			field:    "VALID",
			want:     "true overall",
		},
		{
			name:     "missing field",
			response: "FEEDBACK: nothing else here",
			field:    "CGPA",
			want:     "",
		},
		{
			name:     "empty response",
			response: "",
			field:    "VALID",
			want:     "",
		},
		{
			name:     "field name with regex metacharacters",
			response: "MARKS (VERIFIED): yes",
			field:    "MARKS (VERIFIED)",
			want:     "yes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractField(tt.response, tt.field))
		})
	}
}

func TestExtractFieldFirstMatchWins(t *testing.T) {
	response := "VALID: true\nVALID: false"
	assert.Equal(t, "true", ExtractField(response, "VALID"))
}
