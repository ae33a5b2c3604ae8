package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaTypeIsValid(t *testing.T) {
	tests := []struct {
		name  string
		media MediaType
		valid bool
	}{
		{name: "pdf", media: MediaTypePDF, valid: true},
		{name: "plain text", media: MediaTypePlainText, valid: true},
		{name: "docx", media: MediaType("application/vnd.openxmlformats-officedocument.wordprocessingml.document"), valid: false},
		{name: "empty", media: MediaType(""), valid: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.media.IsValid())
		})
	}
}

func TestMediaTypeString(t *testing.T) {
	assert.Equal(t, "application/pdf", MediaTypePDF.String())
	assert.Equal(t, "text/plain", MediaTypePlainText.String())
}
