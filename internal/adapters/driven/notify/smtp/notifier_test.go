package smtp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docent-ai/docent/internal/core/domain"
)

func TestNewNotifier_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid",
			cfg:     Config{Host: "smtp.example.com", Sender: "noreply@example.com"},
			wantErr: false,
		},
		{
			name:    "missing host",
			cfg:     Config{Sender: "noreply@example.com"},
			wantErr: true,
		},
		{
			name:    "missing sender",
			cfg:     Config{Host: "smtp.example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier, err := NewNotifier(tt.cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DefaultPort, notifier.cfg.Port)
		})
	}
}

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("noreply@example.com", "bob@x.com", domain.Booking{
		FullName: "Bob",
		Email:    "bob@x.com",
		Date:     "2024-09-15",
		Time:     "14:30",
	}))

	assert.Contains(t, msg, "From: noreply@example.com\r\n")
	assert.Contains(t, msg, "To: bob@x.com\r\n")
	assert.Contains(t, msg, "Subject: Interview Confirmation\r\n")
	assert.Contains(t, msg, "Dear Bob,")
	assert.Contains(t, msg, "Date: 2024-09-15\r\n")
	assert.Contains(t, msg, "Time: 14:30\r\n")
	// Headers and body are separated by a blank line.
	assert.Contains(t, msg, "charset=utf-8\r\n\r\nDear")
}
