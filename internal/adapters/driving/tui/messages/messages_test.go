package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

func TestResponseReceived_HasReport(t *testing.T) {
	tests := []struct {
		name string
		msg  ResponseReceived
		want bool
	}{
		{
			name: "report attached",
			msg:  ResponseReceived{Message: &domain.ChatMessage{ReportDataURI: "data:application/pdf;base64,JVBERg=="}},
			want: true,
		},
		{
			name: "plain answer",
			msg:  ResponseReceived{Message: &domain.ChatMessage{Content: "Warm water."}},
			want: false,
		},
		{
			name: "error",
			msg:  ResponseReceived{Err: errors.New("boom")},
			want: false,
		},
		{
			name: "empty",
			msg:  ResponseReceived{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.msg.HasReport())
		})
	}
}

func TestSubmitRequested(t *testing.T) {
	msg := SubmitRequested{Text: "report on the Arabian Sea", Intent: domain.IntentReport}

	assert.Equal(t, "report on the Arabian Sea", msg.Text)
	assert.True(t, msg.Intent.IsExplicit())
}
