package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   ChatQuery
		wantErr bool
	}{
		{"valid", ChatQuery{Text: "hello"}, false},
		{"valid deeper", ChatQuery{Text: "hello", Mode: ChatModeDeeper}, false},
		{"empty", ChatQuery{Text: ""}, true},
		{"whitespace", ChatQuery{Text: "  \n\t"}, true},
		{"bad mode", ChatQuery{Text: "hi", Mode: "shallow"}, true},
		{"bad intent", ChatQuery{Text: "hi", Intent: "poem"}, true},
		{"bad history role", ChatQuery{Text: "hi", History: []ChatTurn{{Role: "system", Content: "x"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChatQuery_RecentHistory(t *testing.T) {
	var history []ChatTurn
	for i := 0; i < 8; i++ {
		history = append(history, ChatTurn{Role: RoleUser, Content: fmt.Sprintf("m%d", i)})
	}
	q := ChatQuery{Text: "x", History: history}

	recent := q.RecentHistory()
	require.Len(t, recent, MaxHistoryTurns)
	assert.Equal(t, "m3", recent[0].Content)
	assert.Equal(t, "m7", recent[4].Content)

	short := ChatQuery{Text: "x", History: history[:2]}
	assert.Len(t, short.RecentHistory(), 2)
}

func TestParseChatMode(t *testing.T) {
	m, err := ParseChatMode("")
	require.NoError(t, err)
	assert.Equal(t, ChatModeNormal, m)

	m, err = ParseChatMode("DEEPER")
	require.NoError(t, err)
	assert.Equal(t, ChatModeDeeper, m)

	_, err = ParseChatMode("deep")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestChatResult_ReportDataURI(t *testing.T) {
	var nilResult *ChatResult
	assert.Empty(t, nilResult.ReportDataURI())
	assert.Empty(t, (&ChatResult{}).ReportDataURI())

	r := &ChatResult{Report: &Document{MIMEType: MIMETypePDF, Data: []byte("%PDF")}}
	assert.Equal(t, "data:application/pdf;base64,JVBERg==", r.ReportDataURI())
}
