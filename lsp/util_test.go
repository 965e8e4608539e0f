package lsp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestURIToPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/tmp/a b.cypher", URIToPath("file:///tmp/a%20b.cypher"))
	assert.Equal(t, "untitled:Untitled-1", URIToPath("untitled:Untitled-1"))
	assert.Equal(t, protocol.DocumentURI("file:///tmp/q.cypher"), PathToURI("/tmp/q.cypher"))
}

func TestOffsetAt(t *testing.T) {
	t.Parallel()

	content := "RETURN 'ä';\nMATCH (n)\n"

	tests := []struct {
		name string
		pos  protocol.Position
		want int
	}{
		{name: "start", pos: protocol.Position{Line: 0, Character: 0}, want: 0},
		{name: "after multibyte rune", pos: protocol.Position{Line: 0, Character: 10}, want: 11},
		{name: "second line", pos: protocol.Position{Line: 1, Character: 6}, want: 19},
		{name: "past end of line", pos: protocol.Position{Line: 1, Character: 40}, want: 22},
		{name: "past last line", pos: protocol.Position{Line: 9, Character: 0}, want: len(content)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, offsetAt(content, tt.pos))
		})
	}
}

func TestEndPosition(t *testing.T) {
	t.Parallel()

	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, endPosition(""))
	assert.Equal(t, protocol.Position{Line: 0, Character: 10}, endPosition("RETURN 'ä'"))
	assert.Equal(t, protocol.Position{Line: 2, Character: 0}, endPosition("RETURN 1;\nRETURN 2;\n"))
}

type logRecorder struct {
	messages chan *protocol.LogMessageParams
}

func (r *logRecorder) LogMessage(_ context.Context, params *protocol.LogMessageParams) error {
	r.messages <- params

	return nil
}

func TestLSPLogger(t *testing.T) {
	t.Parallel()

	rec := &logRecorder{messages: make(chan *protocol.LogMessageParams, 10)}

	logger, stop := NewLSPLogger(rec, zapcore.NewNopCore(), zapcore.InfoLevel)
	defer stop()

	logger.Debug("dropped")
	logger.With(zap.String("uri", "file:///q.cypher")).Warn("parsed", zap.Int("errors", 2))

	select {
	case msg := <-rec.messages:
		assert.Equal(t, protocol.MessageTypeWarning, msg.Type)
		assert.Contains(t, msg.Message, "parsed")
		assert.Contains(t, msg.Message, `"uri": "file:///q.cypher"`)
		assert.Contains(t, msg.Message, `"errors": 2`)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "no log message delivered")
	}
}

func TestMessageType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, protocol.MessageTypeLog, messageType(zapcore.DebugLevel))
	assert.Equal(t, protocol.MessageTypeInfo, messageType(zapcore.InfoLevel))
	assert.Equal(t, protocol.MessageTypeWarning, messageType(zapcore.WarnLevel))
	assert.Equal(t, protocol.MessageTypeError, messageType(zapcore.ErrorLevel))
	assert.Equal(t, protocol.MessageTypeError, messageType(zapcore.FatalLevel))
}
