package lsp

import (
	"context"
	"slices"
	"strings"
	"sync"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logQueueSize bounds the messages waiting for the client. Further messages
// are dropped until the queue drains.
const logQueueSize = 100

// MessageLogger is the part of protocol.Client used for logging.
type MessageLogger interface {
	LogMessage(ctx context.Context, params *protocol.LogMessageParams) error
}

// clientCore is a zapcore.Core that forwards entries to the editor through
// window/logMessage, so they show up in the client's LSP log.
type clientCore struct {
	zapcore.LevelEnabler

	encoder zapcore.Encoder
	fields  []zapcore.Field
	queue   chan *protocol.LogMessageParams

	mu *sync.Mutex
}

// NewLSPLogger returns a logger writing to both the client and fallback,
// typically stderr. Call the returned stop function once the connection is
// closed.
func NewLSPLogger(client MessageLogger, fallback zapcore.Core, level zapcore.LevelEnabler) (*zap.Logger, func()) {
	ctx, cancel := context.WithCancel(context.Background())

	core := &clientCore{
		LevelEnabler: level,
		encoder: zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			MessageKey:     "msg",
			NameKey:        "logger",
			EncodeDuration: zapcore.StringDurationEncoder,
		}),
		queue: make(chan *protocol.LogMessageParams, logQueueSize),
		mu:    &sync.Mutex{},
	}

	done := make(chan struct{})

	go func() {
		defer close(done)

		for {
			select {
			case msg := <-core.queue:
				// The client may already be gone.
				_ = client.LogMessage(ctx, msg)
			case <-ctx.Done():
				return
			}
		}
	}()

	stop := func() {
		cancel()
		<-done
	}

	return zap.New(zapcore.NewTee(core, fallback)), stop
}

func (c *clientCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.encoder = c.encoder.Clone()
	clone.fields = append(slices.Clip(c.fields), fields...)

	return &clone
}

func (c *clientCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}

	return ce
}

func (c *clientCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	c.mu.Lock()
	buf, err := c.encoder.EncodeEntry(entry, append(slices.Clip(c.fields), fields...))
	c.mu.Unlock()

	if err != nil {
		return err
	}

	msg := &protocol.LogMessageParams{
		Type:    messageType(entry.Level),
		Message: strings.TrimSpace(buf.String()),
	}
	buf.Free()

	select {
	case c.queue <- msg:
	default:
	}

	return nil
}

func (c *clientCore) Sync() error {
	return nil
}

// messageType maps a zap level to an LSP message type.
func messageType(level zapcore.Level) protocol.MessageType {
	switch {
	case level >= zapcore.ErrorLevel:
		return protocol.MessageTypeError
	case level == zapcore.WarnLevel:
		return protocol.MessageTypeWarning
	case level == zapcore.InfoLevel:
		return protocol.MessageTypeInfo
	default:
		return protocol.MessageTypeLog
	}
}
