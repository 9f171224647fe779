package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// fakeWriter implements WriterInterface and records every message it receives.
type fakeWriter struct {
	lastMessages []kafka.Message
	returnError  error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	f.lastMessages = append(f.lastMessages, msgs...)
	return f.returnError
}

func (f *fakeWriter) Close() error {
	return nil
}

func zapTestLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()
	logger, err := zap.NewDevelopmentConfig().Build(zap.AddCallerSkip(1))
	if err != nil {
		t.Fatalf("failed to build zap logger: %v", err)
	}
	return logger.Sugar()
}

func TestProducer_SendEvent_Success(t *testing.T) {
	logger := zapTestLogger(t)
	defer func() { _ = logger.Sync() }()

	fw := &fakeWriter{returnError: nil}
	p := &Producer{
		Writer: fw,
		Logger: logger,
	}

	ctx := context.Background()
	evt := Event{
		UserID:     "user-1",
		Type:       Like,
		ListingID:  "ad-42",
		Categories: []string{"electronics"},
		Timestamp:  time.Now().UTC(),
	}

	if err := p.SendEvent(ctx, evt); err != nil {
		t.Fatalf("expected SendEvent to succeed, got: %v", err)
	}

	if len(fw.lastMessages) != 1 {
		t.Fatalf("expected 1 written message, got %d", len(fw.lastMessages))
	}

	if string(fw.lastMessages[0].Key) != evt.UserID {
		t.Errorf("message key mismatch: want %q, got %q", evt.UserID, fw.lastMessages[0].Key)
	}

	var decoded Event
	if err := json.Unmarshal(fw.lastMessages[0].Value, &decoded); err != nil {
		t.Fatalf("failed to unmarshal written message: %v", err)
	}
	if decoded.UserID != evt.UserID {
		t.Errorf("decoded UserID mismatch: want %q, got %q", evt.UserID, decoded.UserID)
	}
	if decoded.Type != evt.Type {
		t.Errorf("decoded Type mismatch: want %q, got %q", evt.Type, decoded.Type)
	}
	if decoded.ListingID != evt.ListingID {
		t.Errorf("decoded ListingID mismatch: want %q, got %q", evt.ListingID, decoded.ListingID)
	}
	if len(decoded.Categories) != len(evt.Categories) {
		t.Errorf("decoded Categories length mismatch: want %d, got %d",
			len(evt.Categories), len(decoded.Categories))
	}
}

func TestProducer_SendEvent_SearchCarriesQuery(t *testing.T) {
	logger := zapTestLogger(t)
	defer func() { _ = logger.Sync() }()

	fw := &fakeWriter{}
	p := &Producer{Writer: fw, Logger: logger}

	evt := Event{
		UserID:     "user-2",
		Type:       Search,
		Query:      "vintage camera",
		Categories: []string{"electronics", "fashion"},
		Timestamp:  time.Now().UTC(),
	}

	if err := p.SendEvent(context.Background(), evt); err != nil {
		t.Fatalf("expected SendEvent to succeed, got: %v", err)
	}

	var decoded Event
	if err := json.Unmarshal(fw.lastMessages[0].Value, &decoded); err != nil {
		t.Fatalf("failed to unmarshal written message: %v", err)
	}
	if decoded.Query != evt.Query {
		t.Errorf("decoded Query mismatch: want %q, got %q", evt.Query, decoded.Query)
	}
}

func TestProducer_SendEvent_WriteError(t *testing.T) {
	logger := zapTestLogger(t)
	defer func() { _ = logger.Sync() }()

	fw := &fakeWriter{returnError: errors.New("write failed")}
	p := &Producer{
		Writer: fw,
		Logger: logger,
	}

	evt := Event{
		UserID:    "user-3",
		Type:      View,
		ListingID: "ad-7",
		Timestamp: time.Now().UTC(),
	}

	if err := p.SendEvent(context.Background(), evt); err == nil {
		t.Fatal("expected SendEvent to return the writer error, got nil")
	}
}
