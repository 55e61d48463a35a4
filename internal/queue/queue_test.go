package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(TypeContactEmail, map[string]string{"inquiry_id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, TypeContactEmail, msg.Type)

	var payload struct {
		InquiryID string `json:"inquiry_id"`
	}
	require.NoError(t, json.Unmarshal(msg.Body, &payload))
	assert.Equal(t, "abc", payload.InquiryID)
}

func TestInMemoryPublishConsume(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewInMemory(4)
	msg, err := NewMessage(TypePasswordReset, map[string]string{"member_id": "m1", "token": "tok"})
	require.NoError(t, err)
	require.NoError(t, q.Publish(ctx, msg))

	messages, err := q.Consume(ctx)
	require.NoError(t, err)

	select {
	case got := <-messages:
		assert.Equal(t, TypePasswordReset, got.Type)
		assert.JSONEq(t, string(msg.Body), string(got.Body))
	case <-time.After(time.Second):
		t.Fatal("expected a message")
	}
}

func TestInMemoryPublishRespectsContext(t *testing.T) {
	q := NewInMemory(1)
	ctx, cancel := context.WithCancel(context.Background())
	msg, err := NewMessage(TypeSubmissionReceipt, map[string]string{"member_id": "m1"})
	require.NoError(t, err)
	require.NoError(t, q.Publish(ctx, msg))

	// Queue is full now; a cancelled context must unblock the publisher.
	cancel()
	err = q.Publish(ctx, msg)
	assert.ErrorIs(t, err, context.Canceled)
}
