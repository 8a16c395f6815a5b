package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	evt, err := Decode([]byte(`{"type":"POST_DELETED","data":{"slug":"hello"},"occurred_at":"2024-01-02T03:04:05Z"}`))
	require.NoError(t, err)
	assert.Equal(t, "POST_DELETED", evt.EventType())
	assert.Equal(t, "hello", evt.Payload()["slug"])

	_, err = Decode([]byte(`{"data":{}}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}
