package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairKey(t *testing.T) {
	assert.Equal(t, "alice#bob", PairKey("alice", "bob"))
	assert.Equal(t, "alice#bob", PairKey("bob", "alice"))
	assert.Equal(t, "alice#alice", PairKey("alice", "alice"))
}

func TestConversationID(t *testing.T) {
	assert.Equal(t, "alice_bob", ConversationID("alice", "bob"))
	assert.Equal(t, "alice_bob", ConversationID("bob", "alice"))
}
