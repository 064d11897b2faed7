package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelationIDIsDeterministic(t *testing.T) {
	a := RelationID("like", "user-1", "post-9")
	b := RelationID("like", "user-1", "post-9")
	assert.Equal(t, a, b)
}

func TestRelationIDSeparatesPairs(t *testing.T) {
	base := RelationID("like", "user-1", "post-9")

	assert.NotEqual(t, base, RelationID("follow", "user-1", "post-9"), "kind must be part of the id")
	assert.NotEqual(t, base, RelationID("like", "user-2", "post-9"))
	assert.NotEqual(t, base, RelationID("like", "user-1", "post-8"))
	assert.NotEqual(t,
		RelationID("follow", "user-1", "user-2"),
		RelationID("follow", "user-2", "user-1"),
		"follow direction matters")
}
