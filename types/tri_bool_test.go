package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriBoolAnd(t *testing.T) {
	assert.Equal(t, True, True.And(True))
	assert.Equal(t, False, True.And(False))
	assert.Equal(t, False, False.And(Unknown))
	assert.Equal(t, Unknown, True.And(Unknown))
	assert.Equal(t, Unknown, Unknown.And(Unknown))
}

func TestTriBoolOr(t *testing.T) {
	assert.Equal(t, True, True.Or(False))
	assert.Equal(t, True, Unknown.Or(True))
	assert.Equal(t, False, False.Or(False))
	assert.Equal(t, Unknown, False.Or(Unknown))
	assert.Equal(t, Unknown, Unknown.Or(Unknown))
}

func TestTriBoolNot(t *testing.T) {
	assert.Equal(t, False, True.Not())
	assert.Equal(t, True, False.Not())
	assert.Equal(t, Unknown, Unknown.Not())
}

func TestTriBoolIsTrue(t *testing.T) {
	assert.True(t, True.IsTrue())
	assert.False(t, False.IsTrue())
	// Unknown is not true: a filter drops it like false.
	assert.False(t, Unknown.IsTrue())
}
