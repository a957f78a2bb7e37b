package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTrimmed(t *testing.T) {
	assert.Equal(t, []string{"Red", "Blue"}, splitTrimmed("Red, Blue"))
	assert.Equal(t, []string{"Green"}, splitTrimmed(" Green ,, "))
	assert.Nil(t, splitTrimmed(""))
	assert.Nil(t, splitTrimmed(" , ,"))
}
