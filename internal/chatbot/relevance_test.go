package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRelated(t *testing.T) {
	for _, q := range []string{
		"How do I DONATE?",
		"restaurant signup",
		"I want to Sign Up",
		"need help",
		"what is food pulse",
	} {
		assert.True(t, IsRelated(q), q)
	}
	for _, q := range []string{"tell me a joke", "weather today", ""} {
		assert.False(t, IsRelated(q), q)
	}
}

func TestGreetingAndFarewell(t *testing.T) {
	assert.True(t, isGreeting("hello"))
	assert.True(t, isGreeting("hi there"))
	assert.True(t, isGreeting("hey, how do i donate"))
	assert.False(t, isGreeting("oh hi"))

	assert.True(t, isFarewell("bye"))
	assert.True(t, isFarewell("goodbye"))
	assert.False(t, isFarewell("bye now"))
	assert.False(t, isFarewell("quit it"))
}
