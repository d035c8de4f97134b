package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThreadVisible(t *testing.T) {
	gated := &ThreadMetadata{Id: 1, Trusted: true}
	open := &ThreadMetadata{Id: 2}

	assert.True(t, ThreadVisible(open, false))
	assert.True(t, ThreadVisible(open, true))
	assert.False(t, ThreadVisible(gated, false))
	assert.True(t, ThreadVisible(gated, true))
}

func TestTrustedAccess(t *testing.T) {
	testCases := []struct {
		name string
		user *User
		want bool
	}{
		{name: "anonymous", user: nil, want: false},
		{name: "plain user", user: &User{Id: 1}, want: false},
		{name: "trusted", user: &User{Id: 1, Trusted: true}, want: true},
		{name: "moderator", user: &User{Id: 1, Moderator: true}, want: true},
		{name: "admin", user: &User{Id: 1, Admin: true}, want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.user.TrustedAccess())
		})
	}
}
