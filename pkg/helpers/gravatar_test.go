package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatarURL(t *testing.T) {
	// md5("myemailaddress@example.com"), the example hash from the Gravatar docs
	want := "//www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?d=mm&r=pg&s=200"

	assert.Equal(t, want, GravatarURL("myemailaddress@example.com"))
	assert.Equal(t, want, GravatarURL("  MyEmailAddress@example.com "))
}
