package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMailgun(t *testing.T) {
	m := NewMailgun("mg.example.com", "key-test", "DevConnector <noreply@mg.example.com>")
	assert.NotNil(t, m.client)
	assert.Equal(t, "mg.example.com", m.client.Domain())
	assert.Equal(t, "DevConnector <noreply@mg.example.com>", m.from)
	assert.Equal(t, 10*time.Second, m.timeout)
}
