package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-devconnector/config"
	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/pkg/mailer"
)

type recordingPublisher struct {
	bodies []any
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.bodies = append(p.bodies, body)
	return nil
}

func TestWelcomeNotifier_Publishes(t *testing.T) {
	pub := &recordingPublisher{}
	cfg := &config.Config{AppName: "devconnector", MailSendEnabled: true}
	n := NewWelcomeNotifier(pub, cfg)
	n.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	err := n.AccountRegistered(context.Background(), entity.PublicAccount{ID: "a1", Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	require.Len(t, pub.bodies, 1)

	job, ok := pub.bodies[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "ann@example.com", job.To)
	assert.Equal(t, "welcome", job.Template)
	assert.Equal(t, "Ann", job.Data["Name"])
	assert.Equal(t, "01 March 2024, 12:00", job.Data["Time"])
}

func TestWelcomeNotifier_DisabledDoesNothing(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewWelcomeNotifier(pub, &config.Config{MailSendEnabled: false})

	require.NoError(t, n.AccountRegistered(context.Background(), entity.PublicAccount{Email: "x@example.com"}))
	assert.Empty(t, pub.bodies)
}
