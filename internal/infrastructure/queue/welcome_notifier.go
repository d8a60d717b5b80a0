// Package queue turns account events into e-mail jobs on RabbitMQ.
package queue

import (
	"context"
	"time"

	"github.com/oksasatya/go-devconnector/config"
	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/pkg/mailer"
	tpl "github.com/oksasatya/go-devconnector/pkg/mailer/templates"
)

// JSONPublisher is satisfied by helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// WelcomeNotifier enqueues a welcome e-mail for every new account.
type WelcomeNotifier struct {
	pub JSONPublisher
	cfg *config.Config
	now func() time.Time
}

func NewWelcomeNotifier(pub JSONPublisher, cfg *config.Config) *WelcomeNotifier {
	return &WelcomeNotifier{pub: pub, cfg: cfg, now: time.Now}
}

// AccountRegistered publishes the job; disabled mail sending makes it a no-op.
func (n *WelcomeNotifier) AccountRegistered(ctx context.Context, a entity.PublicAccount) error {
	if n == nil || n.pub == nil || n.cfg == nil || !n.cfg.MailSendEnabled {
		return nil
	}
	return n.pub.PublishJSON(ctx, WelcomeJob(n.cfg, a, n.now()))
}

// WelcomeJob builds the queued job for a.
func WelcomeJob(cfg *config.Config, a entity.PublicAccount, at time.Time) mailer.EmailJob {
	data := tpl.NewWelcomeData(cfg, a.Name, a.Email,
		tpl.WithTime(at),
		tpl.WithAvatar(a.Avatar),
	)
	return mailer.EmailJob{To: a.Email, Template: tpl.Welcome, Data: data}
}
