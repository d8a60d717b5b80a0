package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/pkg/helpers"
	"github.com/oksasatya/go-devconnector/pkg/mailer"
	mailtpl "github.com/oksasatya/go-devconnector/pkg/mailer/templates"
)

type outcome int

const (
	outcomeAck outcome = iota
	outcomeDrop
	outcomeRetry
)

type worker struct {
	sender mailer.Sender
	logger *logrus.Logger
}

// handle renders and sends one queued job. Bad payloads and unknown templates
// are dropped; delivery failures are requeued.
func (w *worker) handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		helpers.LogError(w.logger, "bad message", err, nil)
		return outcomeDrop
	}
	if job.To == "" {
		helpers.LogError(w.logger, "message without recipient", nil, logrus.Fields{"template": job.Template})
		return outcomeDrop
	}
	helpers.EnsureRecipientAndEmail(&job)

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			helpers.LogError(w.logger, "render failed", err, logrus.Fields{"template": job.Template})
			return outcomeDrop
		}
		subject, text, html = s, t, h
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := w.sender.Send(c, job.To, subject, text, html); err != nil {
		helpers.LogError(w.logger, "send failed", err, logrus.Fields{"template": job.Template})
		return outcomeRetry
	}
	helpers.LogInfo(w.logger, "email sent", logrus.Fields{"template": job.Template})
	return outcomeAck
}
