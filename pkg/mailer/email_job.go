package mailer

// EmailJob is the JSON payload queued for the email worker.
// Template+Data is rendered by the worker; Subject/Text/HTML are sent as-is.
type EmailJob struct {
	To       string         `json:"to"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
}
