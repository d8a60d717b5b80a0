package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"io"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData defines standard fields for email templates.
type EmailData struct {
	// Basic info
	Name           string `json:"Name"`
	Email          string `json:"Email"`
	RecipientEmail string `json:"RecipientEmail"`
	Type           string `json:"Type"`
	AvatarURL      string `json:"AvatarURL"`

	// Company info
	CompanyName    string `json:"CompanyName"`
	CompanyAddress string `json:"CompanyAddress"`
	AppName        string `json:"AppName"`

	// URLs
	LogoURL    string `json:"LogoURL"`
	SupportURL string `json:"SupportURL"`
	PrivacyURL string `json:"PrivacyURL"`
	LoginURL   string `json:"LoginURL"`

	// Additional data
	Time   string    `json:"Time"`
	TimeAt time.Time `json:"TimeAt"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() {
			return fallback
		}
		zero := reflect.Zero(rv.Type()).Interface()
		if reflect.DeepEqual(value, zero) {
			return fallback
		}
		return value
	}
}

func baseFuncs() map[string]any {
	return map[string]any{
		"now":     func() time.Time { return time.Now().UTC() },
		"upper":   strings.ToUpper,
		"default": defaultFn,
	}
}

// Template names
const (
	Welcome = "welcome"
)

// set is one parsed template family: <name>.subject.tmpl, .text.tmpl, .html.tmpl.
type set struct {
	subject *texttpl.Template
	text    *texttpl.Template
	html    *htmpl.Template
}

var (
	mu     sync.Mutex
	parsed = map[string]*set{}
)

func load(name string) (*set, error) {
	mu.Lock()
	defer mu.Unlock()
	if s, ok := parsed[name]; ok {
		return s, nil
	}

	funcs := baseFuncs()
	subj, err := texttpl.New(name+".subject.tmpl").Funcs(funcs).ParseFS(FS, name+".subject.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse %s subject: %w", name, err)
	}
	text, err := texttpl.New(name+".text.tmpl").Funcs(funcs).ParseFS(FS, name+".text.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse %s text: %w", name, err)
	}
	html, err := htmpl.New(name+".html.tmpl").Funcs(funcs).ParseFS(FS, name+".html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse %s html: %w", name, err)
	}
	s := &set{subject: subj, text: text, html: html}
	parsed[name] = s
	return s, nil
}

type executor interface {
	Execute(w io.Writer, data any) error
}

func execute(t executor, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render renders subject, text and html for the template family name.
func Render(name string, data any) (subject string, text string, html string, err error) {
	s, err := load(name)
	if err != nil {
		return "", "", "", err
	}
	if subject, err = execute(s.subject, data); err != nil {
		return "", "", "", fmt.Errorf("exec %s subject: %w", name, err)
	}
	if text, err = execute(s.text, data); err != nil {
		return "", "", "", fmt.Errorf("exec %s text: %w", name, err)
	}
	if html, err = execute(s.html, data); err != nil {
		return "", "", "", fmt.Errorf("exec %s html: %w", name, err)
	}
	return strings.TrimSpace(subject), text, html, nil
}
