package notification

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
	texttemplate "text/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/dmitrymomot/contactform/pkg/form"
)

//go:embed templates
var defaultTemplates embed.FS

// Defaults used when no option overrides them.
const (
	DefaultSubjectPrefix = "[Contact Form] "
	defaultTemplateName  = "contact.md"
	defaultLayoutName    = "layouts/base.html"
	timestampFormat      = time.RFC1123
)

// Renderer converts validated submissions into notifications.
// It is safe for concurrent use: parsed templates are cached behind a RWMutex.
type Renderer struct {
	fsys          fs.FS
	md            goldmark.Markdown
	policy        *bluemonday.Policy
	subjectPrefix string
	templateName  string
	layoutName    string

	templateCache map[string]*cachedTemplate
	layoutCache   map[string]*template.Template
	mu            sync.RWMutex
}

// cachedTemplate holds a parsed template for reuse across requests.
type cachedTemplate struct {
	metadata map[string]any
	tmpl     *texttemplate.Template
}

// Option configures the renderer.
type Option func(*Renderer)

// WithFS overrides the embedded template filesystem.
// The filesystem must contain the template and layout files.
func WithFS(fsys fs.FS) Option {
	return func(r *Renderer) {
		if fsys != nil {
			r.fsys = fsys
		}
	}
}

// WithSubjectPrefix overrides the subject-line prefix.
// Takes precedence over the template's frontmatter Subject.
func WithSubjectPrefix(prefix string) Option {
	return func(r *Renderer) {
		r.subjectPrefix = prefix
	}
}

// WithTemplate sets the markdown template file name.
func WithTemplate(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.templateName = name
		}
	}
}

// WithLayout sets the HTML layout file name.
func WithLayout(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.layoutName = name
		}
	}
}

// NewRenderer creates a renderer backed by the embedded default templates.
func NewRenderer(opts ...Option) *Renderer {
	fsys, err := fs.Sub(defaultTemplates, "templates")
	if err != nil {
		// Unreachable: the embedded tree always contains "templates".
		panic(err)
	}

	r := &Renderer{
		fsys:          fsys,
		md:            goldmark.New(),
		policy:        bluemonday.UGCPolicy(),
		templateName:  defaultTemplateName,
		layoutName:    defaultLayoutName,
		templateCache: make(map[string]*cachedTemplate),
		layoutCache:   make(map[string]*template.Template),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// templateData is the value set interpolated into the notification template.
type templateData struct {
	Name       string
	Email      string
	Subject    string
	Message    string
	ReceivedAt string
}

// Render produces a notification from a validated submission.
// Deterministic given (sub, now): the timestamp in both bodies and SentAt
// derive from now, normalized to UTC.
func (r *Renderer) Render(sub form.Normalized, now time.Time) (*Notification, error) {
	cached, err := r.getTemplate(r.templateName)
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	data := templateData{
		Name:       sub.Name,
		Email:      sub.Email,
		Subject:    sub.Subject,
		Message:    sub.Message,
		ReceivedAt: now.Format(timestampFormat),
	}

	var markdown bytes.Buffer
	if err := cached.tmpl.Execute(&markdown, data); err != nil {
		return nil, fmt.Errorf("%w: execute template: %v", ErrRenderFailed, err)
	}

	// The processed markdown doubles as the plain-text body, so field
	// values survive verbatim in the text variant.
	textBody := markdown.String()

	var converted bytes.Buffer
	if err := r.md.Convert(markdown.Bytes(), &converted); err != nil {
		return nil, fmt.Errorf("%w: convert markdown: %v", ErrRenderFailed, err)
	}

	// Second line of defense after goldmark's raw-HTML suppression.
	safeFragment := r.policy.Sanitize(converted.String())

	layoutTmpl, err := r.getLayout(r.layoutName)
	if err != nil {
		return nil, err
	}

	subjectLine := r.resolvePrefix(cached.metadata) + sub.Subject

	var htmlBody bytes.Buffer
	layoutData := map[string]any{
		"Title":   subjectLine,
		"Content": template.HTML(safeFragment), //nolint:gosec // sanitized above
	}
	if err := layoutTmpl.Execute(&htmlBody, layoutData); err != nil {
		return nil, fmt.Errorf("%w: execute layout: %v", ErrRenderFailed, err)
	}

	return &Notification{
		SubjectLine: subjectLine,
		HTMLBody:    htmlBody.String(),
		TextBody:    textBody,
		ReplyTo:     sub.Email,
		SentAt:      now,
	}, nil
}

// resolvePrefix picks the subject prefix: explicit option, then template
// frontmatter, then the package default.
func (r *Renderer) resolvePrefix(metadata map[string]any) string {
	if r.subjectPrefix != "" {
		return r.subjectPrefix
	}
	if prefix, ok := metadata["Subject"].(string); ok && prefix != "" {
		return prefix
	}
	return DefaultSubjectPrefix
}

func (r *Renderer) getTemplate(name string) (*cachedTemplate, error) {
	r.mu.RLock()
	if cached, ok := r.templateCache[name]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.templateCache[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fsys, path.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}

	parsed, err := parseFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	tmpl, err := texttemplate.New(name).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse template body: %v", ErrRenderFailed, err)
	}

	cached := &cachedTemplate{metadata: parsed.Metadata, tmpl: tmpl}
	r.templateCache[name] = cached
	return cached, nil
}

func (r *Renderer) getLayout(name string) (*template.Template, error) {
	r.mu.RLock()
	if cached, ok := r.layoutCache[name]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.layoutCache[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fsys, path.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	layoutTmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: parse layout: %v", ErrRenderFailed, err)
	}

	r.layoutCache[name] = layoutTmpl
	return layoutTmpl, nil
}
