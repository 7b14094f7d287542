package notification

import "errors"

var (
	// ErrTemplateNotFound indicates the notification template is missing.
	ErrTemplateNotFound = errors.New("notification template not found")

	// ErrLayoutNotFound indicates the HTML layout is missing.
	ErrLayoutNotFound = errors.New("notification layout not found")

	// ErrRenderFailed indicates template execution or conversion failed.
	ErrRenderFailed = errors.New("failed to render notification")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter in a template.
	ErrInvalidFrontmatter = errors.New("invalid template frontmatter")
)
