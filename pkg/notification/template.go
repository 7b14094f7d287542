package notification

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// frontmatterDelimiter separates YAML metadata from the markdown body.
var frontmatterDelimiter = []byte("---")

// parsedTemplate is a template file split into metadata and markdown body.
type parsedTemplate struct {
	Metadata map[string]any
	Body     string
}

// parseFrontmatter splits template content into YAML frontmatter and body.
// Content without a leading delimiter is returned whole with empty metadata.
func parseFrontmatter(content []byte) (*parsedTemplate, error) {
	if !bytes.HasPrefix(content, frontmatterDelimiter) {
		return &parsedTemplate{Metadata: map[string]any{}, Body: string(content)}, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, frontmatterDelimiter), "\r\n")
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	end := bytes.Index(rest, frontmatterDelimiter)
	if end == -1 {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	head := rest[:end]
	body := rest[end+len(frontmatterDelimiter):]
	body = bytes.TrimPrefix(body, []byte("\r\n"))
	body = bytes.TrimPrefix(body, []byte("\n"))

	metadata := map[string]any{}
	if len(bytes.TrimSpace(head)) > 0 {
		if err := yaml.Unmarshal(head, &metadata); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &parsedTemplate{Metadata: metadata, Body: string(body)}, nil
}
