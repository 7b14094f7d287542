// Package notification renders validated contact submissions into outbound
// email notifications.
//
// The renderer processes a markdown template with YAML frontmatter: field
// values are interpolated with text/template, the resulting markdown becomes
// the plain-text body, and the HTML body is produced by converting the
// markdown with goldmark, sanitizing the fragment with bluemonday, and
// embedding it into an HTML layout.
//
// Rendering is deterministic given a submission and a timestamp. The default
// templates are embedded in the package; pass [WithFS] to supply custom ones.
//
// # Injection safety
//
// Raw HTML in interpolated values is neutralized twice: goldmark's default
// renderer does not pass raw HTML through, and the converted fragment is
// additionally filtered by a bluemonday UGC policy before it reaches the
// layout. The plain-text body carries field values verbatim.
package notification
