package articles

import "gitlab.com/golang-commonmark/markdown"

var md = markdown.New(
	markdown.HTML(false),
	markdown.Linkify(true),
	markdown.Breaks(false),
)

// RenderBody translates an article body from CommonMark to HTML. Raw
// HTML in the source is escaped since article authors are not trusted
// to inject markup.
func RenderBody(body string) string {
	return md.RenderToString([]byte(body))
}
