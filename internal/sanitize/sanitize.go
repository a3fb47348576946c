// Package sanitize strips unsafe markup from rich-text content before it is
// persisted. Post content is rendered unescaped on the client, so this is
// the sole XSS defense and runs on every mutating path.
package sanitize

import "github.com/microcosm-cc/bluemonday"

// policy is the default safe subset plus images and iframes with
// relative URLs permitted.
var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowRelativeURLs(true)
	p.AllowElements("iframe")
	p.AllowAttrs("src", "width", "height", "frameborder", "allowfullscreen").OnElements("iframe")
	return p
}()

// HTML returns content restricted to the allow-list. Empty content is a no-op.
func HTML(content string) string {
	if content == "" {
		return content
	}
	return policy.Sanitize(content)
}
