package scrape

import (
	"context"

	"github.com/pagelens/pagelens"
)

// Request actions understood by Handle.
const (
	ActionDetectSiteType = "DETECT_SITE_TYPE"
	ActionScrapeRequest  = "SCRAPE_REQUEST"
)

// Request is the message-boundary form of a coordinator call: an action
// plus the snapshot fields, JSON-shaped for transport.
type Request struct {
	Action   string                `json:"action"`
	URL      string                `json:"url"`
	Title    string                `json:"title,omitempty"`
	HTML     string                `json:"html"`
	Category pagelens.SiteCategory `json:"siteType,omitempty"`
}

// Response carries either a detected category, an extraction envelope,
// or an error describing a malformed request.
type Response struct {
	Category pagelens.SiteCategory `json:"siteType,omitempty"`
	Envelope *pagelens.Envelope    `json:"data,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// Handle serves one message-boundary request. Extraction failures are
// reported inside the envelope, not on the response; the response Error
// field is reserved for requests the coordinator cannot route at all.
func (c *Coordinator) Handle(ctx context.Context, req Request) Response {
	snap := pagelens.Snapshot{URL: req.URL, Title: req.Title, HTML: req.HTML}
	switch req.Action {
	case ActionDetectSiteType:
		return Response{Category: c.DetectSiteType(snap)}
	case ActionScrapeRequest:
		return Response{Envelope: c.Extract(ctx, snap, req.Category)}
	default:
		return Response{Error: pagelens.ErrorMessage(
			pagelens.Errorf(pagelens.EINVALID, "unknown action %q", req.Action))}
	}
}
