package helpers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// RequestBaseURL returns {scheme}://{host} as seen by the client. X-Forwarded-Proto and
// X-Forwarded-Host are honored only when trustProxy is set.
func RequestBaseURL(r *http.Request, trustProxy bool) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	host := r.Host
	if trustProxy {
		if p := firstValue(r.Header.Get("X-Forwarded-Proto")); p == "http" || p == "https" {
			scheme = p
		}
		if h := firstValue(r.Header.Get("X-Forwarded-Host")); h != "" {
			host = h
		}
	}
	return scheme + "://" + host
}

// firstValue returns the first entry of a comma separated header added by a proxy chain.
func firstValue(v string) string {
	first, _, _ := strings.Cut(v, ",")
	return strings.TrimSpace(first)
}

// CheckInURL returns {base}/attendees/{attendeeId}/check-in/{checkInId}.
func CheckInURL(base string, attendeeID int64, checkInID string) string {
	return attendeeURL(base, attendeeID, "check-in", checkInID)
}

// BadgeURL returns {base}/attendees/{attendeeId}/badge/{checkInId}.
func BadgeURL(base string, attendeeID int64, checkInID string) string {
	return attendeeURL(base, attendeeID, "badge", checkInID)
}

func attendeeURL(base string, attendeeID int64, action, checkInID string) string {
	return strings.TrimSuffix(base, "/") + "/attendees/" + strconv.FormatInt(attendeeID, 10) + "/" + action + "/" + url.PathEscape(checkInID)
}

// Links builds attendee links against a fixed public base URL. It implements domain.LinkBuilder.
type Links struct {
	BaseURL string
}

// NewLinks returns a Links for baseURL (e.g. https://pass.example.com).
func NewLinks(baseURL string) *Links {
	return &Links{BaseURL: baseURL}
}

func (l *Links) BadgeURL(attendeeID int64, checkInID string) string {
	return BadgeURL(l.BaseURL, attendeeID, checkInID)
}

func (l *Links) CheckInURL(attendeeID int64, checkInID string) string {
	return CheckInURL(l.BaseURL, attendeeID, checkInID)
}
