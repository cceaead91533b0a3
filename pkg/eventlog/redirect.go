package eventlog

import (
	"fmt"
	"strings"
)

// Hop is one recorded intermediate response in a redirect chain.
type Hop struct {
	URL     string
	Status  int
	Headers map[string]string
}

// Location reads the hop's declared next destination from its headers.
// Header names are matched case-insensitively.
func (h Hop) Location() string {
	for k, v := range h.Headers {
		if strings.EqualFold(k, "location") {
			return v
		}
	}
	return ""
}

// RedirectChain is a response together with its redirect history, oldest hop
// first. URL is the terminal response's own URL.
type RedirectChain struct {
	Hops []Hop
	URL  string
}

// LogRedirect walks the response's redirect history and emits one behavior
// warning and one connection edge per hop, classifying and fetching the
// certificate of every URL it touches. It returns the final URL and whether
// resolution succeeded.
//
// With no history the response's own URL is classified and the call reports
// no redirect. The backward scan for the final URL is bounded to a single
// pass over the hops; if every URL in the chain is empty the resolution
// terminates with an unresolved outcome instead of looping.
func (d *Dispatcher) LogRedirect(chain *RedirectChain) (string, bool) {
	if chain == nil {
		return "", false
	}

	if len(chain.Hops) == 0 {
		if chain.URL != "" {
			d.col.URLs.ClassifyURL(chain.URL)
			d.col.Certs.FetchCertificate(chain.URL)
		}
		return "", false
	}

	final := chain.URL
	if final == "" {
		for i := len(chain.Hops) - 1; i >= 0; i-- {
			if chain.Hops[i].URL != "" {
				final = chain.Hops[i].URL
				break
			}
		}
	}

	for _, h := range chain.Hops {
		location := h.Location()

		d.AddBehaviorWarn(fmt.Sprintf("[HTTP Redirection (Status: %d)] Content-Location: %s --> Location: %s",
			h.Status, h.URL, location), "", "")
		d.LogConnection(h.URL, location, "http-redirect", nil)

		d.col.URLs.ClassifyURL(h.URL)
		d.col.Certs.FetchCertificate(h.URL)
	}

	if final == "" {
		return "", false
	}

	d.col.URLs.ClassifyURL(final)
	d.col.Certs.FetchCertificate(final)

	return final, true
}

// LogHrefRedirect records a document.location driven navigation from referer
// to url.
func (d *Dispatcher) LogHrefRedirect(referer, url string) {
	d.AddBehaviorWarn(fmt.Sprintf("[HREF Redirection (document.location)] Content-Location: %s --> Location: %s",
		referer, url), "", "")
	d.LogConnection(referer, url, "href", nil)
}
