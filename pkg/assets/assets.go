package assets

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extract returns the absolute URLs of the stylesheets (<link rel="stylesheet" href>) and
// scripts (<script src>) referenced by an HTML page, resolved against baseURL.
// Stylesheets come first, duplicates are dropped and document order is kept.
func Extract(baseURL, page string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %s: %w", baseURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var refs []string
	doc.Find("link[href]").Each(func(_ int, sel *goquery.Selection) {
		if isStylesheet(sel.AttrOr("rel", "")) {
			refs = append(refs, sel.AttrOr("href", ""))
		}
	})
	doc.Find("script[src]").Each(func(_ int, sel *goquery.Selection) {
		refs = append(refs, sel.AttrOr("src", ""))
	})

	seen := make(map[string]bool)
	urls := []string{}
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		u, err := base.Parse(ref)
		if err != nil {
			continue
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			continue // data:, javascript: and friends
		}
		u.Fragment = ""
		abs := u.String()
		if !seen[abs] {
			seen[abs] = true
			urls = append(urls, abs)
		}
	}
	return urls, nil
}

func isStylesheet(rel string) bool {
	for _, token := range strings.Fields(strings.ToLower(rel)) {
		if token == "stylesheet" {
			return true
		}
	}
	return false
}
