// Package fetcher downloads an external article and extracts the metadata
// shown on a trace card.
package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	readability "github.com/go-shiori/go-readability"

	"storymap-backend/internal/config"
	"storymap-backend/internal/shared/validate"
)

var (
	ErrForbiddenAddress = errors.New("destination address is not allowed")
	ErrBodyTooLarge     = errors.New("response body exceeds size limit")
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Metadata is what we could learn about a page. Empty fields were not found.
type Metadata struct {
	Title       string
	Description string
	Image       string
	SiteName    string
}

type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Metadata, error)
}

type ArticleFetcher struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
}

func NewArticleFetcher(cfg config.FetcherConfig) *ArticleFetcher {
	dialer := &net.Dialer{
		Timeout:   cfg.Timeout,
		KeepAlive: 30 * time.Second,
	}
	if !cfg.AllowPrivate {
		dialer.Control = refusePrivate
	}

	transport := &http.Transport{
		Proxy:                 nil,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   cfg.Timeout,
		ResponseHeaderTimeout: cfg.Timeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
	}

	return &ArticleFetcher{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return errors.New("stopped after 5 redirects")
				}
				if _, err := validate.ParseWebURL(req.URL.String()); err != nil {
					return err
				}
				return nil
			},
		},
		maxBytes:  cfg.MaxBytes,
		userAgent: cfg.UserAgent,
	}
}

// Fetch downloads rawURL (http/https only) and runs readability over it.
func (f *ArticleFetcher) Fetch(ctx context.Context, rawURL string) (*Metadata, error) {
	pageURL, err := validate.ParseWebURL(rawURL)
	if err != nil {
		return nil, err
	}

	body, err := f.download(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return nil, fmt.Errorf("extract article: %w", err)
	}

	meta := &Metadata{
		Title:       strings.TrimSpace(article.Title),
		Description: strings.TrimSpace(article.Excerpt),
		SiteName:    strings.TrimSpace(article.SiteName),
	}
	if image := strings.TrimSpace(article.Image); image != "" {
		meta.Image = resolveReference(pageURL, image)
	}

	return meta, nil
}

func (f *ArticleFetcher) download(ctx context.Context, pageURL *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, ErrForbiddenAddress) {
			return nil, ErrForbiddenAddress
		}
		return nil, fmt.Errorf("fetch %s: %w", pageURL.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if resp.ContentLength > f.maxBytes {
		return nil, ErrBodyTooLarge
	}

	// Read one extra byte to tell "exactly at the limit" from "truncated".
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, ErrBodyTooLarge
	}

	return body, nil
}

func resolveReference(base *url.URL, ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(u)
	if _, err := validate.ParseWebURL(resolved.String()); err != nil {
		return ""
	}
	return resolved.String()
}

// refusePrivate runs after DNS resolution, so it also catches public names
// that resolve to internal addresses.
func refusePrivate(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || isForbiddenIP(ip) {
		return ErrForbiddenAddress
	}
	return nil
}

func isForbiddenIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsMulticast()
}
