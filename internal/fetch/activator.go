package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Zolikazer/forktimize-autocart/internal/logger"
)

// ErrNoAction is returned when an add control describes no request to issue.
var ErrNoAction = errors.New("add control exposes no action URL")

// HTTPActivator actuates an add-to-cart control by issuing the HTTP request
// the control describes. The action URL is taken from the control's
// formaction, data-action or href attribute, or its enclosing form, and
// resolved against the fetched page's URL.
//
// A 2xx/3xx response means the control was actuated; whether the vendor's
// backend registered the item is not verified here.
type HTTPActivator struct {
	client *http.Client
	base   *url.URL
	log    logger.Logger
}

// NewHTTPActivator creates an activator resolving actions against baseURL.
func NewHTTPActivator(client *http.Client, baseURL string, log logger.Logger) (*HTTPActivator, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	return &HTTPActivator{
		client: client,
		base:   base,
		log:    log,
	}, nil
}

// Activate issues the request described by the control.
func (a *HTTPActivator) Activate(ctx context.Context, button *goquery.Selection) error {
	action, method := describeAction(button)
	if action == "" {
		return ErrNoAction
	}

	ref, err := url.Parse(action)
	if err != nil {
		return fmt.Errorf("parse action URL %q: %w", action, err)
	}
	target := a.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, method, target.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create action request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("actuate add control: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("add control returned status %d", resp.StatusCode)
	}

	a.log.Debug("Add control actuated",
		logger.String("url", target.String()),
		logger.Int("status", resp.StatusCode),
	)
	return nil
}

// describeAction extracts the action URL and HTTP method from the control.
func describeAction(button *goquery.Selection) (action, method string) {
	method = http.MethodPost

	if v, ok := button.Attr("formaction"); ok && v != "" {
		action = v
	} else if v, ok := button.Attr("data-action"); ok && v != "" {
		action = v
	} else if v, ok := button.Attr("href"); ok && v != "" {
		action = v
		method = http.MethodGet
	} else if form := button.Closest("form"); form.Length() > 0 {
		action, _ = form.Attr("action")
		if m, ok := form.Attr("method"); ok && m != "" {
			method = strings.ToUpper(m)
		}
	}

	if m, ok := button.Attr("data-method"); ok && m != "" {
		method = strings.ToUpper(m)
	}
	return action, method
}
