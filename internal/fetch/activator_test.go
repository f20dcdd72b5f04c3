package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zolikazer/forktimize-autocart/internal/testhelpers"
)

func buttonFrom(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	button := doc.Find("button, a").First()
	require.Equal(t, 1, button.Length())
	return button
}

func TestDescribeAction(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		wantAction string
		wantMethod string
	}{
		{
			name:       "formaction wins",
			html:       `<button formaction="/cart/add" data-action="/other"></button>`,
			wantAction: "/cart/add",
			wantMethod: http.MethodPost,
		},
		{
			name:       "data-action",
			html:       `<button data-action="/cart/add"></button>`,
			wantAction: "/cart/add",
			wantMethod: http.MethodPost,
		},
		{
			name:       "href implies GET",
			html:       `<a href="/cart/add"></a>`,
			wantAction: "/cart/add",
			wantMethod: http.MethodGet,
		},
		{
			name:       "enclosing form",
			html:       `<form action="/cart" method="put"><button></button></form>`,
			wantAction: "/cart",
			wantMethod: http.MethodPut,
		},
		{
			name:       "data-method override",
			html:       `<button data-action="/cart/add" data-method="delete"></button>`,
			wantAction: "/cart/add",
			wantMethod: http.MethodDelete,
		},
		{
			name:       "nothing to act on",
			html:       `<button></button>`,
			wantAction: "",
			wantMethod: http.MethodPost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, method := describeAction(buttonFrom(t, tt.html))
			assert.Equal(t, tt.wantAction, action)
			assert.Equal(t, tt.wantMethod, method)
		})
	}
}

func TestHTTPActivator_Activate(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	activator, err := NewHTTPActivator(server.Client(), server.URL+"/menu", testhelpers.NewTestLogger())
	require.NoError(t, err)

	button := buttonFrom(t, `<button data-action="/cart/add"></button>`)
	require.NoError(t, activator.Activate(context.Background(), button))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/cart/add", gotPath)
}

func TestHTTPActivator_NoAction(t *testing.T) {
	activator, err := NewHTTPActivator(http.DefaultClient, "https://rendel.cityfood.hu/", testhelpers.NewTestLogger())
	require.NoError(t, err)

	button := buttonFrom(t, `<button aria-label="Kosárhoz adás: Pizza"></button>`)
	assert.ErrorIs(t, activator.Activate(context.Background(), button), ErrNoAction)
}

func TestHTTPActivator_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	activator, err := NewHTTPActivator(server.Client(), server.URL, testhelpers.NewTestLogger())
	require.NoError(t, err)

	button := buttonFrom(t, `<button data-action="/cart/add"></button>`)
	activateErr := activator.Activate(context.Background(), button)
	require.Error(t, activateErr)
	assert.Contains(t, activateErr.Error(), "status 403")
}
