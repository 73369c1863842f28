// Package rest talks to the NetLicensing REST API: form-encoded requests in,
// JSON envelopes out.
package rest

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Resource paths under the service base URL.
const (
	ResourceProduct         = "product"
	ResourceProductModule   = "productmodule"
	ResourceLicenseTemplate = "licensetemplate"
	ResourceLicensee        = "licensee"
	ResourceLicense         = "license"
)

const (
	ParamFilter       = "filter"
	ParamForceCascade = "forceCascade"
)

// Request is one call to the service. Params are sent as the form body for
// POST and as the query string otherwise.
type Request struct {
	Method   string
	Resource string
	Number   string
	Params   url.Values
}

// Path returns the request path relative to the base URL.
func (r Request) Path() string {
	if r.Number == "" {
		return r.Resource
	}
	return r.Resource + "/" + url.PathEscape(r.Number)
}

// Transport sends a Request and returns the decoded envelope. Service error
// infos come back as *apierror.Error.
type Transport interface {
	Do(ctx context.Context, req Request) (*Envelope, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, req Request) (*Envelope, error)

func (f TransportFunc) Do(ctx context.Context, req Request) (*Envelope, error) {
	return f(ctx, req)
}

func Create(resource string, params url.Values) Request {
	return Request{Method: http.MethodPost, Resource: resource, Params: params}
}

func Get(resource, number string) Request {
	return Request{Method: http.MethodGet, Resource: resource, Number: number}
}

func List(resource, filter string) Request {
	req := Request{Method: http.MethodGet, Resource: resource}
	if filter = strings.TrimSpace(filter); filter != "" {
		req.Params = url.Values{ParamFilter: {filter}}
	}
	return req
}

func Update(resource, number string, params url.Values) Request {
	return Request{Method: http.MethodPost, Resource: resource, Number: number, Params: params}
}

func Delete(resource, number string, forceCascade bool) Request {
	params := url.Values{}
	if forceCascade {
		params.Set(ParamForceCascade, "true")
	}
	return Request{Method: http.MethodDelete, Resource: resource, Number: number, Params: params}
}
