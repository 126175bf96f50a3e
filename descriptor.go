// descriptor.go
// -------------
// RequestDescriptor is the immutable description of one endpoint call:
// method, base URL, path template, and options fixed when the endpoint is
// declared. Its only behavior is expanding {name} segments of the path
// template; everything else happens in the pipeline and the dispatcher.
package batchbridge

import (
	"fmt"
	"strings"
)

// RequestDescriptor describes an endpoint call. Construct once, share freely.
type RequestDescriptor struct {
	Method  string
	BaseURL string
	Path    string
	Options *RequestOptions
}

// NewRequestDescriptor builds a descriptor. Fixed options may be nil.
func NewRequestDescriptor(method, baseURL, path string, options *RequestOptions) RequestDescriptor {
	return RequestDescriptor{
		Method:  method,
		BaseURL: baseURL,
		Path:    path,
		Options: options,
	}
}

// Expand joins the base URL and path, substituting {name} placeholders from
// vars. An unresolved placeholder is an error; unused vars are ignored.
func (d RequestDescriptor) Expand(vars map[string]string) (string, error) {
	path := d.Path
	for name, value := range vars {
		path = strings.ReplaceAll(path, "{"+name+"}", value)
	}
	if open := strings.Index(path, "{"); open >= 0 {
		if end := strings.Index(path[open:], "}"); end > 0 {
			return "", fmt.Errorf("path %q has unresolved placeholder %s", d.Path, path[open:open+end+1])
		}
	}
	return strings.TrimSuffix(d.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/"), nil
}
