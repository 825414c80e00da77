package statuspage

import (
	"bytes"
	_ "embed"
	htmlTemplate "html/template"
	"net/http"
	"strconv"
	textTemplate "text/template"

	"github.com/golang/gddo/httputil/header"
	"github.com/icecave/relay/message"
)

// TemplateWriter builds status page responses in HTML or plain-text format
// using a template.
type TemplateWriter struct {
	HTMLTemplate *htmlTemplate.Template
	TextTemplate *textTemplate.Template
}

// TemplateContext holds the data needed to render a status page.
type TemplateContext struct {
	Code    int
	Text    string
	Message string
}

// Write returns a status page response for status, in reply to req.
//
// req may be nil, for example when the request could not be parsed, in which
// case a plain-text page is produced.
func (wr *TemplateWriter) Write(
	req *message.Request,
	status message.StatusCode,
) *message.Response {
	return wr.WriteMessage(req, status, StatusMessage(status))
}

// WriteMessage returns a status page response for status, in reply to req,
// including a custom message.
func (wr *TemplateWriter) WriteMessage(
	req *message.Request,
	status message.StatusCode,
	msg string,
) *message.Response {
	var buf bytes.Buffer
	var contentType string
	context := TemplateContext{
		status.Number(),
		status.ReasonPhrase(),
		msg,
	}

	if useHTML(req) {
		tmpl := wr.HTMLTemplate
		if tmpl == nil {
			tmpl = defaultHTMLTemplate
		}

		if err := tmpl.Execute(&buf, context); err == nil {
			contentType = "text/html"
		}
	}

	if contentType == "" {
		tmpl := wr.TextTemplate
		if tmpl == nil {
			tmpl = defaultTextTemplate
		}
		contentType = "text/plain"
		buf.Reset()
		tmpl.Execute(&buf, context)
	}

	return &message.Response{
		Status: status,
		Header: message.Header{
			"Content-Type":   contentType + "; charset=utf-8",
			"Content-Length": strconv.Itoa(buf.Len()),
		},
		Body: buf.String(),
	}
}

//go:embed assets/status-page.html
var statusPageHTML string

//go:embed assets/status-page.txt
var statusPageText string

var defaultHTMLTemplate *htmlTemplate.Template
var defaultTextTemplate *textTemplate.Template

func init() {
	defaultHTMLTemplate = htmlTemplate.Must(
		htmlTemplate.New("status-page").Parse(statusPageHTML),
	)
	defaultTextTemplate = textTemplate.Must(
		textTemplate.New("status-page").Parse(statusPageText),
	)
}

func useHTML(req *message.Request) bool {
	if req == nil {
		return false
	}

	accept, ok := req.Header.Get("Accept")
	if !ok {
		return false
	}

	htmlQ := -1.0
	textQ := 0.0

	h := http.Header{"Accept": {accept}}
	for _, spec := range header.ParseAccept(h, "Accept") {
		if spec.Value == "text/html" || spec.Value == "application/xhtml+xml" {
			if spec.Q > htmlQ {
				htmlQ = spec.Q
			}
		} else if spec.Value == "text/plain" || spec.Value == "*/*" {
			if spec.Q > textQ {
				textQ = spec.Q
			}
		}
	}

	return htmlQ > textQ
}
