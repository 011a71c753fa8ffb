package soap

import (
	"sort"
	"strings"
)

const (
	NsSoapEnv = "http://schemas.xmlsoap.org/soap/envelope/"

	// DefaultNamespace is the target namespace every İETT asmx service is published under
	DefaultNamespace = "http://tempuri.org/"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML escapes the five XML metacharacters in s
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// BuildEnvelope renders a SOAP 1.1 request envelope calling method in the default namespace
func BuildEnvelope(method string, params map[string]string) string {
	return BuildEnvelopeNS(DefaultNamespace, method, params)
}

// BuildEnvelopeNS renders a SOAP 1.1 request envelope calling method in namespace.
// Each parameter becomes a child element of the method element. Parameters are written
// sorted by name so the same call always produces the same body.
func BuildEnvelopeNS(namespace string, method string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	b.WriteString(`<soap:Envelope xmlns:soap="` + NsSoapEnv + `" xmlns:tem="` + EscapeXML(namespace) + `">`)
	b.WriteString(`<soap:Body>`)
	b.WriteString(`<tem:` + method + `>`)

	for _, name := range names {
		b.WriteString(`<tem:` + name + `>`)
		b.WriteString(EscapeXML(params[name]))
		b.WriteString(`</tem:` + name + `>`)
	}

	b.WriteString(`</tem:` + method + `>`)
	b.WriteString(`</soap:Body>`)
	b.WriteString(`</soap:Envelope>`)

	return b.String()
}
