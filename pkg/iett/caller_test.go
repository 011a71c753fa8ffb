package iett

import (
	"context"
	"sync"

	"github.com/travigo/iett/pkg/soap"
)

type fakeCaller struct {
	mu        sync.Mutex
	responses map[string]string
	errors    map[string]error
	calls     []soap.Call
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{
		responses: map[string]string{},
		errors:    map[string]error{},
	}
}

func (f *fakeCaller) Call(ctx context.Context, call soap.Call) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, call)

	if err := f.errors[call.Method]; err != nil {
		return "", err
	}

	if body, ok := f.responses[call.Method+"|"+call.Params["DurakKodu"]]; ok {
		return body, nil
	}

	return f.responses[call.Method], nil
}

func (f *fakeCaller) callsFor(method string) []soap.Call {
	f.mu.Lock()
	defer f.mu.Unlock()

	var calls []soap.Call
	for _, call := range f.calls {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

func jsonResponse(method string, payload string) string {
	return `<?xml version="1.0" encoding="utf-8"?><soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>` +
		`<` + method + `Response xmlns="http://tempuri.org/"><` + method + `Result>` + soap.EscapeXML(payload) + `</` + method + `Result></` + method + `Response>` +
		`</soap:Body></soap:Envelope>`
}
