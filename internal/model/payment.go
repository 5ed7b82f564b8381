package model

import "strings"

type PaymentGateway struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Enabled     bool              `json:"enabled"`
	TestMode    bool              `json:"testMode"`
	Credentials map[string]string `json:"credentials"`
}

// RequiredCredentials lists the credential fields each gateway needs.
var RequiredCredentials = map[string][]string{
	"stripe": {"publicKey", "secretKey", "webhookSecret"},
	"paypal": {"clientId", "clientSecret", "webhookId"},
	"elavon": {"merchantId", "apiKey", "terminalId"},
}

var secretFields = map[string]bool{
	"secretKey":     true,
	"webhookSecret": true,
	"clientSecret":  true,
	"webhookId":     true,
	"apiKey":        true,
	"terminalId":    true,
}

// Configured reports whether every required credential is non-blank.
func (g PaymentGateway) Configured() bool {
	for _, f := range RequiredCredentials[g.ID] {
		if strings.TrimSpace(g.Credentials[f]) == "" {
			return false
		}
	}
	return true
}

// Redacted masks secret credentials down to their last four characters.
func (g PaymentGateway) Redacted() PaymentGateway {
	out := g
	out.Credentials = make(map[string]string, len(g.Credentials))
	for k, v := range g.Credentials {
		if secretFields[k] && v != "" {
			v = mask(v)
		}
		out.Credentials[k] = v
	}
	return out
}

func mask(v string) string {
	r := []rune(v)
	if len(r) <= 4 {
		return "••••"
	}
	return "••••" + string(r[len(r)-4:])
}
