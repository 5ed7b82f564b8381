package model

import "testing"

func TestGatewayConfigured(t *testing.T) {
	g := PaymentGateway{ID: "stripe", Credentials: map[string]string{
		"publicKey": "pk_test", "secretKey": "sk_test", "webhookSecret": "  ",
	}}
	if g.Configured() {
		t.Fatal("blank webhookSecret should leave gateway unconfigured")
	}
	g.Credentials["webhookSecret"] = "whsec_1"
	if !g.Configured() {
		t.Fatal("expected configured")
	}
}

func TestGatewayRedacted(t *testing.T) {
	g := PaymentGateway{ID: "paypal", Credentials: map[string]string{
		"clientId":     "client-123",
		"clientSecret": "supersecretvalue",
		"webhookId":    "abc",
	}}
	r := g.Redacted()
	if r.Credentials["clientId"] != "client-123" {
		t.Fatalf("public field masked: %q", r.Credentials["clientId"])
	}
	if r.Credentials["clientSecret"] != "••••alue" {
		t.Fatalf("secret not masked: %q", r.Credentials["clientSecret"])
	}
	if r.Credentials["webhookId"] != "••••" {
		t.Fatalf("short secret should be fully masked: %q", r.Credentials["webhookId"])
	}
	if g.Credentials["clientSecret"] != "supersecretvalue" {
		t.Fatal("Redacted modified the original")
	}
}
