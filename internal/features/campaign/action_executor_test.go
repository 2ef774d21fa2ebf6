package campaign

import (
	"context"
	"testing"

	"go-marketing/internal/features/template"
	"go-marketing/pkg/filter"

	"go.uber.org/zap"
)

func testExecutor() (ActionExecutor, *fakeSender) {
	sender := &fakeSender{}
	return NewActionExecutor(sender, zap.NewNop()), sender
}

func TestExecuteSendActions(t *testing.T) {
	exec, sender := testExecutor()
	ctx := context.Background()
	campaign := &Campaign{Name: "Test"}
	customer := filter.CustomerRecord{ID: "KH001", Phone: "0901", Email: "an@example.com"}

	cases := []struct {
		action  ActionType
		channel template.Channel
	}{
		{ActionSendZalo, template.ChannelZalo},
		{ActionSendEmail, template.ChannelEmail},
		{ActionSendSMS, template.ChannelSMS},
	}
	for _, tc := range cases {
		if err := exec.ExecuteAction(ctx, CampaignAction{Type: tc.action}, campaign, customer, "xin chào"); err != nil {
			t.Fatalf("%s: %v", tc.action, err)
		}
	}
	if len(sender.sent) != 3 {
		t.Fatalf("expected 3 sends, got %d", len(sender.sent))
	}
	for i, tc := range cases {
		if sender.sent[i].Channel != tc.channel {
			t.Fatalf("send %d went to %s, want %s", i, sender.sent[i].Channel, tc.channel)
		}
	}
}

func TestExecuteUnsupportedAction(t *testing.T) {
	exec, _ := testExecutor()
	err := exec.ExecuteAction(context.Background(), CampaignAction{Type: "dance"}, &Campaign{}, filter.CustomerRecord{}, "")
	if err == nil {
		t.Fatal("expected error for unsupported action type")
	}
}

func TestExecuteRunScript(t *testing.T) {
	exec, _ := testExecutor()
	ctx := context.Background()
	campaign := &Campaign{Name: "Script test"}
	customer := filter.CustomerRecord{ID: "KH001", Name: "An", TotalSpent: 500000}

	action := CampaignAction{
		Type: ActionRunScript,
		Config: map[string]interface{}{
			"script": `total := customer.total_spent * 2`,
		},
	}
	if err := exec.ExecuteAction(ctx, action, campaign, customer, "msg"); err != nil {
		t.Fatalf("run_script: %v", err)
	}
}

func TestExecuteRunScriptCompileError(t *testing.T) {
	exec, _ := testExecutor()
	action := CampaignAction{
		Type:   ActionRunScript,
		Config: map[string]interface{}{"script": `this is not a valid script ((`},
	}
	err := exec.ExecuteAction(context.Background(), action, &Campaign{}, filter.CustomerRecord{}, "")
	if err == nil {
		t.Fatal("expected compile error")
	}
}

func TestExecuteRunScriptRequiresContent(t *testing.T) {
	exec, _ := testExecutor()
	action := CampaignAction{Type: ActionRunScript, Config: map[string]interface{}{}}
	if err := exec.ExecuteAction(context.Background(), action, &Campaign{}, filter.CustomerRecord{}, ""); err == nil {
		t.Fatal("expected error for empty script")
	}
}

func TestExecuteWebhookRequiresURL(t *testing.T) {
	exec, _ := testExecutor()
	action := CampaignAction{Type: ActionWebhook, Config: map[string]interface{}{}}
	if err := exec.ExecuteAction(context.Background(), action, &Campaign{}, filter.CustomerRecord{}, ""); err == nil {
		t.Fatal("expected error for missing webhook url")
	}
}

func TestLogSenderRequiresRecipient(t *testing.T) {
	sender := NewLogMessageSender(zap.NewNop())
	err := sender.Send(context.Background(), template.ChannelEmail, filter.CustomerRecord{ID: "KH001"}, "hi")
	if err == nil {
		t.Fatal("expected error when customer has no email")
	}
}
