package campaign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-marketing/internal/features/template"
	"go-marketing/pkg/filter"

	"github.com/d5/tengo/v2"
	"go.uber.org/zap"
)

// MessageSender delivers a rendered message to one customer over a channel.
// The default implementation only logs; real gateway integrations plug in here.
type MessageSender interface {
	Send(ctx context.Context, channel template.Channel, customer filter.CustomerRecord, message string) error
}

type LogMessageSender struct {
	Logger *zap.Logger
}

func NewLogMessageSender(logger *zap.Logger) MessageSender {
	return &LogMessageSender{Logger: logger}
}

func (s *LogMessageSender) Send(_ context.Context, channel template.Channel, customer filter.CustomerRecord, message string) error {
	recipient := customer.Phone
	if channel == template.ChannelEmail {
		recipient = customer.Email
	}
	if recipient == "" {
		return fmt.Errorf("customer %s has no recipient address for channel %s", customer.ID, channel)
	}

	s.Logger.Info("sending message",
		zap.String("channel", string(channel)),
		zap.String("customer", customer.ID),
		zap.String("recipient", recipient),
		zap.Int("length", len(message)))
	return nil
}

// ActionExecutor runs per-customer campaign actions.
type ActionExecutor interface {
	ExecuteActions(ctx context.Context, actions []CampaignAction, campaign *Campaign, customer filter.CustomerRecord, message string) error
	ExecuteAction(ctx context.Context, action CampaignAction, campaign *Campaign, customer filter.CustomerRecord, message string) error
}

type ActionExecutorImpl struct {
	sender     MessageSender
	httpClient *http.Client
	logger     *zap.Logger
}

func NewActionExecutor(sender MessageSender, logger *zap.Logger) ActionExecutor {
	return &ActionExecutorImpl{
		sender:     sender,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

func (e *ActionExecutorImpl) ExecuteActions(ctx context.Context, actions []CampaignAction, campaign *Campaign, customer filter.CustomerRecord, message string) error {
	var firstErr error
	for i, action := range actions {
		if err := e.ExecuteAction(ctx, action, campaign, customer, message); err != nil {
			e.logger.Warn("campaign action failed",
				zap.Int("index", i),
				zap.String("type", string(action.Type)),
				zap.String("customer", customer.ID),
				zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (e *ActionExecutorImpl) ExecuteAction(ctx context.Context, action CampaignAction, campaign *Campaign, customer filter.CustomerRecord, message string) error {
	switch action.Type {
	case ActionSendZalo:
		return e.sender.Send(ctx, template.ChannelZalo, customer, message)

	case ActionSendEmail:
		return e.sender.Send(ctx, template.ChannelEmail, customer, message)

	case ActionSendSMS:
		return e.sender.Send(ctx, template.ChannelSMS, customer, message)

	case ActionWebhook:
		return e.executeWebhook(ctx, action.Config, campaign, customer, message)

	case ActionRunScript:
		return e.executeRunScript(action.Config, campaign, customer, message)

	default:
		return fmt.Errorf("unsupported action type: %s", action.Type)
	}
}

func (e *ActionExecutorImpl) executeWebhook(ctx context.Context, config map[string]interface{}, campaign *Campaign, customer filter.CustomerRecord, message string) error {
	url, _ := config["url"].(string)
	method, _ := config["method"].(string)

	if url == "" {
		return fmt.Errorf("webhook URL is required")
	}
	if method == "" {
		method = http.MethodPost
	}

	payload := map[string]interface{}{
		"campaign":  campaign.Name,
		"customer":  customer,
		"message":   message,
		"timestamp": time.Now().Format(time.RFC3339),
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if headers, ok := config["headers"].(map[string]interface{}); ok {
		for key, value := range headers {
			req.Header.Set(key, fmt.Sprintf("%v", value))
		}
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	e.logger.Info("webhook sent", zap.String("url", url), zap.Int("status", resp.StatusCode))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned error status: %d", resp.StatusCode)
	}
	return nil
}

func (e *ActionExecutorImpl) executeRunScript(config map[string]interface{}, campaign *Campaign, customer filter.CustomerRecord, message string) error {
	scriptContent, _ := config["script"].(string)
	if scriptContent == "" {
		return fmt.Errorf("script content is required")
	}

	script := tengo.NewScript([]byte(scriptContent))

	script.Add("campaign", campaign.Name)
	script.Add("customer", customerToMap(customer))
	script.Add("message", message)

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("failed to compile script: %w", err)
	}
	if err := compiled.Run(); err != nil {
		return fmt.Errorf("failed to run script: %w", err)
	}

	e.logger.Debug("executed script", zap.String("campaign", campaign.Name), zap.String("customer", customer.ID))
	return nil
}

// customerToMap exposes the customer to scripts as plain tengo-compatible values.
func customerToMap(c filter.CustomerRecord) map[string]interface{} {
	return map[string]interface{}{
		"id":             c.ID,
		"group":          c.Group,
		"name":           c.Name,
		"phone":          c.Phone,
		"email":          c.Email,
		"address":        c.Address,
		"delivery_area":  c.DeliveryArea,
		"total_spent":    c.TotalSpent,
		"loyalty_points": c.LoyaltyPoints,
		"total_debt":     c.TotalDebt,
		"status":         c.Status,
	}
}
