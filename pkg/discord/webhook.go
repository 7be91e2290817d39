package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// sendWithRetry sends a request with retry mechanism.
func (d *Discord) sendWithRetry(ctx context.Context, payload *WebhookPayload) error {
	var lastErr error

	for attempt := 0; attempt <= d.config.RetryCount; attempt++ {
		if attempt > 0 {
			d.l.Infof(ctx, "pkg.discord.webhook.sendWithRetry: retrying attempt %d/%d", attempt, d.config.RetryCount)
			time.Sleep(d.config.RetryDelay)
		}

		err := d.sendRequest(ctx, payload)
		if err == nil {
			return nil
		}

		lastErr = err
		d.l.Warnf(ctx, "pkg.discord.webhook.sendWithRetry: attempt %d failed: %v", attempt+1, err)
	}

	return fmt.Errorf("failed after %d attempts, last error: %w", d.config.RetryCount+1, lastErr)
}

// sendRequest sends a request to Discord webhook.
func (d *Discord) sendRequest(ctx context.Context, payload *WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", d.GetWebhookURL(), bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("discord webhook returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

func (d *Discord) sendEmbed(ctx context.Context, msgType MessageType, title, description string, fields []EmbedField) error {
	if d == nil {
		return nil
	}

	color := ColorInfo
	if msgType == MessageTypeError {
		color = ColorError
	}

	embed := Embed{
		Title:       truncateString(title, 256),
		Description: truncateString(description, 4096),
		Color:       color,
		Fields:      fields,
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	totalLength := len(embed.Title) + len(embed.Description)
	for _, field := range embed.Fields {
		totalLength += len(field.Name) + len(field.Value)
	}
	if totalLength > MaxEmbedLength {
		return fmt.Errorf("embed too long: %d characters (max: %d)", totalLength, MaxEmbedLength)
	}

	payload := &WebhookPayload{
		Embeds:   []Embed{embed},
		Username: d.config.DefaultUsername,
	}

	return d.sendWithRetry(ctx, payload)
}

// SendError sends an error report embed.
func (d *Discord) SendError(ctx context.Context, title, description string, err error) error {
	if d == nil {
		return nil
	}

	var fields []EmbedField
	if err != nil {
		fields = append(fields, EmbedField{
			Name:  "Error",
			Value: truncateString(err.Error(), 1024),
		})
	}

	return d.sendEmbed(ctx, MessageTypeError, title, description, fields)
}

// SendInfo sends an informational embed.
func (d *Discord) SendInfo(ctx context.Context, title, description string) error {
	if d == nil {
		return nil
	}
	return d.sendEmbed(ctx, MessageTypeInfo, title, description, nil)
}

// truncateString truncates a string if it exceeds the maximum length.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
