package upstream

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// ErrNotFound is returned when the core backend reports a missing resource.
var ErrNotFound = errors.New("upstream: not found")

// ListFilters narrows the applications list server-side where the core
// backend supports it.
type ListFilters struct {
	OrganizationID string
	Status         string
	AssignedUserID string
	ListingID      string
	Search         string
}

func (f ListFilters) query() url.Values {
	q := url.Values{}
	if f.OrganizationID != "" {
		q.Set("organization_id", f.OrganizationID)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.AssignedUserID != "" {
		q.Set("assigned_user_id", f.AssignedUserID)
	}
	if f.ListingID != "" {
		q.Set("listing_id", f.ListingID)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

// ListApplications fetches raw application records for an organization.
func (c *Client) ListApplications(ctx context.Context, filters ListFilters) ([]map[string]any, error) {
	return c.FetchList(ctx, "/applications", filters.query())
}

// GetApplication fetches one raw application record.
func (c *Client) GetApplication(ctx context.Context, id string) (map[string]any, error) {
	return c.FetchOne(ctx, "/applications/"+url.PathEscape(id))
}

// StatusPatch is the payload of a status mutation.
type StatusPatch struct {
	Status         string `json:"status"`
	Note           string `json:"note,omitempty"`
	RejectedReason string `json:"rejected_reason,omitempty"`
}

// UpdateApplicationStatus forwards an accepted status transition.
func (c *Client) UpdateApplicationStatus(ctx context.Context, id string, patch StatusPatch) error {
	return c.PatchJSON(ctx, "/applications/"+url.PathEscape(id)+"/status", patch, nil)
}

// AssignApplication sets or clears the assigned member.
func (c *Client) AssignApplication(ctx context.Context, id, userID string) error {
	payload := map[string]any{"assigned_user_id": nil}
	if userID != "" {
		payload["assigned_user_id"] = userID
	}
	return c.PatchJSON(ctx, "/applications/"+url.PathEscape(id)+"/assignment", payload, nil)
}

// ConvertInput is the lease-conversion payload.
type ConvertInput struct {
	MonthlyRent   float64 `json:"monthly_rent"`
	DepositAmount float64 `json:"deposit_amount,omitempty"`
	StartDate     string  `json:"start_date"`
	Note          string  `json:"note,omitempty"`
}

// ConvertResult is the core backend's answer to a lease conversion.
type ConvertResult struct {
	LeaseID       string `json:"lease_id"`
	ApplicationID string `json:"application_id"`
	Status        string `json:"status"`
}

// ConvertToLease creates the lease record for an eligible application.
func (c *Client) ConvertToLease(ctx context.Context, id string, input ConvertInput) (ConvertResult, error) {
	var result ConvertResult
	err := c.PostJSON(ctx, "/applications/"+url.PathEscape(id)+"/convert-to-lease", input, &result)
	return result, err
}

// MemberOption is one assignable member of an organization.
type MemberOption struct {
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// ListMembers fetches an organization's members and flattens the nested
// app_users shape, which arrives as either one object or an array.
func (c *Client) ListMembers(ctx context.Context, orgID string) ([]MemberOption, error) {
	records, err := c.FetchList(ctx, "/organizations/"+url.PathEscape(orgID)+"/members", nil)
	if err != nil {
		return nil, err
	}

	options := make([]MemberOption, 0, len(records))
	for _, record := range records {
		option := flattenMember(record)
		if option.UserID != "" {
			options = append(options, option)
		}
	}
	return options, nil
}

func flattenMember(record map[string]any) MemberOption {
	option := MemberOption{UserID: recordString(record, "user_id")}

	var user map[string]any
	switch nested := record["app_users"].(type) {
	case map[string]any:
		user = nested
	case []any:
		if len(nested) > 0 {
			user, _ = nested[0].(map[string]any)
		}
	}
	if user != nil {
		option.FullName = recordString(user, "full_name")
		option.Email = recordString(user, "email")
	}
	return option
}

// ListMessageTemplates fetches raw message template records.
func (c *Client) ListMessageTemplates(ctx context.Context, orgID string) ([]map[string]any, error) {
	q := url.Values{}
	if orgID != "" {
		q.Set("organization_id", orgID)
	}
	return c.FetchList(ctx, "/message-templates", q)
}

// MessageLog is one queued outbound message awaiting dispatch.
type MessageLog struct {
	ID         string            `json:"id"`
	Channel    string            `json:"channel"`
	Recipient  string            `json:"recipient"`
	Subject    string            `json:"subject"`
	Body       string            `json:"body"`
	Payload    map[string]string `json:"payload"`
	Status     string            `json:"status"`
	RetryCount int               `json:"retry_count"`
}

// ListQueuedMessages fetches message logs awaiting delivery: the queued
// ones plus previously failed ones, which the dispatcher retries while
// they are under its attempt limit.
func (c *Client) ListQueuedMessages(ctx context.Context) ([]MessageLog, error) {
	queued, err := c.fetchMessageLogs(ctx, "queued")
	if err != nil {
		return nil, err
	}
	failed, err := c.fetchMessageLogs(ctx, "failed")
	if err != nil {
		return nil, err
	}
	return append(queued, failed...), nil
}

func (c *Client) fetchMessageLogs(ctx context.Context, status string) ([]MessageLog, error) {
	records, err := c.FetchList(ctx, "/message-logs", url.Values{"status": []string{status}})
	if err != nil {
		return nil, err
	}

	logs := make([]MessageLog, 0, len(records))
	for _, record := range records {
		logs = append(logs, MessageLog{
			ID:         recordString(record, "id"),
			Channel:    strings.ToLower(recordString(record, "channel")),
			Recipient:  recordString(record, "recipient"),
			Subject:    recordString(record, "subject"),
			Body:       recordString(record, "body"),
			Payload:    recordStringMap(record, "payload"),
			Status:     recordString(record, "status"),
			RetryCount: int(recordNumber(record, "retry_count")),
		})
	}
	return logs, nil
}

// MessageLogPatch updates the dispatch outcome of one message log.
type MessageLogPatch struct {
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	RetryCount int    `json:"retry_count"`
}

// UpdateMessageLog records the dispatch outcome upstream.
func (c *Client) UpdateMessageLog(ctx context.Context, id string, patch MessageLogPatch) error {
	return c.PatchJSON(ctx, "/message-logs/"+url.PathEscape(id), patch, nil)
}

func recordString(record map[string]any, key string) string {
	text, _ := record[key].(string)
	return strings.TrimSpace(text)
}

func recordNumber(record map[string]any, key string) float64 {
	n, _ := record[key].(float64)
	return n
}

func recordStringMap(record map[string]any, key string) map[string]string {
	raw, ok := record[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if text, ok := v.(string); ok {
			out[k] = text
		}
	}
	return out
}
