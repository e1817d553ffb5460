package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Ebzefr/WebSecura/models"
)

// Admin endpoints are gated server side by admin_id. The client only sends
// it; enforcement is the backend's job.

func (c *Client) AdminStats(ctx context.Context, adminID int64) (*models.AdminStats, error) {
	const op = "admin stats"
	body, err := c.do(ctx, op, http.MethodGet, "/api/admin/stats", userQuery("admin_id", adminID), nil)
	if err != nil {
		return nil, err
	}
	var st models.AdminStats
	if err := decode(op, []byte(locate(body, "stats").Raw), &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *Client) AdminUsers(ctx context.Context, adminID int64) ([]models.AdminUser, error) {
	const op = "admin users"
	body, err := c.do(ctx, op, http.MethodGet, "/api/admin/users", userQuery("admin_id", adminID), nil)
	if err != nil {
		return nil, err
	}
	list := locate(body, "users", "data")
	if !list.IsArray() {
		return nil, &ShapeError{Op: op, ContentType: "application/json", Err: errors.New("no users array in response")}
	}
	users := []models.AdminUser{}
	if err := decode(op, []byte(list.Raw), &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) AdminUpdateUser(ctx context.Context, userID int64, upd models.AdminUserUpdate) error {
	_, err := c.do(ctx, "admin user update", http.MethodPut, fmt.Sprintf("/api/admin/users/%d", userID), nil, upd)
	return err
}

// AdminDeactivateUser is destructive; callers confirm first.
func (c *Client) AdminDeactivateUser(ctx context.Context, adminID, userID int64) error {
	_, err := c.do(ctx, "admin user deactivate", http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", userID), userQuery("admin_id", adminID), nil)
	return err
}

func (c *Client) AdminMessages(ctx context.Context, adminID int64) ([]models.ContactMessage, error) {
	const op = "admin messages"
	body, err := c.do(ctx, op, http.MethodGet, "/api/admin/messages", userQuery("admin_id", adminID), nil)
	if err != nil {
		return nil, err
	}
	list := locate(body, "messages", "data")
	if !list.IsArray() {
		return nil, &ShapeError{Op: op, ContentType: "application/json", Err: errors.New("no messages array in response")}
	}
	msgs := []models.ContactMessage{}
	if err := decode(op, []byte(list.Raw), &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// AdminDeleteMessage is destructive; callers confirm first.
func (c *Client) AdminDeleteMessage(ctx context.Context, adminID, messageID int64) error {
	_, err := c.do(ctx, "admin message delete", http.MethodDelete, fmt.Sprintf("/api/admin/messages/%d", messageID), userQuery("admin_id", adminID), nil)
	return err
}
