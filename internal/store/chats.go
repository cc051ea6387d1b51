package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Chat is one conversation thread.
type Chat struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is one turn within a chat. Role is "user" or "assistant".
type Message struct {
	ID        int64     `json:"id"`
	ChatID    uuid.UUID `json:"chat_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateChat inserts a new chat and returns it.
func (s *Store) CreateChat(ctx context.Context, title string) (*Chat, error) {
	if title == "" {
		title = "New chat"
	}

	chat := &Chat{ID: uuid.New(), Title: title}
	row := s.pool.QueryRow(ctx,
		`INSERT INTO chats (id, title) VALUES ($1, $2) RETURNING created_at, updated_at`,
		chat.ID, chat.Title)
	if err := row.Scan(&chat.CreatedAt, &chat.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	return chat, nil
}

// GetChat looks up one chat by id.
func (s *Store) GetChat(ctx context.Context, id uuid.UUID) (*Chat, error) {
	chat := &Chat{ID: id}
	row := s.pool.QueryRow(ctx,
		`SELECT title, created_at, updated_at FROM chats WHERE id = $1`, id)
	if err := row.Scan(&chat.Title, &chat.CreatedAt, &chat.UpdatedAt); err != nil {
		return nil, scanError(fmt.Sprintf("failed to get chat %s", id), err)
	}
	return chat, nil
}

// ListChats returns all chats, most recently updated first.
func (s *Store) ListChats(ctx context.Context) ([]Chat, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, title, created_at, updated_at FROM chats ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	chats := []Chat{}
	for rows.Next() {
		var c Chat
		if err := rows.Scan(&c.ID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, c)
	}

	return chats, rows.Err()
}

// AppendMessage adds one message to a chat and bumps the chat's updated_at.
func (s *Store) AppendMessage(ctx context.Context, chatID uuid.UUID, role, content string) (*Message, error) {
	msg := &Message{ChatID: chatID, Role: role, Content: content}
	row := s.pool.QueryRow(ctx,
		`INSERT INTO messages (chat_id, role, content) VALUES ($1, $2, $3) RETURNING id, created_at`,
		chatID, role, content)
	if err := row.Scan(&msg.ID, &msg.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}

	if _, err := s.pool.Exec(ctx,
		`UPDATE chats SET updated_at = now() WHERE id = $1`, chatID); err != nil {
		return nil, fmt.Errorf("failed to touch chat: %w", err)
	}

	return msg, nil
}

// GetMessages returns a chat's messages in insertion order.
func (s *Store) GetMessages(ctx context.Context, chatID uuid.UUID) ([]Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, role, content, created_at FROM messages WHERE chat_id = $1 ORDER BY id`,
		chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	defer rows.Close()

	msgs := []Message{}
	for rows.Next() {
		m := Message{ChatID: chatID}
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msgs = append(msgs, m)
	}

	return msgs, rows.Err()
}

// RenameChat updates a chat's title.
func (s *Store) RenameChat(ctx context.Context, id uuid.UUID, title string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE chats SET title = $1, updated_at = now() WHERE id = $2`, title, id)
	if err != nil {
		return fmt.Errorf("failed to rename chat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteChat removes a chat and, via cascade, its messages.
func (s *Store) DeleteChat(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM chats WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
