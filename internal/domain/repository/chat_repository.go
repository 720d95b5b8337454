package repository

import (
	"context"
	"database/sql"
	"fmt"

	"leet_tracker/internal/common"
	"leet_tracker/internal/domain/model"
)

type ChatRepository interface {
	// ListByProblem returns the conversation oldest first. A problem owned
	// by someone else yields an empty list.
	ListByProblem(ctx context.Context, problemID int64, userID string) ([]model.ChatMessage, error)
	// AppendExchange stores a user turn and its reply atomically.
	AppendExchange(ctx context.Context, userMsg, aiMsg *model.ChatMessage) error
}

type sqlChatRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewChatRepository(db *sql.DB, dialect Dialect) ChatRepository {
	return &sqlChatRepository{db: db, dialect: dialect}
}

func (r *sqlChatRepository) ListByProblem(ctx context.Context, problemID int64, userID string) ([]model.ChatMessage, error) {
	query := r.dialect.rebind(`SELECT id, problem_id, user_id, exchange_id, message, is_ai, created_at
	          FROM chat_messages
	          WHERE problem_id = ? AND user_id = ?
	          ORDER BY created_at ASC, id ASC`)

	rows, err := r.db.QueryContext(ctx, query, problemID, userID)
	if err != nil {
		return nil, fmt.Errorf("chatRepository.ListByProblem query: %w", err)
	}
	defer rows.Close()

	messages := []model.ChatMessage{}
	for rows.Next() {
		var (
			m         model.ChatMessage
			isAI      dbBool
			createdAt dbTime
		)
		if err := rows.Scan(&m.ID, &m.ProblemID, &m.UserID, &m.ExchangeID, &m.Message, &isAI, &createdAt); err != nil {
			return nil, fmt.Errorf("chatRepository.ListByProblem scan: %w", err)
		}
		m.IsAI = isAI.Bool
		m.CreatedAt = createdAt.Time
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("chatRepository.ListByProblem rows.Err: %w", err)
	}
	return messages, nil
}

func (r *sqlChatRepository) AppendExchange(ctx context.Context, userMsg, aiMsg *model.ChatMessage) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("chatRepository.AppendExchange begin: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	if err := r.insert(ctx, tx, userMsg); err != nil {
		return err
	}
	if err := r.insert(ctx, tx, aiMsg); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("chatRepository.AppendExchange commit: %w", err)
	}
	return nil
}

func (r *sqlChatRepository) insert(ctx context.Context, q querier, msg *model.ChatMessage) error {
	query := r.dialect.rebind(`INSERT INTO chat_messages (problem_id, user_id, exchange_id, message, is_ai, created_at)
	          VALUES (?, ?, ?, ?, ?, ?)
	          RETURNING id`)

	now := r.dialect.now()
	err := q.QueryRowContext(ctx, query,
		msg.ProblemID, msg.UserID, msg.ExchangeID, msg.Message, r.dialect.encodeBool(msg.IsAI), r.dialect.encodeTime(now),
	).Scan(&msg.ID)
	if err != nil {
		if r.dialect.isForeignKeyViolation(err) {
			return fmt.Errorf("problem %d: %w", msg.ProblemID, common.ErrNotFound)
		}
		return fmt.Errorf("chatRepository.insert: %w", err)
	}
	msg.CreatedAt = now
	return nil
}
