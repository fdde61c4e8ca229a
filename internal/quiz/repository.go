package quiz

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"quizdesk/internal/storage"
)

// QuizStore is the repository surface the presentation layer depends on.
type QuizStore interface {
	ListQuizzes(ctx context.Context) ([]Quiz, error)
	GetQuiz(ctx context.Context, id int64) (Quiz, error)
	GetQuestions(ctx context.Context, quizID int64) ([]Question, error)
	CreateQuiz(ctx context.Context, title string, questions []Question) (int64, error)
	UpdateQuiz(ctx context.Context, id int64, title string, questions []Question) error
	DeleteQuiz(ctx context.Context, id int64) error
	ListResults(ctx context.Context) ([]Result, error)
	RecordResult(ctx context.Context, quizID int64, score, timeTaken int) (int64, error)
}

// Repository translates between domain entities and the three tables. It is
// the only place statement text lives; all values travel as bound parameters.
type Repository struct {
	store *storage.Store
}

func NewRepository(store *storage.Store) *Repository {
	return &Repository{store: store}
}

func (r *Repository) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	rows, err := r.store.QueryContext(ctx, `SELECT id, title FROM quizzes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quizzes := make([]Quiz, 0)
	for rows.Next() {
		var item Quiz
		if err := rows.Scan(&item.ID, &item.Title); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, item)
	}

	return quizzes, rows.Err()
}

func (r *Repository) GetQuiz(ctx context.Context, id int64) (Quiz, error) {
	var quiz Quiz
	err := r.store.QueryRowContext(
		ctx,
		`SELECT id, title FROM quizzes WHERE id = ?`,
		id,
	).Scan(&quiz.ID, &quiz.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrNotFound
		}
		return Quiz{}, err
	}
	return quiz, nil
}

// GetQuestions returns the quiz's questions ordered by id ascending so
// repeated session runs present them identically. An unknown quiz yields an
// empty slice, not an error.
func (r *Repository) GetQuestions(ctx context.Context, quizID int64) ([]Question, error) {
	rows, err := r.store.QueryContext(
		ctx,
		`SELECT id, quiz_id, question, correct_answer, option1, option2, option3, option4
		 FROM questions
		 WHERE quiz_id = ?
		 ORDER BY id ASC`,
		quizID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]Question, 0)
	for rows.Next() {
		var item Question
		if err := rows.Scan(
			&item.ID,
			&item.QuizID,
			&item.Text,
			&item.CorrectAnswer,
			&item.Options[0],
			&item.Options[1],
			&item.Options[2],
			&item.Options[3],
		); err != nil {
			return nil, err
		}
		questions = append(questions, item)
	}

	return questions, rows.Err()
}

// CreateQuiz validates the input, then inserts the quiz row and its
// questions as one atomic unit. The generated quiz id is read back inside
// the transaction and threaded into every question insert.
func (r *Repository) CreateQuiz(ctx context.Context, title string, questions []Question) (int64, error) {
	if err := validateQuizInput(title, questions); err != nil {
		return 0, err
	}

	var quizID int64
	err := r.store.WithTx(ctx, func(tx *sql.Tx) error {
		insert, err := tx.ExecContext(ctx, `INSERT INTO quizzes (title) VALUES (?)`, title)
		if err != nil {
			return err
		}

		quizID, err = insert.LastInsertId()
		if err != nil {
			return err
		}

		return insertQuestions(ctx, tx, quizID, questions)
	})
	if err != nil {
		return 0, err
	}
	return quizID, nil
}

// UpdateQuiz atomically renames the quiz and replaces its question set
// wholesale. Old questions are deleted, never diffed against the new ones.
func (r *Repository) UpdateQuiz(ctx context.Context, id int64, title string, questions []Question) error {
	if err := validateQuizInput(title, questions); err != nil {
		return err
	}

	return r.store.WithTx(ctx, func(tx *sql.Tx) error {
		update, err := tx.ExecContext(ctx, `UPDATE quizzes SET title = ? WHERE id = ?`, title, id)
		if err != nil {
			return err
		}
		affected, err := update.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE quiz_id = ?`, id); err != nil {
			return err
		}
		return insertQuestions(ctx, tx, id, questions)
	})
}

// DeleteQuiz removes the quiz row and all dependent questions in one unit.
// The schema carries no FK cascade, so the question delete here is what
// keeps orphans out. Deleting an unknown id is a no-op, not an error.
// Results are left alone so history outlives the quiz.
func (r *Repository) DeleteQuiz(ctx context.Context, id int64) error {
	return r.store.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE quiz_id = ?`, id)
		return err
	})
}

func (r *Repository) ListResults(ctx context.Context) ([]Result, error) {
	rows, err := r.store.QueryContext(
		ctx,
		`SELECT id, quiz_id, score, time_taken, created_at FROM results`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]Result, 0)
	for rows.Next() {
		var (
			item      Result
			createdAt string
		)
		if err := rows.Scan(&item.ID, &item.QuizID, &item.Score, &item.TimeTaken, &createdAt); err != nil {
			return nil, err
		}

		// RFC3339Nano also accepts the fractional-second form older
		// database files carry.
		item.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	return results, rows.Err()
}

// RecordResult inserts one immutable result row stamped with the current
// time. Rows written here are never updated or deleted.
func (r *Repository) RecordResult(ctx context.Context, quizID int64, score, timeTaken int) (int64, error) {
	insert, err := r.store.ExecContext(
		ctx,
		`INSERT INTO results (quiz_id, score, time_taken, created_at) VALUES (?, ?, ?, ?)`,
		quizID,
		score,
		timeTaken,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	return insert.LastInsertId()
}

func insertQuestions(ctx context.Context, tx *sql.Tx, quizID int64, questions []Question) error {
	for _, question := range questions {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO questions (quiz_id, question, correct_answer, option1, option2, option3, option4)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			quizID,
			question.Text,
			question.CorrectAnswer,
			question.Options[0],
			question.Options[1],
			question.Options[2],
			question.Options[3],
		)
		if err != nil {
			return err
		}
	}
	return nil
}
