package quiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore lets a test fail the result write while the question read
// still succeeds.
type flakyStore struct {
	questions []Question
	recordErr error
	recorded  []Result
}

func (f *flakyStore) GetQuestions(_ context.Context, quizID int64) ([]Question, error) {
	return f.questions, nil
}

func (f *flakyStore) RecordResult(_ context.Context, quizID int64, score, timeTaken int) (int64, error) {
	if f.recordErr != nil {
		return 0, f.recordErr
	}
	f.recorded = append(f.recorded, Result{QuizID: quizID, Score: score, TimeTaken: timeTaken})
	return int64(len(f.recorded)), nil
}

func TestSessionCapitalsScenario(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	quizID, err := repo.CreateQuiz(ctx, "Capitals", []Question{
		NewQuestion("Capital of France?", "Paris", [OptionCount]string{"Paris", "Lyon", "Nice", "Tours"}),
	})
	require.NoError(t, err)

	t.Run("correct answer scores 1 of 1", func(t *testing.T) {
		session, err := StartSession(ctx, repo, quizID)
		require.NoError(t, err)
		assert.Equal(t, StatePresenting, session.State())

		question, index, err := session.Current()
		require.NoError(t, err)
		assert.Equal(t, 0, index)
		assert.Equal(t, "Capital of France?", question.Text)

		summary, err := session.Submit(ctx, "Paris")
		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, 1, summary.Score)
		assert.Equal(t, 1, summary.TotalQuestions)
		assert.True(t, summary.Passed)
		assert.Equal(t, StateFinished, session.State())
	})

	t.Run("wrong answer scores 0 of 1", func(t *testing.T) {
		session, err := StartSession(ctx, repo, quizID)
		require.NoError(t, err)

		summary, err := session.Submit(ctx, "Lyon")
		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, 0, summary.Score)
		assert.Equal(t, 1, summary.TotalQuestions)
		assert.False(t, summary.Passed)
	})
}

func TestSessionScoresKOfN(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	quizID, err := repo.CreateQuiz(ctx, "Mixed", []Question{
		NewQuestion("1+1?", "2", [OptionCount]string{"1", "2", "3", "4"}),
		NewQuestion("2+2?", "4", [OptionCount]string{"2", "3", "4", "5"}),
		NewQuestion("3+3?", "6", [OptionCount]string{"4", "5", "6", "7"}),
	})
	require.NoError(t, err)

	session, err := StartSession(ctx, repo, quizID)
	require.NoError(t, err)

	summary, err := session.Submit(ctx, "2")
	require.NoError(t, err)
	assert.Nil(t, summary, "summary must only appear on the final answer")

	summary, err = session.Submit(ctx, "5")
	require.NoError(t, err)
	assert.Nil(t, summary)

	summary, err = session.Submit(ctx, "6")
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.Score)
	assert.Equal(t, 3, summary.TotalQuestions)
	assert.GreaterOrEqual(t, summary.TimeTaken, 0)
	assert.True(t, summary.Passed, "2 of 3 meets the ceil(0.6*3)=2 bar")

	// The finished attempt is on record.
	results, err := repo.ListResults(ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, quizID, results[0].QuizID)
	assert.Equal(t, 2, results[0].Score)
}

func TestSessionComparesAnswersExactly(t *testing.T) {
	store := &flakyStore{questions: []Question{
		NewQuestion("Capital of France?", "Paris", [OptionCount]string{"Paris", "Lyon", "Nice", "Tours"}),
	}}

	session, err := StartSession(context.Background(), store, 1)
	require.NoError(t, err)

	// No trimming, no case folding.
	summary, err := session.Submit(context.Background(), "paris")
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 0, summary.Score)
}

func TestSubmitAfterFinishedIsInvalidState(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	quizID, err := repo.CreateQuiz(ctx, "One", []Question{
		NewQuestion("1+1?", "2", [OptionCount]string{"1", "2", "3", "4"}),
	})
	require.NoError(t, err)

	session, err := StartSession(ctx, repo, quizID)
	require.NoError(t, err)

	_, err = session.Submit(ctx, "2")
	require.NoError(t, err)

	_, err = session.Submit(ctx, "2")
	assert.ErrorIs(t, err, ErrInvalidState)

	_, _, err = session.Current()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSessionEmptyQuiz(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	// Unknown quiz id: the repository reports no questions rather than an
	// error, which lands the session in the empty terminal state.
	session, err := StartSession(ctx, repo, 12345)
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, session.State())
	assert.Equal(t, 0, session.TotalQuestions())

	_, err = session.Submit(ctx, "anything")
	assert.ErrorIs(t, err, ErrInvalidState)

	// No result row may appear for an empty session.
	results, err := repo.ListResults(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSessionResultWriteIsBestEffort(t *testing.T) {
	store := &flakyStore{
		questions: []Question{
			NewQuestion("1+1?", "2", [OptionCount]string{"1", "2", "3", "4"}),
		},
		recordErr: errors.New("disk full"),
	}

	session, err := StartSession(context.Background(), store, 1)
	require.NoError(t, err)

	summary, err := session.Submit(context.Background(), "2")
	assert.ErrorIs(t, err, ErrResultNotSaved)
	require.NotNil(t, summary, "score must reach the caller even when the write fails")
	assert.Equal(t, 1, summary.Score)
	assert.Equal(t, StateFinished, session.State())
}

func TestSessionElapsedSeconds(t *testing.T) {
	store := &flakyStore{questions: []Question{
		NewQuestion("1+1?", "2", [OptionCount]string{"1", "2", "3", "4"}),
	}}

	session, err := StartSession(context.Background(), store, 1)
	require.NoError(t, err)

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	session.startedAt = start
	session.now = func() time.Time { return start.Add(7900 * time.Millisecond) }

	summary, err := session.Submit(context.Background(), "2")
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 7, summary.TimeTaken, "elapsed time floors to whole seconds")

	require.Len(t, store.recorded, 1)
	assert.Equal(t, 7, store.recorded[0].TimeTaken)
}

func TestSessionElapsedNeverNegative(t *testing.T) {
	store := &flakyStore{questions: []Question{
		NewQuestion("1+1?", "2", [OptionCount]string{"1", "2", "3", "4"}),
	}}

	session, err := StartSession(context.Background(), store, 1)
	require.NoError(t, err)

	// Wall clock stepping backwards must not produce a negative duration.
	session.now = func() time.Time { return session.startedAt.Add(-3 * time.Second) }

	summary, err := session.Submit(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TimeTaken)
}

func TestPassThreshold(t *testing.T) {
	cases := []struct {
		total int
		want  int
	}{
		{total: 1, want: 1},
		{total: 2, want: 2},
		{total: 3, want: 2},
		{total: 5, want: 3},
		{total: 10, want: 6},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, passThreshold(tc.total), "total=%d", tc.total)
	}
}
