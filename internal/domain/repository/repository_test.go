package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leet_tracker/internal/common"
	"leet_tracker/internal/domain/model"
	"leet_tracker/internal/platform/config"
	"leet_tracker/internal/platform/database"
)

type testRepos struct {
	db       *sql.DB
	users    UserRepository
	problems ProblemRepository
	chat     ChatRepository
}

func setupTestRepos(t *testing.T) *testRepos {
	t.Helper()
	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(ctx, db, config.DriverSQLite))

	return &testRepos{
		db:       db,
		users:    NewUserRepository(db, SQLite),
		problems: NewProblemRepository(db, SQLite),
		chat:     NewChatRepository(db, SQLite),
	}
}

func createTestUser(t *testing.T, repos *testRepos, id string) {
	t.Helper()
	require.NoError(t, repos.users.EnsureExists(context.Background(), id))
}

func createTestProblem(t *testing.T, repos *testRepos, userID string, number int, difficulty model.ProblemDifficulty) *model.Problem {
	t.Helper()
	p := &model.Problem{
		UserID:        userID,
		ProblemNumber: number,
		Title:         fmt.Sprintf("Problem %d", number),
		Slug:          fmt.Sprintf("problem-%d", number),
		Difficulty:    difficulty,
		Category:      "Arrays",
		Description:   "Given an array of integers",
		Solution:      "return nums",
	}
	require.NoError(t, repos.problems.Create(context.Background(), p))
	return p
}

func TestProblemRoundTrip(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()
	createTestUser(t, repos, "alice")
	createTestUser(t, repos, "bob")

	in := &model.Problem{
		UserID:        "alice",
		ProblemNumber: 1,
		Title:         "Two Sum",
		Slug:          "two-sum",
		Difficulty:    model.DifficultyEasy,
		Category:      "Hash Table",
		Description:   "Find two numbers that add up to target.",
		Notes:         "Classic warm-up.",
		Solution:      "const seen = new Map();",
	}
	require.NoError(t, repos.problems.Create(ctx, in))
	require.NotZero(t, in.ID)
	assert.Equal(t, "https://leetcode.com/problems/two-sum/", in.LeetCodeURL)

	got, err := repos.problems.FindByID(ctx, in.ID, "alice")
	require.NoError(t, err)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("FindByID mismatch (-want +got):\n%s", diff)
	}

	_, err = repos.problems.FindByID(ctx, in.ID, "bob")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestProblemCreateUnknownOwner(t *testing.T) {
	repos := setupTestRepos(t)
	err := repos.problems.Create(context.Background(), &model.Problem{
		UserID: "ghost", ProblemNumber: 1, Title: "x", Difficulty: model.DifficultyEasy, Solution: "x",
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestProblemUpdate(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()
	createTestUser(t, repos, "alice")
	createTestUser(t, repos, "bob")
	p := createTestProblem(t, repos, "alice", 7, model.DifficultyEasy)

	title := "Reverse Integer"
	hard := model.DifficultyHard
	updated, err := repos.problems.Update(ctx, p.ID, "alice", model.ProblemPatch{Title: &title, Difficulty: &hard})
	require.NoError(t, err)
	assert.Equal(t, "Reverse Integer", updated.Title)
	assert.Equal(t, model.DifficultyHard, updated.Difficulty)
	assert.Equal(t, p.Solution, updated.Solution, "untouched fields survive")
	assert.False(t, updated.UpdatedAt.Before(p.UpdatedAt))

	_, err = repos.problems.Update(ctx, p.ID, "bob", model.ProblemPatch{Title: &title})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestProblemUpdateEmptyPatch(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()
	createTestUser(t, repos, "alice")
	p := createTestProblem(t, repos, "alice", 4, model.DifficultyEasy)

	same, err := repos.problems.Update(ctx, p.ID, "alice", model.ProblemPatch{})
	require.NoError(t, err)
	assert.Equal(t, p.Title, same.Title)
	assert.True(t, same.UpdatedAt.Equal(p.UpdatedAt), "an empty patch must not touch updated_at")

	_, err = repos.problems.Update(ctx, p.ID, "bob", model.ProblemPatch{})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestProblemDeleteCascadesChat(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()
	createTestUser(t, repos, "alice")
	p := createTestProblem(t, repos, "alice", 3, model.DifficultyMedium)

	require.NoError(t, repos.chat.AppendExchange(ctx,
		&model.ChatMessage{ProblemID: p.ID, UserID: "alice", ExchangeID: "x1", Message: "hi"},
		&model.ChatMessage{ProblemID: p.ID, UserID: "alice", ExchangeID: "x1", Message: "hello", IsAI: true},
	))
	msgs, err := repos.chat.ListByProblem(ctx, p.ID, "alice")
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.ErrorIs(t, repos.problems.Delete(ctx, p.ID, "bob"), common.ErrNotFound)
	require.NoError(t, repos.problems.Delete(ctx, p.ID, "alice"))
	assert.ErrorIs(t, repos.problems.Delete(ctx, p.ID, "alice"), common.ErrNotFound)

	msgs, err = repos.chat.ListByProblem(ctx, p.ID, "alice")
	require.NoError(t, err)
	assert.Empty(t, msgs)

	var remaining int
	require.NoError(t, repos.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_messages WHERE problem_id = ?`, p.ID).Scan(&remaining))
	assert.Zero(t, remaining)
}

func TestProblemListPagination(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()
	createTestUser(t, repos, "alice")
	createTestUser(t, repos, "bob")
	for i := 1; i <= 15; i++ {
		createTestProblem(t, repos, "alice", i, model.DifficultyEasy)
	}
	createTestProblem(t, repos, "bob", 99, model.DifficultyEasy)

	first, err := repos.problems.List(ctx, "alice", model.ProblemFilter{Limit: 10, Offset: 0})
	require.NoError(t, err)
	second, err := repos.problems.List(ctx, "alice", model.ProblemFilter{Limit: 10, Offset: 10})
	require.NoError(t, err)

	require.Len(t, first, 10)
	require.Len(t, second, 5)

	seen := map[int64]bool{}
	all := append(append([]model.Problem{}, first...), second...)
	for i, p := range all {
		assert.Equal(t, "alice", p.UserID)
		assert.False(t, seen[p.ID], "problem %d returned twice", p.ID)
		seen[p.ID] = true
		if i > 0 {
			prev := all[i-1]
			assert.False(t, p.UpdatedAt.After(prev.UpdatedAt), "rows must be newest first")
		}
	}
	assert.Len(t, seen, 15)
}

func TestProblemListFilters(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()
	createTestUser(t, repos, "alice")

	mk := func(title, desc, category string, d model.ProblemDifficulty) {
		require.NoError(t, repos.problems.Create(ctx, &model.Problem{
			UserID: "alice", ProblemNumber: 1, Title: title, Description: desc,
			Category: category, Difficulty: d, Solution: "x",
		}))
	}
	mk("Two Sum", "find pair", "Hash Table", model.DifficultyEasy)
	mk("Merge Intervals", "sort then sweep", "Sorting", model.DifficultyMedium)
	mk("Median of Two Sorted Arrays", "binary search", "Binary Search", model.DifficultyHard)
	mk("100% Coverage", "literal percent", "Misc", model.DifficultyEasy)

	titles := func(f model.ProblemFilter) []string {
		f.Limit = 50
		ps, err := repos.problems.List(ctx, "alice", f)
		require.NoError(t, err)
		var out []string
		for _, p := range ps {
			out = append(out, p.Title)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"Two Sum", "Median of Two Sorted Arrays"}, titles(model.ProblemFilter{Search: "two"}))
	assert.ElementsMatch(t, []string{"Merge Intervals"}, titles(model.ProblemFilter{Search: "SWEEP"}))
	assert.ElementsMatch(t, []string{"Merge Intervals"}, titles(model.ProblemFilter{Difficulty: model.DifficultyMedium}))
	assert.ElementsMatch(t, []string{"Median of Two Sorted Arrays"}, titles(model.ProblemFilter{Category: "binary"}))
	assert.ElementsMatch(t, []string{"Two Sum"}, titles(model.ProblemFilter{Search: "two", Difficulty: model.DifficultyEasy}))
	assert.ElementsMatch(t, []string{"100% Coverage"}, titles(model.ProblemFilter{Search: "0%"}))
	assert.Empty(t, titles(model.ProblemFilter{Search: "dynamic"}))
}

func TestProblemStats(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()
	createTestUser(t, repos, "alice")
	createTestUser(t, repos, "carol")

	createTestProblem(t, repos, "alice", 1, model.DifficultyEasy)
	createTestProblem(t, repos, "alice", 2, model.DifficultyEasy)
	createTestProblem(t, repos, "alice", 3, model.DifficultyMedium)

	stats, err := repos.problems.Stats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, &model.ProblemStats{Total: 3, Easy: 2, Medium: 1, Hard: 0}, stats)

	empty, err := repos.problems.Stats(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, &model.ProblemStats{}, empty)
}

func TestChatExchangeOrderingAndOwnership(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()
	createTestUser(t, repos, "alice")
	p := createTestProblem(t, repos, "alice", 1, model.DifficultyEasy)

	for i := 0; i < 3; i++ {
		exchange := fmt.Sprintf("ex-%d", i)
		user := &model.ChatMessage{ProblemID: p.ID, UserID: "alice", ExchangeID: exchange, Message: fmt.Sprintf("q%d", i)}
		ai := &model.ChatMessage{ProblemID: p.ID, UserID: "alice", ExchangeID: exchange, Message: fmt.Sprintf("a%d", i), IsAI: true}
		require.NoError(t, repos.chat.AppendExchange(ctx, user, ai))
		assert.Less(t, user.ID, ai.ID)
	}

	msgs, err := repos.chat.ListByProblem(ctx, p.ID, "alice")
	require.NoError(t, err)
	got := make([]string, len(msgs))
	for i, m := range msgs {
		got[i] = m.Message
		assert.Equal(t, i%2 == 1, m.IsAI)
	}
	assert.Equal(t, []string{"q0", "a0", "q1", "a1", "q2", "a2"}, got)
	assert.Equal(t, msgs[0].ExchangeID, msgs[1].ExchangeID)

	others, err := repos.chat.ListByProblem(ctx, p.ID, "mallory")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestChatExchangeIsAtomic(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()
	createTestUser(t, repos, "alice")
	p := createTestProblem(t, repos, "alice", 1, model.DifficultyEasy)

	user := &model.ChatMessage{ProblemID: p.ID, UserID: "alice", Message: "question"}
	orphan := &model.ChatMessage{ProblemID: p.ID + 1000, UserID: "alice", Message: "reply", IsAI: true}
	err := repos.chat.AppendExchange(ctx, user, orphan)
	require.ErrorIs(t, err, common.ErrNotFound)

	msgs, err := repos.chat.ListByProblem(ctx, p.ID, "alice")
	require.NoError(t, err)
	assert.Empty(t, msgs, "the user turn must roll back with the failed reply")
}

func TestUserUpsert(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	u, err := repos.users.Upsert(ctx, &model.User{ID: "alice", Email: "alice@example.com", FirstName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.FirstName)
	assert.False(t, u.CreatedAt.IsZero())

	u, err = repos.users.Upsert(ctx, &model.User{ID: "alice", Email: "alice@example.com", FirstName: "Alicia", LastName: "Liddell"})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", u.FirstName)
	assert.Equal(t, "Liddell", u.LastName)

	require.NoError(t, repos.users.EnsureExists(ctx, "alice"))
	found, err := repos.users.FindByID(ctx, "alice")
	require.NoError(t, err)
	if diff := cmp.Diff(u, found, cmpopts.EquateApproxTime(0)); diff != "" {
		t.Errorf("EnsureExists must not clobber the profile (-want +got):\n%s", diff)
	}

	_, err = repos.users.Upsert(ctx, &model.User{ID: "impostor", Email: "alice@example.com"})
	assert.ErrorIs(t, err, common.ErrConflict)

	// Users without email do not collide on the unique index.
	require.NoError(t, repos.users.EnsureExists(ctx, "anon-1"))
	require.NoError(t, repos.users.EnsureExists(ctx, "anon-2"))

	_, err = repos.users.FindByID(ctx, "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
