package actor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advisor-dash/internal/workflow/handler"
	"advisor-dash/internal/workflow/sim"
	"advisor-dash/pkg/messages"
	"advisor-dash/pkg/models"
)

// stubAnalyzer echoes the query back as the summary so tests can tell which
// run produced a result.
type stubAnalyzer struct {
	delay time.Duration
	err   error
	calls int32
}

func (s *stubAnalyzer) Analyze(ctx context.Context, req models.QueryRequest) (*models.AnalysisResult, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &models.AnalysisResult{
		Summary:      req.Query,
		DetailedPlan: []string{"p1"},
		KeyInsights:  []string{"k1"},
		NextActions:  []string{"n1"},
	}, nil
}

// fastSchedule compresses the production offsets so tests settle in
// milliseconds. Texts and confidences stay distinguishable.
func fastSchedule() sim.Schedule {
	return sim.Schedule{
		{Offset: 10 * time.Millisecond, Mutations: []sim.Mutation{
			{Agent: models.AgentCoordinator, State: models.AgentProcessing, StatusText: "Analyzing query...", Confidence: 0.1},
		}},
		{Offset: 40 * time.Millisecond, Mutations: []sim.Mutation{
			{Agent: models.AgentBudget, State: models.AgentActive, StatusText: "Budget analysis complete", Confidence: 0.88},
			{Agent: models.AgentInvestment, State: models.AgentActive, StatusText: "Investment analysis complete", Confidence: 0.91},
			{Agent: models.AgentSecurity, State: models.AgentActive, StatusText: "Security check complete", Confidence: 0.95},
		}},
		{Offset: 70 * time.Millisecond, Mutations: []sim.Mutation{
			{Agent: models.AgentCoordinator, State: models.AgentActive, StatusText: "Analysis complete", Confidence: 0.92},
		}},
	}
}

func spawnWorkflow(t *testing.T, analyzer handler.Analyzer, schedule sim.Schedule) (*actor.RootContext, *actor.PID) {
	t.Helper()
	root := actor.NewActorSystem().Root
	pid := root.Spawn(actor.PropsFromProducer(Producer(handler.New(analyzer), schedule)))
	t.Cleanup(func() { root.Stop(pid) })
	return root, pid
}

func getState(t *testing.T, root *actor.RootContext, pid *actor.PID) models.WorkflowState {
	t.Helper()
	res, err := root.RequestFuture(pid, messages.GetState{}, time.Second).Result()
	require.NoError(t, err)
	state, ok := res.(models.WorkflowState)
	require.True(t, ok, "unexpected response type %T", res)
	return state
}

func settled(root *actor.RootContext, pid *actor.PID) func() bool {
	return func() bool {
		res, err := root.RequestFuture(pid, messages.GetState{}, time.Second).Result()
		if err != nil {
			return false
		}
		state, ok := res.(models.WorkflowState)
		return ok && !state.IsLoading && state.Phase != models.PhaseIdle
	}
}

func submit(root *actor.RootContext, pid *actor.PID, query string) {
	root.Send(pid, messages.SubmitQuery{
		RequestID: uuid.New(),
		Request:   models.QueryRequest{UserID: "u1", AccountID: "a1", Query: query},
	})
}

func TestSubmitSuccessSettles(t *testing.T) {
	root, pid := spawnWorkflow(t, &stubAnalyzer{delay: 20 * time.Millisecond}, fastSchedule())

	submit(root, pid, "Help me save $80,000 for a house down payment in 3 years.")

	require.Eventually(t, settled(root, pid), 2*time.Second, 5*time.Millisecond)

	state := getState(t, root, pid)
	assert.False(t, state.IsLoading)
	assert.Equal(t, models.PhaseCompleted, state.Phase)
	assert.Empty(t, state.Error)
	require.NotNil(t, state.Result)
	assert.Equal(t, "Help me save $80,000 for a house down payment in 3 years.", state.Result.Summary)
	assert.Equal(t, []string{"p1"}, state.Result.DetailedPlan)
}

func TestSubmitFailureProducesFallback(t *testing.T) {
	root, pid := spawnWorkflow(t, &stubAnalyzer{err: errors.New("connection refused")}, fastSchedule())

	submit(root, pid, "q")

	require.Eventually(t, settled(root, pid), 2*time.Second, 5*time.Millisecond)

	state := getState(t, root, pid)
	assert.Equal(t, models.PhaseFailed, state.Phase)
	assert.NotEmpty(t, state.Error)
	require.NotNil(t, state.Result)
	assert.NotEmpty(t, state.Result.Summary)
}

func TestSimulationRunsToCompletionIndependently(t *testing.T) {
	// analyzer settles long before the last scheduled step; the cosmetic
	// sequence still runs to its scheduled end
	root, pid := spawnWorkflow(t, &stubAnalyzer{}, fastSchedule())

	submit(root, pid, "q")

	require.Eventually(t, func() bool {
		res, err := root.RequestFuture(pid, messages.GetState{}, time.Second).Result()
		if err != nil {
			return false
		}
		state := res.(models.WorkflowState)
		return state.AgentStatuses[models.AgentCoordinator].StatusText == "Analysis complete"
	}, 2*time.Second, 5*time.Millisecond)

	state := getState(t, root, pid)
	assert.Equal(t, models.AgentActive, state.AgentStatuses[models.AgentCoordinator].State)
	assert.InDelta(t, 0.92, state.AgentStatuses[models.AgentCoordinator].Confidence, 1e-9)
	assert.Equal(t, models.AgentActive, state.AgentStatuses[models.AgentBudget].State)
}

func TestResetBeforeAnySubmit(t *testing.T) {
	root, pid := spawnWorkflow(t, &stubAnalyzer{}, fastSchedule())

	root.Send(pid, messages.Reset{})
	state := getState(t, root, pid)

	assert.Equal(t, models.NewWorkflowState().AgentStatuses, state.AgentStatuses)
	assert.Nil(t, state.Result)
	assert.Empty(t, state.Error)
	assert.False(t, state.IsLoading)
	assert.Equal(t, models.PhaseIdle, state.Phase)
}

func TestResetIsIdempotent(t *testing.T) {
	root, pid := spawnWorkflow(t, &stubAnalyzer{}, fastSchedule())

	submit(root, pid, "q")
	require.Eventually(t, settled(root, pid), 2*time.Second, 5*time.Millisecond)

	root.Send(pid, messages.Reset{})
	once := getState(t, root, pid)
	root.Send(pid, messages.Reset{})
	twice := getState(t, root, pid)

	assert.Equal(t, once, twice)
	assert.Equal(t, models.PhaseIdle, twice.Phase)
	assert.Nil(t, twice.Result)
}

func TestResetCancelsPendingSteps(t *testing.T) {
	root, pid := spawnWorkflow(t, &stubAnalyzer{delay: 200 * time.Millisecond}, sim.Schedule{
		{Offset: 80 * time.Millisecond, Mutations: []sim.Mutation{
			{Agent: models.AgentBudget, State: models.AgentProcessing, StatusText: "stale write", Confidence: 0.3},
		}},
	})

	submit(root, pid, "q")
	time.Sleep(10 * time.Millisecond)
	root.Send(pid, messages.Reset{})

	// past the step's scheduled time and the analyzer's completion
	time.Sleep(300 * time.Millisecond)

	state := getState(t, root, pid)
	assert.Equal(t, models.PhaseIdle, state.Phase)
	assert.Equal(t, "Ready", state.AgentStatuses[models.AgentBudget].StatusText)
	assert.Nil(t, state.Result)
}

func TestSecondSubmitSupersedesFirst(t *testing.T) {
	analyzer := &stubAnalyzer{delay: 50 * time.Millisecond}
	root, pid := spawnWorkflow(t, analyzer, fastSchedule())

	submit(root, pid, "first")
	time.Sleep(5 * time.Millisecond)
	submit(root, pid, "second")

	require.Eventually(t, settled(root, pid), 2*time.Second, 5*time.Millisecond)

	// give the first run's outcome time to arrive (and be dropped)
	time.Sleep(100 * time.Millisecond)

	state := getState(t, root, pid)
	require.NotNil(t, state.Result)
	assert.Equal(t, "second", state.Result.Summary)
	assert.Equal(t, models.PhaseCompleted, state.Phase)
	assert.EqualValues(t, 2, atomic.LoadInt32(&analyzer.calls))
}
