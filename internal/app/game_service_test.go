package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"skill-evolve-service/internal/app"
	"skill-evolve-service/internal/domain"
	"skill-evolve-service/internal/infra/memory"
	"skill-evolve-service/internal/progression"
)

func TestAnswerFlowAndPersistence(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(progression.DefaultRules())

	start, err := env.service.StartSession(ctx, app.StartRequest{PlayerID: "p1", PlayerName: "Mika", BankID: "bank-1", Stage: "AI"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if start.SessionID == "" || start.PlayerLevel != 4 || len(start.Rounds) != 1 {
		t.Fatalf("unexpected start %+v", start)
	}

	res, err := env.service.SubmitAnswer(ctx, "p1", "q1", []string{"B"})
	if err != nil {
		t.Fatalf("submit q1: %v", err)
	}
	if !res.Correct || res.ScoreDelta != 100 || res.ExpDelta != 10 || res.Combo != 1 || res.SkillAxis != "grammar" {
		t.Fatalf("unexpected q1 result %+v", res)
	}
	if len(res.Unlocked) != 4 || res.Unlocked[0].ID != "pen1" || res.Unlocked[3].ID != "book2" {
		t.Fatalf("expected level-4 unlocks in catalog order, got %+v", res.Unlocked)
	}

	res, err = env.service.SubmitAnswer(ctx, "p1", "q2", []string{"C", "A"})
	if err != nil {
		t.Fatalf("submit q2: %v", err)
	}
	if !res.Correct || res.ScoreDelta != 120 || res.ExpDelta != 12 || res.TotalScore != 220 || len(res.Unlocked) != 0 {
		t.Fatalf("unexpected q2 result %+v", res)
	}

	res, err = env.service.SubmitAnswer(ctx, "p1", "q3", []string{"A"})
	if err != nil {
		t.Fatalf("submit q3: %v", err)
	}
	if res.Correct || res.Combo != 0 || res.ScoreDelta != 0 || res.Explanation == "" {
		t.Fatalf("unexpected q3 result %+v", res)
	}

	if _, err := env.service.SubmitAnswer(ctx, "p1", "q1", []string{"B"}); !errors.Is(err, domain.ErrQuestionAnswered) {
		t.Fatalf("expected already answered, got %v", err)
	}
	if _, err := env.service.SubmitAnswer(ctx, "p1", "nope", []string{"B"}); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected question not found, got %v", err)
	}

	radar, err := env.service.RadarVector("p1")
	if err != nil || len(radar) != 6 {
		t.Fatalf("radar: %v %v", radar, err)
	}

	round, err := env.service.EndRound(ctx, "p1")
	if err != nil {
		t.Fatalf("end round: %v", err)
	}
	if round.Round != 1 || round.Correct != 2 || round.Total != 3 || !round.Finished {
		t.Fatalf("unexpected round summary %+v", round)
	}
	if _, err := env.service.SubmitAnswer(ctx, "p1", "q4", []string{"A"}); !errors.Is(err, domain.ErrSessionFinished) {
		t.Fatalf("expected finished session, got %v", err)
	}

	summary, err := env.service.EndSession(ctx, "p1")
	if err != nil {
		t.Fatalf("end session: %v", err)
	}
	if summary.Score != 220 || summary.SessionCorrect != 2 || summary.Answered != 3 || summary.BestCombo != 2 {
		t.Fatalf("unexpected session summary %+v", summary)
	}
	if _, err := env.service.RadarVector("p1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session dropped, got %v", err)
	}

	saved, err := env.store.Load(ctx, "p1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if saved.PlayerName != "Mika" || saved.TotalAnswers != 3 || saved.CorrectAnswers != 2 || saved.BestCombo != 2 {
		t.Fatalf("unexpected saved counters %+v", saved)
	}
	if saved.Stages[progression.StageAI].Exp != 22 || saved.Skills[progression.SkillGrammar].Exp != 5 {
		t.Fatalf("unexpected saved tracks ai=%+v grammar=%+v", *saved.Stages[progression.StageAI], *saved.Skills[progression.SkillGrammar])
	}
	if len(saved.Collection) != 4 || saved.LastActive == "" {
		t.Fatalf("unexpected saved collection %v / last active %q", saved.Collection, saved.LastActive)
	}
}

func TestBestComboSurvivesSessions(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(progression.DefaultRules())

	startOrFail(t, env, "p1")
	for _, q := range []struct {
		id  string
		ans []string
	}{{"q1", []string{"B"}}, {"q2", []string{"A", "C"}}} {
		if _, err := env.service.SubmitAnswer(ctx, "p1", q.id, q.ans); err != nil {
			t.Fatalf("submit %s: %v", q.id, err)
		}
	}
	if _, err := env.service.EndSession(ctx, "p1"); err != nil {
		t.Fatalf("end: %v", err)
	}

	startOrFail(t, env, "p1")
	res, err := env.service.SubmitAnswer(ctx, "p1", "q1", []string{"B"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Combo != 1 || res.ScoreDelta != 100 {
		t.Fatalf("expected a fresh streak, got %+v", res)
	}
	summary, err := env.service.EndSession(ctx, "p1")
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if summary.BestCombo != 2 {
		t.Fatalf("expected lifetime best 2, got %d", summary.BestCombo)
	}
}

func TestHatchLatchAndAcknowledge(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(progression.DefaultRules())

	state := progression.NewPersistedState()
	state.Stages[progression.StageAI] = &progression.LevelTrack{Level: 4, Exp: 330, MaxExp: 337}
	if err := env.store.Save(ctx, "p1", state); err != nil {
		t.Fatalf("seed: %v", err)
	}

	startOrFail(t, env, "p1")
	res, err := env.service.SubmitAnswer(ctx, "p1", "q1", []string{"B"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Hatched || res.StageLevel != 5 || res.LevelsGained != 1 {
		t.Fatalf("expected hatch on level 5, got %+v", res)
	}

	hatch, _ := env.service.HatchState("p1")
	if !hatch.HasHatched || !hatch.PendingAnimation {
		t.Fatalf("expected pending hatch animation, got %+v", hatch)
	}
	res, _ = env.service.SubmitAnswer(ctx, "p1", "q2", []string{"A", "C"})
	if res.Hatched {
		t.Fatalf("latch fired twice")
	}
	if err := env.service.AcknowledgeHatch("p1"); err != nil {
		t.Fatalf("acknowledge: %v", err)
	}
	hatch, _ = env.service.HatchState("p1")
	if !hatch.HasHatched || hatch.PendingAnimation {
		t.Fatalf("expected cleared animation, got %+v", hatch)
	}
}

func TestStartSessionStageValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(progression.DefaultRules())
	_, err := env.service.StartSession(ctx, app.StartRequest{PlayerID: "p1", BankID: "bank-1", Stage: "cooking"})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}

	legacy := progression.DefaultRules()
	legacy.LegacyStageFallback = true
	env = newTestEnv(legacy)
	start, err := env.service.StartSession(ctx, app.StartRequest{PlayerID: "p1", BankID: "bank-1", Stage: "cooking"})
	if err != nil {
		t.Fatalf("legacy start: %v", err)
	}
	if start.Stage != "ai" {
		t.Fatalf("expected fallback to ai, got %s", start.Stage)
	}
}

func TestStartSessionAbandonedAndCorrupted(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(progression.DefaultRules())

	if err := env.store.Save(ctx, "p1", progression.NewPersistedState()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	env.now = env.now.Add(25 * time.Hour)
	start := startOrFail(t, env, "p1")
	if !start.Abandoned {
		t.Fatalf("expected abandoned after 25h")
	}

	_ = env.repo.Put(ctx, "p2", []byte("not json"))
	start = startOrFail(t, env, "p2")
	if start.Warning == "" || start.PlayerLevel != 4 || start.Abandoned {
		t.Fatalf("expected fresh state with a warning, got %+v", start)
	}
}

func TestUnknownSessionAndBank(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(progression.DefaultRules())

	if _, err := env.service.SubmitAnswer(ctx, "ghost", "q1", []string{"B"}); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session not found, got %v", err)
	}
	if _, err := env.service.EndSession(ctx, "ghost"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session not found, got %v", err)
	}
	if _, err := env.service.StartSession(ctx, app.StartRequest{PlayerID: "p1", BankID: "missing", Stage: "ai"}); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected bank not found, got %v", err)
	}
}

func TestInspectAndReset(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(progression.DefaultRules())

	startOrFail(t, env, "p1")
	if _, err := env.service.SubmitAnswer(ctx, "p1", "q1", []string{"B"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := env.service.EndSession(ctx, "p1"); err != nil {
		t.Fatalf("end: %v", err)
	}

	report, err := env.service.Inspect(ctx, "p1")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if report.PlayerLevel != 4 || report.CorrectAnswers != 1 || len(report.Unlocked) != 4 || report.StageLevels["ai"] != 1 {
		t.Fatalf("unexpected report %+v", report)
	}

	if err := env.service.ResetProgress(ctx, "p1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	report, err = env.service.Inspect(ctx, "p1")
	if err != nil {
		t.Fatalf("inspect after reset: %v", err)
	}
	if report.TotalAnswers != 0 || len(report.Unlocked) != 0 {
		t.Fatalf("expected fresh report after reset, got %+v", report)
	}
}

func TestInspectReportsCorruptedSave(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(progression.DefaultRules())
	_ = env.repo.Put(ctx, "p1", []byte(`{"collection":null`))

	report, err := env.service.Inspect(ctx, "p1")
	if err != nil {
		t.Fatalf("inspect should recover from corruption, got %v", err)
	}
	if report.Warning == "" || report.TotalAnswers != 0 || report.PlayerLevel != 4 {
		t.Fatalf("expected fresh report with a warning, got %+v", report)
	}
}

func TestEndSessionIfCurrentIgnoresReplacedSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(progression.DefaultRules())

	old := startOrFail(t, env, "p1")
	current := startOrFail(t, env, "p1")

	if _, err := env.service.EndSessionIfCurrent(ctx, "p1", old.SessionID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected replaced session to be rejected, got %v", err)
	}
	if _, err := env.service.SubmitAnswer(ctx, "p1", "q1", []string{"B"}); err != nil {
		t.Fatalf("current session should still be live: %v", err)
	}
	summary, err := env.service.EndSessionIfCurrent(ctx, "p1", current.SessionID)
	if err != nil {
		t.Fatalf("end current: %v", err)
	}
	if summary.SessionID != current.SessionID || summary.Score != 100 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

type testEnv struct {
	service *app.GameService
	store   *app.ProgressStore
	repo    *memory.ProgressRepository
	now     time.Time
}

func newTestEnv(rules progression.Rules) *testEnv {
	env := &testEnv{
		repo: memory.NewProgressRepository(),
		now:  time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return env.now }
	env.store = app.NewProgressStoreWithClock(env.repo, clock)
	banks := memory.NewBankRepository(memory.NewStaticBankLoader(map[string]domain.Bank{
		"bank-1": sampleBank(),
	}), 5*time.Minute)
	env.service = app.NewGameServiceWithClock(memory.NewSessionStore(), banks, env.store, rules, nil, clock)
	return env
}

func startOrFail(t *testing.T, env *testEnv, playerID string) domain.SessionStart {
	t.Helper()
	start, err := env.service.StartSession(context.Background(), app.StartRequest{PlayerID: playerID, BankID: "bank-1", Stage: "ai"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	return start
}

func sampleBank() domain.Bank {
	return domain.Bank{
		ID: "bank-1",
		Questions: []domain.QuestionSpec{
			{ID: "q1", Round: 1, No: 1, Kind: domain.KindSingle, Prompt: "Pick B", Options: []string{"A", "B", "C", "D"}, Answer: "B", Category: "文法"},
			{ID: "q2", Round: 1, No: 2, Kind: domain.KindMultiple, Prompt: "Pick A and C", Options: []string{"A", "B", "C", "D"}, Answers: []string{"A", "C"}, Category: "trivia"},
			{ID: "q3", Round: 1, No: 3, Kind: domain.KindSingle, Prompt: "Pick D", Options: []string{"A", "B", "C", "D"}, Answer: "D", Explanation: "D was right", Category: "論理"},
			{ID: "q4", Round: 1, No: 4, Kind: domain.KindSingle, Prompt: "Locked", Options: []string{"A", "B"}, Answer: "A", MinLevel: 50},
		},
	}
}
