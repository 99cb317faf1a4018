package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"skill-evolve-service/internal/app"
	"skill-evolve-service/internal/domain"
	"skill-evolve-service/internal/infra/memory"
	"skill-evolve-service/internal/progression"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	store := NewSessionStore(client, time.Minute)
	loader := memory.NewStaticBankLoader(map[string]domain.Bank{
		"bank-1": {ID: "bank-1", Questions: []domain.QuestionSpec{{ID: "q1", Round: 1, No: 1, Kind: domain.KindSingle, Answer: "A"}}},
	})
	service := app.NewGameService(store, NewBankRepository(client, loader, time.Minute),
		app.NewProgressStore(NewProgressRepository(client)), progression.DefaultRules(), nil)

	start, err := service.StartSession(context.Background(), app.StartRequest{PlayerID: "player-1", BankID: "bank-1", Stage: "ai"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	marker, err := mr.Get("skillevolve:session:player-1")
	if err != nil || marker != start.SessionID {
		t.Fatalf("expected session id marker, got %q err=%v", marker, err)
	}
	if ttl := mr.TTL("skillevolve:session:player-1"); ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %v", ttl)
	}
	if game, ok := store.Get("player-1"); !ok || game.ID() != start.SessionID {
		t.Fatalf("expected session present")
	}

	store.Delete("player-1")
	if mr.Exists("skillevolve:session:player-1") {
		t.Fatalf("expected redis key to be removed")
	}
}

func TestSessionStoreIgnoresNilGame(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewSessionStore(newClient(mr), time.Minute)
	store.Put("player-1", nil)
	if _, ok := store.Get("player-1"); ok {
		t.Fatalf("nil game must not be registered")
	}
	if mr.Exists("skillevolve:session:player-1") {
		t.Fatalf("nil game must not leave a marker")
	}
}
