package session

import (
	"context"
	"errors"
	"testing"

	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-testutil"
)

func TestManager_RunSession(t *testing.T) {
	srv := newTestServer(t, nil)
	conn := newFakeConn("hero", "y", "3", "", "flee", "dance", "quit")

	err := srv.manager.RunSession(context.Background(), conn)
	if err != nil {
		t.Fatalf("RunSession: %v", err)
	}

	out := conn.out.String()
	assertContains(t, out,
		"Welcome, Hero the Rogue.",
		"Level 1 Rogue",
		"[90/90HP] > ",
		"You aren't fighting anything. Try 'explore'.",
		`Command "dance" is unknown.`,
		"Goodbye!",
	)

	saved := srv.chars.Get("hero")
	if saved == nil {
		t.Fatal("expected character to be saved")
	}
	testutil.AssertEqual(t, "class", saved.Class, game.ClassRogue)
	testutil.AssertEqual(t, "online", srv.manager.Online("hero"), false)
}

func TestManager_RunSession_SavesOnDisconnect(t *testing.T) {
	hero := mustCharacter(t, "Hero", game.ClassWarrior)
	srv := newTestServer(t, map[string]*game.Character{"hero": hero})
	conn := newFakeConn("hero", "stats")

	err := srv.manager.RunSession(context.Background(), conn)
	if err != nil {
		t.Fatalf("RunSession: %v", err)
	}

	assertContains(t, conn.out.String(), "Welcome back, Hero.", "Level 1 Warrior")
	testutil.AssertEqual(t, "saves", srv.chars.saveCount(), 1)
	testutil.AssertEqual(t, "online", srv.manager.Online("hero"), false)
}

func TestManager_RunSession_PlayerExists(t *testing.T) {
	hero := mustCharacter(t, "Hero", game.ClassWarrior)
	srv := newTestServer(t, map[string]*game.Character{"hero": hero})

	if err := srv.manager.register(newPlayer(NewTerminal(newFakeConn()), hero, nil)); err != nil {
		t.Fatalf("register: %v", err)
	}

	conn := newFakeConn("hero")
	err := srv.manager.RunSession(context.Background(), conn)
	if !errors.Is(err, ErrPlayerExists) {
		t.Fatalf("expected ErrPlayerExists, got %v", err)
	}
	assertContains(t, conn.out.String(), "Hero is already playing.")
	testutil.AssertEqual(t, "still online", srv.manager.Online("hero"), true)
}

func TestManager_RunSession_DisconnectDuringLogin(t *testing.T) {
	srv := newTestServer(t, nil)

	err := srv.manager.RunSession(context.Background(), newFakeConn("hero"))
	if err != nil {
		t.Fatalf("expected a clean exit, got %v", err)
	}
	testutil.AssertEqual(t, "saves", srv.chars.saveCount(), 0)
}

func TestManager_Tick(t *testing.T) {
	hero := mustCharacter(t, "Hero", game.ClassCleric)
	srv := newTestServer(t, nil)

	if err := srv.manager.register(newPlayer(NewTerminal(newFakeConn()), hero, nil)); err != nil {
		t.Fatalf("register: %v", err)
	}
	hero.Gold = 33

	if err := srv.manager.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	saved := srv.chars.Get("hero")
	if saved == nil {
		t.Fatal("expected autosave")
	}
	testutil.AssertEqual(t, "gold", saved.Gold, 33)
}

func TestPromptFor(t *testing.T) {
	srv := newTestServer(t, nil)
	hero := mustCharacter(t, "Hero", game.ClassWarrior)
	p := newPlayer(NewTerminal(newFakeConn()), hero, srv.manager.handler)

	testutil.AssertEqual(t, "prompt", promptFor(p.state), "[120/120HP] > ")
}
