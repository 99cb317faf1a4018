package progression

import "testing"

func TestComboBestNeverDecreases(t *testing.T) {
	var c Combo
	steps := []string{"ok", "ok", "ok", "miss", "ok", "reset", "ok", "ok", "ok", "ok", "miss"}
	best := 0
	for _, step := range steps {
		switch step {
		case "ok":
			c.OnCorrect()
		case "miss":
			c.OnWrong()
		case "reset":
			c.ResetSession()
		}
		if c.Best < best {
			t.Fatalf("best decreased from %d to %d after %s", best, c.Best, step)
		}
		if c.Best < c.Current {
			t.Fatalf("best %d below current %d", c.Best, c.Current)
		}
		best = c.Best
	}
	if c.Best != 4 || c.Current != 0 {
		t.Fatalf("expected best 4 current 0, got %+v", c)
	}
}

func TestComboResetSessionKeepsBest(t *testing.T) {
	c := Combo{Best: 7}
	c.OnCorrect()
	c.ResetSession()
	if c.Current != 0 || c.Best != 7 {
		t.Fatalf("unexpected combo %+v", c)
	}
}
