package progression

// Combo tracks the running streak of correct answers and the best streak ever reached.
type Combo struct {
	Current int
	Best    int
}

func (c *Combo) OnCorrect() {
	c.Current++
	if c.Current > c.Best {
		c.Best = c.Current
	}
}

func (c *Combo) OnWrong() {
	c.Current = 0
}

// ResetSession starts a new streak and keeps the lifetime best.
func (c *Combo) ResetSession() {
	c.Current = 0
}
