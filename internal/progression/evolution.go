package progression

// Evolution is a one-way hatch latch.
type Evolution struct {
	HasHatched bool
	// PendingAnimation is raised when the latch fires and cleared by the presentation layer.
	PendingAnimation bool
}

// CheckHatch fires the latch once stageLevel reaches threshold. It reports whether this call fired it.
func (e *Evolution) CheckHatch(stageLevel, threshold int) bool {
	if e.HasHatched || stageLevel < threshold {
		return false
	}
	e.HasHatched = true
	e.PendingAnimation = true
	return true
}

// AcknowledgeAnimation clears the pending hatch effect.
func (e *Evolution) AcknowledgeAnimation() {
	e.PendingAnimation = false
}
