package cart

// PromoStage tracks the promo-code state machine:
// StageNone -> StageApplying (request in flight) -> StageApplied, falling
// back to the previous stage when validation fails.
type PromoStage int

const (
	StageNone PromoStage = iota
	StageApplying
	StageApplied
)

// String implements fmt.Stringer for log output.
func (s PromoStage) String() string {
	switch s {
	case StageApplying:
		return "applying"
	case StageApplied:
		return "applied"
	default:
		return "none"
	}
}

// Promo is the active promo-code state. All figures are server-computed;
// the engine only displays them.
type Promo struct {
	Code        string
	Discount    int64
	Kind        string
	Description string
}
