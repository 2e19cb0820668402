package actor

// MaxHealth is floor((constitution + size) / 10), never below 1.
func MaxHealth(constitution, size int) int {
	return max(1, floorDiv(constitution+size, 10))
}

// StartingSanity is the power stat, copied verbatim.
func StartingSanity(power int) int {
	return power
}

// MaxSanity is 99 minus mythos. No clamping is applied, so mythos above 99
// yields a negative maximum.
func MaxSanity(mythos int) int {
	return 99 - mythos
}

// ApplyStartingValues derives max health, starting health, starting sanity
// and max sanity from the current stats. It runs once at creation; later
// stat edits do not refresh these cached values.
func (inv *Investigator) ApplyStartingValues() {
	if inv.Stats == nil {
		inv.Stats = DefaultStats()
	}
	inv.MaxHealth = MaxHealth(inv.Stats.Get(StatConstitution), inv.Stats.Get(StatSize))
	inv.Stats[StatHealth] = inv.MaxHealth
	inv.Stats[StatSanity] = StartingSanity(inv.Stats.Get(StatPower))
	inv.MaxSanity = MaxSanity(inv.Stats.Get(StatMythos))
}

// RecomputeDerived refreshes max health and max sanity from the current
// stats and lowers current health and sanity to the new maxima.
// Only used when derived recomputation is switched on.
func (inv *Investigator) RecomputeDerived() {
	if inv.Stats == nil {
		inv.Stats = DefaultStats()
	}
	inv.MaxHealth = MaxHealth(inv.Stats.Get(StatConstitution), inv.Stats.Get(StatSize))
	inv.MaxSanity = MaxSanity(inv.Stats.Get(StatMythos))
	if inv.Stats.Get(StatHealth) > inv.MaxHealth {
		inv.Stats[StatHealth] = inv.MaxHealth
	}
	if inv.Stats.Get(StatSanity) > inv.MaxSanity {
		inv.Stats[StatSanity] = inv.MaxSanity
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
