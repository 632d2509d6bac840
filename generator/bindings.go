package generator

// Binding records one generated accessor for later introspection. Nothing in
// the generation pass consumes these; they exist so callers and tests can
// inspect what was emitted without re-parsing the output text.
type Binding struct {
	Name        string
	Action      Action
	OptionsType string
}

func bindingFor(wiring Wiring) Binding {
	return Binding{
		Name:        wiring.HookName,
		Action:      wiring.Action,
		OptionsType: wiring.OptionsType,
	}
}
