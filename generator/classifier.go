package generator

// Action is the transport call a generated fetcher performs.
type Action string

const (
	ActionQuery  Action = "query"
	ActionMutate Action = "mutate"
)

// Wiring is the classifier's plan for one operation: every name and type the
// emitter needs to produce the repository wiring and its accessor hook.
type Wiring struct {
	Operation      Operation
	HookName       string
	RepositoryName string
	DocumentName   string
	OptionsType    string
	Action         Action
}

// Classify decides whether an operation gets a repository wiring and, if so,
// how it is named and typed. Operations classified as mutations are skipped
// entirely: the emitted output has historically covered suspense queries
// only, and that behavior is kept deliberately rather than widened here.
func Classify(operation Operation) (Wiring, bool) {
	if operation.Kind == KindMutation {
		return Wiring{}, false
	}
	return Wiring{
		Operation:      operation,
		HookName:       hookName(operation),
		RepositoryName: repositoryName(operation),
		DocumentName:   documentName(operation),
		OptionsType:    optionsTypeName(operation),
		Action:         transportAction(operation.Kind),
	}, true
}

// transportAction maps an operation kind onto the Apollo client method its
// fetcher calls.
func transportAction(kind OperationKind) Action {
	if kind == KindMutation {
		return ActionMutate
	}
	return ActionQuery
}
