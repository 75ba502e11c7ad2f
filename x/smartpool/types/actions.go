package types

// Batch action names. Each names one smart pool operation the orchestrator
// can run as a step.
const (
	ActionCreate                 = "create"
	ActionJoin                   = "join"
	ActionUpdateWeightsGradually = "update_weights_gradually"
	ActionCommitAddToken         = "commit_add_token"
	ActionApplyAddToken          = "apply_add_token"
	ActionRemoveToken            = "remove_token"
	ActionWhitelist              = "whitelist"
	ActionPoke                   = "poke"
)

// ActionStep is one typed step of an action batch. Only the fields the named
// action reads are consulted; the rest stay empty.
type ActionStep struct {
	Action string `json:"action"`

	// create
	InitialSupply string `json:"initial_supply,omitempty"`

	// join
	PoolAmountOut string            `json:"pool_amount_out,omitempty"`
	MaxAmountsIn  map[string]string `json:"max_amounts_in,omitempty"`

	// commit_add_token, remove_token
	Denom   string `json:"denom,omitempty"`
	Balance string `json:"balance,omitempty"`
	Weight  string `json:"weight,omitempty"`

	// update_weights_gradually
	NewWeights []string `json:"new_weights,omitempty"`
	StartBlock int64    `json:"start_block,omitempty"`
	EndBlock   int64    `json:"end_block,omitempty"`

	// whitelist
	Provider string `json:"provider,omitempty"`
}

// knownActions is the closed set the orchestrator executes.
var knownActions = map[string]bool{
	ActionCreate:                 true,
	ActionJoin:                   true,
	ActionUpdateWeightsGradually: true,
	ActionCommitAddToken:         true,
	ActionApplyAddToken:          true,
	ActionRemoveToken:            true,
	ActionWhitelist:              true,
	ActionPoke:                   true,
}

// ValidateActionStep checks the step names a known action.
func ValidateActionStep(step ActionStep) error {
	if !knownActions[step.Action] {
		return ErrUnknownAction
	}
	return nil
}
