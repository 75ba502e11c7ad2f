package types

// Rights is the capability set granted to a smart pool's controller. The set
// is fixed at instantiation and never changes afterwards; a pool that was
// sold as immutable stays immutable.
type Rights struct {
	CanPauseSwapping   bool `json:"can_pause_swapping"`
	CanChangeSwapFee   bool `json:"can_change_swap_fee"`
	CanChangeWeights   bool `json:"can_change_weights"`
	CanAddRemoveTokens bool `json:"can_add_remove_tokens"`
	CanWhitelistLPs    bool `json:"can_whitelist_lps"`
	CanChangeCap       bool `json:"can_change_cap"`
}

// NoRights returns the fully locked-down capability set.
func NoRights() Rights {
	return Rights{}
}

// AllRights returns the fully permissioned capability set.
func AllRights() Rights {
	return Rights{
		CanPauseSwapping:   true,
		CanChangeSwapFee:   true,
		CanChangeWeights:   true,
		CanAddRemoveTokens: true,
		CanWhitelistLPs:    true,
		CanChangeCap:       true,
	}
}
