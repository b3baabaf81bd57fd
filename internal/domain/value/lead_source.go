package value

type LeadSource string

const (
	LeadSourceRednote LeadSource = "Rednote"
	LeadSourceLifeX   LeadSource = "LifeX"
	// LeadSourceOther covers deals with neither flag set.
	LeadSourceOther LeadSource = "Other"
)

// FlagYes is the only value that marks a lead-source flag as set.
const FlagYes = "Yes"
