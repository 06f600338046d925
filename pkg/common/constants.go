package common

// Classification axes. Each analyzed article carries one result per axis.
const (
	AxisCharacters = "characters"
	AxisAction     = "action"
	AxisStory      = "story"
)

// SentinelNone marks a character slot the model could not identify.
const SentinelNone = "NONE"

// Analysis types.
const (
	AnalysisTypeAutomated = "automated"
	AnalysisTypeManual    = "manual"
)

// BiasAll disables bias filtering on the read endpoints.
const BiasAll = "all"

// CharacterClasses are the classes the model may assign to the
// hero/villain/victim slots.
var CharacterClasses = []string{
	"GOVERNMENTS_POLITICIANS_POLIT.ORGS",
	"INDUSTRY_EMISSIONS",
	"LEGISLATION_POLICIES_RESPONSES",
	"GENERAL_PUBLIC",
	"ANIMALS_NATURE_ENVIRONMENT",
	"ENV.ORGS_ACTIVISTS",
	"SCIENCE_EXPERTS_SCI.REPORTS",
	"CLIMATE_CHANGE",
	"GREEN_TECHNOLOGY_INNOVATION",
	"MEDIA_JOURNALISTS",
}

// FocusLabels are the focus values for the characters axis.
var FocusLabels = []string{"HERO", "VILLAIN", "VICTIM"}

// ActionLabels are the action axis values.
var ActionLabels = []string{
	"FUEL_RESOLUTION",
	"FUEL_CONFLICT",
	"PREVENT_RESOLUTION",
	"PREVENT_CONFLICT",
}

// StoryLabels are the story axis values.
var StoryLabels = []string{"HIERARCHICAL", "INDIVIDUALISTIC", "EGALITARIAN"}
