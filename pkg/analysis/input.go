package analysis

import (
	"fmt"
	"strings"
)

// TimeFrame is the horizon the analysis should cover.
type TimeFrame string

const (
	TimeFrameShort TimeFrame = "Short-term"
	TimeFrameLong  TimeFrame = "Long-term"
)

// TimeFrames lists the accepted time frame values in display order.
var TimeFrames = []TimeFrame{TimeFrameShort, TimeFrameLong}

// Field names accepted by SetField. They double as the JSON keys of FormInput.
const (
	FieldBusinessName      = "business_name"
	FieldIndustry          = "industry"
	FieldGeographicalFocus = "geographical_focus"
	FieldTimeFrame         = "time_frame"
	FieldTargetMarket      = "target_market"
	FieldCompetitors       = "competitors"
	FieldPoliticalFactors  = "political_factors"
)

// RequiredFields are the text fields that must be non-empty before submission.
var RequiredFields = []string{
	FieldBusinessName,
	FieldIndustry,
	FieldGeographicalFocus,
	FieldTargetMarket,
}

// Political factor labels. The backend matches on the exact text.
const (
	FactorGovernmentPolicies    = "Government Policies"
	FactorPoliticalStability    = "Political Stability"
	FactorTaxRegulations        = "Tax Regulations"
	FactorIndustryRegulations   = "Industry Regulations"
	FactorGlobalTradeAgreements = "Global Trade Agreements"
)

// PoliticalFactors is the closed, ordered set of factor labels.
var PoliticalFactors = []string{
	FactorGovernmentPolicies,
	FactorPoliticalStability,
	FactorTaxRegulations,
	FactorIndustryRegulations,
	FactorGlobalTradeAgreements,
}

// IsPoliticalFactor reports whether name is one of PoliticalFactors.
func IsPoliticalFactor(name string) bool {
	for _, factor := range PoliticalFactors {
		if factor == name {
			return true
		}
	}
	return false
}

// FormInput is the analysis request collected from the user.
//
// PoliticalFactors only ever holds checked factors: an absent key means the
// factor is not selected. The backend treats every key it receives as enabled,
// so unchecked factors are never put on the wire.
type FormInput struct {
	BusinessName      string          `json:"business_name"`
	Industry          string          `json:"industry"`
	GeographicalFocus string          `json:"geographical_focus"`
	TimeFrame         TimeFrame       `json:"time_frame"`
	TargetMarket      string          `json:"target_market"`
	Competitors       string          `json:"competitors"`
	PoliticalFactors  map[string]bool `json:"political_factors"`
}

// NewFormInput returns an empty input with the default time frame.
func NewFormInput() FormInput {
	return FormInput{
		TimeFrame:        TimeFrameShort,
		PoliticalFactors: make(map[string]bool),
	}
}

// SetField updates one scalar field. Values are stored as given; required
// field checks happen in Validate.
func (in *FormInput) SetField(name, value string) error {
	switch name {
	case FieldBusinessName:
		in.BusinessName = value
	case FieldIndustry:
		in.Industry = value
	case FieldGeographicalFocus:
		in.GeographicalFocus = value
	case FieldTimeFrame:
		in.TimeFrame = TimeFrame(value)
	case FieldTargetMarket:
		in.TargetMarket = value
	case FieldCompetitors:
		in.Competitors = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Field returns the current value of a scalar field.
func (in FormInput) Field(name string) (string, error) {
	switch name {
	case FieldBusinessName:
		return in.BusinessName, nil
	case FieldIndustry:
		return in.Industry, nil
	case FieldGeographicalFocus:
		return in.GeographicalFocus, nil
	case FieldTimeFrame:
		return string(in.TimeFrame), nil
	case FieldTargetMarket:
		return in.TargetMarket, nil
	case FieldCompetitors:
		return in.Competitors, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

// SetFactor checks or unchecks a political factor. Names outside
// PoliticalFactors are rejected and leave the input untouched.
func (in *FormInput) SetFactor(name string, checked bool) error {
	if !IsPoliticalFactor(name) {
		return fmt.Errorf("%w: %q", ErrUnknownFactor, name)
	}
	if !checked {
		delete(in.PoliticalFactors, name)
		return nil
	}
	if in.PoliticalFactors == nil {
		in.PoliticalFactors = make(map[string]bool)
	}
	in.PoliticalFactors[name] = true
	return nil
}

// Factor reports whether a factor is checked. Absent keys are false.
func (in FormInput) Factor(name string) bool {
	return in.PoliticalFactors[name]
}

// EnabledFactors returns the checked factors in canonical order.
func (in FormInput) EnabledFactors() []string {
	var out []string
	for _, factor := range PoliticalFactors {
		if in.PoliticalFactors[factor] {
			out = append(out, factor)
		}
	}
	return out
}

// MissingFields lists required fields that are empty after trimming.
func (in FormInput) MissingFields() []string {
	var missing []string
	for _, name := range RequiredFields {
		value, _ := in.Field(name)
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// Validate returns a *ValidationError naming every empty required field.
func (in FormInput) Validate() error {
	if missing := in.MissingFields(); len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Clone returns a deep copy so callers can submit a snapshot while the draft
// keeps changing.
func (in FormInput) Clone() FormInput {
	out := in
	out.PoliticalFactors = make(map[string]bool, len(in.PoliticalFactors))
	for k, v := range in.PoliticalFactors {
		out.PoliticalFactors[k] = v
	}
	return out
}

// Normalized fills defaults for zero values before the input goes on the wire.
func (in FormInput) Normalized() FormInput {
	out := in.Clone()
	if out.TimeFrame == "" {
		out.TimeFrame = TimeFrameShort
	}
	return out
}
