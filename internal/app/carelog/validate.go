package carelog

import (
	"fmt"
	"regexp"
	"strings"

	"careledger/internal/app/ds"
)

// One data-driven rule table and one generic validator, instead of a
// handwritten check per optional sub-record.

type ruleKind int

const (
	ruleEnum ruleKind = iota
	ruleTimeOfDay
	ruleMaxLen
)

type fieldRule struct {
	kind    ruleKind
	allowed []string
	maxLen  int
}

var moods = []string{"alert", "calm", "happy", "confused", "agitated", "sleepy", "withdrawn"}

const freeTextMax = 4000

var payloadRules = map[string]fieldRule{
	"wake_time":            {kind: ruleTimeOfDay},
	"morning_mood":         {kind: ruleEnum, allowed: moods},
	"evening_mood":         {kind: ruleEnum, allowed: moods},
	"afternoon_activities": {kind: ruleMaxLen, maxLen: freeTextMax},
	"nap_details":          {kind: ruleMaxLen, maxLen: freeTextMax},
	"spiritual_emotional":  {kind: ruleMaxLen, maxLen: freeTextMax},
	"special_concerns":     {kind: ruleMaxLen, maxLen: freeTextMax},
	"notes":                {kind: ruleMaxLen, maxLen: freeTextMax},
}

type numericRange struct {
	min, max float64
}

var vitalsRanges = map[string]numericRange{
	"bp_systolic":       {60, 260},
	"bp_diastolic":      {30, 160},
	"pulse":             {20, 250},
	"temperature":       {30, 45},
	"oxygen_saturation": {50, 100},
}

var timeOfDayRe = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

// ValidatePayload checks a partial update against the rule tables, returning
// one ValidationFailed error carrying every field violation at once. A nil
// or empty payload is valid.
func ValidatePayload(p *UpdatePayload) error {
	if p == nil {
		return nil
	}
	errs := map[string]string{}

	checkString(errs, "wake_time", p.WakeTime)
	checkString(errs, "morning_mood", p.MorningMood)
	checkString(errs, "evening_mood", p.EveningMood)
	checkString(errs, "afternoon_activities", p.AfternoonActivities)
	checkString(errs, "nap_details", p.NapDetails)
	checkString(errs, "spiritual_emotional", p.SpiritualEmotional)
	checkString(errs, "special_concerns", p.SpecialConcerns)
	checkString(errs, "notes", p.Notes)

	checkVitals(errs, "morning_vitals", p.MorningVitals)
	checkVitals(errs, "afternoon_vitals", p.AfternoonVitals)
	checkVitals(errs, "evening_vitals", p.EveningVitals)

	if len(errs) > 0 {
		return Validation(errs)
	}
	return nil
}

func checkString(errs map[string]string, field string, value *string) {
	if value == nil {
		return
	}
	rule, ok := payloadRules[field]
	if !ok {
		return
	}
	switch rule.kind {
	case ruleEnum:
		for _, a := range rule.allowed {
			if *value == a {
				return
			}
		}
		errs[field] = fmt.Sprintf("must be one of: %s", strings.Join(rule.allowed, ", "))
	case ruleTimeOfDay:
		if !timeOfDayRe.MatchString(*value) {
			errs[field] = "must be a time of day (HH:MM)"
		}
	case ruleMaxLen:
		if len(*value) > rule.maxLen {
			errs[field] = fmt.Sprintf("must be at most %d characters", rule.maxLen)
		}
	}
}

func checkVitals(errs map[string]string, field string, v *ds.Vitals) {
	if v == nil {
		return
	}
	checkRange(errs, field, "bp_systolic", intPtrToFloat(v.BPSystolic))
	checkRange(errs, field, "bp_diastolic", intPtrToFloat(v.BPDiastolic))
	checkRange(errs, field, "pulse", intPtrToFloat(v.Pulse))
	checkRange(errs, field, "temperature", v.Temperature)
	checkRange(errs, field, "oxygen_saturation", intPtrToFloat(v.OxygenSaturation))
	if v.TakenAt != "" && !timeOfDayRe.MatchString(v.TakenAt) {
		errs[field+".taken_at"] = "must be a time of day (HH:MM)"
	}
}

func checkRange(errs map[string]string, field, sub string, value *float64) {
	if value == nil {
		return
	}
	r, ok := vitalsRanges[sub]
	if !ok {
		return
	}
	if *value < r.min || *value > r.max {
		errs[field+"."+sub] = fmt.Sprintf("must be between %g and %g", r.min, r.max)
	}
}

func intPtrToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
