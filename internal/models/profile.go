// Package models defines core data structures for profiles, filters, and query results.
package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// Social platform keys used in NormalizedProfile.SocialLinks.
const (
	PlatformTwitter  = "twitter"
	PlatformLinkedin = "linkedin"
	PlatformDiscord  = "discord"
)

// FlexString decodes from a JSON string, number, or bool. Null and any other
// shape decode to the empty string rather than failing the record.
type FlexString string

// UnmarshalJSON implements tolerant decoding; it never returns an error.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		*s = ""
		return nil
	}
	switch t := v.(type) {
	case string:
		*s = FlexString(t)
	case float64:
		*s = FlexString(strconv.FormatFloat(t, 'f', -1, 64))
	case bool:
		*s = FlexString(strconv.FormatBool(t))
	default:
		*s = ""
	}
	return nil
}

// StringList decodes from a JSON array, keeping only the string elements.
// A bare string decodes to a single-element list; any other shape decodes to nil.
type StringList []string

// UnmarshalJSON implements tolerant decoding; it never returns an error.
func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}
	var arr []interface{}
	if err := json.Unmarshal(data, &arr); err == nil {
		out := make([]string, 0, len(arr))
		for _, v := range arr {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		*l = out
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = StringList{s}
		return nil
	}
	*l = nil
	return nil
}

// EpochMillis is a timestamp in milliseconds since the Unix epoch. It decodes
// from a JSON number (epoch seconds or milliseconds) or a date string; values
// it cannot interpret decode to 0.
type EpochMillis int64

// UnmarshalJSON implements tolerant decoding; it never returns an error.
func (e *EpochMillis) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		if num >= 1e12 || num <= -1e12 {
			*e = EpochMillis(num)
		} else {
			*e = EpochMillis(num * 1000)
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*e = 0
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			*e = EpochMillis(ts.UnixMilli())
			return nil
		}
	}
	*e = 0
	return nil
}

// Time converts the timestamp to a time.Time. Zero values convert to the epoch.
func (e EpochMillis) Time() time.Time {
	return time.UnixMilli(int64(e))
}

// RawProfile is a member record as supplied by the upstream profile feed.
// Every field is optional and the source guarantees nothing about shape, so
// the field types absorb missing or oddly-typed values instead of erroring.
type RawProfile struct {
	Name                 FlexString  `json:"name"`
	Username             FlexString  `json:"username"`
	Location             FlexString  `json:"location"`
	ProfessionalSummary  FlexString  `json:"professional_summary"`
	PersonalSummary      FlexString  `json:"personal_summary"`
	PhilosophicalSummary FlexString  `json:"philosophical_summary"`
	Tags                 StringList  `json:"tags"`
	XURL                 FlexString  `json:"x_url"`
	LinkedinURL          FlexString  `json:"linkedin_url"`
	DiscordHandle        FlexString  `json:"discord_handle"`
	ProfessionalKeywords StringList  `json:"professional_keywords"`
	PostDate             EpochMillis `json:"post_date"`
	ProfileImage         FlexString  `json:"profile_image"`
	OriginalText         FlexString  `json:"original_text"`
}

// NormalizedProfile is the enriched, immutable form of a member record.
// No component mutates an instance after construction; score-carrying views
// wrap a profile rather than writing to it.
type NormalizedProfile struct {
	Username             string            `json:"username"`
	Name                 string            `json:"name"`
	Location             string            `json:"location,omitempty"`
	ProfileImage         string            `json:"profile_image,omitempty"`
	ProfessionalSummary  string            `json:"professional_summary,omitempty"`
	PersonalSummary      string            `json:"personal_summary,omitempty"`
	PhilosophicalSummary string            `json:"philosophical_summary,omitempty"`
	// LocationNormalized is the lowercase, trimmed, alias-mapped location.
	// Empty means the profile has no location at all (HasLocation false);
	// a present location always normalizes to a non-empty value.
	LocationNormalized   string            `json:"location_normalized,omitempty"`
	Tags                 []string          `json:"tags"`
	ProfessionalKeywords []string          `json:"professional_keywords"`
	SocialLinks          map[string]string `json:"social_links,omitempty"`
	PostDate             EpochMillis       `json:"post_date,omitempty"`

	// SearchableText is the lowercase concatenation of name, username,
	// location, summaries, and tags. Fixed at construction time.
	SearchableText string `json:"-"`

	HasLocation            bool `json:"has_location"`
	HasProfessionalSummary bool `json:"has_professional_summary"`
	HasPersonalSummary     bool `json:"has_personal_summary"`
	HasSocialLinks         bool `json:"has_social_links"`
}
