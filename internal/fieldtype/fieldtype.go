// Package fieldtype enumerates the field kinds of the host schema model and
// maps each kind to the label and glyph shown next to a field name.
package fieldtype

import (
	"strings"
	"unicode"
)

// Type is an enumerated field kind as named by the host, in lower camel case.
type Type string

// Closed set of field kinds supplied by the host.
const (
	SingleLineText        Type = "singleLineText"
	Email                 Type = "email"
	URL                   Type = "url"
	MultilineText         Type = "multilineText"
	RichText              Type = "richText"
	Number                Type = "number"
	Percent               Type = "percent"
	Currency              Type = "currency"
	SingleSelect          Type = "singleSelect"
	MultipleSelects       Type = "multipleSelects"
	SingleCollaborator    Type = "singleCollaborator"
	MultipleCollaborators Type = "multipleCollaborators"
	MultipleRecordLinks   Type = "multipleRecordLinks"
	Date                  Type = "date"
	DateTime              Type = "dateTime"
	PhoneNumber           Type = "phoneNumber"
	MultipleAttachments   Type = "multipleAttachments"
	Checkbox              Type = "checkbox"
	Formula               Type = "formula"
	CreatedTime           Type = "createdTime"
	Rollup                Type = "rollup"
	Count                 Type = "count"
	MultipleLookupValues  Type = "multipleLookupValues"
	AutoNumber            Type = "autoNumber"
	Barcode               Type = "barcode"
	Rating                Type = "rating"
	Duration              Type = "duration"
	LastModifiedTime      Type = "lastModifiedTime"
	Button                Type = "button"
	CreatedBy             Type = "createdBy"
	LastModifiedBy        Type = "lastModifiedBy"
	ExternalSyncSource    Type = "externalSyncSource"
	AIText                Type = "aiText"
)

// curated labels override the generic camel case conversion so they read the
// way the host's own UI names them.
var curated = map[Type]string{
	DateTime:            "Date with time",
	MultilineText:       "Long text",
	MultipleAttachments: "Attachments",
	MultipleRecordLinks: "Linked records",
	MultipleSelects:     "Multiple select",
	URL:                 "URL",
}

var icons = map[Type]string{
	SingleLineText:        "A",
	Email:                 "@",
	URL:                   "⌁",
	MultilineText:         "¶",
	RichText:              "¶",
	Number:                "#",
	Percent:               "%",
	Currency:              "$",
	SingleSelect:          "◉",
	MultipleSelects:       "☰",
	SingleCollaborator:    "☺",
	MultipleCollaborators: "☺",
	MultipleRecordLinks:   "⇄",
	Date:                  "▦",
	DateTime:              "▦",
	PhoneNumber:           "☏",
	MultipleAttachments:   "⎘",
	Checkbox:              "☑",
	Formula:               "ƒ",
	CreatedTime:           "◷",
	Rollup:                "Σ",
	Count:                 "№",
	MultipleLookupValues:  "⤷",
	AutoNumber:            "#",
	Barcode:               "▥",
	Rating:                "★",
	Duration:              "◔",
	LastModifiedTime:      "◷",
	Button:                "▭",
	CreatedBy:             "☺",
	LastModifiedBy:        "☺",
	ExternalSyncSource:    "⟳",
	AIText:                "✦",
}

// fallbackIcon is shown for kinds outside the known set.
const fallbackIcon = "•"

// Known reports whether t belongs to the closed set of host field kinds.
func Known(t Type) bool {
	_, ok := icons[t]
	return ok
}

// All returns every known kind in declaration order.
func All() []Type {
	return []Type{
		SingleLineText, Email, URL, MultilineText, RichText, Number, Percent,
		Currency, SingleSelect, MultipleSelects, SingleCollaborator,
		MultipleCollaborators, MultipleRecordLinks, Date, DateTime, PhoneNumber,
		MultipleAttachments, Checkbox, Formula, CreatedTime, Rollup, Count,
		MultipleLookupValues, AutoNumber, Barcode, Rating, Duration,
		LastModifiedTime, Button, CreatedBy, LastModifiedBy, ExternalSyncSource,
		AIText,
	}
}

// Label returns the human readable name for a field kind. Kinds without a
// curated label, including unknown ones, are split on their upper case
// letters: "singleLineText" becomes "Single line text".
func Label(t Type) string {
	if label, ok := curated[t]; ok {
		return label
	}
	return fromCamel(string(t))
}

// Icon returns the glyph drawn next to a field of kind t.
func Icon(t Type) string {
	if icon, ok := icons[t]; ok {
		return icon
	}
	return fallbackIcon
}

func fromCamel(value string) string {
	if value == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(value) + 4)
	for _, r := range value {
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	runes := []rune(b.String())
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
