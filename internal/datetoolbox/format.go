package datetoolbox

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"
)

type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokDay               // d
	tokDayShort          // j
	tokWeekday           // D
	tokWeekdayLong       // l
	tokDaySuffix         // S
	tokMonth             // m
	tokMonthShort        // n
	tokMonthName         // M
	tokMonthNameLong     // F
	tokYear              // Y
	tokYearShort         // y
	tokUnix              // U
	tokMeridiem          // a
	tokMeridiemUpper     // A
	tokHour12Short       // g
	tokHour24Short       // G
	tokHour12            // h
	tokHour24            // H
	tokMinute            // i
	tokSecond            // s
	tokMilli             // v
	tokMicro             // u
	tokOffset            // O
	tokOffsetColon       // P
)

var (
	dateTokens = map[rune]tokenKind{
		'd': tokDay,
		'j': tokDayShort,
		'D': tokWeekday,
		'l': tokWeekdayLong,
		'S': tokDaySuffix,
		'm': tokMonth,
		'n': tokMonthShort,
		'M': tokMonthName,
		'F': tokMonthNameLong,
		'Y': tokYear,
		'y': tokYearShort,
		'U': tokUnix,
	}

	timeTokens = map[rune]tokenKind{
		'a': tokMeridiem,
		'A': tokMeridiemUpper,
		'g': tokHour12Short,
		'G': tokHour24Short,
		'h': tokHour12,
		'H': tokHour24,
		'i': tokMinute,
		's': tokSecond,
		'v': tokMilli,
		'u': tokMicro,
		'O': tokOffset,
		'P': tokOffsetColon,
	}
)

type token struct {
	kind    tokenKind
	literal rune
}

// compile splits a pattern into tokens. Letters must be recognised tokens
// unless escaped with a backslash.
func compile(format string) ([]token, error) {
	if format == "" {
		return nil, ErrEmptyFormat
	}

	var (
		tokens  []token
		escaped bool
	)

	for _, r := range format {
		if escaped {
			tokens = append(tokens, token{kind: tokLiteral, literal: r})
			escaped = false

			continue
		}

		if r == '\\' {
			escaped = true
			continue
		}

		if !unicode.IsLetter(r) {
			tokens = append(tokens, token{kind: tokLiteral, literal: r})
			continue
		}

		if k, ok := dateTokens[r]; ok {
			tokens = append(tokens, token{kind: k})
			continue
		}

		if k, ok := timeTokens[r]; ok {
			tokens = append(tokens, token{kind: k})
			continue
		}

		return nil, errors.Wrapf(ErrUnknownToken, "%q in %q", r, format)
	}

	if escaped {
		return nil, errors.Wrapf(ErrUnknownToken, "dangling escape in %q", format)
	}

	return tokens, nil
}

// ValidateDateFormat reports whether format is a usable date pattern: it must
// contain at least one date token and nothing but date tokens and literals.
func ValidateDateFormat(format string) bool {
	return onlyTokens(format, dateTokens)
}

// ValidateTimeFormat reports whether format is a usable time pattern.
func ValidateTimeFormat(format string) bool {
	return onlyTokens(format, timeTokens)
}

func onlyTokens(format string, allowed map[rune]tokenKind) bool {
	tokens, err := compile(format)
	if err != nil {
		return false
	}

	kinds := make(map[tokenKind]bool, len(allowed))
	for _, k := range allowed {
		kinds[k] = true
	}

	var found bool

	for _, t := range tokens {
		if t.kind == tokLiteral {
			continue
		}

		if !kinds[t.kind] {
			return false
		}

		found = true
	}

	return found
}

// Format renders t with a PHP style pattern.
func Format(format string, t time.Time) (string, error) {
	tokens, err := compile(format)
	if err != nil {
		return "", err
	}

	var b strings.Builder

	for _, tok := range tokens {
		switch tok.kind {
		case tokLiteral:
			b.WriteRune(tok.literal)
		case tokDay:
			b.WriteString(pad2(t.Day()))
		case tokDayShort:
			b.WriteString(strconv.Itoa(t.Day()))
		case tokWeekday:
			b.WriteString(t.Weekday().String()[:3])
		case tokWeekdayLong:
			b.WriteString(t.Weekday().String())
		case tokDaySuffix:
			b.WriteString(ordinalSuffix(t.Day()))
		case tokMonth:
			b.WriteString(pad2(int(t.Month())))
		case tokMonthShort:
			b.WriteString(strconv.Itoa(int(t.Month())))
		case tokMonthName:
			b.WriteString(t.Month().String()[:3])
		case tokMonthNameLong:
			b.WriteString(t.Month().String())
		case tokYear:
			b.WriteString(padN(t.Year(), 4)) //nolint:mnd
		case tokYearShort:
			b.WriteString(pad2(t.Year() % 100)) //nolint:mnd
		case tokUnix:
			b.WriteString(strconv.FormatInt(t.Unix(), 10))
		case tokMeridiem:
			b.WriteString(meridiem(t.Hour()))
		case tokMeridiemUpper:
			b.WriteString(strings.ToUpper(meridiem(t.Hour())))
		case tokHour12Short:
			b.WriteString(strconv.Itoa(hour12(t.Hour())))
		case tokHour24Short:
			b.WriteString(strconv.Itoa(t.Hour()))
		case tokHour12:
			b.WriteString(pad2(hour12(t.Hour())))
		case tokHour24:
			b.WriteString(pad2(t.Hour()))
		case tokMinute:
			b.WriteString(pad2(t.Minute()))
		case tokSecond:
			b.WriteString(pad2(t.Second()))
		case tokMilli:
			b.WriteString(padN(t.Nanosecond()/int(time.Millisecond), 3)) //nolint:mnd
		case tokMicro:
			b.WriteString(padN(t.Nanosecond()/int(time.Microsecond), 6)) //nolint:mnd
		case tokOffset:
			b.WriteString(formatOffset(t, false))
		case tokOffsetColon:
			b.WriteString(formatOffset(t, true))
		}
	}

	return b.String(), nil
}

func pad2(n int) string {
	return padN(n, 2) //nolint:mnd
}

func padN(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}

	return strings.Repeat("0", width-len(s)) + s
}

func hour12(h int) int {
	switch {
	case h == 0:
		return 12 //nolint:mnd
	case h > 12: //nolint:mnd
		return h - 12 //nolint:mnd
	default:
		return h
	}
}

func meridiem(h int) string {
	if h < 12 { //nolint:mnd
		return "am"
	}

	return "pm"
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}

	switch day % 10 { //nolint:mnd
	case 1:
		return "st"
	case 2: //nolint:mnd
		return "nd"
	case 3: //nolint:mnd
		return "rd"
	default:
		return "th"
	}
}

func formatOffset(t time.Time, colon bool) string {
	_, offset := t.Zone()

	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}

	hours := offset / 3600 //nolint:mnd
	minutes := (offset % 3600) / 60

	if colon {
		return sign + pad2(hours) + ":" + pad2(minutes)
	}

	return sign + pad2(hours) + pad2(minutes)
}
