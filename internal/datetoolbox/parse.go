package datetoolbox

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// parsed collects the components read from a value.
type parsed struct {
	year, month, day     int
	hour, minute, second int
	nsec                 int

	hasHour12 bool
	hasClock  bool
	pm        *bool
	weekday   *time.Weekday
	suffix    string

	offset *int
	unix   *int64
}

// CreateFromFormat parses value strictly against format in UTC.
func CreateFromFormat(format, value string) (time.Time, error) {
	return CreateFromFormatIn(format, value, time.UTC)
}

// CreateFromFormatIn parses value strictly against format. The result is in
// loc unless the pattern carries its own offset (O or P).
func CreateFromFormatIn(format, value string, loc *time.Location) (time.Time, error) {
	tokens, err := compile(format)
	if err != nil {
		return time.Time{}, err
	}

	if loc == nil {
		loc = time.UTC
	}

	p := parsed{year: 1970, month: 1, day: 1} //nolint:mnd
	rest := value

	for _, tok := range tokens {
		if rest, err = p.consume(tok, rest); err != nil {
			return time.Time{}, errors.Wrapf(err, "value %q does not match %q", value, format)
		}
	}

	if rest != "" {
		return time.Time{}, errors.Wrapf(ErrValueMismatch, "trailing input %q in %q", rest, value)
	}

	return p.time(loc)
}

func (p *parsed) consume(tok token, in string) (string, error) { //nolint:gocyclo,cyclop,funlen
	var (
		n   int
		err error
	)

	switch tok.kind {
	case tokLiteral:
		r, size := utf8.DecodeRuneInString(in)
		if size == 0 || r != tok.literal {
			return in, errors.Wrapf(ErrValueMismatch, "expected %q", tok.literal)
		}

		return in[size:], nil
	case tokDay:
		n, in, err = fixedDigits(in, 2) //nolint:mnd
		p.day = n
	case tokDayShort:
		n, in, err = shortDigits(in, 2) //nolint:mnd
		p.day = n
	case tokWeekday, tokWeekdayLong:
		var wd time.Weekday

		wd, in, err = weekdayName(in, tok.kind == tokWeekdayLong)
		p.weekday = &wd
	case tokDaySuffix:
		if len(in) < 2 { //nolint:mnd
			return in, errors.Wrap(ErrValueMismatch, "expected day suffix")
		}

		p.suffix = strings.ToLower(in[:2])
		in = in[2:]
	case tokMonth:
		n, in, err = fixedDigits(in, 2) //nolint:mnd
		p.month = n
	case tokMonthShort:
		n, in, err = shortDigits(in, 2) //nolint:mnd
		p.month = n
	case tokMonthName, tokMonthNameLong:
		var m time.Month

		m, in, err = monthName(in, tok.kind == tokMonthNameLong)
		p.month = int(m)
	case tokYear:
		n, in, err = fixedDigits(in, 4) //nolint:mnd
		p.year = n
	case tokYearShort:
		n, in, err = fixedDigits(in, 2) //nolint:mnd
		if n < 70 {                     //nolint:mnd
			p.year = 2000 + n
		} else {
			p.year = 1900 + n
		}
	case tokUnix:
		var u int64

		u, in, err = signedDigits(in)
		p.unix = &u
	case tokMeridiem, tokMeridiemUpper:
		if len(in) < 2 { //nolint:mnd
			return in, errors.Wrap(ErrValueMismatch, "expected am/pm")
		}

		switch strings.ToLower(in[:2]) {
		case "am":
			pm := false
			p.pm = &pm
		case "pm":
			pm := true
			p.pm = &pm
		default:
			return in, errors.Wrap(ErrValueMismatch, "expected am/pm")
		}

		in = in[2:]
	case tokHour12Short:
		n, in, err = shortDigits(in, 2) //nolint:mnd
		p.hour = n
		p.hasClock = true
		p.hasHour12 = true
	case tokHour24Short:
		n, in, err = shortDigits(in, 2) //nolint:mnd
		p.hour = n
		p.hasClock = true
	case tokHour12:
		n, in, err = fixedDigits(in, 2) //nolint:mnd
		p.hour = n
		p.hasClock = true
		p.hasHour12 = true
	case tokHour24:
		n, in, err = fixedDigits(in, 2) //nolint:mnd
		p.hour = n
		p.hasClock = true
	case tokMinute:
		n, in, err = fixedDigits(in, 2) //nolint:mnd
		p.minute = n
	case tokSecond:
		n, in, err = fixedDigits(in, 2) //nolint:mnd
		p.second = n
	case tokMilli:
		n, in, err = fixedDigits(in, 3) //nolint:mnd
		p.nsec = n * int(time.Millisecond)
	case tokMicro:
		n, in, err = fixedDigits(in, 6) //nolint:mnd
		p.nsec = n * int(time.Microsecond)
	case tokOffset, tokOffsetColon:
		var off int

		off, in, err = zoneOffset(in, tok.kind == tokOffsetColon)
		p.offset = &off
	}

	return in, err
}

// time assembles and range checks the parsed components.
func (p *parsed) time(loc *time.Location) (time.Time, error) {
	if p.offset != nil {
		loc = time.FixedZone("", *p.offset)
	}

	if p.unix != nil {
		return time.Unix(*p.unix, 0).In(loc), nil
	}

	if err := p.checkRanges(); err != nil {
		return time.Time{}, err
	}

	hour := p.hour
	if p.pm != nil {
		switch {
		case *p.pm && hour < 12: //nolint:mnd
			hour += 12
		case !*p.pm && hour == 12: //nolint:mnd
			hour = 0
		}
	}

	t := time.Date(p.year, time.Month(p.month), p.day, hour, p.minute, p.second, p.nsec, loc)

	// time.Date normalises overflow such as Feb 30, which is not a real date.
	if t.Year() != p.year || int(t.Month()) != p.month || t.Day() != p.day {
		return time.Time{}, errors.Wrapf(ErrInvalidDate, "%04d-%02d-%02d", p.year, p.month, p.day)
	}

	// a wall clock time skipped by a DST change comes back shifted
	if p.hasClock && (t.Hour() != hour || t.Minute() != p.minute) {
		return time.Time{}, errors.Wrapf(ErrNonexistentTime, "%02d:%02d in %s", hour, p.minute, loc)
	}

	if p.weekday != nil && t.Weekday() != *p.weekday {
		return time.Time{}, errors.Wrapf(ErrInvalidDate, "%s is not a %s", t.Format(time.DateOnly), *p.weekday)
	}

	if p.suffix != "" && p.suffix != ordinalSuffix(p.day) {
		return time.Time{}, errors.Wrapf(ErrInvalidDate, "day %d does not take suffix %q", p.day, p.suffix)
	}

	return t, nil
}

func (p *parsed) checkRanges() error {
	switch {
	case p.month < 1 || p.month > 12:
		return errors.Wrapf(ErrOutOfRange, "month %d", p.month)
	case p.day < 1 || p.day > 31:
		return errors.Wrapf(ErrOutOfRange, "day %d", p.day)
	case p.hasHour12 && (p.hour < 1 || p.hour > 12):
		return errors.Wrapf(ErrOutOfRange, "hour %d", p.hour)
	case p.hour > 23:
		return errors.Wrapf(ErrOutOfRange, "hour %d", p.hour)
	case p.minute > 59:
		return errors.Wrapf(ErrOutOfRange, "minute %d", p.minute)
	case p.second > 59:
		return errors.Wrapf(ErrOutOfRange, "second %d", p.second)
	}

	return nil
}

func fixedDigits(in string, width int) (int, string, error) {
	if len(in) < width {
		return 0, in, errors.Wrapf(ErrValueMismatch, "expected %d digits", width)
	}

	for i := 0; i < width; i++ {
		if !isDigit(in[i]) {
			return 0, in, errors.Wrapf(ErrValueMismatch, "expected %d digits", width)
		}
	}

	n, err := strconv.Atoi(in[:width])
	if err != nil {
		return 0, in, errors.Wrap(ErrValueMismatch, err.Error())
	}

	return n, in[width:], nil
}

// shortDigits reads 1 to max digits without a leading zero.
func shortDigits(in string, maxWidth int) (int, string, error) {
	var width int
	for width < maxWidth && width < len(in) && isDigit(in[width]) {
		width++
	}

	if width == 0 {
		return 0, in, errors.Wrap(ErrValueMismatch, "expected digits")
	}

	if width > 1 && in[0] == '0' {
		return 0, in, errors.Wrap(ErrValueMismatch, "unexpected leading zero")
	}

	n, err := strconv.Atoi(in[:width])
	if err != nil {
		return 0, in, errors.Wrap(ErrValueMismatch, err.Error())
	}

	return n, in[width:], nil
}

func signedDigits(in string) (int64, string, error) {
	var width int
	if strings.HasPrefix(in, "-") {
		width = 1
	}

	start := width
	for width < len(in) && isDigit(in[width]) {
		width++
	}

	if width == start {
		return 0, in, errors.Wrap(ErrValueMismatch, "expected unix timestamp")
	}

	n, err := strconv.ParseInt(in[:width], 10, 64)
	if err != nil {
		return 0, in, errors.Wrap(ErrOutOfRange, err.Error())
	}

	return n, in[width:], nil
}

func weekdayName(in string, long bool) (time.Weekday, string, error) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := wd.String()
		if !long {
			name = name[:3]
		}

		if len(in) >= len(name) && strings.EqualFold(in[:len(name)], name) {
			return wd, in[len(name):], nil
		}
	}

	return 0, in, errors.Wrap(ErrValueMismatch, "expected weekday name")
}

func monthName(in string, long bool) (time.Month, string, error) {
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if !long {
			name = name[:3]
		}

		if len(in) >= len(name) && strings.EqualFold(in[:len(name)], name) {
			return m, in[len(name):], nil
		}
	}

	return 0, in, errors.Wrap(ErrValueMismatch, "expected month name")
}

// zoneOffset reads +hhmm or, with colon, +hh:mm and returns seconds east of UTC.
func zoneOffset(in string, colon bool) (int, string, error) {
	if in == "" || (in[0] != '+' && in[0] != '-') {
		return 0, in, errors.Wrap(ErrValueMismatch, "expected zone offset sign")
	}

	sign := 1
	if in[0] == '-' {
		sign = -1
	}

	hours, rest, err := fixedDigits(in[1:], 2) //nolint:mnd
	if err != nil {
		return 0, in, err
	}

	if colon {
		if !strings.HasPrefix(rest, ":") {
			return 0, in, errors.Wrap(ErrValueMismatch, "expected ':' in zone offset")
		}

		rest = rest[1:]
	}

	minutes, rest, err := fixedDigits(rest, 2) //nolint:mnd
	if err != nil {
		return 0, in, err
	}

	if hours > 14 || minutes > 59 { //nolint:mnd
		return 0, in, errors.Wrapf(ErrOutOfRange, "zone offset %s", in)
	}

	return sign * (hours*3600 + minutes*60), rest, nil //nolint:mnd
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
