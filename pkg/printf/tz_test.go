package printf

import (
	"testing"

	"src.shprintf.dev/pkg/tt"
)

func TestParsePOSIXTZ(t *testing.T) {
	tt.Test(t, tt.Fn("parsePOSIXTZ", parsePOSIXTZ), tt.Table{
		Args("JST-9").Rets("JST", -9*3600, true),
		Args("UTC+3").Rets("UTC", 3*3600, true),
		Args("UTC3").Rets("UTC", 3*3600, true),
		Args("<+0530>-5:30").Rets("+0530", -(5*3600 + 30*60), true),
		Args("NST3:30:15").Rets("NST", 3*3600+30*60+15, true),
		Args("EST5EDT").Rets("EST", 5*3600, true),
		Args("EST5EDT4,M3.2.0/2,M11.1.0/2").Rets("EST", 5*3600, true),
		Args("CET-1CEST,M3.5.0,M10.5.0/3").Rets("CET", -3600, true),
		Args("ABC0DEF,J60/-1,300/26:30").Rets("ABC", 0, true),

		Args("").Rets("", 0, false),
		Args("JS-9").Rets("", 0, false),
		Args("JST").Rets("", 0, false),
		Args("JST-").Rets("", 0, false),
		Args("JST-25").Rets("", 0, false),
		Args("JST-9:60").Rets("", 0, false),
		Args("JST-9X").Rets("", 0, false),
		Args("<AB>-1").Rets("", 0, false),
		Args("<A/B>-1").Rets("", 0, false),
		Args("<ABC-1").Rets("", 0, false),
		Args("No/Such_Zone").Rets("", 0, false),
		Args("CET-1CEST,M3").Rets("", 0, false),
		Args("CET-1CEST,M13.1.0,M10.5.0").Rets("", 0, false),
		Args("CET-1CEST,M3.5.7,M10.5.0").Rets("", 0, false),
		Args("CET-1CEST,J0,J100").Rets("", 0, false),
		Args("CET-1CEST,M3.5.0").Rets("", 0, false),
		Args("CET-1CEST,M3.5.0,M10.5.0,").Rets("", 0, false),
	})
}

func TestLoadPOSIXLocation(t *testing.T) {
	loc, err := loadPOSIXLocation("JST-9")
	if err != nil {
		t.Fatal(err)
	}
	if name, offset := startTime.In(loc).Zone(); name != "JST" || offset != 9*3600 {
		t.Errorf("zone = (%q, %d), want (JST, 32400)", name, offset)
	}

	if _, err := loadPOSIXLocation("Not/A_Rule"); err == nil {
		t.Errorf("want error for value that is not a POSIX TZ rule")
	}
}
